package cache

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/scenegraph/pkg/observability"
)

// Instrumented reports hits, misses, and writes of the wrapped cache to
// the registered observability cache hooks, labelled by the key's type
// segment ("layout" or "artifact").
type Instrumented struct {
	Cache
}

// Instrument wraps c.
func Instrument(c Cache) *Instrumented { return &Instrumented{Cache: c} }

func (c *Instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := c.Cache.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if ok {
		observability.Cache().OnCacheHit(ctx, keyType(key))
	} else {
		observability.Cache().OnCacheMiss(ctx, keyType(key))
	}
	return data, ok, nil
}

func (c *Instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.Cache.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, keyType(key), len(data))
	return nil
}

// Clear forwards to the wrapped cache when it supports clearing.
func (c *Instrumented) Clear(ctx context.Context) error {
	if cl, ok := c.Cache.(Clearer); ok {
		return cl.Clear(ctx)
	}
	return nil
}

func keyType(key string) string {
	for _, part := range strings.Split(key, ":") {
		switch part {
		case "layout", "artifact":
			return part
		}
	}
	return "other"
}

var (
	_ Cache   = (*Instrumented)(nil)
	_ Clearer = (*Instrumented)(nil)
)
