package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/scenegraph/pkg/cache"
	sio "github.com/matzehuels/scenegraph/pkg/io"
	"github.com/matzehuels/scenegraph/pkg/observability"
	"github.com/matzehuels/scenegraph/pkg/render"
	"github.com/matzehuels/scenegraph/pkg/scene"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can use the same Runner with different options; each run
// owns the diagram it loads.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs the complete load → layout → render pipeline with caching.
// Records go to opts.Logger when set, otherwise to the runner's logger.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	logger := r.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	d, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Diagram = d
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.NodeCount = len(d.AllNodes())
	result.Stats.EdgeCount = len(d.Edges())

	logger.Info("loaded scene",
		"source", opts.Source,
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	l, hash, layoutHit, err := r.LayoutWithCacheInfo(ctx, d, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.SceneHash = hash
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	logger.Info("computed layout",
		"edges", len(l.Edges),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, d, l, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load decodes the scene document of opts.
func (r *Runner) Load(ctx context.Context, opts Options) (d *scene.Diagram, err error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}

	start := time.Now()
	observability.Pipeline().OnLoadStart(ctx, opts.Source)
	defer func() {
		n := 0
		if d != nil {
			n = len(d.AllNodes())
		}
		observability.Pipeline().OnLoadComplete(ctx, opts.Source, n, time.Since(start), err)
	}()

	return sio.Read(bytes.NewReader(opts.Scene), opts.SceneFormat)
}

// SceneHash returns the content hash of d's canonical JSON document.
func SceneHash(d *scene.Diagram) (string, error) {
	var buf bytes.Buffer
	if err := sio.WriteJSON(d, &buf); err != nil {
		return "", err
	}
	return cache.Hash(buf.Bytes()), nil
}

// LayoutWithCacheInfo computes the layout of d, consulting the cache
// first. It returns the layout, the scene hash it was keyed by, and
// whether it came from cache.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, d *scene.Diagram, opts Options) (l render.Layout, hash string, hit bool, err error) {
	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, len(d.AllNodes()), len(d.Edges()))
	defer func() {
		observability.Pipeline().OnLayoutComplete(ctx, hit, time.Since(start), err)
	}()

	hash, err = SceneHash(d)
	if err != nil {
		return render.Layout{}, "", false, fmt.Errorf("hash scene: %w", err)
	}
	cacheKey := r.Keyer.LayoutKey(hash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, ok, err := r.Cache.Get(ctx, cacheKey); err == nil && ok {
			if cached, err := render.ReadJSON(bytes.NewReader(data)); err == nil {
				return cached, hash, true, nil
			}
			r.Logger.Debug("discarding unreadable cached layout", "key", cacheKey)
		}
	}

	l = render.Compute(d)

	var buf bytes.Buffer
	if err := l.WriteJSON(&buf); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, buf.Bytes(), cache.LayoutTTL); err != nil {
			r.Logger.Warn("cache layout", "error", err)
		}
	}
	return l, hash, false, nil
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards the cache info.
func (r *Runner) Layout(ctx context.Context, d *scene.Diagram, opts Options) (render.Layout, error) {
	l, _, _, err := r.LayoutWithCacheInfo(ctx, d, opts)
	return l, err
}

// RenderWithCacheInfo produces every requested artifact, reporting
// whether all of them came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, d *scene.Diagram, l render.Layout, opts Options) (artifacts map[string][]byte, hit bool, err error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	defer func() {
		observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	}()

	layoutHash := fmt.Sprintf("%s@%d:%016x", l.DiagramID, l.Revision, l.Fingerprint())

	if !opts.Refresh {
		artifacts = make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			data, ok, err := r.Cache.Get(ctx, key)
			if err != nil || !ok {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	artifacts, err = Render(ctx, d, l, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range artifacts {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.ArtifactTTL); err != nil {
			r.Logger.Warn("cache artifact", "format", format, "error", err)
		}
	}
	return artifacts, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
