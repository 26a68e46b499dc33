// Package store keeps revision snapshots of diagrams.
//
// A [Snapshot] is the canonical JSON document of a diagram at one revision
// together with its layout fingerprint. Stores are append-only per
// (diagram, revision): saving a revision twice fails with [ErrConflict].
//
// Two backends are provided: [MemoryStore] for tests and dry runs and
// [MongoStore] for persistent history.
package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	sio "github.com/matzehuels/scenegraph/pkg/io"
	"github.com/matzehuels/scenegraph/pkg/render"
	"github.com/matzehuels/scenegraph/pkg/scene"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when no snapshot matches.
	ErrNotFound = errors.New("snapshot not found")

	// ErrConflict is returned when a revision is already stored.
	ErrConflict = errors.New("revision already stored")
)

// Snapshot is one stored revision of a diagram.
type Snapshot struct {
	DiagramID   string    `msgpack:"diagram_id" bson:"diagram_id" json:"diagram_id"`
	Revision    int       `msgpack:"revision" bson:"revision" json:"revision"`
	Fingerprint string    `msgpack:"fingerprint" bson:"fingerprint" json:"fingerprint"`
	Data        []byte    `msgpack:"data" bson:"data" json:"-"`
	CreatedAt   time.Time `msgpack:"created_at" bson:"created_at" json:"created_at"`
}

// Store persists snapshots.
type Store interface {
	// Save stores s. It fails with ErrConflict when s.Revision is already
	// stored for s.DiagramID.
	Save(ctx context.Context, s Snapshot) error

	// Get returns one revision or ErrNotFound.
	Get(ctx context.Context, diagramID string, revision int) (Snapshot, error)

	// List returns every revision of a diagram in ascending order.
	List(ctx context.Context, diagramID string) ([]Snapshot, error)

	// Latest returns the highest revision or ErrNotFound.
	Latest(ctx context.Context, diagramID string) (Snapshot, error)

	Close() error
}

// Capture snapshots d at its current revision.
func Capture(d *scene.Diagram) (Snapshot, error) {
	var buf bytes.Buffer
	if err := sio.WriteJSON(d, &buf); err != nil {
		return Snapshot{}, fmt.Errorf("capture: %w", err)
	}
	return Snapshot{
		DiagramID:   d.ID().String(),
		Revision:    d.Revision(),
		Fingerprint: fmt.Sprintf("%016x", render.Compute(d).Fingerprint()),
		Data:        buf.Bytes(),
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// Restore rebuilds the diagram stored in s.
func Restore(s Snapshot) (*scene.Diagram, error) {
	d, err := sio.ReadJSON(bytes.NewReader(s.Data))
	if err != nil {
		return nil, fmt.Errorf("restore revision %d: %w", s.Revision, err)
	}
	return d, nil
}

// SaveNext stores d, first raising its revision above the latest stored
// one when needed. It returns the saved snapshot.
func SaveNext(ctx context.Context, st Store, d *scene.Diagram) (Snapshot, error) {
	latest, err := st.Latest(ctx, d.ID().String())
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return Snapshot{}, err
	case latest.Revision >= d.Revision():
		if err := d.SetRevision(latest.Revision + 1); err != nil {
			return Snapshot{}, err
		}
	}

	s, err := Capture(d)
	if err != nil {
		return Snapshot{}, err
	}
	if err := st.Save(ctx, s); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}

// Encode packs s with msgpack.
func Encode(s Snapshot) ([]byte, error) {
	return msgpack.Marshal(&s)
}

// Decode unpacks a snapshot written by Encode.
func Decode(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return s, nil
}
