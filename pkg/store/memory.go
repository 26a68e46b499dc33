package store

import (
	"cmp"
	"context"
	"slices"
	"sync"
)

// MemoryStore keeps msgpack-encoded snapshots in memory.
type MemoryStore struct {
	mu   sync.RWMutex
	revs map[string]map[int][]byte
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{revs: make(map[string]map[int][]byte)}
}

func (m *MemoryStore) Save(_ context.Context, s Snapshot) error {
	data, err := Encode(s)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	revs := m.revs[s.DiagramID]
	if revs == nil {
		revs = make(map[int][]byte)
		m.revs[s.DiagramID] = revs
	}
	if _, ok := revs[s.Revision]; ok {
		return ErrConflict
	}
	revs[s.Revision] = data
	return nil
}

func (m *MemoryStore) Get(_ context.Context, diagramID string, revision int) (Snapshot, error) {
	m.mu.RLock()
	data, ok := m.revs[diagramID][revision]
	m.mu.RUnlock()
	if !ok {
		return Snapshot{}, ErrNotFound
	}
	return Decode(data)
}

func (m *MemoryStore) List(_ context.Context, diagramID string) ([]Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Snapshot, 0, len(m.revs[diagramID]))
	for _, data := range m.revs[diagramID] {
		s, err := Decode(data)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b Snapshot) int { return cmp.Compare(a.Revision, b.Revision) })
	return out, nil
}

func (m *MemoryStore) Latest(ctx context.Context, diagramID string) (Snapshot, error) {
	all, err := m.List(ctx, diagramID)
	if err != nil {
		return Snapshot{}, err
	}
	if len(all) == 0 {
		return Snapshot{}, ErrNotFound
	}
	return all[len(all)-1], nil
}

func (m *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
