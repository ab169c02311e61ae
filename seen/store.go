// Package seen remembers every deal the server has ingested.
package seen

import (
	"context"
	"sync"

	"dealfeed/types"
)

// Store holds ingested deals keyed by id. Put overwrites.
type Store interface {
	Has(ctx context.Context, id string) (bool, error)
	Put(ctx context.Context, item types.DealItem) error
	All(ctx context.Context) ([]types.DealItem, error)
	Len(ctx context.Context) (int, error)
}

// MemoryStore is a process-local Store that preserves insertion order
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]types.DealItem
	order []string
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]types.DealItem)}
}

func (m *MemoryStore) Has(_ context.Context, id string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.items[id]
	return ok, nil
}

func (m *MemoryStore) Put(_ context.Context, item types.DealItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[item.ID]; !ok {
		m.order = append(m.order, item.ID)
	}
	m.items[item.ID] = item
	return nil
}

func (m *MemoryStore) All(_ context.Context) ([]types.DealItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]types.DealItem, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.items[id])
	}
	return out, nil
}

func (m *MemoryStore) Len(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items), nil
}
