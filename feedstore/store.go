// Package feedstore holds the client's ordered, capacity-bounded list of deals.
package feedstore

import (
	"sync"

	"dealfeed/types"
)

// DefaultCap is the number of items retained when no cap is configured
const DefaultCap = 200

// Store holds the deal sequence, most recently arrived first.
//
// Published slices are never written again after they are swapped in, so a
// Snapshot stays consistent while later mutations happen.
type Store struct {
	mu      sync.RWMutex
	items   []types.DealItem
	ids     map[string]struct{}
	cap     int
	version uint64
}

// New creates an empty store. A cap <= 0 selects DefaultCap.
func New(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCap
	}
	return &Store{
		items: []types.DealItem{},
		ids:   make(map[string]struct{}),
		cap:   capacity,
	}
}

// ReplaceAll discards the current sequence and adopts items in the given
// order, keeping at most Cap entries. A repeated id keeps its first occurrence.
func (s *Store) ReplaceAll(items []types.DealItem) {
	next := make([]types.DealItem, 0, min(len(items), s.cap))
	ids := make(map[string]struct{}, cap(next))
	for _, it := range items {
		if len(next) == s.cap {
			break
		}
		if _, dup := ids[it.ID]; dup {
			continue
		}
		ids[it.ID] = struct{}{}
		next = append(next, it)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = next
	s.ids = ids
	s.version++
}

// MergeOne front-inserts item unless its id is already present.
// Returns false when the item was a duplicate; the existing entry is kept as-is.
func (s *Store) MergeOne(item types.DealItem) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.ids[item.ID]; exists {
		return false
	}

	keep := min(len(s.items), s.cap-1)
	next := make([]types.DealItem, 0, keep+1)
	next = append(next, item)
	next = append(next, s.items[:keep]...)
	for _, evicted := range s.items[keep:] {
		delete(s.ids, evicted.ID)
	}

	s.ids[item.ID] = struct{}{}
	s.items = next
	s.version++
	return true
}

// Snapshot returns the current sequence. Callers must not modify it.
func (s *Store) Snapshot() []types.DealItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items
}

// Len returns the number of stored items
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Cap returns the retention cap
func (s *Store) Cap() int {
	return s.cap
}

// Version increases on every successful mutation
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}
