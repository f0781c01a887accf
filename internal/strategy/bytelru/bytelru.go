// Package bytelru implements the byte-budgeted LRU strategy, the default for
// proxy-style workloads where entries have very uneven sizes.
package bytelru

import (
	"github.com/fetchwise/hoard/internal/lrustore"
	"github.com/fetchwise/hoard/internal/strategy"
)

// Compile-time check that Strategy implements strategy.Strategy.
var _ strategy.Strategy = (*Strategy)(nil)

// Strategy bounds the cache by total payload bytes, evicting from the
// least-recently-used end.
type Strategy struct {
	store *lrustore.Store
}

// New creates a byte-LRU strategy bounded by capacityBytes.
func New(capacityBytes int64) (*Strategy, error) {
	return NewWithEvict(capacityBytes, 0, nil)
}

// NewWithEvict creates a byte-LRU strategy that notifies onEvict for each
// entry removed under budget pressure.
func NewWithEvict(capacityBytes int64, sizeHint int, onEvict strategy.EvictFunc) (*Strategy, error) {
	s, err := lrustore.NewWithEvict(capacityBytes, sizeHint, lrustore.EvictFunc(onEvict))
	if err != nil {
		return nil, err
	}
	return &Strategy{store: s}, nil
}

// Get retrieves a copy of the payload for key, promoting it to MRU.
func (s *Strategy) Get(key string) ([]byte, bool) {
	return s.store.Find(key)
}

// Add inserts or updates key within the byte budget.
func (s *Strategy) Add(key string, payload []byte) bool {
	return s.store.Add(key, payload)
}

// Remove drops key.
func (s *Strategy) Remove(key string) bool {
	return s.store.Remove(key)
}

// Len returns the number of live entries.
func (s *Strategy) Len() int {
	return s.store.Len()
}

// Size returns the resident payload bytes.
func (s *Strategy) Size() int64 {
	return s.store.Size()
}

// Purge removes every entry.
func (s *Strategy) Purge() {
	s.store.Purge()
}

// Capacity returns the byte budget.
func (s *Strategy) Capacity() int64 {
	return s.store.Capacity()
}
