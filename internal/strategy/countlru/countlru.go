// Package countlru implements an entry-count-bounded LRU strategy backed by
// hashicorp's LRU cache. It suits workloads with uniformly sized payloads
// where a fixed entry budget is easier to reason about than a byte budget.
package countlru

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/fetchwise/hoard/internal/strategy"
)

// Compile-time check that Strategy implements strategy.Strategy.
var _ strategy.Strategy = (*Strategy)(nil)

// Strategy bounds the cache by number of entries, evicting the
// least-recently-used entry when full. Resident bytes are tracked for
// observability but do not bound admission.
type Strategy struct {
	mu      sync.Mutex
	cache   *lru.Cache[string, []byte]
	size    int64
	onEvict strategy.EvictFunc

	// suppress mutes onEvict while an explicit Remove or Purge runs, since
	// the backing cache fires its callback for those removals too.
	suppress bool
}

// New creates a count-LRU strategy holding at most maxEntries entries.
func New(maxEntries int) (*Strategy, error) {
	return NewWithEvict(maxEntries, nil)
}

// NewWithEvict creates a count-LRU strategy that notifies onEvict for each
// entry removed under pressure.
func NewWithEvict(maxEntries int, onEvict strategy.EvictFunc) (*Strategy, error) {
	s := &Strategy{onEvict: onEvict}

	cache, err := lru.NewWithEvict(maxEntries, s.evicted)
	if err != nil {
		return nil, err
	}
	s.cache = cache

	return s, nil
}

// evicted runs under s.mu, inside the backing cache's removal paths.
func (s *Strategy) evicted(key string, payload []byte) {
	n := int64(len(payload))
	s.size -= n
	if s.onEvict != nil && !s.suppress {
		s.onEvict(key, n)
	}
}

// Get retrieves a copy of the payload for key, promoting it to MRU.
func (s *Strategy) Get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.cache.Get(key)
	if !ok {
		return nil, false
	}

	payload := make([]byte, len(stored))
	copy(payload, stored)
	return payload, true
}

// Add inserts or updates key, evicting the LRU entry when the cache is
// full. An empty key or payload is a silent no-op reporting false.
func (s *Strategy) Add(key string, payload []byte) bool {
	if key == "" || len(payload) == 0 {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Replacing an existing value does not go through the evict callback,
	// so settle its footprint here.
	if old, ok := s.cache.Peek(key); ok {
		s.size -= int64(len(old))
	}

	stored := make([]byte, len(payload))
	copy(stored, payload)

	s.cache.Add(key, stored)
	s.size += int64(len(stored))
	return true
}

// Remove drops key, reporting whether it was present.
func (s *Strategy) Remove(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.suppress = true
	present := s.cache.Remove(key)
	s.suppress = false
	return present
}

// Len returns the number of live entries.
func (s *Strategy) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Len()
}

// Size returns the resident payload bytes.
func (s *Strategy) Size() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.size
}

// Purge removes every entry.
func (s *Strategy) Purge() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.suppress = true
	s.cache.Purge()
	s.suppress = false
}
