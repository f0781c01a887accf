// Package lrustore implements a thread-safe, byte-budgeted LRU store.
//
// A Store couples a key-to-entry index with an intrusive recency list under a
// single exclusive lock. Every live entry occupies exactly one list position
// and one index slot; the sum of payload lengths never exceeds the capacity
// once a call returns. When an Add would exceed the budget, entries are
// evicted from the least-recently-used end until the incoming payload fits.
package lrustore

import (
	"errors"
	"sync"

	"github.com/fetchwise/hoard/internal/keyindex"
)

// ErrCapacity indicates a non-positive byte capacity.
var ErrCapacity = errors.New("lrustore: capacity must be positive")

// defaultSizeHint pre-sizes the index for a typical proxy workload.
const defaultSizeHint = 1024

// EvictFunc is called for each entry removed under budget pressure, with the
// entry's key and resident size in bytes. It runs while the store lock is
// held and must not call back into the Store.
type EvictFunc func(key string, size int64)

// entry is one cached object together with its recency-list links. The links
// are relations, not ownership: the index and the list jointly own the entry.
type entry struct {
	key     string
	payload []byte

	prev *entry
	next *entry
}

// Store is a byte-budgeted LRU cache of opaque payloads keyed by string.
// All methods are safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	index    *keyindex.Index[string, *entry]
	head     *entry // most recently used
	tail     *entry // least recently used
	size     int64  // sum of live payload lengths
	capacity int64
	onEvict  EvictFunc
}

// New creates an empty store bounded by capacityBytes.
func New(capacityBytes int64) (*Store, error) {
	return NewWithEvict(capacityBytes, defaultSizeHint, nil)
}

// NewWithEvict creates an empty store bounded by capacityBytes, pre-sizing
// the index for sizeHint entries and notifying onEvict on each eviction.
// sizeHint may be zero; onEvict may be nil.
func NewWithEvict(capacityBytes int64, sizeHint int, onEvict EvictFunc) (*Store, error) {
	if capacityBytes <= 0 {
		return nil, ErrCapacity
	}

	s := &Store{
		capacity: capacityBytes,
		onEvict:  onEvict,
	}

	index, err := keyindex.New(sizeHint, s.release)
	if err != nil {
		return nil, err
	}
	s.index = index

	return s, nil
}

// release is the index's removal hook. It drops the entry's payload and
// links so a removed entry cannot keep cache memory reachable.
func (s *Store) release(_ string, e *entry) {
	e.payload = nil
	e.prev = nil
	e.next = nil
}

// Find returns a copy of the payload stored under key and promotes the
// entry to most-recently-used. The copy is taken while the lock is held, so
// the returned slice stays valid regardless of later evictions; the caller
// owns it.
func (s *Store) Find(key string) ([]byte, bool) {
	if key == "" {
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.index.Find(key)
	if !ok {
		return nil, false
	}

	s.detach(e)
	s.attachHead(e)

	payload := make([]byte, len(e.payload))
	copy(payload, e.payload)
	return payload, true
}

// Contains reports whether key is cached without promoting it.
func (s *Store) Contains(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.index.Find(key)
	return ok
}

// Add stores a copy of payload under key, inserting or updating in place,
// and promotes the entry to most-recently-used. Entries are evicted from the
// LRU end as needed to keep the total within capacity.
//
// Invalid input is a silent no-op reporting false: an empty key, an empty
// payload, or a payload that alone exceeds the capacity.
func (s *Store) Add(key string, payload []byte) bool {
	incoming := int64(len(payload))
	if key == "" || incoming == 0 || incoming > s.capacity {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.index.Find(key); ok {
		// Update in place: the old footprint is freed before eviction runs,
		// and the entry is off the list so it cannot evict itself.
		s.size -= int64(len(e.payload))
		s.detach(e)
		s.evictFor(incoming)

		e.payload = make([]byte, incoming)
		copy(e.payload, payload)
		s.size += incoming
		s.attachHead(e)
		return true
	}

	s.evictFor(incoming)

	e := &entry{
		key:     key,
		payload: make([]byte, incoming),
	}
	copy(e.payload, payload)

	s.attachHead(e)
	s.index.Insert(key, e)
	s.size += incoming
	return true
}

// Remove drops key from the store, reporting whether it was present.
// Explicit removal does not count as an eviction.
func (s *Store) Remove(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.index.Find(key)
	if !ok {
		return false
	}

	s.detach(e)
	s.size -= int64(len(e.payload))
	s.index.Erase(key)
	return true
}

// Purge removes every entry and resets the store to empty. The store remains
// usable afterwards.
func (s *Store) Purge() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.index.Purge()
	s.head = nil
	s.tail = nil
	s.size = 0
}

// Len returns the number of live entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Len()
}

// Size returns the total resident payload bytes.
func (s *Store) Size() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.size
}

// Capacity returns the fixed byte budget.
func (s *Store) Capacity() int64 {
	return s.capacity
}

// evictFor removes LRU entries until incoming fits within the capacity.
// Caller must hold s.mu and must have validated incoming <= capacity; the
// nil-tail check below guards the loop against running dry regardless.
func (s *Store) evictFor(incoming int64) {
	for s.size+incoming > s.capacity {
		lru := s.tail
		if lru == nil {
			return
		}

		s.detach(lru)
		n := int64(len(lru.payload))
		s.size -= n
		s.index.Erase(lru.key)

		if s.onEvict != nil {
			s.onEvict(lru.key, n)
		}
	}
}
