// Package keyindex provides the key-to-entry index backing the cache store.
//
// It is a thin wrapper over a built-in map whose one job beyond lookup is
// ownership: erasing a key (individually or via Purge) fires a release hook
// for the removed pair, so the owner has a single place to observe every
// entry leaving the index. The index performs no locking of its own.
package keyindex

import "errors"

// ErrSizeHint indicates a negative initial size hint.
var ErrSizeHint = errors.New("keyindex: size hint must not be negative")

// Index maps keys to values with a release hook invoked on removal.
// Callers must not rely on any iteration order.
type Index[K comparable, V any] struct {
	entries map[K]V
	release func(K, V)
}

// New creates an empty index. sizeHint pre-sizes the backing map and may be
// zero. release is invoked for every pair removed by Erase or Purge; it may
// be nil.
func New[K comparable, V any](sizeHint int, release func(K, V)) (*Index[K, V], error) {
	if sizeHint < 0 {
		return nil, ErrSizeHint
	}
	return &Index[K, V]{
		entries: make(map[K]V, sizeHint),
		release: release,
	}, nil
}

// Find returns the value for key, if present.
func (ix *Index[K, V]) Find(key K) (V, bool) {
	v, ok := ix.entries[key]
	return v, ok
}

// Insert stores value under key, replacing any previous value without
// firing the release hook for it. The store never inserts over a live key.
func (ix *Index[K, V]) Insert(key K, value V) {
	ix.entries[key] = value
}

// Erase removes key from the index, firing the release hook for the stored
// pair. Erasing an absent key is a no-op and reports false.
func (ix *Index[K, V]) Erase(key K) bool {
	v, ok := ix.entries[key]
	if !ok {
		return false
	}
	delete(ix.entries, key)
	if ix.release != nil {
		ix.release(key, v)
	}
	return true
}

// Purge removes every entry, firing the release hook for each.
func (ix *Index[K, V]) Purge() {
	for k, v := range ix.entries {
		delete(ix.entries, k)
		if ix.release != nil {
			ix.release(k, v)
		}
	}
}

// Len returns the number of indexed entries.
func (ix *Index[K, V]) Len() int {
	return len(ix.entries)
}
