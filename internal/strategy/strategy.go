// Package strategy defines the cache eviction strategy interface.
package strategy

// Strategy is a bounded key-to-payload store with an eviction policy.
// Implementations must be safe for concurrent use and must return payloads
// the caller owns (never memory a later eviction can reclaim).
type Strategy interface {
	// Get retrieves the payload for key, promoting it per the policy.
	Get(key string) ([]byte, bool)

	// Add inserts or updates key, evicting per the policy to stay within
	// bounds. It reports whether the payload was admitted.
	Add(key string, payload []byte) bool

	// Remove drops key, reporting whether it was present.
	Remove(key string) bool

	// Len returns the number of live entries.
	Len() int

	// Size returns the resident payload bytes across live entries.
	Size() int64

	// Purge removes every entry; the strategy remains usable.
	Purge()
}

// EvictFunc is notified of each entry removed under pressure, with its key
// and resident size. Implementations may invoke it while holding internal
// locks; it must not call back into the strategy.
type EvictFunc func(key string, size int64)
