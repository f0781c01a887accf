// Package hoard provides an embeddable, thread-safe object cache keyed by
// URL-like strings, bounded by a fixed byte budget, evicting
// least-recently-used entries under pressure. It is designed to sit in front
// of an expensive fetch path (e.g. a proxying server) so repeated lookups of
// the same key avoid refetching.
//
// Example usage:
//
//	cache, err := hoard.New(
//	    hoard.WithCapacity(64 << 20), // 64 MiB
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer cache.Close()
//
//	cache.Add("https://example.com/resource", body)
//	if payload, ok := cache.Find("https://example.com/resource"); ok {
//	    serve(payload)
//	}
package hoard

import (
	"errors"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/fetchwise/hoard/internal/codec"
	"github.com/fetchwise/hoard/internal/stats"
	"github.com/fetchwise/hoard/internal/strategy"
)

// DefaultCapacity is the byte budget used when no capacity option is given.
const DefaultCapacity = 10 << 20 // 10 MiB

// Sentinel errors for well-defined error conditions.
var (
	// ErrCapacity indicates a non-positive byte capacity.
	ErrCapacity = errors.New("hoard: capacity must be positive")

	// ErrClosed indicates the cache has been closed.
	ErrClosed = errors.New("hoard: cache closed")

	// ErrNoOrigin indicates Fetch was called without a configured origin.
	ErrNoOrigin = errors.New("hoard: no origin configured")
)

// Cache is a byte-budgeted LRU object cache.
// A Cache is safe for concurrent use by multiple goroutines.
//
// Every operation is linearizable: Find and Add take the same exclusive
// lock inside the strategy, Find promotes its entry, and a Find observes the
// state left by the most recently completed Add for that key.
type Cache struct {
	strategy strategy.Strategy
	codec    codec.Codec
	origin   Origin
	capacity int64
	stats    stats.Collector
	logger   *zap.Logger
	group    singleflight.Group
	closed   atomic.Bool

	finds       atomic.Int64
	hits        atomic.Int64
	misses      atomic.Int64
	adds        atomic.Int64
	rejects     atomic.Int64
	evictions   atomic.Int64
	removes     atomic.Int64
	fetches     atomic.Int64
	fetchErrors atomic.Int64
}

// New creates a new Cache with the given options.
// If no options are provided, a 10 MiB byte-budget LRU is used.
// New never terminates the process; construction failures are returned.
func New(opts ...Option) (*Cache, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	c := &Cache{
		codec:  cfg.codec,
		origin: cfg.origin,
		stats:  cfg.stats,
		logger: cfg.logger,
	}

	st, capacity, err := cfg.buildStrategy(c.evicted)
	if err != nil {
		return nil, err
	}
	c.strategy = st
	c.capacity = capacity

	c.logger.Debug("cache initialized",
		zap.Int64("capacityBytes", c.capacity),
		zap.String("codec", c.codec.Name()),
	)

	return c, nil
}

// Find returns the payload stored under key, promoting the entry to
// most-recently-used. The returned slice is an owned copy taken inside the
// cache's critical section; it stays valid regardless of concurrent
// evictions and the caller may retain or mutate it freely.
func (c *Cache) Find(key string) ([]byte, bool) {
	if c.closed.Load() {
		return nil, false
	}

	c.finds.Add(1)
	c.stats.IncCounter(stats.MetricFinds, 1)

	payload, ok := c.find(key)
	if !ok {
		c.misses.Add(1)
		c.stats.IncCounter(stats.MetricMisses, 1)
		return nil, false
	}

	c.hits.Add(1)
	c.stats.IncCounter(stats.MetricHits, 1)
	return payload, true
}

// find looks up and decodes key without touching the lookup counters, so
// Fetch can re-check inside a coalesced flight without a second count.
func (c *Cache) find(key string) ([]byte, bool) {
	stored, ok := c.strategy.Get(key)
	if !ok {
		return nil, false
	}

	payload, err := c.codec.Decode(stored)
	if err != nil {
		// A resident entry that no longer decodes is useless; drop it.
		c.logger.Warn("dropping undecodable entry",
			zap.String("key", key),
			zap.Error(err),
		)
		c.strategy.Remove(key)
		c.publishOccupancy()
		return nil, false
	}

	return payload, true
}

// Add stores a copy of payload under key, inserting or updating, and
// promotes the entry to most-recently-used. Entries are evicted from the
// LRU end as needed to honor the byte budget. It reports whether the
// payload was admitted.
//
// Invalid input (an empty key, an empty payload, or a payload whose
// resident form alone exceeds the capacity) is a silent no-op.
//
// If encoding the replacement payload for an existing key fails, the key
// is removed entirely rather than left holding the previous payload, which
// can no longer be assumed current. A failed encode for a new key leaves
// the cache unchanged.
func (c *Cache) Add(key string, payload []byte) bool {
	if c.closed.Load() {
		return false
	}

	if key == "" || len(payload) == 0 {
		c.rejects.Add(1)
		c.stats.IncCounter(stats.MetricRejects, 1)
		return false
	}

	stored, err := c.codec.Encode(payload)
	if err != nil {
		if c.strategy.Remove(key) {
			c.logger.Warn("dropping entry after failed payload replacement",
				zap.String("key", key),
				zap.Error(err),
			)
			c.publishOccupancy()
		}
		c.rejects.Add(1)
		c.stats.IncCounter(stats.MetricRejects, 1)
		return false
	}

	admitted := c.strategy.Add(key, stored)
	if admitted {
		c.adds.Add(1)
		c.stats.IncCounter(stats.MetricAdds, 1)
	} else {
		c.rejects.Add(1)
		c.stats.IncCounter(stats.MetricRejects, 1)
	}
	c.publishOccupancy()
	return admitted
}

// Remove drops key from the cache, reporting whether it was present.
// Explicit removal does not count as an eviction.
func (c *Cache) Remove(key string) bool {
	if c.closed.Load() {
		return false
	}

	present := c.strategy.Remove(key)
	if present {
		c.removes.Add(1)
		c.stats.IncCounter(stats.MetricRemoves, 1)
		c.publishOccupancy()
	}
	return present
}

// Purge removes every entry while keeping the cache usable, resetting
// occupancy to zero.
func (c *Cache) Purge() {
	if c.closed.Load() {
		return
	}
	c.strategy.Purge()
	c.publishOccupancy()
	c.logger.Debug("cache purged")
}

// Close releases all cached entries and marks the cache closed. After
// Close, Find and Add are misses/no-ops and Fetch returns ErrClosed.
// Closing twice returns ErrClosed.
func (c *Cache) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}

	c.strategy.Purge()
	c.publishOccupancy()
	c.logger.Debug("cache closed")
	return nil
}

// Len returns the number of live entries.
func (c *Cache) Len() int {
	return c.strategy.Len()
}

// Size returns the resident payload bytes across live entries. With a
// compressing codec this is the encoded footprint, which is what the byte
// budget bounds.
func (c *Cache) Size() int64 {
	return c.strategy.Size()
}

// Capacity returns the configured byte budget, or zero when the active
// strategy is not byte-bounded.
func (c *Cache) Capacity() int64 {
	return c.capacity
}

// evicted is wired as the strategy's eviction callback. It runs inside the
// strategy's critical section, so it only touches counters and the logger.
func (c *Cache) evicted(key string, size int64) {
	c.evictions.Add(1)
	c.stats.IncCounter(stats.MetricEvictions, 1)
	c.logger.Debug("evicted entry",
		zap.String("key", key),
		zap.Int64("sizeBytes", size),
	)
}

// publishOccupancy pushes the occupancy gauges to the collector.
func (c *Cache) publishOccupancy() {
	c.stats.SetGauge(stats.MetricSizeBytes, c.strategy.Size())
	c.stats.SetGauge(stats.MetricEntries, int64(c.strategy.Len()))
}
