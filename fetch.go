package hoard

import (
	"context"
	"fmt"

	"github.com/fetchwise/hoard/internal/stats"
)

// Origin is the expensive fetch path the cache fronts. Implementations are
// typically HTTP clients or storage backends; they must be safe for
// concurrent use.
type Origin interface {
	// Fetch retrieves the payload for key from the backing source.
	Fetch(ctx context.Context, key string) ([]byte, error)
}

// OriginFunc adapts a function to the Origin interface.
type OriginFunc func(ctx context.Context, key string) ([]byte, error)

// Fetch calls f.
func (f OriginFunc) Fetch(ctx context.Context, key string) ([]byte, error) {
	return f(ctx, key)
}

// Fetch returns the payload for key, consulting the cache first and falling
// back to the configured origin on a miss. Fetched payloads are admitted to
// the cache before being returned. Concurrent fetches of the same key are
// coalesced into a single origin call; every caller receives that call's
// result.
//
// Returns ErrNoOrigin when no origin is configured and ErrClosed after
// Close. Origin failures are returned wrapped and nothing is cached.
func (c *Cache) Fetch(ctx context.Context, key string) ([]byte, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}

	if payload, ok := c.Find(key); ok {
		return payload, nil
	}

	if c.origin == nil {
		return nil, ErrNoOrigin
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		// A concurrent fetch may have populated the key while this call
		// waited its turn. The outer Find already counted this lookup, so
		// the re-check bypasses the counters.
		if payload, ok := c.find(key); ok {
			return payload, nil
		}

		c.fetches.Add(1)
		c.stats.IncCounter(stats.MetricFetches, 1)

		payload, err := c.origin.Fetch(ctx, key)
		if err != nil {
			c.fetchErrors.Add(1)
			c.stats.IncCounter(stats.MetricFetchErrors, 1)
			return nil, fmt.Errorf("hoard: fetching %q: %w", key, err)
		}

		c.Add(key, payload)
		return payload, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}
