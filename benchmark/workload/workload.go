// Package workload generates synthetic cache access patterns for
// benchmarking. Keys are drawn from a configurable distribution over a
// fixed key space, and payload sizes vary per key so that byte-budget
// eviction behaves the way it would against real traffic.
package workload

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// Distribution selects which key popularity model a Generator uses.
type Distribution string

const (
	// Uniform draws every key with equal probability.
	Uniform Distribution = "uniform"

	// Zipf draws keys with a heavy-tailed popularity skew, which is
	// closer to the access pattern of a URL-keyed proxy cache.
	Zipf Distribution = "zipf"
)

// Generator produces a repeatable stream of cache requests.
type Generator struct {
	rng      *rand.Rand
	zipf     *rand.Zipf
	keySpace int
	minSize  int
	maxSize  int
}

// NewGenerator creates a Generator over keySpace distinct keys with
// payload sizes in [minSize, maxSize]. The same seed yields the same
// request stream.
func NewGenerator(dist Distribution, keySpace, minSize, maxSize int, seed int64) (*Generator, error) {
	if keySpace <= 0 {
		return nil, fmt.Errorf("workload: key space must be positive, got %d", keySpace)
	}
	if minSize <= 0 || maxSize < minSize {
		return nil, fmt.Errorf("workload: invalid payload size range [%d, %d]", minSize, maxSize)
	}

	g := &Generator{
		rng:      rand.New(rand.NewSource(seed)),
		keySpace: keySpace,
		minSize:  minSize,
		maxSize:  maxSize,
	}

	switch dist {
	case Uniform:
		// No extra state needed.
	case Zipf:
		// s=1.1, v=1 gives a moderately skewed distribution where a
		// small set of hot keys dominates without starving the tail.
		g.zipf = rand.NewZipf(g.rng, 1.1, 1, uint64(keySpace-1))
	default:
		return nil, fmt.Errorf("workload: unknown distribution %q", dist)
	}

	return g, nil
}

// NextKey returns the next key in the request stream.
func (g *Generator) NextKey() string {
	var id uint64
	if g.zipf != nil {
		id = g.zipf.Uint64()
	} else {
		id = uint64(g.rng.Intn(g.keySpace))
	}
	return fmt.Sprintf("http://bench.example/object/%d", id)
}

// PayloadFor returns the payload for a key. The size is derived from
// the key alone, so repeated fetches of the same key produce payloads
// of the same length, matching an origin that serves stable objects.
func (g *Generator) PayloadFor(key string) []byte {
	size := g.minSize
	if g.maxSize > g.minSize {
		h := fnv.New64a()
		h.Write([]byte(key))
		size += int(h.Sum64() % uint64(g.maxSize-g.minSize+1))
	}

	payload := make([]byte, size)
	for i := range payload {
		payload[i] = byte('a' + (i % 26))
	}
	return payload
}
