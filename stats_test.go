package hoard

import (
	"bytes"
	"testing"
)

func TestCacheStats_HitRate(t *testing.T) {
	tests := []struct {
		name     string
		hits     int64
		misses   int64
		expected float64
	}{
		{"no lookups", 0, 0, 0},
		{"all hits", 10, 0, 100},
		{"all misses", 0, 10, 0},
		{"50% hit rate", 5, 5, 50},
		{"75% hit rate", 3, 1, 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := CacheStats{Hits: tt.hits, Misses: tt.misses}
			if got := s.HitRate(); got != tt.expected {
				t.Errorf("HitRate() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCache_StatsSnapshot(t *testing.T) {
	c := mustNew(t, WithCapacity(20))
	defer c.Close()

	c.Add("a", bytes.Repeat([]byte("a"), 10))
	c.Add("b", bytes.Repeat([]byte("b"), 10))
	c.Add("c", bytes.Repeat([]byte("c"), 10)) // evicts a

	c.Find("b") // hit
	c.Find("a") // miss (evicted)
	c.Remove("b")

	s := c.Stats()
	if s.Adds != 3 {
		t.Errorf("Adds = %d, want 3", s.Adds)
	}
	if s.Evictions != 1 {
		t.Errorf("Evictions = %d, want 1", s.Evictions)
	}
	if s.Finds != 2 || s.Hits != 1 || s.Misses != 1 {
		t.Errorf("Finds/Hits/Misses = %d/%d/%d, want 2/1/1", s.Finds, s.Hits, s.Misses)
	}
	if s.Removes != 1 {
		t.Errorf("Removes = %d, want 1", s.Removes)
	}
	if s.Entries != 1 || s.SizeBytes != 10 {
		t.Errorf("Entries = %d, SizeBytes = %d, want 1, 10", s.Entries, s.SizeBytes)
	}
	if s.HitRate() != 50 {
		t.Errorf("HitRate() = %v, want 50", s.HitRate())
	}
}
