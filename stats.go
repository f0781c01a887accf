package hoard

// CacheStats is a point-in-time snapshot of cache activity.
type CacheStats struct {
	Finds       int64 // lookups attempted
	Hits        int64 // lookups that returned a payload
	Misses      int64 // lookups that found nothing usable
	Adds        int64 // payloads admitted
	Rejects     int64 // payloads refused (invalid input or encode failure)
	Evictions   int64 // entries removed under budget pressure
	Removes     int64 // entries removed explicitly
	Fetches     int64 // origin calls issued by Fetch
	FetchErrors int64 // origin calls that failed

	Entries   int   // current live entries
	SizeBytes int64 // current resident payload bytes
}

// HitRate returns the cache hit rate as a percentage.
func (s CacheStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// Stats returns a snapshot of cache activity since construction. Counters
// are read individually, so a snapshot taken under concurrent load may be
// momentarily inconsistent between fields.
func (c *Cache) Stats() CacheStats {
	return CacheStats{
		Finds:       c.finds.Load(),
		Hits:        c.hits.Load(),
		Misses:      c.misses.Load(),
		Adds:        c.adds.Load(),
		Rejects:     c.rejects.Load(),
		Evictions:   c.evictions.Load(),
		Removes:     c.removes.Load(),
		Fetches:     c.fetches.Load(),
		FetchErrors: c.fetchErrors.Load(),
		Entries:     c.strategy.Len(),
		SizeBytes:   c.strategy.Size(),
	}
}
