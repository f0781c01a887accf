// Package stats provides a unified interface for collecting metrics.
package stats

// Metric names used throughout the library.
const (
	// Lookup metrics.
	MetricFinds  = "hoard_finds_total"
	MetricHits   = "hoard_hits_total"
	MetricMisses = "hoard_misses_total"

	// Mutation metrics.
	MetricAdds      = "hoard_adds_total"
	MetricRejects   = "hoard_rejects_total"
	MetricEvictions = "hoard_evictions_total"
	MetricRemoves   = "hoard_removes_total"

	// Read-through metrics.
	MetricFetches     = "hoard_fetches_total"
	MetricFetchErrors = "hoard_fetch_errors_total"

	// Occupancy gauges.
	MetricSizeBytes = "hoard_size_bytes"
	MetricEntries   = "hoard_entries"
)

// Collector defines the interface for collecting metrics.
type Collector interface {
	// IncCounter increments a counter metric by delta.
	IncCounter(name string, delta int64)

	// SetGauge sets a gauge metric to value.
	SetGauge(name string, value int64)

	// ObserveHistogram records a value in a histogram metric.
	ObserveHistogram(name string, value float64)
}
