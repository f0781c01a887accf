// Package analysis provides statistical analysis for benchmark results.
package analysis

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// LatencySummary contains descriptive statistics for a latency sample,
// in the sample's own unit (the bench tool feeds microseconds).
type LatencySummary struct {
	N      int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	P50    float64
	P95    float64
	P99    float64
}

// Summarize computes descriptive statistics for a latency sample.
// The input is not modified.
func Summarize(sample []float64) *LatencySummary {
	if len(sample) == 0 {
		return &LatencySummary{}
	}

	sorted := make([]float64, len(sample))
	copy(sorted, sample)
	sort.Float64s(sorted)

	return &LatencySummary{
		N:      len(sorted),
		Mean:   stat.Mean(sorted, nil),
		StdDev: stat.StdDev(sorted, nil),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		P50:    stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P95:    stat.Quantile(0.95, stat.Empirical, sorted, nil),
		P99:    stat.Quantile(0.99, stat.Empirical, sorted, nil),
	}
}
