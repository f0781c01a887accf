package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fetchwise/hoard"
	"github.com/fetchwise/hoard/benchmark/analysis"
	"github.com/fetchwise/hoard/benchmark/workload"
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run a synthetic workload against an in-process cache",
	Long: `Run a synthetic read-through workload against a cache instance and
report the hit rate and per-request latency distribution.

Each worker draws keys from the chosen distribution and fetches them
through the cache. Misses are served by a synthetic origin that returns
a stable payload per key, so eviction pressure depends only on the
capacity, the key space, and the payload size range.

Examples:
  # Heavy-tailed workload, 8 workers
  hoard bench --requests 200000 --workers 8

  # Stress eviction with a small budget and large payloads
  hoard bench --capacity 1048576 --min-size 4096 --max-size 65536`,
	RunE: runBench,
}

var (
	requests     int
	workers      int
	keySpace     int
	distribution string
	minSize      int
	maxSize      int
	seed         int64
	compression  string
)

func init() {
	benchCmd.Flags().IntVarP(&requests, "requests", "n", 100000, "total number of requests")
	benchCmd.Flags().IntVarP(&workers, "workers", "w", 4, "number of concurrent workers")
	benchCmd.Flags().IntVar(&keySpace, "keys", 10000, "number of distinct keys")
	benchCmd.Flags().StringVarP(&distribution, "distribution", "d", "zipf", "key distribution: zipf, uniform")
	benchCmd.Flags().IntVar(&minSize, "min-size", 256, "minimum payload size in bytes")
	benchCmd.Flags().IntVar(&maxSize, "max-size", 4096, "maximum payload size in bytes")
	benchCmd.Flags().Int64Var(&seed, "seed", 1, "workload seed")
	benchCmd.Flags().StringVar(&compression, "compression", "", "payload compression: zstd, gzip (default none)")

	rootCmd.AddCommand(benchCmd)
}

func runBench(cmd *cobra.Command, args []string) error {
	if requests <= 0 {
		return fmt.Errorf("requests must be positive, got %d", requests)
	}
	if workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", workers)
	}

	// One generator validates the flag values; the workers get their
	// own seeded generators below so key draws stay race-free.
	origin, err := workload.NewGenerator(workload.Distribution(distribution), keySpace, minSize, maxSize, seed)
	if err != nil {
		return err
	}

	logger := zap.NewNop()
	if verbose {
		logger, err = zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		defer logger.Sync()
	}

	opts := []hoard.Option{
		hoard.WithCapacity(capacityBytes),
		hoard.WithLogger(logger),
		hoard.WithOrigin(hoard.OriginFunc(func(ctx context.Context, key string) ([]byte, error) {
			return origin.PayloadFor(key), nil
		})),
	}
	if compression != "" {
		compOpt, err := hoard.WithCompression(compression)
		if err != nil {
			return err
		}
		opts = append(opts, compOpt)
	}

	cache, err := hoard.New(opts...)
	if err != nil {
		return fmt.Errorf("creating cache: %w", err)
	}
	defer cache.Close()

	latencies := make([][]float64, workers)

	start := time.Now()

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()

			gen, err := workload.NewGenerator(workload.Distribution(distribution), keySpace, minSize, maxSize, seed+int64(id))
			if err != nil {
				errs <- err
				return
			}

			ctx := context.Background()
			share := workerRequests(requests, workers, id)
			sample := make([]float64, 0, share)
			for i := 0; i < share; i++ {
				key := gen.NextKey()
				t0 := time.Now()
				if _, err := cache.Fetch(ctx, key); err != nil {
					errs <- fmt.Errorf("worker %d: fetching %q: %w", id, key, err)
					return
				}
				sample = append(sample, float64(time.Since(t0).Microseconds()))
			}
			latencies[id] = sample
		}(w)
	}
	wg.Wait()
	close(errs)
	if err := <-errs; err != nil {
		return err
	}

	elapsed := time.Since(start)

	var merged []float64
	for _, sample := range latencies {
		merged = append(merged, sample...)
	}

	printReport(cache, analysis.Summarize(merged), elapsed)
	return nil
}

// workerRequests returns how many requests worker id runs, spreading the
// division remainder over the first workers so the shares sum to total.
func workerRequests(total, workers, id int) int {
	share := total / workers
	if id < total%workers {
		share++
	}
	return share
}

func printReport(cache *hoard.Cache, summary *analysis.LatencySummary, elapsed time.Duration) {
	stats := cache.Stats()

	fmt.Printf("Hoard Cache Benchmark\n")
	fmt.Printf("=====================\n\n")
	fmt.Printf("Capacity:     %d bytes\n", capacityBytes)
	fmt.Printf("Requests:     %d\n", summary.N)
	fmt.Printf("Workers:      %d\n", workers)
	fmt.Printf("Distribution: %s over %d keys\n", distribution, keySpace)
	fmt.Printf("Elapsed:      %s\n\n", elapsed.Round(time.Millisecond))

	fmt.Printf("Cache:\n")
	fmt.Printf("  Hit rate:   %.1f%%\n", stats.HitRate())
	fmt.Printf("  Hits:       %d\n", stats.Hits)
	fmt.Printf("  Misses:     %d\n", stats.Misses)
	fmt.Printf("  Evictions:  %d\n", stats.Evictions)
	fmt.Printf("  Entries:    %d\n", stats.Entries)
	fmt.Printf("  Size:       %d bytes\n\n", stats.SizeBytes)

	fmt.Printf("Latency (us):\n")
	fmt.Printf("  Mean:   %.1f\n", summary.Mean)
	fmt.Printf("  StdDev: %.1f\n", summary.StdDev)
	fmt.Printf("  Min:    %.1f\n", summary.Min)
	fmt.Printf("  P50:    %.1f\n", summary.P50)
	fmt.Printf("  P95:    %.1f\n", summary.P95)
	fmt.Printf("  P99:    %.1f\n", summary.P99)
	fmt.Printf("  Max:    %.1f\n", summary.Max)

	if requests > 0 {
		fmt.Printf("\nThroughput:   %.0f req/s\n", float64(summary.N)/elapsed.Seconds())
	}
}
