package main

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags.
	capacityBytes int64
	verbose       bool
)

var rootCmd = &cobra.Command{
	Use:   "hoard",
	Short: "Byte-budgeted in-process LRU cache for URL-keyed payloads",
	Long: `Hoard is a CLI tool for exercising the hoard cache library.

It runs synthetic workloads against an in-process cache instance and
reports hit rates and latency distributions, which is useful for sizing
a byte budget before embedding the cache in a service.

Examples:
  # Run a zipf-distributed workload against a 64 MiB cache
  hoard bench --capacity 67108864 --requests 100000

  # Compare against a uniform key distribution
  hoard bench --distribution uniform --requests 100000`,
}

func init() {
	rootCmd.PersistentFlags().Int64VarP(&capacityBytes, "capacity", "c", 64<<20, "cache capacity in bytes")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}
