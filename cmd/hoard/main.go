// Package main provides the hoard CLI tool for exercising and
// benchmarking the cache under synthetic workloads.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
