package main

import "testing"

func TestWorkerRequests(t *testing.T) {
	tests := []struct {
		name    string
		total   int
		workers int
	}{
		{"even split", 100, 4},
		{"remainder", 10, 3},
		{"fewer requests than workers", 3, 8},
		{"single worker", 7, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sum int
			for id := 0; id < tt.workers; id++ {
				share := workerRequests(tt.total, tt.workers, id)
				if share < 0 {
					t.Fatalf("worker %d: share = %d, want non-negative", id, share)
				}
				sum += share
			}
			if sum != tt.total {
				t.Errorf("shares sum to %d, want %d", sum, tt.total)
			}
		})
	}
}
