package hoard_test

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/fetchwise/hoard"
)

// Exercises the classic proxy-cache eviction sequence through the public
// API: three entries totalling 79 bytes fit a 100-byte budget, a fourth of
// 36 bytes evicts exactly the least-recently-used one.
func TestE2E_EvictionSequence(t *testing.T) {
	cache, err := hoard.New(hoard.WithCapacity(100))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer cache.Close()

	cache.Add("http://item1.com", []byte("I am the first data block."))  // 26
	cache.Add("http://item2.com", []byte("I am the second data block.")) // 27
	cache.Add("http://item3.com", []byte("I am the third data block."))  // 26

	for _, key := range []string{"http://item1.com", "http://item2.com", "http://item3.com"} {
		if _, ok := cache.Find(key); !ok {
			t.Fatalf("Find(%q) = false, want true", key)
		}
	}

	cache.Add("http://item4.com", []byte("Adding this data evicts the oldest!!")) // 36

	if _, ok := cache.Find("http://item1.com"); ok {
		t.Error("Find(item1) = true, want eviction of the oldest entry")
	}
	for _, key := range []string{"http://item2.com", "http://item3.com", "http://item4.com"} {
		if _, ok := cache.Find(key); !ok {
			t.Errorf("Find(%q) = false, want true", key)
		}
	}
	if want := int64(27 + 26 + 36); cache.Size() != want {
		t.Errorf("Size() = %d, want %d", cache.Size(), want)
	}
}

// Exercises update-then-evict: updating a key moves it to MRU and charges
// only the new length, so a later eviction falls on its stale neighbor.
func TestE2E_UpdateProtectsFromEviction(t *testing.T) {
	cache, err := hoard.New(hoard.WithCapacity(100))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer cache.Close()

	cache.Add("url1", []byte("old_data"))          // 8
	cache.Add("url2", []byte("some_data"))         // 9
	cache.Add("url1", []byte("NEW_DATA_REPLACED")) // 17, url2 is now LRU

	got, ok := cache.Find("url1")
	if !ok || !bytes.Equal(got, []byte("NEW_DATA_REPLACED")) {
		t.Fatalf("Find(url1) = %q, %v, want updated payload", got, ok)
	}

	cache.Add("url3", []byte("filler data number one")) // 22, total 48
	cache.Add("url4", []byte("filler data number two")) // 22, total 70
	cache.Add("url5", []byte("filler data number six")) // 22, total 92
	cache.Add("url6", []byte("Evict url2 now!"))        // 15, evicts url2

	if _, ok := cache.Find("url1"); !ok {
		t.Error("Find(url1) = false, want the update to have protected it")
	}
	if _, ok := cache.Find("url2"); ok {
		t.Error("Find(url2) = true, want eviction")
	}
}

// Simulates a proxy under concurrent load with a shared origin: multiple
// workers fetching overlapping keys must neither deadlock nor blow the
// budget, and popular keys should be served mostly from the cache.
func TestE2E_ConcurrentProxyWorkload(t *testing.T) {
	origin := hoard.OriginFunc(func(ctx context.Context, key string) ([]byte, error) {
		return []byte("origin content for " + key), nil
	})

	cache, err := hoard.New(
		hoard.WithCapacity(16<<10),
		hoard.WithOrigin(origin),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer cache.Close()

	const (
		workers = 8
		ops     = 400
		hotKeys = 32
	)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < ops; i++ {
				key := fmt.Sprintf("https://cdn.example.com/asset%d", (id+i)%hotKeys)
				payload, err := cache.Fetch(context.Background(), key)
				if err != nil {
					t.Errorf("Fetch(%q) error = %v", key, err)
					return
				}
				if want := "origin content for " + key; string(payload) != want {
					t.Errorf("Fetch(%q) = %q, want %q", key, payload, want)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	if cache.Size() > cache.Capacity() {
		t.Errorf("Size() = %d exceeds capacity %d", cache.Size(), cache.Capacity())
	}

	stats := cache.Stats()
	if stats.Fetches >= int64(workers*ops) {
		t.Errorf("Fetches = %d, want far fewer than %d total operations", stats.Fetches, workers*ops)
	}
}
