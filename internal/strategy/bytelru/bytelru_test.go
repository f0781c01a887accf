package bytelru

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fetchwise/hoard/internal/lrustore"
)

func TestNew_InvalidCapacity(t *testing.T) {
	_, err := New(0)
	if !errors.Is(err, lrustore.ErrCapacity) {
		t.Errorf("New(0) error = %v, want ErrCapacity", err)
	}
}

func TestStrategy_GetAdd(t *testing.T) {
	s, err := New(100)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, ok := s.Get("k"); ok {
		t.Error("Get() on empty strategy should miss")
	}

	if !s.Add("k", []byte("payload")) {
		t.Fatal("Add() = false, want true")
	}

	got, ok := s.Get("k")
	if !ok || !bytes.Equal(got, []byte("payload")) {
		t.Errorf("Get() = %q, %v, want payload, true", got, ok)
	}
	if s.Len() != 1 || s.Size() != 7 {
		t.Errorf("Len() = %d, Size() = %d, want 1, 7", s.Len(), s.Size())
	}
}

func TestStrategy_ByteBudgetEviction(t *testing.T) {
	var evicted []string
	s, err := NewWithEvict(20, 0, func(key string, size int64) {
		evicted = append(evicted, key)
	})
	if err != nil {
		t.Fatalf("NewWithEvict() error = %v", err)
	}

	s.Add("a", bytes.Repeat([]byte("a"), 10))
	s.Add("b", bytes.Repeat([]byte("b"), 10))
	s.Add("c", bytes.Repeat([]byte("c"), 10))

	if len(evicted) != 1 || evicted[0] != "a" {
		t.Errorf("evicted = %v, want [a]", evicted)
	}
	if s.Size() > s.Capacity() {
		t.Errorf("Size() = %d exceeds capacity %d", s.Size(), s.Capacity())
	}
}

func TestStrategy_RemovePurge(t *testing.T) {
	s, err := New(100)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	s.Add("a", []byte("aa"))
	s.Add("b", []byte("bb"))

	if !s.Remove("a") {
		t.Error("Remove(a) = false, want true")
	}
	s.Purge()
	if s.Len() != 0 || s.Size() != 0 {
		t.Errorf("Len() = %d, Size() = %d after Purge, want 0, 0", s.Len(), s.Size())
	}
}
