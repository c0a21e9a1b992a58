package parallel

import (
	"sync/atomic"
	"testing"
)

func TestParallelizeCoversRange(t *testing.T) {
	const items = 10000
	covered := make([]int32, items)

	Parallelize(items, func(start, end int) {
		for i := start; i < end; i++ {
			atomic.AddInt32(&covered[i], 1)
		}
	})

	for i, c := range covered {
		if c != 1 {
			t.Fatalf("index %d visited %d times, want 1", i, c)
		}
	}
}

func TestParallelizeZeroItems(t *testing.T) {
	called := false
	Parallelize(0, func(start, end int) {
		called = true
	})
	if called {
		t.Error("fn called for empty range")
	}
}

func TestParallelizeWithThreshold(t *testing.T) {
	var calls int32
	ParallelizeWithThreshold(100, 1000, func(start, end int) {
		atomic.AddInt32(&calls, 1)
		if start != 0 || end != 100 {
			t.Errorf("sequential path got range [%d, %d), want [0, 100)", start, end)
		}
	})
	if calls != 1 {
		t.Errorf("sequential path ran %d calls, want 1", calls)
	}

	covered := make([]int32, 5000)
	ParallelizeWithThreshold(len(covered), 1000, func(start, end int) {
		for i := start; i < end; i++ {
			atomic.AddInt32(&covered[i], 1)
		}
	})
	for i, c := range covered {
		if c != 1 {
			t.Fatalf("index %d visited %d times, want 1", i, c)
		}
	}
}
