// Package parallel provides a small helper for splitting row-wise work
// across CPU cores. Callers are responsible for making the per-range
// function safe to run concurrently; writing to disjoint rows of a
// shared matrix is fine.
package parallel

import (
	"runtime"
	"sync"
)

// Parallelize splits the half-open range [0, items) into one chunk per
// available CPU core and runs fn(start, end) for each chunk
// concurrently, returning when all chunks are done.
func Parallelize(items int, fn func(start, end int)) {
	if items == 0 {
		return
	}

	numWorkers := runtime.NumCPU()
	if numWorkers > items {
		numWorkers = items
	}
	chunkSize := (items + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > items {
			end = items
		}
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// ParallelizeWithThreshold runs fn sequentially over the whole range
// when items is at or below threshold, and in parallel otherwise. Small
// inputs stay on one goroutine where the spawn overhead would dominate.
func ParallelizeWithThreshold(items, threshold int, fn func(start, end int)) {
	if items <= threshold {
		fn(0, items)
		return
	}
	Parallelize(items, fn)
}
