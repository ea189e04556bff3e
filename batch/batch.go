// Package batch runs per-item work across a fixed worker pool.
package batch

import (
	"runtime"
	"sync"
)

// Run invokes fn(i) for every i in [0, n). With workers <= 1 the calls run
// sequentially in order; otherwise they are distributed across the pool and
// may run in any order. fn must handle its own synchronization for shared
// state, which index-addressed result slices avoid.
func Run(n, workers int, fn func(i int)) {
	if n <= 0 {
		return
	}

	if workers <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	workers = min(workers, n)

	jobs := make(chan int, n)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				fn(i)
			}
		}()
	}

	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
}

// DefaultWorkers picks a worker count for CPU-bound audio analysis
func DefaultWorkers() int {
	return max(1, runtime.NumCPU()/2)
}
