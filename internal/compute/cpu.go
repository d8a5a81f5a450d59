package compute

import (
	"runtime"
	"sync"
)

type CPUBackend struct {
	workers int
}

// NewCPUBackend spreads work over n goroutines, or one per CPU when n <= 0.
func NewCPUBackend(n int) *CPUBackend {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	return &CPUBackend{workers: n}
}

func (c *CPUBackend) Name() string    { return "cpu" }
func (c *CPUBackend) Available() bool { return true }
func (c *CPUBackend) Workers() int    { return c.workers }
func (c *CPUBackend) Cleanup()        {}

// parallelChunks splits [0, n) into one contiguous chunk per worker and
// returns the first error any chunk reports.
func parallelChunks(n, workers int, fn func(start, end int) error) error {
	if workers > n {
		workers = n
	}
	chunkSize := (n + workers - 1) / workers
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()

			start := worker * chunkSize
			end := start + chunkSize
			if end > n {
				end = n
			}
			if start >= end {
				return
			}
			errs[worker] = fn(start, end)
		}(w)
	}

	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
