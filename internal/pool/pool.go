// Package pool provides a fixed-size worker pool for draining a bounded
// list of independent work items.
package pool

import (
	"context"
	"sync"
)

// Pool runs work items with bounded parallelism. A Pool is constructed
// for a single batch and torn down when Run returns; it holds no state
// between batches. Item failures are the callback's concern; one item
// failing never cancels its siblings.
type Pool struct {
	workers int
}

// New creates a pool that runs at most workers items concurrently.
// Sizes below 1 are treated as 1.
func New(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{workers: workers}
}

// Workers reports the pool's concurrency limit.
func (p *Pool) Workers() int {
	return p.workers
}

// Run executes fn(ctx, i) for every i in [0, n) and blocks until all
// items have finished. When ctx is cancelled, items that have not yet
// started are abandoned; items already running are left to complete.
func (p *Pool) Run(ctx context.Context, n int, fn func(ctx context.Context, i int)) {
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, p.workers)

	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			semaphore <- struct{}{}        // Acquire
			defer func() { <-semaphore }() // Release

			if ctx.Err() != nil {
				return
			}
			fn(ctx, idx)
		}(i)
	}

	wg.Wait()
}
