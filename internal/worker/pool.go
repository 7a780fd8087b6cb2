// Package worker provides the concurrency primitives for collection
// runs: a bounded fan-out pool and per-host rate limiting.
package worker

import (
	"context"
	"sync"
	"sync/atomic"
)

// Job is one unit of work, typically a single article fetch.
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is what a job hands back. Err reports the job's failure, nil
// for success.
type Result interface {
	Err() error
}

// Pool runs queued jobs over a fixed number of goroutines. Submit only
// queues; Run executes everything and returns results in submission
// order, so callers correlate inputs and outputs by position.
type Pool struct {
	workers int
	jobs    []Job
}

// NewPool creates a pool. Non-positive worker counts fall back to one.
func NewPool(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{workers: workers}
}

// Submit queues a job for the next Run. Queue from one goroutine only.
func (p *Pool) Submit(job Job) {
	p.jobs = append(p.jobs, job)
}

// Run executes every queued job and blocks until the last one finishes.
// The context flows into each Execute call; honoring cancellation is the
// job's responsibility, so a cancelled run still yields one result per
// job. The queue is empty afterwards.
func (p *Pool) Run(ctx context.Context) []Result {
	n := len(p.jobs)
	if n == 0 {
		return nil
	}

	workers := p.workers
	if workers > n {
		workers = n
	}

	results := make([]Result, n)
	var cursor atomic.Int64
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				i := int(cursor.Add(1)) - 1
				if i >= n {
					return
				}
				results[i] = p.jobs[i].Execute(ctx)
			}
		}()
	}
	wg.Wait()

	p.jobs = nil
	return results
}
