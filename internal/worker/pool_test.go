package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

// indexResult carries the submitting index back so order is checkable.
type indexResult struct {
	index int
	err   error
}

func (r *indexResult) Err() error {
	return r.err
}

// indexJob sleeps a little and returns its own index. Earlier jobs sleep
// longer, so completion order inverts submission order.
type indexJob struct {
	index int
	total int
}

func (j *indexJob) Execute(ctx context.Context) Result {
	time.Sleep(time.Duration(j.total-j.index) * time.Millisecond)
	return &indexResult{index: j.index}
}

func TestPool_ResultsInSubmissionOrder(t *testing.T) {
	pool := NewPool(4)
	total := 12
	for i := 0; i < total; i++ {
		pool.Submit(&indexJob{index: i, total: total})
	}

	results := pool.Run(context.Background())
	if len(results) != total {
		t.Fatalf("Expected %d results, got %d", total, len(results))
	}
	for i, result := range results {
		if got := result.(*indexResult).index; got != i {
			t.Errorf("Result %d came from job %d", i, got)
		}
	}
}

// gaugeJob tracks how many executions overlap.
type gaugeJob struct {
	current *atomic.Int64
	peak    *atomic.Int64
}

func (j *gaugeJob) Execute(ctx context.Context) Result {
	now := j.current.Add(1)
	for {
		peak := j.peak.Load()
		if now <= peak || j.peak.CompareAndSwap(peak, now) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)
	j.current.Add(-1)
	return &indexResult{}
}

func TestPool_BoundsConcurrency(t *testing.T) {
	workers := 3
	pool := NewPool(workers)

	var current, peak atomic.Int64
	for i := 0; i < 20; i++ {
		pool.Submit(&gaugeJob{current: &current, peak: &peak})
	}
	pool.Run(context.Background())

	if got := peak.Load(); got > int64(workers) {
		t.Errorf("Peak concurrency %d exceeded %d workers", got, workers)
	}
}

func TestPool_EmptyRun(t *testing.T) {
	pool := NewPool(2)
	if results := pool.Run(context.Background()); results != nil {
		t.Errorf("Expected nil results for empty queue, got %v", results)
	}
}

// failJob returns an error result without failing the run.
type failJob struct{}

func (failJob) Execute(ctx context.Context) Result {
	return &indexResult{err: errors.New("fetch failed")}
}

// okJob always succeeds.
type okJob struct{}

func (okJob) Execute(ctx context.Context) Result {
	return &indexResult{}
}

func TestPool_ErrorsStayPerJob(t *testing.T) {
	pool := NewPool(2)
	pool.Submit(failJob{})
	pool.Submit(okJob{})
	pool.Submit(failJob{})

	results := pool.Run(context.Background())
	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}
	for i, wantErr := range []bool{true, false, true} {
		if gotErr := results[i].Err() != nil; gotErr != wantErr {
			t.Errorf("Result %d error = %v, want error %v", i, results[i].Err(), wantErr)
		}
	}
}

// ctxJob reports whether the context was already cancelled.
type ctxJob struct{}

func (ctxJob) Execute(ctx context.Context) Result {
	return &indexResult{err: ctx.Err()}
}

func TestPool_ContextReachesJobs(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pool := NewPool(2)
	pool.Submit(ctxJob{})
	pool.Submit(ctxJob{})

	results := pool.Run(ctx)
	if len(results) != 2 {
		t.Fatalf("Expected one result per job even when cancelled, got %d", len(results))
	}
	for i, result := range results {
		if !errors.Is(result.Err(), context.Canceled) {
			t.Errorf("Result %d error = %v, want context.Canceled", i, result.Err())
		}
	}
}

func TestNewPool_WorkerFloor(t *testing.T) {
	if got := NewPool(0).workers; got != 1 {
		t.Errorf("NewPool(0) workers = %d, want 1", got)
	}
	if got := NewPool(-3).workers; got != 1 {
		t.Errorf("NewPool(-3) workers = %d, want 1", got)
	}
}
