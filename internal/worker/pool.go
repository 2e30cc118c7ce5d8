package worker

import (
	"context"
	"errors"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/osse101/MixOptimizer_Go/internal/logger"
)

// Job represents a task to be executed by a worker
type Job interface {
	Process(ctx context.Context) error
}

// JobFunc adapts a function to the Job interface
type JobFunc func(ctx context.Context) error

// Process calls f(ctx)
func (f JobFunc) Process(ctx context.Context) error {
	return f(ctx)
}

// Pool runs batches of jobs with bounded concurrency
type Pool struct {
	workers int
}

// NewPool creates a new worker pool. A non-positive worker count means
// one worker per available CPU.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Pool{workers: workers}
}

// Workers returns the concurrency limit of the pool
func (p *Pool) Workers() int {
	return p.workers
}

// Run processes every job and waits for them to finish. Jobs are started in
// slice order. The first failing job cancels the context passed to the rest,
// and its error is returned.
func (p *Pool) Run(ctx context.Context, jobs []Job) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i, job := range jobs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := job.Process(gctx); err != nil {
				if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
					logger.FromContext(ctx).Error(LogMsgWorkerJobFailed, "job", i, "error", err)
				}
				return err
			}
			return nil
		})
	}

	err := g.Wait()
	if ctxErr := ctx.Err(); ctxErr != nil {
		logger.FromContext(ctx).Debug(LogMsgPoolCancelled, "error", ctxErr)
		return ctxErr
	}
	return err
}
