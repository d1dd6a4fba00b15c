// Package worker scores queued submission files against a shared solution.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/okian/aucscore/internal/domain/model"
	"github.com/okian/aucscore/internal/domain/scoring"
	"github.com/okian/aucscore/internal/domain/table"
	"github.com/okian/aucscore/internal/domain/types"
	"github.com/okian/aucscore/pkg/logger"
	"github.com/okian/aucscore/pkg/metrics"
)

const poolShutdownTimeout = 30 * time.Second

// Job abstracts what workers read off the queue.
type Job = model.Job

// Loader reads a submission file into a frame.
type Loader interface {
	Load(ctx context.Context, path string) (*table.Frame, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, path string) (*table.Frame, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, path string) (*table.Frame, error) { return f(ctx, path) }

// Updater stores scoring outcomes.
type Updater interface {
	UpdateBest(ctx context.Context, e types.Entry) (bool, error)
	RecordFailure(ctx context.Context, f types.Failure)
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue() <-chan Job
}

// dequeueMarker is implemented by queues that track dequeue metrics.
type dequeueMarker interface {
	MarkDequeued()
}

// Worker processes jobs until the queue is drained.
type Worker interface {
	// Run starts the worker loop until the queue closes or ctx is canceled.
	Run(ctx context.Context)

	// Shutdown stops the worker after its current job.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker.
type InMemoryWorker struct {
	queue    Queue
	loader   Loader
	scorer   scoring.Scorer
	updater  Updater
	solution *table.Frame
	name     string

	shutdown     chan struct{}
	shutdownOnce sync.Once
	done         chan struct{}

	logger logger.Logger
}

var _ Worker = (*InMemoryWorker)(nil)

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(q Queue, loader Loader, scorer scoring.Scorer, updater Updater, solution *table.Frame, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:    q,
		loader:   loader,
		scorer:   scorer,
		updater:  updater,
		solution: solution,
		name:     "worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("worker"),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}

	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	jobs := w.queue.Dequeue()
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			if m, ok := w.queue.(dequeueMarker); ok {
				m.MarkDequeued()
			}
			if err := w.processJob(ctx, job); err != nil {
				w.logger.Debug(ctx, "job failed", logger.String("submission", job.SubmissionID), logger.Error(err))
			}
		}
	}
}

// Shutdown stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	w.shutdownOnce.Do(func() { close(w.shutdown) })

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// Done is closed when Run returns.
func (w *InMemoryWorker) Done() <-chan struct{} {
	return w.done
}

// processJob loads, scores and stores one submission.
func (w *InMemoryWorker) processJob(ctx context.Context, job Job) error { //nolint:gocritic // hugeParam: Job is received by value
	start := time.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	submission, err := w.loader.Load(ctx, job.Path)
	if err != nil {
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "load_failed")
		w.updater.RecordFailure(ctx, types.Failure{
			SubmissionID: job.SubmissionID,
			Path:         job.Path,
			Kind:         scoring.KindInternal.String(),
			Message:      scoring.PublicMessage(err),
			Detail:       err.Error(),
		})
		return fmt.Errorf("load submission %s: %w", job.SubmissionID, err)
	}

	res, err := w.scorer.Score(ctx, scoring.Input{
		SubmissionID: job.SubmissionID,
		Solution:     w.solution,
		Submission:   submission,
	})
	if err != nil {
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", scoring.KindOf(err).String()+"_error")
		w.updater.RecordFailure(ctx, types.Failure{
			SubmissionID: job.SubmissionID,
			Path:         job.Path,
			Kind:         scoring.KindOf(err).String(),
			Message:      scoring.PublicMessage(err),
			Detail:       err.Error(),
		})
		return fmt.Errorf("score submission %s: %w", job.SubmissionID, err)
	}

	improved, err := w.updater.UpdateBest(ctx, types.Entry{
		SubmissionID: job.SubmissionID,
		Score:        res.Score,
		Scored:       res.Scored,
		Skipped:      res.Skipped,
	})
	if err != nil {
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "leaderboard_error")
		w.logger.Error(ctx, "leaderboard update failed",
			logger.String("submission", job.SubmissionID),
			logger.Error(err),
		)
		return fmt.Errorf("leaderboard update failed: %w", err)
	}

	w.logger.Debug(ctx, "leaderboard updated",
		logger.String("submission", job.SubmissionID),
		logger.Float64("score", res.Score),
		logger.Bool("improved", improved),
		logger.Duration("queued", start.Sub(job.EnqueuedAt)),
	)
	return nil
}

// Pool manages multiple workers sharing one queue.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue
	logger  logger.Logger
}

// NewPool creates a new worker pool. workerCount < 1 uses runtime.NumCPU().
func NewPool(workerCount int, q Queue, loader Loader, scorer scoring.Scorer, updater Updater, solution *table.Frame) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}

	pool := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		queue:   q,
		logger:  logger.Get().Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewInMemoryWorker(q, loader, scorer, updater, solution,
			WithName("worker-"+strconv.Itoa(i)),
		)
	}

	return pool
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return len(p.workers)
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	metrics.UpdateWorkerActiveCount(len(p.workers))
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Wait blocks until every worker has returned, which happens once the
// queue is closed and drained or ctx is canceled.
func (p *Pool) Wait(ctx context.Context) error {
	defer metrics.UpdateWorkerActiveCount(0)
	for _, w := range p.workers {
		select {
		case <-w.Done():
		case <-ctx.Done():
			return fmt.Errorf("wait for workers: %w", ctx.Err())
		}
	}
	return nil
}

// Shutdown closes the queue and stops all workers.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, w := range p.workers {
		if err := w.Shutdown(shutdownCtx); err != nil {
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}
	metrics.UpdateWorkerActiveCount(0)
	return nil
}
