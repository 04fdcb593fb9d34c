// Package worker defines worker contracts for asynchronous assessment scoring.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/okian/talentbench/internal/domain/model"
	"github.com/okian/talentbench/pkg/logger"
	"github.com/okian/talentbench/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerMultiplier = 4 // multiplier for runtime.NumCPU()
	workerShutdownTimeout   = 5 * time.Second
	poolShutdownTimeout     = 30 * time.Second
)

// Assessment abstracts what workers read off the queue.
type Assessment = model.Assessment

// Scorer computes a full report for an assessment.
type Scorer interface {
	Score(ctx context.Context, a model.Assessment) (model.Report, error)
}

// Appender persists a scored benchmark to a player's history.
type Appender interface {
	Append(ctx context.Context, b model.Benchmark) error
}

// Queue defines how workers receive assessments.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Assessment
}

// Worker processes assessments and appends benchmarks using the provided
// interfaces.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown gracefully stops the worker.
	// It will process any remaining assessments before stopping.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker for processing assessments.
type InMemoryWorker struct {
	queue    Queue
	scorer   Scorer
	appender Appender
	name     string

	// Shutdown control
	shutdown chan struct{}
	done     chan struct{}

	// Logging
	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(queue Queue, scorer Scorer, appender Appender, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:    queue,
		scorer:   scorer,
		appender: appender,
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
	defer func() {
		close(w.done)
	}()

	assessments := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case a, ok := <-assessments:
			if !ok {
				// Channel closed, worker should stop
				return
			}

			if err := w.processAssessment(ctx, a); err != nil {
				w.logger.Error(ctx, "error processing assessment", logger.Error(err))
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// processAssessment scores a single assessment and appends the resulting
// benchmark to the player's history.
func (w *InMemoryWorker) processAssessment(ctx context.Context, a model.Assessment) error {
	start := time.Now()
	defer func() {
		latency := time.Since(start).Milliseconds()
		metrics.RecordWorkerProcessingLatency(float64(latency))
	}()

	scoreStart := time.Now()
	report, err := w.scorer.Score(ctx, a)
	scoreLatency := time.Since(scoreStart).Milliseconds()

	metrics.RecordScoringLatency(float64(scoreLatency))

	if err != nil {
		metrics.RecordScoringError()
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "scoring_error")
		metrics.RecordErrorByType("scoring_error", "high")
		w.logger.Error(ctx, "scoring failed for assessment",
			logger.String("assessmentID", a.AssessmentID),
			logger.Error(err),
		)
		return fmt.Errorf("failed to score assessment %s: %w", a.AssessmentID, err)
	}

	b := model.Benchmark{Assessment: a, Report: report}
	if err := w.appender.Append(ctx, b); err != nil {
		metrics.RecordHistoryError()
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "history_error")
		metrics.RecordErrorByType("history_error", "high")
		w.logger.Error(ctx, "history append failed for assessment",
			logger.String("assessmentID", a.AssessmentID),
			logger.Error(err),
		)
		return fmt.Errorf("history append failed: %w", err)
	}

	metrics.RecordHistoryAppend()
	metrics.RecordAssessmentScored()

	return nil
}

// Pool manages multiple workers.
type Pool struct {
	workers  []*InMemoryWorker
	queue    Queue
	scorer   Scorer
	appender Appender

	// Shutdown control
	shutdown chan struct{}

	// Logging
	logger logger.Logger
}

// NewPool creates a new worker pool.
func NewPool(workerCount int, queue Queue, scorer Scorer, appender Appender) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	pool := &Pool{
		workers:  make([]*InMemoryWorker, workerCount),
		queue:    queue,
		scorer:   scorer,
		appender: appender,
		shutdown: make(chan struct{}),
		logger:   logger.Get().Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewInMemoryWorker(
			queue,
			scorer,
			appender,
			WithName("worker-"+strconv.Itoa(i)),
		)
	}

	metrics.UpdateWorkerCount(workerCount)

	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, worker := range p.workers {
		go worker.Run(ctx)
	}
}

// Size returns the number of workers in the pool.
func (p *Pool) Size() int {
	return len(p.workers)
}

// Stop gracefully stops all workers.
func (p *Pool) Stop() {
	close(p.shutdown)

	for _, worker := range p.workers {
		select {
		case <-worker.done:
		case <-time.After(workerShutdownTimeout):
		}
	}
}

// Shutdown gracefully shuts down the entire worker pool.
func (p *Pool) Shutdown(ctx context.Context) error {
	// Close the queue first so workers drain and exit
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	close(p.shutdown)

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, worker := range p.workers {
		select {
		case <-worker.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}

	metrics.UpdateWorkerCount(0)

	return nil
}
