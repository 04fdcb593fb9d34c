// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	assessmentqueue "github.com/okian/talentbench/internal/adapters/mq/queue"
	workerpool "github.com/okian/talentbench/internal/adapters/mq/worker"
	repository "github.com/okian/talentbench/internal/adapters/repository"
	"github.com/okian/talentbench/internal/domain/achievement"
	"github.com/okian/talentbench/internal/domain/dedupe"
	"github.com/okian/talentbench/internal/domain/model"
	"github.com/okian/talentbench/internal/domain/scoring"
	"github.com/okian/talentbench/internal/domain/trend"
	"github.com/okian/talentbench/internal/domain/types"
	"github.com/okian/talentbench/pkg/logger"
	"github.com/okian/talentbench/pkg/metrics"
)

// Service wires the scoring engine, history store, queue and workers into
// the operations the HTTP API depends on.
type Service struct {
	mu sync.RWMutex

	// Core components
	history    repository.Store
	deduper    dedupe.Deduper
	queue      assessmentqueue.Queue
	engine     *scoring.Engine
	workerPool *workerpool.Pool

	// Configuration
	workerCount      int
	queueSize        int
	dedupeSize       int
	shardCount       int
	scoringOpts      []scoring.Option
	achievementRules []achievement.Rule

	// State
	started bool
	stopCh  chan struct{}

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the assessment queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the deduplication cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithShardCount sets the number of history store shards.
func WithShardCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.shardCount = count
		}
	}
}

// WithScoringOptions forwards options to the scoring engine built at Start.
func WithScoringOptions(opts ...scoring.Option) Option {
	return func(s *Service) {
		s.scoringOpts = append(s.scoringOpts, opts...)
	}
}

// WithAchievementRules replaces the default badge rule set.
func WithAchievementRules(rules []achievement.Rule) Option {
	return func(s *Service) {
		if len(rules) > 0 {
			s.achievementRules = rules
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:      runtime.NumCPU() * 2,
		queueSize:        100000,
		dedupeSize:       50000,
		shardCount:       8,
		achievementRules: achievement.DefaultRules(),
		stopCh:           make(chan struct{}),
		logger:           nil, // replaced when the service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting assessment service...")

	engine, err := scoring.NewEngine(s.scoringOpts...)
	if err != nil {
		return fmt.Errorf("build scoring engine: %w", err)
	}
	s.engine = engine

	s.history = repository.NewHistoryStore(ctx,
		repository.WithShardCount(s.shardCount),
	)
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.queue = assessmentqueue.NewInMemoryQueue(
		assessmentqueue.WithCapacity(s.queueSize),
		assessmentqueue.WithBufferSize(s.queueSize),
	)

	s.workerPool = workerpool.NewPool(s.workerCount, s.queue, s.engine, s.history)
	s.workerPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "assessment service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
		logger.Int("shards", s.shardCount),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping assessment service...")

	if s.workerPool != nil {
		s.workerPool.Stop()
	}

	if q, ok := s.queue.(*assessmentqueue.InMemoryQueue); ok {
		_ = q.Close()
	}

	select {
	case <-s.stopCh:
		// already closed
	default:
		close(s.stopCh)
	}

	s.started = false
	s.logger.Info(context.Background(), "assessment service stopped")
}

// SeenAndRecord atomically checks if an assessment id was seen and records it
// if not. Returns true if the assessment was already seen, false if it was
// newly recorded.
func (s *Service) SeenAndRecord(ctx context.Context, id string) bool {
	seen := s.deduper.SeenAndRecord(ctx, id)
	if seen {
		metrics.RecordAssessmentDuplicate()
	}
	return seen
}

// Unrecord removes an assessment ID from the seen list, allowing a retry
// after a failed enqueue.
func (s *Service) Unrecord(ctx context.Context, id string) {
	s.deduper.Unrecord(ctx, id)
}

// Enqueue submits an assessment for asynchronous scoring.
// Returns false when the queue is full.
func (s *Service) Enqueue(ctx context.Context, a model.Assessment) bool {
	s.logger.Debug(ctx, "enqueueing assessment",
		logger.String("assessmentID", a.AssessmentID),
		logger.String("playerID", a.PlayerID),
		logger.Int("metrics", len(a.Metrics)),
	)

	ok := s.queue.Enqueue(ctx, a)
	if ok {
		metrics.UpdateQueueSize(s.queue.Len(ctx))
	}
	return ok
}

// Report returns the most recent scored benchmark for a player.
func (s *Service) Report(ctx context.Context, playerID string) (model.Benchmark, error) {
	return s.history.Latest(ctx, playerID)
}

// History returns the player's full benchmark history in insertion order.
func (s *Service) History(ctx context.Context, playerID string) ([]model.Benchmark, error) {
	return s.history.History(ctx, playerID)
}

// Trend returns the player's progress series ordered ascending by time.
func (s *Service) Trend(ctx context.Context, playerID string) ([]trend.Point, error) {
	history, err := s.history.History(ctx, playerID)
	if err != nil {
		return nil, err
	}
	return trend.Series(history), nil
}

// Achievements evaluates the badge rules against the player's history.
func (s *Service) Achievements(ctx context.Context, playerID string) ([]achievement.Earned, error) {
	history, err := s.history.History(ctx, playerID)
	if err != nil {
		return nil, err
	}
	profile := model.Profile{PlayerID: playerID}
	return achievement.Evaluate(s.achievementRules, history, profile), nil
}

// TopN returns the top N leaderboard entries.
func (s *Service) TopN(ctx context.Context, n int) ([]types.Entry, error) {
	return s.history.TopN(ctx, n)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
		"shardCount":  s.shardCount,
	}

	if s.started {
		queueLen := s.queue.Len(ctx)
		totalPlayers := s.history.Count(ctx)

		stats["queueLength"] = queueLen
		stats["totalPlayers"] = totalPlayers

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateTotalPlayers(totalPlayers)
		metrics.UpdateWorkerCount(s.workerCount)
	}

	return stats
}

// Size returns the current number of entries in the deduper.
func (s *Service) Size() int64 {
	if s.deduper == nil {
		return 0
	}
	return s.deduper.Size()
}
