package repository

import (
	"context"
	"hash/fnv"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/okian/talentbench/internal/domain/model"
	"github.com/okian/talentbench/internal/domain/types"
	"github.com/okian/talentbench/pkg/metrics"
)

// defaultShardCount spreads player histories across independently locked
// shards to keep appends from contending with reads.
const defaultShardCount = 8

// shard holds the histories of the players hashing to it.
type shard struct {
	mu        sync.RWMutex
	histories map[string][]model.Benchmark
}

// HistoryStore is a sharded in-memory Store implementation.
type HistoryStore struct {
	shardCount int
	shards     []*shard
}

// NewHistoryStore creates an in-memory history store with configuration
// options.
func NewHistoryStore(_ context.Context, opts ...Option) *HistoryStore {
	s := &HistoryStore{
		shardCount: defaultShardCount,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.shards = make([]*shard, s.shardCount)
	for i := range s.shards {
		s.shards[i] = &shard{histories: make(map[string][]model.Benchmark)}
	}
	metrics.UpdateRepositoryShardCount(s.shardCount)
	return s
}

func (s *HistoryStore) shardFor(playerID string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(playerID))
	return s.shards[h.Sum32()%uint32(len(s.shards))]
}

// Append layers the benchmark onto the player's history.
func (s *HistoryStore) Append(_ context.Context, b model.Benchmark) error {
	playerID := b.Assessment.PlayerID
	if playerID == "" {
		return ErrEmptyPlayerID
	}

	start := time.Now()
	sh := s.shardFor(playerID)
	sh.mu.Lock()
	sh.histories[playerID] = append(sh.histories[playerID], b)
	sh.mu.Unlock()

	metrics.RecordHistoryAppend()
	metrics.RecordRepositoryUpdateLatency(float64(time.Since(start).Milliseconds()))
	return nil
}

// History returns a copy of the player's history in insertion order.
func (s *HistoryStore) History(_ context.Context, playerID string) ([]model.Benchmark, error) {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	sh := s.shardFor(playerID)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	history, ok := sh.histories[playerID]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]model.Benchmark, len(history))
	copy(out, history)
	return out, nil
}

// Latest returns the most recently appended benchmark for the player.
func (s *HistoryStore) Latest(_ context.Context, playerID string) (model.Benchmark, error) {
	sh := s.shardFor(playerID)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	history, ok := sh.histories[playerID]
	if !ok || len(history) == 0 {
		return model.Benchmark{}, ErrNotFound
	}
	return history[len(history)-1], nil
}

// TopN ranks players by latest valid composite, descending. Players whose
// latest report has no valid composite are excluded rather than ranked at 0.
func (s *HistoryStore) TopN(_ context.Context, n int) ([]types.Entry, error) {
	if n < 1 {
		return nil, ErrInvalidLimit
	}

	start := time.Now()
	defer func() {
		metrics.RecordRepositoryQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	var entries []types.Entry
	for _, sh := range s.shards {
		sh.mu.RLock()
		for playerID, history := range sh.histories {
			latest := history[len(history)-1].Report
			if !latest.Composite.Valid {
				continue
			}
			entries = append(entries, types.Entry{
				PlayerID:  playerID,
				Composite: latest.Composite.Value,
				Tier:      latest.Tier,
			})
		}
		sh.mu.RUnlock()
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Composite != entries[j].Composite {
			return entries[i].Composite > entries[j].Composite
		}
		return entries[i].PlayerID < entries[j].PlayerID
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

// Count returns the number of players with at least one benchmark.
func (s *HistoryStore) Count(_ context.Context) int {
	total := 0
	for i, sh := range s.shards {
		sh.mu.RLock()
		total += len(sh.histories)
		metrics.UpdateRepositoryRecordsPerShard(strconv.Itoa(i), len(sh.histories))
		sh.mu.RUnlock()
	}
	metrics.UpdateRepositoryRecordsTotal(total)
	return total
}
