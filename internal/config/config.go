// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - All future functions must accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory assessment queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of scoring workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the deduplication cache.
	DedupeSize int `koanf:"dedupe_size"`

	// ShardCount configures the number of shards in the history store.
	ShardCount int `koanf:"shard_count"`

	// MaxLeaderboardLimit caps GET /leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`

	// CategoryWeights maps category names to composite weights. The four
	// weights must sum to 1.
	CategoryWeights map[string]float64 `koanf:"category_weights"`

	// TierCutoffs maps tier labels to their minimum composite score. The
	// table must stay strictly descending with Beginner floored at 0.
	TierCutoffs map[string]float64 `koanf:"tier_cutoffs"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention; it is reserved for future use and is
// currently unused.
func New(_ context.Context) *Config {
	c := &Config{
		LogLevel:            "info",
		Addr:                ":9080",
		QueueSize:           100_000,
		WorkerCount:         runtime.NumCPU() * 4,
		DedupeSize:          500_000,
		ShardCount:          8,
		MaxLeaderboardLimit: 100,
		CategoryWeights: map[string]float64{
			"physical":      0.30,
			"technical":     0.30,
			"tactical":      0.20,
			"psychological": 0.20,
		},
		TierCutoffs: map[string]float64{
			"Elite":      85,
			"Advanced":   70,
			"Standard":   55,
			"Developing": 40,
			"Beginner":   0,
		},
	}
	return c
}
