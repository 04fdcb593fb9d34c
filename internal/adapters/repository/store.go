// Package repository defines the assessment history store and errors.
// Durable persistence stays with an external collaborator; this store is the
// in-process history the trend, achievement and leaderboard reads consume.
package repository

import (
	"context"

	"github.com/okian/talentbench/internal/domain/model"
	"github.com/okian/talentbench/internal/domain/types"
)

// Store provides append-only access to per-player benchmark history.
type Store interface {
	// Append layers a scored benchmark onto the player's history. Earlier
	// records are never mutated or replaced.
	Append(ctx context.Context, b model.Benchmark) error

	// History returns a copy of the player's benchmarks in insertion order.
	// Returns ErrNotFound for unknown players.
	History(ctx context.Context, playerID string) ([]model.Benchmark, error)

	// Latest returns the most recently appended benchmark for a player.
	// Returns ErrNotFound for unknown players.
	Latest(ctx context.Context, playerID string) (model.Benchmark, error)

	// TopN ranks players by their latest valid composite score, descending,
	// ties broken by player id.
	TopN(ctx context.Context, n int) ([]types.Entry, error)

	// Count returns the number of players tracked.
	Count(ctx context.Context) int
}
