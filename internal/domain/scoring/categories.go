package scoring

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/okian/talentbench/internal/domain/metric"
	"github.com/okian/talentbench/internal/domain/model"
)

// CategoryDefinition groups metrics into one skill domain and gives the
// domain its weight in the composite. Weights across all categories must sum
// to exactly 1.0.
type CategoryDefinition struct {
	Name    model.Category
	Weight  float64
	Metrics []metric.ID
}

// DefaultCategories returns the built-in category layout and weights.
func DefaultCategories() []CategoryDefinition {
	return []CategoryDefinition{
		{
			Name:   model.Physical,
			Weight: 0.30,
			Metrics: []metric.ID{
				metric.Sprint30m, metric.Agility, metric.VerticalJump,
				metric.CooperDistance, metric.AerobicCapacity,
			},
		},
		{
			Name:   model.Technical,
			Weight: 0.30,
			Metrics: []metric.ID{
				metric.BallControl, metric.Dribbling, metric.FirstTouch,
				metric.PassingAccuracy, metric.ShootingAccuracy,
			},
		},
		{
			Name:   model.Tactical,
			Weight: 0.20,
			Metrics: []metric.ID{
				metric.Positioning, metric.DecisionMaking,
				metric.OffBallMovement, metric.DefensiveAwareness,
			},
		},
		{
			Name:   model.Psychological,
			Weight: 0.20,
			Metrics: []metric.ID{
				metric.Motivation, metric.Confidence,
				metric.Focus, metric.Coachability,
			},
		},
	}
}

// score averages the normalized scores of the member metrics that are
// actually present. A category with no present metric is invalid, never 0:
// zero-filling would deflate every partially filled assessment.
func (c CategoryDefinition) score(normalized map[metric.ID]model.Score) model.Score {
	present := make([]float64, 0, len(c.Metrics))
	for _, id := range c.Metrics {
		if s, ok := normalized[id]; ok && s.Valid {
			present = append(present, s.Value)
		}
	}
	if len(present) == 0 {
		return model.Score{}
	}
	return model.Score{Value: stat.Mean(present, nil), Valid: true}
}

// composite combines category scores using the configured weights. Invalid
// categories are excluded and the remaining weights renormalized to 1.0, so
// an assessment covering a single category composites to exactly that
// category's score. All categories invalid yields an invalid composite.
func (e *Engine) composite(categories map[model.Category]model.Score) model.Score {
	var weightSum, weighted float64
	for _, c := range e.categories {
		s, ok := categories[c.Name]
		if !ok || !s.Valid {
			continue
		}
		weightSum += c.Weight
		weighted += c.Weight * s.Value
	}
	if weightSum == 0 {
		return model.Score{}
	}
	return model.Score{Value: weighted / weightSum, Valid: true}
}

func validateCategories(categories []CategoryDefinition) error {
	if len(categories) == 0 {
		return fmt.Errorf("%w: no categories defined", ErrInvalidConfig)
	}
	seen := make(map[model.Category]bool, len(categories))
	var sum float64
	for _, c := range categories {
		if seen[c.Name] {
			return fmt.Errorf("%w: duplicate category %q", ErrInvalidConfig, c.Name)
		}
		seen[c.Name] = true
		if len(c.Metrics) == 0 {
			return fmt.Errorf("%w: category %q has no metrics", ErrInvalidConfig, c.Name)
		}
		if c.Weight <= 0 {
			return fmt.Errorf("%w: category %q weight must be positive", ErrInvalidConfig, c.Name)
		}
		sum += c.Weight
	}
	if math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("%w: category weights sum to %v, want 1.0", ErrInvalidConfig, sum)
	}
	return nil
}
