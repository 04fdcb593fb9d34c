// Package scoring turns one raw assessment into a score report: normalized
// category scores, a weighted composite, a performance tier, and qualitative
// findings. It is the single canonical implementation every view reads from.
package scoring

import (
	"context"
	"fmt"

	"github.com/okian/talentbench/internal/domain/analysis"
	"github.com/okian/talentbench/internal/domain/fitness"
	"github.com/okian/talentbench/internal/domain/metric"
	"github.com/okian/talentbench/internal/domain/model"
)

// weightSumTolerance bounds float drift when checking that category weights
// sum to 1.0.
const weightSumTolerance = 1e-9

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithStandards replaces the metric standards table.
func WithStandards(std metric.Standards) Option {
	return func(e *Engine) {
		if std != nil {
			e.standards = std
		}
	}
}

// WithCategories replaces the category definitions.
func WithCategories(categories []CategoryDefinition) Option {
	return func(e *Engine) {
		if len(categories) > 0 {
			e.categories = categories
		}
	}
}

// WithTierCutoffs replaces the tier cutoff table.
func WithTierCutoffs(cutoffs []TierCutoff) Option {
	return func(e *Engine) {
		if len(cutoffs) > 0 {
			e.cutoffs = cutoffs
		}
	}
}

// WithRules replaces the strength/weakness rule list.
func WithRules(rules []analysis.Rule) Option {
	return func(e *Engine) {
		if len(rules) > 0 {
			e.rules = rules
		}
	}
}

// Engine holds the validated scoring configuration. It is stateless across
// calls: identical input always yields an identical report.
type Engine struct {
	standards  metric.Standards
	categories []CategoryDefinition
	cutoffs    []TierCutoff
	rules      []analysis.Rule
}

// NewEngine builds an Engine from defaults and options and validates the
// resulting configuration. Configuration problems (uncovered metrics, weights
// not summing to 1, non-monotonic cutoffs) fail here, at startup, not per
// request.
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{
		standards:  metric.DefaultStandards(),
		categories: DefaultCategories(),
		cutoffs:    DefaultTierCutoffs(),
		rules:      analysis.DefaultRules(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if err := validateCategories(e.categories); err != nil {
		return nil, err
	}
	var member []metric.ID
	for _, c := range e.categories {
		member = append(member, c.Metrics...)
	}
	if err := e.standards.Validate(member); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := validateCutoffs(e.cutoffs); err != nil {
		return nil, err
	}
	return e, nil
}

// Score evaluates one assessment. The context is only consulted for early
// cancellation; nothing in the computation blocks.
func (e *Engine) Score(ctx context.Context, a model.Assessment) (model.Report, error) {
	if err := ctx.Err(); err != nil {
		return model.Report{}, fmt.Errorf("scoring cancelled: %w", err)
	}

	normalized := e.normalize(withDerived(a))
	categories := make(map[model.Category]model.Score, len(e.categories))
	for _, c := range e.categories {
		categories[c.Name] = c.score(normalized)
	}
	composite := e.composite(categories)

	report := model.Report{
		Composite:  composite,
		Categories: categories,
	}
	if tier, ok := classify(e.cutoffs, composite); ok {
		report.Tier = string(tier)
	}

	findings := analysis.Run(e.rules, normalized, categories)
	report.Strengths = findings.Strengths
	report.Weaknesses = findings.Weaknesses
	report.Recommendations = findings.Recommendations

	return report, nil
}

// withDerived fills aerobic_capacity from the Cooper run distance when the
// assessment has the run but no direct VO2max measurement. A distance too
// short for the regression leaves the assessment untouched.
func withDerived(a model.Assessment) model.Assessment {
	if _, ok := a.Metrics[metric.AerobicCapacity]; ok {
		return a
	}
	distance, ok := a.Metrics[metric.CooperDistance]
	if !ok {
		return a
	}
	vo2, err := fitness.EstimateVO2MaxCooper(distance)
	if err != nil {
		return a
	}
	derived := make(map[metric.ID]float64, len(a.Metrics)+1)
	for id, raw := range a.Metrics {
		derived[id] = raw
	}
	derived[metric.AerobicCapacity] = vo2
	a.Metrics = derived
	return a
}

// normalize scores every present metric against the standards table. Missing,
// NaN, and negative values are excluded rather than zero-filled.
func (e *Engine) normalize(a model.Assessment) map[metric.ID]model.Score {
	out := make(map[metric.ID]model.Score, len(a.Metrics))
	for id, raw := range a.Metrics {
		def, ok := e.standards[id]
		if !ok {
			// Metric outside the configured categories; carries no weight.
			continue
		}
		if score, ok := metric.Normalize(def, raw); ok {
			out[id] = model.Score{Value: score, Valid: true}
		}
	}
	return out
}
