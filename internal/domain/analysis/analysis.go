// Package analysis derives qualitative feedback from normalized scores. The
// rule list is evaluated in declaration order so identical inputs always
// produce identically ordered output.
package analysis

import (
	"github.com/okian/talentbench/internal/domain/metric"
	"github.com/okian/talentbench/internal/domain/model"
)

// Fallback messages used when no rule fires. Callers can rely on weaknesses
// and recommendations never being empty.
const (
	noWeaknessMessage     = "no major weaknesses identified"
	defaultRecommendation = "maintain the current training program and reassess next cycle"
)

// Rule tests one metric or one category against fixed thresholds over the
// normalized 0-100 scale. Direction is already folded into normalization, so
// every threshold here reads the same way: higher score is better.
type Rule struct {
	ID       string
	Metric   metric.ID      // set for metric rules, empty otherwise
	Category model.Category // set for category rules, empty otherwise

	StrongAt float64 // score >= StrongAt appends Strength (0 disables)
	WeakAt   float64 // score <= WeakAt appends Weakness (0 disables)

	Strength       string
	Weakness       string
	Recommendation string // emitted 1:1 with the weakness
}

// Findings is the ordered qualitative outcome of a rule pass.
type Findings struct {
	Strengths       []string
	Weaknesses      []string
	Recommendations []string
}

// Run evaluates rules in order against the normalized metric and category
// scores. Rules whose target score is missing are skipped. When no weakness
// fires a single neutral message is emitted instead of an empty list, and
// recommendations fall back to a maintenance default.
func Run(rules []Rule, normalized map[metric.ID]model.Score, categories map[model.Category]model.Score) Findings {
	f := Findings{
		Strengths:       []string{},
		Weaknesses:      []string{},
		Recommendations: []string{},
	}
	for _, r := range rules {
		score, ok := r.target(normalized, categories)
		if !ok {
			continue
		}
		if r.StrongAt > 0 && score >= r.StrongAt {
			f.Strengths = append(f.Strengths, r.Strength)
		}
		if r.WeakAt > 0 && score <= r.WeakAt {
			f.Weaknesses = append(f.Weaknesses, r.Weakness)
			f.Recommendations = append(f.Recommendations, r.Recommendation)
		}
	}
	if len(f.Weaknesses) == 0 {
		f.Weaknesses = append(f.Weaknesses, noWeaknessMessage)
	}
	if len(f.Recommendations) == 0 {
		f.Recommendations = append(f.Recommendations, defaultRecommendation)
	}
	return f
}

func (r Rule) target(normalized map[metric.ID]model.Score, categories map[model.Category]model.Score) (float64, bool) {
	var s model.Score
	var ok bool
	switch {
	case r.Metric != "":
		s, ok = normalized[r.Metric]
	case r.Category != "":
		s, ok = categories[r.Category]
	}
	if !ok || !s.Valid {
		return 0, false
	}
	return s.Value, true
}
