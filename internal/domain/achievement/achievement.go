// Package achievement derives unlocked badges from a player's assessment
// history. Rules are pure predicates; evaluation is idempotent and follows
// rule declaration order.
package achievement

import (
	"sort"
	"time"

	"github.com/okian/talentbench/internal/domain/model"
)

// Rule describes one badge. Earned inspects an ordered history (ascending by
// timestamp) and the player profile, returning the timestamp the badge was
// first earned, or false when the history does not satisfy it.
type Rule struct {
	ID     string
	Label  string
	Earned func(history []model.Benchmark, profile model.Profile) (time.Time, bool)
}

// Earned is one unlocked badge.
type Earned struct {
	RuleID   string    `json:"rule_id"`
	Label    string    `json:"label"`
	EarnedAt time.Time `json:"earned_at"`
}

// Evaluate runs every rule against the history. The history is sorted into a
// private ascending-by-time copy first, so callers may pass it unordered.
// Identical input always yields the same result set in the same order.
func Evaluate(rules []Rule, history []model.Benchmark, profile model.Profile) []Earned {
	ordered := make([]model.Benchmark, len(history))
	copy(ordered, history)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Assessment.TS.Before(ordered[j].Assessment.TS)
	})

	earned := make([]Earned, 0, len(rules))
	for _, r := range rules {
		if at, ok := r.Earned(ordered, profile); ok {
			earned = append(earned, Earned{RuleID: r.ID, Label: r.Label, EarnedAt: at})
		}
	}
	return earned
}
