package analysis

import (
	"github.com/okian/talentbench/internal/domain/metric"
	"github.com/okian/talentbench/internal/domain/model"
)

// Shared thresholds for the default rule list, on the normalized scale.
const (
	defaultStrongAt = 85.0
	defaultWeakAt   = 50.0
)

// DefaultRules returns the built-in rule list. Order is part of the
// contract: reports list findings in this order, metric rules before
// category summaries.
func DefaultRules() []Rule {
	return []Rule{
		{
			ID:             "sprint_speed",
			Metric:         metric.Sprint30m,
			StrongAt:       defaultStrongAt,
			WeakAt:         defaultWeakAt,
			Strength:       "explosive sprint speed over 30 m",
			Weakness:       "sprint speed below the age-group standard",
			Recommendation: "add two weekly acceleration and resisted-sprint sessions",
		},
		{
			ID:             "aerobic_base",
			Metric:         metric.AerobicCapacity,
			StrongAt:       defaultStrongAt,
			WeakAt:         defaultWeakAt,
			Strength:       "elite aerobic engine",
			Weakness:       "aerobic capacity limits late-game output",
			Recommendation: "build the aerobic base with interval runs twice a week",
		},
		{
			ID:             "agility",
			Metric:         metric.Agility,
			StrongAt:       defaultStrongAt,
			WeakAt:         defaultWeakAt,
			Strength:       "exceptional change-of-direction speed",
			Weakness:       "change-of-direction speed needs work",
			Recommendation: "schedule ladder and cone drills focused on deceleration control",
		},
		{
			ID:             "passing",
			Metric:         metric.PassingAccuracy,
			StrongAt:       defaultStrongAt,
			WeakAt:         defaultWeakAt,
			Strength:       "reliable distribution under pressure",
			Weakness:       "passing accuracy drops below a reliable level",
			Recommendation: "drill short-to-medium passing patterns with both feet",
		},
		{
			ID:             "finishing",
			Metric:         metric.ShootingAccuracy,
			StrongAt:       defaultStrongAt,
			WeakAt:         defaultWeakAt,
			Strength:       "clinical finishing",
			Weakness:       "shot placement is inconsistent",
			Recommendation: "add finishing circuits emphasising placement over power",
		},
		{
			ID:             "physical_profile",
			Category:       model.Physical,
			StrongAt:       80,
			WeakAt:         defaultWeakAt,
			Strength:       "physically dominant across speed, power and endurance tests",
			Weakness:       "overall physical conditioning trails the benchmark",
			Recommendation: "prioritise a structured strength and conditioning block",
		},
		{
			ID:             "technical_profile",
			Category:       model.Technical,
			StrongAt:       80,
			WeakAt:         defaultWeakAt,
			Strength:       "technically polished on the ball",
			Weakness:       "core ball skills need consistent repetition",
			Recommendation: "increase individual ball-mastery volume before team sessions",
		},
		{
			ID:             "tactical_profile",
			Category:       model.Tactical,
			StrongAt:       80,
			WeakAt:         defaultWeakAt,
			Strength:       "reads the game ahead of the play",
			Weakness:       "game understanding lags physical and technical level",
			Recommendation: "add video review and small-sided decision games",
		},
		{
			ID:             "psychological_profile",
			Category:       model.Psychological,
			StrongAt:       80,
			WeakAt:         defaultWeakAt,
			Strength:       "strong mentality and coachability",
			Weakness:       "mental approach is holding performance back",
			Recommendation: "work with the coach on focus routines and goal setting",
		},
	}
}
