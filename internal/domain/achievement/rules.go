package achievement

import (
	"time"

	"github.com/okian/talentbench/internal/domain/model"
)

// Rule thresholds.
const (
	consistentAssessments = 3
	masteryCategoryScore  = 90.0
)

// DefaultRules returns the built-in badge list in award-display order.
func DefaultRules() []Rule {
	return []Rule{
		{
			ID:     "first_assessment",
			Label:  "First Assessment",
			Earned: firstAssessment,
		},
		{
			ID:     "on_the_rise",
			Label:  "On the Rise",
			Earned: compositeImprovement,
		},
		{
			ID:     "elite_performer",
			Label:  "Elite Performer",
			Earned: eliteTier,
		},
		{
			ID:     "consistency",
			Label:  "Consistency",
			Earned: consistency,
		},
		{
			ID:     "category_master",
			Label:  "Category Master",
			Earned: categoryMaster,
		},
		{
			ID:     "complete_profile",
			Label:  "Complete Profile",
			Earned: completeProfile,
		},
	}
}

// firstAssessment is earned by the earliest record.
func firstAssessment(history []model.Benchmark, _ model.Profile) (time.Time, bool) {
	if len(history) == 0 {
		return time.Time{}, false
	}
	return history[0].Assessment.TS, true
}

// compositeImprovement is earned at the first record whose valid composite
// exceeds the previous valid composite.
func compositeImprovement(history []model.Benchmark, _ model.Profile) (time.Time, bool) {
	var prev model.Score
	for _, b := range history {
		cur := b.Report.Composite
		if !cur.Valid {
			continue
		}
		if prev.Valid && cur.Value > prev.Value {
			return b.Assessment.TS, true
		}
		prev = cur
	}
	return time.Time{}, false
}

// eliteTier is earned at the first Elite-tier report.
func eliteTier(history []model.Benchmark, _ model.Profile) (time.Time, bool) {
	for _, b := range history {
		if b.Report.Tier == "Elite" {
			return b.Assessment.TS, true
		}
	}
	return time.Time{}, false
}

// consistency is earned at the third logged assessment.
func consistency(history []model.Benchmark, _ model.Profile) (time.Time, bool) {
	if len(history) < consistentAssessments {
		return time.Time{}, false
	}
	return history[consistentAssessments-1].Assessment.TS, true
}

// categoryMaster is earned when any single category first reaches the
// mastery score.
func categoryMaster(history []model.Benchmark, _ model.Profile) (time.Time, bool) {
	for _, b := range history {
		for _, s := range b.Report.Categories {
			if s.Valid && s.Value >= masteryCategoryScore {
				return b.Assessment.TS, true
			}
		}
	}
	return time.Time{}, false
}

// completeProfile is earned by the first assessment covering all four
// categories.
func completeProfile(history []model.Benchmark, _ model.Profile) (time.Time, bool) {
	for _, b := range history {
		valid := 0
		for _, s := range b.Report.Categories {
			if s.Valid {
				valid++
			}
		}
		if valid == 4 {
			return b.Assessment.TS, true
		}
	}
	return time.Time{}, false
}
