package scoring

import (
	"fmt"

	"github.com/okian/talentbench/internal/domain/model"
)

// Tier is the qualitative label derived from the composite score.
type Tier string

// Performance tiers, highest first.
const (
	TierElite      Tier = "Elite"
	TierAdvanced   Tier = "Advanced"
	TierStandard   Tier = "Standard"
	TierDeveloping Tier = "Developing"
	TierBeginner   Tier = "Beginner"
)

// TierCutoff maps a minimum composite score to a tier. Cutoffs are ordered
// highest-first; the final cutoff catches everything with Min 0.
type TierCutoff struct {
	Min  float64
	Tier Tier
}

// DefaultTierCutoffs returns the built-in tier table. Cut points are
// configuration, kept alongside the metric standards so tuning never touches
// scoring code.
func DefaultTierCutoffs() []TierCutoff {
	return []TierCutoff{
		{Min: 85, Tier: TierElite},
		{Min: 70, Tier: TierAdvanced},
		{Min: 55, Tier: TierStandard},
		{Min: 40, Tier: TierDeveloping},
		{Min: 0, Tier: TierBeginner},
	}
}

// classify maps a composite score onto the cutoff table. An invalid
// composite has no tier; callers render "insufficient data" instead.
func classify(cutoffs []TierCutoff, composite model.Score) (Tier, bool) {
	if !composite.Valid {
		return "", false
	}
	for _, c := range cutoffs {
		if composite.Value >= c.Min {
			return c.Tier, true
		}
	}
	// Unreachable with a validated table; the last cutoff floors at 0.
	return cutoffs[len(cutoffs)-1].Tier, true
}

// validateCutoffs requires a strictly descending, zero-floored table so a
// higher composite can never map to a lower tier.
func validateCutoffs(cutoffs []TierCutoff) error {
	if len(cutoffs) == 0 {
		return fmt.Errorf("%w: no tier cutoffs defined", ErrInvalidConfig)
	}
	for i, c := range cutoffs {
		if c.Tier == "" {
			return fmt.Errorf("%w: tier cutoff %d has no label", ErrInvalidConfig, i)
		}
		if i > 0 && cutoffs[i-1].Min <= c.Min {
			return fmt.Errorf("%w: tier cutoffs not strictly descending", ErrInvalidConfig)
		}
	}
	if cutoffs[len(cutoffs)-1].Min != 0 {
		return fmt.Errorf("%w: final tier cutoff must floor at 0", ErrInvalidConfig)
	}
	return nil
}
