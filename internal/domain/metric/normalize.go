package metric

import "math"

// Step scores for ladder metrics. A raw value at or past the elite bound
// maps to 100 regardless of direction.
const (
	scoreElite        = 100.0
	scoreExcellent    = 85.0
	scoreGood         = 70.0
	scoreAverage      = 50.0
	scoreBelowAverage = 30.0
	maxScore          = 100.0
)

// Normalize maps a raw measurement to a 0-100 score using the metric's
// definition. The second return is false when the value cannot be scored:
// NaN and negative inputs degrade to missing rather than zero, so a
// malformed upstream field never silently tanks a category mean.
func Normalize(def Definition, raw float64) (float64, bool) {
	if math.IsNaN(raw) || raw < 0 {
		return 0, false
	}
	if def.Ladder != nil {
		return def.Ladder.score(def.Direction, raw), true
	}
	return math.Min(maxScore, raw/def.Max*maxScore), true
}

// score walks the ladder as a direction-aware step function.
func (l Ladder) score(dir Direction, raw float64) float64 {
	meets := func(bound float64) bool {
		if dir == LowerIsBetter {
			return raw <= bound
		}
		return raw >= bound
	}
	switch {
	case meets(l.Elite):
		return scoreElite
	case meets(l.Excellent):
		return scoreExcellent
	case meets(l.Good):
		return scoreGood
	case meets(l.Average):
		return scoreAverage
	default:
		return scoreBelowAverage
	}
}
