package metric

import (
	"fmt"
	"math"
)

// Direction states whether a larger raw value is better or worse.
type Direction string

// Measurement directions.
const (
	HigherIsBetter Direction = "higher_is_better"
	LowerIsBetter  Direction = "lower_is_better"
)

// Ladder holds the threshold bounds for a step-scored metric. For
// HigherIsBetter metrics the bounds descend (Elite is the largest); for
// LowerIsBetter they ascend (Elite is the smallest). A raw value past the
// Average bound scores as below average.
type Ladder struct {
	Elite     float64 `koanf:"elite"`
	Excellent float64 `koanf:"excellent"`
	Good      float64 `koanf:"good"`
	Average   float64 `koanf:"average"`
}

// Definition is the immutable standard for one metric: its direction and
// either a threshold ladder or a linear max-value scale.
type Definition struct {
	ID        ID
	Direction Direction
	Ladder    *Ladder // nil when Max is used
	Max       float64 // linear scale upper bound; 0 when Ladder is used
	Unit      string
}

// Standards maps every scoreable metric to its definition. It is supplied
// as configuration so thresholds can be retuned without code changes.
type Standards map[ID]Definition

// DefaultStandards returns the built-in standards table covering every
// metric in the closed set.
func DefaultStandards() Standards {
	return Standards{
		Sprint30m: {
			ID: Sprint30m, Direction: LowerIsBetter, Unit: "s",
			Ladder: &Ladder{Elite: 3.9, Excellent: 4.1, Good: 4.3, Average: 4.5},
		},
		Agility: {
			ID: Agility, Direction: LowerIsBetter, Unit: "s",
			Ladder: &Ladder{Elite: 9.5, Excellent: 10.0, Good: 10.5, Average: 11.0},
		},
		VerticalJump: {
			ID: VerticalJump, Direction: HigherIsBetter, Unit: "cm",
			Ladder: &Ladder{Elite: 60, Excellent: 50, Good: 40, Average: 30},
		},
		CooperDistance: {
			ID: CooperDistance, Direction: HigherIsBetter, Unit: "m",
			Ladder: &Ladder{Elite: 3000, Excellent: 2700, Good: 2400, Average: 2000},
		},
		AerobicCapacity: {
			ID: AerobicCapacity, Direction: HigherIsBetter, Unit: "ml/kg/min",
			Ladder: &Ladder{Elite: 60, Excellent: 55, Good: 50, Average: 45},
		},

		BallControl:      {ID: BallControl, Direction: HigherIsBetter, Max: 5, Unit: "rating"},
		Dribbling:        {ID: Dribbling, Direction: HigherIsBetter, Max: 5, Unit: "rating"},
		FirstTouch:       {ID: FirstTouch, Direction: HigherIsBetter, Max: 5, Unit: "rating"},
		PassingAccuracy:  {ID: PassingAccuracy, Direction: HigherIsBetter, Max: 100, Unit: "%"},
		ShootingAccuracy: {ID: ShootingAccuracy, Direction: HigherIsBetter, Max: 100, Unit: "%"},

		Positioning:        {ID: Positioning, Direction: HigherIsBetter, Max: 5, Unit: "rating"},
		DecisionMaking:     {ID: DecisionMaking, Direction: HigherIsBetter, Max: 5, Unit: "rating"},
		OffBallMovement:    {ID: OffBallMovement, Direction: HigherIsBetter, Max: 5, Unit: "rating"},
		DefensiveAwareness: {ID: DefensiveAwareness, Direction: HigherIsBetter, Max: 5, Unit: "rating"},

		Motivation:   {ID: Motivation, Direction: HigherIsBetter, Max: 5, Unit: "rating"},
		Confidence:   {ID: Confidence, Direction: HigherIsBetter, Max: 5, Unit: "rating"},
		Focus:        {ID: Focus, Direction: HigherIsBetter, Max: 5, Unit: "rating"},
		Coachability: {ID: Coachability, Direction: HigherIsBetter, Max: 5, Unit: "rating"},
	}
}

// Validate checks the table for internal consistency and coverage of the
// given metric ids. A broken table is a configuration error surfaced at
// startup, never a per-request failure.
func (s Standards) Validate(required []ID) error {
	for _, id := range required {
		def, ok := s[id]
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingStandard, id)
		}
		if err := def.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (d Definition) validate() error {
	if d.Direction != HigherIsBetter && d.Direction != LowerIsBetter {
		return fmt.Errorf("%w: %s: direction %q", ErrInvalidStandard, d.ID, d.Direction)
	}
	switch {
	case d.Ladder != nil && d.Max != 0:
		return fmt.Errorf("%w: %s: both ladder and max scale set", ErrInvalidStandard, d.ID)
	case d.Ladder != nil:
		return d.Ladder.validate(d.ID, d.Direction)
	case d.Max > 0 && !math.IsNaN(d.Max) && !math.IsInf(d.Max, 0):
		return nil
	default:
		return fmt.Errorf("%w: %s: max scale must be positive and finite", ErrInvalidStandard, d.ID)
	}
}

// validate ensures ladder bounds are strictly monotonic in the direction's
// order, so the step function is well defined.
func (l Ladder) validate(id ID, dir Direction) error {
	steps := []float64{l.Elite, l.Excellent, l.Good, l.Average}
	for i := 1; i < len(steps); i++ {
		ordered := steps[i-1] < steps[i]
		if dir == HigherIsBetter {
			ordered = steps[i-1] > steps[i]
		}
		if !ordered {
			return fmt.Errorf("%w: %s: ladder thresholds not monotonic", ErrInvalidStandard, id)
		}
	}
	return nil
}
