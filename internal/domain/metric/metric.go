// Package metric defines the closed set of assessment metrics and the
// standards used to normalize raw measurements to a common 0-100 scale.
package metric

import "fmt"

// ID identifies one assessment metric. The set is closed: intake payloads
// carrying an unknown key are rejected at validation time instead of being
// silently dropped.
type ID string

// Physical metrics.
const (
	Sprint30m       ID = "sprint_30m"       // 30 m sprint time, seconds
	Agility         ID = "agility_5_10_5"   // 5-10-5 shuttle, seconds
	VerticalJump    ID = "vertical_jump"    // countermovement jump, cm
	CooperDistance  ID = "cooper_distance"  // 12-minute run distance, m
	AerobicCapacity ID = "aerobic_capacity" // estimated VO2max, ml/kg/min
)

// Technical metrics.
const (
	BallControl      ID = "ball_control"      // coach rating 1-5
	Dribbling        ID = "dribbling"         // coach rating 1-5
	FirstTouch       ID = "first_touch"       // coach rating 1-5
	PassingAccuracy  ID = "passing_accuracy"  // completed passes, percent
	ShootingAccuracy ID = "shooting_accuracy" // shots on target, percent
)

// Tactical metrics.
const (
	Positioning        ID = "positioning"         // coach rating 1-5
	DecisionMaking     ID = "decision_making"     // coach rating 1-5
	OffBallMovement    ID = "off_ball_movement"   // coach rating 1-5
	DefensiveAwareness ID = "defensive_awareness" // coach rating 1-5
)

// Psychological metrics.
const (
	Motivation   ID = "motivation"   // coach rating 1-5
	Confidence   ID = "confidence"   // coach rating 1-5
	Focus        ID = "focus"        // coach rating 1-5
	Coachability ID = "coachability" // coach rating 1-5
)

// All returns every defined metric id in a stable order.
func All() []ID {
	return []ID{
		Sprint30m, Agility, VerticalJump, CooperDistance, AerobicCapacity,
		BallControl, Dribbling, FirstTouch, PassingAccuracy, ShootingAccuracy,
		Positioning, DecisionMaking, OffBallMovement, DefensiveAwareness,
		Motivation, Confidence, Focus, Coachability,
	}
}

// ParseID converts an intake key to a metric ID.
// Returns ErrUnknownMetric for keys outside the closed set.
func ParseID(s string) (ID, error) {
	for _, id := range All() {
		if string(id) == s {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMetric, s)
}
