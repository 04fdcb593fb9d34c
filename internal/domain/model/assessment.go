// Package model contains domain models passed between layers.
package model

import (
	"time"

	"github.com/okian/talentbench/internal/domain/metric"
)

// Category names one of the four skill domains an assessment covers.
type Category string

// Skill domains. Every metric belongs to exactly one of these.
const (
	Physical      Category = "physical"
	Technical     Category = "technical"
	Tactical      Category = "tactical"
	Psychological Category = "psychological"
)

// Assessment represents one raw intake of test measurements for a player.
// Metrics maps metric ids to raw values; an absent key means the test was
// not taken. Assessments are immutable once scored.
type Assessment struct {
	AssessmentID string    // unique id for idempotency
	PlayerID     string    // subject identifier
	Age          int       // player age at assessment time
	Position     string    // playing position, e.g. "midfielder"
	TS           time.Time // assessment timestamp
	Metrics      map[metric.ID]float64
}

// Score is an optional 0-100 value. Valid is false when no present metric
// supports it; callers must render that as "insufficient data", never as 0.
type Score struct {
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

// Report is the derived outcome of scoring one assessment.
type Report struct {
	Composite       Score              `json:"composite"`
	Categories      map[Category]Score `json:"categories"`
	Tier            string             `json:"tier,omitempty"`
	Strengths       []string           `json:"strengths"`
	Weaknesses      []string           `json:"weaknesses"`
	Recommendations []string           `json:"recommendations"`
}

// Benchmark pairs an assessment with its report. A player's history is an
// append-only sequence of benchmarks; later benchmarks never mutate or
// replace earlier ones.
type Benchmark struct {
	Assessment
	Report
}

// Profile carries the player attributes achievement rules and derived-metric
// formulas may consult.
type Profile struct {
	PlayerID string
	Name     string
	Age      int
	Sex      string // "male" or "female"
	Position string
}
