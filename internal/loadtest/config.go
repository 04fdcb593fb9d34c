package loadtest

import "time"

// Config holds configuration for the assessment load test
type Config struct {
	BaseURL        string        // Base URL of the service
	NumAssessments int           // Number of assessments to generate
	TopN           int           // Number of top entries to fetch
	Workers        int           // Number of concurrent workers
	Timeout        time.Duration // HTTP request timeout
	OutputFile     string        // Output file for assessments
	LogFile        string        // Log file for test output
	Verbose        bool          // Enable verbose logging
}

// Assessment represents an assessment to be submitted
type Assessment struct {
	AssessmentID string             `json:"assessment_id"`
	PlayerID     string             `json:"player_id"`
	Age          int                `json:"age,omitempty"`
	Position     string             `json:"position,omitempty"`
	TS           string             `json:"ts"`
	Metrics      map[string]float64 `json:"metrics"`
}

// Entry represents a leaderboard entry
type Entry struct {
	Rank      int     `json:"rank"`
	PlayerID  string  `json:"player_id"`
	Composite float64 `json:"composite"`
	Tier      string  `json:"tier,omitempty"`
}

// Score mirrors the optional 0-100 score shape returned by report queries.
type Score struct {
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

// Report mirrors the scored outcome returned by report queries.
type Report struct {
	Composite  Score            `json:"composite"`
	Categories map[string]Score `json:"categories"`
	Tier       string           `json:"tier,omitempty"`
}

// ReportResponse is the full payload returned by /report/{player_id}.
type ReportResponse struct {
	AssessmentID string `json:"assessment_id"`
	PlayerID     string `json:"player_id"`
	TS           string `json:"ts"`
	Report       Report `json:"report"`
}

// AckResponse represents the response from assessment submission
type AckResponse struct {
	AssessmentID string `json:"assessment_id"`
	Status       string `json:"status"`
	Duplicate    bool   `json:"duplicate"`
}

// Stats holds test statistics
type Stats struct {
	AssessmentsGenerated  int
	AssessmentsSubmitted  int
	AssessmentsSuccessful int
	AssessmentsDuplicate  int
	AssessmentsFailed     int
	ReportsRetrieved      int
	LeaderboardEntries    int
	StartTime             time.Time
	EndTime               time.Time
	Duration              time.Duration
}
