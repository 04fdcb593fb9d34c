// Package types contains common types used across the application
package types

// Entry represents one row of the composite-score leaderboard.
type Entry struct {
	Rank      int     `json:"rank"`
	PlayerID  string  `json:"player_id"`
	Composite float64 `json:"composite"`
	Tier      string  `json:"tier,omitempty"`
}
