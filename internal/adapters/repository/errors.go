package repository

import "errors"

// Sentinel kinds for history store errors.
var (
	ErrNotFound      = errors.New("player not found")
	ErrInvalidLimit  = errors.New("invalid leaderboard limit")
	ErrEmptyPlayerID = errors.New("empty player id")
)
