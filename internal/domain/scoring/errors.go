package scoring

import "errors"

// Sentinel kinds for scoring configuration errors. These allow errors.Is/As
// from callers.
var (
	ErrInvalidConfig = errors.New("invalid scoring config")
)
