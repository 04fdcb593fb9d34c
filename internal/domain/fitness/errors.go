package fitness

import "errors"

// Sentinel kinds for derived-metric errors.
var (
	ErrInvalidInput = errors.New("invalid derived-metric input")
)
