package metric

import "errors"

// Sentinel kinds for standards errors. These allow errors.Is/As from callers.
var (
	ErrUnknownMetric   = errors.New("unknown metric")
	ErrInvalidStandard = errors.New("invalid metric standard")
	ErrMissingStandard = errors.New("no standard for metric")
)
