package types

import "errors"

// Error taxonomy for the reporting layer. Every failure surfaced to a caller
// wraps exactly one of these sentinels so callers can branch with errors.Is
// instead of matching message strings.
var (
	// ErrInvalidRange is returned when start_date is after end_date
	ErrInvalidRange = errors.New("invalid date range")

	// ErrInvalidPage is returned when page or per_page is out of bounds
	ErrInvalidPage = errors.New("invalid pagination")

	// ErrNotFound is returned when a job, run, or cluster does not exist
	ErrNotFound = errors.New("not found")

	// ErrUpstreamUnavailable is returned when the warehouse or the insight
	// service is unreachable or timed out
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrValidation is returned for malformed input shapes
	ErrValidation = errors.New("validation failed")

	// ErrMixedCurrency is returned when an aggregate would sum records in
	// more than one currency
	ErrMixedCurrency = errors.New("mixed currencies in aggregate")
)
