// Package ratelimit observes HubSpot API rate limit response headers.
// It parses X-HubSpot-RateLimit-Remaining and X-HubSpot-RateLimit-Daily-Remaining
// into metrics and warning logs. The observer is purely passive: it never
// blocks, delays, or retries a request.
package ratelimit

import (
	"time"
)

// Thresholds for rate limit warnings.
const (
	// RemainingWarning triggers a warning log when the per-interval budget
	// falls below this value.
	RemainingWarning = 10

	// DailyRemainingWarning triggers a warning log when the daily budget
	// falls below this value.
	DailyRemainingWarning = 1000
)

// State represents the most recently observed HubSpot rate limit headers.
type State struct {
	// Remaining is the request budget left in the current interval.
	// Extracted from the X-HubSpot-RateLimit-Remaining header.
	Remaining int `json:"remaining"`

	// DailyRemaining is the request budget left for the current day.
	// Extracted from the X-HubSpot-RateLimit-Daily-Remaining header.
	DailyRemaining int `json:"daily_remaining"`

	// IntervalMilliseconds is the length of the rolling rate limit window.
	// Extracted from the X-HubSpot-RateLimit-Interval-Milliseconds header.
	IntervalMilliseconds int `json:"interval_milliseconds"`

	// LastUpdate is when these values were last observed.
	LastUpdate time.Time `json:"last_update"`
}

// IsStale returns true if the state is older than the given duration.
func (s *State) IsStale(maxAge time.Duration) bool {
	return time.Since(s.LastUpdate) > maxAge
}

// NearLimit returns true if either budget is below its warning threshold.
func (s *State) NearLimit() bool {
	return s.Remaining < RemainingWarning || s.DailyRemaining < DailyRemainingWarning
}
