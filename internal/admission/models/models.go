// Package models holds the result types and counter-key policy for the
// admission-control module. All cross-request state lives in the external
// counter store; these types only describe what a single check observed.
package models

import "time"

// Policy constants for the admission gates. The rate limit is a coarse
// abuse guard, not a billing control, so it is a hard-coded policy rather
// than configuration.
const (
	// RateLimitPerMinute is the per-client request ceiling in one fixed
	// UTC-minute bucket.
	RateLimitPerMinute = 10

	// RateWindowTTL is double the one-minute window to tolerate clock skew
	// at bucket boundaries.
	RateWindowTTL = 120 * time.Second

	// MonthlyCounterTTL outlives the calendar month plus buffer even across
	// the longest months, so expiry alone reclaims quota and breaker keys.
	MonthlyCounterTTL = 60 * 24 * time.Hour
)

// RateLimitResult is the outcome of a per-client rate limit check.
type RateLimitResult struct {
	Limited bool
	// Degraded marks the result as a fail-open default produced because the
	// counter store was unavailable.
	Degraded bool
}

// QuotaStatus is the outcome of a per-client monthly quota check.
type QuotaStatus struct {
	Allowed   bool
	Used      int
	Remaining int
	Degraded  bool
}

// BreakerStatus is the derived state of the global monthly circuit breaker.
// It is computed on demand from the month's counter, never stored directly;
// a new month's key starts at zero, which is what closes the breaker.
type BreakerStatus struct {
	Open         bool
	RequestCount int
	Degraded     bool
}
