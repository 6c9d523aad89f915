// Package ratelimit implements request gating for the catalog service.
// It monitors the X-RateLimit-Remaining and X-RateLimit-Reset headers, and the
// Retry-After header of 429 responses, so that clients back off before the
// service starts rejecting them.
package ratelimit

import (
	"time"
)

// Redis keys for rate limit state storage.
const (
	RedisKeyRemaining      = "catalog:rate_limit:remaining"
	RedisKeyResetTimestamp = "catalog:rate_limit:reset_timestamp"
	RedisKeyLastUpdate     = "catalog:rate_limit:last_update"
)

// Thresholds for rate limit decisions.
const (
	// ThresholdCritical blocks requests when remaining requests fall below this value
	// and the window has not reset yet.
	ThresholdCritical = 1

	// ThresholdWarning applies throttling when remaining requests fall below this value.
	ThresholdWarning = 10

	// ThresholdHealthy indicates normal operation.
	ThresholdHealthy = 50
)

// DefaultRetryAfter is assumed when a 429 response carries no usable Retry-After header.
const DefaultRetryAfter = 60 * time.Second

// RateLimitState represents the current request budget.
// This state is shared across all client instances via Redis.
type RateLimitState struct {
	// Remaining is the number of requests left in the current window.
	Remaining int `json:"remaining"`

	// ResetAt is when the window resets.
	ResetAt time.Time `json:"reset_at"`

	// LastUpdate is when this state was last written.
	LastUpdate time.Time `json:"last_update"`

	// IsHealthy is true when Remaining >= ThresholdHealthy.
	IsHealthy bool `json:"is_healthy"`
}

// IsStale returns true if the state data is older than the given duration.
func (s *RateLimitState) IsStale(maxAge time.Duration) bool {
	return time.Since(s.LastUpdate) > maxAge
}

// NeedsCriticalBlock returns true if requests should be blocked until the window resets.
func (s *RateLimitState) NeedsCriticalBlock() bool {
	return s.Remaining < ThresholdCritical && s.TimeUntilReset() > 0
}

// NeedsThrottling returns true if requests should be slowed down.
func (s *RateLimitState) NeedsThrottling() bool {
	return s.Remaining < ThresholdWarning && !s.NeedsCriticalBlock() && s.TimeUntilReset() > 0
}

// TimeUntilReset returns the duration until the window resets.
// Returns 0 if the reset time has already passed.
func (s *RateLimitState) TimeUntilReset() time.Duration {
	duration := time.Until(s.ResetAt)
	if duration < 0 {
		return 0
	}
	return duration
}

// UpdateHealth updates the IsHealthy field based on current Remaining.
func (s *RateLimitState) UpdateHealth() {
	s.IsHealthy = s.Remaining >= ThresholdHealthy
}
