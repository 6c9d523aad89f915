package ratelimit

import (
	"net/http"
	"testing"
	"time"
)

func TestRateLimitState_IsStale(t *testing.T) {
	tests := []struct {
		name     string
		state    *RateLimitState
		maxAge   time.Duration
		expected bool
	}{
		{
			name:     "fresh state",
			state:    &RateLimitState{LastUpdate: time.Now()},
			maxAge:   5 * time.Minute,
			expected: false,
		},
		{
			name:     "stale state",
			state:    &RateLimitState{LastUpdate: time.Now().Add(-10 * time.Minute)},
			maxAge:   5 * time.Minute,
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsStale(tt.maxAge); got != tt.expected {
				t.Errorf("IsStale() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRateLimitState_Decisions(t *testing.T) {
	future := time.Now().Add(30 * time.Second)
	past := time.Now().Add(-30 * time.Second)

	tests := []struct {
		name         string
		remaining    int
		resetAt      time.Time
		wantBlock    bool
		wantThrottle bool
		wantHealthy  bool
	}{
		{"healthy", 100, future, false, false, true},
		{"at healthy threshold", ThresholdHealthy, future, false, false, true},
		{"between warning and healthy", 20, future, false, false, false},
		{"warning", ThresholdWarning - 1, future, false, true, false},
		{"at critical threshold", ThresholdCritical, future, false, true, false},
		{"exhausted", 0, future, true, false, false},
		{"exhausted but window reset", 0, past, false, false, false},
		{"warning but window reset", 5, past, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &RateLimitState{Remaining: tt.remaining, ResetAt: tt.resetAt}
			s.UpdateHealth()

			if got := s.NeedsCriticalBlock(); got != tt.wantBlock {
				t.Errorf("NeedsCriticalBlock() = %v, want %v", got, tt.wantBlock)
			}
			if got := s.NeedsThrottling(); got != tt.wantThrottle {
				t.Errorf("NeedsThrottling() = %v, want %v", got, tt.wantThrottle)
			}
			if s.IsHealthy != tt.wantHealthy {
				t.Errorf("IsHealthy = %v, want %v", s.IsHealthy, tt.wantHealthy)
			}
		})
	}
}

func TestRateLimitState_TimeUntilReset(t *testing.T) {
	s := &RateLimitState{ResetAt: time.Now().Add(-time.Minute)}
	if got := s.TimeUntilReset(); got != 0 {
		t.Errorf("TimeUntilReset() = %v, want 0", got)
	}

	s.ResetAt = time.Now().Add(time.Minute)
	if got := s.TimeUntilReset(); got <= 0 || got > time.Minute {
		t.Errorf("TimeUntilReset() = %v, want (0, 1m]", got)
	}
}

func TestParseRetryAfter(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"empty", "", DefaultRetryAfter},
		{"seconds", "120", 120 * time.Second},
		{"zero", "0", 0},
		{"http date", now.Add(90 * time.Second).Format(http.TimeFormat), 90 * time.Second},
		{"date in the past", now.Add(-time.Minute).Format(http.TimeFormat), 0},
		{"garbage", "soon", DefaultRetryAfter},
		{"negative", "-5", DefaultRetryAfter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseRetryAfter(tt.value, now); got != tt.want {
				t.Errorf("parseRetryAfter(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
