package ratelimit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Prometheus metrics for rate limit tracking.
var (
	rateLimitRemaining = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_rate_limit_remaining",
		Help: "Number of requests remaining in the current rate limit window",
	})

	rateLimitBlocksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_rate_limit_blocks_total",
		Help: "Total number of requests blocked because the rate limit window is used up",
	})

	rateLimitThrottlesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_rate_limit_throttles_total",
		Help: "Total number of requests delayed because the rate limit is running low",
	})
)

// DefaultThrottleDelay is the pause applied to a request in the warning state.
const DefaultThrottleDelay = 1 * time.Second

// stateGrace keeps state in Redis a little past the reset so late readers still see it.
const stateGrace = time.Minute

// staleAfter marks state that no response has refreshed for a while.
const staleAfter = 5 * time.Minute

// Tracker monitors the catalog rate limit and gates requests.
type Tracker struct {
	redis         *redis.Client
	logger        zerolog.Logger
	throttleDelay time.Duration
}

// NewTracker creates a new rate limit tracker.
func NewTracker(redisClient *redis.Client, logger zerolog.Logger) *Tracker {
	return &Tracker{
		redis:         redisClient,
		logger:        logger,
		throttleDelay: DefaultThrottleDelay,
	}
}

// SetThrottleDelay overrides the warning-state pause (for testing).
func (t *Tracker) SetThrottleDelay(d time.Duration) {
	t.throttleDelay = d
}

// GetState retrieves the current rate limit state from Redis.
// Returns a default healthy state if no data exists in Redis.
func (t *Tracker) GetState(ctx context.Context) (*RateLimitState, error) {
	remaining, err := t.redis.Get(ctx, RedisKeyRemaining).Int()
	if errors.Is(err, redis.Nil) {
		t.logger.Debug().Msg("No rate limit state in Redis, returning default healthy state")
		now := time.Now()
		return &RateLimitState{
			Remaining:  100,
			ResetAt:    now,
			LastUpdate: now,
			IsHealthy:  true,
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get remaining: %w", err)
	}

	resetTimestamp, err := t.redis.Get(ctx, RedisKeyResetTimestamp).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("get reset timestamp: %w", err)
	}

	lastUpdateStr, err := t.redis.Get(ctx, RedisKeyLastUpdate).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("get last update: %w", err)
	}

	var lastUpdate time.Time
	if lastUpdateStr != "" {
		if err := json.Unmarshal([]byte(lastUpdateStr), &lastUpdate); err != nil {
			return nil, fmt.Errorf("parse last update: %w", err)
		}
	}

	state := &RateLimitState{
		Remaining:  remaining,
		ResetAt:    time.Unix(resetTimestamp, 0),
		LastUpdate: lastUpdate,
	}
	state.UpdateHealth()

	return state, nil
}

// UpdateFromHeaders records the rate limit state carried by a response.
// A 429 response empties the budget until Retry-After has passed.
// Responses without rate limit headers are ignored.
func (t *Tracker) UpdateFromHeaders(ctx context.Context, statusCode int, headers http.Header) error {
	now := time.Now()
	state := &RateLimitState{LastUpdate: now}

	if statusCode == http.StatusTooManyRequests {
		state.Remaining = 0
		state.ResetAt = now.Add(parseRetryAfter(headers.Get("Retry-After"), now))
	} else {
		remainStr := headers.Get("X-RateLimit-Remaining")
		if remainStr == "" {
			return nil
		}

		remain, err := strconv.Atoi(remainStr)
		if err != nil {
			return fmt.Errorf("parse X-RateLimit-Remaining header: %w", err)
		}

		resetStr := headers.Get("X-RateLimit-Reset")
		if resetStr == "" {
			return fmt.Errorf("X-RateLimit-Reset header missing")
		}

		resetSeconds, err := strconv.Atoi(resetStr)
		if err != nil {
			return fmt.Errorf("parse X-RateLimit-Reset header: %w", err)
		}

		state.Remaining = remain
		state.ResetAt = now.Add(time.Duration(resetSeconds) * time.Second)
	}
	state.UpdateHealth()

	if err := t.store(ctx, state); err != nil {
		return err
	}

	rateLimitRemaining.Set(float64(state.Remaining))

	switch {
	case state.NeedsCriticalBlock():
		t.logger.Error().
			Int("remaining", state.Remaining).
			Time("reset_at", state.ResetAt).
			Msg("Rate limit exhausted - requests will be blocked")
	case state.NeedsThrottling():
		t.logger.Warn().
			Int("remaining", state.Remaining).
			Time("reset_at", state.ResetAt).
			Msg("Rate limit low - requests will be throttled")
	default:
		t.logger.Debug().
			Int("remaining", state.Remaining).
			Time("reset_at", state.ResetAt).
			Bool("is_healthy", state.IsHealthy).
			Msg("Rate limit state updated")
	}

	return nil
}

func (t *Tracker) store(ctx context.Context, state *RateLimitState) error {
	lastUpdateJSON, err := json.Marshal(state.LastUpdate)
	if err != nil {
		return fmt.Errorf("marshal last update: %w", err)
	}

	ttl := state.TimeUntilReset() + stateGrace

	pipe := t.redis.TxPipeline()
	pipe.Set(ctx, RedisKeyRemaining, state.Remaining, ttl)
	pipe.Set(ctx, RedisKeyResetTimestamp, state.ResetAt.Unix(), ttl)
	pipe.Set(ctx, RedisKeyLastUpdate, lastUpdateJSON, ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store rate limit state in redis: %w", err)
	}
	return nil
}

// ShouldAllowRequest checks if a request should be allowed based on current rate limit state.
// Returns false if the request must not be sent before the window resets.
// In the warning state it pauses for the throttle delay, honouring ctx.
func (t *Tracker) ShouldAllowRequest(ctx context.Context) (bool, error) {
	state, err := t.GetState(ctx)
	if err != nil {
		return false, fmt.Errorf("get rate limit state: %w", err)
	}
	if state.IsStale(staleAfter) {
		t.logger.Debug().
			Time("last_update", state.LastUpdate).
			Msg("Rate limit state is stale")
	}

	if state.NeedsCriticalBlock() {
		t.logger.Error().
			Int("remaining", state.Remaining).
			Dur("wait_duration", state.TimeUntilReset()).
			Msg("Rate limit exhausted - blocking request")

		rateLimitBlocksTotal.Inc()
		return false, nil
	}

	if state.NeedsThrottling() {
		t.logger.Warn().
			Int("remaining", state.Remaining).
			Dur("delay", t.throttleDelay).
			Msg("Rate limit low - throttling request")

		rateLimitThrottlesTotal.Inc()
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(t.throttleDelay):
		}
	}

	return true, nil
}

// parseRetryAfter accepts delta-seconds or an HTTP date.
func parseRetryAfter(value string, now time.Time) time.Duration {
	if value == "" {
		return DefaultRetryAfter
	}
	if seconds, err := strconv.Atoi(value); err == nil && seconds >= 0 {
		return time.Duration(seconds) * time.Second
	}
	if at, err := http.ParseTime(value); err == nil {
		if d := at.Sub(now); d > 0 {
			return d
		}
		return 0
	}
	return DefaultRetryAfter
}
