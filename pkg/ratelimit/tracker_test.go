package ratelimit

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// setupMiniRedis starts an in-memory Redis for the test.
func setupMiniRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return mr, client
}

func newTestTracker(t *testing.T) (*miniredis.Miniredis, *Tracker) {
	t.Helper()
	mr, client := setupMiniRedis(t)
	tracker := NewTracker(client, zerolog.Nop())
	tracker.SetThrottleDelay(10 * time.Millisecond)
	return mr, tracker
}

func TestTracker_GetState_Default(t *testing.T) {
	_, tracker := newTestTracker(t)

	state, err := tracker.GetState(context.Background())
	if err != nil {
		t.Fatalf("GetState() error = %v", err)
	}
	if state.Remaining != 100 || !state.IsHealthy {
		t.Errorf("default state = %+v", state)
	}
}

func TestTracker_UpdateFromHeaders(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		headers       map[string]string
		wantRemaining int
		wantStored    bool
		wantErr       bool
	}{
		{
			name:          "healthy headers",
			status:        http.StatusOK,
			headers:       map[string]string{"X-RateLimit-Remaining": "80", "X-RateLimit-Reset": "60"},
			wantRemaining: 80,
			wantStored:    true,
		},
		{
			name:       "no headers",
			status:     http.StatusOK,
			headers:    map[string]string{},
			wantStored: false,
		},
		{
			name:          "too many requests with retry after",
			status:        http.StatusTooManyRequests,
			headers:       map[string]string{"Retry-After": "30"},
			wantRemaining: 0,
			wantStored:    true,
		},
		{
			name:          "too many requests without retry after",
			status:        http.StatusTooManyRequests,
			headers:       map[string]string{},
			wantRemaining: 0,
			wantStored:    true,
		},
		{
			name:    "invalid remaining",
			status:  http.StatusOK,
			headers: map[string]string{"X-RateLimit-Remaining": "lots", "X-RateLimit-Reset": "60"},
			wantErr: true,
		},
		{
			name:    "missing reset",
			status:  http.StatusOK,
			headers: map[string]string{"X-RateLimit-Remaining": "10"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mr, tracker := newTestTracker(t)
			ctx := context.Background()

			headers := http.Header{}
			for k, v := range tt.headers {
				headers.Set(k, v)
			}

			err := tracker.UpdateFromHeaders(ctx, tt.status, headers)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("UpdateFromHeaders() error = %v", err)
			}

			if got := mr.Exists(RedisKeyRemaining); got != tt.wantStored {
				t.Fatalf("state stored = %v, want %v", got, tt.wantStored)
			}
			if !tt.wantStored {
				return
			}

			state, err := tracker.GetState(ctx)
			if err != nil {
				t.Fatalf("GetState() error = %v", err)
			}
			if state.Remaining != tt.wantRemaining {
				t.Errorf("Remaining = %d, want %d", state.Remaining, tt.wantRemaining)
			}
			if mr.TTL(RedisKeyRemaining) <= 0 {
				t.Error("state keys should expire")
			}
		})
	}
}

func TestTracker_ShouldAllowRequest(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		headers   map[string]string
		wantAllow bool
	}{
		{
			name:      "no state",
			wantAllow: true,
		},
		{
			name:      "healthy",
			status:    http.StatusOK,
			headers:   map[string]string{"X-RateLimit-Remaining": "90", "X-RateLimit-Reset": "60"},
			wantAllow: true,
		},
		{
			name:      "throttled but allowed",
			status:    http.StatusOK,
			headers:   map[string]string{"X-RateLimit-Remaining": "3", "X-RateLimit-Reset": "60"},
			wantAllow: true,
		},
		{
			name:      "exhausted",
			status:    http.StatusOK,
			headers:   map[string]string{"X-RateLimit-Remaining": "0", "X-RateLimit-Reset": "60"},
			wantAllow: false,
		},
		{
			name:      "after 429",
			status:    http.StatusTooManyRequests,
			headers:   map[string]string{"Retry-After": "120"},
			wantAllow: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, tracker := newTestTracker(t)
			ctx := context.Background()

			if tt.status != 0 {
				headers := http.Header{}
				for k, v := range tt.headers {
					headers.Set(k, v)
				}
				if err := tracker.UpdateFromHeaders(ctx, tt.status, headers); err != nil {
					t.Fatalf("UpdateFromHeaders() error = %v", err)
				}
			}

			allowed, err := tracker.ShouldAllowRequest(ctx)
			if err != nil {
				t.Fatalf("ShouldAllowRequest() error = %v", err)
			}
			if allowed != tt.wantAllow {
				t.Errorf("ShouldAllowRequest() = %v, want %v", allowed, tt.wantAllow)
			}
		})
	}
}

func TestTracker_ShouldAllowRequest_ThrottleHonoursContext(t *testing.T) {
	_, tracker := newTestTracker(t)
	tracker.SetThrottleDelay(time.Hour)

	headers := http.Header{}
	headers.Set("X-RateLimit-Remaining", "2")
	headers.Set("X-RateLimit-Reset", "60")
	if err := tracker.UpdateFromHeaders(context.Background(), http.StatusOK, headers); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	allowed, err := tracker.ShouldAllowRequest(ctx)
	if allowed || !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("ShouldAllowRequest() = (%v, %v), want (false, deadline exceeded)", allowed, err)
	}
}

func TestTracker_GetState_RedisDown(t *testing.T) {
	mr, tracker := newTestTracker(t)
	mr.Close()

	if _, err := tracker.GetState(context.Background()); err == nil {
		t.Error("GetState() should fail when Redis is unreachable")
	}
	if allowed, err := tracker.ShouldAllowRequest(context.Background()); allowed || err == nil {
		t.Errorf("ShouldAllowRequest() = (%v, %v), want (false, error)", allowed, err)
	}
}
