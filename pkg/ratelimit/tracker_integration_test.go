//go:build integration

package ratelimit

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupRedis starts a Redis container and returns a client
func setupRedis(t *testing.T) (*redis.Client, func()) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	}

	redisContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Failed to start Redis container: %v", err)
	}

	endpoint, err := redisContainer.Endpoint(ctx, "")
	if err != nil {
		t.Fatalf("Failed to get Redis endpoint: %v", err)
	}

	client := redis.NewClient(&redis.Options{Addr: endpoint})
	if err := client.Ping(ctx).Err(); err != nil {
		t.Fatalf("Failed to connect to Redis: %v", err)
	}

	cleanup := func() {
		client.Close()
		redisContainer.Terminate(ctx)
	}

	return client, cleanup
}

func TestTracker_Integration_StateLifecycle(t *testing.T) {
	redisClient, cleanup := setupRedis(t)
	defer cleanup()

	logger := zerolog.New(os.Stderr).Level(zerolog.Disabled)
	tracker := NewTracker(redisClient, logger)
	tracker.SetThrottleDelay(10 * time.Millisecond)
	ctx := context.Background()

	state, err := tracker.GetState(ctx)
	if err != nil {
		t.Fatalf("GetState() error = %v", err)
	}
	if !state.IsHealthy {
		t.Error("empty Redis should report a healthy state")
	}

	headers := http.Header{}
	headers.Set("X-RateLimit-Remaining", "5")
	headers.Set("X-RateLimit-Reset", "30")
	if err := tracker.UpdateFromHeaders(ctx, http.StatusOK, headers); err != nil {
		t.Fatalf("UpdateFromHeaders() error = %v", err)
	}

	state, err = tracker.GetState(ctx)
	if err != nil {
		t.Fatalf("GetState() error = %v", err)
	}
	if state.Remaining != 5 {
		t.Errorf("Remaining = %d, want 5", state.Remaining)
	}
	if !state.NeedsThrottling() {
		t.Error("state with 5 remaining should throttle")
	}

	ttl, err := redisClient.TTL(ctx, RedisKeyRemaining).Result()
	if err != nil {
		t.Fatalf("TTL() error = %v", err)
	}
	if ttl <= 30*time.Second || ttl > 30*time.Second+stateGrace {
		t.Errorf("TTL = %v, want within reset window plus grace", ttl)
	}

	allowed, err := tracker.ShouldAllowRequest(ctx)
	if err != nil || !allowed {
		t.Errorf("ShouldAllowRequest() = (%v, %v), want (true, nil)", allowed, err)
	}
}

func TestTracker_Integration_TooManyRequests(t *testing.T) {
	redisClient, cleanup := setupRedis(t)
	defer cleanup()

	tracker := NewTracker(redisClient, zerolog.Nop())
	ctx := context.Background()

	headers := http.Header{}
	headers.Set("Retry-After", "60")
	if err := tracker.UpdateFromHeaders(ctx, http.StatusTooManyRequests, headers); err != nil {
		t.Fatalf("UpdateFromHeaders() error = %v", err)
	}

	allowed, err := tracker.ShouldAllowRequest(ctx)
	if err != nil {
		t.Fatalf("ShouldAllowRequest() error = %v", err)
	}
	if allowed {
		t.Error("requests should be blocked after a 429")
	}

	// A second tracker sharing the Redis instance sees the same block.
	other := NewTracker(redisClient, zerolog.Nop())
	if allowed, _ := other.ShouldAllowRequest(ctx); allowed {
		t.Error("shared state should block other trackers")
	}
}
