//go:build integration

package client

import (
	"context"
	"errors"
	"testing"

	"github.com/Sternrassler/vod-catalog-client/internal/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupRedisContainer creates a Redis container for integration testing.
func setupRedisContainer(t *testing.T) (*redis.Client, func()) {
	t.Helper()

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

	host, err := redisContainer.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := redisContainer.MappedPort(ctx, "6379")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: host + ":" + port.Port(),
	})

	cleanup := func() {
		client.Close()
		redisContainer.Terminate(ctx)
	}

	return client, cleanup
}

func TestIntegration_SharedRateLimitState(t *testing.T) {
	redisClient, cleanup := setupRedisContainer(t)
	defer cleanup()

	mock := testutil.NewMockCatalog()
	defer mock.Close()
	mock.FailNext(testutil.BrowsePath, testutil.NewRateLimitResponse(60))

	cfg := DefaultConfig("IntegrationTest/1.0.0")
	cfg.BaseURL = mock.URL()
	cfg.Redis = redisClient

	first, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	second, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx := context.Background()
	if _, err := first.Get(ctx, testutil.BrowsePath, nil); ClassOf(err) != ErrorClassRateLimit {
		t.Fatalf("first Get() error = %v, want rate_limit", err)
	}

	// A second client sharing the Redis instance must not send anything.
	if _, err := second.Get(ctx, testutil.BrowsePath, nil); !errors.Is(err, ErrThrottled) {
		t.Errorf("second Get() error = %v, want ErrThrottled", err)
	}
	if n := mock.GetRequestCount(); n != 1 {
		t.Errorf("requests = %d, want 1", n)
	}
}

func TestIntegration_HealthyFlow(t *testing.T) {
	redisClient, cleanup := setupRedisContainer(t)
	defer cleanup()

	mock := testutil.NewMockCatalog()
	defer mock.Close()
	mock.SetRateLimit(90, 60)
	mock.SetBrowseItems(`{"id": "S1", "type": "series", "title": "One"}`)

	cfg := DefaultConfig("IntegrationTest/1.0.0")
	cfg.BaseURL = mock.URL()
	cfg.Redis = redisClient

	client, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	var out struct {
		Total int `json:"total"`
	}
	if err := client.GetJSON(context.Background(), testutil.BrowsePath, nil, &out); err != nil {
		t.Fatalf("GetJSON() error = %v", err)
	}
	if out.Total != 1 {
		t.Errorf("total = %d, want 1", out.Total)
	}

	state, err := client.RateLimiter().GetState(context.Background())
	if err != nil {
		t.Fatalf("GetState() error = %v", err)
	}
	if state.Remaining != 90 || !state.IsHealthy {
		t.Errorf("state = %+v, want 90 remaining and healthy", state)
	}
}
