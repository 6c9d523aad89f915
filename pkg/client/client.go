// Package client provides the catalog HTTP transport with rate limit
// backpressure, session headers, and error classification.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Sternrassler/vod-catalog-client/pkg/filter"
	"github.com/Sternrassler/vod-catalog-client/pkg/ratelimit"
	"github.com/Sternrassler/vod-catalog-client/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Prometheus metrics for catalog requests.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_requests_total",
		Help: "Total catalog requests by endpoint and status",
	}, []string{"endpoint", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_request_duration_seconds",
		Help:    "Catalog request duration in seconds by endpoint",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_errors_total",
		Help: "Total catalog request errors by class",
	}, []string{"class"})
)

// DefaultBaseURL is the catalog API root used when none is configured.
const DefaultBaseURL = "https://catalog.example.com"

// maxErrorBody bounds how much of an error response is kept in the error message.
const maxErrorBody = 512

// Client is the catalog transport. It is safe for concurrent use and is
// shared read-only by every pagination engine.
type Client struct {
	httpClient  *http.Client
	baseURL     *url.URL
	rateLimiter *ratelimit.Tracker
	session     *session.Session
	config      Config
	logger      zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// BaseURL is the API root, e.g. "https://catalog.example.com".
	BaseURL string

	// User-Agent header (REQUIRED)
	UserAgent string

	// Redis enables shared rate limit state. Optional.
	Redis *redis.Client

	// Session adds locale query parameters and the bearer token. Optional.
	Session *session.Session

	// Timeout for a single request.
	Timeout time.Duration
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig(userAgent string) Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		UserAgent: userAgent,
		Timeout:   30 * time.Second,
	}
}

// New creates a new catalog client.
func New(cfg Config) (*Client, error) {
	if cfg.UserAgent == "" {
		return nil, fmt.Errorf("user-agent is required")
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url must be absolute (got %q)", cfg.BaseURL)
	}

	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("timeout must be >= 0 (got %s)", cfg.Timeout)
	}

	logger := log.With().Str("component", "catalog-client").Logger()

	var rateLimiter *ratelimit.Tracker
	if cfg.Redis != nil {
		rateLimiter = ratelimit.NewTracker(cfg.Redis, logger)
	}

	return &Client{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		baseURL:     base,
		rateLimiter: rateLimiter,
		session:     cfg.Session,
		config:      cfg,
		logger:      logger,
	}, nil
}

// Do sends a request exactly once. Status codes >= 400 are returned as
// *RequestError with the body closed; on success the caller owns the body.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	endpoint := req.URL.Path

	startTime := time.Now()
	defer func() {
		requestDuration.WithLabelValues(endpoint).Observe(time.Since(startTime).Seconds())
	}()

	if c.rateLimiter != nil {
		allowed, err := c.rateLimiter.ShouldAllowRequest(ctx)
		if err != nil {
			c.logger.Error().Err(err).Msg("Rate limit check failed")
			return nil, fmt.Errorf("rate limit check: %w", err)
		}
		if !allowed {
			c.logger.Warn().
				Str("endpoint", endpoint).
				Msg("Request blocked by rate limiter")
			requestsTotal.WithLabelValues(endpoint, "rate_limited").Inc()
			errorsTotal.WithLabelValues(string(ErrorClassRateLimit)).Inc()
			return nil, fmt.Errorf("%s: %w", endpoint, ErrThrottled)
		}
	}

	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")
	c.session.Authorize(req)

	c.logger.Debug().
		Str("endpoint", endpoint).
		Str("query", req.URL.RawQuery).
		Msg("Executing catalog request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		errClass := c.classifyError(nil, err)
		errorsTotal.WithLabelValues(string(errClass)).Inc()
		requestsTotal.WithLabelValues(endpoint, "network_error").Inc()
		c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("HTTP request failed")
		return nil, &RequestError{
			Endpoint:   endpoint,
			ErrorClass: errClass,
			Message:    "request failed",
			Err:        err,
		}
	}

	if c.rateLimiter != nil {
		if err := c.rateLimiter.UpdateFromHeaders(ctx, resp.StatusCode, resp.Header); err != nil {
			c.logger.Warn().Err(err).Msg("Failed to update rate limit from headers")
		}
	}

	requestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		errClass := c.classifyError(resp, nil)
		errorsTotal.WithLabelValues(string(errClass)).Inc()

		c.logger.Warn().
			Str("endpoint", endpoint).
			Int("status", resp.StatusCode).
			Str("error_class", string(errClass)).
			Msg("Catalog request error")

		message := resp.Status
		if snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody)); len(snippet) > 0 {
			message = fmt.Sprintf("%s: %s", resp.Status, snippet)
		}
		return nil, &RequestError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			ErrorClass: errClass,
			Message:    message,
		}
	}

	return resp, nil
}

// classifyError categorizes an error for observability and handling.
func (c *Client) classifyError(resp *http.Response, err error) ErrorClass {
	if err != nil {
		return ErrorClassNetwork
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return ErrorClassRateLimit
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return ErrorClassClient
	case resp.StatusCode >= 500:
		return ErrorClassServer
	default:
		return ""
	}
}

// Get performs a GET request. params are sent in list order.
func (c *Client) Get(ctx context.Context, endpoint string, params filter.List) (*http.Response, error) {
	u := c.baseURL.JoinPath(endpoint)
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	return c.Do(req)
}

// GetBody performs a GET request and returns the full response body.
func (c *Client) GetBody(ctx context.Context, endpoint string, params filter.List) ([]byte, error) {
	resp, err := c.Get(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		errorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		return nil, &RequestError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			ErrorClass: ErrorClassNetwork,
			Message:    "read body",
			Err:        err,
		}
	}
	return body, nil
}

// GetJSON performs a GET request and decodes the JSON body into out.
func (c *Client) GetJSON(ctx context.Context, endpoint string, params filter.List, out any) error {
	body, err := c.GetBody(ctx, endpoint, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &DecodeError{Endpoint: endpoint, Err: err}
	}
	return nil
}

// Session returns the configured session, or nil.
func (c *Client) Session() *session.Session {
	return c.session
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

// RateLimiter returns the rate limit tracker, or nil without Redis.
func (c *Client) RateLimiter() *ratelimit.Tracker {
	return c.rateLimiter
}
