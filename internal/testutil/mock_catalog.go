// Package testutil provides testing utilities for the catalog client.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"time"
)

// Catalog endpoint paths served by MockCatalog.
const (
	BrowsePath     = "/content/v2/discover/browse"
	SearchPath     = "/content/v2/discover/search"
	SeasonListPath = "/content/v1/season_list"
)

// MockResponse defines a canned response for a path.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Delay      time.Duration
}

// RecordedRequest is one request seen by the mock.
type RecordedRequest struct {
	Path     string
	RawQuery string
	Header   http.Header
}

// Query returns the parsed query of the request.
func (r RecordedRequest) Query() url.Values {
	q, _ := url.ParseQuery(r.RawQuery)
	return q
}

// MockCatalog is a configurable mock catalog service for testing.
// Browse results, search facets and season lists are served from in-memory
// slices honouring the offset/limit parameters.
type MockCatalog struct {
	server *httptest.Server
	mu     sync.RWMutex

	handlers map[string]func(w http.ResponseWriter, r *http.Request)
	failures map[string][]MockResponse

	browseItems []json.RawMessage
	browseTotal int // -1 reports len(browseItems)
	facets      map[string][]json.RawMessage
	facetTotals map[string]int
	facetOrder  []string
	seasons     []json.RawMessage
	rateHeaders map[string]string
	requests    []RecordedRequest
}

// NewMockCatalog creates and starts a new mock catalog server.
func NewMockCatalog() *MockCatalog {
	mock := &MockCatalog{
		handlers:    make(map[string]func(w http.ResponseWriter, r *http.Request)),
		failures:    make(map[string][]MockResponse),
		browseTotal: -1,
		facets:      make(map[string][]json.RawMessage),
		facetTotals: make(map[string]int),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.requests = append(mock.requests, RecordedRequest{
			Path:     r.URL.Path,
			RawQuery: r.URL.RawQuery,
			Header:   r.Header.Clone(),
		})
		for k, v := range mock.rateHeaders {
			w.Header().Set(k, v)
		}

		if queued := mock.failures[r.URL.Path]; len(queued) > 0 {
			resp := queued[0]
			mock.failures[r.URL.Path] = queued[1:]
			mock.mu.Unlock()
			writeResponse(w, resp)
			return
		}

		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.Unlock()

		if exists {
			handler(w, r)
			return
		}

		switch r.URL.Path {
		case BrowsePath:
			mock.serveBrowse(w, r)
		case SearchPath:
			mock.serveSearch(w, r)
		case SeasonListPath:
			mock.serveSeasons(w, r)
		default:
			writeResponse(w, MockResponse{StatusCode: http.StatusNotFound, Body: `{"error": "not found"}`})
		}
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockCatalog) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockCatalog) Close() {
	m.server.Close()
}

// Reset clears recorded requests.
func (m *MockCatalog) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = nil
}

// SetHandler sets a custom handler for a specific path.
func (m *MockCatalog) SetHandler(path string, handler func(w http.ResponseWriter, r *http.Request)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse configures a fixed response for a path.
func (m *MockCatalog) SetResponse(path string, resp MockResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		writeResponse(w, resp)
	})
}

// FailNext makes the next len(responses) requests to path return the given
// responses before normal serving resumes.
func (m *MockCatalog) FailNext(path string, responses ...MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[path] = append(m.failures[path], responses...)
}

// SetBrowseItems sets the browse result set. Each item is marshalled to JSON.
func (m *MockCatalog) SetBrowseItems(items ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.browseItems = mustMarshalAll(items)
}

// SetBrowseTotal overrides the total reported by browse responses.
func (m *MockCatalog) SetBrowseTotal(total int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.browseTotal = total
}

// SetFacet sets the items of a search facet. Facets appear in the response
// in the order they were first set.
func (m *MockCatalog) SetFacet(discriminant string, items ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.facets[discriminant]; !ok {
		m.facetOrder = append(m.facetOrder, discriminant)
	}
	m.facets[discriminant] = mustMarshalAll(items)
}

// SetFacetTotal overrides the total reported for one facet.
func (m *MockCatalog) SetFacetTotal(discriminant string, total int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.facetTotals[discriminant] = total
}

// SetSeasons sets the season list.
func (m *MockCatalog) SetSeasons(items ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seasons = mustMarshalAll(items)
}

// SetRateLimit adds rate limit headers to every response.
func (m *MockCatalog) SetRateLimit(remaining int, resetSeconds int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rateHeaders = map[string]string{
		"X-RateLimit-Remaining": strconv.Itoa(remaining),
		"X-RateLimit-Reset":     strconv.Itoa(resetSeconds),
	}
}

// Requests returns a copy of all recorded requests.
func (m *MockCatalog) Requests() []RecordedRequest {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]RecordedRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// RequestsTo returns the recorded requests for one path.
func (m *MockCatalog) RequestsTo(path string) []RecordedRequest {
	var out []RecordedRequest
	for _, r := range m.Requests() {
		if r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

// GetRequestCount returns the number of requests made to the server.
func (m *MockCatalog) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.requests)
}

func (m *MockCatalog) serveBrowse(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start := intParam(q, "start", 0)
	n := intParam(q, "n", 20)

	m.mu.RLock()
	total := m.browseTotal
	if total < 0 {
		total = len(m.browseItems)
	}
	page := window(m.browseItems, start, n)
	m.mu.RUnlock()

	writeJSON(w, map[string]any{"total": total, "data": page})
}

func (m *MockCatalog) serveSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start := intParam(q, "start", 0)
	limit := intParam(q, "limit", 20)
	wantType := q.Get("type")

	m.mu.RLock()
	entries := make([]map[string]any, 0, len(m.facetOrder))
	sum := 0
	for _, disc := range m.facetOrder {
		if wantType != "" && disc != wantType {
			continue
		}
		items := m.facets[disc]
		total, ok := m.facetTotals[disc]
		if !ok {
			total = len(items)
		}
		sum += total
		entries = append(entries, map[string]any{
			"type":  disc,
			"items": window(items, start, limit),
			"total": total,
		})
	}
	m.mu.RUnlock()

	writeJSON(w, map[string]any{"total": sum, "data": entries})
}

func (m *MockCatalog) serveSeasons(w http.ResponseWriter, r *http.Request) {
	m.mu.RLock()
	seasons := m.seasons
	m.mu.RUnlock()
	if seasons == nil {
		seasons = []json.RawMessage{}
	}
	writeJSON(w, map[string]any{"total": len(seasons), "items": seasons})
}

func window(items []json.RawMessage, start, n int) []json.RawMessage {
	if start >= len(items) || n <= 0 {
		return []json.RawMessage{}
	}
	end := min(start+n, len(items))
	return items[start:end]
}

func intParam(q url.Values, key string, def int) int {
	v, err := strconv.Atoi(q.Get(key))
	if err != nil {
		return def
	}
	return v
}

func mustMarshalAll(items []any) []json.RawMessage {
	out := make([]json.RawMessage, len(items))
	for i, item := range items {
		if raw, ok := item.(string); ok {
			out[i] = json.RawMessage(raw)
			continue
		}
		data, err := json.Marshal(item)
		if err != nil {
			panic(err)
		}
		out[i] = data
	}
	return out
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(v)
}

func writeResponse(w http.ResponseWriter, resp MockResponse) {
	if resp.Delay > 0 {
		time.Sleep(resp.Delay)
	}
	for key, value := range resp.Headers {
		w.Header().Set(key, value)
	}
	w.WriteHeader(resp.StatusCode)
	if resp.Body != "" {
		w.Write([]byte(resp.Body))
	}
}

// NewServerErrorResponse creates a 500 Internal Server Error response.
func NewServerErrorResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       `{"error": "Internal server error"}`,
		Headers:    map[string]string{"Content-Type": "application/json; charset=utf-8"},
	}
}

// NewRateLimitResponse creates a 429 Too Many Requests response.
func NewRateLimitResponse(retryAfter int) MockResponse {
	return MockResponse{
		StatusCode: http.StatusTooManyRequests,
		Body:       `{"error": "Rate limit exceeded"}`,
		Headers: map[string]string{
			"Retry-After":  strconv.Itoa(retryAfter),
			"Content-Type": "application/json; charset=utf-8",
		},
	}
}

// NewMalformedResponse creates a 200 response whose body is not valid JSON.
func NewMalformedResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       `{"total": 3, "data": [`,
		Headers:    map[string]string{"Content-Type": "application/json; charset=utf-8"},
	}
}
