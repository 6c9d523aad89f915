// Package metrics documents the Prometheus metrics exported by the catalog
// client. The collectors live in their owning packages (client, pagination,
// ratelimit) and register themselves via promauto.
package metrics

import (
	"slices"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// Gatherer serves the catalog metrics. The collectors register through
// promauto, which targets the default registry.
var Gatherer prometheus.Gatherer = prometheus.DefaultGatherer

// Prefix is shared by every catalog metric name.
const Prefix = "catalog_"

// Names lists every metric family the catalog packages register.
var Names = []string{
	// pkg/client
	"catalog_requests_total",
	"catalog_request_duration_seconds",
	"catalog_errors_total",

	// pkg/pagination
	"catalog_pages_fetched_total",
	"catalog_page_items",
	"catalog_fetch_errors_total",
	"catalog_engines_exhausted_total",

	// pkg/ratelimit
	"catalog_rate_limit_remaining",
	"catalog_rate_limit_blocks_total",
	"catalog_rate_limit_throttles_total",
}

// Collected returns the catalog metric families that currently have samples
// in g, sorted by name. Vectors without any label set are not reported.
func Collected(g prometheus.Gatherer) ([]string, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, err
	}

	var names []string
	for _, mf := range families {
		if strings.HasPrefix(mf.GetName(), Prefix) && len(mf.GetMetric()) > 0 {
			names = append(names, mf.GetName())
		}
	}
	slices.Sort(names)
	return names, nil
}

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - catalog_requests_total{endpoint, status} (Counter): Requests by endpoint and HTTP status
//   - catalog_request_duration_seconds{endpoint} (Histogram): Request duration by endpoint
//   - catalog_errors_total{class} (Counter): Errors by class (client, server, rate_limit, network)
//
// Pagination Metrics (pkg/pagination):
//   - catalog_pages_fetched_total{engine} (Counter): Pages fetched per engine label
//   - catalog_page_items{engine} (Histogram): Items per fetched page
//   - catalog_fetch_errors_total{engine} (Counter): Failed page fetches (cursor kept)
//   - catalog_engines_exhausted_total{engine} (Counter): Engines that reached the end of their source
//
// Rate Limit Metrics (pkg/ratelimit):
//   - catalog_rate_limit_remaining (Gauge): Requests left in the current window
//   - catalog_rate_limit_blocks_total (Counter): Requests refused locally
//   - catalog_rate_limit_throttles_total (Counter): Requests delayed while the budget is low
//
// Example Prometheus Queries:
//
//   # Request Error Rate
//   sum by (class) (rate(catalog_errors_total[5m]))
//
//   # Rate Limit Status
//   catalog_rate_limit_remaining < 10
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(catalog_request_duration_seconds_bucket[5m]))
//
//   # Average Page Fill
//   rate(catalog_page_items_sum[5m]) / rate(catalog_page_items_count[5m])
