package pagination

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pagesFetched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_pages_fetched_total",
		Help: "Total pages fetched by engine",
	}, []string{"engine"})

	pageItems = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_page_items",
		Help:    "Number of items per fetched page by engine",
		Buckets: []float64{0, 1, 5, 10, 20, 50, 100},
	}, []string{"engine"})

	fetchErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_fetch_errors_total",
		Help: "Total failed page fetches by engine",
	}, []string{"engine"})

	enginesExhausted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_engines_exhausted_total",
		Help: "Total engines that reached the end of their source",
	}, []string{"engine"})
)
