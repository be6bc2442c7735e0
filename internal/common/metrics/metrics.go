// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_requests_total",
			Help: "Total number of search requests by outcome",
		},
		[]string{"outcome"},
	)

	SearchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "search_duration_seconds",
			Help: "Duration of search orchestration in seconds",
		},
		[]string{"outcome"},
	)

	FetcherResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fetcher_results_total",
			Help: "Total number of raw listings returned per fetcher",
		},
		[]string{"fetcher"},
	)

	FetcherFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fetcher_failures_total",
			Help: "Total number of fetcher errors by fetcher and error code",
		},
		[]string{"fetcher", "error_code"},
	)

	FetchersActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "fetchers_active",
			Help: "Number of in-flight fetches per fetcher",
		},
		[]string{"fetcher"},
	)
)
