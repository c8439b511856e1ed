// Package metrics holds the process-wide prometheus collectors. Collectors are
// package-level so instrumented code records without plumbing; call Register
// once at startup to expose them.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	UpstreamRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cinetier",
		Name:      "upstream_requests_total",
		Help:      "Total requests to upstream sources by source, operation and result status.",
	}, []string{"source", "operation", "status"})

	UpstreamRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "cinetier",
		Name:      "upstream_request_duration_seconds",
		Help:      "Upstream request duration in seconds.",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 15},
	}, []string{"source", "operation"})

	CacheLookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cinetier",
		Name:      "film_cache_lookups_total",
		Help:      "Film cache lookups by layer and result (hit, miss, error).",
	}, []string{"layer", "result"})

	RankResultsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cinetier",
		Name:      "rank_results_total",
		Help:      "Completed rankings by entry point and tier level.",
	}, []string{"entry", "level"})

	PlaceholderFilmsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "cinetier",
		Name:      "placeholder_films_total",
		Help:      "Favourite films that could not be resolved and were scored as placeholders.",
	})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cinetier",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "cinetier",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration in seconds.",
		Buckets:   []float64{0.05, 0.1, 0.3, 0.5, 1, 2, 5, 10, 20},
	}, []string{"method", "route"})
)

func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		UpstreamRequestsTotal,
		UpstreamRequestDuration,
		CacheLookupsTotal,
		RankResultsTotal,
		PlaceholderFilmsTotal,
		HTTPRequestsTotal,
		HTTPRequestDuration,
	)
}

// ObserveUpstream records one upstream call. status is an HTTP status code, or
// 0 when the request never produced a response.
func ObserveUpstream(source, operation string, status int, elapsed time.Duration) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	UpstreamRequestsTotal.WithLabelValues(source, operation, label).Inc()
	UpstreamRequestDuration.WithLabelValues(source, operation).Observe(elapsed.Seconds())
}

// ObserveCache records a cache lookup outcome for a layer.
func ObserveCache(layer, result string) {
	CacheLookupsTotal.WithLabelValues(layer, result).Inc()
}

// ObserveRank records a completed ranking.
func ObserveRank(entry string, level int) {
	RankResultsTotal.WithLabelValues(entry, strconv.Itoa(level)).Inc()
}
