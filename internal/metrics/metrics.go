// Package metrics provides Prometheus instrumentation for the discovery
// backend: counters for match requests, a histogram for ranking latency,
// and a histogram for result-set sizes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// MatchRequestsTotal counts match-ranking invocations, labeled by
	// outcome: "ok", "invalid", "unknown_requester", or "error".
	MatchRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kindred_match_requests_total",
		Help: "Total number of match ranking requests",
	}, []string{"outcome"})

	// MatchDuration records the full rank-and-limit pass latency in seconds.
	MatchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "kindred_match_duration_seconds",
		Help:    "Match ranking latency in seconds",
		Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	})

	// MatchResultsReturned records how many ranked rows each request produced.
	MatchResultsReturned = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "kindred_match_results_returned",
		Help:    "Number of ranked results returned per request",
		Buckets: []float64{0, 1, 5, 10, 20, 50},
	})

	// MessagesTotal counts direct messages processed, labeled "sent" or "read".
	MessagesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kindred_messages_total",
		Help: "Total number of direct messages processed",
	}, []string{"type"})

	// ConnectionEventsTotal counts connection lifecycle events, labeled by
	// transition: "requested", "accepted", "rejected", "blocked".
	ConnectionEventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kindred_connection_events_total",
		Help: "Total number of connection state transitions",
	}, []string{"event"})
)

// Register registers all collectors with the default registry.
func Register() {
	prometheus.MustRegister(
		MatchRequestsTotal,
		MatchDuration,
		MatchResultsReturned,
		MessagesTotal,
		ConnectionEventsTotal,
	)
}
