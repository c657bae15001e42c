package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pawhaven_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// ApprovalDecisions counts admin approval decisions by entity and outcome.
	ApprovalDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pawhaven_approval_decisions_total",
		Help: "Total admin approval decisions by entity and decision",
	}, []string{"entity", "decision"})

	// MarketplaceSearches counts marketplace page loads, split by whether a
	// search query was supplied.
	MarketplaceSearches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pawhaven_marketplace_searches_total",
		Help: "Total marketplace listing requests by kind (browse or search)",
	}, []string{"kind"})
)

// RecordApprovalDecision increments the approval decision counter.
func RecordApprovalDecision(entity, decision string) {
	ApprovalDecisions.WithLabelValues(entity, decision).Inc()
}

// RecordMarketplaceRequest increments the marketplace request counter.
func RecordMarketplaceRequest(search bool) {
	kind := "browse"
	if search {
		kind = "search"
	}
	MarketplaceSearches.WithLabelValues(kind).Inc()
}

// TrackQuery returns a function that records query latency when called,
// intended for use with defer at the top of a repository method.
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).
			Observe(time.Since(start).Seconds())
	}
}
