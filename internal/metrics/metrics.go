// Package metrics provides Prometheus instrumentation for the wishlist
// matching engine. It exposes counters for match runs and scored candidates
// and a histogram for run duration.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// MatchRunsTotal counts completed matching runs, labeled by outcome:
	// "matched" (>=1 result persisted), "empty" (zero results), or "error".
	MatchRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wishlist_match_runs_total",
		Help: "Total number of matching runs by outcome",
	}, []string{"outcome"})

	// MatchRunDuration records wall time of one matching run in seconds.
	MatchRunDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "wishlist_match_run_duration_seconds",
		Help:    "Duration of one matching run in seconds",
		Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	})

	// CandidatesScored counts listings scored across all matching runs.
	CandidatesScored = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "wishlist_match_candidates_scored_total",
		Help: "Total number of candidate listings scored",
	})

	// ResultsPersisted counts match records written by replace operations.
	ResultsPersisted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "wishlist_match_results_persisted_total",
		Help: "Total number of match records persisted",
	})
)

func init() {
	prometheus.MustRegister(
		MatchRunsTotal,
		MatchRunDuration,
		CandidatesScored,
		ResultsPersisted,
	)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
