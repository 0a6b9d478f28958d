// Package metrics defines the application's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Oracle metrics
var (
	// OracleRequestsTotal tracks classification oracle calls by status.
	OracleRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oracle_requests_total",
			Help: "Total classification oracle requests by status",
		},
		[]string{"status"},
	)

	// OracleRequestDuration tracks oracle request latency in seconds.
	// The oracle is a remote LLM call, so buckets skew high.
	OracleRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "oracle_request_duration_seconds",
			Help:    "Classification oracle request duration in seconds",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
		},
	)
)

// Analysis metrics
var (
	// AnalysesTotal tracks completed (persisted) sentiment analyses.
	AnalysesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sentiment_analyses_total",
			Help: "Total persisted sentiment analyses",
		},
	)

	// AnalysisBatchSize tracks how many opinions each analysis carries.
	AnalysisBatchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sentiment_analysis_batch_size",
			Help:    "Number of opinions per analysis request",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250},
		},
	)
)
