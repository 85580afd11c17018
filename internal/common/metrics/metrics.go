// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QuoteOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carrier_quote_outcomes_total",
			Help: "Quote outcomes by carrier, policy type and status",
		},
		[]string{"carrier", "policy_type", "status"},
	)

	CarrierCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "carrier_call_duration_seconds",
			Help:    "Duration of carrier HTTP calls in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30},
		},
		[]string{"carrier", "operation"},
	)

	CarrierCallFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carrier_call_failures_total",
			Help: "Carrier HTTP call failures by carrier and error code",
		},
		[]string{"carrier", "error_code"},
	)

	QuoteRunsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "quote_runs_active",
			Help: "Number of orchestrator runs in flight",
		},
	)
)
