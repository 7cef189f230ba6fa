package businessflow

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Quote outcomes
const (
	outcomeSuccess            = "success"
	outcomeInvalidRequest     = "invalid_request"
	outcomeConfigurationError = "configuration_error"
	outcomeCarrierError       = "carrier_error"
	outcomeInvalidResponse    = "invalid_response"
)

var (
	// Quote requests partitioned by policy variant and outcome
	quoteRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "covercube_quote_requests_total",
			Help: "Total number of quote requests processed",
		},
		[]string{"variant", "outcome"},
	)

	// Carrier round-trip latency in seconds partitioned by policy variant
	carrierCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "covercube_carrier_call_duration_seconds",
			Help:    "Covercube rate quote call latencies in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30},
		},
		[]string{"variant"},
	)
)

func recordQuoteOutcome(variant, outcome string) {
	if variant == "" {
		variant = "unknown"
	}
	quoteRequestsTotal.WithLabelValues(variant, outcome).Inc()
}
