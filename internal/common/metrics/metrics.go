// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PricingRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricing_requests_total",
			Help: "Total number of pricing computations by model",
		},
		[]string{"model"},
	)

	PricingErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricing_errors_total",
			Help: "Total number of failed pricing computations by error code",
		},
		[]string{"error_code"},
	)

	PricingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "pricing_duration_seconds",
			Help: "Duration of pricing computations in seconds",
		},
		[]string{"model"},
	)

	ModelAgreement = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ensemble_model_agreement",
			Help: "Agreement score across ensemble sub-models for the last pricing of a field",
		},
		[]string{"field"},
	)

	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricing_cache_hits_total",
			Help: "Pricing result cache hits and misses",
		},
		[]string{"outcome"},
	)
)
