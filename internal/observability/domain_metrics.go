package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	sessionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sqlscout_sessions_total",
			Help: "Total number of agent sessions by terminal outcome.",
		},
		[]string{"outcome"},
	)
	attemptsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sqlscout_attempts_total",
			Help: "Total number of generate-validate attempts across all sessions.",
		},
	)
	validationFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sqlscout_validation_failures_total",
			Help: "Total number of failed attempts by failure reason.",
		},
		[]string{"reason"},
	)
	inferenceLatencySeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sqlscout_inference_latency_seconds",
			Help:    "Model completion round-trip latency in seconds.",
			Buckets: []float64{0.25, 0.5, 1, 2, 3, 5, 10, 20, 30, 60},
		},
	)
	resultRowsReturned = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sqlscout_result_rows_returned",
			Help:    "Row counts of successfully executed queries.",
			Buckets: []float64{0, 1, 5, 10, 50, 100, 500, 1000},
		},
	)
)

func init() {
	prometheus.MustRegister(
		sessionsTotal,
		attemptsTotal,
		validationFailuresTotal,
		inferenceLatencySeconds,
		resultRowsReturned,
	)
}

func ObserveSession(outcome string) {
	sessionsTotal.WithLabelValues(outcome).Inc()
}

func ObserveAttempt() {
	attemptsTotal.Inc()
}

func ObserveValidationFailure(reason string) {
	validationFailuresTotal.WithLabelValues(reason).Inc()
}

func ObserveInference(elapsed time.Duration) {
	inferenceLatencySeconds.Observe(elapsed.Seconds())
}

func ObserveResultRows(count int) {
	resultRowsReturned.Observe(float64(count))
}
