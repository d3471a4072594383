package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const OutcomeOK = "ok"

var (
	// SessionTransitions counts register/login/authenticate/logout/refresh
	// attempts by outcome ("ok" or the error code).
	SessionTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "authsvc_session_transitions_total",
			Help: "Total number of session state transitions by outcome",
		},
		[]string{"transition", "outcome"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "authsvc_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

func ObserveTransition(transition, outcome string) {
	SessionTransitions.WithLabelValues(transition, outcome).Inc()
}
