package payments

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeOK         = "ok"
	OutcomeNotFound   = "not_found"
	OutcomeHTTPError  = "http_error"
	OutcomeConnection = "connection_error"
	OutcomeCanceled   = "canceled"
)

type Metrics struct {
	requests    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	submissions *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "multipay",
			Name:      "api_requests_total",
			Help:      "Calls made to the payments API by operation and outcome.",
		}, []string{"operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "multipay",
			Name:      "api_request_duration_seconds",
			Help:      "Latency of payments API calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "multipay",
			Name:      "submissions_total",
			Help:      "Payment form submissions by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(m.requests, m.duration, m.submissions)
	return m
}

func (m *Metrics) observeCall(op, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(op, outcome).Inc()
	m.duration.WithLabelValues(op).Observe(elapsed.Seconds())
}

// ObserveSubmission counts a form submission: created, invalid, rejected,
// connection_error or duplicate.
func (m *Metrics) ObserveSubmission(result string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(result).Inc()
}
