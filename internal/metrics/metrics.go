// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Dispatch outcomes.
const (
	OutcomeAssigned         = "assigned"
	OutcomeInvalid          = "invalid"
	OutcomeNotFound         = "not_found"
	OutcomeCapacityExceeded = "capacity_exceeded"
	OutcomeConflict         = "conflict"
	OutcomeError            = "error"
)

// Relay results.
const (
	RelayDelivered = "delivered"
	RelayRetrying  = "retrying"
	RelayFailed    = "failed"
)

// Metrics groups the collectors shared by the HTTP adapter and the jobs.
type Metrics struct {
	HTTPRequests         *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	Dispatches           *prometheus.CounterVec
	NotificationsRelayed *prometheus.CounterVec
	RelayRuns            *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequests:         NewHTTPRequestsTotal(),
		HTTPRequestDuration:  NewHTTPRequestDuration(),
		Dispatches:           NewDispatchesTotal(),
		NotificationsRelayed: NewNotificationsRelayedTotal(),
		RelayRuns:            NewRelayRunsTotal(),
	}
	reg.MustRegister(
		m.HTTPRequests,
		m.HTTPRequestDuration,
		m.Dispatches,
		m.NotificationsRelayed,
		m.RelayRuns,
	)
	return m
}

// NewHTTPRequestsTotal returns a counter of served HTTP requests by route and status.
func NewHTTPRequestsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
}

// NewHTTPRequestDuration returns a histogram of HTTP request latency.
func NewHTTPRequestDuration() *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
}

// NewDispatchesTotal returns a counter of dispatch attempts by outcome.
func NewDispatchesTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dispatch_assignments_total",
		Help: "Total number of dispatch attempts by outcome",
	}, []string{"outcome"})
}

// NewNotificationsRelayedTotal returns a counter of outbox messages handled by the relay.
func NewNotificationsRelayedTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "notification_relay_messages_total",
		Help: "Total number of outbox messages handled by the relay, by result",
	}, []string{"result"})
}

// NewRelayRunsTotal returns a counter of relay runs, labelled ok or error.
func NewRelayRunsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "notification_relay_runs_total",
		Help: "Total number of notification relay runs",
	}, []string{"status"})
}

// ObserveRelay adds one relay batch to the message counter.
func (m *Metrics) ObserveRelay(delivered, retrying, failed int) {
	m.NotificationsRelayed.WithLabelValues(RelayDelivered).Add(float64(delivered))
	m.NotificationsRelayed.WithLabelValues(RelayRetrying).Add(float64(retrying))
	m.NotificationsRelayed.WithLabelValues(RelayFailed).Add(float64(failed))
}
