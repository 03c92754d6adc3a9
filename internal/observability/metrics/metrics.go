// Package metrics exposes prometheus instruments for registry operations.
package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

const (
	OutcomeOK           = "ok"
	OutcomeInvalidInput = "invalid_input"
	OutcomeNotFound     = "not_found"
	OutcomeNoop         = "noop"
)

// Registry captures operation and notification counts.
type Registry struct {
	operations    *prometheus.CounterVec
	notifications *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
}

// New registers the registry instruments on the given registerer.
func New(registerer prometheus.Registerer) *Registry {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &Registry{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "subtrack_registry_operations_total",
			Help: "Registry operations by name and outcome.",
		}, []string{"operation", "outcome"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "subtrack_notifications_total",
			Help: "Notification deliveries by channel and result.",
		}, []string{"channel", "result"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "subtrack_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
	}

	registerer.MustRegister(m.operations, m.notifications, m.httpDuration)
	return m
}

// RecordOperation increments the operation counter.
func (m *Registry) RecordOperation(operation, outcome string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(strings.TrimSpace(operation), strings.TrimSpace(outcome)).Inc()
}

// RecordNotification increments the notification counter.
func (m *Registry) RecordNotification(channel, result string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(strings.TrimSpace(channel), strings.TrimSpace(result)).Inc()
}

// ObserveHTTPRequest records request latency.
func (m *Registry) ObserveHTTPRequest(route, method, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpDuration.WithLabelValues(route, method, status).Observe(elapsed.Seconds())
}

func provide() *Registry {
	return New(prometheus.DefaultRegisterer)
}

// Module provides the prometheus instruments.
var Module = fx.Module("metrics",
	fx.Provide(provide),
)
