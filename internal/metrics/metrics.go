// Package metrics provides Prometheus instrumentation for the adapter.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Webhook metrics
	WebhookRequestsTotal   *prometheus.CounterVec
	WebhookDurationSeconds *prometheus.HistogramVec
	SignatureFailuresTotal prometheus.Counter
	DecodeFailuresTotal    prometheus.Counter

	// Event bus metrics
	BusEmitTotal *prometheus.CounterVec

	// Reply metrics
	ReplyRequestsTotal   *prometheus.CounterVec
	ReplyDurationSeconds prometheus.Histogram

	// Rate limiter metrics
	RateLimiterDropped *prometheus.CounterVec
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	return &Metrics{
		WebhookRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "linehub_webhook_events_total",
				Help: "Total number of processed webhook events by kind and status",
			},
			[]string{"event_kind", "status"}, // status: success, error, reply_error
		),

		WebhookDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "linehub_webhook_duration_seconds",
				Help:    "Webhook event processing duration in seconds by kind",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
			},
			[]string{"event_kind"},
		),

		SignatureFailuresTotal: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "linehub_signature_failures_total",
				Help: "Total number of webhook requests rejected for a bad signature",
			},
		),

		DecodeFailuresTotal: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "linehub_decode_failures_total",
				Help: "Total number of webhook requests rejected as malformed",
			},
		),

		BusEmitTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "linehub_bus_emit_total",
				Help: "Total number of events emitted on the bus by channel",
			},
			[]string{"channel"},
		),

		ReplyRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "linehub_reply_requests_total",
				Help: "Total number of reply delivery calls by status",
			},
			[]string{"status"}, // status: success, error
		),

		ReplyDurationSeconds: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "linehub_reply_duration_seconds",
				Help:    "Reply delivery duration in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
			},
		),

		RateLimiterDropped: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "linehub_ratelimit_dropped_total",
				Help: "Total number of calls that found the rate limiter empty",
			},
			[]string{"name"},
		),
	}
}

// RecordWebhook records a processed webhook event.
func (m *Metrics) RecordWebhook(eventKind, status string, durationSeconds float64) {
	m.WebhookRequestsTotal.WithLabelValues(eventKind, status).Inc()
	if durationSeconds > 0 {
		m.WebhookDurationSeconds.WithLabelValues(eventKind).Observe(durationSeconds)
	}
}

// RecordBusEmit records one fan-out on a named channel.
func (m *Metrics) RecordBusEmit(channel string) {
	m.BusEmitTotal.WithLabelValues(channel).Inc()
}

// RecordReply records a reply delivery attempt.
func (m *Metrics) RecordReply(status string, durationSeconds float64) {
	m.ReplyRequestsTotal.WithLabelValues(status).Inc()
	m.ReplyDurationSeconds.Observe(durationSeconds)
}

// RecordRateLimiterDrop records a request that had to wait for tokens.
func (m *Metrics) RecordRateLimiterDrop(name string) {
	m.RateLimiterDropped.WithLabelValues(name).Inc()
}
