// Package metrics defines the Prometheus collectors of the ordering service.
// All methods are safe to call on a nil *Metrics, which records nothing.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ordering"

type Metrics struct {
	ordersCreated  prometheus.Counter
	sagaResponses  *prometheus.CounterVec
	outboxMessages *prometheus.CounterVec
	httpRequests   *prometheus.CounterVec
	httpLatency    *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ordersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_created_total",
			Help:      "Total number of orders accepted and initialized.",
		}),
		sagaResponses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "saga_responses_total",
			Help:      "Saga responses handled, by source and outcome.",
		}, []string{"source", "outcome"}),
		outboxMessages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outbox_messages_total",
			Help:      "Outbox messages dispatched to the broker, by channel and result.",
		}, []string{"channel", "result"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"handler", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_ms",
			Help:      "HTTP request latency in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		}, []string{"handler"}),
	}

	reg.MustRegister(m.ordersCreated, m.sagaResponses, m.outboxMessages, m.httpRequests, m.httpLatency)
	return m
}

func (m *Metrics) OrderCreated() {
	if m == nil {
		return
	}
	m.ordersCreated.Inc()
}

// SagaResponse counts a handled payment or approval response.
// Outcome is one of "applied", "duplicate" or "failed".
func (m *Metrics) SagaResponse(source, outcome string) {
	if m == nil {
		return
	}
	m.sagaResponses.WithLabelValues(source, outcome).Inc()
}

func (m *Metrics) OutboxMessage(channel, result string) {
	if m == nil {
		return
	}
	m.outboxMessages.WithLabelValues(channel, result).Inc()
}

func (m *Metrics) HTTPRequest(handler, status string, latencyMS float64) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(handler, status).Inc()
	m.httpLatency.WithLabelValues(handler).Observe(latencyMS)
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
