// Package metrics provides Prometheus metrics export for the assistant.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusExporter exports assistant metrics in Prometheus format.
type PrometheusExporter struct {
	registry *prometheus.Registry

	chatLatency  *prometheus.HistogramVec
	chatRequests *prometheus.CounterVec

	toolCalls *prometheus.CounterVec

	llmTokensUsed *prometheus.CounterVec
	llmCalls      *prometheus.CounterVec
}

// Config configures the Prometheus exporter.
type Config struct {
	// Registry to use (if nil, creates a new one)
	Registry *prometheus.Registry

	// Buckets for latency histograms (in seconds)
	LatencyBuckets []float64
}

// DefaultConfig returns default Prometheus configuration.
func DefaultConfig() Config {
	return Config{
		LatencyBuckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
	}
}

// NewPrometheusExporter creates a new Prometheus metrics exporter.
func NewPrometheusExporter(cfg Config) *PrometheusExporter {
	if len(cfg.LatencyBuckets) == 0 {
		cfg.LatencyBuckets = DefaultConfig().LatencyBuckets
	}

	registry := cfg.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	e := &PrometheusExporter{registry: registry}

	e.chatLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mindwell",
			Subsystem: "ai",
			Name:      "chat_latency_seconds",
			Help:      "Chat turn latency in seconds",
			Buckets:   cfg.LatencyBuckets,
		},
		[]string{"agent"},
	)

	e.chatRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mindwell",
			Subsystem: "ai",
			Name:      "chat_requests_total",
			Help:      "Total number of chat turns",
		},
		[]string{"agent", "status"},
	)

	e.toolCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mindwell",
			Subsystem: "ai",
			Name:      "tool_calls_total",
			Help:      "Total number of tool calls",
		},
		[]string{"agent"},
	)

	e.llmTokensUsed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mindwell",
			Subsystem: "ai",
			Name:      "llm_tokens_total",
			Help:      "Total LLM tokens consumed",
		},
		[]string{"token_type"},
	)

	e.llmCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mindwell",
			Subsystem: "ai",
			Name:      "llm_calls_total",
			Help:      "Total LLM completion calls",
		},
		[]string{"agent"},
	)

	registry.MustRegister(
		e.chatLatency,
		e.chatRequests,
		e.toolCalls,
		e.llmTokensUsed,
		e.llmCalls,
	)
	return e
}

// RecordChatTurn records one completed conversation turn.
func (e *PrometheusExporter) RecordChatTurn(agent string, latency time.Duration, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	e.chatRequests.WithLabelValues(agent, status).Inc()
	e.chatLatency.WithLabelValues(agent).Observe(latency.Seconds())
}

// RecordToolCalls adds to the tool call counter for an agent.
func (e *PrometheusExporter) RecordToolCalls(agent string, count int) {
	if count > 0 {
		e.toolCalls.WithLabelValues(agent).Add(float64(count))
	}
}

// RecordLLMUsage records completion calls and token consumption.
func (e *PrometheusExporter) RecordLLMUsage(agent string, calls, promptTokens, completionTokens int) {
	if calls > 0 {
		e.llmCalls.WithLabelValues(agent).Add(float64(calls))
	}
	if promptTokens > 0 {
		e.llmTokensUsed.WithLabelValues("prompt").Add(float64(promptTokens))
	}
	if completionTokens > 0 {
		e.llmTokensUsed.WithLabelValues("completion").Add(float64(completionTokens))
	}
}

// Handler returns the HTTP handler serving the metrics endpoint.
func (e *PrometheusExporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (e *PrometheusExporter) Registry() *prometheus.Registry {
	return e.registry
}
