// Package monitoring provides Prometheus metrics for the translation
// and recommendation core.
package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the core's Prometheus collectors. A nil *Metrics is
// valid and turns every recording call into a no-op, which keeps the
// application services testable without a registry.
type Metrics struct {
	registry *prometheus.Registry

	ParseFailures          prometheus.Counter
	CapabilityFallbacks    prometheus.Counter
	RecommendationsServed  *prometheus.CounterVec
	InterpretationDuration prometheus.Histogram
}

// New creates the metric set on its own registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		ParseFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "howl2go",
			Name:      "interpretation_parse_failures_total",
			Help:      "Completion responses that could not be parsed into criteria.",
		}),
		CapabilityFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "howl2go",
			Name:      "capability_fallbacks_total",
			Help:      "Requests served by rule-based fallback because the completion capability failed or was absent.",
		}),
		RecommendationsServed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "howl2go",
			Name:      "recommendations_served_total",
			Help:      "Recommendations returned to callers, labeled by generating strategy.",
		}, []string{"type"}),
		InterpretationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "howl2go",
			Name:      "interpretation_duration_seconds",
			Help:      "Wall time of one intent interpretation round trip.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	registry.MustRegister(
		m.ParseFailures,
		m.CapabilityFallbacks,
		m.RecommendationsServed,
		m.InterpretationDuration,
	)

	return m
}

// Handler exposes the registry for a /metrics route.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordParseFailure increments the parse failure counter.
func (m *Metrics) RecordParseFailure() {
	if m == nil {
		return
	}
	m.ParseFailures.Inc()
}

// RecordCapabilityFallback increments the fallback counter.
func (m *Metrics) RecordCapabilityFallback() {
	if m == nil {
		return
	}
	m.CapabilityFallbacks.Inc()
}

// RecordServed counts recommendations returned, by strategy type.
func (m *Metrics) RecordServed(recType string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.RecommendationsServed.WithLabelValues(recType).Add(float64(n))
}

// ObserveInterpretation records one interpretation round trip duration.
func (m *Metrics) ObserveInterpretation(seconds float64) {
	if m == nil {
		return
	}
	m.InterpretationDuration.Observe(seconds)
}
