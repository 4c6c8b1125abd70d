package monitoring

import (
	"time"

	"kitchenorders/internal/models"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes forecast activity as prometheus collectors
type Metrics struct {
	registry *prometheus.Registry

	runs          *prometheus.CounterVec
	historyOrders prometheus.Histogram
	suggestions   *prometheus.CounterVec
	confidence    prometheus.Histogram
	queryFailures prometheus.Counter
	runDuration   prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on a fresh registry
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "forecast_runs_total",
				Help: "Order suggestion runs by outcome",
			},
			[]string{"outcome"},
		),
		historyOrders: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "forecast_history_orders",
				Help:    "Historical orders loaded per suggestion run",
				Buckets: prometheus.LinearBuckets(0, 2, 10),
			},
		),
		suggestions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "forecast_suggestions_total",
				Help: "Line item suggestions by result",
			},
			[]string{"result"},
		),
		confidence: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "forecast_suggestion_confidence",
				Help:    "Confidence of produced suggestions",
				Buckets: []float64{0.25, 0.5, 0.75, 1},
			},
		),
		queryFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "forecast_history_query_failures_total",
				Help: "Weekly history queries that failed and were treated as empty",
			},
		),
		runDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "forecast_run_duration_seconds",
				Help:    "Time taken by a suggestion run",
				Buckets: prometheus.DefBuckets,
			},
		),
	}

	m.registry.MustRegister(
		m.runs,
		m.historyOrders,
		m.suggestions,
		m.confidence,
		m.queryFailures,
		m.runDuration,
	)

	return m
}

// Registry returns the registry holding the forecast collectors
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// HistoryQueryFailed counts a failed weekly history query
func (m *Metrics) HistoryQueryFailed() {
	m.queryFailures.Inc()
}

// SuggestionProduced records the result of one line item suggestion
func (m *Metrics) SuggestionProduced(s models.Suggestion) {
	if !s.HasSuggestion {
		m.suggestions.WithLabelValues(string(s.Reason)).Inc()
		return
	}
	m.suggestions.WithLabelValues("applied").Inc()
	m.confidence.Observe(s.Confidence)
}

// RunCompleted records the outcome of a suggestion run
func (m *Metrics) RunCompleted(outcome string, historicalOrders int, duration time.Duration) {
	m.runs.WithLabelValues(outcome).Inc()
	m.runDuration.Observe(duration.Seconds())
	if historicalOrders > 0 {
		m.historyOrders.Observe(float64(historicalOrders))
	}
}
