// Package metrics holds the Prometheus collectors for the engine.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Report and chat sources as they appear in the "source" label.
const (
	SourceModel    = "model"
	SourceFallback = "fallback"
)

// Metrics groups the engine's collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	ReportsTotal         *prometheus.CounterVec
	ChatRepliesTotal     *prometheus.CounterVec
	AssessmentsSubmitted *prometheus.CounterVec
	ModelLatency         prometheus.Histogram
	LeaderboardEvents    *prometheus.CounterVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ReportsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "career_reports_total",
				Help: "Career reports produced, by source",
			},
			[]string{"source"},
		),
		ChatRepliesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "career_chat_replies_total",
				Help: "Career companion chat replies, by source",
			},
			[]string{"source"},
		),
		AssessmentsSubmitted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "career_assessments_submitted_total",
				Help: "Assessments submitted successfully, by test type",
			},
			[]string{"test_type"},
		),
		ModelLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "career_model_latency_seconds",
				Help:    "Latency of reasoning model calls including retries",
				Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
			},
		),
		LeaderboardEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "career_leaderboard_events_total",
				Help: "Leaderboard events processed by the worker, by outcome",
			},
			[]string{"outcome"},
		),
	}

	reg.MustRegister(m.ReportsTotal, m.ChatRepliesTotal, m.AssessmentsSubmitted, m.ModelLatency, m.LeaderboardEvents)
	return m
}

func (m *Metrics) ReportProduced(source string) {
	if m == nil {
		return
	}
	m.ReportsTotal.WithLabelValues(source).Inc()
}

func (m *Metrics) ChatReplied(source string) {
	if m == nil {
		return
	}
	m.ChatRepliesTotal.WithLabelValues(source).Inc()
}

func (m *Metrics) AssessmentSubmitted(testType string) {
	if m == nil {
		return
	}
	m.AssessmentsSubmitted.WithLabelValues(testType).Inc()
}

func (m *Metrics) ObserveModelCall(d time.Duration) {
	if m == nil {
		return
	}
	m.ModelLatency.Observe(d.Seconds())
}

func (m *Metrics) LeaderboardEvent(outcome string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.LeaderboardEvents.WithLabelValues(outcome).Add(float64(n))
}
