// Package metrics holds the Prometheus collectors for the orchestrators.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeCreated = "created"
	OutcomeSkipped = "skipped"
	OutcomeFailed  = "failed"
	OutcomeSent    = "sent"
)

type Metrics struct {
	JobRuns       *prometheus.CounterVec
	JobItems      *prometheus.CounterVec
	JobDuration   *prometheus.HistogramVec
	Notifications *prometheus.CounterVec
}

// NewMetrics registers the collectors on reg. Pass prometheus.DefaultRegisterer
// in production and a fresh registry in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		JobRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "azhaboost_job_runs_total",
			Help: "Total number of orchestrator runs",
		}, []string{"job"}),

		JobItems: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "azhaboost_job_items_total",
			Help: "Items handled by orchestrators by outcome",
		}, []string{"job", "outcome"}),

		JobDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "azhaboost_job_duration_seconds",
			Help:    "Duration of orchestrator runs",
			Buckets: prometheus.DefBuckets,
		}, []string{"job"}),

		Notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "azhaboost_notifications_total",
			Help: "Cleaner notifications by outcome",
		}, []string{"outcome"}),
	}
}

// ObserveRun counts a run and returns a func that records its duration.
func (m *Metrics) ObserveRun(job string) func() {
	start := time.Now()
	m.JobRuns.WithLabelValues(job).Inc()
	return func() {
		m.JobDuration.WithLabelValues(job).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) Item(job, outcome string) {
	m.JobItems.WithLabelValues(job, outcome).Inc()
}

func (m *Metrics) Notification(outcome string) {
	m.Notifications.WithLabelValues(outcome).Inc()
}
