package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	expenseCreatedTotal  *prometheus.CounterVec
	expenseEditedTotal   *prometheus.CounterVec
	expenseDeletedTotal  prometheus.Counter
	categoryRenamedTotal prometheus.Counter
	categoryDeletedTotal prometheus.Counter
	cascadeDuration      prometheus.Histogram
	validationFailures   *prometheus.CounterVec
	sessionEventsTotal   *prometheus.CounterVec
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		expenseCreatedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "expense_created_total",
				Help: "Total number of expenses created",
			},
			[]string{"category"},
		),
		expenseEditedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "expense_edited_total",
				Help: "Total number of expense edits by field",
			},
			[]string{"field"},
		),
		expenseDeletedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "expense_deleted_total",
				Help: "Total number of expenses deleted",
			},
		),
		categoryRenamedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "category_renamed_total",
				Help: "Total number of category renames",
			},
		),
		categoryDeletedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "category_deleted_total",
				Help: "Total number of category deletions",
			},
		),
		cascadeDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "category_cascade_duration_milliseconds",
				Help:    "Category rename/delete cascade duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		validationFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "validation_failures_total",
				Help: "Total number of rejected expense inputs by field",
			},
			[]string{"field"},
		),
		sessionEventsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "session_events_total",
				Help: "Total number of session events",
			},
			[]string{"event_type"},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case "expense.created":
		m.expenseCreatedTotal.WithLabelValues(tags["category"]).Inc()
	case "expense.edited":
		if field := tags["field"]; field != "" {
			m.expenseEditedTotal.WithLabelValues(field).Inc()
		}
	case "expense.deleted":
		m.expenseDeletedTotal.Inc()
	case "category.renamed":
		m.categoryRenamedTotal.Inc()
	case "category.deleted":
		m.categoryDeletedTotal.Inc()
	case "validation.failed":
		if field := tags["field"]; field != "" {
			m.validationFailures.WithLabelValues(field).Inc()
		}
	case "session.event":
		if eventType := tags["event_type"]; eventType != "" {
			m.sessionEventsTotal.WithLabelValues(eventType).Inc()
		}
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case "category.cascade":
		m.cascadeDuration.Observe(float64(duration.Milliseconds()))
	}
}
