package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	MetricExpenseCreated      = "expense.created"
	MetricExpenseDeleted      = "expense.deleted"
	MetricDeleteRollback      = "expense.delete.rollback"
	MetricReportCacheHit      = "report_cache.hit"
	MetricReportCacheMiss     = "report_cache.miss"
	MetricReportCacheError    = "report_cache.error"
	MetricEventPublishFailed  = "event.publish.failed"
	MetricAggregationDuration = "aggregation.duration"
	MetricCircuitBreakerState = "circuit_breaker.state"
	MetricExpenseAmount       = "expense.amount"
)

type PrometheusMetrics struct {
	expensesCreated     *prometheus.CounterVec
	expensesDeleted     *prometheus.CounterVec
	deleteRollbacks     prometheus.Counter
	reportCacheRequests *prometheus.CounterVec
	eventPublishFailed  *prometheus.CounterVec
	aggregationDuration *prometheus.HistogramVec
	circuitBreakerState *prometheus.GaugeVec
	expenseAmount       prometheus.Histogram
}

// NewPrometheusMetrics registers the collectors on reg. A nil reg uses the default registerer.
func NewPrometheusMetrics(reg prometheus.Registerer) MetricsRecorderInterface {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		expensesCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "expenses_created_total",
				Help: "Total number of expenses created",
			},
			[]string{"category"},
		),
		expensesDeleted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "expenses_deleted_total",
				Help: "Total number of expense deletes by outcome",
			},
			[]string{"status"},
		),
		deleteRollbacks: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "expense_delete_rollbacks_total",
				Help: "Total number of optimistic deletes rolled back",
			},
		),
		reportCacheRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "report_cache_requests_total",
				Help: "Report cache lookups by result",
			},
			[]string{"result"},
		),
		eventPublishFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "event_publish_failures_total",
				Help: "Total number of domain events that could not be published",
			},
			[]string{"type"},
		),
		aggregationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "aggregation_duration_milliseconds",
				Help:    "Time spent building a report in milliseconds",
				Buckets: prometheus.ExponentialBuckets(0.25, 2, 12),
			},
			[]string{"report"},
		),
		circuitBreakerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "circuit_breaker_state",
				Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
			},
			[]string{"service"},
		),
		expenseAmount: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "expense_amount",
				Help:    "Expense amount in currency units",
				Buckets: prometheus.ExponentialBuckets(10, 4, 8),
			},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case MetricExpenseCreated:
		m.expensesCreated.WithLabelValues(tags["category"]).Inc()
	case MetricExpenseDeleted:
		if status := tags["status"]; status != "" {
			m.expensesDeleted.WithLabelValues(status).Inc()
		}
	case MetricDeleteRollback:
		m.deleteRollbacks.Inc()
	case MetricReportCacheHit:
		m.reportCacheRequests.WithLabelValues("hit").Inc()
	case MetricReportCacheMiss:
		m.reportCacheRequests.WithLabelValues("miss").Inc()
	case MetricReportCacheError:
		m.reportCacheRequests.WithLabelValues("error").Inc()
	case MetricEventPublishFailed:
		m.eventPublishFailed.WithLabelValues(tags["type"]).Inc()
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case MetricAggregationDuration + ".analytics":
		m.aggregationDuration.WithLabelValues("analytics").Observe(float64(duration.Microseconds()) / 1000)
	case MetricAggregationDuration + ".history":
		m.aggregationDuration.WithLabelValues("history").Observe(float64(duration.Microseconds()) / 1000)
	case MetricAggregationDuration + ".dashboard":
		m.aggregationDuration.WithLabelValues("dashboard").Observe(float64(duration.Microseconds()) / 1000)
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case MetricCircuitBreakerState:
		m.circuitBreakerState.WithLabelValues(tags["service"]).Set(value)
	case MetricExpenseAmount:
		m.expenseAmount.Observe(value)
	}
}
