package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"expense-tracker/internal/aggregation"
	"expense-tracker/internal/cache"
	"expense-tracker/internal/models"
	"expense-tracker/internal/repositories"

	"github.com/jinzhu/now"
)

const (
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
	PeriodAll   = "all"
)

var ErrInvalidPeriod = errors.New("invalid period")

type analyticsService struct {
	expenseRepo repositories.ExpenseRepositoryInterface
	reportCache cache.ReportCache
	breaker     CircuitBreakerInterface
	metrics     MetricsRecorderInterface
	logger      *slog.Logger
	now         func() time.Time
}

// NewAnalyticsService creates an analytics service. reportCache may be nil to disable caching.
func NewAnalyticsService(
	expenseRepo repositories.ExpenseRepositoryInterface,
	reportCache cache.ReportCache,
	breaker CircuitBreakerInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) AnalyticsServiceInterface {
	if breaker == nil {
		breaker = NewCircuitBreaker(DefaultCircuitBreakerConfig(), metrics, logger)
	}
	return &analyticsService{
		expenseRepo: expenseRepo,
		reportCache: reportCache,
		breaker:     breaker,
		metrics:     metrics,
		logger:      logger,
		now:         time.Now,
	}
}

// PeriodRange returns the [from, to) window of period around at, weeks starting on Monday.
// The all period has a zero from and ends at the start of the next day.
func PeriodRange(period string, at time.Time, loc *time.Location) (time.Time, time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	config := &now.Config{WeekStartDay: time.Monday, TimeLocation: loc}
	n := config.With(at.In(loc))

	switch period {
	case PeriodWeek:
		from := n.BeginningOfWeek()
		return from, from.AddDate(0, 0, 7), nil
	case PeriodMonth, "":
		from := n.BeginningOfMonth()
		return from, from.AddDate(0, 1, 0), nil
	case PeriodYear:
		from := n.BeginningOfYear()
		return from, from.AddDate(1, 0, 0), nil
	case PeriodAll:
		return time.Time{}, n.BeginningOfDay().AddDate(0, 0, 1), nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, period)
	}
}

// GetAnalytics returns totals, category breakdown and daily trend of period in loc
func (s *analyticsService) GetAnalytics(ctx context.Context, identity models.Identity, period string, loc *time.Location) (*models.Analytics, error) {
	if period == "" {
		period = PeriodMonth
	}
	if loc == nil {
		loc = time.UTC
	}

	from, to, err := PeriodRange(period, s.now(), loc)
	if err != nil {
		return nil, err
	}

	key := cache.ReportKey("analytics", period, loc.String(), from.Format(models.DayKeyLayout), to.Format(models.DayKeyLayout))
	if cached, ok := s.cached(identity, key); ok {
		return cached, nil
	}
	generation, cacheable := s.generation(identity)

	expenses, err := s.expenseRepo.ListByDateRange(ctx, identity.UserID, from, to)
	if err != nil {
		s.logger.Error("failed to load expenses for analytics", "user_id", identity.UserID, "period", period, "error", err)
		return nil, fmt.Errorf("failed to get analytics: %w", err)
	}

	start := time.Now()
	report := BuildAnalytics(period, from, to, models.ExpensesIn(expenses, loc))
	if s.metrics != nil {
		s.metrics.RecordProcessingTime(MetricAggregationDuration+".analytics", time.Since(start))
	}

	if cacheable {
		s.store(identity, generation, key, report)
	}

	return report, nil
}

// BuildAnalytics aggregates expenses that already carry the display location
func BuildAnalytics(period string, from, to time.Time, expenses []models.Expense) *models.Analytics {
	report := &models.Analytics{
		Period:         period,
		To:             to,
		Total:          aggregation.Total(expenses),
		ExpenseCount:   len(expenses),
		CategoryTotals: aggregation.CategoryTotals(expenses),
		Trend:          aggregation.DailyTrend(expenses),
	}
	if !from.IsZero() {
		report.From = &from
	}
	return report
}

// cached reads a report. Cache failures are counted against the breaker and treated as a miss.
func (s *analyticsService) cached(identity models.Identity, key string) (*models.Analytics, bool) {
	if s.reportCache == nil || s.breaker.IsOpen() {
		return nil, false
	}

	data, err := s.reportCache.Get(identity.UserID, key)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			s.breaker.RecordSuccess()
			s.incr(MetricReportCacheMiss)
			return nil, false
		}
		s.breaker.RecordFailure()
		s.incr(MetricReportCacheError)
		s.logger.Warn("report cache read failed", "key", key, "error", err)
		return nil, false
	}
	s.breaker.RecordSuccess()

	var report models.Analytics
	if err := json.Unmarshal(data, &report); err != nil {
		s.logger.Warn("discarding unreadable cached report", "key", key, "error", err)
		return nil, false
	}

	s.incr(MetricReportCacheHit)
	return &report, true
}

// generation reads the cache generation before the report is computed, so a report built
// from data that changed meanwhile is not written back
func (s *analyticsService) generation(identity models.Identity) (string, bool) {
	if s.reportCache == nil || s.breaker.IsOpen() {
		return "", false
	}

	generation, err := s.reportCache.Generation(identity.UserID)
	if err != nil {
		s.breaker.RecordFailure()
		s.incr(MetricReportCacheError)
		s.logger.Warn("report cache generation read failed", "user_id", identity.UserID, "error", err)
		return "", false
	}
	return generation, true
}

func (s *analyticsService) store(identity models.Identity, generation, key string, report *models.Analytics) {
	if s.reportCache == nil || s.breaker.IsOpen() {
		return
	}

	data, err := json.Marshal(report)
	if err != nil {
		s.logger.Warn("failed to encode report", "key", key, "error", err)
		return
	}

	if err := s.reportCache.SetAt(identity.UserID, generation, key, data); err != nil {
		s.breaker.RecordFailure()
		s.incr(MetricReportCacheError)
		s.logger.Warn("report cache write failed", "key", key, "error", err)
		return
	}
	s.breaker.RecordSuccess()
}

func (s *analyticsService) incr(name string) {
	if s.metrics != nil {
		s.metrics.IncrementCounter(name, nil)
	}
}
