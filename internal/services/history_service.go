package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"expense-tracker/internal/aggregation"
	"expense-tracker/internal/models"
)

// DayHeaderLayout formats the heading of a day in the history list, e.g. "Thu, 1 Feb"
const DayHeaderLayout = "Mon, 2 Jan"

type historyService struct {
	snapshots ExpenseSnapshotServiceInterface
	metrics   MetricsRecorderInterface
	logger    *slog.Logger
}

// NewHistoryService creates a history service reading from the displayed snapshot
func NewHistoryService(snapshots ExpenseSnapshotServiceInterface, metrics MetricsRecorderInterface, logger *slog.Logger) HistoryServiceInterface {
	return &historyService{
		snapshots: snapshots,
		metrics:   metrics,
		logger:    logger,
	}
}

// GetDailyHistory returns the caller's expenses grouped by day in loc, newest day first
func (s *historyService) GetDailyHistory(ctx context.Context, identity models.Identity, loc *time.Location) ([]models.DayGroup, error) {
	expenses, err := s.snapshots.Load(ctx, identity)
	if err != nil {
		s.logger.Error("failed to load history", "user_id", identity.UserID, "error", err)
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	start := time.Now()
	defer s.observe(start)

	return BuildDailyHistory(models.ExpensesIn(expenses, loc)), nil
}

// GetMonthlyHistory returns the caller's expenses grouped by year and month in loc, newest first
func (s *historyService) GetMonthlyHistory(ctx context.Context, identity models.Identity, loc *time.Location) ([]models.YearGroup, error) {
	expenses, err := s.snapshots.Load(ctx, identity)
	if err != nil {
		s.logger.Error("failed to load history", "user_id", identity.UserID, "error", err)
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	start := time.Now()
	defer s.observe(start)

	return BuildMonthlyHistory(models.ExpensesIn(expenses, loc)), nil
}

func (s *historyService) observe(start time.Time) {
	if s.metrics != nil {
		s.metrics.RecordProcessingTime(MetricAggregationDuration+".history", time.Since(start))
	}
}

// BuildDailyHistory groups expenses that already carry the display location
func BuildDailyHistory(expenses []models.Expense) []models.DayGroup {
	buckets := aggregation.GroupByDate(expenses)
	keys := aggregation.SortedDayKeys(buckets, true)

	days := make([]models.DayGroup, 0, len(keys))
	for _, key := range keys {
		records := buckets[key]
		days = append(days, models.DayGroup{
			Date:     key,
			Label:    records[0].Date.Format(DayHeaderLayout),
			Total:    aggregation.Total(records),
			Count:    len(records),
			Expenses: records,
		})
	}
	return days
}

var monthOrder = func() map[string]time.Month {
	months := make(map[string]time.Month, 12)
	for m := time.January; m <= time.December; m++ {
		months[m.String()] = m
	}
	return months
}()

// BuildMonthlyHistory nests expenses by year and month, newest year and month first
func BuildMonthlyHistory(expenses []models.Expense) []models.YearGroup {
	tree := aggregation.GroupByYearMonth(expenses)

	years := make([]int, 0, len(tree))
	for year := range tree {
		years = append(years, year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))

	groups := make([]models.YearGroup, 0, len(years))
	for _, year := range years {
		byMonth := tree[year]

		names := make([]string, 0, len(byMonth))
		for name := range byMonth {
			names = append(names, name)
		}
		sort.Slice(names, func(i, j int) bool {
			return monthOrder[names[i]] > monthOrder[names[j]]
		})

		group := models.YearGroup{Year: year, Months: make([]models.MonthGroup, 0, len(names))}
		yearRecords := make([]models.Expense, 0)
		for _, name := range names {
			records := byMonth[name]
			yearRecords = append(yearRecords, records...)
			group.Months = append(group.Months, models.MonthGroup{
				Month:    name,
				Total:    aggregation.Total(records),
				Count:    len(records),
				Expenses: records,
			})
		}
		group.Total = aggregation.Total(yearRecords)
		groups = append(groups, group)
	}

	return groups
}
