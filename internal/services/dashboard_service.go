package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"expense-tracker/internal/aggregation"
	"expense-tracker/internal/models"
	"expense-tracker/internal/repositories"

	"golang.org/x/sync/errgroup"
)

const (
	RecentExpensesLimit = 5
	monthLabelLayout    = "January 2006"
)

type dashboardService struct {
	expenseRepo repositories.ExpenseRepositoryInterface
	budget      BudgetServiceInterface
	metrics     MetricsRecorderInterface
	logger      *slog.Logger
	now         func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	expenseRepo repositories.ExpenseRepositoryInterface,
	budget BudgetServiceInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) DashboardServiceInterface {
	return &dashboardService{
		expenseRepo: expenseRepo,
		budget:      budget,
		metrics:     metrics,
		logger:      logger,
		now:         time.Now,
	}
}

// GetDashboard loads budget settings, this month's expenses and the latest expenses in parallel
func (s *dashboardService) GetDashboard(ctx context.Context, identity models.Identity, loc *time.Location) (*models.Dashboard, error) {
	if loc == nil {
		loc = time.UTC
	}
	from, to, err := PeriodRange(PeriodMonth, s.now(), loc)
	if err != nil {
		return nil, err
	}

	var (
		settings *models.BudgetSettings
		month    []models.Expense
		recent   []models.Expense
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		settings, err = s.budget.GetSettings(gctx, identity)
		return err
	})
	g.Go(func() error {
		var err error
		month, err = s.expenseRepo.ListByDateRange(gctx, identity.UserID, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = s.expenseRepo.ListByUser(gctx, models.ExpenseFilters{
			UserID: identity.UserID,
			Limit:  RecentExpensesLimit,
		})
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("failed to load dashboard", "user_id", identity.UserID, "error", err)
		return nil, fmt.Errorf("failed to get dashboard: %w", err)
	}

	start := time.Now()
	status := ComputeBudgetStatus(*settings, aggregation.Total(month), from.Format(monthLabelLayout))

	items := make([]models.RecentExpense, 0, len(recent))
	for _, expense := range models.ExpensesIn(recent, loc) {
		items = append(items, models.NewRecentExpense(expense))
	}
	if s.metrics != nil {
		s.metrics.RecordProcessingTime(MetricAggregationDuration+".dashboard", time.Since(start))
	}

	return &models.Dashboard{
		Greeting: "Hello, " + identity.DisplayName(),
		Budget:   status,
		Recent:   items,
	}, nil
}
