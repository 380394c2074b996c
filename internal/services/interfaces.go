package services

import (
	"context"
	"time"

	"expense-tracker/internal/dto"
	"expense-tracker/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseServiceInterface defines expense write and lookup operations against storage
type ExpenseServiceInterface interface {
	CreateExpense(ctx context.Context, identity models.Identity, req *dto.CreateExpenseRequest) (*models.Expense, error)
	GetExpense(ctx context.Context, identity models.Identity, id uuid.UUID) (*models.Expense, error)
	ListExpenses(ctx context.Context, identity models.Identity, filters models.ExpenseFilters) (*dto.ExpensePage, error)
	// ListAllExpenses returns every expense of the user, newest first
	ListAllExpenses(ctx context.Context, identity models.Identity) ([]models.Expense, error)
	DeleteExpense(ctx context.Context, identity models.Identity, id uuid.UUID) error
}

// ExpenseSnapshotServiceInterface holds the list a user is shown and applies deletes optimistically
type ExpenseSnapshotServiceInterface interface {
	Load(ctx context.Context, identity models.Identity) ([]models.Expense, error)
	Create(ctx context.Context, identity models.Identity, req *dto.CreateExpenseRequest) (*models.Expense, error)
	// Delete removes the expense from the snapshot before the remote delete and restores it on failure
	Delete(ctx context.Context, identity models.Identity, id uuid.UUID) error
	Invalidate(userID uuid.UUID)
}

// HistoryServiceInterface groups a user's expenses for the history views
type HistoryServiceInterface interface {
	GetDailyHistory(ctx context.Context, identity models.Identity, loc *time.Location) ([]models.DayGroup, error)
	GetMonthlyHistory(ctx context.Context, identity models.Identity, loc *time.Location) ([]models.YearGroup, error)
}

// AnalyticsServiceInterface builds spending reports over a period
type AnalyticsServiceInterface interface {
	GetAnalytics(ctx context.Context, identity models.Identity, period string, loc *time.Location) (*models.Analytics, error)
}

// BudgetServiceInterface manages the monthly budget of a user
type BudgetServiceInterface interface {
	// GetSettings returns the stored settings or the configured defaults with a nil ID
	GetSettings(ctx context.Context, identity models.Identity) (*models.BudgetSettings, error)
	UpdateSettings(ctx context.Context, identity models.Identity, monthlyLimit decimal.Decimal, currency string) (*models.BudgetSettings, error)
}

// DashboardServiceInterface assembles the landing view
type DashboardServiceInterface interface {
	GetDashboard(ctx context.Context, identity models.Identity, loc *time.Location) (*models.Dashboard, error)
}

type TokenServiceInterface interface {
	GenerateAccessToken(identity models.Identity) (string, time.Time, error)
	ValidateAccessToken(tokenString string) (*models.CustomClaims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
}

type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}

type CircuitBreakerInterface interface {
	IsOpen() bool
	RecordSuccess()
	RecordFailure()
	GetState() models.CircuitBreakerState
	Reset()
	GetFailureCount() int
}

// ExpenseGeneratorInterface generates realistic expense data for demos and tests
type ExpenseGeneratorInterface interface {
	GenerateExpenses(userID uuid.UUID, count int, startDate, endDate time.Time) []models.Expense
	GenerateAmount(category string) decimal.Decimal
	GenerateTimestamp(startDate, endDate time.Time) time.Time
}
