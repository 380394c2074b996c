package repositories

import (
	"context"
	"time"

	"expense-tracker/internal/models"

	"github.com/google/uuid"
)

// ExpenseRepositoryInterface defines the contract for expense repository operations
type ExpenseRepositoryInterface interface {
	Create(ctx context.Context, expense *models.Expense) error
	GetByIDForUser(ctx context.Context, userID, id uuid.UUID) (*models.Expense, error)
	// ListByUser returns newest first. A zero Limit returns every matching row.
	ListByUser(ctx context.Context, filters models.ExpenseFilters) ([]models.Expense, error)
	// ListByDateRange returns oldest first; start is inclusive, end exclusive. A zero start is unbounded.
	ListByDateRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]models.Expense, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

// BudgetSettingsRepositoryInterface defines the contract for budget settings storage
type BudgetSettingsRepositoryInterface interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.BudgetSettings, error)
	Upsert(ctx context.Context, settings *models.BudgetSettings) (*models.BudgetSettings, error)
}
