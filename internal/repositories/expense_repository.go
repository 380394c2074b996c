package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"expense-tracker/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrExpenseNotFound = errors.New("expense not found")
	ErrNilExpense      = errors.New("expense cannot be nil")
)

const categoryNameExpr = "category->>'name'"

// expenseRepository implements ExpenseRepositoryInterface
type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) ExpenseRepositoryInterface {
	return &expenseRepository{
		db: db,
	}
}

// Create creates a new expense
func (r *expenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	if expense == nil {
		return ErrNilExpense
	}

	if err := r.db.WithContext(ctx).Create(expense).Error; err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

// GetByIDForUser retrieves an expense only when userID owns it
func (r *expenseRepository) GetByIDForUser(ctx context.Context, userID, id uuid.UUID) (*models.Expense, error) {
	var expense models.Expense
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return &expense, nil
}

// ListByUser retrieves a user's expenses with filters and keyset pagination
func (r *expenseRepository) ListByUser(ctx context.Context, filters models.ExpenseFilters) ([]models.Expense, error) {
	query := r.db.WithContext(ctx).Model(&models.Expense{}).Where("user_id = ?", filters.UserID)

	if filters.StartDate != nil {
		query = query.Where("date >= ?", filters.StartDate.UTC())
	}
	if filters.EndDate != nil {
		query = query.Where("date < ?", filters.EndDate.UTC())
	}
	if filters.Category != "" {
		query = query.Where(categoryNameExpr+" = ?", filters.Category)
	}
	if filters.PaymentMethod != "" {
		query = query.Where("payment_method = ?", filters.PaymentMethod)
	}
	if filters.After != nil {
		date := filters.After.Date.UTC()
		createdAt := filters.After.CreatedAt.UTC()
		query = query.Where(
			"(date < ?) OR (date = ? AND created_at < ?) OR (date = ? AND created_at = ? AND id < ?)",
			date, date, createdAt, date, createdAt, filters.After.ID,
		)
	}

	query = query.Order("date DESC").Order("created_at DESC").Order("id DESC")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}

	var expenses []models.Expense
	if err := query.Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}

// ListByDateRange retrieves a user's expenses in [start, end) in chronological order
func (r *expenseRepository) ListByDateRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]models.Expense, error) {
	query := r.db.WithContext(ctx).Where("user_id = ? AND date < ?", userID, end.UTC())
	if !start.IsZero() {
		query = query.Where("date >= ?", start.UTC())
	}

	var expenses []models.Expense
	if err := query.Order("date ASC").Order("created_at ASC").Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("failed to get expenses by date range: %w", err)
	}
	return expenses, nil
}

// Delete removes one of the user's expenses
func (r *expenseRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Expense{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete expense: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrExpenseNotFound
	}

	return nil
}

// CountByUser counts every expense a user has logged
func (r *expenseRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Expense{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count expenses: %w", err)
	}
	return count, nil
}
