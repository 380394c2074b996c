package repositories

import (
	"context"
	"errors"
	"fmt"

	"expense-tracker/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrBudgetSettingsNotFound = errors.New("budget settings not found")
)

type budgetSettingsRepository struct {
	db *gorm.DB
}

// NewBudgetSettingsRepository creates a new budget settings repository
func NewBudgetSettingsRepository(db *gorm.DB) BudgetSettingsRepositoryInterface {
	return &budgetSettingsRepository{
		db: db,
	}
}

// GetByUserID retrieves the settings row for a user
func (r *budgetSettingsRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.BudgetSettings, error) {
	var settings models.BudgetSettings
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&settings).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBudgetSettingsNotFound
		}
		return nil, fmt.Errorf("failed to get budget settings: %w", err)
	}
	return &settings, nil
}

// Upsert writes the user's settings, replacing limit and currency of an existing row
func (r *budgetSettingsRepository) Upsert(ctx context.Context, settings *models.BudgetSettings) (*models.BudgetSettings, error) {
	if settings == nil {
		return nil, errors.New("budget settings cannot be nil")
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"monthly_limit", "currency", "updated_at"}),
	}).Create(settings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert budget settings: %w", err)
	}

	// the row id is the existing one when the insert hit the conflict path
	return r.GetByUserID(ctx, settings.UserID)
}
