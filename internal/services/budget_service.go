package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"expense-tracker/internal/aggregation"
	"expense-tracker/internal/config"
	"expense-tracker/internal/models"
	"expense-tracker/internal/repositories"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type budgetService struct {
	settingsRepo repositories.BudgetSettingsRepositoryInterface
	defaults     config.BudgetConfig
	logger       *slog.Logger
}

// NewBudgetService creates a budget service falling back to defaults for users without settings
func NewBudgetService(settingsRepo repositories.BudgetSettingsRepositoryInterface, defaults config.BudgetConfig, logger *slog.Logger) BudgetServiceInterface {
	return &budgetService{
		settingsRepo: settingsRepo,
		defaults:     defaults,
		logger:       logger,
	}
}

// GetSettings returns the stored settings of the caller or the configured defaults
func (s *budgetService) GetSettings(ctx context.Context, identity models.Identity) (*models.BudgetSettings, error) {
	settings, err := s.settingsRepo.GetByUserID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrBudgetSettingsNotFound) {
			return &models.BudgetSettings{
				UserID:       identity.UserID,
				MonthlyLimit: s.defaults.DefaultMonthlyLimit,
				Currency:     s.defaults.DefaultCurrency,
			}, nil
		}
		return nil, fmt.Errorf("failed to get budget settings: %w", err)
	}
	return settings, nil
}

// UpdateSettings saves the caller's monthly limit. An empty currency keeps the current one.
func (s *budgetService) UpdateSettings(ctx context.Context, identity models.Identity, monthlyLimit decimal.Decimal, currency string) (*models.BudgetSettings, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		current, err := s.GetSettings(ctx, identity)
		if err != nil {
			return nil, err
		}
		currency = current.Currency
	}

	settings := &models.BudgetSettings{
		UserID:       identity.UserID,
		MonthlyLimit: monthlyLimit,
		Currency:     currency,
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	saved, err := s.settingsRepo.Upsert(ctx, settings)
	if err != nil {
		s.logger.Error("failed to save budget settings", "user_id", identity.UserID, "error", err)
		return nil, fmt.Errorf("failed to update budget settings: %w", err)
	}

	s.logger.Info("budget settings updated",
		"user_id", identity.UserID,
		"monthly_limit", saved.MonthlyLimit.String(),
		"currency", saved.Currency)

	return saved, nil
}

// ComputeBudgetStatus compares spent against the monthly limit. Percentage is capped at 100;
// a zero limit reads as 100% once anything is spent.
func ComputeBudgetStatus(settings models.BudgetSettings, spent decimal.Decimal, month string) models.BudgetStatus {
	limit := settings.MonthlyLimit

	percentage := decimal.Zero
	switch {
	case limit.IsPositive():
		percentage = decimal.Min(spent.Div(limit).Mul(hundred), hundred).Round(2)
	case spent.IsPositive():
		percentage = hundred
	}

	return models.BudgetStatus{
		Month:        month,
		MonthlyLimit: limit,
		Currency:     settings.Currency,
		Spent:        spent,
		Remaining:    aggregation.Remaining(limit, spent),
		Percentage:   percentage,
		IsOverBudget: spent.GreaterThan(limit),
	}
}
