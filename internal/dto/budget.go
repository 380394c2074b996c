package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpdateBudgetRequest changes the monthly limit and currency of the caller
type UpdateBudgetRequest struct {
	MonthlyLimit string `json:"monthly_limit" validate:"required,expense_amount"`
	Currency     string `json:"currency" validate:"omitempty,currency_code"`
}

// BudgetSettingsResponse is the caller's budget settings
type BudgetSettingsResponse struct {
	MonthlyLimit decimal.Decimal `json:"monthly_limit"`
	Currency     string          `json:"currency"`
	// IsDefault is true when the user has not saved settings yet
	IsDefault bool       `json:"is_default"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
