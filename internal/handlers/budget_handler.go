package handlers

import (
	"net/http"
	"strings"

	"expense-tracker/internal/dto"
	"expense-tracker/internal/errors"
	"expense-tracker/internal/models"
	"expense-tracker/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// BudgetHandler handles the budget settings endpoints
type BudgetHandler struct {
	budgets services.BudgetServiceInterface
}

// NewBudgetHandler creates a new budget handler
func NewBudgetHandler(budgets services.BudgetServiceInterface) *BudgetHandler {
	return &BudgetHandler{budgets: budgets}
}

func toBudgetSettingsResponse(settings *models.BudgetSettings) dto.BudgetSettingsResponse {
	response := dto.BudgetSettingsResponse{
		MonthlyLimit: settings.MonthlyLimit,
		Currency:     settings.Currency,
		IsDefault:    settings.ID == uuid.Nil,
	}
	if !response.IsDefault && !settings.UpdatedAt.IsZero() {
		updatedAt := settings.UpdatedAt
		response.UpdatedAt = &updatedAt
	}
	return response
}

// GetBudget returns the caller's budget settings
// @Summary Get budget settings
// @Description Returns stored settings, or the defaults with is_default=true
// @Tags Settings
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.BudgetSettingsResponse "Budget settings"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /settings/budget [get]
func (h *BudgetHandler) GetBudget(c echo.Context) error {
	identity, err := getIdentityFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	settings, err := h.budgets.GetSettings(c.Request().Context(), identity)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, toBudgetSettingsResponse(settings))
}

// UpdateBudget stores the caller's monthly limit and currency
// @Summary Update budget settings
// @Tags Settings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.UpdateBudgetRequest true "Budget settings"
// @Success 200 {object} dto.BudgetSettingsResponse "Stored settings"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request body"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 422 {object} errors.ErrorResponse "BUDGET_001 - Invalid limit or BUDGET_002 - Invalid currency"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /settings/budget [put]
func (h *BudgetHandler) UpdateBudget(c echo.Context) error {
	identity, err := getIdentityFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.UpdateBudgetRequest
	if handled, err := bindAndValidate(c, &req); handled {
		return err
	}

	limit, err := decimal.NewFromString(strings.TrimSpace(req.MonthlyLimit))
	if err != nil {
		return SendError(c, errors.BudgetInvalidLimit)
	}

	settings, err := h.budgets.UpdateSettings(c.Request().Context(), identity, limit, req.Currency)
	if err != nil {
		return sendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, toBudgetSettingsResponse(settings))
}
