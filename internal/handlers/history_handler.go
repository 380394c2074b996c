package handlers

import (
	"net/http"

	"expense-tracker/internal/dto"
	"expense-tracker/internal/errors"
	"expense-tracker/internal/services"

	"github.com/labstack/echo/v4"
)

// HistoryHandler serves the grouped history views
type HistoryHandler struct {
	history services.HistoryServiceInterface
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(history services.HistoryServiceInterface) *HistoryHandler {
	return &HistoryHandler{history: history}
}

// GetDailyHistory groups the caller's expenses by calendar day
// @Summary Daily history
// @Description Expenses grouped by day in tz, newest day first
// @Tags History
// @Security BearerAuth
// @Produce json
// @Param tz query string false "IANA time zone" default(UTC)
// @Success 200 {object} dto.DailyHistoryResponse "Day groups"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid time zone"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /history/daily [get]
func (h *HistoryHandler) GetDailyHistory(c echo.Context) error {
	identity, err := getIdentityFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var params dto.LocationParams
	if handled, err := bindAndValidate(c, &params); handled {
		return err
	}

	loc, err := services.LoadLocation(params.TZ)
	if err != nil {
		return sendDomainError(c, err)
	}

	days, err := h.history.GetDailyHistory(c.Request().Context(), identity, loc)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.DailyHistoryResponse{Days: days, Timezone: loc.String()})
}

// GetMonthlyHistory groups the caller's expenses by year then month
// @Summary Monthly history
// @Description Expenses grouped by year then month in tz, newest first
// @Tags History
// @Security BearerAuth
// @Produce json
// @Param tz query string false "IANA time zone" default(UTC)
// @Success 200 {object} dto.MonthlyHistoryResponse "Year groups"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid time zone"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /history/monthly [get]
func (h *HistoryHandler) GetMonthlyHistory(c echo.Context) error {
	identity, err := getIdentityFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var params dto.LocationParams
	if handled, err := bindAndValidate(c, &params); handled {
		return err
	}

	loc, err := services.LoadLocation(params.TZ)
	if err != nil {
		return sendDomainError(c, err)
	}

	years, err := h.history.GetMonthlyHistory(c.Request().Context(), identity, loc)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.MonthlyHistoryResponse{Years: years, Timezone: loc.String()})
}
