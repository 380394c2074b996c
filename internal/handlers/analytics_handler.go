package handlers

import (
	"net/http"

	"expense-tracker/internal/dto"
	"expense-tracker/internal/errors"
	"expense-tracker/internal/services"

	"github.com/labstack/echo/v4"
)

// AnalyticsHandler serves spending reports
type AnalyticsHandler struct {
	analytics services.AnalyticsServiceInterface
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analytics services.AnalyticsServiceInterface) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// GetAnalytics returns category totals and the daily trend for a period
// @Summary Spending analytics
// @Tags Analytics
// @Security BearerAuth
// @Produce json
// @Param period query string false "Report period" Enums(week, month, year, all) default(month)
// @Param tz query string false "IANA time zone" default(UTC)
// @Success 200 {object} models.Analytics "Report"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid parameters or VALIDATION_009 - Invalid period"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /analytics [get]
func (h *AnalyticsHandler) GetAnalytics(c echo.Context) error {
	identity, err := getIdentityFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var params dto.AnalyticsParams
	if handled, err := bindAndValidate(c, &params); handled {
		return err
	}

	loc, err := services.LoadLocation(params.TZ)
	if err != nil {
		return sendDomainError(c, err)
	}

	report, err := h.analytics.GetAnalytics(c.Request().Context(), identity, params.Period, loc)
	if err != nil {
		return sendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, report)
}
