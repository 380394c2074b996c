package handlers

import (
	"net/http"

	"expense-tracker/internal/dto"
	"expense-tracker/internal/errors"
	"expense-tracker/internal/services"

	"github.com/labstack/echo/v4"
)

// DashboardHandler serves the landing view
type DashboardHandler struct {
	dashboard services.DashboardServiceInterface
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboard services.DashboardServiceInterface) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// GetDashboard returns the greeting, this month's budget status and recent expenses
// @Summary Dashboard
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Param tz query string false "IANA time zone" default(UTC)
// @Success 200 {object} models.Dashboard "Dashboard"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid time zone"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(c echo.Context) error {
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

	dashboard, err := h.dashboard.GetDashboard(c.Request().Context(), identity, loc)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dashboard)
}
