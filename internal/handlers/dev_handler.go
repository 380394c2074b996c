package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"expense-tracker/internal/cache"
	"expense-tracker/internal/dto"
	"expense-tracker/internal/errors"
	"expense-tracker/internal/models"
	"expense-tracker/internal/repositories"
	"expense-tracker/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const defaultGenerateDays = 90

// DevHandler handles development-only endpoints
// These endpoints should only be available in development environments
type DevHandler struct {
	tokens      services.TokenServiceInterface
	expenseRepo repositories.ExpenseRepositoryInterface
	snapshots   services.ExpenseSnapshotServiceInterface
	reports     cache.ReportCache
	generator   services.ExpenseGeneratorInterface
	logger      *slog.Logger
	now         func() time.Time
}

// NewDevHandler creates a new development handler
func NewDevHandler(
	tokens services.TokenServiceInterface,
	expenseRepo repositories.ExpenseRepositoryInterface,
	snapshots services.ExpenseSnapshotServiceInterface,
	reports cache.ReportCache,
	generator services.ExpenseGeneratorInterface,
	logger *slog.Logger,
) *DevHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DevHandler{
		tokens:      tokens,
		expenseRepo: expenseRepo,
		snapshots:   snapshots,
		reports:     reports,
		generator:   generator,
		logger:      logger,
		now:         time.Now,
	}
}

// IssueToken issues an access token for any user ID
//
// Method: POST /api/v1/dev/token
// Authentication: None
// Environment: Development only
//
// Success Response: 200 OK with dto.TokenResponse
//
// Error Responses:
//   - 400: Invalid user ID or email
//   - 500: Internal server error
func (h *DevHandler) IssueToken(c echo.Context) error {
	var req dto.DevTokenRequest
	if handled, err := bindAndValidate(c, &req); handled {
		return err
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid user ID"))
	}

	token, expiresAt, err := h.tokens.GenerateAccessToken(models.Identity{UserID: userID, Email: req.Email})
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	})
}

// GenerateExpenses stores demo expenses for the caller
//
// Method: POST /api/v1/dev/expenses/generate
// Authentication: Required
// Environment: Development only
//
// Body:
//   - count: Number of expenses to generate (1 to 500)
//   - days: Days of history ending now (default: 90, max: 730)
//
// Success Response: 201 Created with dto.GenerateExpensesResponse
//
// Error Responses:
//   - 400: Invalid parameters
//   - 401: Unauthorized
//   - 500: Internal server error
func (h *DevHandler) GenerateExpenses(c echo.Context) error {
	identity, err := getIdentityFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.GenerateExpensesRequest
	if handled, err := bindAndValidate(c, &req); handled {
		return err
	}

	days := req.Days
	if days == 0 {
		days = defaultGenerateDays
	}

	endDate := h.now().UTC()
	startDate := endDate.AddDate(0, 0, -days)
	expenses := h.generator.GenerateExpenses(identity.UserID, req.Count, startDate, endDate)

	ctx := c.Request().Context()
	created := 0
	var lastErr error
	for i := range expenses {
		if err := h.expenseRepo.Create(ctx, &expenses[i]); err != nil {
			h.logger.Warn("Skipping generated expense", "user_id", identity.UserID, "error", err)
			lastErr = err
			continue
		}
		created++
	}

	if created > 0 {
		h.snapshots.Invalidate(identity.UserID)
		if h.reports != nil {
			if err := h.reports.InvalidateUser(identity.UserID); err != nil {
				h.logger.Warn("Failed to invalidate cached reports", "user_id", identity.UserID, "error", err)
			}
		}
	}
	if created == 0 && lastErr != nil {
		return SendDatabaseError(c, lastErr)
	}

	response := dto.GenerateExpensesResponse{Created: created}
	if total, err := h.expenseRepo.CountByUser(ctx, identity.UserID); err != nil {
		h.logger.Warn("Failed to count expenses", "user_id", identity.UserID, "error", err)
	} else {
		response.Total = &total
	}

	return c.JSON(http.StatusCreated, response)
}
