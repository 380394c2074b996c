package handlers

import (
	"encoding/base64"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"expense-tracker/internal/dto"
	"expense-tracker/internal/errors"
	"expense-tracker/internal/models"
	"expense-tracker/internal/repositories"
	"expense-tracker/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ExpenseHandler handles expense-related HTTP requests
type ExpenseHandler struct {
	expenses  services.ExpenseServiceInterface
	snapshots services.ExpenseSnapshotServiceInterface
	logger    *slog.Logger
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(
	expenses services.ExpenseServiceInterface,
	snapshots services.ExpenseSnapshotServiceInterface,
	logger *slog.Logger,
) *ExpenseHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExpenseHandler{
		expenses:  expenses,
		snapshots: snapshots,
		logger:    logger,
	}
}

// encodeCursor creates a cursor string from the last expense of a page
func encodeCursor(cursor models.ExpenseCursor) string {
	jsonData, err := json.Marshal(cursor)
	if err != nil {
		return ""
	}

	return base64.URLEncoding.EncodeToString(jsonData)
}

// decodeCursor decodes a cursor string produced by encodeCursor
func decodeCursor(cursor string) (*models.ExpenseCursor, error) {
	if cursor == "" {
		return nil, fmt.Errorf("empty cursor")
	}

	jsonData, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return nil, fmt.Errorf("invalid cursor encoding: %w", err)
	}

	var data models.ExpenseCursor
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, fmt.Errorf("invalid cursor format: %w", err)
	}
	if data.ID == uuid.Nil || data.Date.IsZero() {
		return nil, fmt.Errorf("incomplete cursor")
	}

	return &data, nil
}

// CreateExpense logs a new expense for the caller
// @Summary Create expense
// @Description Log an expense. category_id is a default category or "custom" with custom_category_name.
// @Tags Expenses
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateExpenseRequest true "Expense details"
// @Success 201 {object} dto.ExpenseResponse "Created expense"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request body or VALIDATION_007 - Invalid date"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 422 {object} errors.ErrorResponse "EXPENSE_004 - Invalid category or EXPENSE_005 - Invalid payment method or EXPENSE_006 - Invalid amount"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /expenses [post]
func (h *ExpenseHandler) CreateExpense(c echo.Context) error {
	identity, err := getIdentityFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.CreateExpenseRequest
	if handled, err := bindAndValidate(c, &req); handled {
		return err
	}

	expense, err := h.snapshots.Create(c.Request().Context(), identity, &req)
	if err != nil {
		return sendDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.NewExpenseResponse(*expense))
}

// ListExpenses returns the caller's expenses newest first with cursor pagination
// @Summary List expenses
// @Description Retrieve a page of expenses, newest first. end_date is inclusive and both dates are read in tz.
// @Tags Expenses
// @Security BearerAuth
// @Produce json
// @Param cursor query string false "Pagination cursor for next page"
// @Param limit query int false "Number of results per page (max 100)" default(20)
// @Param start_date query string false "Filter by start date (YYYY-MM-DD)"
// @Param end_date query string false "Filter by end date (YYYY-MM-DD), inclusive"
// @Param category query string false "Filter by category name"
// @Param payment_method query string false "Filter by payment method"
// @Param tz query string false "IANA time zone" default(UTC)
// @Success 200 {object} dto.ListExpensesResponse "Expenses with pagination"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid parameters or VALIDATION_008 - Invalid cursor"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /expenses [get]
func (h *ExpenseHandler) ListExpenses(c echo.Context) error {
	identity, err := getIdentityFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var params dto.ExpenseQueryParams
	if handled, err := bindAndValidate(c, &params); handled {
		return err
	}

	filters, err := parseExpenseFilters(params)
	if err != nil {
		return sendDomainError(c, err)
	}

	if params.Cursor != "" {
		after, err := decodeCursor(params.Cursor)
		if err != nil {
			return SendError(c, errors.ValidationInvalidCursor)
		}
		filters.After = after
	}

	page, err := h.expenses.ListExpenses(c.Request().Context(), identity, filters)
	if err != nil {
		return SendSystemError(c, err)
	}

	var nextCursor string
	if page.HasMore && page.Next != nil {
		nextCursor = encodeCursor(*page.Next)
	}

	response := dto.ListExpensesResponse{
		Expenses: dto.NewExpenseResponses(page.Expenses),
		Pagination: dto.PaginationInfo{
			HasMore:    page.HasMore,
			NextCursor: nextCursor,
			Limit:      page.Limit,
		},
	}

	return c.JSON(http.StatusOK, response)
}

// parseExpenseFilters turns the date range into [start of start_date, start of the day after end_date) in tz
func parseExpenseFilters(params dto.ExpenseQueryParams) (models.ExpenseFilters, error) {
	filters := models.ExpenseFilters{
		Category:      params.Category,
		PaymentMethod: params.PaymentMethod,
		Limit:         params.Limit,
	}

	loc, err := services.LoadLocation(params.TZ)
	if err != nil {
		return filters, err
	}

	if params.StartDate != "" {
		start, err := time.ParseInLocation(models.DayKeyLayout, params.StartDate, loc)
		if err != nil {
			return filters, fmt.Errorf("%w: start_date must be YYYY-MM-DD", services.ErrInvalidDate)
		}
		filters.StartDate = &start
	}

	if params.EndDate != "" {
		end, err := time.ParseInLocation(models.DayKeyLayout, params.EndDate, loc)
		if err != nil {
			return filters, fmt.Errorf("%w: end_date must be YYYY-MM-DD", services.ErrInvalidDate)
		}
		end = end.AddDate(0, 0, 1)
		filters.EndDate = &end
	}

	if filters.StartDate != nil && filters.EndDate != nil && !filters.StartDate.Before(*filters.EndDate) {
		return filters, fmt.Errorf("%w: start_date must not be after end_date", services.ErrInvalidDate)
	}

	return filters, nil
}

// GetExpense returns one of the caller's expenses
// @Summary Get expense by ID
// @Tags Expenses
// @Security BearerAuth
// @Produce json
// @Param id path string true "Expense ID (UUID)"
// @Success 200 {object} dto.ExpenseResponse "Expense details"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_003 - Invalid expense ID format"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 404 {object} errors.ErrorResponse "EXPENSE_001 - Expense not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /expenses/{id} [get]
func (h *ExpenseHandler) GetExpense(c echo.Context) error {
	identity, err := getIdentityFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid expense ID"))
	}

	expense, err := h.expenses.GetExpense(c.Request().Context(), identity, expenseID)
	if err != nil {
		return sendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewExpenseResponse(*expense))
}

// DeleteExpense removes one of the caller's expenses
// @Summary Delete expense
// @Description The expense leaves the caller's list before storage confirms. On failure the list is restored.
// @Tags Expenses
// @Security BearerAuth
// @Param id path string true "Expense ID (UUID)"
// @Success 204 "Expense deleted"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_003 - Invalid expense ID format"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 404 {object} errors.ErrorResponse "EXPENSE_001 - Expense not found"
// @Failure 502 {object} errors.ErrorResponse "EXPENSE_003 - Delete failed, expense restored"
// @Router /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c echo.Context) error {
	identity, err := getIdentityFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid expense ID"))
	}

	if err := h.snapshots.Delete(c.Request().Context(), identity, expenseID); err != nil {
		if stderrors.Is(err, repositories.ErrExpenseNotFound) {
			return SendError(c, errors.ExpenseNotFound)
		}
		h.logger.Warn("Expense delete failed",
			"trace_id", getTraceID(c),
			"expense_id", expenseID,
			"error", err,
		)
		return SendError(c, errors.ExpenseDeleteFailed)
	}

	return c.NoContent(http.StatusNoContent)
}
