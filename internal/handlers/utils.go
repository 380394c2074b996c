package handlers

import (
	stderrors "errors"
	"fmt"
	"time"

	"expense-tracker/internal/errors"
	"expense-tracker/internal/models"
	"expense-tracker/internal/repositories"
	"expense-tracker/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

const (
	// UserIDContextKey holds the caller's uuid.UUID
	UserIDContextKey = "user_id"
	// IdentityContextKey holds the caller's models.Identity
	IdentityContextKey = "identity"
)

// ErrUnauthorized is returned when user context is invalid
var ErrUnauthorized = fmt.Errorf("unauthorized")

// getIdentityFromContext returns the identity set by the auth middleware
func getIdentityFromContext(c echo.Context) (models.Identity, error) {
	identity, ok := c.Get(IdentityContextKey).(models.Identity)
	if !ok || identity.IsZero() {
		return models.Identity{}, ErrUnauthorized
	}
	return identity, nil
}

// bindAndValidate binds the request into req and runs its validate tags.
// On failure the error response has already been sent and handled is true.
func bindAndValidate(c echo.Context, req interface{}) (handled bool, err error) {
	if err := c.Bind(req); err != nil {
		return true, SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		var validationErrs validator.ValidationErrors
		if stderrors.As(err, &validationErrs) {
			return true, SendError(c, errors.ValidationGeneral, errors.WithDetails(validationDetails(validationErrs)...))
		}
		return true, SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	return false, nil
}

func validationDetails(validationErrs validator.ValidationErrors) []string {
	details := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		details = append(details, fmt.Sprintf("%s: failed on '%s'", fe.Field(), fe.Tag()))
	}
	return details
}

// locationParam resolves the tz query parameter, UTC when absent
func locationParam(c echo.Context) (*time.Location, error) {
	return services.LoadLocation(c.QueryParam("tz"))
}

// sendDomainError maps service and model errors to API codes. Anything unknown is a system error.
func sendDomainError(c echo.Context, err error) error {
	switch {
	case stderrors.Is(err, repositories.ErrExpenseNotFound):
		return SendError(c, errors.ExpenseNotFound)
	case stderrors.Is(err, services.ErrInvalidTimezone):
		return SendError(c, errors.ValidationInvalidTimezone, errors.WithDetails(err.Error()))
	case stderrors.Is(err, services.ErrInvalidDate), stderrors.Is(err, models.ErrExpenseDateRequired):
		return SendError(c, errors.ValidationInvalidDate, errors.WithDetails(err.Error()))
	case stderrors.Is(err, services.ErrInvalidPeriod):
		return SendError(c, errors.ValidationInvalidPeriod)
	case stderrors.Is(err, services.ErrInvalidAmount),
		stderrors.Is(err, models.ErrNegativeAmount),
		stderrors.Is(err, models.ErrAmountPrecision):
		return SendError(c, errors.ExpenseInvalidAmount)
	case stderrors.Is(err, models.ErrUnknownCategory),
		stderrors.Is(err, models.ErrCustomCategoryName),
		stderrors.Is(err, models.ErrCategoryNameRequired),
		stderrors.Is(err, models.ErrCategoryNameTooLong),
		stderrors.Is(err, models.ErrInvalidCategoryIcon):
		return SendError(c, errors.ExpenseInvalidCategory, errors.WithDetails(err.Error()))
	case stderrors.Is(err, models.ErrInvalidPaymentMethod),
		stderrors.Is(err, models.ErrCustomPaymentMethodText),
		stderrors.Is(err, models.ErrPaymentMethodRequired),
		stderrors.Is(err, models.ErrPaymentMethodTooLong):
		return SendError(c, errors.ExpenseInvalidPaymentMethod, errors.WithDetails(err.Error()))
	case stderrors.Is(err, models.ErrNoteTooLong), stderrors.Is(err, models.ErrExpenseUserRequired):
		return SendError(c, errors.ExpenseInvalid, errors.WithDetails(err.Error()))
	case stderrors.Is(err, models.ErrNegativeBudget):
		return SendError(c, errors.BudgetInvalidLimit)
	case stderrors.Is(err, models.ErrInvalidCurrency):
		return SendError(c, errors.BudgetInvalidCurrency)
	default:
		return SendSystemError(c, err)
	}
}
