package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Authentication error codes (AUTH_*)
const (
	AuthInvalidToken           ErrorCode = "AUTH_001"
	AuthMissingToken           ErrorCode = "AUTH_002"
	AuthExpiredToken           ErrorCode = "AUTH_003"
	AuthInvalidTokenFormat     ErrorCode = "AUTH_004"
	AuthInsufficientPermission ErrorCode = "AUTH_005"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral         ErrorCode = "VALIDATION_001"
	ValidationRequiredField   ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat   ErrorCode = "VALIDATION_003"
	ValidationOutOfRange      ErrorCode = "VALIDATION_004"
	ValidationInvalidEmail    ErrorCode = "VALIDATION_005"
	ValidationInvalidTimezone ErrorCode = "VALIDATION_006"
	ValidationInvalidDate     ErrorCode = "VALIDATION_007"
	ValidationInvalidCursor   ErrorCode = "VALIDATION_008"
	ValidationInvalidPeriod   ErrorCode = "VALIDATION_009"
)

// Expense error codes (EXPENSE_*)
const (
	ExpenseNotFound             ErrorCode = "EXPENSE_001"
	ExpenseInvalid              ErrorCode = "EXPENSE_002"
	ExpenseDeleteFailed         ErrorCode = "EXPENSE_003"
	ExpenseInvalidCategory      ErrorCode = "EXPENSE_004"
	ExpenseInvalidPaymentMethod ErrorCode = "EXPENSE_005"
	ExpenseInvalidAmount        ErrorCode = "EXPENSE_006"
)

// Budget error codes (BUDGET_*)
const (
	BudgetInvalidLimit    ErrorCode = "BUDGET_001"
	BudgetInvalidCurrency ErrorCode = "BUDGET_002"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemConfigurationError ErrorCode = "SYSTEM_004"
	SystemUnexpectedError    ErrorCode = "SYSTEM_005"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_006"
	SystemRouteNotFound      ErrorCode = "SYSTEM_007"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Authentication errors
	AuthInvalidToken:           "Invalid authorization token",
	AuthMissingToken:           "Authorization token is required",
	AuthExpiredToken:           "Authorization token has expired",
	AuthInvalidTokenFormat:     "Invalid authorization token format",
	AuthInsufficientPermission: "Insufficient permissions to access this resource",

	// Validation errors
	ValidationGeneral:         "Validation failed",
	ValidationRequiredField:   "Required field is missing",
	ValidationInvalidFormat:   "Invalid field format",
	ValidationOutOfRange:      "Field value is out of allowed range",
	ValidationInvalidEmail:    "Invalid email address format",
	ValidationInvalidTimezone: "Unknown time zone",
	ValidationInvalidDate:     "Invalid date format or range",
	ValidationInvalidCursor:   "Invalid pagination cursor",
	ValidationInvalidPeriod:   "Period must be one of week, month, year or all",

	// Expense errors
	ExpenseNotFound:             "Expense not found",
	ExpenseInvalid:              "Expense validation failed",
	ExpenseDeleteFailed:         "Expense could not be deleted",
	ExpenseInvalidCategory:      "Invalid expense category",
	ExpenseInvalidPaymentMethod: "Invalid payment method",
	ExpenseInvalidAmount:        "Amount must be a non-negative number with at most two decimal places",

	// Budget errors
	BudgetInvalidLimit:    "Monthly limit must not be negative",
	BudgetInvalidCurrency: "Currency must be a 3-letter ISO 4217 code",

	// System errors
	SystemInternalError:      "An unexpected error occurred. Please contact support with trace ID",
	SystemDatabaseError:      "Database connection error",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemConfigurationError: "System configuration error",
	SystemUnexpectedError:    "An unexpected error occurred",
	SystemRateLimitExceeded:  "Rate limit exceeded. Please try again later",
	SystemRouteNotFound:      "Resource not found",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
