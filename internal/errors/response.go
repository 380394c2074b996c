package errors

import (
	"net/http"
)

// ErrorResponse is the body of every failed API call: {"error": {...}}
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
	TraceID string   `json:"trace_id"`
}

// ErrorOption adjusts a response built by NewErrorResponse
type ErrorOption func(*ErrorResponse)

// WithDetails replaces the detail lines
func WithDetails(details ...string) ErrorOption {
	return func(er *ErrorResponse) {
		er.Error.Details = details
	}
}

// WithMessage overrides the default message of the code
func WithMessage(message string) ErrorOption {
	return func(er *ErrorResponse) {
		er.Error.Message = message
	}
}

// NewErrorResponse builds the envelope for code with its default message
func NewErrorResponse(code ErrorCode, traceID string, opts ...ErrorOption) *ErrorResponse {
	response := &ErrorResponse{
		Error: ErrorDetail{
			Code:    string(code),
			Message: GetErrorMessage(code),
			TraceID: traceID,
			Details: []string{},
		},
	}
	for _, opt := range opts {
		opt(response)
	}
	return response
}

// NewValidationErrorFromList builds a VALIDATION_001 response carrying one line per failed field
func NewValidationErrorFromList(details []string, traceID string) *ErrorResponse {
	return NewErrorResponse(ValidationGeneral, traceID, WithDetails(details...))
}

// WrapSystemError hides err behind a generic SYSTEM_001 response.
// err is handed back unchanged for server-side logging.
func WrapSystemError(err error, traceID string) (*ErrorResponse, error) {
	return NewErrorResponse(SystemInternalError, traceID), err
}

// WrapDatabaseError is WrapSystemError for storage failures (SYSTEM_002)
func WrapDatabaseError(err error, traceID string) (*ErrorResponse, error) {
	return NewErrorResponse(SystemDatabaseError, traceID), err
}

var httpStatuses = map[ErrorCode]int{
	ValidationGeneral:         http.StatusBadRequest,
	ValidationRequiredField:   http.StatusBadRequest,
	ValidationInvalidFormat:   http.StatusBadRequest,
	ValidationOutOfRange:      http.StatusBadRequest,
	ValidationInvalidEmail:    http.StatusBadRequest,
	ValidationInvalidTimezone: http.StatusBadRequest,
	ValidationInvalidDate:     http.StatusBadRequest,
	ValidationInvalidCursor:   http.StatusBadRequest,
	ValidationInvalidPeriod:   http.StatusBadRequest,

	AuthInvalidToken:           http.StatusUnauthorized,
	AuthMissingToken:           http.StatusUnauthorized,
	AuthExpiredToken:           http.StatusUnauthorized,
	AuthInvalidTokenFormat:     http.StatusUnauthorized,
	AuthInsufficientPermission: http.StatusForbidden,

	ExpenseNotFound:     http.StatusNotFound,
	SystemRouteNotFound: http.StatusNotFound,

	ExpenseInvalid:              http.StatusUnprocessableEntity,
	ExpenseInvalidCategory:      http.StatusUnprocessableEntity,
	ExpenseInvalidPaymentMethod: http.StatusUnprocessableEntity,
	ExpenseInvalidAmount:        http.StatusUnprocessableEntity,
	BudgetInvalidLimit:          http.StatusUnprocessableEntity,
	BudgetInvalidCurrency:       http.StatusUnprocessableEntity,

	SystemRateLimitExceeded: http.StatusTooManyRequests,
	// the store rejected a delete that was already applied to the snapshot
	ExpenseDeleteFailed:      http.StatusBadGateway,
	SystemServiceUnavailable: http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the status for code. Unlisted codes, the SYSTEM_00x
// internal errors among them, are 500.
func GetHTTPStatus(code ErrorCode) int {
	if status, ok := httpStatuses[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// GetHTTPStatus returns the status of the response's code
func (er *ErrorResponse) GetHTTPStatus() int {
	return GetHTTPStatus(ErrorCode(er.Error.Code))
}
