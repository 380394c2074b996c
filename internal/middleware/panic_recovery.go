package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"

	"expense-tracker/internal/errors"

	"github.com/labstack/echo/v4"
)

// PanicRecovery recovers from handler panics, logs the stack and answers SYSTEM_001.
// http.ErrAbortHandler is re-raised so the server can drop the connection.
func PanicRecovery(logger *slog.Logger) echo.MiddlewareFunc {
	if logger == nil {
		logger = slog.Default()
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if r == http.ErrAbortHandler {
					panic(r)
				}

				traceID := GetTraceID(c)
				if traceID == "" {
					traceID = "unknown"
				}

				logger.Error("Panic recovered",
					"trace_id", traceID,
					"panic", fmt.Sprintf("%v", r),
					"stack_trace", string(debug.Stack()),
					"path", c.Request().URL.Path,
					"method", c.Request().Method,
				)

				errorResponse := errors.NewErrorResponse(errors.SystemInternalError, traceID)
				apiErrorsTotal.WithLabelValues(
					errorResponse.Error.Code,
					c.Path(),
					strconv.Itoa(http.StatusInternalServerError),
				).Inc()

				if c.Response().Committed {
					return
				}
				if err := c.JSON(http.StatusInternalServerError, errorResponse); err != nil {
					logger.Error("Failed to send panic recovery response",
						"trace_id", traceID,
						"error", err.Error(),
					)
				}
			}()

			return next(c)
		}
	}
}
