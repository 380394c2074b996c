package server

import (
	"log/slog"
	"net/http"

	"expense-tracker/internal/config"
	"expense-tracker/internal/handlers"
	"expense-tracker/internal/middleware"
	"expense-tracker/internal/services"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const maxBodySize = "1M"

// Handlers groups the HTTP handlers mounted by NewRouter. Dev is only mounted in development.
type Handlers struct {
	Health    *handlers.HealthCheckHandler
	Expenses  *handlers.ExpenseHandler
	Catalog   *handlers.CatalogHandler
	History   *handlers.HistoryHandler
	Analytics *handlers.AnalyticsHandler
	Budget    *handlers.BudgetHandler
	Dashboard *handlers.DashboardHandler
	Dev       *handlers.DevHandler
}

// NewRouter builds the echo instance with middleware and routes
func NewRouter(
	cfg *config.Config,
	h Handlers,
	tokenService services.TokenServiceInterface,
	limiter *middleware.IPRateLimiter,
	logger *slog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery(logger))
	e.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	e.Use(echomw.BodyLimit(maxBodySize))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:  cfg.Server.CORSAllowOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderAuthorization, echo.HeaderContentType, "X-Trace-ID"},
		ExposeHeaders: []string{"X-Trace-ID"},
	}))
	e.Use(limiter.Middleware())

	e.GET("/health", h.Health.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")

	if cfg.IsDevelopment() && h.Dev != nil {
		dev := api.Group("/dev")
		dev.POST("/token", h.Dev.IssueToken)
		dev.POST("/expenses/generate", h.Dev.GenerateExpenses, middleware.RequireAuth(tokenService))
	}

	protected := api.Group("", middleware.RequireAuth(tokenService))

	protected.POST("/expenses", h.Expenses.CreateExpense)
	protected.GET("/expenses", h.Expenses.ListExpenses)
	protected.GET("/expenses/:id", h.Expenses.GetExpense)
	protected.DELETE("/expenses/:id", h.Expenses.DeleteExpense)

	protected.GET("/categories", h.Catalog.ListCategories)
	protected.GET("/payment-methods", h.Catalog.ListPaymentMethods)

	protected.GET("/history/daily", h.History.GetDailyHistory)
	protected.GET("/history/monthly", h.History.GetMonthlyHistory)

	protected.GET("/analytics", h.Analytics.GetAnalytics)
	protected.GET("/dashboard", h.Dashboard.GetDashboard)

	protected.GET("/settings/budget", h.Budget.GetBudget)
	protected.PUT("/settings/budget", h.Budget.UpdateBudget)

	return e
}
