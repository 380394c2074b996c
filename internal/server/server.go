package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"expense-tracker/internal/cache"
	"expense-tracker/internal/config"
	"expense-tracker/internal/database"
	"expense-tracker/internal/events"
	"expense-tracker/internal/handlers"
	"expense-tracker/internal/middleware"
	"expense-tracker/internal/repositories"
	"expense-tracker/internal/services"

	"github.com/labstack/echo/v4"
)

const janitorInterval = time.Minute

// Server owns the HTTP listener and the background resources behind it
type Server struct {
	cfg       *config.Config
	echo      *echo.Echo
	db        *database.DB
	publisher events.Publisher
	janitor   *cache.Janitor
	logger    *slog.Logger
}

// New wires repositories, services and handlers on top of an initialized database
func New(cfg *config.Config, db *database.DB, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	metrics := services.NewPrometheusMetrics(nil)

	reportCache, err := newReportCache(cfg.Cache)
	if err != nil {
		return nil, err
	}

	publisher := newPublisher(cfg, logger)

	expenseRepo := repositories.NewExpenseRepository(db.DB)
	settingsRepo := repositories.NewBudgetSettingsRepository(db.DB)

	tokenService := services.NewTokenService(&cfg.Auth)
	breakerConfig := services.DefaultCircuitBreakerConfig()
	breaker := services.NewCircuitBreaker(breakerConfig, metrics, logger)

	expenseService := services.NewExpenseService(expenseRepo, reportCache, publisher, metrics, logger)
	snapshots := services.NewExpenseSnapshotService(expenseService, cfg.Cache.MaxEntries, cfg.Cache.TTL, metrics, logger)
	budgetService := services.NewBudgetService(settingsRepo, cfg.Budget, logger)

	cleaners := []cache.Cleaner{}
	if memory, ok := reportCache.(*cache.MemoryReportCache); ok {
		cleaners = append(cleaners, memory)
	}
	if cleaner, ok := snapshots.(cache.Cleaner); ok {
		cleaners = append(cleaners, cleaner)
	}
	limiter := middleware.NewIPRateLimiter(cfg.Security)
	cleaners = append(cleaners, limiter)

	h := Handlers{
		Health:    handlers.NewHealthCheckHandler(db.DB),
		Expenses:  handlers.NewExpenseHandler(expenseService, snapshots, logger),
		Catalog:   handlers.NewCatalogHandler(),
		History:   handlers.NewHistoryHandler(services.NewHistoryService(snapshots, metrics, logger)),
		Analytics: handlers.NewAnalyticsHandler(services.NewAnalyticsService(expenseRepo, reportCache, breaker, metrics, logger)),
		Budget:    handlers.NewBudgetHandler(budgetService),
		Dashboard: handlers.NewDashboardHandler(services.NewDashboardService(expenseRepo, budgetService, metrics, logger)),
	}
	if cfg.IsDevelopment() {
		h.Dev = handlers.NewDevHandler(tokenService, expenseRepo, snapshots, reportCache, services.NewExpenseGenerator(0), logger)
	}

	e := NewRouter(cfg, h, tokenService, limiter, logger)
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	return &Server{
		cfg:       cfg,
		echo:      e,
		db:        db,
		publisher: publisher,
		janitor:   cache.NewJanitor(cleaners...),
		logger:    logger,
	}, nil
}

func newReportCache(cfg config.CacheConfig) (cache.ReportCache, error) {
	switch cfg.Backend {
	case config.CacheBackendMemcache:
		reportCache, err := cache.NewMemcacheReportCache(cfg.MemcacheHosts, cfg.TTL)
		if err != nil {
			return nil, fmt.Errorf("failed to create memcache report cache: %w", err)
		}
		return reportCache, nil
	default:
		return cache.NewMemoryReportCache(cfg.MaxEntries, cfg.TTL), nil
	}
}

// newPublisher falls back to the no-op publisher when the broker is not configured or unreachable
func newPublisher(cfg *config.Config, logger *slog.Logger) events.Publisher {
	if !cfg.EventsEnabled() {
		return events.NewNoopPublisher()
	}

	publisher, err := events.NewAMQPPublisher(cfg.Events.AMQPURL, cfg.Events.ExchangeName, cfg.Events.QueueName)
	if err != nil {
		logger.Warn("Expense events disabled", "error", err)
		return events.NewNoopPublisher()
	}
	return publisher
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves until the listener fails or Shutdown is called
func (s *Server) Start() error {
	s.janitor.Start(janitorInterval)

	addr := net.JoinHostPort(s.cfg.Server.Host, s.cfg.Server.Port)
	s.logger.Info("Starting server", "addr", addr, "environment", s.cfg.Server.Environment)

	if err := s.echo.Start(addr); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown drains requests, then stops background work and closes connections
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error

	if err := s.echo.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}

	s.janitor.Stop()

	if err := s.publisher.Close(); err != nil {
		errs = append(errs, fmt.Errorf("publisher close: %w", err))
	}
	if err := s.db.Close(); err != nil {
		errs = append(errs, fmt.Errorf("database close: %w", err))
	}

	return stderrors.Join(errs...)
}
