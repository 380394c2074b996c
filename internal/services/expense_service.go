package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"expense-tracker/internal/cache"
	"expense-tracker/internal/dto"
	"expense-tracker/internal/events"
	"expense-tracker/internal/models"
	"expense-tracker/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100

	expenseTimeLayout = "15:04"
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidDate     = errors.New("invalid expense date")
	ErrInvalidTimezone = errors.New("invalid time zone")
	ErrNilRequest      = errors.New("request cannot be nil")
)

type expenseService struct {
	expenseRepo repositories.ExpenseRepositoryInterface
	reportCache cache.ReportCache
	publisher   events.Publisher
	metrics     MetricsRecorderInterface
	logger      *slog.Logger
	now         func() time.Time
}

// NewExpenseService creates a new expense service
func NewExpenseService(
	expenseRepo repositories.ExpenseRepositoryInterface,
	reportCache cache.ReportCache,
	publisher events.Publisher,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) ExpenseServiceInterface {
	if publisher == nil {
		publisher = events.NewNoopPublisher()
	}
	return &expenseService{
		expenseRepo: expenseRepo,
		reportCache: reportCache,
		publisher:   publisher,
		metrics:     metrics,
		logger:      logger,
		now:         time.Now,
	}
}

// CreateExpense resolves the form input into a record and stores it
func (s *expenseService) CreateExpense(ctx context.Context, identity models.Identity, req *dto.CreateExpenseRequest) (*models.Expense, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	expense, err := s.buildExpense(identity, req)
	if err != nil {
		return nil, err
	}

	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		s.logger.Error("failed to create expense", "user_id", identity.UserID, "error", err)
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	s.logger.Info("expense created",
		"expense_id", expense.ID,
		"user_id", identity.UserID,
		"category", expense.Category.Name,
		"amount", expense.Amount.String())

	s.incr(MetricExpenseCreated, map[string]string{"category": expense.Category.Name})
	if s.metrics != nil {
		s.metrics.RecordGauge(MetricExpenseAmount, expense.Amount.InexactFloat64(), nil)
	}

	s.invalidateReports(identity.UserID)
	if err := s.publisher.PublishExpenseCreated(ctx, expense); err != nil {
		s.logger.Warn("failed to publish expense event", "type", events.TypeExpenseCreated, "expense_id", expense.ID, "error", err)
		s.incr(MetricEventPublishFailed, map[string]string{"type": events.TypeExpenseCreated})
	}

	return expense, nil
}

func (s *expenseService) buildExpense(identity models.Identity, req *dto.CreateExpenseRequest) (*models.Expense, error) {
	if identity.IsZero() {
		return nil, models.ErrExpenseUserRequired
	}

	category, err := ResolveCategory(req.CategoryID, req.CustomCategoryName, req.CustomIcon, req.CustomColor)
	if err != nil {
		return nil, err
	}

	paymentMethod, err := models.ResolvePaymentMethod(req.PaymentMethod, req.CustomPaymentMethod)
	if err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, req.Amount)
	}

	loc, err := LoadLocation(req.TZ)
	if err != nil {
		return nil, err
	}

	date, err := ParseExpenseDate(req.Date, req.Time, loc, s.now())
	if err != nil {
		return nil, err
	}

	expense := &models.Expense{
		UserID:        identity.UserID,
		Amount:        amount,
		Category:      category,
		PaymentMethod: paymentMethod,
		Note:          strings.TrimSpace(req.Note),
		Date:          date,
	}
	if err := expense.Validate(); err != nil {
		return nil, err
	}

	return expense, nil
}

// GetExpense returns one of the caller's expenses
func (s *expenseService) GetExpense(ctx context.Context, identity models.Identity, id uuid.UUID) (*models.Expense, error) {
	expense, err := s.expenseRepo.GetByIDForUser(ctx, identity.UserID, id)
	if err != nil {
		if errors.Is(err, repositories.ErrExpenseNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return expense, nil
}

// ListExpenses returns one page of the caller's expenses, newest first
func (s *expenseService) ListExpenses(ctx context.Context, identity models.Identity, filters models.ExpenseFilters) (*dto.ExpensePage, error) {
	limit := filters.Limit
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}

	filters.UserID = identity.UserID
	// one extra row tells whether another page exists
	filters.Limit = limit + 1

	expenses, err := s.expenseRepo.ListByUser(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	page := &dto.ExpensePage{Limit: limit}
	if len(expenses) > limit {
		expenses = expenses[:limit]
		last := expenses[len(expenses)-1]
		page.HasMore = true
		page.Next = &models.ExpenseCursor{Date: last.Date, CreatedAt: last.CreatedAt, ID: last.ID}
	}
	page.Expenses = expenses

	return page, nil
}

// ListAllExpenses returns every expense of the caller, newest first
func (s *expenseService) ListAllExpenses(ctx context.Context, identity models.Identity) ([]models.Expense, error) {
	expenses, err := s.expenseRepo.ListByUser(ctx, models.ExpenseFilters{UserID: identity.UserID})
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	if expenses == nil {
		expenses = []models.Expense{}
	}
	return expenses, nil
}

// DeleteExpense removes one of the caller's expenses from storage
func (s *expenseService) DeleteExpense(ctx context.Context, identity models.Identity, id uuid.UUID) error {
	if err := s.expenseRepo.Delete(ctx, identity.UserID, id); err != nil {
		s.incr(MetricExpenseDeleted, map[string]string{"status": "failed"})
		if errors.Is(err, repositories.ErrExpenseNotFound) {
			return err
		}
		s.logger.Error("failed to delete expense", "expense_id", id, "user_id", identity.UserID, "error", err)
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	s.logger.Info("expense deleted", "expense_id", id, "user_id", identity.UserID)
	s.incr(MetricExpenseDeleted, map[string]string{"status": "success"})

	s.invalidateReports(identity.UserID)
	if err := s.publisher.PublishExpenseDeleted(ctx, identity.UserID, id); err != nil {
		s.logger.Warn("failed to publish expense event", "type", events.TypeExpenseDeleted, "expense_id", id, "error", err)
		s.incr(MetricEventPublishFailed, map[string]string{"type": events.TypeExpenseDeleted})
	}

	return nil
}

func (s *expenseService) invalidateReports(userID uuid.UUID) {
	if s.reportCache == nil {
		return
	}
	if err := s.reportCache.InvalidateUser(userID); err != nil {
		s.logger.Warn("failed to invalidate cached reports", "user_id", userID, "error", err)
		s.incr(MetricReportCacheError, nil)
	}
}

func (s *expenseService) incr(name string, tags map[string]string) {
	if s.metrics != nil {
		s.metrics.IncrementCounter(name, tags)
	}
}

// ResolveCategory turns a category id from the form into the category stored on the record.
// The id "custom" builds a user category from name, icon and color.
func ResolveCategory(categoryID, customName, customIcon, customColor string) (models.ExpenseCategory, error) {
	categoryID = strings.TrimSpace(categoryID)
	if categoryID == models.CustomCategoryID {
		return models.NewCustomCategory(customName, customIcon, customColor)
	}

	category, ok := models.DefaultCategoryByID(categoryID)
	if !ok {
		return models.ExpenseCategory{}, fmt.Errorf("%w: %q", models.ErrUnknownCategory, categoryID)
	}
	return category, nil
}

// LoadLocation resolves an IANA zone name. An empty name is UTC.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, name)
	}
	return loc, nil
}

// ParseExpenseDate reads the form's date. An RFC 3339 value is taken as is. A YYYY-MM-DD value
// is combined with clock (HH:MM) in loc, or with the time of day of now when clock is empty.
func ParseExpenseDate(date, clock string, loc *time.Location, now time.Time) (time.Time, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return time.Time{}, models.ErrExpenseDateRequired
	}
	if loc == nil {
		loc = time.UTC
	}

	if t, err := time.Parse(time.RFC3339, date); err == nil {
		return t, nil
	}

	day, err := time.ParseInLocation(models.DayKeyLayout, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	var hour, minute, sec int
	if clock = strings.TrimSpace(clock); clock != "" {
		t, err := time.Parse(expenseTimeLayout, clock)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: time %q", ErrInvalidDate, clock)
		}
		hour, minute = t.Hour(), t.Minute()
	} else {
		local := now.In(loc)
		hour, minute, sec = local.Hour(), local.Minute(), local.Second()
	}

	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, sec, 0, loc), nil
}
