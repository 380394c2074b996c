package services

import (
	"context"
	"hash/fnv"
	"log/slog"
	"sync"
	"time"

	"expense-tracker/internal/cache"
	"expense-tracker/internal/dto"
	"expense-tracker/internal/models"

	"github.com/google/uuid"
)

const (
	DefaultSnapshotTTL   = 5 * time.Minute
	DefaultSnapshotUsers = 1000

	snapshotLockStripes = 64
)

// expenseSnapshotService keeps the expense list each user is being shown. Deletes are applied
// to the snapshot first and compensated when storage rejects them.
type expenseSnapshotService struct {
	expenses  ExpenseServiceInterface
	snapshots *cache.LRUCache[[]models.Expense]
	metrics   MetricsRecorderInterface
	logger    *slog.Logger

	// a user's reads, writes and invalidations are serialized on one stripe
	locks [snapshotLockStripes]sync.Mutex
}

// NewExpenseSnapshotService creates a snapshot service holding up to maxUsers lists for ttl
func NewExpenseSnapshotService(
	expenses ExpenseServiceInterface,
	maxUsers int,
	ttl time.Duration,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) ExpenseSnapshotServiceInterface {
	if maxUsers <= 0 {
		maxUsers = DefaultSnapshotUsers
	}
	if ttl <= 0 {
		ttl = DefaultSnapshotTTL
	}
	return &expenseSnapshotService{
		expenses:  expenses,
		snapshots: cache.NewLRUCache[[]models.Expense](maxUsers, ttl),
		metrics:   metrics,
		logger:    logger,
	}
}

func (s *expenseSnapshotService) userLock(userID uuid.UUID) *sync.Mutex {
	h := fnv.New32a()
	h.Write(userID[:])
	return &s.locks[h.Sum32()%snapshotLockStripes]
}

// Load returns the user's list, newest first, fetching it when no snapshot is held
func (s *expenseSnapshotService) Load(ctx context.Context, identity models.Identity) ([]models.Expense, error) {
	lock := s.userLock(identity.UserID)
	lock.Lock()
	defer lock.Unlock()

	current, err := s.load(ctx, identity)
	if err != nil {
		return nil, err
	}
	return clone(current), nil
}

// load must be called with the user's lock held
func (s *expenseSnapshotService) load(ctx context.Context, identity models.Identity) ([]models.Expense, error) {
	key := identity.UserID.String()
	if current, ok := s.snapshots.Get(key); ok {
		return current, nil
	}

	fetched, err := s.expenses.ListAllExpenses(ctx, identity)
	if err != nil {
		return nil, err
	}
	s.snapshots.Set(key, fetched)
	return fetched, nil
}

// Create stores a new expense and drops the snapshot so the next Load sees it in order.
// A Load in flight finishes before the write starts.
func (s *expenseSnapshotService) Create(ctx context.Context, identity models.Identity, req *dto.CreateExpenseRequest) (*models.Expense, error) {
	lock := s.userLock(identity.UserID)
	lock.Lock()
	defer lock.Unlock()

	expense, err := s.expenses.CreateExpense(ctx, identity, req)
	if err != nil {
		return nil, err
	}
	s.snapshots.Delete(identity.UserID.String())
	return expense, nil
}

// Delete removes the expense from the snapshot, then from storage. When storage fails the
// snapshot is put back as it was and the error is returned.
func (s *expenseSnapshotService) Delete(ctx context.Context, identity models.Identity, id uuid.UUID) error {
	lock := s.userLock(identity.UserID)
	lock.Lock()
	defer lock.Unlock()

	key := identity.UserID.String()

	previous, err := s.load(ctx, identity)
	if err != nil {
		return err
	}

	s.snapshots.Set(key, without(previous, id))

	if err := s.expenses.DeleteExpense(ctx, identity, id); err != nil {
		s.snapshots.Set(key, previous)
		s.logger.Warn("rolled back optimistic delete",
			"expense_id", id,
			"user_id", identity.UserID,
			"error", err)
		if s.metrics != nil {
			s.metrics.IncrementCounter(MetricDeleteRollback, nil)
		}
		return err
	}

	return nil
}

// Invalidate drops the user's snapshot, waiting for a Load in flight so it cannot reinstall stale data
func (s *expenseSnapshotService) Invalidate(userID uuid.UUID) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	s.snapshots.Delete(userID.String())
}

// CleanExpired drops expired snapshots. It lets the cache janitor sweep this service.
func (s *expenseSnapshotService) CleanExpired() int {
	return s.snapshots.CleanExpired()
}

func without(expenses []models.Expense, id uuid.UUID) []models.Expense {
	remaining := make([]models.Expense, 0, len(expenses))
	for _, expense := range expenses {
		if expense.ID != id {
			remaining = append(remaining, expense)
		}
	}
	return remaining
}

func clone(expenses []models.Expense) []models.Expense {
	copied := make([]models.Expense, len(expenses))
	copy(copied, expenses)
	return copied
}
