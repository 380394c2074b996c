package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"expense-tracker/internal/dto"
	"expense-tracker/internal/models"
	"expense-tracker/internal/repositories"
	"expense-tracker/internal/services/service_mocks"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ExpenseSnapshotServiceSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	expenses *service_mocks.MockExpenseServiceInterface
	metrics  *service_mocks.MockMetricsRecorderInterface
	service  *expenseSnapshotService
	identity models.Identity
	ctx      context.Context
	list     []models.Expense
}

func (s *ExpenseSnapshotServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.expenses = service_mocks.NewMockExpenseServiceInterface(s.ctrl)
	s.metrics = service_mocks.NewMockMetricsRecorderInterface(s.ctrl)
	s.service = NewExpenseSnapshotService(s.expenses, 10, time.Minute, s.metrics, slog.Default()).(*expenseSnapshotService)
	s.identity = models.Identity{UserID: uuid.New(), Email: gofakeit.Email()}
	s.ctx = context.Background()

	base := time.Date(2024, 2, 2, 9, 0, 0, 0, time.UTC)
	s.list = make([]models.Expense, 3)
	for i := range s.list {
		s.list[i] = models.Expense{
			ID:            uuid.New(),
			UserID:        s.identity.UserID,
			Amount:        decimal.NewFromInt(int64(gofakeit.IntRange(10, 5000))),
			PaymentMethod: models.PaymentMethodCash,
			Date:          base.Add(-time.Duration(i) * time.Hour),
		}
	}
}

func (s *ExpenseSnapshotServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestExpenseSnapshotServiceSuite(t *testing.T) {
	suite.Run(t, new(ExpenseSnapshotServiceSuite))
}

func (s *ExpenseSnapshotServiceSuite) snapshotIDs() []uuid.UUID {
	current, ok := s.service.snapshots.Get(s.identity.UserID.String())
	s.Require().True(ok, "snapshot should be held")
	ids := make([]uuid.UUID, len(current))
	for i, expense := range current {
		ids[i] = expense.ID
	}
	return ids
}

func (s *ExpenseSnapshotServiceSuite) TestLoad_FetchesOnceAndReturnsCopies() {
	s.expenses.EXPECT().ListAllExpenses(gomock.Any(), s.identity).Return(s.list, nil).Times(1)

	first, err := s.service.Load(s.ctx, s.identity)
	s.Require().NoError(err)
	s.Len(first, 3)

	first[0].Note = "changed by caller"

	second, err := s.service.Load(s.ctx, s.identity)
	s.Require().NoError(err)
	s.Empty(second[0].Note)
}

func (s *ExpenseSnapshotServiceSuite) TestLoad_Error() {
	s.expenses.EXPECT().ListAllExpenses(gomock.Any(), s.identity).Return(nil, errors.New("db down"))

	_, err := s.service.Load(s.ctx, s.identity)
	s.Error(err)
}

func (s *ExpenseSnapshotServiceSuite) TestDelete_RemovesBeforeRemoteCall() {
	target := s.list[1].ID
	s.expenses.EXPECT().ListAllExpenses(gomock.Any(), s.identity).Return(s.list, nil).Times(1)
	s.expenses.EXPECT().DeleteExpense(gomock.Any(), s.identity, target).DoAndReturn(
		func(_ context.Context, _ models.Identity, _ uuid.UUID) error {
			s.NotContains(s.snapshotIDs(), target, "record must be gone while the remote delete runs")
			return nil
		})

	s.Require().NoError(s.service.Delete(s.ctx, s.identity, target))

	shown, err := s.service.Load(s.ctx, s.identity)
	s.Require().NoError(err)
	s.Len(shown, 2)
	s.Equal(s.list[0].ID, shown[0].ID)
	s.Equal(s.list[2].ID, shown[1].ID)
}

func (s *ExpenseSnapshotServiceSuite) TestDelete_RollsBackOnFailure() {
	target := s.list[0].ID
	remoteErr := errors.New("network unreachable")

	s.expenses.EXPECT().ListAllExpenses(gomock.Any(), s.identity).Return(s.list, nil).Times(1)
	s.expenses.EXPECT().DeleteExpense(gomock.Any(), s.identity, target).Return(remoteErr)
	s.metrics.EXPECT().IncrementCounter(MetricDeleteRollback, gomock.Any()).Times(1)

	err := s.service.Delete(s.ctx, s.identity, target)
	s.ErrorIs(err, remoteErr)

	shown, err := s.service.Load(s.ctx, s.identity)
	s.Require().NoError(err)
	s.Equal(s.list, shown, "snapshot must be restored in its original order")
}

func (s *ExpenseSnapshotServiceSuite) TestDelete_NotFoundRestoresSnapshot() {
	target := uuid.New()
	s.expenses.EXPECT().ListAllExpenses(gomock.Any(), s.identity).Return(s.list, nil)
	s.expenses.EXPECT().DeleteExpense(gomock.Any(), s.identity, target).Return(repositories.ErrExpenseNotFound)
	s.metrics.EXPECT().IncrementCounter(MetricDeleteRollback, gomock.Any())

	s.ErrorIs(s.service.Delete(s.ctx, s.identity, target), repositories.ErrExpenseNotFound)
	s.Len(s.snapshotIDs(), 3)
}

func (s *ExpenseSnapshotServiceSuite) TestDelete_LoadFailureSkipsRemote() {
	s.expenses.EXPECT().ListAllExpenses(gomock.Any(), s.identity).Return(nil, errors.New("db down"))

	s.Error(s.service.Delete(s.ctx, s.identity, s.list[0].ID))
}

func (s *ExpenseSnapshotServiceSuite) TestCreate_InvalidatesSnapshot() {
	req := &dto.CreateExpenseRequest{CategoryID: "food", Amount: "50", PaymentMethod: models.PaymentMethodUPI, Date: "2024-02-03"}
	created := models.Expense{ID: uuid.New(), UserID: s.identity.UserID, Amount: decimal.NewFromInt(50)}

	gomock.InOrder(
		s.expenses.EXPECT().ListAllExpenses(gomock.Any(), s.identity).Return(s.list, nil),
		s.expenses.EXPECT().CreateExpense(gomock.Any(), s.identity, req).Return(&created, nil),
		s.expenses.EXPECT().ListAllExpenses(gomock.Any(), s.identity).Return(append([]models.Expense{created}, s.list...), nil),
	)

	_, err := s.service.Load(s.ctx, s.identity)
	s.Require().NoError(err)

	_, err = s.service.Create(s.ctx, s.identity, req)
	s.Require().NoError(err)

	shown, err := s.service.Load(s.ctx, s.identity)
	s.Require().NoError(err)
	s.Len(shown, 4)
	s.Equal(created.ID, shown[0].ID)
}

func (s *ExpenseSnapshotServiceSuite) TestCreate_ErrorKeepsSnapshot() {
	s.expenses.EXPECT().ListAllExpenses(gomock.Any(), s.identity).Return(s.list, nil).Times(1)
	s.expenses.EXPECT().CreateExpense(gomock.Any(), s.identity, gomock.Any()).Return(nil, models.ErrNegativeAmount)

	_, err := s.service.Load(s.ctx, s.identity)
	s.Require().NoError(err)

	_, err = s.service.Create(s.ctx, s.identity, &dto.CreateExpenseRequest{})
	s.ErrorIs(err, models.ErrNegativeAmount)
	s.Len(s.snapshotIDs(), 3)
}

func (s *ExpenseSnapshotServiceSuite) TestSnapshotsAreScopedPerUser() {
	other := models.Identity{UserID: uuid.New()}
	s.expenses.EXPECT().ListAllExpenses(gomock.Any(), s.identity).Return(s.list, nil)
	s.expenses.EXPECT().ListAllExpenses(gomock.Any(), other).Return([]models.Expense{}, nil)

	mine, err := s.service.Load(s.ctx, s.identity)
	s.Require().NoError(err)
	theirs, err := s.service.Load(s.ctx, other)
	s.Require().NoError(err)

	s.Len(mine, 3)
	s.Empty(theirs)
}

// blockingExpenses holds ListAllExpenses open until release is closed
type blockingExpenses struct {
	ExpenseServiceInterface
	mu      sync.Mutex
	stored  []models.Expense
	entered chan struct{}
	release chan struct{}
	calls   int
}

func (b *blockingExpenses) ListAllExpenses(ctx context.Context, identity models.Identity) ([]models.Expense, error) {
	b.mu.Lock()
	b.calls++
	first := b.calls == 1
	fetched := clone(b.stored)
	b.mu.Unlock()

	if first {
		close(b.entered)
		<-b.release
	}
	return fetched, nil
}

func (b *blockingExpenses) CreateExpense(ctx context.Context, identity models.Identity, req *dto.CreateExpenseRequest) (*models.Expense, error) {
	created := models.Expense{ID: uuid.New(), UserID: identity.UserID, Amount: decimal.NewFromInt(50)}
	b.mu.Lock()
	b.stored = append([]models.Expense{created}, b.stored...)
	b.mu.Unlock()
	return &created, nil
}

func (s *ExpenseSnapshotServiceSuite) TestCreate_DuringLoadIsNotLost() {
	backend := &blockingExpenses{entered: make(chan struct{}), release: make(chan struct{})}
	service := NewExpenseSnapshotService(backend, 10, time.Minute, s.metrics, slog.Default())

	loaded := make(chan error, 1)
	go func() {
		_, err := service.Load(s.ctx, s.identity)
		loaded <- err
	}()
	<-backend.entered

	created := make(chan *models.Expense, 1)
	go func() {
		expense, err := service.Create(s.ctx, s.identity, &dto.CreateExpenseRequest{})
		s.NoError(err)
		created <- expense
	}()

	// give Create time to queue behind the open fetch
	time.Sleep(20 * time.Millisecond)
	close(backend.release)
	s.Require().NoError(<-loaded)
	expense := <-created
	s.Require().NotNil(expense)

	shown, err := service.Load(s.ctx, s.identity)
	s.Require().NoError(err)
	s.Require().Len(shown, 1)
	s.Equal(expense.ID, shown[0].ID)
}

func (s *ExpenseSnapshotServiceSuite) TestInvalidate_DuringLoadDropsFetchedList() {
	backend := &blockingExpenses{entered: make(chan struct{}), release: make(chan struct{})}
	service := NewExpenseSnapshotService(backend, 10, time.Minute, s.metrics, slog.Default())

	loaded := make(chan error, 1)
	go func() {
		_, err := service.Load(s.ctx, s.identity)
		loaded <- err
	}()
	<-backend.entered

	invalidated := make(chan struct{})
	go func() {
		service.Invalidate(s.identity.UserID)
		close(invalidated)
	}()

	// demo data lands in storage while the first fetch is still open
	backend.mu.Lock()
	backend.stored = append(backend.stored, s.list...)
	backend.mu.Unlock()

	time.Sleep(20 * time.Millisecond)
	close(backend.release)
	s.Require().NoError(<-loaded)
	<-invalidated

	shown, err := service.Load(s.ctx, s.identity)
	s.Require().NoError(err)
	s.Len(shown, 3)
	s.Equal(2, backend.calls)
}

func TestSnapshotUserLock_StableStripe(t *testing.T) {
	service := NewExpenseSnapshotService(nil, 1, time.Minute, nil, slog.Default()).(*expenseSnapshotService)
	userID := uuid.New()

	if service.userLock(userID) != service.userLock(userID) {
		t.Fatal("expected the same lock for the same user")
	}
}
