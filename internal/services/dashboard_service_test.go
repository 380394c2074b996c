package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"expense-tracker/internal/models"
	"expense-tracker/internal/repositories/repository_mocks"
	"expense-tracker/internal/services/service_mocks"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type DashboardServiceSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	expenseRepo *repository_mocks.MockExpenseRepositoryInterface
	budget      *service_mocks.MockBudgetServiceInterface
	service     *dashboardService
	identity    models.Identity
	ctx         context.Context
}

func (s *DashboardServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.expenseRepo = repository_mocks.NewMockExpenseRepositoryInterface(s.ctrl)
	s.budget = service_mocks.NewMockBudgetServiceInterface(s.ctrl)
	metrics := service_mocks.NewMockMetricsRecorderInterface(s.ctrl)
	allowMetrics(metrics)

	s.service = NewDashboardService(s.expenseRepo, s.budget, metrics, slog.Default()).(*dashboardService)
	s.service.now = func() time.Time { return time.Date(2024, 2, 20, 12, 0, 0, 0, time.UTC) }
	s.identity = models.Identity{UserID: uuid.New(), Email: "priya@example.com"}
	s.ctx = context.Background()
}

func (s *DashboardServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestDashboardServiceSuite(t *testing.T) {
	suite.Run(t, new(DashboardServiceSuite))
}

func (s *DashboardServiceSuite) TestGetDashboard() {
	food, _ := models.DefaultCategoryByID("food")
	month := []models.Expense{
		{ID: uuid.New(), Amount: decimal.NewFromInt(4000), Category: food, Date: time.Date(2024, 2, 3, 9, 0, 0, 0, time.UTC)},
		{ID: uuid.New(), Amount: decimal.NewFromInt(2000), Category: food, Date: time.Date(2024, 2, 10, 9, 0, 0, 0, time.UTC)},
	}
	recent := []models.Expense{
		{ID: uuid.New(), Amount: decimal.NewFromInt(2000), Category: food, PaymentMethod: models.PaymentMethodUPI, Date: time.Date(2024, 2, 10, 9, 0, 0, 0, time.UTC)},
		{ID: uuid.New(), Amount: decimal.NewFromInt(4000), Category: food, Note: gofakeit.Company(), Date: time.Date(2024, 2, 3, 9, 0, 0, 0, time.UTC)},
	}

	s.budget.EXPECT().GetSettings(gomock.Any(), s.identity).Return(&models.BudgetSettings{
		UserID:       s.identity.UserID,
		MonthlyLimit: decimal.NewFromInt(10000),
		Currency:     "INR",
	}, nil)
	s.expenseRepo.EXPECT().ListByDateRange(gomock.Any(), s.identity.UserID,
		time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	).Return(month, nil)
	s.expenseRepo.EXPECT().ListByUser(gomock.Any(), models.ExpenseFilters{
		UserID: s.identity.UserID,
		Limit:  RecentExpensesLimit,
	}).Return(recent, nil)

	dashboard, err := s.service.GetDashboard(s.ctx, s.identity, time.UTC)
	s.Require().NoError(err)

	s.Equal("Hello, priya", dashboard.Greeting)
	s.Equal("February 2024", dashboard.Budget.Month)
	s.True(dashboard.Budget.Spent.Equal(decimal.NewFromInt(6000)))
	s.True(dashboard.Budget.Remaining.Equal(decimal.NewFromInt(4000)))
	s.True(dashboard.Budget.Percentage.Equal(decimal.NewFromInt(60)))
	s.False(dashboard.Budget.IsOverBudget)

	s.Require().Len(dashboard.Recent, 2)
	s.Equal(recent[0].ID, dashboard.Recent[0].ID)
	s.Equal("Food", dashboard.Recent[0].Title)
	s.Equal(models.PaymentMethodUPI, dashboard.Recent[0].Subtitle)
	s.Equal(recent[1].Note, dashboard.Recent[1].Subtitle)
}

func (s *DashboardServiceSuite) TestGetDashboard_AnonymousGreeting() {
	anonymous := models.Identity{UserID: uuid.New()}
	s.budget.EXPECT().GetSettings(gomock.Any(), anonymous).Return(&models.BudgetSettings{Currency: "INR"}, nil)
	s.expenseRepo.EXPECT().ListByDateRange(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	s.expenseRepo.EXPECT().ListByUser(gomock.Any(), gomock.Any()).Return(nil, nil)

	dashboard, err := s.service.GetDashboard(s.ctx, anonymous, nil)
	s.Require().NoError(err)
	s.Equal("Hello, there", dashboard.Greeting)
	s.NotNil(dashboard.Recent)
	s.Empty(dashboard.Recent)
	s.True(dashboard.Budget.Percentage.IsZero())
}

func (s *DashboardServiceSuite) TestGetDashboard_AnyLoadFailureFails() {
	s.budget.EXPECT().GetSettings(gomock.Any(), s.identity).Return(&models.BudgetSettings{Currency: "INR"}, nil).AnyTimes()
	s.expenseRepo.EXPECT().ListByDateRange(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db down")).AnyTimes()
	s.expenseRepo.EXPECT().ListByUser(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	_, err := s.service.GetDashboard(s.ctx, s.identity, time.UTC)
	s.Error(err)
	s.Contains(err.Error(), "failed to get dashboard")
}
