package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"expense-tracker/internal/dto"
	"expense-tracker/internal/models"
	"expense-tracker/internal/services/service_mocks"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type BudgetHandlerTestSuite struct {
	suite.Suite
	echo        *echo.Echo
	ctrl        *gomock.Controller
	mockBudgets *service_mocks.MockBudgetServiceInterface
	handler     *BudgetHandler
	identity    models.Identity
}

func TestBudgetHandlerSuite(t *testing.T) {
	suite.Run(t, new(BudgetHandlerTestSuite))
}

func (s *BudgetHandlerTestSuite) SetupTest() {
	s.echo = newTestEcho()
	s.ctrl = gomock.NewController(s.T())
	s.mockBudgets = service_mocks.NewMockBudgetServiceInterface(s.ctrl)
	s.handler = NewBudgetHandler(s.mockBudgets)
	s.identity = models.Identity{UserID: uuid.New(), Email: gofakeit.Email()}
}

func (s *BudgetHandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *BudgetHandlerTestSuite) decode(body []byte) dto.BudgetSettingsResponse {
	var response dto.BudgetSettingsResponse
	s.Require().NoError(json.Unmarshal(body, &response))
	return response
}

func (s *BudgetHandlerTestSuite) TestGetBudget_Defaults() {
	s.mockBudgets.EXPECT().GetSettings(gomock.Any(), s.identity).Return(&models.BudgetSettings{
		UserID:       s.identity.UserID,
		MonthlyLimit: decimal.NewFromInt(25000),
		Currency:     "INR",
	}, nil)

	c, rec := authedContext(s.echo, s.identity, http.MethodGet, "/api/v1/settings/budget", "")
	s.NoError(s.handler.GetBudget(c))

	s.Equal(http.StatusOK, rec.Code)
	response := s.decode(rec.Body.Bytes())
	s.True(response.IsDefault)
	s.Nil(response.UpdatedAt)
	s.True(response.MonthlyLimit.Equal(decimal.NewFromInt(25000)))
}

func (s *BudgetHandlerTestSuite) TestGetBudget_Stored() {
	updatedAt := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)
	s.mockBudgets.EXPECT().GetSettings(gomock.Any(), s.identity).Return(&models.BudgetSettings{
		ID:           uuid.New(),
		UserID:       s.identity.UserID,
		MonthlyLimit: decimal.NewFromInt(40000),
		Currency:     "USD",
		UpdatedAt:    updatedAt,
	}, nil)

	c, rec := authedContext(s.echo, s.identity, http.MethodGet, "/api/v1/settings/budget", "")
	s.NoError(s.handler.GetBudget(c))

	response := s.decode(rec.Body.Bytes())
	s.False(response.IsDefault)
	s.Equal("USD", response.Currency)
	s.Require().NotNil(response.UpdatedAt)
	s.True(response.UpdatedAt.Equal(updatedAt))
}

func (s *BudgetHandlerTestSuite) TestGetBudget_Error() {
	s.mockBudgets.EXPECT().GetSettings(gomock.Any(), s.identity).Return(nil, errors.New("db down"))

	c, rec := authedContext(s.echo, s.identity, http.MethodGet, "/api/v1/settings/budget", "")
	s.NoError(s.handler.GetBudget(c))
	s.Equal(http.StatusInternalServerError, rec.Code)
}

func (s *BudgetHandlerTestSuite) TestUpdateBudget_Success() {
	s.mockBudgets.EXPECT().
		UpdateSettings(gomock.Any(), s.identity, gomock.Any(), "eur").
		DoAndReturn(func(_ context.Context, identity models.Identity, limit decimal.Decimal, currency string) (*models.BudgetSettings, error) {
			s.True(limit.Equal(decimal.RequireFromString("30000.50")))
			return &models.BudgetSettings{ID: uuid.New(), UserID: identity.UserID, MonthlyLimit: limit, Currency: "EUR", UpdatedAt: time.Now()}, nil
		})

	c, rec := authedContext(s.echo, s.identity, http.MethodPut, "/api/v1/settings/budget", `{"monthly_limit":"30000.50","currency":"eur"}`)
	s.NoError(s.handler.UpdateBudget(c))

	s.Equal(http.StatusOK, rec.Code)
	response := s.decode(rec.Body.Bytes())
	s.False(response.IsDefault)
	s.Equal("EUR", response.Currency)
}

func (s *BudgetHandlerTestSuite) TestUpdateBudget_Rejected() {
	testCases := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"missing limit", `{"currency":"INR"}`, http.StatusBadRequest, "VALIDATION_001"},
		{"negative limit", `{"monthly_limit":"-5"}`, http.StatusBadRequest, "VALIDATION_001"},
		{"bad currency", `{"monthly_limit":"100","currency":"RUPEES"}`, http.StatusBadRequest, "VALIDATION_001"},
		{"bad json", `{"monthly_limit":`, http.StatusBadRequest, "VALIDATION_001"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			c, rec := authedContext(s.echo, s.identity, http.MethodPut, "/api/v1/settings/budget", tc.body)
			s.NoError(s.handler.UpdateBudget(c))
			s.Equal(tc.wantStatus, rec.Code)
			s.Equal(tc.wantCode, decodeErrorCode(s.T(), rec))
		})
	}
}

func (s *BudgetHandlerTestSuite) TestUpdateBudget_ServiceValidation() {
	s.mockBudgets.EXPECT().UpdateSettings(gomock.Any(), s.identity, gomock.Any(), gomock.Any()).Return(nil, models.ErrInvalidCurrency)

	c, rec := authedContext(s.echo, s.identity, http.MethodPut, "/api/v1/settings/budget", `{"monthly_limit":"100","currency":"usd"}`)
	s.NoError(s.handler.UpdateBudget(c))

	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Equal("BUDGET_002", decodeErrorCode(s.T(), rec))
}
