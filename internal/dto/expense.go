package dto

import (
	"time"

	"expense-tracker/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense Request DTOs

// CreateExpenseRequest is the payload of the add-expense form
type CreateExpenseRequest struct {
	CategoryID          string `json:"category_id" validate:"required,max=50"`
	CustomCategoryName  string `json:"custom_category_name" validate:"max=50"`
	CustomIcon          string `json:"custom_icon" validate:"omitempty,category_icon"`
	CustomColor         string `json:"custom_color" validate:"omitempty,hex_color"`
	Amount              string `json:"amount" validate:"required,expense_amount"`
	PaymentMethod       string `json:"payment_method" validate:"required,payment_method"`
	CustomPaymentMethod string `json:"custom_payment_method" validate:"max=60"`
	// Date is YYYY-MM-DD, combined with Time (HH:MM) in TZ, or a full RFC 3339 timestamp
	Date string `json:"date" validate:"required"`
	Time string `json:"time" validate:"omitempty,datetime=15:04"`
	TZ   string `json:"tz" validate:"omitempty,timezone"`
	Note string `json:"note" validate:"max=500"`
}

// ExpenseQueryParams are the filters of the expense list endpoint
type ExpenseQueryParams struct {
	Cursor        string `query:"cursor"`
	Limit         int    `query:"limit" validate:"omitempty,min=1,max=100"`
	StartDate     string `query:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate       string `query:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Category      string `query:"category" validate:"max=50"`
	PaymentMethod string `query:"payment_method" validate:"max=60"`
	TZ            string `query:"tz" validate:"omitempty,timezone"`
}

// Expense Response DTOs

// ExpenseResponse is a single expense in API responses
type ExpenseResponse struct {
	ID            uuid.UUID              `json:"id"`
	Amount        decimal.Decimal        `json:"amount"`
	Category      models.ExpenseCategory `json:"category"`
	Icon          string                 `json:"icon_symbol"`
	PaymentMethod string                 `json:"payment_method"`
	Note          string                 `json:"note,omitempty"`
	Date          time.Time              `json:"date"`
	CreatedAt     time.Time              `json:"created_at"`
}

// NewExpenseResponse projects a stored expense into its API form
func NewExpenseResponse(e models.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:            e.ID,
		Amount:        e.Amount,
		Category:      e.Category,
		Icon:          e.Category.DisplayIcon().Symbol(),
		PaymentMethod: e.PaymentMethod,
		Note:          e.Note,
		Date:          e.Date,
		CreatedAt:     e.CreatedAt,
	}
}

// NewExpenseResponses projects a list of expenses
func NewExpenseResponses(expenses []models.Expense) []ExpenseResponse {
	responses := make([]ExpenseResponse, len(expenses))
	for i, expense := range expenses {
		responses[i] = NewExpenseResponse(expense)
	}
	return responses
}

// PaginationInfo contains cursor pagination metadata
type PaginationInfo struct {
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor,omitempty"`
	Limit      int    `json:"limit"`
}

// ListExpensesResponse is a page of expenses
type ListExpensesResponse struct {
	Expenses   []ExpenseResponse `json:"expenses"`
	Pagination PaginationInfo    `json:"pagination"`
}

// ExpensePage is one page of a user's expenses as returned by the service
type ExpensePage struct {
	Expenses []models.Expense
	HasMore  bool
	Next     *models.ExpenseCursor
	Limit    int
}
