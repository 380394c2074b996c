package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryTotal is the summed spend of one category name
type CategoryTotal struct {
	Name  string          `json:"name"`
	Icon  CategoryIcon    `json:"icon"`
	Color string          `json:"color,omitempty"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// TrendPoint is one day of the spending trend. Date is the sort key, Label is for display.
type TrendPoint struct {
	Date  string          `json:"date"`
	Label string          `json:"label"`
	Total decimal.Decimal `json:"total"`
}

// DayGroup is one calendar day of history
type DayGroup struct {
	Date     string          `json:"date"`
	Label    string          `json:"label"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
	Expenses []Expense       `json:"expenses"`
}

// MonthGroup is one month of history inside a YearGroup
type MonthGroup struct {
	Month    string          `json:"month"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
	Expenses []Expense       `json:"expenses"`
}

// YearGroup is one year of history, newest month first
type YearGroup struct {
	Year   int             `json:"year"`
	Total  decimal.Decimal `json:"total"`
	Months []MonthGroup    `json:"months"`
}

// BudgetStatus is the monthly limit compared against the spend of one month
type BudgetStatus struct {
	Month        string          `json:"month"`
	MonthlyLimit decimal.Decimal `json:"monthly_limit"`
	Currency     string          `json:"currency"`
	Spent        decimal.Decimal `json:"spent"`
	Remaining    decimal.Decimal `json:"remaining"`
	Percentage   decimal.Decimal `json:"percentage"`
	IsOverBudget bool            `json:"is_over_budget"`
}

// Analytics is the report for a period
type Analytics struct {
	Period         string          `json:"period"`
	From           *time.Time      `json:"from,omitempty"`
	To             time.Time       `json:"to"`
	Total          decimal.Decimal `json:"total"`
	ExpenseCount   int             `json:"expense_count"`
	CategoryTotals []CategoryTotal `json:"category_totals"`
	Trend          []TrendPoint    `json:"trend"`
}

// RecentExpense is the compact form used in the dashboard list
type RecentExpense struct {
	ID       uuid.UUID       `json:"id"`
	Title    string          `json:"title"`
	Subtitle string          `json:"subtitle"`
	Icon     CategoryIcon    `json:"icon"`
	Amount   decimal.Decimal `json:"amount"`
	Date     time.Time       `json:"date"`
}

// Dashboard is the landing view for a user
type Dashboard struct {
	Greeting string          `json:"greeting"`
	Budget   BudgetStatus    `json:"budget"`
	Recent   []RecentExpense `json:"recent"`
}

// NewRecentExpense projects an expense into the dashboard list form
func NewRecentExpense(e Expense) RecentExpense {
	return RecentExpense{
		ID:       e.ID,
		Title:    e.Category.DisplayName(),
		Subtitle: e.Subtitle(),
		Icon:     e.Category.DisplayIcon(),
		Amount:   e.Amount,
		Date:     e.Date,
	}
}
