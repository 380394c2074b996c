package models

import (
	"time"

	"github.com/google/uuid"
)

// ExpenseCursor marks the last row of a page in (date, created_at, id) order
type ExpenseCursor struct {
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"created_at"`
	ID        uuid.UUID `json:"id"`
}

// ExpenseFilters contains filtering options for expense queries
type ExpenseFilters struct {
	UserID        uuid.UUID
	StartDate     *time.Time
	EndDate       *time.Time
	Category      string
	PaymentMethod string
	After         *ExpenseCursor
	Limit         int
}
