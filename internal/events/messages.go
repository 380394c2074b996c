package events

import (
	"encoding/json"
	"time"

	"expense-tracker/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TypeExpenseCreated = "expense.created"
	TypeExpenseDeleted = "expense.deleted"
)

// ExpenseEvent is the message body published for every expense write
type ExpenseEvent struct {
	Type       string           `json:"type"`
	ExpenseID  uuid.UUID        `json:"expense_id"`
	UserID     uuid.UUID        `json:"user_id"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	Category   string           `json:"category,omitempty"`
	OccurredAt time.Time        `json:"occurred_at"`
}

// NewExpenseCreatedEvent describes a newly stored expense
func NewExpenseCreatedEvent(expense *models.Expense) *ExpenseEvent {
	amount := expense.Amount
	return &ExpenseEvent{
		Type:       TypeExpenseCreated,
		ExpenseID:  expense.ID,
		UserID:     expense.UserID,
		Amount:     &amount,
		Category:   expense.Category.DisplayName(),
		OccurredAt: time.Now().UTC(),
	}
}

// NewExpenseDeletedEvent describes a removed expense
func NewExpenseDeletedEvent(userID, expenseID uuid.UUID) *ExpenseEvent {
	return &ExpenseEvent{
		Type:       TypeExpenseDeleted,
		ExpenseID:  expenseID,
		UserID:     userID,
		OccurredAt: time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (e *ExpenseEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// ExpenseEventFromJSON decodes a message body
func ExpenseEventFromJSON(data []byte) (*ExpenseEvent, error) {
	var event ExpenseEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, err
	}
	return &event, nil
}
