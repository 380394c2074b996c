package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	DayKeyLayout   = "2006-01-02"
	DayLabelLayout = "2 Jan"

	maxCategoryNameLength  = 50
	maxPaymentMethodLength = 60
	maxNoteLength          = 500
	amountDecimalPlaces    = 2
)

var (
	ErrExpenseUserRequired     = errors.New("expense user ID is required")
	ErrNegativeAmount          = errors.New("expense amount must not be negative")
	ErrAmountPrecision         = errors.New("expense amount must have at most 2 decimal places")
	ErrExpenseDateRequired     = errors.New("expense date is required")
	ErrCategoryNameRequired    = errors.New("category name is required")
	ErrCategoryNameTooLong     = errors.New("category name too long")
	ErrInvalidCategoryIcon     = errors.New("invalid category icon")
	ErrPaymentMethodRequired   = errors.New("payment method is required")
	ErrPaymentMethodTooLong    = errors.New("payment method too long")
	ErrNoteTooLong             = errors.New("note too long")
	ErrCustomCategoryName      = errors.New("custom category requires a name")
	ErrUnknownCategory         = errors.New("unknown category")
	ErrInvalidPaymentMethod    = errors.New("invalid payment method")
	ErrCustomPaymentMethodText = errors.New("payment method Other requires a description")
)

// Expense is a single logged spending record. Category is denormalized onto the row
// at write time, so later changes to a category never rewrite history.
type Expense struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Category      ExpenseCategory `gorm:"type:jsonb;not null" json:"category"`
	PaymentMethod string          `gorm:"type:varchar(60);not null" json:"payment_method"`
	Note          string          `gorm:"type:text" json:"note,omitempty"`
	Date          time.Time       `gorm:"not null;index" json:"date"`
	CreatedAt     time.Time       `gorm:"not null" json:"created_at"`
}

// BeforeCreate hook for Expense
func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}

	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	// stored instants are UTC; callers convert to a display location on read
	e.Date = e.Date.UTC()

	return e.Validate()
}

// Validate checks the invariants every stored expense must satisfy.
func (e *Expense) Validate() error {
	if e.UserID == uuid.Nil {
		return ErrExpenseUserRequired
	}

	if e.Amount.IsNegative() {
		return ErrNegativeAmount
	}

	if !e.Amount.Equal(e.Amount.Round(amountDecimalPlaces)) {
		return ErrAmountPrecision
	}

	if e.Date.IsZero() {
		return ErrExpenseDateRequired
	}

	if err := e.Category.Validate(); err != nil {
		return err
	}

	if e.PaymentMethod == "" {
		return ErrPaymentMethodRequired
	}

	if len(e.PaymentMethod) > maxPaymentMethodLength {
		return ErrPaymentMethodTooLong
	}

	if len(e.Note) > maxNoteLength {
		return ErrNoteTooLong
	}

	return nil
}

// DayKey returns the calendar day of Date in the location the value carries.
func (e Expense) DayKey() string {
	return e.Date.Format(DayKeyLayout)
}

// Subtitle is the secondary line shown under an expense: the note, or the payment method.
func (e Expense) Subtitle() string {
	if e.Note != "" {
		return e.Note
	}
	return e.PaymentMethod
}

// In returns a copy of the expense with Date converted to loc.
func (e Expense) In(loc *time.Location) Expense {
	if loc != nil {
		e.Date = e.Date.In(loc)
	}
	return e
}

// TableName returns the table name for Expense
func (e Expense) TableName() string {
	return "expenses"
}

// ExpensesIn converts every record's Date to loc without touching the input slice.
func ExpensesIn(expenses []Expense, loc *time.Location) []Expense {
	converted := make([]Expense, len(expenses))
	for i, expense := range expenses {
		converted[i] = expense.In(loc)
	}
	return converted
}
