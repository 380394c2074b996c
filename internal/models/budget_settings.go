package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNegativeBudget  = errors.New("monthly limit must not be negative")
	ErrInvalidCurrency = errors.New("currency must be a 3-letter ISO 4217 code")
)

// BudgetSettings holds a user's monthly spending limit
type BudgetSettings struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	MonthlyLimit decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"monthly_limit"`
	Currency     string          `gorm:"type:varchar(3);not null;default:'INR'" json:"currency"`
	CreatedAt    time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook for BudgetSettings
func (b *BudgetSettings) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}

	now := time.Now().UTC()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	if b.UpdatedAt.IsZero() {
		b.UpdatedAt = now
	}

	return b.Validate()
}

// BeforeUpdate hook for BudgetSettings
func (b *BudgetSettings) BeforeUpdate(tx *gorm.DB) error {
	b.UpdatedAt = time.Now().UTC()
	return b.Validate()
}

func (b *BudgetSettings) Validate() error {
	if b.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}

	if b.MonthlyLimit.IsNegative() {
		return ErrNegativeBudget
	}

	if !IsValidCurrency(b.Currency) {
		return ErrInvalidCurrency
	}

	return nil
}

// TableName returns the table name for BudgetSettings
func (b *BudgetSettings) TableName() string {
	return "user_settings"
}

// IsValidCurrency reports whether code looks like an upper-case ISO 4217 code.
func IsValidCurrency(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
