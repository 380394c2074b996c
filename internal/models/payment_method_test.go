package models

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestResolvePaymentMethod(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		custom  string
		want    string
		wantErr error
	}{
		{name: "enumerated method", method: PaymentMethodCash, want: PaymentMethodCash},
		{name: "custom text ignored for enumerated", method: PaymentMethodUPI, custom: "ignored", want: PaymentMethodUPI},
		{name: "other stores custom text", method: PaymentMethodOther, custom: " Gift card ", want: "Gift card"},
		{name: "other without text", method: PaymentMethodOther, custom: "  ", wantErr: ErrCustomPaymentMethodText},
		{name: "other with long text", method: PaymentMethodOther, custom: strings.Repeat("x", maxPaymentMethodLength+1), wantErr: ErrPaymentMethodTooLong},
		{name: "unknown method", method: "Barter", wantErr: ErrInvalidPaymentMethod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolvePaymentMethod(tt.method, tt.custom)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIdentity_DisplayName(t *testing.T) {
	assert.Equal(t, "asha", Identity{Email: "asha@example.com"}.DisplayName())
	assert.Equal(t, "there", Identity{}.DisplayName())
	assert.True(t, Identity{}.IsZero())
}

func TestBudgetSettings_Validate(t *testing.T) {
	settings := BudgetSettings{UserID: uuid.New(), MonthlyLimit: decimal.NewFromInt(25000), Currency: "INR"}
	assert.NoError(t, settings.Validate())

	settings.Currency = "inr"
	assert.ErrorIs(t, settings.Validate(), ErrInvalidCurrency)

	settings.Currency = "INR"
	settings.MonthlyLimit = decimal.NewFromInt(-5)
	assert.ErrorIs(t, settings.Validate(), ErrNegativeBudget)

	assert.Equal(t, "user_settings", settings.TableName())
	assert.Equal(t, "open", CircuitBreakerState(1).String())
}
