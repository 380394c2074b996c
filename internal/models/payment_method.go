package models

import "strings"

const (
	PaymentMethodUPI          = "UPI"
	PaymentMethodCreditCard   = "Credit Card"
	PaymentMethodDebitCard    = "Debit Card"
	PaymentMethodCash         = "Cash"
	PaymentMethodBankTransfer = "Bank Transfer"
	PaymentMethodRuPayUPI     = "RuPay UPI"
	PaymentMethodOther        = "Other"
)

// AllPaymentMethods returns the selectable payment methods in display order
func AllPaymentMethods() []string {
	return []string{
		PaymentMethodUPI,
		PaymentMethodCreditCard,
		PaymentMethodDebitCard,
		PaymentMethodRuPayUPI,
		PaymentMethodCash,
		PaymentMethodBankTransfer,
		PaymentMethodOther,
	}
}

// IsValidPaymentMethod checks if a payment method is one of the enumerated values
func IsValidPaymentMethod(method string) bool {
	for _, valid := range AllPaymentMethods() {
		if method == valid {
			return true
		}
	}
	return false
}

// ResolvePaymentMethod returns the value stored on an expense. Choosing Other
// stores the caller's free text in place of the literal "Other".
func ResolvePaymentMethod(method, custom string) (string, error) {
	if !IsValidPaymentMethod(method) {
		return "", ErrInvalidPaymentMethod
	}

	if method != PaymentMethodOther {
		return method, nil
	}

	custom = strings.TrimSpace(custom)
	if custom == "" {
		return "", ErrCustomPaymentMethodText
	}

	if len(custom) > maxPaymentMethodLength {
		return "", ErrPaymentMethodTooLong
	}

	return custom, nil
}
