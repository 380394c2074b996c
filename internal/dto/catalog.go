package dto

import "expense-tracker/internal/models"

// CategoryIconResponse pairs an icon identifier with its symbol
type CategoryIconResponse struct {
	ID     models.CategoryIcon `json:"id"`
	Symbol string              `json:"symbol"`
}

// CategoriesResponse lists the default categories and the icons a custom one may use
type CategoriesResponse struct {
	Categories []models.ExpenseCategory `json:"categories"`
	Icons      []CategoryIconResponse   `json:"icons"`
}

// PaymentMethodsResponse lists the accepted payment methods
type PaymentMethodsResponse struct {
	PaymentMethods []string `json:"payment_methods"`
	// CustomMethod is the value that requires free text
	CustomMethod string `json:"custom_method"`
}
