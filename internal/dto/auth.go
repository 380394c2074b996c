package dto

import "time"

// DevTokenRequest asks for a development access token
type DevTokenRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
	Email  string `json:"email" validate:"omitempty,email"`
}

// TokenResponse contains an access token
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// GenerateExpensesRequest asks for demo expenses over the last Days days
type GenerateExpensesRequest struct {
	Count int `json:"count" validate:"required,min=1,max=500"`
	Days  int `json:"days" validate:"omitempty,min=1,max=730"`
}

// GenerateExpensesResponse reports how many demo expenses were stored
type GenerateExpensesResponse struct {
	Created int `json:"created"`
	// Total is every expense the user now has. Omitted when the count failed.
	Total *int64 `json:"total,omitempty"`
}
