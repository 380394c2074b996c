package models

import "github.com/golang-jwt/jwt/v5"

// CustomClaims are the claims carried by identity-provider access tokens.
// Subject holds the user UUID.
type CustomClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}
