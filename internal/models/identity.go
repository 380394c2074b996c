package models

import (
	"strings"

	"github.com/google/uuid"
)

const anonymousDisplayName = "there"

// Identity is the authenticated caller, passed explicitly from the auth middleware
// down to services.
type Identity struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email,omitempty"`
}

// DisplayName returns the local part of the email address.
func (i Identity) DisplayName() string {
	local, _, _ := strings.Cut(i.Email, "@")
	if local == "" {
		return anonymousDisplayName
	}
	return local
}

func (i Identity) IsZero() bool {
	return i.UserID == uuid.Nil
}
