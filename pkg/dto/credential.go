package dto

import (
	"time"

	"github.com/google/uuid"
)

// CredentialCreate represents the data needed to register a sign-in identity.
type CredentialCreate struct {
	UserID       uuid.UUID `json:"user_id"`
	Email        string    `json:"email" validate:"required,email"`
	PasswordHash string    `json:"-"`
}

// CredentialRead represents a stored sign-in identity.
type CredentialRead struct {
	UserID       uuid.UUID `json:"user_id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
