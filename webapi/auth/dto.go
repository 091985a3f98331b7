package auth

import "github.com/amirasaad/pesaflow/pkg/domain/user"

// RegisterRequest is the body of POST /auth/register. Blank fields are
// reported by the service with its own message.
type RegisterRequest struct {
	FirstName string `json:"firstname" validate:"max=100"`
	LastName  string `json:"lastname" validate:"max=100"`
	Email     string `json:"email" validate:"omitempty,email,max=255"`
	Password  string `json:"password" validate:"max=72"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"max=255"`
	Password string `json:"password" validate:"max=72"`
}

// TokenResponse carries the bearer token issued on register and login.
type TokenResponse struct {
	Token     string        `json:"token"`
	ExpiresAt int64         `json:"expiresAt,omitempty"`
	Profile   *user.Profile `json:"profile,omitempty"`
}
