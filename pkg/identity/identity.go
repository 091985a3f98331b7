// Package identity defines the contract of the external identity provider
// that owns accounts, passwords and sign-in state.
package identity

import (
	"context"
	"time"
)

// Credential is the signed-in state the provider hands back.
type Credential struct {
	UserID    string
	Email     string
	Token     string
	ExpiresAt time.Time
}

// Provider creates and verifies sign-in identities. Errors carry the
// provider's own message, which callers surface verbatim.
type Provider interface {
	// CreateAccount registers email/password and signs the new user in.
	CreateAccount(ctx context.Context, email, password string) (Credential, error)
	// SignIn checks email/password and returns a fresh credential.
	SignIn(ctx context.Context, email, password string) (Credential, error)
	// SignOut invalidates the credential. Signing out twice is not an error.
	SignOut(ctx context.Context, cred Credential) error
	// Verify resolves a token issued by this provider.
	Verify(ctx context.Context, token string) (Credential, error)
}
