package credential

import (
	"context"

	"github.com/amirasaad/pesaflow/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines data access for sign-in identities. Emails are compared
// case-insensitively.
type Repository interface {
	// Create inserts a new credential. A taken email yields
	// domain.ErrAlreadyExists.
	Create(ctx context.Context, create *dto.CredentialCreate) error

	// Get retrieves a credential by user id, or nil when absent.
	Get(ctx context.Context, userID uuid.UUID) (*dto.CredentialRead, error)

	// GetByEmail retrieves a credential by email, or nil when absent.
	GetByEmail(ctx context.Context, email string) (*dto.CredentialRead, error)

	// ExistsByEmail checks if a credential with the given email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
