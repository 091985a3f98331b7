package credential

import (
	"context"
	"time"
)

// Revocations records signed-out token ids until the tokens would have
// expired on their own. Instances that share a Revocations reject each
// other's signed-out tokens.
type Revocations interface {
	// Revoke marks jti as signed out until expiresAt. Revoking twice is not
	// an error.
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error

	// IsRevoked reports whether jti was revoked and has not yet expired.
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
