package credential

import (
	"context"
	"sync"
	"time"

	"github.com/amirasaad/pesaflow/pkg/repository/credential"
)

// MemoryRevocations keeps revoked token ids in process memory. It only
// covers a single process.
type MemoryRevocations struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

var _ credential.Revocations = (*MemoryRevocations)(nil)

// NewMemoryRevocations returns an empty list; now is the clock used to
// prune expired entries (time.Now when nil).
func NewMemoryRevocations(now func() time.Time) *MemoryRevocations {
	if now == nil {
		now = time.Now
	}
	return &MemoryRevocations{entries: make(map[string]time.Time), now: now}
}

func (r *MemoryRevocations) Revoke(_ context.Context, jti string, expiresAt time.Time) error {
	if jti == "" {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	for id, exp := range r.entries {
		if !now.Before(exp) {
			delete(r.entries, id)
		}
	}
	r.entries[jti] = expiresAt
	return nil
}

func (r *MemoryRevocations) IsRevoked(_ context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	exp, ok := r.entries[jti]
	return ok && r.now().Before(exp), nil
}

// Len returns the number of entries currently held.
func (r *MemoryRevocations) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
