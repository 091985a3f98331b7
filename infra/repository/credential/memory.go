package credential

import (
	"context"
	"sync"
	"time"

	"github.com/amirasaad/pesaflow/pkg/domain"
	"github.com/amirasaad/pesaflow/pkg/dto"
	"github.com/amirasaad/pesaflow/pkg/repository/credential"
	"github.com/google/uuid"
)

// MemoryRepository keeps credentials in process memory.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*dto.CredentialRead
	byEmail map[string]uuid.UUID
}

var _ credential.Repository = (*MemoryRepository)(nil)

// NewMemory returns an empty in-memory credential repository.
func NewMemory() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[uuid.UUID]*dto.CredentialRead),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (r *MemoryRepository) Create(_ context.Context, create *dto.CredentialCreate) error {
	email := normalizeEmail(create.Email)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byEmail[email]; taken {
		return domain.ErrAlreadyExists
	}
	if _, taken := r.byID[create.UserID]; taken {
		return domain.ErrAlreadyExists
	}
	r.byID[create.UserID] = &dto.CredentialRead{
		UserID:       create.UserID,
		Email:        email,
		PasswordHash: create.PasswordHash,
		CreatedAt:    time.Now().UTC(),
	}
	r.byEmail[email] = create.UserID
	return nil
}

func (r *MemoryRepository) Get(_ context.Context, userID uuid.UUID) (*dto.CredentialRead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cred, ok := r.byID[userID]
	if !ok {
		return nil, nil
	}
	cp := *cred
	return &cp, nil
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*dto.CredentialRead, error) {
	r.mu.RLock()
	id, ok := r.byEmail[normalizeEmail(email)]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return r.Get(ctx, id)
}

func (r *MemoryRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byEmail[normalizeEmail(email)]
	return ok, nil
}
