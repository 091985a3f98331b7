package credential

import (
	"context"
	"errors"
	"strings"

	"github.com/amirasaad/pesaflow/infra/repository"
	"github.com/amirasaad/pesaflow/pkg/dto"
	"github.com/amirasaad/pesaflow/pkg/repository/credential"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type gormRepository struct {
	db *gorm.DB
}

// New returns a gorm-backed credential repository.
func New(db *gorm.DB) credential.Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(
	ctx context.Context,
	create *dto.CredentialCreate,
) error {
	cred := &Credential{
		UserID:       create.UserID,
		Email:        normalizeEmail(create.Email),
		PasswordHash: create.PasswordHash,
	}
	return repository.WrapError(func() error {
		return r.db.WithContext(ctx).Create(cred).Error
	})
}

func (r *gormRepository) Get(
	ctx context.Context,
	userID uuid.UUID,
) (*dto.CredentialRead, error) {
	return r.first(ctx, "user_id = ?", userID)
}

func (r *gormRepository) GetByEmail(
	ctx context.Context,
	email string,
) (*dto.CredentialRead, error) {
	return r.first(ctx, "email = ?", normalizeEmail(email))
}

func (r *gormRepository) ExistsByEmail(
	ctx context.Context,
	email string,
) (bool, error) {
	var count int64
	err := r.db.WithContext(
		ctx,
	).Model(&Credential{}).Where("email = ?", normalizeEmail(email)).Count(&count).Error
	if err != nil {
		return false, repository.MapGormErrorToDomain(err)
	}
	return count > 0, nil
}

func (r *gormRepository) first(
	ctx context.Context,
	query string,
	arg any,
) (*dto.CredentialRead, error) {
	var cred Credential
	if err := r.db.WithContext(ctx).Where(query, arg).First(&cred).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, repository.MapGormErrorToDomain(err)
	}
	return mapModelToDTO(&cred), nil
}

func mapModelToDTO(cred *Credential) *dto.CredentialRead {
	return &dto.CredentialRead{
		UserID:       cred.UserID,
		Email:        cred.Email,
		PasswordHash: cred.PasswordHash,
		CreatedAt:    cred.CreatedAt,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
