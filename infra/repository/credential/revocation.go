package credential

import (
	"context"
	"time"

	"github.com/amirasaad/pesaflow/infra/repository"
	"github.com/amirasaad/pesaflow/pkg/repository/credential"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormRevocations struct {
	db  *gorm.DB
	now func() time.Time
}

// NewRevocations returns a gorm-backed revocation list shared by every
// process using the same database.
func NewRevocations(db *gorm.DB) credential.Revocations {
	return &gormRevocations{db: db, now: time.Now}
}

func (r *gormRevocations) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	if jti == "" {
		return nil
	}
	now := r.now().UTC()
	return repository.WrapError(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("expires_at <= ?", now).Delete(&RevokedToken{}).Error; err != nil {
				return err
			}
			return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&RevokedToken{
				JTI:       jti,
				ExpiresAt: expiresAt.UTC(),
			}).Error
		})
	})
}

func (r *gormRevocations) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&RevokedToken{}).
		Where("jti = ? AND expires_at > ?", jti, r.now().UTC()).
		Count(&count).Error
	if err != nil {
		return false, repository.MapGormErrorToDomain(err)
	}
	return count > 0, nil
}
