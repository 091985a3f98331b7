package credential

import (
	"time"

	"github.com/google/uuid"
)

// Credential represents a sign-in identity record in the database.
type Credential struct {
	UserID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"uniqueIndex;not null;size:255"`
	PasswordHash string    `gorm:"not null;size:255"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for the Credential model.
func (Credential) TableName() string {
	return "credentials"
}

// RevokedToken is a signed-out token id kept until the token expires.
type RevokedToken struct {
	JTI       string    `gorm:"column:jti;primaryKey;size:64"`
	ExpiresAt time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for the RevokedToken model.
func (RevokedToken) TableName() string {
	return "revoked_tokens"
}
