package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMatchesKindAndCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("write: %w", NewStoreError(cause))

	assert.ErrorIs(t, err, ErrStore)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrValidation)
	assert.Equal(t, "write: connection refused", err.Error())
	assert.Equal(t, KindStore, KindOf(err))
}

func TestWrapKeepsExistingKind(t *testing.T) {
	inner := NewAuthError(errors.New("bad password"))
	assert.Same(t, inner, NewAuthError(inner))
	assert.Equal(t, string(KindAuth), NewAuthError(nil).Error())
}

func TestKindOfSentinels(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NewNotFoundError("Profile")))
	assert.Equal(t, "Profile not found", NewNotFoundError("Profile").Error())
	assert.Equal(t, KindValidation, KindOf(NewValidationError("Invalid amount format: %q", "x")))
	assert.Equal(t, KindAuth, KindOf(fmt.Errorf("x: %w", ErrUnauthorized)))
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
}
