package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewProfile(t *testing.T) {
	p := NewProfile("u1", " alice@example.com ", " Alice", "Doe ")
	assert.Equal(t, &Profile{
		UserID:      "u1",
		Email:       "alice@example.com",
		FirstName:   "Alice",
		LastName:    "Doe",
		DisplayName: "Alice Doe",
	}, p)
	assert.Equal(t, "Alice Doe", p.Name())
}

func TestNameFallsBackToEmail(t *testing.T) {
	p := NewProfile("u1", "alice@example.com", "", "")
	assert.Empty(t, p.DisplayName)
	assert.Equal(t, "alice@example.com", p.Name())
}
