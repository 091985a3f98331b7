package store_test

import (
	"testing"

	"github.com/amirasaad/pesaflow/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPath(t *testing.T) {
	tests := []struct {
		name     string
		segments []string
		want     store.Path
		wantErr  bool
	}{
		{"single", []string{"users"}, "users", false},
		{"nested", []string{"transactions", "u1", "t1"}, "transactions/u1/t1", false},
		{"none", nil, "", true},
		{"blank", []string{"transactions", " "}, "", true},
		{"slash", []string{"transactions", "a/b"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.NewPath(tt.segments...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPathNavigation(t *testing.T) {
	p, err := store.TransactionPath("u1", "t1")
	require.NoError(t, err)

	assert.Equal(t, "t1", p.Key())
	assert.Equal(t, store.Path("transactions/u1"), p.Parent())
	assert.Equal(t, store.Path("transactions"), p.Parent().Parent())
	assert.Equal(t, store.Path(""), p.Parent().Parent().Parent())
	assert.Equal(t, []string{"transactions", "u1", "t1"}, p.Segments())

	child, err := p.Parent().Child("t2")
	require.NoError(t, err)
	assert.Equal(t, store.Path("transactions/u1/t2"), child)
}

func TestPathContains(t *testing.T) {
	coll := store.Path("transactions/u1")
	assert.True(t, coll.Contains("transactions/u1"))
	assert.True(t, coll.Contains("transactions/u1/t1"))
	assert.False(t, coll.Contains("transactions/u10"))
	assert.False(t, coll.Contains("transactions"))
}

func TestUserPath_RejectsBlankID(t *testing.T) {
	_, err := store.UserPath("")
	assert.Error(t, err)
	_, err = store.TransactionsPath("  ")
	assert.Error(t, err)
}

func TestNewPushKey_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		k := store.NewPushKey()
		assert.NotContains(t, k, "-")
		_, dup := seen[k]
		require.False(t, dup, "duplicate key %s", k)
		seen[k] = struct{}{}
	}
}
