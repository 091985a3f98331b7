package local

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/amirasaad/pesaflow/infra/repository/credential"
	"github.com/amirasaad/pesaflow/pkg/config"
	"github.com/amirasaad/pesaflow/pkg/identity"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestProvider(t *testing.T) (*Provider, *clock) {
	t.Helper()
	clk := &clock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	cfg := &config.Jwt{Secret: "test-secret-0123456789", Expiry: time.Hour}
	return New(credential.NewMemory(), cfg, nil, WithHashCost(bcrypt.MinCost), WithClock(clk.now)), clk
}

func TestCreateAccount(t *testing.T) {
	p, clk := newTestProvider(t)
	ctx := context.Background()

	cred, err := p.CreateAccount(ctx, "Alice@Example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, cred.UserID)
	assert.Equal(t, "alice@example.com", cred.Email)
	assert.NotEmpty(t, cred.Token)
	assert.True(t, clk.t.Add(time.Hour).Equal(cred.ExpiresAt))

	verified, err := p.Verify(ctx, cred.Token)
	require.NoError(t, err)
	assert.Equal(t, cred.UserID, verified.UserID)
}

func TestCreateAccount_DuplicateEmail(t *testing.T) {
	p, _ := newTestProvider(t)
	ctx := context.Background()

	_, err := p.CreateAccount(ctx, "bob@example.com", "secret123")
	require.NoError(t, err)
	_, err = p.CreateAccount(ctx, "BOB@example.com", "other-secret")
	assert.ErrorIs(t, err, ErrEmailInUse)
	assert.Equal(t, "email already in use", err.Error())
}

func TestCreateAccount_Rejects(t *testing.T) {
	p, _ := newTestProvider(t)
	ctx := context.Background()

	_, err := p.CreateAccount(ctx, "not-an-email", "secret123")
	assert.ErrorIs(t, err, ErrInvalidEmail)
	_, err = p.CreateAccount(ctx, "carol@example.com", "12345")
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestSignIn(t *testing.T) {
	p, _ := newTestProvider(t)
	ctx := context.Background()

	created, err := p.CreateAccount(ctx, "dave@example.com", "secret123")
	require.NoError(t, err)

	cred, err := p.SignIn(ctx, "dave@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, created.UserID, cred.UserID)
	assert.NotEqual(t, created.Token, cred.Token)

	_, err = p.SignIn(ctx, "dave@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = p.SignIn(ctx, "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignOutRevokesToken(t *testing.T) {
	p, _ := newTestProvider(t)
	ctx := context.Background()

	cred, err := p.CreateAccount(ctx, "erin@example.com", "secret123")
	require.NoError(t, err)

	require.NoError(t, p.SignOut(ctx, cred))
	require.NoError(t, p.SignOut(ctx, cred))
	_, err = p.Verify(ctx, cred.Token)
	assert.ErrorIs(t, err, ErrTokenRevoked)
	assert.Equal(t, 1, p.revoked.(*credential.MemoryRevocations).Len())

	require.NoError(t, p.SignOut(ctx, identity.Credential{UserID: cred.UserID}))
}

func TestVerify_Expired(t *testing.T) {
	p, clk := newTestProvider(t)
	ctx := context.Background()

	cred, err := p.CreateAccount(ctx, "frank@example.com", "secret123")
	require.NoError(t, err)

	clk.t = clk.t.Add(2 * time.Hour)
	_, err = p.Verify(ctx, cred.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_RejectsForeignSignature(t *testing.T) {
	p, clk := newTestProvider(t)

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "u1",
		"exp":     clk.t.Add(time.Hour).Unix(),
	})
	signed, err := forged.SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	_, err = p.Verify(context.Background(), signed)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = p.Verify(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSignOutSharedAcrossProviders(t *testing.T) {
	clk := &clock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	cfg := &config.Jwt{Secret: "test-secret-0123456789", Expiry: time.Hour}
	creds := credential.NewMemory()
	revoked := credential.NewMemoryRevocations(clk.now)
	a := New(creds, cfg, nil, WithHashCost(bcrypt.MinCost), WithClock(clk.now), WithRevocations(revoked))
	b := New(creds, cfg, nil, WithHashCost(bcrypt.MinCost), WithClock(clk.now), WithRevocations(revoked))
	ctx := context.Background()

	cred, err := a.CreateAccount(ctx, "gina@example.com", "secret123")
	require.NoError(t, err)
	_, err = b.Verify(ctx, cred.Token)
	require.NoError(t, err)

	require.NoError(t, a.SignOut(ctx, cred))
	_, err = b.Verify(ctx, cred.Token)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

type failingRevocations struct{ err error }

func (f failingRevocations) Revoke(context.Context, string, time.Time) error { return f.err }

func (f failingRevocations) IsRevoked(context.Context, string) (bool, error) { return false, f.err }

func TestRevocationStoreFailures(t *testing.T) {
	clk := &clock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	cfg := &config.Jwt{Secret: "test-secret-0123456789", Expiry: time.Hour}
	boom := errors.New("connection refused")
	p := New(credential.NewMemory(), cfg, nil,
		WithHashCost(bcrypt.MinCost), WithClock(clk.now), WithRevocations(failingRevocations{err: boom}))
	ctx := context.Background()

	cred, err := p.CreateAccount(ctx, "hank@example.com", "secret123")
	require.NoError(t, err)

	assert.ErrorIs(t, p.SignOut(ctx, cred), boom)
	_, err = p.Verify(ctx, cred.Token)
	assert.ErrorIs(t, err, boom)
}
