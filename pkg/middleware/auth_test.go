package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amirasaad/pesaflow/internal/fixtures/mocks"
	"github.com/amirasaad/pesaflow/pkg/config"
	"github.com/amirasaad/pesaflow/pkg/identity"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testJwt = &config.Jwt{Secret: "middleware-secret-0123456789", Expiry: time.Hour}

func signed(t *testing.T, secret string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "u1",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	s, err := tok.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func protectedApp(verifier identity.Provider) *fiber.App {
	app := fiber.New()
	app.Get("/", Protected(testJwt, verifier), func(c *fiber.Ctx) error {
		sess, ok := Session(c)
		if !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendString(sess.UserID())
	})
	return app
}

func TestProtected_MissingToken(t *testing.T) {
	app := protectedApp(mocks.NewMockProvider(t))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestProtected_WrongSignature(t *testing.T) {
	app := protectedApp(mocks.NewMockProvider(t))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed(t, "another-secret-0123456789"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestProtected_RevokedToken(t *testing.T) {
	provider := mocks.NewMockProvider(t)
	token := signed(t, testJwt.Secret)
	provider.EXPECT().Verify(mock.Anything, token).Return(identity.Credential{}, errors.New("token revoked"))
	app := protectedApp(provider)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestProtected_BuildsSession(t *testing.T) {
	provider := mocks.NewMockProvider(t)
	token := signed(t, testJwt.Secret)
	provider.EXPECT().Verify(mock.Anything, token).
		RunAndReturn(func(_ context.Context, tok string) (identity.Credential, error) {
			return identity.Credential{UserID: "u1", Token: tok}, nil
		})
	app := protectedApp(provider)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestJwtError_Invalid(t *testing.T) {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		return jwtError(c, errors.New("any other error"))
	})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
