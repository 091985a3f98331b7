// Package middleware holds the HTTP middleware shared by the API routes.
package middleware

import (
	"errors"
	"strings"

	"github.com/amirasaad/pesaflow/pkg/config"
	"github.com/amirasaad/pesaflow/pkg/identity"
	"github.com/amirasaad/pesaflow/pkg/session"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const localsToken = "user"

var errMissingSession = errors.New("missing session")

// Protected verifies the bearer token's signature, then asks verifier to
// resolve it so revoked tokens are refused. The request's session is
// available through Session.
func Protected(cfg *config.Jwt, verifier identity.Provider) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{JWTAlg: jwtware.HS256, Key: []byte(cfg.Secret)},
		ContextKey:   localsToken,
		ErrorHandler: jwtError,
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals(localsToken).(*jwt.Token)
			if !ok {
				return jwtError(c, errMissingSession)
			}
			cred, err := verifier.Verify(c.UserContext(), token.Raw)
			if err != nil {
				return jwtError(c, err)
			}
			c.SetUserContext(session.NewContext(c.UserContext(), session.FromCredential(cred)))
			return c.Next()
		},
	})
}

// Session returns the session established by Protected.
func Session(c *fiber.Ctx) (*session.Session, bool) {
	return session.FromContext(c.UserContext())
}

// Token returns the raw bearer token of the request.
func Token(c *fiber.Ctx) string {
	if t, ok := c.Locals(localsToken).(*jwt.Token); ok {
		return t.Raw
	}
	return strings.TrimSpace(strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer"))
}

func jwtError(c *fiber.Ctx, err error) error {
	c.Set(fiber.HeaderContentType, "application/problem+json")
	if errors.Is(err, jwtware.ErrJWTMissingOrMalformed) ||
		strings.EqualFold(err.Error(), jwtware.ErrJWTMissingOrMalformed.Error()) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"type":   "about:blank",
			"title":  "Missing or malformed JWT",
			"status": fiber.StatusBadRequest,
		})
	}
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"type":   "about:blank",
		"title":  "Invalid or expired JWT",
		"status": fiber.StatusUnauthorized,
		"detail": err.Error(),
	})
}
