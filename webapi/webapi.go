// Package webapi provides the HTTP API of PesaFlow. It is organized into
// sub-packages per area:
// - auth: register, login, logout and the current profile
// - transaction: the per-user transaction store and its live stream
package webapi

import (
	"errors"
	"strings"
	"time"

	_ "github.com/amirasaad/pesaflow/docs"
	"github.com/amirasaad/pesaflow/pkg/app"
	"github.com/amirasaad/pesaflow/pkg/config"
	authweb "github.com/amirasaad/pesaflow/webapi/auth"
	"github.com/amirasaad/pesaflow/webapi/common"
	txweb "github.com/amirasaad/pesaflow/webapi/transaction"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
)

var defaultRateLimit = config.RateLimit{MaxRequests: 100, Window: time.Minute}

// SetupApp Initialize Fiber with custom configuration
func SetupApp(a *app.App) *fiber.App {
	rl := defaultRateLimit
	jwtCfg := &config.Jwt{}
	if a.Config != nil {
		if a.Config.RateLimit != nil {
			rl = *a.Config.RateLimit
		}
		if a.Config.Auth != nil && a.Config.Auth.Jwt != nil {
			jwtCfg = a.Config.Auth.Jwt
		}
	}

	fiberApp := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})
	fiberApp.Get("/swagger/*", swagger.New(swagger.Config{
		TryItOutEnabled:      true,
		PersistAuthorization: true,
	}))

	// Uses X-Forwarded-For when behind a proxy, then X-Real-IP, then the peer.
	fiberApp.Use(limiter.New(limiter.Config{
		Max:        rl.MaxRequests,
		Expiration: rl.Window,
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/transactions/stream"
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
					return strings.TrimSpace(forwardedFor[:commaIndex])
				}
				return strings.TrimSpace(forwardedFor)
			}
			if realIP := c.Get("X-Real-IP"); realIP != "" {
				return realIP
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(
				c,
				"Too Many Requests",
				errors.New("rate limit exceeded"),
				fiber.StatusTooManyRequests,
			)
		},
	}))
	fiberApp.Use(recover.New())
	if a.Config != nil && a.Config.IsDevelopment() {
		fiberApp.Use(logger.New())
	}

	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("PesaFlow API is running! 🚀")
	})

	provider := a.Deps.Identity
	authweb.Routes(fiberApp, a.AuthService, provider, jwtCfg)
	txweb.Routes(fiberApp, a.TransactionService, a.AuthService, provider, jwtCfg, a.Deps.Logger)
	return fiberApp
}
