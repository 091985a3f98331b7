package auth

import (
	"github.com/amirasaad/pesaflow/pkg/app"
	"github.com/amirasaad/pesaflow/pkg/config"
	"github.com/amirasaad/pesaflow/pkg/domain"
	"github.com/amirasaad/pesaflow/pkg/identity"
	"github.com/amirasaad/pesaflow/pkg/middleware"
	authsvc "github.com/amirasaad/pesaflow/pkg/service/auth"
	"github.com/amirasaad/pesaflow/pkg/session"
	"github.com/amirasaad/pesaflow/webapi/common"
	"github.com/gofiber/fiber/v2"
)

func Routes(app *fiber.App, authSvc *authsvc.Service, provider identity.Provider, cfg *config.Jwt) {
	protected := middleware.Protected(cfg, provider)
	app.Post("/auth/register", Register(authSvc))
	app.Post("/auth/login", Login(authSvc))
	app.Post("/auth/logout", protected, Logout(authSvc))
	app.Get("/auth/me", protected, Me(authSvc))
}

func tokenOf(sess *session.Session) TokenResponse {
	cred, _ := sess.Credential()
	resp := TokenResponse{Token: cred.Token}
	if !cred.ExpiresAt.IsZero() {
		resp.ExpiresAt = cred.ExpiresAt.Unix()
	}
	return resp
}

// Register creates an account, stores the profile and returns a token.
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 502 {object} common.ProblemDetails
// @Router /auth/register [post]
func Register(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[RegisterRequest](c)
		if input == nil {
			return err
		}
		sess := session.New()
		profile, err := authSvc.Register(c.UserContext(), sess, authsvc.RegisterInput{
			FirstName: input.FirstName,
			LastName:  input.LastName,
			Email:     input.Email,
			Password:  input.Password,
		})
		if err != nil {
			if domain.KindOf(err) == domain.KindStore {
				return common.ProblemDetailsJSON(c, "Database Error", err)
			}
			return common.ProblemDetailsJSON(c, "Registration failed", err)
		}
		resp := tokenOf(sess)
		resp.Profile = profile
		return common.SuccessResponseJSON(c, fiber.StatusCreated, app.MsgRegistered, resp)
	}
}

// Login handles user authentication and returns a JWT token.
// @Summary User login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Router /auth/login [post]
func Login(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[LoginRequest](c)
		if input == nil {
			return err
		}
		sess := session.New()
		if err := authSvc.Login(c.UserContext(), sess, authsvc.LoginInput{
			Email:    input.Email,
			Password: input.Password,
		}); err != nil {
			return common.ProblemDetailsJSON(c, "Login Failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, app.MsgLoggedIn, tokenOf(sess))
	}
}

// Logout revokes the bearer token.
// @Summary Logout
// @Tags auth
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /auth/logout [post]
// @Security Bearer
func Logout(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, ok := middleware.Session(c)
		if ok {
			authSvc.Logout(c.UserContext(), sess)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, app.MsgLoggedOut, nil)
	}
}

// Me returns the signed-in user's stored profile.
// @Summary Current user profile
// @Tags auth
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /auth/me [get]
// @Security Bearer
func Me(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, _ := middleware.Session(c)
		profile := authSvc.CurrentUserProfile(c.UserContext(), sess)
		if profile == nil {
			return common.ProblemDetailsJSON(c, "Profile not found", nil, fiber.StatusNotFound)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Profile found", profile)
	}
}
