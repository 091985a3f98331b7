// Package testutils provides an in-memory API suite for handler tests.
package testutils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/amirasaad/pesaflow/infra/eventbus"
	"github.com/amirasaad/pesaflow/infra/identity/local"
	"github.com/amirasaad/pesaflow/infra/repository/credential"
	"github.com/amirasaad/pesaflow/infra/store/memory"
	"github.com/amirasaad/pesaflow/pkg/app"
	"github.com/amirasaad/pesaflow/pkg/config"
	"github.com/amirasaad/pesaflow/pkg/money"
	"github.com/amirasaad/pesaflow/webapi"
	"github.com/amirasaad/pesaflow/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

// Password is used for every user created by the suite.
const Password = "password123"

// APITestSuite runs handlers against the in-memory store and a local
// identity provider.
type APITestSuite struct {
	suite.Suite
	App   *app.App
	Fiber *fiber.App
	Store *memory.Store
	Cfg   *config.App
}

func (s *APITestSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.Cfg = &config.App{
		Env:       "test",
		Auth:      &config.Auth{Jwt: &config.Jwt{Secret: "api-test-secret-0123456789", Expiry: time.Hour}},
		RateLimit: &config.RateLimit{MaxRequests: 1000, Window: time.Minute},
	}
	s.Store = memory.New(logger)
	s.App = app.New(&app.Deps{
		Store:    s.Store,
		Identity: local.New(credential.NewMemory(), s.Cfg.Auth.Jwt, logger, local.WithHashCost(bcrypt.MinCost)),
		EventBus: eventbus.NewWithMemory(logger),
		Currency: money.KESCurrency,
		Logger:   logger,
	}, s.Cfg)
	s.Fiber = webapi.SetupApp(s.App)
}

func (s *APITestSuite) TearDownTest() {
	_ = s.Store.Close()
}

// MakeRequest is a helper for making HTTP requests in tests
func (s *APITestSuite) MakeRequest(method, path, body, token string) *http.Response {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.Fiber.Test(req, 5000)
	s.Require().NoError(err)
	return resp
}

// Decode reads a Response envelope and closes the body.
func (s *APITestSuite) Decode(resp *http.Response) common.Response {
	defer resp.Body.Close() //nolint: errcheck
	var out common.Response
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// Problem reads a ProblemDetails body and closes it.
func (s *APITestSuite) Problem(resp *http.Response) common.ProblemDetails {
	defer resp.Body.Close() //nolint: errcheck
	var out common.ProblemDetails
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// RegisterUser registers a fresh user over HTTP and returns its token and id.
func (s *APITestSuite) RegisterUser() (token, userID string) {
	email := fmt.Sprintf("test_%s@example.com", uuid.NewString()[:8])
	body := fmt.Sprintf(`{"firstname":"Test","lastname":"User","email":%q,"password":%q}`, email, Password)
	resp := s.MakeRequest(http.MethodPost, "/auth/register", body, "")
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)

	data, ok := s.Decode(resp).Data.(map[string]any)
	s.Require().True(ok)
	token, _ = data["token"].(string)
	s.Require().NotEmpty(token)
	profile, _ := data["profile"].(map[string]any)
	userID, _ = profile["userId"].(string)
	s.Require().NotEmpty(userID)
	return token, userID
}
