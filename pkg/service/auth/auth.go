// Package auth is the session manager: it registers and signs users in
// through the identity provider, persists their profile in the store and
// answers who is signed in on a session.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/amirasaad/pesaflow/pkg/domain"
	"github.com/amirasaad/pesaflow/pkg/domain/events"
	"github.com/amirasaad/pesaflow/pkg/domain/user"
	"github.com/amirasaad/pesaflow/pkg/eventbus"
	"github.com/amirasaad/pesaflow/pkg/identity"
	"github.com/amirasaad/pesaflow/pkg/session"
	"github.com/amirasaad/pesaflow/pkg/store"
	"github.com/amirasaad/pesaflow/pkg/validate"
	"golang.org/x/sync/singleflight"
)

// Validation messages shown to the user as-is.
const (
	MsgRegisterFieldsRequired = "Please fill all the fields"
	MsgLoginFieldsRequired    = "Email and password required"
)

// RegisterInput is the sign-up form. Every field is required.
type RegisterInput struct {
	FirstName string `json:"firstName" validate:"notblank"`
	LastName  string `json:"lastName" validate:"notblank"`
	Email     string `json:"email" validate:"notblank"`
	Password  string `json:"password" validate:"notblank"`
}

// LoginInput is the sign-in form.
type LoginInput struct {
	Email    string `json:"email" validate:"notblank"`
	Password string `json:"password" validate:"notblank"`
}

type Service struct {
	provider identity.Provider
	store    store.Store
	bus      eventbus.Bus
	logger   *slog.Logger
	profiles singleflight.Group
}

// New builds the session manager. bus may be nil.
func New(
	provider identity.Provider,
	st store.Store,
	bus eventbus.Bus,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{provider: provider, store: st, bus: bus, logger: logger}
}

// Register creates the account, signs the session in and writes the
// profile to users/{userId}. When the profile write fails the session stays
// signed in and a store error is returned.
func (s *Service) Register(
	ctx context.Context,
	sess *session.Session,
	in RegisterInput,
) (*user.Profile, error) {
	log := s.logger.With("context", "Register")
	log.Debug("Register called", "email", in.Email)

	if _, err := validate.Struct(in); err != nil {
		log.Debug("Register rejected", "error", err)
		return nil, domain.NewValidationError(MsgRegisterFieldsRequired)
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))

	cred, err := s.provider.CreateAccount(ctx, email, in.Password)
	if err != nil {
		log.Error("CreateAccount failed", "email", email, "error", err)
		return nil, domain.NewAuthError(err)
	}
	sess.Authenticate(cred)

	profile := user.NewProfile(cred.UserID, email, in.FirstName, in.LastName)
	if err := s.writeProfile(ctx, profile); err != nil {
		log.Error("Saving profile failed", "userID", cred.UserID, "error", err)
		return nil, domain.NewStoreError(err)
	}

	s.emit(ctx, events.NewUserRegistered(cred.UserID, email))
	log.Info("Register successful", "userID", cred.UserID)
	return profile, nil
}

func (s *Service) writeProfile(ctx context.Context, p *user.Profile) error {
	path, err := store.UserPath(p.UserID)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	return s.store.Write(ctx, path, raw)
}

// Login signs the session in with email and password.
func (s *Service) Login(ctx context.Context, sess *session.Session, in LoginInput) error {
	log := s.logger.With("context", "Login")
	log.Debug("Login called", "email", in.Email)

	if _, err := validate.Struct(in); err != nil {
		return domain.NewValidationError(MsgLoginFieldsRequired)
	}
	email := strings.TrimSpace(in.Email)

	cred, err := s.provider.SignIn(ctx, email, in.Password)
	if err != nil {
		log.Error("Login failed", "email", email, "error", err)
		return domain.NewAuthError(err)
	}
	sess.Authenticate(cred)

	s.emit(ctx, events.NewUserLoggedIn(cred.UserID, email))
	log.Info("Login successful", "userID", cred.UserID)
	return nil
}

// Logout clears the session. It never fails and leaves an anonymous
// session untouched. Live subscriptions owned by the session stay open.
func (s *Service) Logout(ctx context.Context, sess *session.Session) {
	log := s.logger.With("context", "Logout")
	cred, had := sess.Clear()
	if !had {
		log.Debug("Logout on anonymous session")
		return
	}
	if err := s.provider.SignOut(ctx, cred); err != nil {
		log.Warn("SignOut failed", "userID", cred.UserID, "error", err)
	}
	s.emit(ctx, events.NewUserLoggedOut(cred.UserID))
	log.Info("Logout successful", "userID", cred.UserID)
}

// IsLoggedIn reports whether sess is authenticated.
func (s *Service) IsLoggedIn(sess *session.Session) bool {
	return sess != nil && sess.IsAuthenticated()
}

// CurrentUserProfile reads the signed-in user's profile. It returns nil
// when the session is anonymous, the profile is absent or the read fails.
// Failures are logged, not returned.
func (s *Service) CurrentUserProfile(ctx context.Context, sess *session.Session) *user.Profile {
	if !s.IsLoggedIn(sess) {
		return nil
	}
	uid := sess.UserID()
	log := s.logger.With("context", "CurrentUserProfile", "userID", uid)

	v, err, _ := s.profiles.Do(uid, func() (any, error) {
		return s.readProfile(ctx, uid)
	})
	if err != nil {
		log.Error("Fetching profile failed", "error", err)
		return nil
	}
	profile, _ := v.(*user.Profile)
	if profile == nil {
		log.Debug("No profile stored")
		return nil
	}
	cp := *profile
	return &cp
}

func (s *Service) readProfile(ctx context.Context, uid string) (*user.Profile, error) {
	path, err := store.UserPath(uid)
	if err != nil {
		return nil, err
	}
	raw, err := s.store.Read(ctx, path)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	var p user.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &p, nil
}

func (s *Service) emit(ctx context.Context, e events.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Emit(ctx, e); err != nil {
		s.logger.Warn("emitting event failed", "type", e.Type(), "error", err)
	}
}
