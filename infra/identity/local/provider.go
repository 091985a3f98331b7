// Package local implements identity.Provider on top of the credential
// repository: bcrypt password hashes and HS256 JWTs.
package local

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	infra_credential "github.com/amirasaad/pesaflow/infra/repository/credential"
	"github.com/amirasaad/pesaflow/pkg/config"
	"github.com/amirasaad/pesaflow/pkg/domain"
	"github.com/amirasaad/pesaflow/pkg/dto"
	"github.com/amirasaad/pesaflow/pkg/identity"
	"github.com/amirasaad/pesaflow/pkg/repository/credential"
	"github.com/amirasaad/pesaflow/pkg/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidEmail       = errors.New("the email address is badly formatted")
	ErrWeakPassword       = errors.New("password should be at least 6 characters")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenRevoked       = errors.New("token has been revoked")
)

const minPasswordLength = 6

// dummyHash keeps unknown-email sign-ins as slow as wrong-password ones.
const dummyHash = "$2a$10$7zFqzDbD3RrlkMTczbXG9OWZ0FLOXjIxXzSZ.QZxkVXjXcx7QZQiC"

// Provider is the local identity provider.
type Provider struct {
	repo     credential.Repository
	cfg      *config.Jwt
	logger   *slog.Logger
	hashCost int
	now      func() time.Time
	revoked  credential.Revocations
}

var _ identity.Provider = (*Provider)(nil)

// Option configures a Provider.
type Option func(*Provider)

// WithHashCost sets the bcrypt cost for new passwords.
func WithHashCost(cost int) Option {
	return func(p *Provider) { p.hashCost = cost }
}

// WithClock replaces the time source used for token issue and expiry.
func WithClock(now func() time.Time) Option {
	return func(p *Provider) { p.now = now }
}

// WithRevocations shares signed-out token ids through r. Without it the
// provider keeps them in memory, visible to this process only.
func WithRevocations(r credential.Revocations) Option {
	return func(p *Provider) { p.revoked = r }
}

// New returns a provider persisting credentials in repo and signing tokens
// with cfg.
func New(repo credential.Repository, cfg *config.Jwt, logger *slog.Logger, opts ...Option) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Provider{
		repo:     repo,
		cfg:      cfg,
		logger:   logger.With("component", "identity"),
		hashCost: utils.DefaultHashCost,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.revoked == nil {
		p.revoked = infra_credential.NewMemoryRevocations(p.now)
	}
	return p
}

func (p *Provider) CreateAccount(ctx context.Context, email, password string) (identity.Credential, error) {
	log := p.logger.With("context", "CreateAccount", "email", email)
	log.Debug("CreateAccount called")

	email = strings.TrimSpace(email)
	if !utils.IsEmail(email) {
		return identity.Credential{}, ErrInvalidEmail
	}
	if len(password) < minPasswordLength {
		return identity.Credential{}, ErrWeakPassword
	}

	exists, err := p.repo.ExistsByEmail(ctx, email)
	if err != nil {
		log.Error("CreateAccount failed", "error", err)
		return identity.Credential{}, err
	}
	if exists {
		return identity.Credential{}, ErrEmailInUse
	}

	hash, err := utils.HashPasswordWithCost(password, p.hashCost)
	if err != nil {
		return identity.Credential{}, fmt.Errorf("hash password: %w", err)
	}
	userID := uuid.New()
	err = p.repo.Create(ctx, &dto.CredentialCreate{
		UserID:       userID,
		Email:        email,
		PasswordHash: hash,
	})
	if errors.Is(err, domain.ErrAlreadyExists) {
		return identity.Credential{}, ErrEmailInUse
	}
	if err != nil {
		log.Error("CreateAccount failed", "error", err)
		return identity.Credential{}, err
	}

	log.Info("CreateAccount successful", "userID", userID)
	return p.issue(userID.String(), strings.ToLower(email))
}

func (p *Provider) SignIn(ctx context.Context, email, password string) (identity.Credential, error) {
	log := p.logger.With("context", "SignIn", "email", email)
	log.Debug("SignIn called")

	cred, err := p.repo.GetByEmail(ctx, email)
	if err != nil {
		log.Error("SignIn failed", "error", err)
		return identity.Credential{}, err
	}
	if cred == nil {
		// Always check password hash to avoid timing attacks
		_ = utils.CheckPasswordHash(password, dummyHash)
		log.Error("SignIn failed", "error", ErrInvalidCredentials)
		return identity.Credential{}, ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(password, cred.PasswordHash) {
		log.Error("SignIn failed", "error", ErrInvalidCredentials)
		return identity.Credential{}, ErrInvalidCredentials
	}

	log.Info("SignIn successful", "userID", cred.UserID)
	return p.issue(cred.UserID.String(), cred.Email)
}

func (p *Provider) SignOut(ctx context.Context, cred identity.Credential) error {
	if cred.Token == "" {
		return nil
	}
	claims, err := p.parse(cred.Token, jwt.WithoutClaimsValidation())
	if err != nil {
		// An unparseable token grants nothing, so there is nothing to revoke.
		p.logger.Warn("SignOut with unusable token", "error", err)
		return nil
	}
	jti, _ := claims["jti"].(string)
	exp, _ := claims.GetExpirationTime()
	expiry := p.now().Add(p.cfg.Expiry)
	if exp != nil {
		expiry = exp.Time
	}
	if err := p.revoked.Revoke(ctx, jti, expiry); err != nil {
		p.logger.Error("SignOut failed", "error", err)
		return fmt.Errorf("revoke token: %w", err)
	}
	p.logger.Info("SignOut successful", "userID", claims["user_id"])
	return nil
}

func (p *Provider) Verify(ctx context.Context, token string) (identity.Credential, error) {
	claims, err := p.parse(token)
	if err != nil {
		return identity.Credential{}, ErrInvalidToken
	}
	jti, _ := claims["jti"].(string)
	revoked, err := p.revoked.IsRevoked(ctx, jti)
	if err != nil {
		p.logger.Error("Verify failed", "error", err)
		return identity.Credential{}, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return identity.Credential{}, ErrTokenRevoked
	}
	return credentialFromClaims(claims, token)
}

func (p *Provider) issue(userID, email string) (identity.Credential, error) {
	now := p.now()
	expiresAt := now.Add(p.cfg.Expiry)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"jti":     uuid.NewString(),
		"iat":     now.Unix(),
		"exp":     expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte(p.cfg.Secret))
	if err != nil {
		return identity.Credential{}, fmt.Errorf("sign token: %w", err)
	}
	return identity.Credential{
		UserID:    userID,
		Email:     email,
		Token:     signed,
		ExpiresAt: time.Unix(expiresAt.Unix(), 0).UTC(),
	}, nil
}

func (p *Provider) parse(token string, opts ...jwt.ParserOption) (jwt.MapClaims, error) {
	opts = append(opts,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(p.now),
	)
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return []byte(p.cfg.Secret), nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func credentialFromClaims(claims jwt.MapClaims, token string) (identity.Credential, error) {
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return identity.Credential{}, ErrInvalidToken
	}
	email, _ := claims["email"].(string)
	cred := identity.Credential{UserID: userID, Email: email, Token: token}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		cred.ExpiresAt = exp.Time
	}
	return cred, nil
}
