package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/amirasaad/pesaflow/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "0123456789abcdef-secret")

	cfg, err := Load("does-not-exist.env")
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "memory", cfg.DB.Driver)
	assert.Equal(t, 24*time.Hour, cfg.Auth.Jwt.Expiry)
	assert.Equal(t, "memory", cfg.EventBus.Driver)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 100, cfg.RateLimit.MaxRequests)

	cur, err := cfg.Currency.Money()
	require.NoError(t, err)
	assert.Equal(t, money.KESCurrency, cur)
}

func TestLoad_FromEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env.custom")
	content := "AUTH_JWT_SECRET=from-file-0123456789\nAUTH_JWT_EXPIRY=2h\nCURRENCY_CODE=usd\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Setenv("AUTH_JWT_SECRET", "")
	require.NoError(t, os.Unsetenv("AUTH_JWT_SECRET"))
	t.Cleanup(func() {
		_ = os.Unsetenv("AUTH_JWT_EXPIRY")
		_ = os.Unsetenv("CURRENCY_CODE")
	})

	cfg, err := Load(".env.custom")
	require.NoError(t, err)
	assert.Equal(t, "from-file-0123456789", cfg.Auth.Jwt.Secret)
	assert.Equal(t, 2*time.Hour, cfg.Auth.Jwt.Expiry)

	cur, err := cfg.Currency.Money()
	require.NoError(t, err)
	assert.Equal(t, money.USDCurrency, cur)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")
	require.NoError(t, os.Unsetenv("AUTH_JWT_SECRET"))

	_, err := Load("does-not-exist.env")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *App {
		return &App{
			DB:       &DB{Driver: "memory"},
			Auth:     &Auth{Jwt: &Jwt{Secret: "0123456789abcdef"}},
			EventBus: &EventBus{Driver: "memory"},
			Currency: &Currency{Code: "KES", Decimals: 2},
		}
	}

	require.NoError(t, base().Validate())

	cfg := base()
	cfg.DB.Driver = "postgres"
	assert.ErrorContains(t, cfg.Validate(), "DATABASE_URL")

	cfg = base()
	cfg.DB.Driver = "sqlite"
	assert.ErrorContains(t, cfg.Validate(), "DATABASE_DRIVER")

	cfg = base()
	cfg.EventBus.Driver = "nats"
	assert.ErrorContains(t, cfg.Validate(), "EVENT_BUS_DRIVER")

	cfg = base()
	cfg.Auth.Jwt.Secret = "short"
	assert.ErrorContains(t, cfg.Validate(), "AUTH_JWT_SECRET")

	cfg = base()
	cfg.Currency.Code = "XX"
	assert.Error(t, cfg.Validate())
}

func TestMaskValue(t *testing.T) {
	assert.Equal(t, "****", maskValue("short"))
	assert.Equal(t, "po****5432", maskValue("postgres://u:p@h:5432"))
}

func TestFindEnvTest(t *testing.T) {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.test"), nil, 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(nested))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	found, err := FindEnvTest(".env.test")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".env.test"), found)

	_, err = FindEnvTest(".env.missing-file")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
