package initializer

import (
	"bytes"
	"io"
	"testing"
	"time"

	infra_eventbus "github.com/amirasaad/pesaflow/infra/eventbus"
	"github.com/amirasaad/pesaflow/infra/identity/local"
	"github.com/amirasaad/pesaflow/infra/store/memory"
	"github.com/amirasaad/pesaflow/pkg/app"
	"github.com/amirasaad/pesaflow/pkg/config"
	"github.com/amirasaad/pesaflow/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.App {
	return &config.App{
		Env:      "test",
		Log:      &config.Log{Format: "text", TimeFormat: time.Kitchen},
		DB:       &config.DB{Driver: "memory"},
		Auth:     &config.Auth{Jwt: &config.Jwt{Secret: "0123456789abcdef-secret", Expiry: time.Hour}},
		EventBus: &config.EventBus{Driver: "memory"},
		Redis:    &config.Redis{},
		Kafka:    &config.Kafka{},
		Currency: &config.Currency{Code: "USD", Decimals: 2},
	}
}

func TestInitializeDependencies_Memory(t *testing.T) {
	deps, err := InitializeDependencies(testConfig(), io.Discard)
	require.NoError(t, err)
	t.Cleanup(func() { _ = deps.Close() })

	assert.IsType(t, &memory.Store{}, deps.Store)
	assert.IsType(t, &local.Provider{}, deps.Identity)
	assert.IsType(t, &infra_eventbus.MemoryEventBus{}, deps.EventBus)
	assert.Equal(t, money.USDCurrency, deps.Currency)
}

func TestInitializeDependencies_InvalidCurrency(t *testing.T) {
	cfg := testConfig()
	cfg.Currency.Code = "XX"

	deps, err := InitializeDependencies(cfg, io.Discard)
	require.Error(t, err)
	assert.Nil(t, deps)
}

func TestInitEventBus_MemoryAsync(t *testing.T) {
	cfg := testConfig()
	cfg.EventBus.Async = true
	deps := &app.Deps{Logger: NewLogger(cfg.Log, io.Discard)}

	bus, err := initEventBus(cfg, deps)
	require.NoError(t, err)
	assert.IsType(t, &infra_eventbus.MemoryAsyncEventBus{}, bus)
	require.Len(t, deps.Closers, 1)
	require.NoError(t, deps.Close())
}

func TestInitEventBus_RedisRequiresURL(t *testing.T) {
	cfg := testConfig()
	cfg.EventBus.Driver = "redis"
	deps := &app.Deps{Logger: NewLogger(cfg.Log, io.Discard)}

	_, err := initEventBus(cfg, deps)
	require.Error(t, err)
}

func TestInitEventBus_UnreachableRedisFallsBack(t *testing.T) {
	cfg := testConfig()
	cfg.EventBus.Driver = "redis"
	cfg.Redis = &config.Redis{URL: "redis://127.0.0.1:1/0", DialTimeout: 200 * time.Millisecond}
	deps := &app.Deps{Logger: NewLogger(cfg.Log, io.Discard)}

	bus, err := initEventBus(cfg, deps)
	require.NoError(t, err)
	assert.IsType(t, &infra_eventbus.MemoryAsyncEventBus{}, bus)
	require.NoError(t, deps.Close())
}

func TestInitEventBus_KafkaRequiresBrokers(t *testing.T) {
	cfg := testConfig()
	cfg.EventBus.Driver = "kafka"
	deps := &app.Deps{Logger: NewLogger(cfg.Log, io.Discard)}

	_, err := initEventBus(cfg, deps)
	require.Error(t, err)
}

func TestNewLogger_WritesToWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&config.Log{Format: "json", Prefix: "[test]"}, &buf)
	logger.Info("hello", "component", "initializer")

	assert.Contains(t, buf.String(), `"msg":"hello"`)
	assert.Contains(t, buf.String(), `"component":"initializer"`)
}
