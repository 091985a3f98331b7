// Package initializer builds the infrastructure behind the app from config.
package initializer

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/amirasaad/pesaflow/infra"
	infra_eventbus "github.com/amirasaad/pesaflow/infra/eventbus"
	"github.com/amirasaad/pesaflow/infra/identity/local"
	"github.com/amirasaad/pesaflow/infra/migrations"
	infra_credential "github.com/amirasaad/pesaflow/infra/repository/credential"
	"github.com/amirasaad/pesaflow/infra/store/gormstore"
	"github.com/amirasaad/pesaflow/infra/store/memory"
	"github.com/amirasaad/pesaflow/pkg/app"
	"github.com/amirasaad/pesaflow/pkg/config"
	"github.com/amirasaad/pesaflow/pkg/eventbus"
	"github.com/amirasaad/pesaflow/pkg/repository/credential"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InitializeDependencies builds the store, identity provider and event bus
// selected by cfg. Logs go to logOut (stdout when nil). Callers must run
// deps.Close when done.
func InitializeDependencies(cfg *config.App, logOut io.Writer) (deps *app.Deps, err error) {
	logger := NewLogger(cfg.Log, logOut)
	deps = &app.Deps{Logger: logger}
	defer func() {
		if err != nil {
			_ = deps.Close()
			deps = nil
		}
	}()

	if deps.Currency, err = cfg.Currency.Money(); err != nil {
		return deps, fmt.Errorf("currency: %w", err)
	}

	var (
		creds   credential.Repository
		revoked credential.Revocations
	)
	switch cfg.DB.Driver {
	case "postgres":
		creds, revoked, err = initPostgres(cfg, deps)
		if err != nil {
			return deps, err
		}
	default:
		mem := memory.New(logger)
		deps.Store = mem
		deps.Closers = append(deps.Closers, mem.Close)
		creds = infra_credential.NewMemory()
		revoked = infra_credential.NewMemoryRevocations(nil)
	}
	deps.Identity = local.New(creds, cfg.Auth.Jwt, logger, local.WithRevocations(revoked))

	if deps.EventBus, err = initEventBus(cfg, deps); err != nil {
		return deps, err
	}

	logger.Info("dependencies initialized",
		"store", cfg.DB.Driver,
		"eventBus", cfg.EventBus.Driver,
		"currency", deps.Currency.String(),
	)
	return deps, nil
}

func initPostgres(cfg *config.App, deps *app.Deps) (credential.Repository, credential.Revocations, error) {
	logger := deps.Logger
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("failed to initialize database", "error", err)
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	deps.Closers = append(deps.Closers, sqlDB.Close)

	if err := migrations.Up(sqlDB); err != nil {
		return nil, nil, fmt.Errorf("apply migrations: %w", err)
	}

	st := gormstore.New(db, logger)
	deps.Store = st
	deps.Closers = append(deps.Closers, st.Close)

	pool, err := pgxpool.New(context.Background(), cfg.DB.Url)
	if err != nil {
		return nil, nil, fmt.Errorf("listener pool: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := gormstore.NewListener(pool, st, logger).Run(ctx); err != nil {
			logger.Warn("store listener exited; cross-process updates disabled", "error", err)
		}
	}()
	deps.Closers = append(deps.Closers, func() error {
		cancel()
		<-done
		pool.Close()
		return nil
	})

	return infra_credential.New(db), infra_credential.NewRevocations(db), nil
}

// initEventBus falls back to the in-process async bus when a remote broker
// is unreachable at startup.
func initEventBus(cfg *config.App, deps *app.Deps) (eventbus.Bus, error) {
	logger := deps.Logger
	switch cfg.EventBus.Driver {
	case "redis":
		if cfg.Redis == nil || cfg.Redis.URL == "" {
			return nil, errors.New("REDIS_URL is required for the redis event bus")
		}
		bus, err := infra_eventbus.NewWithRedis(cfg.Redis, logger)
		if err != nil {
			logger.Warn("redis event bus unavailable, using in-process bus", "error", err)
			break
		}
		deps.Closers = append(deps.Closers, bus.Close)
		return bus, nil
	case "kafka":
		if cfg.Kafka == nil || len(cfg.Kafka.Brokers) == 0 {
			return nil, errors.New("KAFKA_BROKERS is required for the kafka event bus")
		}
		bus, err := infra_eventbus.NewWithKafka(cfg.Kafka, logger)
		if err != nil {
			logger.Warn("kafka event bus unavailable, using in-process bus", "error", err)
			break
		}
		deps.Closers = append(deps.Closers, bus.Close)
		return bus, nil
	default:
		if !cfg.EventBus.Async {
			return infra_eventbus.NewWithMemory(logger), nil
		}
	}
	bus := infra_eventbus.NewWithMemoryAsync(logger)
	deps.Closers = append(deps.Closers, bus.Close)
	return bus, nil
}
