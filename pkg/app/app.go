package app

import (
	"errors"
	"log/slog"

	"github.com/amirasaad/pesaflow/pkg/config"
	"github.com/amirasaad/pesaflow/pkg/eventbus"
	"github.com/amirasaad/pesaflow/pkg/identity"
	"github.com/amirasaad/pesaflow/pkg/money"
	"github.com/amirasaad/pesaflow/pkg/service/auth"
	"github.com/amirasaad/pesaflow/pkg/service/transaction"
	"github.com/amirasaad/pesaflow/pkg/store"
)

// Deps contains the infrastructure the services are built from.
type Deps struct {
	Store    store.Store
	Identity identity.Provider
	EventBus eventbus.Bus
	Currency money.Currency
	Logger   *slog.Logger
	// Closers are shut down by the caller in reverse order on exit.
	Closers []func() error
}

// Close runs the closers in reverse registration order.
func (d *Deps) Close() error {
	var errs []error
	for i := len(d.Closers) - 1; i >= 0; i-- {
		if err := d.Closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	d.Closers = nil
	return errors.Join(errs...)
}

type App struct {
	Deps               *Deps
	Config             *config.App
	AuthService        *auth.Service
	TransactionService *transaction.Service
	Activity           *Activity
}

func New(deps *Deps, cfg *config.App) *App {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if !deps.Currency.IsValid() {
		deps.Currency = money.DefaultCurrency
	}
	app := &App{
		Deps:   deps,
		Config: cfg,
	}
	app.setupEventBus()

	app.AuthService = auth.New(deps.Identity, deps.Store, deps.EventBus, deps.Logger)
	app.TransactionService = transaction.New(
		deps.Store,
		deps.EventBus,
		deps.Logger,
		transaction.WithCurrency(deps.Currency),
	)
	return app
}
