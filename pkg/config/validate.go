package config

import (
	"errors"
	"fmt"

	"github.com/amirasaad/pesaflow/pkg/money"
)

// Validate checks cross-field constraints envconfig cannot express.
func (a *App) Validate() error {
	var errs []error
	switch a.DB.Driver {
	case "memory":
	case "postgres":
		if a.DB.Url == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported DATABASE_DRIVER %q", a.DB.Driver))
	}
	switch a.EventBus.Driver {
	case "memory", "redis", "kafka":
	default:
		errs = append(errs, fmt.Errorf("unsupported EVENT_BUS_DRIVER %q", a.EventBus.Driver))
	}
	if len(a.Auth.Jwt.Secret) < 16 {
		errs = append(errs, errors.New("AUTH_JWT_SECRET must be at least 16 characters"))
	}
	if _, err := a.Currency.Money(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Money returns the configured display currency.
func (c *Currency) Money() (money.Currency, error) {
	return money.NewCurrency(c.Code, c.Decimals)
}
