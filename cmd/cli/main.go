// Command cli is an interactive PesaFlow client over the configured store.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/amirasaad/pesaflow/infra/initializer"
	"github.com/amirasaad/pesaflow/pkg/app"
	"github.com/amirasaad/pesaflow/pkg/config"
	"github.com/amirasaad/pesaflow/pkg/notify"
	log "github.com/charmbracelet/log"
	"golang.org/x/term"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}
	// Keep the prompt readable: only warnings and errors reach the terminal.
	if cfg.Log.Level < int(log.WarnLevel) {
		cfg.Log.Level = int(log.WarnLevel)
	}
	cfg.Log.Format = "text"

	deps, err := initializer.InitializeDependencies(cfg, os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer deps.Close() //nolint: errcheck

	a := app.New(deps, cfg)
	flows := a.Flows(notify.Multi{notify.NewConsole(os.Stdout), notify.NewLog(deps.Logger)})

	var password func() (string, error)
	if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
		password = func() (string, error) {
			b, err := term.ReadPassword(fd)
			return string(b), err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Println("PesaFlow. Type help for commands.")
	return newShell(a, flows, os.Stdin, os.Stdout, password).Run(ctx)
}
