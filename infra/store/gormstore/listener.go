package gormstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/amirasaad/pesaflow/pkg/store"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Refresher is notified of changes committed by other processes.
type Refresher interface {
	Refresh(ctx context.Context, p store.Path)
}

// Listener holds a dedicated connection in LISTEN mode and forwards foreign
// change notifications to a Refresher.
type Listener struct {
	pool     *pgxpool.Pool
	channel  string
	instance string
	target   Refresher
	logger   *slog.Logger
}

// NewListener forwards notifications on s's channel, skipping those s
// published itself.
func NewListener(pool *pgxpool.Pool, s *Store, logger *slog.Logger) *Listener {
	if logger == nil {
		logger = slog.Default()
	}
	return &Listener{
		pool:     pool,
		channel:  s.Channel(),
		instance: s.Instance(),
		target:   s,
		logger:   logger.With("component", "pg-listener", "channel", s.Channel()),
	}
}

// Run blocks until ctx is cancelled or the connection fails.
func (l *Listener) Run(ctx context.Context) error {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire listener connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{l.channel}.Sanitize()); err != nil {
		return fmt.Errorf("listen %s: %w", l.channel, err)
	}
	l.logger.Info("listening for store changes")

	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			if errors.Is(ctx.Err(), context.Canceled) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return nil
			}
			l.logger.Error("listener stopped", "error", err)
			return fmt.Errorf("wait for notification: %w", err)
		}
		l.handle(ctx, n.Payload)
	}
}

func (l *Listener) handle(ctx context.Context, payload string) {
	origin, p, ok := decodePayload(payload)
	if !ok {
		l.logger.Warn("ignoring malformed notification", "payload", payload)
		return
	}
	if origin == l.instance {
		return
	}
	l.logger.Debug("foreign change", "path", p, "origin", origin)
	l.target.Refresh(ctx, p)
}
