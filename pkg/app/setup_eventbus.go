// Package app wires the services together and exposes the caller-facing
// flows used by the CLI and the HTTP API.
package app

import (
	"context"
	"log/slog"
	"sync"

	"github.com/amirasaad/pesaflow/pkg/domain/events"
	"github.com/amirasaad/pesaflow/pkg/eventbus"
)

// Activity keeps per-user counters of the events seen on the bus and logs
// each one.
type Activity struct {
	mu     sync.RWMutex
	counts map[string]map[events.EventType]int
	logger *slog.Logger
}

func newActivity(logger *slog.Logger) *Activity {
	return &Activity{
		counts: make(map[string]map[events.EventType]int),
		logger: logger.With("handler", "activity"),
	}
}

// Count reports how many events of type t were seen for userID.
func (a *Activity) Count(userID string, t events.EventType) int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.counts[userID][t]
}

func (a *Activity) handle(_ context.Context, e events.Event) error {
	var userID string
	if o, ok := e.(interface{ Owner() string }); ok {
		userID = o.Owner()
	}
	a.mu.Lock()
	byType, ok := a.counts[userID]
	if !ok {
		byType = make(map[events.EventType]int)
		a.counts[userID] = byType
	}
	byType[e.Type()]++
	a.mu.Unlock()

	a.logger.Info("activity", "type", e.Type(), "userID", userID)
	return nil
}

// setupEventBus registers the activity handler for every event type.
func (a *App) setupEventBus() {
	a.Activity = newActivity(a.Deps.Logger)
	bus := a.Deps.EventBus
	if bus == nil {
		return
	}
	registerAll(bus, a.Activity.handle)
}

func registerAll(bus eventbus.Bus, h eventbus.HandlerFunc) {
	for t := range events.EventTypes {
		bus.Register(t, h)
	}
}
