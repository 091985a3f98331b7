// Package store defines the contract of the hierarchical document store the
// adapters persist to: key-addressed nodes holding JSON values, organised in
// nested collections, with point reads and writes and live subscriptions
// that deliver the full collection on every change.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"io"
)

// ErrClosed is returned by operations on a store that has been shut down.
var ErrClosed = errors.New("store closed")

// Store is the hierarchical store contract.
type Store interface {
	// Write replaces the value at p. No merge is performed.
	Write(ctx context.Context, p Path, value json.RawMessage) error
	// Read returns the value at p, or nil when nothing is stored there.
	Read(ctx context.Context, p Path) (json.RawMessage, error)
	// List returns the direct children of the collection at p once.
	List(ctx context.Context, p Path) (*Snapshot, error)
	// Delete removes the node at p and everything beneath it. Deleting an
	// absent node is not an error.
	Delete(ctx context.Context, p Path) error
	// Subscribe opens a live subscription on the collection at p.
	Subscribe(ctx context.Context, p Path) (Subscription, error)
	// NewKey returns a fresh, time-ordered unique key for a child of p.
	NewKey(p Path) string
}

// Child is one entry of a collection snapshot.
type Child struct {
	Key   string
	Value json.RawMessage
}

// Snapshot is the full content of a collection at one point in time.
type Snapshot struct {
	Path     Path
	Children []Child
}

// Len returns the number of children.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Children)
}

// Event is one delivery of a subscription. A non-nil Err is terminal.
type Event struct {
	Snapshot *Snapshot
	Err      error
}

// Subscription is a standing registration on a collection. The first event
// is the current content; every later event is a full snapshot taken after
// a change. Close deregisters the listener and is safe to call repeatedly.
type Subscription interface {
	io.Closer
	Events() <-chan Event
}
