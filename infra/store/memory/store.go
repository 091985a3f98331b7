// Package memory provides an in-process implementation of store.Store used by
// tests, the CLI demo mode and local development.
package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/amirasaad/pesaflow/pkg/store"
)

// Store keeps every written node in a flat path-indexed map.
type Store struct {
	mu     sync.RWMutex
	nodes  map[store.Path]json.RawMessage
	closed bool

	feed   *store.Feed
	logger *slog.Logger
}

var _ store.Store = (*Store)(nil)

// New creates an empty in-memory store.
func New(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		nodes:  make(map[store.Path]json.RawMessage),
		logger: logger.With("store", "memory"),
	}
	s.feed = store.NewFeed(s.List, s.logger)
	return s
}

// Write replaces the subtree at p with value. Writing a JSON null deletes.
func (s *Store) Write(ctx context.Context, p store.Path, value json.RawMessage) error {
	if isNull(value) {
		return s.Delete(ctx, p)
	}
	if !json.Valid(value) {
		return fmt.Errorf("memory: invalid JSON value at %s", p)
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return store.ErrClosed
	}
	s.dropSubtree(p)
	for a := p.Parent(); a != ""; a = a.Parent() {
		delete(s.nodes, a)
	}
	s.nodes[p] = bytes.Clone(value)
	s.mu.Unlock()

	s.feed.Notify(ctx, p)
	return nil
}

// Read returns the value at p. A collection without its own value is
// assembled from its descendants.
func (s *Store) Read(_ context.Context, p store.Path) (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, store.ErrClosed
	}
	return s.assemble(p)
}

// List returns the direct children of p sorted by key.
func (s *Store) List(_ context.Context, p store.Path) (*store.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, store.ErrClosed
	}

	keys := make(map[string]struct{})
	prefix := string(p) + "/"
	for q := range s.nodes {
		rest, ok := strings.CutPrefix(string(q), prefix)
		if !ok {
			continue
		}
		key, _, _ := strings.Cut(rest, "/")
		keys[key] = struct{}{}
	}

	snap := &store.Snapshot{Path: p, Children: make([]store.Child, 0, len(keys))}
	for key := range keys {
		child := store.Path(prefix + key)
		value, err := s.assemble(child)
		if err != nil {
			return nil, err
		}
		snap.Children = append(snap.Children, store.Child{Key: key, Value: value})
	}
	sort.Slice(snap.Children, func(i, j int) bool {
		return snap.Children[i].Key < snap.Children[j].Key
	})
	return snap, nil
}

// Delete removes p and everything beneath it.
func (s *Store) Delete(ctx context.Context, p store.Path) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return store.ErrClosed
	}
	removed := s.dropSubtree(p)
	s.mu.Unlock()

	if removed {
		s.feed.Notify(ctx, p)
	}
	return nil
}

// Subscribe opens a live subscription on the collection at p.
func (s *Store) Subscribe(ctx context.Context, p store.Path) (store.Subscription, error) {
	s.mu.RLock()
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		return nil, store.ErrClosed
	}
	return s.feed.Subscribe(ctx, p)
}

// NewKey returns a fresh push key.
func (s *Store) NewKey(store.Path) string {
	return store.NewPushKey()
}

// Listeners reports the number of open subscriptions.
func (s *Store) Listeners() int {
	return s.feed.Listeners()
}

// Close ends every subscription with store.ErrClosed and rejects further use.
func (s *Store) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.feed.Close()
	return nil
}

// dropSubtree must be called with mu held.
func (s *Store) dropSubtree(p store.Path) bool {
	removed := false
	for q := range s.nodes {
		if p.Contains(q) {
			delete(s.nodes, q)
			removed = true
		}
	}
	return removed
}

// assemble must be called with mu held.
func (s *Store) assemble(p store.Path) (json.RawMessage, error) {
	if v, ok := s.nodes[p]; ok {
		return bytes.Clone(v), nil
	}
	obj := make(map[string]json.RawMessage)
	prefix := string(p) + "/"
	for q := range s.nodes {
		rest, ok := strings.CutPrefix(string(q), prefix)
		if !ok {
			continue
		}
		key, _, _ := strings.Cut(rest, "/")
		if _, seen := obj[key]; seen {
			continue
		}
		v, err := s.assemble(store.Path(prefix + key))
		if err != nil {
			return nil, err
		}
		obj[key] = v
	}
	if len(obj) == 0 {
		return nil, nil
	}
	return json.Marshal(obj)
}

func isNull(v json.RawMessage) bool {
	t := bytes.TrimSpace(v)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}
