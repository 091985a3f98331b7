// Package gormstore implements store.Store on a postgres table through gorm.
// Every mutation is announced with pg_notify so that subscribers served by
// other processes observe it through a Listener.
package gormstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/amirasaad/pesaflow/infra/repository"
	"github.com/amirasaad/pesaflow/pkg/store"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultChannel is the NOTIFY channel carrying changed paths.
const DefaultChannel = "pesaflow_nodes"

// Store is the postgres-backed hierarchical store.
type Store struct {
	db       *gorm.DB
	feed     *store.Feed
	logger   *slog.Logger
	channel  string
	instance string
}

var _ store.Store = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithChannel overrides the NOTIFY channel.
func WithChannel(channel string) Option {
	return func(s *Store) { s.channel = channel }
}

// New returns a store over db. The nodes table must already exist.
func New(db *gorm.DB, logger *slog.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		db:       db,
		logger:   logger.With("store", "postgres"),
		channel:  DefaultChannel,
		instance: uuid.NewString(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.feed = store.NewFeed(s.List, s.logger)
	return s
}

// Channel returns the NOTIFY channel name.
func (s *Store) Channel() string { return s.channel }

// Instance identifies this process in notification payloads.
func (s *Store) Instance() string { return s.instance }

// Write replaces the subtree at p with value.
func (s *Store) Write(ctx context.Context, p store.Path, value json.RawMessage) error {
	if v := strings.TrimSpace(string(value)); v == "" || v == "null" {
		return s.Delete(ctx, p)
	}
	if !json.Valid(value) {
		return fmt.Errorf("gormstore: invalid JSON value at %s", p)
	}
	node := Node{Path: string(p), Parent: string(p.Parent()), Key: p.Key(), Value: string(value)}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stale := tx.Where("path LIKE ?", descendants(p))
		if up := ancestors(p); len(up) > 0 {
			stale = stale.Or("path IN ?", up)
		}
		if err := stale.Delete(&Node{}).Error; err != nil {
			return err
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "path"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&node).Error; err != nil {
			return err
		}
		return s.announce(tx, p)
	})
	if err != nil {
		s.logger.Error("write failed", "path", p, "error", err)
		return fmt.Errorf("write %s: %w", p, repository.MapGormErrorToDomain(err))
	}
	s.feed.Notify(ctx, p)
	return nil
}

// Read returns the value at p, assembling collections from their children.
func (s *Store) Read(ctx context.Context, p store.Path) (json.RawMessage, error) {
	var nodes []Node
	if err := s.db.WithContext(ctx).
		Where("path = ?", string(p)).
		Limit(1).
		Find(&nodes).Error; err != nil {
		return nil, fmt.Errorf("read %s: %w", p, repository.MapGormErrorToDomain(err))
	}
	if len(nodes) == 1 {
		return json.RawMessage(nodes[0].Value), nil
	}

	snap, err := s.List(ctx, p)
	if err != nil {
		return nil, err
	}
	if snap.Len() == 0 {
		return nil, nil
	}
	return objectOf(snap.Children)
}

// List returns the direct children of p ordered by key.
func (s *Store) List(ctx context.Context, p store.Path) (*store.Snapshot, error) {
	var nodes []Node
	if err := s.db.WithContext(ctx).
		Where("path LIKE ?", descendants(p)).
		Order("path").
		Find(&nodes).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", p, repository.MapGormErrorToDomain(err))
	}
	children, err := assemble(string(p), nodes)
	if err != nil {
		return nil, err
	}
	return &store.Snapshot{Path: p, Children: children}, nil
}

// Delete removes p and its subtree.
func (s *Store) Delete(ctx context.Context, p store.Path) error {
	var removed int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("path = ?", string(p)).
			Or("path LIKE ?", descendants(p)).
			Delete(&Node{})
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected
		if removed == 0 {
			return nil
		}
		return s.announce(tx, p)
	})
	if err != nil {
		s.logger.Error("delete failed", "path", p, "error", err)
		return fmt.Errorf("delete %s: %w", p, repository.MapGormErrorToDomain(err))
	}
	if removed > 0 {
		s.feed.Notify(ctx, p)
	}
	return nil
}

// Subscribe opens a live subscription on the collection at p.
func (s *Store) Subscribe(ctx context.Context, p store.Path) (store.Subscription, error) {
	return s.feed.Subscribe(ctx, p)
}

// NewKey returns a fresh push key.
func (s *Store) NewKey(store.Path) string {
	return store.NewPushKey()
}

// Refresh redelivers every subscription affected by a change at p. The
// Listener calls it for changes committed by other processes.
func (s *Store) Refresh(ctx context.Context, p store.Path) {
	s.feed.Notify(ctx, p)
}

// Close ends every subscription with store.ErrClosed.
func (s *Store) Close() error {
	s.feed.Close()
	return nil
}

// announce queues a notification delivered when tx commits.
func (s *Store) announce(tx *gorm.DB, p store.Path) error {
	return tx.Exec("SELECT pg_notify(?, ?)", s.channel, encodePayload(s.instance, p)).Error
}

func encodePayload(instance string, p store.Path) string {
	return instance + "|" + string(p)
}

func decodePayload(payload string) (string, store.Path, bool) {
	instance, path, ok := strings.Cut(payload, "|")
	if !ok || path == "" {
		return "", "", false
	}
	return instance, store.Path(path), true
}

// descendants is the LIKE pattern matching everything beneath p.
func descendants(p store.Path) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(string(p)) + "/%"
}

func ancestors(p store.Path) []string {
	var out []string
	for a := p.Parent(); a != ""; a = a.Parent() {
		out = append(out, string(a))
	}
	return out
}

// assemble groups descendant rows of base into its direct children.
func assemble(base string, nodes []Node) ([]store.Child, error) {
	prefix := base + "/"
	groups := make(map[string][]Node)
	leaves := make(map[string]json.RawMessage)
	for _, n := range nodes {
		rest, ok := strings.CutPrefix(n.Path, prefix)
		if !ok {
			continue
		}
		key, deeper, nested := strings.Cut(rest, "/")
		if !nested || deeper == "" {
			leaves[key] = json.RawMessage(n.Value)
			continue
		}
		groups[key] = append(groups[key], n)
	}

	children := make([]store.Child, 0, len(leaves)+len(groups))
	for key, v := range leaves {
		children = append(children, store.Child{Key: key, Value: v})
	}
	for key, group := range groups {
		if _, ok := leaves[key]; ok {
			continue
		}
		sub, err := assemble(prefix+key, group)
		if err != nil {
			return nil, err
		}
		v, err := objectOf(sub)
		if err != nil {
			return nil, err
		}
		children = append(children, store.Child{Key: key, Value: v})
	}
	sort.Slice(children, func(i, j int) bool { return children[i].Key < children[j].Key })
	return children, nil
}

func objectOf(children []store.Child) (json.RawMessage, error) {
	obj := make(map[string]json.RawMessage, len(children))
	for _, c := range children {
		obj[c.Key] = c.Value
	}
	return json.Marshal(obj)
}
