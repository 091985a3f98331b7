// Package transaction is the transaction store adapter: CRUD and live
// listing of a user's transaction records under transactions/{userId}.
package transaction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/amirasaad/pesaflow/pkg/domain"
	"github.com/amirasaad/pesaflow/pkg/domain/events"
	tx "github.com/amirasaad/pesaflow/pkg/domain/transaction"
	"github.com/amirasaad/pesaflow/pkg/eventbus"
	"github.com/amirasaad/pesaflow/pkg/money"
	"github.com/amirasaad/pesaflow/pkg/session"
	"github.com/amirasaad/pesaflow/pkg/store"
	"github.com/amirasaad/pesaflow/pkg/validate"
)

// DateLayout is the display date format used when no date is supplied.
const DateLayout = "2006-01-02"

// Messages surfaced to the user as-is.
const (
	MsgFieldsRequired   = "Please fill in all required fields"
	MsgIDRequired       = "Transaction id is required"
	MsgNotAuthenticated = "User not authenticated"
	MsgWrongUser        = "Transaction belongs to another user"
)

var errNotAuthenticated = errors.New(MsgNotAuthenticated)

type Service struct {
	store    store.Store
	bus      eventbus.Bus
	currency money.Currency
	logger   *slog.Logger
	now      func() time.Time
}

type Option func(*Service)

// WithCurrency sets the currency amounts are parsed in.
func WithCurrency(c money.Currency) Option {
	return func(s *Service) { s.currency = c }
}

// WithClock overrides the clock used for createdAt and default dates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New builds the adapter. bus may be nil.
func New(st store.Store, bus eventbus.Bus, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		store:    st,
		bus:      bus,
		currency: money.DefaultCurrency,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Currency returns the currency amounts are expressed in.
func (s *Service) Currency() money.Currency { return s.currency }

// Add validates in, writes a new record under a fresh push key and returns
// its id. Invalid input never reaches the store.
func (s *Service) Add(
	ctx context.Context,
	sess *session.Session,
	userID string,
	in tx.Input,
) (string, error) {
	log := s.logger.With("context", "AddTransaction")
	log.Debug("AddTransaction called", "userID", userID, "title", in.Title)

	kind, amount, err := s.parse(in)
	if err != nil {
		log.Debug("AddTransaction rejected", "error", err)
		return "", err
	}
	uid, err := owner(sess, userID)
	if err != nil {
		return "", err
	}

	col, err := store.TransactionsPath(uid)
	if err != nil {
		return "", domain.NewValidationError("%s", err.Error())
	}
	id := s.store.NewKey(col)
	p, err := col.Child(id)
	if err != nil {
		return "", domain.NewStoreError(err)
	}

	rec := s.build(id, uid, in, kind, amount, s.now())
	if err := s.write(ctx, p, rec); err != nil {
		log.Error("AddTransaction failed", "userID", uid, "error", err)
		return "", domain.NewStoreError(err)
	}

	s.emit(ctx, events.NewTransactionAdded(uid, id, kind.String(), amount))
	log.Info("AddTransaction successful", "userID", uid, "transactionID", id)
	return id, nil
}

// Get reads a single record once.
func (s *Service) Get(
	ctx context.Context,
	sess *session.Session,
	userID, id string,
) (*tx.Transaction, error) {
	log := s.logger.With("context", "GetTransaction")
	log.Debug("GetTransaction called", "userID", userID, "transactionID", id)

	p, _, err := s.recordPath(sess, userID, id)
	if err != nil {
		return nil, err
	}
	rec, err := s.read(ctx, p)
	if err != nil {
		log.Error("GetTransaction failed", "path", p, "error", err)
		return nil, err
	}
	return rec, nil
}

// Update overwrites the whole record at id. Fields left blank in in are
// not merged from the stored record; only createdAt is carried over.
func (s *Service) Update(
	ctx context.Context,
	sess *session.Session,
	userID, id string,
	in tx.Input,
) error {
	log := s.logger.With("context", "UpdateTransaction")
	log.Debug("UpdateTransaction called", "userID", userID, "transactionID", id)

	kind, amount, err := s.parse(in)
	if err != nil {
		return err
	}
	p, uid, err := s.recordPath(sess, userID, id)
	if err != nil {
		return err
	}
	existing, err := s.read(ctx, p)
	if err != nil {
		log.Error("UpdateTransaction lookup failed", "path", p, "error", err)
		return err
	}

	rec := s.build(p.Key(), uid, in, kind, amount, time.UnixMilli(existing.CreatedAt))
	if err := s.write(ctx, p, rec); err != nil {
		log.Error("UpdateTransaction failed", "path", p, "error", err)
		return domain.NewStoreError(err)
	}

	s.emit(ctx, events.NewTransactionUpdated(uid, rec.ID, kind.String(), amount))
	log.Info("UpdateTransaction successful", "transactionID", rec.ID)
	return nil
}

// Delete removes the record unconditionally. Confirmation is the caller's
// job.
func (s *Service) Delete(
	ctx context.Context,
	sess *session.Session,
	userID, id string,
) error {
	log := s.logger.With("context", "DeleteTransaction")
	log.Debug("DeleteTransaction called", "userID", userID, "transactionID", id)

	p, uid, err := s.recordPath(sess, userID, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, p); err != nil {
		log.Error("DeleteTransaction failed", "path", p, "error", err)
		return domain.NewStoreError(err)
	}

	s.emit(ctx, events.NewTransactionDeleted(uid, p.Key()))
	log.Info("DeleteTransaction successful", "transactionID", p.Key())
	return nil
}

// Records returns the user's records once, ordered like the live list.
func (s *Service) Records(
	ctx context.Context,
	sess *session.Session,
	userID string,
) ([]*tx.Transaction, error) {
	uid, err := owner(sess, userID)
	if err != nil {
		return nil, err
	}
	col, err := store.TransactionsPath(uid)
	if err != nil {
		return nil, domain.NewValidationError("%s", err.Error())
	}
	snap, err := s.store.List(ctx, col)
	if err != nil {
		s.logger.Error("listing transactions failed", "path", col, "error", err)
		return nil, domain.NewStoreError(err)
	}
	return decodeRecords(snap, s.logger), nil
}

// Summary totals the user's income and expense.
func (s *Service) Summary(
	ctx context.Context,
	sess *session.Session,
	userID string,
) (tx.Summary, error) {
	records, err := s.Records(ctx, sess, userID)
	if err != nil {
		return tx.Summary{}, err
	}
	return tx.Summarize(records), nil
}

// List opens a live subscription on the user's records. The session owns
// the subscription until it is closed.
func (s *Service) List(
	ctx context.Context,
	sess *session.Session,
	userID string,
) (*Subscription, error) {
	log := s.logger.With("context", "ListTransactions")
	uid, err := owner(sess, userID)
	if err != nil {
		return nil, err
	}
	col, err := store.TransactionsPath(uid)
	if err != nil {
		return nil, domain.NewValidationError("%s", err.Error())
	}
	src, err := s.store.Subscribe(ctx, col)
	if err != nil {
		log.Error("Subscribe failed", "path", col, "error", err)
		return nil, domain.NewStoreError(err)
	}
	sub := newSubscription(src, log)
	sub.setRelease(sess.Track(sub))
	log.Debug("Subscription opened", "path", col)
	return sub, nil
}

func (s *Service) parse(in tx.Input) (tx.Kind, money.Amount, error) {
	if _, err := validate.Struct(in); err != nil {
		return "", 0, domain.NewValidationError(MsgFieldsRequired)
	}
	kind, err := tx.ParseKind(in.Kind)
	if err != nil {
		return "", 0, domain.NewValidationError("%s", err.Error())
	}
	amount, err := money.Parse(in.Amount, s.currency)
	if err != nil {
		return "", 0, domain.NewValidationError("Invalid amount format: %s", err.Error())
	}
	return kind, amount, nil
}

func (s *Service) build(id, uid string, in tx.Input, kind tx.Kind, amount money.Amount, createdAt time.Time) *tx.Transaction {
	rec := tx.Build(id, uid, in, kind, amount, createdAt)
	if rec.Date == "" {
		rec.Date = s.now().Format(DateLayout)
	}
	return rec
}

func (s *Service) recordPath(sess *session.Session, userID, id string) (store.Path, string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "", domain.NewValidationError(MsgIDRequired)
	}
	uid, err := owner(sess, userID)
	if err != nil {
		return "", "", err
	}
	p, err := store.TransactionPath(uid, id)
	if err != nil {
		return "", "", domain.NewValidationError("%s", err.Error())
	}
	return p, uid, nil
}

func (s *Service) write(ctx context.Context, p store.Path, rec *tx.Transaction) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal transaction: %w", err)
	}
	return s.store.Write(ctx, p, raw)
}

func (s *Service) read(ctx context.Context, p store.Path) (*tx.Transaction, error) {
	raw, err := s.store.Read(ctx, p)
	if err != nil {
		return nil, domain.NewStoreError(err)
	}
	if raw == nil {
		return nil, domain.NewNotFoundError("Transaction")
	}
	rec, err := decodeRecord(p.Key(), raw)
	if err != nil {
		return nil, domain.NewStoreError(err)
	}
	return rec, nil
}

func (s *Service) emit(ctx context.Context, e events.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Emit(ctx, e); err != nil {
		s.logger.Warn("emitting event failed", "type", e.Type(), "error", err)
	}
}

// owner resolves the user a call acts for. An empty userID means the
// signed-in user; any other value must match it.
func owner(sess *session.Session, userID string) (string, error) {
	if sess == nil || !sess.IsAuthenticated() {
		return "", domain.NewAuthError(errNotAuthenticated)
	}
	uid := sess.UserID()
	userID = strings.TrimSpace(userID)
	if userID == "" || userID == uid {
		return uid, nil
	}
	return "", &domain.Error{Kind: domain.KindAuth, Message: MsgWrongUser, Err: domain.ErrForbidden}
}

func decodeRecord(key string, raw json.RawMessage) (*tx.Transaction, error) {
	var rec tx.Transaction
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode transaction %s: %w", key, err)
	}
	if rec.ID == "" {
		rec.ID = key
	}
	return &rec, nil
}

// decodeRecords turns a collection snapshot into records ordered by
// createdAt, then id. Children that are not transaction objects are
// skipped.
func decodeRecords(snap *store.Snapshot, logger *slog.Logger) []*tx.Transaction {
	records := make([]*tx.Transaction, 0, snap.Len())
	if snap == nil {
		return records
	}
	for _, c := range snap.Children {
		rec, err := decodeRecord(c.Key, c.Value)
		if err != nil {
			logger.Warn("skipping undecodable transaction", "key", c.Key, "error", err)
			continue
		}
		records = append(records, rec)
	}
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].CreatedAt != records[j].CreatedAt {
			return records[i].CreatedAt < records[j].CreatedAt
		}
		return records[i].ID < records[j].ID
	})
	return records
}
