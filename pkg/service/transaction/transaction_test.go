package transaction_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/amirasaad/pesaflow/infra/eventbus"
	"github.com/amirasaad/pesaflow/infra/store/memory"
	"github.com/amirasaad/pesaflow/internal/fixtures/mocks"
	"github.com/amirasaad/pesaflow/pkg/domain"
	"github.com/amirasaad/pesaflow/pkg/domain/events"
	tx "github.com/amirasaad/pesaflow/pkg/domain/transaction"
	"github.com/amirasaad/pesaflow/pkg/identity"
	"github.com/amirasaad/pesaflow/pkg/money"
	"github.com/amirasaad/pesaflow/pkg/service/transaction"
	"github.com/amirasaad/pesaflow/pkg/session"
	"github.com/amirasaad/pesaflow/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const uid = "uid-alice"

var fixedNow = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func aliceSession() *session.Session {
	return session.FromCredential(identity.Credential{UserID: uid, Email: "alice@example.com"})
}

func lunch() tx.Input {
	return tx.Input{
		Title:       "Lunch",
		Category:    "Food",
		Kind:        "expense",
		Amount:      "12.50",
		Date:        "2025-01-01",
		Description: "",
	}
}

type fixture struct {
	svc   *transaction.Service
	store *memory.Store
	bus   *eventbus.MemoryEventBus
	sess  *session.Session
	clock time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store: memory.New(slog.Default()),
		bus:   eventbus.NewWithMemory(slog.Default()),
		sess:  aliceSession(),
		clock: fixedNow,
	}
	f.svc = transaction.New(f.store, f.bus, slog.Default(),
		transaction.WithClock(func() time.Time {
			f.clock = f.clock.Add(time.Millisecond)
			return f.clock
		}))
	t.Cleanup(func() { _ = f.store.Close() })
	return f
}

func TestAdd_ThenGetRoundTrips(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id, err := f.svc.Add(ctx, f.sess, uid, lunch())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	rec, err := f.svc.Get(ctx, f.sess, uid, id)
	require.NoError(t, err)
	assert.Equal(t, id, rec.ID)
	assert.Equal(t, uid, rec.UserID)
	assert.Equal(t, "Lunch", rec.Title)
	assert.Equal(t, "Food", rec.Category)
	assert.Equal(t, tx.KindExpense, rec.Kind)
	assert.Equal(t, money.Amount(1250), rec.Amount)
	assert.Equal(t, "2025-01-01", rec.Date)
	assert.Equal(t, "", rec.Description)
	assert.NotZero(t, rec.CreatedAt)

	published := f.bus.Published()
	require.Len(t, published, 1)
	added := published[0].(*events.TransactionAdded)
	assert.Equal(t, id, added.TransactionID)
	assert.Equal(t, int64(1250), added.Amount)
}

func TestAdd_NormalizesKindAndDefaultsDate(t *testing.T) {
	f := newFixture(t)
	in := lunch()
	in.Kind = "Income"
	in.Date = " "

	id, err := f.svc.Add(context.Background(), f.sess, "", in)
	require.NoError(t, err)

	rec, err := f.svc.Get(context.Background(), f.sess, "", id)
	require.NoError(t, err)
	assert.Equal(t, tx.KindIncome, rec.Kind)
	assert.Equal(t, "2025-01-01", rec.Date)
}

func TestValidationNeverTouchesStore(t *testing.T) {
	blank := func(mut func(*tx.Input)) tx.Input {
		in := lunch()
		mut(&in)
		return in
	}
	cases := map[string]tx.Input{
		"blank title":      blank(func(in *tx.Input) { in.Title = "  " }),
		"blank category":   blank(func(in *tx.Input) { in.Category = "" }),
		"blank kind":       blank(func(in *tx.Input) { in.Kind = "" }),
		"blank amount":     blank(func(in *tx.Input) { in.Amount = "" }),
		"unknown kind":     blank(func(in *tx.Input) { in.Kind = "transfer" }),
		"bad amount":       blank(func(in *tx.Input) { in.Amount = "twelve" }),
		"negative amount":  blank(func(in *tx.Input) { in.Amount = "-1" }),
		"too many decimal": blank(func(in *tx.Input) { in.Amount = "1.005" }),
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			st := mocks.NewMockStore(t)
			svc := transaction.New(st, nil, slog.Default())
			sess := aliceSession()

			_, err := svc.Add(context.Background(), sess, uid, in)
			assert.ErrorIs(t, err, domain.ErrValidation)

			err = svc.Update(context.Background(), sess, uid, "tx1", in)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestBlankIDIsValidation(t *testing.T) {
	st := mocks.NewMockStore(t)
	svc := transaction.New(st, nil, slog.Default())
	sess := aliceSession()

	_, err := svc.Get(context.Background(), sess, uid, " ")
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorIs(t, svc.Delete(context.Background(), sess, uid, ""), domain.ErrValidation)
}

func TestOwnership(t *testing.T) {
	st := mocks.NewMockStore(t)
	svc := transaction.New(st, nil, slog.Default())

	_, err := svc.Add(context.Background(), session.New(), uid, lunch())
	require.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, "User not authenticated", err.Error())

	_, err = svc.Add(context.Background(), aliceSession(), "uid-bob", lunch())
	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, domain.KindAuth, domain.KindOf(err))

	_, err = svc.List(context.Background(), aliceSession(), "uid-bob")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdate_OverwritesEveryField(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id, err := f.svc.Add(ctx, f.sess, uid, tx.Input{
		Title: "Salary", Category: "Work", Kind: "income", Amount: "5000", Date: "2025-01-31", Description: "January",
	})
	require.NoError(t, err)
	before, err := f.svc.Get(ctx, f.sess, uid, id)
	require.NoError(t, err)

	err = f.svc.Update(ctx, f.sess, uid, id, tx.Input{
		Title: "Rent", Category: "Housing", Kind: "expense", Amount: "1200.75", Date: "2025-02-01",
	})
	require.NoError(t, err)

	after, err := f.svc.Get(ctx, f.sess, uid, id)
	require.NoError(t, err)
	assert.Equal(t, "Rent", after.Title)
	assert.Equal(t, "Housing", after.Category)
	assert.Equal(t, tx.KindExpense, after.Kind)
	assert.Equal(t, money.Amount(120075), after.Amount)
	assert.Equal(t, "2025-02-01", after.Date)
	assert.Equal(t, "", after.Description)
	assert.Equal(t, before.CreatedAt, after.CreatedAt)
}

func TestUpdate_MissingRecordIsNotFound(t *testing.T) {
	f := newFixture(t)
	err := f.svc.Update(context.Background(), f.sess, uid, "nope", lunch())
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "Transaction not found", err.Error())
}

func TestDelete_ThenGetIsNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id, err := f.svc.Add(ctx, f.sess, uid, lunch())
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, f.sess, uid, id))
	_, err = f.svc.Get(ctx, f.sess, uid, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Deleting again is not an error.
	assert.NoError(t, f.svc.Delete(ctx, f.sess, uid, id))
}

func TestStoreErrorsKeepBackendMessage(t *testing.T) {
	ctx := context.Background()
	col := store.Path("transactions/" + uid)

	t.Run("add", func(t *testing.T) {
		st := mocks.NewMockStore(t)
		st.EXPECT().NewKey(col).Return("k1").Once()
		st.EXPECT().Write(mock.Anything, store.Path("transactions/"+uid+"/k1"), mock.Anything).
			Return(errors.New("Permission denied")).Once()
		svc := transaction.New(st, nil, slog.Default())

		_, err := svc.Add(ctx, aliceSession(), uid, lunch())
		require.ErrorIs(t, err, domain.ErrStore)
		assert.Equal(t, "Permission denied", err.Error())
	})

	t.Run("get", func(t *testing.T) {
		st := mocks.NewMockStore(t)
		st.EXPECT().Read(mock.Anything, mock.Anything).Return(nil, errors.New("offline")).Once()
		svc := transaction.New(st, nil, slog.Default())

		_, err := svc.Get(ctx, aliceSession(), uid, "k1")
		require.ErrorIs(t, err, domain.ErrStore)
		assert.Equal(t, "offline", err.Error())
	})

	t.Run("delete", func(t *testing.T) {
		st := mocks.NewMockStore(t)
		st.EXPECT().Delete(mock.Anything, mock.Anything).Return(errors.New("offline")).Once()
		svc := transaction.New(st, nil, slog.Default())

		err := svc.Delete(ctx, aliceSession(), uid, "k1")
		assert.ErrorIs(t, err, domain.ErrStore)
	})

	t.Run("subscribe", func(t *testing.T) {
		st := mocks.NewMockStore(t)
		st.EXPECT().Subscribe(mock.Anything, col).Return(nil, errors.New("offline")).Once()
		svc := transaction.New(st, nil, slog.Default())

		_, err := svc.List(ctx, aliceSession(), uid)
		assert.ErrorIs(t, err, domain.ErrStore)
	})

	t.Run("undecodable record", func(t *testing.T) {
		st := mocks.NewMockStore(t)
		st.EXPECT().Read(mock.Anything, mock.Anything).Return(json.RawMessage(`"oops"`), nil).Once()
		svc := transaction.New(st, nil, slog.Default())

		_, err := svc.Get(ctx, aliceSession(), uid, "k1")
		assert.ErrorIs(t, err, domain.ErrStore)
	})
}

func TestSummary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, in := range []tx.Input{
		{Title: "Salary", Category: "Work", Kind: "income", Amount: "1000"},
		{Title: "Lunch", Category: "Food", Kind: "expense", Amount: "12.50"},
		{Title: "Bus", Category: "Transport", Kind: "expense", Amount: "2"},
	} {
		_, err := f.svc.Add(ctx, f.sess, uid, in)
		require.NoError(t, err)
	}

	sum, err := f.svc.Summary(ctx, f.sess, uid)
	require.NoError(t, err)
	assert.Equal(t, money.Amount(100000), sum.Income)
	assert.Equal(t, money.Amount(1450), sum.Expense)
	assert.Equal(t, money.Amount(98550), sum.Balance)
	assert.Equal(t, 3, sum.Count)

	records, err := f.svc.Records(ctx, f.sess, uid)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "Salary", records[0].Title)
	assert.Equal(t, "Bus", records[2].Title)
}

func next(t *testing.T, sub *transaction.Subscription) transaction.Update {
	t.Helper()
	select {
	case u, ok := <-sub.Updates():
		require.True(t, ok, "subscription ended: %v", sub.Err())
		return u
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for update")
	}
	return transaction.Update{}
}

func TestList_FinalSnapshotAfterAddsAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sub, err := f.svc.List(ctx, f.sess, uid)
	require.NoError(t, err)
	defer sub.Close()

	initial := next(t, sub)
	assert.Empty(t, initial.Records)
	assert.Nil(t, initial.Selected)

	const n = 4
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		in := lunch()
		in.Title = fmt.Sprintf("Item %d", i)
		id, err := f.svc.Add(ctx, f.sess, uid, in)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	require.NoError(t, f.svc.Delete(ctx, f.sess, uid, ids[1]))

	var last transaction.Update
	require.Eventually(t, func() bool {
		select {
		case u := <-sub.Updates():
			last = u
		default:
		}
		return len(last.Records) == n-1
	}, 2*time.Second, 10*time.Millisecond)

	got := make([]string, 0, n-1)
	for _, r := range last.Records {
		got = append(got, r.ID)
	}
	assert.Equal(t, []string{ids[0], ids[2], ids[3]}, got)
	require.NotNil(t, last.Selected)
	assert.Equal(t, ids[0], last.Selected.ID)
}

func TestList_CloseIsIdempotentAndReleasesSession(t *testing.T) {
	f := newFixture(t)
	sub, err := f.svc.List(context.Background(), f.sess, uid)
	require.NoError(t, err)
	assert.Equal(t, 1, f.sess.Owned())
	assert.Equal(t, 1, f.store.Listeners())

	require.NoError(t, sub.Close())
	require.NoError(t, sub.Close())
	assert.Equal(t, 0, f.sess.Owned())
	assert.Equal(t, 0, f.store.Listeners())

	_, ok := <-sub.Updates()
	assert.False(t, ok)
	assert.NoError(t, sub.Err())
}

func TestList_SessionCloseTearsDownSubscription(t *testing.T) {
	f := newFixture(t)
	sub, err := f.svc.List(context.Background(), f.sess, uid)
	require.NoError(t, err)

	require.NoError(t, f.sess.Close())
	assert.Equal(t, 0, f.store.Listeners())
	for range sub.Updates() {
	}
	assert.NoError(t, sub.Close())
}

func TestList_BackendFailureIsTerminal(t *testing.T) {
	f := newFixture(t)
	sub, err := f.svc.List(context.Background(), f.sess, uid)
	require.NoError(t, err)
	defer sub.Close()

	require.NoError(t, f.store.Close())
	for range sub.Updates() {
	}
	require.ErrorIs(t, sub.Err(), domain.ErrStore)
	assert.ErrorIs(t, sub.Err(), store.ErrClosed)
}

func TestList_SkipsUndecodableChildren(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.Write(ctx, store.Path("transactions/"+uid+"/junk"), json.RawMessage(`42`)))
	id, err := f.svc.Add(ctx, f.sess, uid, lunch())
	require.NoError(t, err)

	sub, err := f.svc.List(ctx, f.sess, uid)
	require.NoError(t, err)
	defer sub.Close()

	u := next(t, sub)
	require.Len(t, u.Records, 1)
	assert.Equal(t, id, u.Records[0].ID)
}

// Register, then record Alice's lunch and read it back.
func TestAliceLunchScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id, err := f.svc.Add(ctx, f.sess, uid, lunch())
	require.NoError(t, err)

	rec, err := f.svc.Get(ctx, f.sess, uid, id)
	require.NoError(t, err)
	assert.Equal(t, money.Amount(1250), rec.Amount)
	assert.Equal(t, tx.KindExpense, rec.Kind)
	assert.Equal(t, "12.50", money.Format(rec.Amount, f.svc.Currency()))
}
