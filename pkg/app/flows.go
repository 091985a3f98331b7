package app

import (
	"context"
	"errors"

	"github.com/amirasaad/pesaflow/pkg/async"
	"github.com/amirasaad/pesaflow/pkg/domain"
	tx "github.com/amirasaad/pesaflow/pkg/domain/transaction"
	"github.com/amirasaad/pesaflow/pkg/domain/user"
	"github.com/amirasaad/pesaflow/pkg/notify"
	"github.com/amirasaad/pesaflow/pkg/service/auth"
	"github.com/amirasaad/pesaflow/pkg/session"
)

// Notices shown on success.
const (
	MsgRegistered         = "User Successfully Registered"
	MsgLoggedIn           = "User Successfully Logged In"
	MsgLoggedOut          = "Successfully logged out"
	MsgTransactionAdded   = "Transaction added successfully"
	MsgTransactionUpdated = "Transaction updated successfully"
	MsgTransactionDeleted = "Transaction deleted successfully"
)

// Navigate is called once after a successful operation, never on failure.
type Navigate func()

// Flows runs service calls off the caller's goroutine, keeping the
// session's loading flag and last error current and emitting exactly one
// notice per finished operation.
type Flows struct {
	app      *App
	notifier notify.Notifier
}

// Flows returns the caller-facing operations reporting to n.
func (a *App) Flows(n notify.Notifier) *Flows {
	if n == nil {
		n = notify.NewLog(a.Deps.Logger)
	}
	return &Flows{app: a, notifier: n}
}

// outcome describes how a finished operation is reported.
type outcome struct {
	success string
	failure func(error) string
	next    Navigate
}

func run[T any](
	ctx context.Context,
	f *Flows,
	sess *session.Session,
	out outcome,
	op func(context.Context) (T, error),
) *async.Future[T] {
	sess.Begin()
	return async.Go(ctx, func(ctx context.Context) (T, error) {
		v, err := op(ctx)
		sess.End(err)
		if err != nil {
			msg := err.Error()
			if out.failure != nil {
				msg = out.failure(err)
			}
			f.notifier.Notify(ctx, notify.Error(msg))
			return v, err
		}
		if out.success != "" {
			f.notifier.Notify(ctx, notify.Success(out.success))
		}
		if out.next != nil {
			out.next()
		}
		return v, nil
	})
}

// prefixed reports backend failures as "<prefix>: <message>" and every
// other kind with its own message.
func prefixed(prefix string) func(error) string {
	return func(err error) string {
		if errors.Is(err, domain.ErrStore) {
			return prefix + ": " + err.Error()
		}
		return err.Error()
	}
}

func (f *Flows) Register(
	ctx context.Context,
	sess *session.Session,
	in auth.RegisterInput,
	next Navigate,
) *async.Future[*user.Profile] {
	return run(ctx, f, sess, outcome{
		success: MsgRegistered,
		failure: func(err error) string {
			switch domain.KindOf(err) {
			case domain.KindStore:
				return "Database Error: " + err.Error()
			case domain.KindAuth:
				if err.Error() == "" {
					return "Registration Failed"
				}
			}
			return err.Error()
		},
		next: next,
	}, func(ctx context.Context) (*user.Profile, error) {
		return f.app.AuthService.Register(ctx, sess, in)
	})
}

func (f *Flows) Login(
	ctx context.Context,
	sess *session.Session,
	in auth.LoginInput,
	next Navigate,
) *async.Future[struct{}] {
	return run(ctx, f, sess, outcome{
		success: MsgLoggedIn,
		failure: func(err error) string {
			if domain.KindOf(err) == domain.KindAuth {
				return "Login Failed: " + err.Error()
			}
			return err.Error()
		},
		next: next,
	}, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, f.app.AuthService.Login(ctx, sess, in)
	})
}

// Logout always succeeds.
func (f *Flows) Logout(ctx context.Context, sess *session.Session, next Navigate) *async.Future[struct{}] {
	return run(ctx, f, sess, outcome{success: MsgLoggedOut, next: next},
		func(ctx context.Context) (struct{}, error) {
			f.app.AuthService.Logout(ctx, sess)
			return struct{}{}, nil
		})
}

func (f *Flows) AddTransaction(
	ctx context.Context,
	sess *session.Session,
	userID string,
	in tx.Input,
	next Navigate,
) *async.Future[string] {
	return run(ctx, f, sess, outcome{
		success: MsgTransactionAdded,
		failure: prefixed("Failed to add"),
		next:    next,
	}, func(ctx context.Context) (string, error) {
		return f.app.TransactionService.Add(ctx, sess, userID, in)
	})
}

func (f *Flows) UpdateTransaction(
	ctx context.Context,
	sess *session.Session,
	userID, id string,
	in tx.Input,
	next Navigate,
) *async.Future[struct{}] {
	return run(ctx, f, sess, outcome{
		success: MsgTransactionUpdated,
		failure: prefixed("Failed to update"),
		next:    next,
	}, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, f.app.TransactionService.Update(ctx, sess, userID, id, in)
	})
}

func (f *Flows) DeleteTransaction(
	ctx context.Context,
	sess *session.Session,
	userID, id string,
	next Navigate,
) *async.Future[struct{}] {
	return run(ctx, f, sess, outcome{
		success: MsgTransactionDeleted,
		failure: prefixed("Failed to delete"),
		next:    next,
	}, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, f.app.TransactionService.Delete(ctx, sess, userID, id)
	})
}

// GetTransaction notifies only on failure; a found record is the result.
func (f *Flows) GetTransaction(
	ctx context.Context,
	sess *session.Session,
	userID, id string,
) *async.Future[*tx.Transaction] {
	return run(ctx, f, sess, outcome{
		failure: prefixed("Failed to get transaction"),
	}, func(ctx context.Context) (*tx.Transaction, error) {
		return f.app.TransactionService.Get(ctx, sess, userID, id)
	})
}
