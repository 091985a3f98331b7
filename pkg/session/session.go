// Package session holds the explicit session context shared by the Session
// Manager and the Transaction Store Adapter: who is signed in, whether an
// operation is in flight, the last failure message and the live resources
// the session owns.
package session

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/amirasaad/pesaflow/pkg/identity"
)

// State is the authentication state of a session.
type State int

const (
	Anonymous State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "anonymous"
}

// Session is safe for concurrent use.
type Session struct {
	mu      sync.RWMutex
	state   State
	cred    identity.Credential
	loading bool
	lastErr string
	owned   map[uint64]io.Closer
	nextID  uint64
	closed  bool
}

// New returns an anonymous session.
func New() *Session {
	return &Session{owned: make(map[uint64]io.Closer)}
}

// FromCredential returns a session already authenticated as cred, as used
// for stateless HTTP requests.
func FromCredential(cred identity.Credential) *Session {
	s := New()
	s.Authenticate(cred)
	return s
}

// Authenticate moves the session to Authenticated.
func (s *Session) Authenticate(cred identity.Credential) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = cred
	s.state = Authenticated
}

// Clear moves the session to Anonymous and returns the credential it held.
// Owned resources are left open.
func (s *Session) Clear() (identity.Credential, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, had := s.cred, s.state == Authenticated
	s.cred = identity.Credential{}
	s.state = Anonymous
	return prev, had
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Session) IsAuthenticated() bool {
	return s.State() == Authenticated
}

// UserID returns the signed-in user's id, or "" when anonymous.
func (s *Session) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != Authenticated {
		return ""
	}
	return s.cred.UserID
}

// Credential returns the held credential.
func (s *Session) Credential() (identity.Credential, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cred, s.state == Authenticated
}

// Begin marks an operation in flight and clears the last error.
func (s *Session) Begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.lastErr = ""
}

// End resets the loading flag and records err's message; nil clears it.
func (s *Session) End(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = err.Error()
	} else {
		s.lastErr = ""
	}
}

func (s *Session) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Session) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Track makes the session own c until the returned release func is called.
// A closed session closes c immediately.
func (s *Session) Track(c io.Closer) (release func()) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		_ = c.Close()
		return func() {}
	}
	s.nextID++
	id := s.nextID
	s.owned[id] = c
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.owned, id)
		s.mu.Unlock()
	}
}

// Owned reports how many resources the session currently owns.
func (s *Session) Owned() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.owned)
}

// Close releases every owned resource once and returns the session to
// Anonymous. Later calls are no-ops.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	owned := s.owned
	s.owned = make(map[uint64]io.Closer)
	s.cred = identity.Credential{}
	s.state = Anonymous
	s.loading = false
	s.mu.Unlock()

	var errs []error
	for _, c := range owned {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type ctxKey struct{}

// NewContext returns a copy of ctx carrying s.
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session carried by ctx.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok && s != nil
}
