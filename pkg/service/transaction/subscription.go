package transaction

import (
	"log/slog"
	"sync"

	"github.com/amirasaad/pesaflow/pkg/domain"
	tx "github.com/amirasaad/pesaflow/pkg/domain/transaction"
	"github.com/amirasaad/pesaflow/pkg/store"
)

// Update is one full delivery of the live list. It is not a diff.
type Update struct {
	Records []*tx.Transaction
	// Selected is the first record, or nil when the list is empty.
	Selected *tx.Transaction
}

// Subscription mirrors a user's records until closed. Updates is closed
// when the subscription ends; Err then reports a backend failure, if any.
type Subscription struct {
	src    store.Subscription
	logger *slog.Logger

	updates  chan Update
	done     chan struct{}
	finished chan struct{}
	once     sync.Once

	mu      sync.Mutex
	err     error
	release func()
	closed  bool
}

func newSubscription(src store.Subscription, logger *slog.Logger) *Subscription {
	s := &Subscription{
		src:      src,
		logger:   logger,
		updates:  make(chan Update),
		done:     make(chan struct{}),
		finished: make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *Subscription) Updates() <-chan Update { return s.updates }

// Err returns the terminal backend error once Updates is closed.
func (s *Subscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close deregisters the listener. Calling it again is a no-op.
func (s *Subscription) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		err = s.src.Close()
		<-s.finished

		s.mu.Lock()
		s.closed = true
		release := s.release
		s.mu.Unlock()
		if release != nil {
			release()
		}
	})
	return err
}

func (s *Subscription) setRelease(release func()) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		release()
		return
	}
	s.release = release
	s.mu.Unlock()
}

func (s *Subscription) run() {
	defer close(s.finished)
	defer close(s.updates)
	events := s.src.Events()
	for {
		select {
		case <-s.done:
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if ev.Err != nil {
				s.logger.Error("Subscription ended", "error", ev.Err)
				s.mu.Lock()
				s.err = domain.NewStoreError(ev.Err)
				s.mu.Unlock()
				return
			}
			records := decodeRecords(ev.Snapshot, s.logger)
			u := Update{Records: records}
			if len(records) > 0 {
				u.Selected = records[0]
			}
			select {
			case s.updates <- u:
			case <-s.done:
				return
			}
		}
	}
}
