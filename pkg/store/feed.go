package store

import (
	"context"
	"log/slog"
	"sync"
)

// Loader reads the current snapshot of a collection for a Feed.
type Loader func(ctx context.Context, p Path) (*Snapshot, error)

// Feed fans change notifications out to live subscriptions. Backends call
// Notify after every committed mutation; the feed reloads each affected
// collection once and delivers the full snapshot to its listeners.
//
// Delivery never blocks a writer: each listener holds at most one pending
// event and a newer snapshot replaces an unread older one. Since every
// event is a full snapshot, nothing is lost but intermediate states.
type Feed struct {
	load   Loader
	logger *slog.Logger

	notifyMu sync.Mutex // serializes load+deliver so snapshots never go backwards

	mu     sync.Mutex
	subs   map[uint64]*feedSub
	nextID uint64
	closed bool
}

// NewFeed returns a feed reading snapshots through load.
func NewFeed(load Loader, logger *slog.Logger) *Feed {
	if logger == nil {
		logger = slog.Default()
	}
	return &Feed{
		load:   load,
		logger: logger.With("component", "store-feed"),
		subs:   make(map[uint64]*feedSub),
	}
}

type feedSub struct {
	id   uint64
	path Path
	feed *Feed

	mu     sync.Mutex
	ch     chan Event
	done   bool
	once   sync.Once
	cancel func() bool
}

func (s *feedSub) Events() <-chan Event { return s.ch }

// Close deregisters the subscription. It is safe to call more than once.
func (s *feedSub) Close() error {
	s.shutdown()
	return nil
}

func (s *feedSub) shutdown() {
	s.once.Do(func() {
		s.feed.remove(s.id)
		s.mu.Lock()
		stop := s.cancel
		s.done = true
		close(s.ch)
		s.mu.Unlock()
		if stop != nil {
			stop()
		}
	})
}

// deliver hands ev to the listener, replacing an unread older event.
func (s *feedSub) deliver(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return
	}
	for {
		select {
		case s.ch <- ev:
			return
		default:
			select {
			case <-s.ch:
			default:
			}
		}
	}
}

// fail delivers a terminal error and closes the subscription.
func (s *feedSub) fail(err error) {
	s.deliver(Event{Err: err})
	s.shutdown()
}

// Subscribe registers a listener on p and delivers the current snapshot.
// The subscription ends when ctx is cancelled or Close is called.
func (f *Feed) Subscribe(ctx context.Context, p Path) (Subscription, error) {
	f.notifyMu.Lock()
	defer f.notifyMu.Unlock()

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil, ErrClosed
	}
	f.nextID++
	sub := &feedSub{id: f.nextID, path: p, feed: f, ch: make(chan Event, 1)}
	f.subs[sub.id] = sub
	f.mu.Unlock()

	snap, err := f.load(ctx, p)
	if err != nil {
		f.remove(sub.id)
		return nil, err
	}
	sub.deliver(Event{Snapshot: snap})
	stop := context.AfterFunc(ctx, sub.shutdown)
	sub.mu.Lock()
	if sub.done {
		sub.mu.Unlock()
		stop()
	} else {
		sub.cancel = stop
		sub.mu.Unlock()
	}
	f.logger.Debug("listener registered", "path", p, "listener", sub.id)
	return sub, nil
}

// Notify reloads and redelivers every collection affected by a change at p.
func (f *Feed) Notify(ctx context.Context, changed Path) {
	f.notifyMu.Lock()
	defer f.notifyMu.Unlock()

	groups := make(map[Path][]*feedSub)
	f.mu.Lock()
	for _, s := range f.subs {
		if s.path.Contains(changed) || changed.Contains(s.path) {
			groups[s.path] = append(groups[s.path], s)
		}
	}
	f.mu.Unlock()

	for p, subs := range groups {
		snap, err := f.load(context.WithoutCancel(ctx), p)
		if err != nil {
			f.logger.Error("failed to load snapshot", "path", p, "error", err)
			for _, s := range subs {
				s.fail(err)
			}
			continue
		}
		for _, s := range subs {
			s.deliver(Event{Snapshot: snap})
		}
	}
}

// Listeners returns the number of active subscriptions.
func (f *Feed) Listeners() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

// Close terminates every subscription with ErrClosed.
func (f *Feed) Close() {
	f.mu.Lock()
	f.closed = true
	subs := make([]*feedSub, 0, len(f.subs))
	for _, s := range f.subs {
		subs = append(subs, s)
	}
	f.mu.Unlock()
	for _, s := range subs {
		s.fail(ErrClosed)
	}
}

func (f *Feed) remove(id uint64) {
	f.mu.Lock()
	delete(f.subs, id)
	f.mu.Unlock()
}
