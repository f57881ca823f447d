package session

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/rentkeeper/internal/models"
)

// Snapshot is an immutable view of the session at one instant.
type Snapshot struct {
	User          *models.User
	CheckComplete bool
}

// IsAuthenticated reports whether a user is present.
func (s Snapshot) IsAuthenticated() bool {
	return s.User != nil
}

// Listener is called with the new snapshot after every write.
type Listener func(Snapshot)

// Store is the read side of the session.
type Store struct {
	mu            sync.RWMutex
	user          *models.User
	checkComplete bool

	ready     chan struct{}
	readyOnce sync.Once

	listenersMu sync.Mutex
	listeners   map[int]Listener
	nextID      int
}

// Writer is the write side of a Store.
type Writer struct {
	s *Store
}

// New returns an empty session (no user, check pending) and its only Writer.
func New() (*Store, *Writer) {
	s := &Store{
		ready:     make(chan struct{}),
		listeners: make(map[int]Listener),
	}
	return s, &Writer{s: s}
}

// Snapshot returns the current state. The user is a copy.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{User: s.user.Clone(), CheckComplete: s.checkComplete}
}

// User returns a copy of the current user, or nil.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.Clone()
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

func (s *Store) CheckComplete() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.checkComplete
}

// Ready is closed once the initial session check has completed.
func (s *Store) Ready() <-chan struct{} {
	return s.ready
}

// WaitReady blocks until the session check completes or ctx is done.
func (s *Store) WaitReady(ctx context.Context) error {
	select {
	case <-s.ready:
		return nil
	default:
	}

	select {
	case <-s.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Subscribe registers fn for change notifications and immediately calls it
// with the current snapshot. The returned function removes the
// subscription; calling it more than once is harmless.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.listenersMu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.listenersMu.Unlock()

	fn(s.Snapshot())

	var once sync.Once
	return func() {
		once.Do(func() {
			s.listenersMu.Lock()
			delete(s.listeners, id)
			s.listenersMu.Unlock()
		})
	}
}

func (s *Store) notify() {
	snap := s.Snapshot()

	s.listenersMu.Lock()
	fns := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.listenersMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

// SetUser replaces the current user; nil logs out locally.
func (w *Writer) SetUser(u *models.User) {
	w.s.mu.Lock()
	w.s.user = u.Clone()
	w.s.mu.Unlock()

	w.s.notify()
}

// MarkCheckComplete flips CheckComplete to true and releases everyone
// waiting on Ready. Later calls do nothing.
func (w *Writer) MarkCheckComplete() {
	changed := false
	w.s.readyOnce.Do(func() {
		w.s.mu.Lock()
		w.s.checkComplete = true
		w.s.mu.Unlock()
		close(w.s.ready)
		changed = true
	})
	if changed {
		w.s.notify()
	}
}
