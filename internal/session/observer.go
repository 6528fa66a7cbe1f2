package session

import (
	"github.com/scribehq/scribe/internal/logger"
)

// Handler receives the new current session (nil when cleared) after
// every committed mutation and every successful recovery load.
type Handler func(current *Context)

type observerEntry struct {
	id      int
	handler Handler
}

// Subscribe registers a handler and returns its unsubscribe function.
// Unsubscribing twice is a no-op. A handler that panics is logged and
// permanently dropped from the registry; it is never retried and never
// prevents the remaining handlers from running.
func (s *Store) Subscribe(h Handler) (unsubscribe func()) {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()

	s.nextObsID++
	id := s.nextObsID
	s.observers = append(s.observers, &observerEntry{id: id, handler: h})

	return func() {
		s.obsMu.Lock()
		defer s.obsMu.Unlock()
		s.dropObserverLocked(id, "unsubscribed")
	}
}

// ObserverCount returns the number of registered handlers.
func (s *Store) ObserverCount() int {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()
	return len(s.observers)
}

// notify fans the new state out to every handler in subscription order.
// Fan-out is sequential so ordering stays deterministic.
func (s *Store) notify(current *Context) {
	s.obsMu.Lock()
	entries := make([]*observerEntry, len(s.observers))
	copy(entries, s.observers)
	s.obsMu.Unlock()

	for _, entry := range entries {
		s.invoke(entry, current.clone())
	}
}

// invoke runs one handler, isolating panics so a buggy observer cannot
// break notification for the rest.
func (s *Store) invoke(entry *observerEntry, current *Context) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Session: Observer %d panicked and will be removed: %v", entry.id, r)
			s.obsMu.Lock()
			s.dropObserverLocked(entry.id, "panicked")
			s.obsMu.Unlock()
		}
	}()

	entry.handler(current)
}

// dropObserverLocked removes a handler by id. Caller holds obsMu.
func (s *Store) dropObserverLocked(id int, reason string) {
	for i, entry := range s.observers {
		if entry.id == id {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			logger.Debug("Session: Observer %d removed (%s)", id, reason)
			return
		}
	}
}
