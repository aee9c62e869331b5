package player

import (
	"sync"
	"time"
)

// listenerSet is a registry of Listeners shared by Handle implementations.
type listenerSet struct {
	mu     sync.Mutex
	nextID int
	byID   map[int]Listener
	order  []int
}

func newListenerSet() *listenerSet {
	return &listenerSet{byID: make(map[int]Listener)}
}

// add registers l and returns its removal function. Removal is idempotent.
func (s *listenerSet) add(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.byID[id] = l
	s.order = append(s.order, id)

	var once sync.Once
	return func() {
		once.Do(func() { s.remove(id) })
	}
}

func (s *listenerSet) remove(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.byID, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// snapshot returns the listeners in registration order.
func (s *listenerSet) snapshot() []Listener {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]Listener, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.byID[id])
	}
	return result
}

func (s *listenerSet) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// The lock is not held while callbacks run, so listeners may unsubscribe
// or issue handle commands from inside a callback.

func (s *listenerSet) timeUpdate(pos time.Duration) {
	for _, l := range s.snapshot() {
		l.OnTimeUpdate(pos)
	}
}

func (s *listenerSet) trackEnded() {
	for _, l := range s.snapshot() {
		l.OnTrackEnded()
	}
}

func (s *listenerSet) loadFailed(url string, err error) {
	for _, l := range s.snapshot() {
		if fl, ok := l.(LoadFailureListener); ok {
			fl.OnLoadFailed(url, err)
		}
	}
}
