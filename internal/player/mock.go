// internal/player/mock.go
package player

import (
	"fmt"
	"sync"
	"time"
)

// Mock is a test double for Player. It records every command it receives
// and lets tests drive the listener callbacks directly.
type Mock struct {
	mu        sync.Mutex
	state     State
	url       string
	position  time.Duration
	durations map[string]time.Duration
	loadErrs  map[string]error
	playErr   error
	calls     []string
	listeners *listenerSet
}

// NewMock creates a new mock player for testing.
func NewMock() *Mock {
	return &Mock{
		state:     Unloaded,
		durations: make(map[string]time.Duration),
		loadErrs:  make(map[string]error),
		listeners: newListenerSet(),
	}
}

// SetDuration makes tracks loaded from url report d as their length.
// Tracks without a duration report it as unknown.
func (m *Mock) SetDuration(url string, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.durations[url] = d
}

// FailLoad makes Load(url) return err.
func (m *Mock) FailLoad(url string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadErrs[url] = err
}

// SetPlayErr makes every following Play call return err. Pass nil to clear.
func (m *Mock) SetPlayErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playErr = err
}

// Calls returns the recorded commands in order, e.g. "load a.mp3",
// "play", "seek_to 1m0s".
func (m *Mock) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// ResetCalls clears the call log.
func (m *Mock) ResetCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

func (m *Mock) record(format string, args ...any) {
	m.calls = append(m.calls, fmt.Sprintf(format, args...))
}

// State returns the mock's playback state.
func (m *Mock) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// ListenerCount returns the number of active subscriptions.
func (m *Mock) ListenerCount() int {
	return m.listeners.len()
}

func (m *Mock) Load(url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("load %s", url)
	m.position = 0
	if err := m.loadErrs[url]; err != nil {
		m.state = Unloaded
		m.url = ""
		return err
	}
	m.state = Paused
	m.url = url
	return nil
}

func (m *Mock) Play() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("play")
	if m.playErr != nil {
		return m.playErr
	}
	switch m.state {
	case Unloaded:
		return ErrNotLoaded
	case Ended:
		m.position = 0
	}
	m.state = Playing
	return nil
}

func (m *Mock) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("pause")
	if m.state == Playing {
		m.state = Paused
	}
}

func (m *Mock) SeekTo(pos time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("seek_to %s", pos)
	m.seekLocked(pos)
}

func (m *Mock) SeekBy(delta time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("seek_by %s", delta)
	m.seekLocked(m.position + delta)
}

func (m *Mock) seekLocked(pos time.Duration) {
	if m.state == Unloaded {
		return
	}
	pos = max(pos, 0)
	if d, ok := m.durations[m.url]; ok {
		pos = min(pos, d)
	}
	m.position = pos
	if m.state == Ended {
		m.state = Paused
	}
}

func (m *Mock) Position() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *Mock) Duration() (time.Duration, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == Unloaded {
		return 0, false
	}
	d, ok := m.durations[m.url]
	return d, ok
}

func (m *Mock) Subscribe(l Listener) func() {
	return m.listeners.add(l)
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("close")
	m.state = Unloaded
	m.url = ""
	return nil
}

// EmitTimeUpdate moves the position to pos and notifies listeners
// synchronously.
func (m *Mock) EmitTimeUpdate(pos time.Duration) {
	m.mu.Lock()
	m.position = pos
	m.mu.Unlock()

	m.listeners.timeUpdate(pos)
}

// EmitEnded marks the track finished and notifies listeners synchronously.
func (m *Mock) EmitEnded() {
	m.mu.Lock()
	m.state = Ended
	if d, ok := m.durations[m.url]; ok {
		m.position = d
	}
	m.mu.Unlock()

	m.listeners.trackEnded()
}

// EmitLoadFailed reports a background load failure for url, unloading the
// mock if url is the current track.
func (m *Mock) EmitLoadFailed(url string, err error) {
	m.mu.Lock()
	if m.url == url {
		m.state = Unloaded
		m.url = ""
	}
	m.mu.Unlock()

	m.listeners.loadFailed(url, err)
}
