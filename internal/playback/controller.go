// internal/playback/controller.go
package playback

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/llehouerou/wavelet/internal/player"
	"github.com/llehouerou/wavelet/internal/playlist"
)

var (
	ErrNoTrackLoaded   = errors.New("no track loaded")
	ErrIndexOutOfRange = errors.New("track index out of range")
	ErrClosed          = errors.New("controller closed")
)

// Verify Controller satisfies the interfaces it is handed out as.
var (
	_ player.Listener            = (*Controller)(nil)
	_ player.LoadFailureListener = (*Controller)(nil)
	_ Commands        = (*Controller)(nil)
	_ Seeker          = (*Controller)(nil)
)

// Option configures a Controller.
type Option func(*Controller)

// WithSurface attaches a platform notification surface. A nil surface is
// ignored.
func WithSurface(s Surface) Option {
	return func(c *Controller) { c.surface = s }
}

// WithLabels sets the artist/album/artwork published with every track.
func WithLabels(l Labels) Option {
	return func(c *Controller) { c.labels = l }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// Controller owns the playback state machine for a fixed playlist and keeps
// a media handle in sync with it.
//
// Handlers (user commands, handle notifications, platform commands) may
// arrive on any goroutine; each runs to completion under the controller's
// lock before the next one starts.
type Controller struct {
	mu     sync.Mutex
	list   *playlist.Playlist
	handle player.Handle

	index            int
	playing          bool
	elapsed          time.Duration
	trackListVisible bool
	loaded           bool
	closed           bool

	// moved is set when a handler changed the track, even to the same index.
	moved    bool
	failures []ErrorEvent

	// snap mirrors the state after every handler so readers never wait
	// behind a slow Load.
	snap atomic.Pointer[State]

	surface     Surface
	labels      Labels
	unsubscribe func()
	unbind      func()

	subsMu sync.Mutex
	subs   []*Subscription

	logger zerolog.Logger
}

// New mounts a controller: index 0, paused, elapsed 0. It subscribes to the
// handle, loads the first track and publishes it to the surface. A failing
// first load is logged and leaves the controller with Loaded false.
func New(list *playlist.Playlist, handle player.Handle, opts ...Option) (*Controller, error) {
	if list == nil || list.Len() == 0 {
		return nil, playlist.ErrEmpty
	}
	if handle == nil {
		return nil, errors.New("playback: nil media handle")
	}

	c := &Controller{
		list:   list,
		handle: handle,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With().Str("component", "playback").Logger()

	c.unsubscribe = handle.Subscribe(c)

	c.mu.Lock()
	if err := c.loadLocked(); err != nil {
		c.logger.Warn().Err(err).Msg("initial track failed to load")
	}
	c.failures = nil
	st := c.stateLocked()
	c.snap.Store(&st)
	c.mu.Unlock()

	if c.surface != nil {
		if b, ok := c.surface.(CommandBinder); ok {
			c.unbind = b.BindCommands(c)
		}
		c.publish()
	}

	return c, nil
}

// Playlist returns the playlist the controller was built with.
func (c *Controller) Playlist() *playlist.Playlist {
	return c.list
}

// State returns the latest snapshot.
func (c *Controller) State() State {
	return *c.snap.Load()
}

// Elapsed returns the last known playback position.
func (c *Controller) Elapsed() time.Duration {
	return c.snap.Load().Elapsed
}

// Duration returns the current track's length, or false while unknown.
func (c *Controller) Duration() (time.Duration, bool) {
	if !c.snap.Load().Loaded {
		return 0, false
	}
	return c.handle.Duration()
}

// TogglePlay flips the playback axis and commands the handle accordingly.
func (c *Controller) TogglePlay() error {
	return c.apply(func() error {
		if !c.loaded {
			return ErrNoTrackLoaded
		}
		if c.playing {
			c.handle.Pause()
			c.playing = false
			return nil
		}
		return c.playLocked()
	})
}

// Play starts playback. It is a no-op when already playing.
func (c *Controller) Play() error {
	return c.apply(func() error {
		if !c.loaded {
			return ErrNoTrackLoaded
		}
		if c.playing {
			return nil
		}
		return c.playLocked()
	})
}

// Pause pauses playback. It is a no-op when already paused.
func (c *Controller) Pause() error {
	return c.apply(func() error {
		if !c.playing {
			return nil
		}
		c.handle.Pause()
		c.playing = false
		return nil
	})
}

// NextTrack moves to the following track, wrapping at the end, and leaves
// it paused.
func (c *Controller) NextTrack() error {
	return c.apply(func() error {
		c.playing = false
		return c.moveLocked(c.list.Next(c.index))
	})
}

// PreviousTrack moves to the preceding track, wrapping at the start, and
// leaves it paused.
func (c *Controller) PreviousTrack() error {
	return c.apply(func() error {
		c.playing = false
		return c.moveLocked(c.list.Previous(c.index))
	})
}

// SelectTrack jumps to index. Unlike NextTrack and PreviousTrack it keeps
// the playback axis: selecting while playing plays the new track.
func (c *Controller) SelectTrack(index int) error {
	return c.apply(func() error {
		if !c.list.Valid(index) {
			return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, c.list.Len())
		}
		if index == c.index {
			return nil
		}
		return c.moveLocked(index)
	})
}

// Seek jumps to target, clamped into [0, duration] when the duration is
// known. Elapsed reflects target immediately. Without a loaded track it
// does nothing.
func (c *Controller) Seek(target time.Duration) error {
	return c.apply(func() error {
		if !c.loaded {
			return nil
		}
		target = max(target, 0)
		if d, ok := c.handle.Duration(); ok {
			target = min(target, d)
		}
		c.handle.SeekTo(target)
		c.elapsed = target
		return nil
	})
}

// SeekRelative moves the position by delta. The handle clamps at the
// track bounds and reports the new position with its next time update.
func (c *Controller) SeekRelative(delta time.Duration) error {
	return c.apply(func() error {
		if !c.loaded {
			return nil
		}
		c.handle.SeekBy(delta)
		return nil
	})
}

// ToggleTrackListVisibility shows or hides the track list.
func (c *Controller) ToggleTrackListVisibility() {
	_ = c.apply(func() error {
		c.trackListVisible = !c.trackListVisible
		return nil
	})
}

// OnTimeUpdate records the handle's playback position.
func (c *Controller) OnTimeUpdate(pos time.Duration) {
	_ = c.apply(func() error {
		c.elapsed = pos
		return nil
	})
}

// OnTrackEnded advances to the next track and keeps playing. This is the
// only path that resumes playback across a track boundary.
func (c *Controller) OnTrackEnded() {
	err := c.apply(func() error {
		c.playing = true
		return c.moveLocked(c.list.Next(c.index))
	})
	if err != nil && !errors.Is(err, ErrClosed) {
		c.logger.Warn().Err(err).Msg("auto-advance failed")
	}
}

// OnLoadFailed handles a track the handle accepted but could not open. Only
// a failure for the current track counts; the track is marked unloaded and
// playback stops.
func (c *Controller) OnLoadFailed(url string, err error) {
	_ = c.apply(func() error {
		t, _ := c.list.Track(c.index)
		if t.URL != url || !c.loaded {
			return nil
		}
		c.loaded = false
		c.playing = false
		c.failLocked("load", url, err)
		return nil
	})
}

// Subscribe creates a new event subscription. Subscriptions are closed by
// Close.
func (c *Controller) Subscribe() *Subscription {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()

	sub := newSubscription()
	if c.isClosed() {
		sub.close()
		return sub
	}
	c.subs = append(c.subs, sub)
	return sub
}

// Close unmounts the controller: it stops listening to the handle,
// detaches from the surface and closes every subscription. The handle
// itself is left to its owner.
func (c *Controller) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	if c.unsubscribe != nil {
		c.unsubscribe()
	}
	if c.unbind != nil {
		c.unbind()
	}

	c.subsMu.Lock()
	for _, sub := range c.subs {
		sub.close()
	}
	c.subs = nil
	c.subsMu.Unlock()

	return nil
}

func (c *Controller) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// moveLocked changes the current index and keeps the handle in sync: the
// new track is loaded before any play command, and played only if the
// controller intends to be playing.
func (c *Controller) moveLocked(index int) error {
	c.index = index
	c.elapsed = 0
	c.moved = true
	return c.loadLocked()
}

func (c *Controller) loadLocked() error {
	t, _ := c.list.Track(c.index)
	if err := c.handle.Load(t.URL); err != nil {
		c.loaded = false
		c.playing = false
		c.failLocked("load", t.URL, err)
		return fmt.Errorf("load %q: %w", t.Title, err)
	}
	c.loaded = true
	if c.playing {
		return c.playLocked()
	}
	return nil
}

func (c *Controller) playLocked() error {
	if err := c.handle.Play(); err != nil {
		t, _ := c.list.Track(c.index)
		c.playing = false
		c.failLocked("play", t.URL, err)
		return fmt.Errorf("play %q: %w", t.Title, err)
	}
	c.playing = true
	return nil
}

func (c *Controller) failLocked(op, url string, err error) {
	c.failures = append(c.failures, ErrorEvent{Operation: op, URL: url, Err: err})
}

func (c *Controller) stateLocked() State {
	t, _ := c.list.Track(c.index)
	return State{
		Index:            c.index,
		Track:            t,
		Playing:          c.playing,
		Elapsed:          c.elapsed,
		TrackListVisible: c.trackListVisible,
		Loaded:           c.loaded,
	}
}

// apply runs fn under the lock, then fans out whatever changed. Surface
// publishing and subscriber sends happen after the lock is released so a
// surface may call back into the controller.
func (c *Controller) apply(fn func() error) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	before := c.stateLocked()
	err := fn()
	after := c.stateLocked()
	c.snap.Store(&after)
	failures := c.failures
	moved := c.moved
	c.failures = nil
	c.moved = false
	c.mu.Unlock()

	c.emit(before, after, moved, failures)
	return err
}

// emit fans out the difference between two snapshots. moved reports a
// track change that kept the index, as wrapping a one-track playlist does.
func (c *Controller) emit(before, after State, moved bool, failures []ErrorEvent) {
	for _, f := range failures {
		c.logger.Warn().Err(f.Err).Str("op", f.Operation).Str("url", f.URL).Msg("media handle error")
	}

	trackChanged := moved || before.Index != after.Index
	playingChanged := before.Playing != after.Playing

	if trackChanged {
		c.logger.Debug().
			Int("index", after.Index).
			Str("title", after.Track.Title).
			Bool("playing", after.Playing).
			Msg("track changed")
	}

	c.subsMu.Lock()
	for _, sub := range c.subs {
		if trackChanged {
			sub.sendTrack(TrackChange{
				PreviousIndex: before.Index,
				Index:         after.Index,
				Track:         after.Track,
				Playing:       after.Playing,
			})
		}
		if playingChanged {
			sub.sendPlaying(PlayingChange{Playing: after.Playing})
		}
		if trackChanged || before.Elapsed != after.Elapsed {
			sub.sendPosition(PositionChange{Position: after.Elapsed})
		}
		if before.TrackListVisible != after.TrackListVisible {
			sub.sendTrackList(TrackListChange{Visible: after.TrackListVisible})
		}
		for _, f := range failures {
			sub.sendError(f)
		}
	}
	c.subsMu.Unlock()

	if trackChanged || playingChanged || before.Loaded != after.Loaded {
		c.publish()
	}
}

// publish sends the latest snapshot, not the one that triggered it, so
// interleaved handlers never leave the surface showing a stale track.
func (c *Controller) publish() {
	if c.surface == nil {
		return
	}
	st := c.State()
	np := NowPlaying{
		Title:   st.Track.Title,
		Artist:  c.labels.Artist,
		Album:   c.labels.Album,
		Artwork: c.labels.Artwork,
		URL:     st.Track.URL,
		Index:   st.Index,
		Total:   c.list.Len(),
		Playing: st.Playing,
		Loaded:  st.Loaded,
	}
	if d, ok := c.Duration(); ok {
		np.Length = d
	}
	if err := c.surface.Publish(np); err != nil {
		c.logger.Debug().Err(err).Msg("publish now playing")
	}
}
