// internal/player/interface.go
package player

import (
	"errors"
	"time"
)

// ErrNotLoaded is returned when a command needs a loaded track.
var ErrNotLoaded = errors.New("no track loaded")

// Listener receives notifications from a Handle.
// Callbacks are delivered one at a time, never concurrently.
type Listener interface {
	// OnTimeUpdate reports the current playback position.
	OnTimeUpdate(pos time.Duration)
	// OnTrackEnded fires once when the loaded track plays to its end.
	OnTrackEnded()
}

// LoadFailureListener is implemented by listeners that want to hear about
// tracks that were accepted by Load but could not be fetched or decoded.
type LoadFailureListener interface {
	OnLoadFailed(url string, err error)
}

// Handle is the media rendering contract the playback controller drives.
type Handle interface {
	// Load replaces the current source and must not block on I/O. The new
	// track starts paused at 0. Errors found after Load returns are
	// reported through LoadFailureListener.
	Load(url string) error
	Play() error
	Pause()
	SeekTo(pos time.Duration)
	// SeekBy moves the position by delta, clamped to the track bounds.
	SeekBy(delta time.Duration)
	Position() time.Duration
	// Duration returns false while the track length is unknown.
	Duration() (time.Duration, bool)
	// Subscribe registers l and returns a function that removes it.
	Subscribe(l Listener) (unsubscribe func())
	Close() error
}

// Verify implementations satisfy Handle at compile time.
var (
	_ Handle = (*Player)(nil)
	_ Handle = (*Mock)(nil)
)
