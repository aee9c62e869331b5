package playback

import (
	"time"

	"github.com/llehouerou/wavelet/internal/playlist"
)

// PlayingChange is emitted when the playback axis flips.
type PlayingChange struct {
	Playing bool
}

// TrackChange is emitted when the current index changes.
//
// Emitted by NextTrack, PreviousTrack, SelectTrack and auto-advance.
// Playing carries the state after the change, so a consumer can tell an
// auto-advance (true) from a manual skip (false).
type TrackChange struct {
	PreviousIndex int
	Index         int
	Track         playlist.Track
	Playing       bool
}

// PositionChange is emitted on every time update and seek.
type PositionChange struct {
	Position time.Duration
}

// TrackListChange is emitted when the track list is shown or hidden.
type TrackListChange struct {
	Visible bool
}

// ErrorEvent is emitted when the handle refuses a command.
type ErrorEvent struct {
	Operation string // e.g., "load", "play"
	URL       string
	Err       error
}
