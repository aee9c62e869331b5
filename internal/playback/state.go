// internal/playback/state.go
package playback

import (
	"time"

	"github.com/llehouerou/wavelet/internal/playlist"
)

// State is a snapshot of the controller.
//
// Playing is the intended playback state. It is authoritative until the
// handle reports otherwise and is not necessarily what the speaker is doing
// this very instant.
type State struct {
	Index            int
	Track            playlist.Track
	Playing          bool
	Elapsed          time.Duration
	TrackListVisible bool
	// Loaded is false when the current track failed to load.
	Loaded bool
}

// Status returns a short label for the playback axis.
func (s State) Status() string {
	switch {
	case !s.Loaded:
		return "Stopped"
	case s.Playing:
		return "Playing"
	default:
		return "Paused"
	}
}
