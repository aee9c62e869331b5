// internal/player/state.go
package player

// State represents the handle's playback state machine.
//
//	┌──────────┐  load   ┌─────────┐  ready  ┌────────┐  play   ┌─────────┐
//	│ Unloaded │ ──────▶ │ Loading │ ──────▶ │ Paused │ ──────▶ │ Playing │
//	└──────────┘         └─────────┘         └────────┘ ◀────── └─────────┘
//	      ▲   fetch failed    │                  ▲        pause      │
//	      └───────────────────┘                  │                   │ end of stream
//	                                             │                   ▼
//	                                             │  play        ┌─────────┐
//	                                             └───────────── │  Ended  │
//	                                                            └─────────┘
//
// Load is valid from every state and always lands in Loading. A Play
// received while Loading makes the track start as soon as it is ready.
// Play from Ended restarts the track from the beginning.
type State int

const (
	Unloaded State = iota
	Loading
	Paused
	Playing
	Ended
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Unloaded:
		return "Unloaded"
	case Loading:
		return "Loading"
	case Paused:
		return "Paused"
	case Playing:
		return "Playing"
	case Ended:
		return "Ended"
	default:
		return "Unknown"
	}
}
