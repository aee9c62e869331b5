// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Transport
	OpPlaybackToggle Op = "toggle playback"
	OpTrackNext      Op = "skip to next track"
	OpTrackPrevious  Op = "go back to previous track"
	OpTrackSelect    Op = "select track"
	OpSeek           Op = "seek"

	// Media handle
	OpTrackLoad Op = "load track"
	OpTrackPlay Op = "play track"

	// Startup
	OpConfigLoad   Op = "load configuration"
	OpPlaylistLoad Op = "load playlist"
	OpLogSetup     Op = "open log file"

	// Desktop integration
	OpNowPlaying Op = "connect media controls"
	OpNotify     Op = "show notification"
)

// ForEvent maps a media handle operation name to its Op.
func ForEvent(operation string) Op {
	switch operation {
	case "load":
		return OpTrackLoad
	case "play":
		return OpTrackPlay
	default:
		return Op(operation)
	}
}

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
