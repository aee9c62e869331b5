// Package keymap defines key bindings and action dispatch for the player.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit Action = "quit"
	ActionHelp Action = "help"

	// Playback actions
	ActionPlayPause   Action = "play_pause"
	ActionNextTrack   Action = "next_track"
	ActionPrevTrack   Action = "prev_track"
	ActionSeekForward Action = "seek_forward"
	ActionSeekBack    Action = "seek_back"

	// Track list actions
	ActionToggleTrackList Action = "toggle_tracklist"
	ActionMoveUp          Action = "move_up"
	ActionMoveDown        Action = "move_down"
	ActionJumpStart       Action = "jump_start"
	ActionJumpEnd         Action = "jump_end"
	ActionSelect          Action = "select"
)
