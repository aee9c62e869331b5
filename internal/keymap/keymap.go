package keymap

// Binding ties keys to an action and documents it for the help view.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "playback", "tracklist"
}

// Bindings contains every key binding, in help display order.
var Bindings = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{ActionHelp, []string{"?"}, "Toggle help", "global"},
	{ActionToggleTrackList, []string{"t"}, "Show/hide tracks", "global"},

	// Playback
	{ActionPlayPause, []string{" "}, "Play/pause", "playback"},
	{ActionNextTrack, []string{"n", "pgdown"}, "Next track", "playback"},
	{ActionPrevTrack, []string{"p", "pgup"}, "Previous track", "playback"},
	{ActionSeekBack, []string{"left", "h"}, "Seek back", "playback"},
	{ActionSeekForward, []string{"right", "l"}, "Seek forward", "playback"},

	// Track list, active while it is shown
	{ActionMoveUp, []string{"k", "up"}, "Move up", "tracklist"},
	{ActionMoveDown, []string{"j", "down"}, "Move down", "tracklist"},
	{ActionJumpStart, []string{"g", "home"}, "First track", "tracklist"},
	{ActionJumpEnd, []string{"G", "end"}, "Last track", "tracklist"},
	{ActionSelect, []string{"enter"}, "Play selected", "tracklist"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range Bindings {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}

// DisplayKey returns the label shown for a key in help text.
func DisplayKey(key string) string {
	switch key {
	case " ":
		return "space"
	case "left":
		return "←"
	case "right":
		return "→"
	case "up":
		return "↑"
	case "down":
		return "↓"
	default:
		return key
	}
}
