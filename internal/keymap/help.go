package keymap

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// Verify HelpMap satisfies the bubbles help interface.
var _ help.KeyMap = HelpMap{}

// shortHelp lists the actions shown in the one-line hint.
var shortHelp = []Action{
	ActionPlayPause,
	ActionPrevTrack,
	ActionNextTrack,
	ActionSeekBack,
	ActionSeekForward,
	ActionToggleTrackList,
	ActionHelp,
	ActionQuit,
}

// HelpMap adapts Bindings to bubbles/help.
type HelpMap struct {
	bindings []Binding
}

// NewHelpMap builds a help map over bindings.
func NewHelpMap(bindings []Binding) HelpMap {
	return HelpMap{bindings: bindings}
}

// ShortHelp returns the compact hint bindings.
func (h HelpMap) ShortHelp() []key.Binding {
	out := make([]key.Binding, 0, len(shortHelp))
	for _, action := range shortHelp {
		for _, b := range h.bindings {
			if b.Action == action {
				out = append(out, toKeyBinding(b))
				break
			}
		}
	}
	return out
}

// FullHelp returns one column per context.
func (h HelpMap) FullHelp() [][]key.Binding {
	var columns [][]key.Binding
	for _, context := range []string{"playback", "tracklist", "global"} {
		var col []key.Binding
		for _, b := range h.bindings {
			if b.Context == context {
				col = append(col, toKeyBinding(b))
			}
		}
		if len(col) > 0 {
			columns = append(columns, col)
		}
	}
	return columns
}

func toKeyBinding(b Binding) key.Binding {
	labels := make([]string, len(b.Keys))
	for i, k := range b.Keys {
		labels[i] = DisplayKey(k)
	}
	return key.NewBinding(
		key.WithKeys(b.Keys...),
		key.WithHelp(strings.Join(labels, "/"), strings.ToLower(b.Description)),
	)
}
