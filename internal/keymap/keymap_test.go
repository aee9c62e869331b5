package keymap

import (
	"testing"
)

func TestBindingsHaveRequiredFields(t *testing.T) {
	valid := map[string]bool{"global": true, "playback": true, "tracklist": true}
	for i, b := range Bindings {
		if b.Action == "" {
			t.Errorf("binding[%d] has empty Action", i)
		}
		if len(b.Keys) == 0 {
			t.Errorf("binding[%d] (%s) has no Keys", i, b.Action)
		}
		if b.Description == "" {
			t.Errorf("binding[%d] (%s) has empty Description", i, b.Action)
		}
		if !valid[b.Context] {
			t.Errorf("binding[%d] (%s) has invalid context: %q", i, b.Action, b.Context)
		}
	}
}

func TestBindingsKeysAreUnique(t *testing.T) {
	seen := make(map[string]Action)
	for _, b := range Bindings {
		for _, key := range b.Keys {
			if prev, ok := seen[key]; ok {
				t.Errorf("key %q bound to both %s and %s", key, prev, b.Action)
			}
			seen[key] = b.Action
		}
	}
}

func TestByContextPlayback(t *testing.T) {
	want := []Action{ActionPlayPause, ActionNextTrack, ActionPrevTrack, ActionSeekBack, ActionSeekForward}
	got := ByContext("playback")
	if len(got) != len(want) {
		t.Fatalf("ByContext(playback) returned %d bindings, want %d", len(got), len(want))
	}
	for i, b := range got {
		if b.Action != want[i] {
			t.Errorf("binding[%d] = %s, want %s", i, b.Action, want[i])
		}
	}
}

func TestByContextUnknown(t *testing.T) {
	if got := ByContext("nope"); got != nil {
		t.Errorf("ByContext(nope) = %v, want nil", got)
	}
}

func TestDisplayKey(t *testing.T) {
	tests := map[string]string{
		" ":      "space",
		"left":   "←",
		"right":  "→",
		"up":     "↑",
		"down":   "↓",
		"pgdown": "pgdown",
		"q":      "q",
	}
	for key, want := range tests {
		if got := DisplayKey(key); got != want {
			t.Errorf("DisplayKey(%q) = %q, want %q", key, got, want)
		}
	}
}
