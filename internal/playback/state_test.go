package playback

import "testing"

func TestState_Status(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  string
	}{
		{"not loaded", State{}, "Stopped"},
		{"not loaded but intending to play", State{Playing: true}, "Stopped"},
		{"paused", State{Loaded: true}, "Paused"},
		{"playing", State{Loaded: true, Playing: true}, "Playing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.Status(); got != tt.want {
				t.Errorf("Status() = %q, want %q", got, tt.want)
			}
		})
	}
}
