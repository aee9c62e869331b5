//nolint:goconst // test cases intentionally repeat strings for readability
package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpPlaybackToggle,
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with operation",
			op:       OpPlaybackToggle,
			err:      errors.New("no track loaded"),
			expected: "Failed to toggle playback: no track loaded",
		},
		{
			name:     "track navigation",
			op:       OpTrackNext,
			err:      errors.New("file not found"),
			expected: "Failed to skip to next track: file not found",
		},
		{
			name:     "startup",
			op:       OpPlaylistLoad,
			err:      errors.New("unsupported playlist format: .m3u"),
			expected: "Failed to load playlist: unsupported playlist format: .m3u",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.op, tt.err)
			if result != tt.expected {
				t.Errorf("Format(%q, %v) = %q, want %q", tt.op, tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpTrackLoad,
			context:  "song.mp3",
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with context",
			op:       OpTrackLoad,
			context:  "song.mp3",
			err:      errors.New("permission denied"),
			expected: "Failed to load track 'song.mp3': permission denied",
		},
		{
			name:     "empty context falls back to Format",
			op:       OpTrackLoad,
			context:  "",
			err:      errors.New("permission denied"),
			expected: "Failed to load track: permission denied",
		},
		{
			name:     "select with title context",
			op:       OpTrackSelect,
			context:  "Intro",
			err:      errors.New("unsupported format"),
			expected: "Failed to select track 'Intro': unsupported format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatWith(tt.op, tt.context, tt.err)
			if result != tt.expected {
				t.Errorf("FormatWith(%q, %q, %v) = %q, want %q", tt.op, tt.context, tt.err, result, tt.expected)
			}
		})
	}
}

func TestForEvent(t *testing.T) {
	tests := []struct {
		operation string
		want      Op
	}{
		{"load", OpTrackLoad},
		{"play", OpTrackPlay},
		{"rewind", Op("rewind")},
	}

	for _, tt := range tests {
		t.Run(tt.operation, func(t *testing.T) {
			if got := ForEvent(tt.operation); got != tt.want {
				t.Errorf("ForEvent(%q) = %q, want %q", tt.operation, got, tt.want)
			}
		})
	}
}

func TestOpConstants(t *testing.T) {
	ops := []Op{
		OpPlaybackToggle, OpTrackNext, OpTrackPrevious, OpTrackSelect, OpSeek,
		OpTrackLoad, OpTrackPlay,
		OpConfigLoad, OpPlaylistLoad, OpLogSetup,
		OpNowPlaying, OpNotify,
	}

	testErr := errors.New("test error")

	for _, op := range ops {
		t.Run(string(op), func(t *testing.T) {
			if op == "" {
				t.Error("Op constant should not be empty")
			}

			expected := "Failed to " + string(op) + ": test error"
			if result := Format(op, testErr); result != expected {
				t.Errorf("Format = %q, want %q", result, expected)
			}
		})
	}
}
