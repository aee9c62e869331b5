package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/wavelet/internal/playback"
	"github.com/llehouerou/wavelet/internal/playlist"
)

type toast struct {
	title, body, icon string
}

type fakeToaster struct {
	shown []toast
	err   error
}

func (f *fakeToaster) Show(title, body, icon string) error {
	f.shown = append(f.shown, toast{title, body, icon})
	return f.err
}

func trackChanged(index int, playing bool) TrackChangedMsg {
	return TrackChangedMsg{
		Index:   index,
		Track:   playlist.Track{Title: "Track 1", URL: trackURL(index)},
		Playing: playing,
	}
}

func TestTrackChanged_ToastsWhilePlaying(t *testing.T) {
	toaster := &fakeToaster{}
	m, _, _ := newTestModel(t, 3, Options{
		Toaster: toaster,
		Labels:  playback.Labels{Artist: "Various", Album: "Samples"},
	})

	m, cmd := updateModel(t, m, trackChanged(1, true))
	require.NotNil(t, cmd, "event watch re-armed")
	require.Len(t, toaster.shown, 1)
	assert.Equal(t, toast{"Track 1", "Various · Samples", ""}, toaster.shown[0])
	assert.Equal(t, 1, m.tracks.Cursor(), "cursor follows the current track")

	_, _ = updateModel(t, m, trackChanged(2, false))
	assert.Len(t, toaster.shown, 1, "no toast for manual skips")
}

func TestTrackChanged_ToastIcon(t *testing.T) {
	cover := filepath.Join(t.TempDir(), "cover.png")
	require.NoError(t, os.WriteFile(cover, []byte("png"), 0o600))

	toaster := &fakeToaster{}
	m, _, _ := newTestModel(t, 3, Options{
		Toaster: toaster,
		Labels:  playback.Labels{Artwork: []string{cover}},
	})

	_, _ = updateModel(t, m, trackChanged(1, true))
	require.Len(t, toaster.shown, 1)
	assert.Equal(t, cover, toaster.shown[0].icon)
	assert.Empty(t, toaster.shown[0].body)
}

func TestTrackChanged_NoToaster(t *testing.T) {
	m, _, _ := newTestModel(t, 3, Options{})

	m, _ = updateModel(t, m, trackChanged(1, true))
	assert.Equal(t, 1, m.tracks.Cursor())
}

func TestTrackChanged_ToastErrorIgnored(t *testing.T) {
	toaster := &fakeToaster{err: errors.New("no notification daemon")}
	m, _, _ := newTestModel(t, 3, Options{Toaster: toaster})

	m, _ = updateModel(t, m, trackChanged(1, true))
	assert.Len(t, toaster.shown, 1)
	assert.Empty(t, m.status)
}
