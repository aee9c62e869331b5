package app

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/wavelet/internal/ui/playerbar"
)

func TestKeys_PlayPause(t *testing.T) {
	m, ctrl, mock := newTestModel(t, 3, Options{})

	m, _ = updateModel(t, m, keyMsg(" "))
	assert.True(t, ctrl.State().Playing)

	_, _ = updateModel(t, m, keyMsg(" "))
	assert.False(t, ctrl.State().Playing)
	assert.Equal(t, []string{"play", "pause"}, mock.Calls())
}

func TestKeys_TrackNavigation(t *testing.T) {
	tests := []struct {
		key  string
		want int
	}{
		{"n", 1},
		{"pgdown", 1},
		{"p", 2},
		{"pgup", 2},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m, ctrl, mock := newTestModel(t, 3, Options{})
			require.NoError(t, ctrl.TogglePlay())

			_, _ = updateModel(t, m, keyMsg(tt.key))
			assert.Equal(t, tt.want, ctrl.State().Index)
			assert.False(t, ctrl.State().Playing)
			assert.Contains(t, mock.Calls(), "load "+trackURL(tt.want))
		})
	}
}

func TestKeys_Skip(t *testing.T) {
	m, _, mock := newTestModel(t, 3, Options{})

	m, _ = updateModel(t, m, keyMsg("right"))
	_, _ = updateModel(t, m, keyMsg("left"))
	assert.Equal(t, []string{"seek_by 10s", "seek_by -10s"}, mock.Calls())
}

func TestKeys_SkipConfigured(t *testing.T) {
	m, _, mock := newTestModel(t, 3, Options{Skip: 5 * time.Second})

	_, _ = updateModel(t, m, keyMsg("l"))
	assert.Equal(t, []string{"seek_by 5s"}, mock.Calls())
}

func TestKeys_TrackList(t *testing.T) {
	m, ctrl, _ := newTestModel(t, 5, Options{})

	// Cursor keys do nothing while the list is hidden.
	m, _ = updateModel(t, m, keyMsg("j"))
	assert.Equal(t, 0, m.tracks.Cursor())
	m, _ = updateModel(t, m, keyMsg("enter"))
	assert.Equal(t, 0, ctrl.State().Index)

	m, _ = updateModel(t, m, keyMsg("t"))
	require.True(t, ctrl.State().TrackListVisible)

	m, _ = updateModel(t, m, keyMsg("down"))
	m, _ = updateModel(t, m, keyMsg("j"))
	m, _ = updateModel(t, m, keyMsg("k"))
	assert.Equal(t, 1, m.tracks.Cursor())

	m, _ = updateModel(t, m, keyMsg("G"))
	assert.Equal(t, 4, m.tracks.Cursor())
	m, _ = updateModel(t, m, keyMsg("g"))
	assert.Equal(t, 0, m.tracks.Cursor())

	m, _ = updateModel(t, m, keyMsg("up"))
	m, _ = updateModel(t, m, keyMsg("down"))
	m, _ = updateModel(t, m, keyMsg("down"))
	_, _ = updateModel(t, m, keyMsg("enter"))
	assert.Equal(t, 2, ctrl.State().Index)

	_, _ = updateModel(t, m, keyMsg("t"))
	assert.False(t, ctrl.State().TrackListVisible)
}

func TestKeys_SelectKeepsPlaying(t *testing.T) {
	m, ctrl, mock := newTestModel(t, 3, Options{})
	require.NoError(t, ctrl.TogglePlay())
	ctrl.ToggleTrackListVisibility()
	mock.ResetCalls()

	m, _ = updateModel(t, m, keyMsg("j"))
	_, _ = updateModel(t, m, keyMsg("enter"))

	assert.Equal(t, 1, ctrl.State().Index)
	assert.True(t, ctrl.State().Playing)
	assert.Equal(t, []string{"load " + trackURL(1), "play"}, mock.Calls())
}

func TestKeys_QuitAndHelp(t *testing.T) {
	m, _, _ := newTestModel(t, 1, Options{})

	_, cmd := updateModel(t, m, keyMsg("q"))
	assert.True(t, isQuit(cmd))
	_, cmd = updateModel(t, m, keyMsg("ctrl+c"))
	assert.True(t, isQuit(cmd))

	m, cmd = updateModel(t, m, keyMsg("?"))
	assert.Nil(t, cmd)
	assert.True(t, m.help.ShowAll)

	_, cmd = updateModel(t, m, keyMsg("x"))
	assert.Nil(t, cmd, "unbound key")
}

func TestKeys_PlayErrorShowsStatus(t *testing.T) {
	m, ctrl, mock := newTestModel(t, 3, Options{})
	mock.SetPlayErr(errors.New("device busy"))

	m, cmd := updateModel(t, m, keyMsg(" "))
	require.NotNil(t, cmd)
	assert.False(t, ctrl.State().Playing)
	assert.Contains(t, m.status, "Failed to toggle playback")
	assert.Contains(t, m.status, "device busy")
}

func TestKeys_NoTrackLoaded(t *testing.T) {
	m, _, mock := newTestModel(t, 2, Options{})
	mock.FailLoad(trackURL(1), errors.New("missing"))

	m, _ = updateModel(t, m, keyMsg("n"))
	assert.Contains(t, m.status, "Failed to skip to next track")

	m, _ = updateModel(t, m, keyMsg(" "))
	assert.Contains(t, m.status, "Failed to toggle playback")
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func TestMouse_SeekBarClickAndDrag(t *testing.T) {
	m, ctrl, mock := newTestModel(t, 3, Options{})
	bar := playerbar.Bar(m.playerbarState(), m.width)
	require.Positive(t, bar.Width)

	m, _ = updateModel(t, m, press(bar.X+bar.Width-1, bar.Y))
	assert.True(t, m.dragging)
	assert.Equal(t, trackLength, ctrl.Elapsed())

	// The bar geometry depends on the elapsed label, so re-read it.
	bar = playerbar.Bar(m.playerbarState(), m.width)
	m, _ = updateModel(t, m, tea.MouseMsg{X: bar.X - 5, Y: 0, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	assert.Equal(t, time.Duration(0), ctrl.Elapsed(), "drag past the left edge clamps to start")

	m, _ = updateModel(t, m, tea.MouseMsg{X: bar.X, Y: bar.Y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	assert.False(t, m.dragging)

	mock.ResetCalls()
	_, _ = updateModel(t, m, tea.MouseMsg{X: bar.X + 3, Y: bar.Y, Action: tea.MouseActionMotion})
	assert.Empty(t, mock.Calls(), "motion without drag does nothing")
}

func TestMouse_Buttons(t *testing.T) {
	m, ctrl, _ := newTestModel(t, 3, Options{})

	// Prev sits at the start of the controls row.
	m, _ = updateModel(t, m, press(2, 3))
	assert.Equal(t, 2, ctrl.State().Index)

	// The track list toggle is flush right.
	m, _ = updateModel(t, m, press(m.width-3, 3))
	assert.True(t, ctrl.State().TrackListVisible)

	_, _ = updateModel(t, m, tea.MouseMsg{X: 2, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	assert.Equal(t, 2, ctrl.State().Index, "right click ignored")
}

func TestMouse_TrackListClick(t *testing.T) {
	m, ctrl, _ := newTestModel(t, 5, Options{})

	// Hidden list: the rows below the player bar are inert.
	m, _ = updateModel(t, m, press(5, playerbarHeight+3))
	assert.Equal(t, 0, ctrl.State().Index)

	ctrl.ToggleTrackListVisibility()
	m, _ = updateModel(t, m, press(5, playerbarHeight+1+3))
	assert.Equal(t, 3, ctrl.State().Index)
	assert.Equal(t, 3, m.tracks.Cursor())

	_, _ = updateModel(t, m, press(5, playerbarHeight))
	assert.Equal(t, 3, ctrl.State().Index, "list border")
}

func TestMouse_Wheel(t *testing.T) {
	m, ctrl, _ := newTestModel(t, 5, Options{})
	ctrl.ToggleTrackListVisibility()

	wheel := func(b tea.MouseButton) tea.MouseMsg {
		return tea.MouseMsg{X: 5, Y: playerbarHeight + 2, Action: tea.MouseActionPress, Button: b}
	}
	m, _ = updateModel(t, m, wheel(tea.MouseButtonWheelDown))
	m, _ = updateModel(t, m, wheel(tea.MouseButtonWheelDown))
	m, _ = updateModel(t, m, wheel(tea.MouseButtonWheelUp))
	assert.Equal(t, 1, m.tracks.Cursor())
	assert.Equal(t, 0, ctrl.State().Index, "scrolling never selects")
}
