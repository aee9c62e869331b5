package tracklist

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/wavelet/internal/playlist"
)

func testList(t *testing.T, n int) *playlist.Playlist {
	t.Helper()
	tracks := make([]playlist.Track, n)
	for i := range tracks {
		tracks[i] = playlist.Track{
			Title: fmt.Sprintf("Track %d", i+1),
			URL:   fmt.Sprintf("/music/%02d.mp3", i+1),
		}
	}
	list, err := playlist.New(tracks...)
	require.NoError(t, err)
	return list
}

func TestView_MarksCurrentTrack(t *testing.T) {
	list := testList(t, 3)
	m := New(10)

	out := m.View(list, 1, true, 30)
	lines := strings.Split(ansi.Strip(out), "\n")
	require.Len(t, lines, m.Height(list.Len()))

	assert.Contains(t, lines[1], "  1. Track 1")
	assert.Contains(t, lines[2], "▶ 2. Track 2")
	assert.Contains(t, lines[3], "  3. Track 3")
	for i, line := range strings.Split(out, "\n") {
		assert.Equal(t, 30, lipgloss.Width(line), "line %d", i)
	}

	paused := ansi.Strip(m.View(list, 1, false, 30))
	assert.Contains(t, paused, "‖ 2. Track 2")
}

func TestView_ScrollsToCursor(t *testing.T) {
	list := testList(t, 20)
	m := New(5)
	m.JumpEnd(list.Len())

	plain := ansi.Strip(m.View(list, 0, false, 30))
	assert.Contains(t, plain, "20. Track 20")
	assert.NotContains(t, plain, " 1. Track 1 ")
	assert.Equal(t, 15, m.Offset())
	assert.Equal(t, 7, m.Height(list.Len()))
}

func TestView_NumbersAligned(t *testing.T) {
	list := testList(t, 12)
	m := New(12)

	lines := strings.Split(ansi.Strip(m.View(list, 5, false, 30)), "\n")
	assert.Contains(t, lines[1], "   1. Track 1")
	assert.Contains(t, lines[12], "  12. Track 12")
}

func TestIndexAt(t *testing.T) {
	list := testList(t, 20)
	m := New(5)
	n := list.Len()

	idx, ok := m.IndexAt(1, n)
	assert.True(t, ok)
	assert.Equal(t, 0, idx)

	_, ok = m.IndexAt(0, n)
	assert.False(t, ok, "top border")
	_, ok = m.IndexAt(6, n)
	assert.False(t, ok, "bottom border")

	m.Follow(12, n)
	idx, ok = m.IndexAt(1, n)
	require.True(t, ok)
	assert.Equal(t, m.Offset(), idx)
}

func TestIndexAt_ShortList(t *testing.T) {
	list := testList(t, 2)
	m := New(5)

	_, ok := m.IndexAt(3, list.Len())
	assert.False(t, ok)
	assert.Equal(t, 4, m.Height(list.Len()))
}

func TestNavigation(t *testing.T) {
	m := New(5)
	m.Move(3, 10)
	assert.Equal(t, 3, m.Cursor())
	m.JumpStart(10)
	assert.Equal(t, 0, m.Cursor())
	m.JumpEnd(10)
	assert.Equal(t, 9, m.Cursor())
	m.Follow(4, 10)
	assert.Equal(t, 4, m.Cursor())

	m.SetHeight(2, 10)
	start, end := m.cursor.visibleRange(10, m.height)
	assert.LessOrEqual(t, start, 4)
	assert.Greater(t, end, 4)
}
