// Package tracklist renders the playlist below the player bar and maps
// keys and clicks on it to track indices.
package tracklist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/wavelet/internal/playlist"
	"github.com/llehouerou/wavelet/internal/ui/render"
	"github.com/llehouerou/wavelet/internal/ui/styles"
)

const (
	scrollMargin = 2

	playingMarker = "▶ "
	pausedMarker  = "‖ "
	noMarker      = "  "
)

// Model is the track list view state.
type Model struct {
	cursor cursor
	height int // visible rows
}

// New returns a list showing at most height rows.
func New(height int) Model {
	return Model{cursor: cursor{margin: scrollMargin}, height: max(height, 1)}
}

// Cursor returns the highlighted index.
func (m Model) Cursor() int {
	return m.cursor.pos
}

// Offset returns the first visible index.
func (m Model) Offset() int {
	return m.cursor.offset
}

// Rows returns how many rows are visible for a list of n tracks.
func (m Model) Rows(n int) int {
	return min(m.height, n)
}

// Height returns the rendered height for a list of n tracks.
func (m Model) Height(n int) int {
	return m.Rows(n) + 2
}

// SetHeight changes the number of visible rows.
func (m *Model) SetHeight(height, n int) {
	m.height = max(height, 1)
	m.cursor.ensureVisible(n, m.height)
}

// Move shifts the cursor by delta rows.
func (m *Model) Move(delta, n int) {
	m.cursor.move(delta, n, m.height)
}

// JumpStart moves the cursor to the first track.
func (m *Model) JumpStart(n int) {
	m.cursor.jump(0, n, m.height)
}

// JumpEnd moves the cursor to the last track.
func (m *Model) JumpEnd(n int) {
	m.cursor.jump(n-1, n, m.height)
}

// Follow moves the cursor onto index, typically the current track.
func (m *Model) Follow(index, n int) {
	m.cursor.jump(index, n, m.height)
}

// IndexAt returns the track under row y, relative to the top of the
// rendered list, or false when y is a border or past the last track.
func (m Model) IndexAt(y, n int) (int, bool) {
	row := y - 1
	start, end := m.cursor.visibleRange(n, m.height)
	if row < 0 || start+row >= end {
		return 0, false
	}
	return start + row, true
}

// View renders the visible part of list inside a panel of the given width.
// current is the controller's index; playing selects its marker.
func (m Model) View(list *playlist.Playlist, current int, playing bool, width int) string {
	st := styles.T().S()
	inner := styles.PanelInnerWidth(width)
	n := list.Len()
	numWidth := len(fmt.Sprint(n))

	start, end := m.cursor.visibleRange(n, m.height)
	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		track, _ := list.Track(i)

		marker := noMarker
		if i == current {
			marker = pausedMarker
			if playing {
				marker = playingMarker
			}
		}
		prefix := fmt.Sprintf("%s%*d. ", marker, numWidth, i+1)
		title := render.Truncate(track.Title, max(inner-ansi.StringWidth(prefix), 1))
		line := render.Pad(prefix+title, inner)

		switch {
		case i == m.cursor.pos:
			line = st.Cursor.Render(line)
		case i == current:
			line = st.Playing.Render(line)
		default:
			line = st.Base.Render(line)
		}
		rows = append(rows, line)
	}

	return styles.Panel(width).Render(strings.Join(rows, "\n"))
}
