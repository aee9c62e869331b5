package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/wavelet/internal/errmsg"
)

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.tracks.SetHeight(m.trackListRows(), m.ctrl.Playlist().Len())
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case TrackChangedMsg:
		m.tracks.Follow(msg.Index, m.ctrl.Playlist().Len())
		if msg.Playing {
			m.showNowPlaying(msg.Track.Title, msg.Track.URL)
		}
		return m, m.WatchEvents()

	case PlayingChangedMsg, PositionChangedMsg, TrackListChangedMsg:
		// State is read from the controller snapshot at render time.
		return m, m.WatchEvents()

	case ControllerErrorMsg:
		cmd := m.setStatus(errmsg.FormatWith(errmsg.ForEvent(msg.Operation), m.titleFor(msg.URL), msg.Err))
		return m, tea.Batch(cmd, m.WatchEvents())

	case ControllerClosedMsg:
		return m, tea.Quit

	case StderrMsg:
		m.logger.Debug().Str("line", msg.Line).Msg("stderr")
		return m, m.WatchStderr()

	case StatusClearMsg:
		if msg.ID == m.statusID {
			m.status = ""
		}
		return m, nil
	}

	return m, nil
}

// setStatus shows text in the status line and schedules its removal.
func (m *Model) setStatus(text string) tea.Cmd {
	if text == "" {
		return nil
	}
	m.statusID++
	m.status = text
	return StatusClearCmd(m.statusID)
}

// report shows err, if any, as a failed op.
func (m *Model) report(op errmsg.Op, err error) tea.Cmd {
	if err == nil {
		return nil
	}
	m.logger.Debug().Err(err).Str("op", string(op)).Msg("operation failed")
	return m.setStatus(errmsg.Format(op, err))
}

// titleFor returns the playlist title of url, or url itself.
func (m Model) titleFor(url string) string {
	for _, t := range m.ctrl.Playlist().Tracks() {
		if t.URL == url {
			return t.Title
		}
	}
	return url
}

// trackListRows is the number of list rows that fit below the player bar.
func (m Model) trackListRows() int {
	return max(m.height-playerbarHeight-listBorder-footerHeight, 1)
}
