package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/wavelet/internal/errmsg"
	"github.com/llehouerou/wavelet/internal/keymap"
	"github.com/llehouerou/wavelet/internal/ui/playerbar"
)

const (
	playerbarHeight = playerbar.Height
	listBorder      = 2
)

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := m.ctrl.Playlist().Len()
	listVisible := m.ctrl.State().TrackListVisible

	switch m.keys.Resolve(msg.String(), listVisible) {
	case keymap.ActionQuit:
		return m, tea.Quit
	case keymap.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
	case keymap.ActionPlayPause:
		return m, m.report(errmsg.OpPlaybackToggle, m.ctrl.TogglePlay())
	case keymap.ActionNextTrack:
		return m, m.report(errmsg.OpTrackNext, m.ctrl.NextTrack())
	case keymap.ActionPrevTrack:
		return m, m.report(errmsg.OpTrackPrevious, m.ctrl.PreviousTrack())
	case keymap.ActionSeekBack:
		return m, m.report(errmsg.OpSeek, m.ctrl.SeekRelative(-m.skip))
	case keymap.ActionSeekForward:
		return m, m.report(errmsg.OpSeek, m.ctrl.SeekRelative(m.skip))
	case keymap.ActionToggleTrackList:
		m.ctrl.ToggleTrackListVisibility()
	case keymap.ActionMoveUp:
		m.tracks.Move(-1, n)
	case keymap.ActionMoveDown:
		m.tracks.Move(1, n)
	case keymap.ActionJumpStart:
		m.tracks.JumpStart(n)
	case keymap.ActionJumpEnd:
		m.tracks.JumpEnd(n)
	case keymap.ActionSelect:
		return m, m.selectTrack(m.tracks.Cursor())
	}
	return m, nil
}

func (m *Model) selectTrack(index int) tea.Cmd {
	err := m.ctrl.SelectTrack(index)
	if err == nil {
		return nil
	}
	track, _ := m.ctrl.Playlist().Track(index)
	return m.setStatus(errmsg.FormatWith(errmsg.OpTrackSelect, track.Title, err))
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	pb := m.playerbarState()

	switch {
	case msg.Action == tea.MouseActionRelease:
		m.dragging = false
		return m, nil

	case msg.Action == tea.MouseActionMotion && m.dragging:
		if !pb.DurationKnown {
			return m, nil
		}
		pos := playerbar.Bar(pb, m.width).PositionAt(msg.X, pb.Duration)
		return m, m.report(errmsg.OpSeek, m.ctrl.Seek(pos))

	case msg.Action != tea.MouseActionPress:
		return m, nil

	case msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown:
		if pb.TrackListVisible && msg.Y >= playerbarHeight {
			delta := 1
			if msg.Button == tea.MouseButtonWheelUp {
				delta = -1
			}
			m.tracks.Move(delta, m.ctrl.Playlist().Len())
		}
		return m, nil

	case msg.Button != tea.MouseButtonLeft:
		return m, nil
	}

	if msg.Y < playerbarHeight {
		return m.clickPlayerBar(pb, msg.X, msg.Y)
	}
	if pb.TrackListVisible {
		if idx, ok := m.tracks.IndexAt(msg.Y-playerbarHeight, m.ctrl.Playlist().Len()); ok {
			m.tracks.Follow(idx, m.ctrl.Playlist().Len())
			return m, m.selectTrack(idx)
		}
	}
	return m, nil
}

func (m Model) clickPlayerBar(pb playerbar.State, x, y int) (tea.Model, tea.Cmd) {
	hit := playerbar.HitTest(pb, m.width, x, y)
	switch hit.Target {
	case playerbar.TargetSeekBar:
		m.dragging = true
		return m, m.report(errmsg.OpSeek, m.ctrl.Seek(hit.Position))
	case playerbar.TargetPrev:
		return m, m.report(errmsg.OpTrackPrevious, m.ctrl.PreviousTrack())
	case playerbar.TargetPlayPause:
		return m, m.report(errmsg.OpPlaybackToggle, m.ctrl.TogglePlay())
	case playerbar.TargetNext:
		return m, m.report(errmsg.OpTrackNext, m.ctrl.NextTrack())
	case playerbar.TargetToggleTracks:
		m.ctrl.ToggleTrackListVisibility()
	}
	return m, nil
}

func (m Model) playerbarState() playerbar.State {
	d, ok := m.ctrl.Duration()
	return playerbar.NewState(m.ctrl.State(), m.ctrl.Playlist().Len(), d, ok)
}
