package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/wavelet/internal/playback"
)

// Controller events, one message type per subscription channel.
type (
	PlayingChangedMsg   playback.PlayingChange
	TrackChangedMsg     playback.TrackChange
	PositionChangedMsg  playback.PositionChange
	TrackListChangedMsg playback.TrackListChange
	ControllerErrorMsg  playback.ErrorEvent
)

// ControllerClosedMsg is sent once the controller has been closed.
type ControllerClosedMsg struct{}

// StderrMsg carries one line written by a C library.
type StderrMsg struct {
	Line string
}

// StatusClearMsg clears the status line if it still shows message ID.
type StatusClearMsg struct {
	ID int64
}

// StatusDuration is how long a status message stays visible.
const StatusDuration = 5 * time.Second

// WatchEvents returns a command that waits for the next controller event.
// Each handled event re-arms it.
func (m Model) WatchEvents() tea.Cmd {
	if m.sub == nil {
		return nil
	}
	sub := m.sub
	return func() tea.Msg {
		select {
		case e := <-sub.PlayingChanged:
			return PlayingChangedMsg(e)
		case e := <-sub.TrackChanged:
			return TrackChangedMsg(e)
		case e := <-sub.PositionChanged:
			return PositionChangedMsg(e)
		case e := <-sub.TrackListChanged:
			return TrackListChangedMsg(e)
		case e := <-sub.Error:
			return ControllerErrorMsg(e)
		case <-sub.Done:
			return ControllerClosedMsg{}
		}
	}
}

// WatchStderr returns a command that waits for captured stderr output.
func (m Model) WatchStderr() tea.Cmd {
	return waitForChannel(m.stderr, func(line string, ok bool) tea.Msg {
		if !ok {
			return nil
		}
		return StderrMsg{Line: line}
	})
}

// waitForChannel converts the next value of ch into a message. onResult
// gets false once ch is closed.
func waitForChannel[T any](ch <-chan T, onResult func(T, bool) tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		result, ok := <-ch
		return onResult(result, ok)
	}
}

// StatusClearCmd clears status message id after StatusDuration.
func StatusClearCmd(id int64) tea.Cmd {
	return tea.Tick(StatusDuration, func(time.Time) tea.Msg {
		return StatusClearMsg{ID: id}
	})
}
