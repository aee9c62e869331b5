// Package playerbar renders the player panel: the current track, a seek bar
// with elapsed and total time, and the transport controls.
package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/wavelet/internal/playback"
	"github.com/llehouerou/wavelet/internal/ui/render"
	"github.com/llehouerou/wavelet/internal/ui/styles"
)

// Height is the rendered height: three content rows inside a border.
const Height = 5

// Minimum seek bar width; narrower terminals show times only.
const minBarWidth = 3

const (
	prevLabel  = "« Prev"
	playLabel  = "▶ Play"
	pauseLabel = "‖ Pause"
	nextLabel  = "Next »"
	showTracks = "Show Tracks"
	hideTracks = "Hide Tracks"

	buttonGap = "   "
)

// State holds everything needed to render the player bar.
type State struct {
	Title            string
	Index            int
	Total            int
	Status           string
	Playing          bool
	Elapsed          time.Duration
	Duration         time.Duration
	DurationKnown    bool
	TrackListVisible bool
}

// NewState builds a State from a controller snapshot.
func NewState(st playback.State, total int, duration time.Duration, known bool) State {
	return State{
		Title:            st.Track.Title,
		Index:            st.Index,
		Total:            total,
		Status:           st.Status(),
		Playing:          st.Playing,
		Elapsed:          st.Elapsed,
		Duration:         duration,
		DurationKnown:    known,
		TrackListVisible: st.TrackListVisible,
	}
}

func (s State) playLabel() string {
	if s.Playing {
		return pauseLabel
	}
	return playLabel
}

func (s State) toggleLabel() string {
	if s.TrackListVisible {
		return hideTracks
	}
	return showTracks
}

// Target identifies a clickable part of the player bar.
type Target int

const (
	TargetNone Target = iota
	TargetSeekBar
	TargetPrev
	TargetPlayPause
	TargetNext
	TargetToggleTracks
)

type span struct {
	x, width int
	target   Target
}

// layout is the geometry of one rendering, shared by Render and HitTest.
type layout struct {
	inner   int
	elapsed string
	total   string
	bar     SeekBar
	buttons []span
}

// Content starts after the left border and one cell of padding; rows
// start after the top border.
const (
	contentX    = 2
	timeRow     = 2
	controlsRow = 3
)

func computeLayout(s State, width int) layout {
	l := layout{
		inner:   styles.PanelInnerWidth(width),
		elapsed: FormatTime(s.Elapsed),
		total:   FormatDuration(s.Duration, s.DurationKnown),
	}

	barWidth := l.inner - ansi.StringWidth(l.elapsed) - ansi.StringWidth(l.total) - 4
	if barWidth >= minBarWidth {
		l.bar = SeekBar{
			X:     contentX + ansi.StringWidth(l.elapsed) + 2,
			Y:     timeRow,
			Width: barWidth,
		}
	}

	x := contentX
	for i, b := range []struct {
		label  string
		target Target
	}{
		{prevLabel, TargetPrev},
		{s.playLabel(), TargetPlayPause},
		{nextLabel, TargetNext},
	} {
		if i > 0 {
			x += len(buttonGap)
		}
		w := ansi.StringWidth(b.label)
		l.buttons = append(l.buttons, span{x: x, width: w, target: b.target})
		x += w
	}
	// Same placement as render.Row: flush right, at least one cell apart.
	tw := ansi.StringWidth(s.toggleLabel())
	l.buttons = append(l.buttons, span{
		x:      contentX + max(l.inner-tw, x-contentX+1),
		width:  tw,
		target: TargetToggleTracks,
	})
	return l
}

// Render returns the player panel at the given width.
func Render(s State, width int) string {
	t := styles.T()
	st := t.S()
	l := computeLayout(s, width)

	title := render.Sanitize(s.Title)
	if title == "" {
		title = "No track"
	}
	right := s.Status
	if s.Total > 0 {
		right = fmt.Sprintf("%s · %d/%d", s.Status, s.Index+1, s.Total)
	}
	title = render.Truncate(title, max(l.inner-ansi.StringWidth(right)-1, 1))
	titleLine := render.Row(
		styles.GradientTitle(title, t.Primary, t.Secondary),
		st.Muted.Render(right),
		l.inner,
	)

	var timeLine string
	if l.bar.Width > 0 {
		timeLine = st.Base.Render(l.elapsed) + "  " +
			renderSeekBar(s.Elapsed, s.Duration, l.bar.Width) + "  " +
			st.Base.Render(l.total)
	} else {
		timeLine = st.Base.Render(l.elapsed + " / " + l.total)
	}

	var controls strings.Builder
	labels := []string{prevLabel, s.playLabel(), nextLabel}
	for i, label := range labels {
		if i > 0 {
			controls.WriteString(buttonGap)
		}
		controls.WriteString(st.Base.Render(label))
	}
	controlsLine := render.Row(controls.String(), st.Button.Render(s.toggleLabel()), l.inner)

	return styles.Panel(width).Render(strings.Join([]string{titleLine, timeLine, controlsLine}, "\n"))
}

// Hit is the result of a click on the player bar.
type Hit struct {
	Target Target
	// Position is the seek target when Target is TargetSeekBar.
	Position time.Duration
}

// HitTest resolves a click at (x, y), relative to the top-left corner of the
// rendered bar. Clicks on the seek bar with an unknown duration hit nothing.
func HitTest(s State, width, x, y int) Hit {
	l := computeLayout(s, width)
	switch y {
	case timeRow:
		if l.bar.Contains(x, y) && s.DurationKnown {
			return Hit{Target: TargetSeekBar, Position: l.bar.PositionAt(x, s.Duration)}
		}
	case controlsRow:
		for _, b := range l.buttons {
			if x >= b.x && x < b.x+b.width {
				return Hit{Target: b.target}
			}
		}
	}
	return Hit{}
}

// Bar returns the seek bar geometry for s rendered at width, so that drags
// can keep seeking after the pointer leaves the bar's row.
func Bar(s State, width int) SeekBar {
	return computeLayout(s, width).bar
}
