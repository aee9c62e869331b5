package app

import (
	"strings"

	"github.com/llehouerou/wavelet/internal/ui/playerbar"
	"github.com/llehouerou/wavelet/internal/ui/render"
	"github.com/llehouerou/wavelet/internal/ui/styles"
)

// View renders the player bar, the track list when visible, the status
// line and the key hints.
func (m Model) View() string {
	st := m.ctrl.State()
	s := styles.T().S()

	sections := []string{playerbar.Render(m.playerbarState(), m.width)}
	if st.TrackListVisible {
		sections = append(sections, m.tracks.View(m.ctrl.Playlist(), st.Index, st.Playing, m.width))
	}

	status := ""
	if m.status != "" {
		status = s.Error.Render(render.Truncate(m.status, m.width))
	}
	sections = append(sections, status, m.help.View(m.helpMap))

	return strings.Join(sections, "\n")
}
