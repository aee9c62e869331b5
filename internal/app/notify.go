package app

import (
	"strings"

	"github.com/llehouerou/wavelet/internal/errmsg"
	"github.com/llehouerou/wavelet/internal/notify"
	"github.com/llehouerou/wavelet/internal/playback"
)

// showNowPlaying toasts the track that just started playing.
func (m *Model) showNowPlaying(title, url string) {
	if m.toaster == nil {
		return
	}

	var parts []string
	if m.labels.Artist != "" {
		parts = append(parts, m.labels.Artist)
	}
	if m.labels.Album != "" {
		parts = append(parts, m.labels.Album)
	}

	icon := notify.Icon(playback.NowPlaying{URL: url, Artwork: m.labels.Artwork})
	if err := m.toaster.Show(title, strings.Join(parts, " · "), icon); err != nil {
		m.logger.Debug().Err(err).Msg(errmsg.Format(errmsg.OpNotify, err))
	}
}
