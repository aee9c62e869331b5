package notify

import (
	"strings"

	"github.com/llehouerou/wavelet/internal/mpris"
	"github.com/llehouerou/wavelet/internal/playback"
)

// Icon returns a local image path to show with np, or "" if there is none.
// Notification servers only load icons from disk, so remote artwork is
// skipped.
func Icon(np playback.NowPlaying) string {
	art := mpris.ArtURL(np)
	if path, ok := strings.CutPrefix(art, "file://"); ok {
		return path
	}
	return ""
}
