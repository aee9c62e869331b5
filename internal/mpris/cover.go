package mpris

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/llehouerou/wavelet/internal/playback"
	"github.com/llehouerou/wavelet/internal/playlist"
)

// coverNames lists common album art filenames in priority order.
var coverNames = []string{
	"cover.jpg", "cover.png", "cover.jpeg",
	"folder.jpg", "folder.png", "folder.jpeg",
	"front.jpg", "front.png", "front.jpeg",
}

// ArtURL picks the artwork URL to advertise for np: the first configured
// artwork reference, else a cover file next to a local track.
func ArtURL(np playback.NowPlaying) string {
	for _, ref := range np.Artwork {
		if ref == "" {
			continue
		}
		if playlist.IsRemote(ref) || strings.HasPrefix(ref, "file://") {
			return ref
		}
		if abs, err := filepath.Abs(ref); err == nil {
			return "file://" + abs
		}
	}

	if np.URL == "" || playlist.IsRemote(np.URL) {
		return ""
	}
	if art := FindAlbumArt(playlist.LocalPath(np.URL)); art != "" {
		return "file://" + art
	}
	return ""
}

// FindAlbumArt looks for album art in the same directory as the track.
// Returns the path to the art file, or empty string if not found.
func FindAlbumArt(trackPath string) string {
	dir := filepath.Dir(trackPath)
	for _, name := range coverNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
