package mpris

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/llehouerou/wavelet/internal/playback"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("fake"), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestFindAlbumArt(t *testing.T) {
	dir := t.TempDir()
	coverPath := filepath.Join(dir, "cover.jpg")
	writeFile(t, coverPath)

	got := FindAlbumArt(filepath.Join(dir, "track.mp3"))
	if got != coverPath {
		t.Errorf("FindAlbumArt() = %q, want %q", got, coverPath)
	}
}

func TestFindAlbumArt_NotFound(t *testing.T) {
	got := FindAlbumArt(filepath.Join(t.TempDir(), "track.mp3"))
	if got != "" {
		t.Errorf("FindAlbumArt() = %q, want empty string", got)
	}
}

func TestFindAlbumArt_Priority(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "folder.jpg"))
	coverPath := filepath.Join(dir, "cover.jpg")
	writeFile(t, coverPath)

	got := FindAlbumArt(filepath.Join(dir, "track.mp3"))
	if got != coverPath {
		t.Errorf("FindAlbumArt() = %q, want %q (higher priority)", got, coverPath)
	}
}

func TestArtURL(t *testing.T) {
	dir := t.TempDir()
	coverPath := filepath.Join(dir, "front.png")
	writeFile(t, coverPath)
	track := filepath.Join(dir, "song.mp3")

	tests := []struct {
		name string
		np   playback.NowPlaying
		want string
	}{
		{
			name: "configured remote artwork wins",
			np:   playback.NowPlaying{URL: track, Artwork: []string{"https://example.com/a.png"}},
			want: "https://example.com/a.png",
		},
		{
			name: "empty references are skipped",
			np:   playback.NowPlaying{URL: track, Artwork: []string{"", "file:///art/b.png"}},
			want: "file:///art/b.png",
		},
		{
			name: "cover next to local track",
			np:   playback.NowPlaying{URL: track},
			want: "file://" + coverPath,
		},
		{
			name: "cover next to file url",
			np:   playback.NowPlaying{URL: "file://" + track},
			want: "file://" + coverPath,
		},
		{
			name: "remote track without artwork",
			np:   playback.NowPlaying{URL: "https://example.com/song.mp3"},
			want: "",
		},
		{
			name: "nothing loaded",
			np:   playback.NowPlaying{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ArtURL(tt.np); got != tt.want {
				t.Errorf("ArtURL() = %q, want %q", got, tt.want)
			}
		})
	}
}
