//go:build linux

package mpris

import (
	"testing"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/wavelet/internal/playback"
)

type fakeCommands struct {
	calls   []string
	elapsed time.Duration
}

func (f *fakeCommands) record(call string) error {
	f.calls = append(f.calls, call)
	return nil
}

func (f *fakeCommands) Play() error          { return f.record("play") }
func (f *fakeCommands) Pause() error         { return f.record("pause") }
func (f *fakeCommands) NextTrack() error     { return f.record("next") }
func (f *fakeCommands) PreviousTrack() error { return f.record("previous") }

func (f *fakeCommands) Seek(pos time.Duration) error {
	f.calls = append(f.calls, "seek "+pos.String())
	f.elapsed = pos
	return nil
}

func (f *fakeCommands) SeekRelative(delta time.Duration) error {
	f.calls = append(f.calls, "seek_relative "+delta.String())
	return nil
}

func (f *fakeCommands) Elapsed() time.Duration { return f.elapsed }

func nowPlaying() playback.NowPlaying {
	return playback.NowPlaying{
		Title:  "Intro",
		Artist: "Various",
		Album:  "Demo",
		URL:    "https://example.com/intro.mp3",
		Index:  2,
		Total:  5,
		Length: 3 * time.Minute,
		Loaded: true,
	}
}

func TestPlayerAdapter_RoutesCommands(t *testing.T) {
	p := &playerAdapter{}
	cmds := &fakeCommands{}
	p.bind(cmds)
	p.update(nowPlaying())

	require.NoError(t, p.Play())
	require.NoError(t, p.Pause())
	require.NoError(t, p.Next())
	require.NoError(t, p.Previous())
	require.NoError(t, p.Stop())
	require.NoError(t, p.Seek(types.Microseconds(10_000_000)))

	assert.Equal(t, []string{"play", "pause", "next", "previous", "pause", "seek_relative 10s"}, cmds.calls)
}

func TestPlayerAdapter_PlayPauseFollowsPublishedState(t *testing.T) {
	p := &playerAdapter{}
	cmds := &fakeCommands{}
	p.bind(cmds)

	np := nowPlaying()
	p.update(np)
	require.NoError(t, p.PlayPause())

	np.Playing = true
	p.update(np)
	require.NoError(t, p.PlayPause())

	assert.Equal(t, []string{"play", "pause"}, cmds.calls)
}

func TestPlayerAdapter_Unbound(t *testing.T) {
	p := &playerAdapter{}
	p.update(nowPlaying())

	assert.NoError(t, p.Play())
	assert.NoError(t, p.PlayPause())
	assert.NoError(t, p.Next())
	assert.NoError(t, p.Seek(1))

	canSeek, _ := p.CanSeek()
	assert.False(t, canSeek)
	pos, _ := p.Position()
	assert.Zero(t, pos)
}

func TestPlayerAdapter_SetPosition(t *testing.T) {
	p := &playerAdapter{}
	cmds := &fakeCommands{}
	p.bind(cmds)
	np := nowPlaying()
	p.update(np)

	require.NoError(t, p.SetPosition("/org/mpris/MediaPlayer2/Track/stale", 5_000_000))
	assert.Empty(t, cmds.calls)

	require.NoError(t, p.SetPosition(formatTrackID(np.URL), 5_000_000))
	assert.Equal(t, []string{"seek 5s"}, cmds.calls)

	pos, err := p.Position()
	require.NoError(t, err)
	assert.Equal(t, int64(5_000_000), pos)
}

func TestPlayerAdapter_PlaybackStatus(t *testing.T) {
	p := &playerAdapter{}

	status, _ := p.PlaybackStatus()
	assert.Equal(t, types.PlaybackStatusStopped, status)

	np := nowPlaying()
	p.update(np)
	status, _ = p.PlaybackStatus()
	assert.Equal(t, types.PlaybackStatusPaused, status)

	np.Playing = true
	p.update(np)
	status, _ = p.PlaybackStatus()
	assert.Equal(t, types.PlaybackStatusPlaying, status)
}

func TestPlayerAdapter_Metadata(t *testing.T) {
	p := &playerAdapter{}

	meta, err := p.Metadata()
	require.NoError(t, err)
	assert.Equal(t, types.Metadata{}, meta)

	np := nowPlaying()
	np.Artwork = []string{"https://example.com/art.png"}
	p.update(np)

	meta, err = p.Metadata()
	require.NoError(t, err)
	assert.Equal(t, dbus.ObjectPath(formatTrackID(np.URL)), meta.TrackId)
	assert.Equal(t, "Intro", meta.Title)
	assert.Equal(t, []string{"Various"}, meta.Artist)
	assert.Equal(t, "Demo", meta.Album)
	assert.Equal(t, 3, meta.TrackNumber)
	assert.Equal(t, types.Microseconds(180_000_000), meta.Length)
	assert.Equal(t, "https://example.com/art.png", meta.ArtUrl)
}

func TestPlayerAdapter_Capabilities(t *testing.T) {
	p := &playerAdapter{}
	p.bind(&fakeCommands{})

	canPlay, _ := p.CanPlay()
	assert.False(t, canPlay, "nothing published yet")

	p.update(nowPlaying())
	canPlay, _ = p.CanPlay()
	canNext, _ := p.CanGoNext()
	canPrev, _ := p.CanGoPrevious()
	canSeek, _ := p.CanSeek()
	assert.True(t, canPlay)
	assert.True(t, canNext)
	assert.True(t, canPrev)
	assert.True(t, canSeek)
}

func TestFormatTrackID_Stable(t *testing.T) {
	a := formatTrackID("/music/a.mp3")
	assert.Equal(t, a, formatTrackID("/music/a.mp3"))
	assert.NotEqual(t, a, formatTrackID("/music/b.mp3"))
	assert.Contains(t, a, "/org/mpris/MediaPlayer2/Track/")
}
