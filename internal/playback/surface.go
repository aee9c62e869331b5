package playback

import "time"

// NowPlaying is the metadata record handed to a notification surface.
type NowPlaying struct {
	Title   string
	Artist  string
	Album   string
	Artwork []string
	URL     string
	Index   int
	Total   int
	// Length is zero while the duration is unknown.
	Length  time.Duration
	Playing bool
	Loaded  bool
}

// Surface is a platform now-playing integration (lock screen, desktop
// media keys). Publishing is best-effort.
type Surface interface {
	Publish(np NowPlaying) error
}

// Commands are the remote commands a platform surface may issue.
type Commands interface {
	Play() error
	Pause() error
	NextTrack() error
	PreviousTrack() error
}

// Seeker is implemented by Commands that also support positioning.
type Seeker interface {
	Seek(pos time.Duration) error
	SeekRelative(delta time.Duration) error
	Elapsed() time.Duration
}

// CommandBinder is implemented by surfaces that accept remote commands.
// The returned function detaches cmds.
type CommandBinder interface {
	BindCommands(cmds Commands) (unbind func())
}

// Labels are the fixed artist/album/artwork values published with every
// track.
type Labels struct {
	Artist  string
	Album   string
	Artwork []string
}
