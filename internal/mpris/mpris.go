//go:build linux

package mpris

import (
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/events"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/rs/zerolog"

	"github.com/llehouerou/wavelet/internal/playback"
)

// Verify Adapter is a notification surface that accepts commands.
var (
	_ playback.Surface       = (*Adapter)(nil)
	_ playback.CommandBinder = (*Adapter)(nil)
)

// Adapter publishes now-playing metadata over MPRIS and routes media-key
// commands back to the controller.
type Adapter struct {
	server *server.Server
	events *events.EventHandler
	player *playerAdapter
	logger zerolog.Logger
}

// New registers org.mpris.MediaPlayer2.<name> on the session bus.
func New(name, identity string, logger zerolog.Logger) (*Adapter, error) {
	if _, err := dbus.SessionBus(); err != nil {
		return nil, fmt.Errorf("session bus: %w", err)
	}

	a := &Adapter{
		player: &playerAdapter{},
		logger: logger.With().Str("component", "mpris").Logger(),
	}

	a.server = server.NewServer(name, &rootAdapter{identity: identity}, a.player)
	a.events = events.NewEventHandler(a.server)

	go func() {
		if err := a.server.Listen(); err != nil {
			a.logger.Warn().Err(err).Msg("mpris server stopped")
		}
	}()

	return a, nil
}

// Publish caches np and signals the property changes to MPRIS clients.
func (a *Adapter) Publish(np playback.NowPlaying) error {
	prev := a.player.update(np)

	if prev.URL != np.URL || prev.Title != np.Title || prev.Length != np.Length {
		if err := signal(a.events.Player.OnTitle); err != nil {
			return fmt.Errorf("mpris metadata: %w", err)
		}
	}
	if prev.Playing != np.Playing || prev.Loaded != np.Loaded {
		if err := signal(a.events.Player.OnPlayPause); err != nil {
			return fmt.Errorf("mpris status: %w", err)
		}
	}
	return nil
}

// signal emits a PropertiesChanged signal. The server connects to the bus
// asynchronously in Listen; signals raised before that are reported as
// errors instead of crashing the caller.
func signal(emit func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("server not connected: %v", r)
		}
	}()
	return emit()
}

// BindCommands routes MPRIS method calls to cmds.
func (a *Adapter) BindCommands(cmds playback.Commands) func() {
	a.player.bind(cmds)
	return func() { a.player.bind(nil) }
}

// Close releases the D-Bus name.
func (a *Adapter) Close() error {
	a.player.bind(nil)
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct {
	identity string
}

func (r *rootAdapter) Raise() error {
	return nil
}

func (r *rootAdapter) Quit() error {
	return nil
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return r.identity, nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file", "http", "https"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/flac", "audio/wav", "audio/ogg", "audio/opus", "audio/mp4"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter from the last
// published NowPlaying. Commands are invoked without holding mu: the
// controller publishes back into the adapter while handling them.
type playerAdapter struct {
	mu   sync.Mutex
	np   playback.NowPlaying
	cmds playback.Commands
}

func (p *playerAdapter) update(np playback.NowPlaying) playback.NowPlaying {
	p.mu.Lock()
	defer p.mu.Unlock()
	prev := p.np
	p.np = np
	return prev
}

func (p *playerAdapter) bind(cmds playback.Commands) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cmds = cmds
}

func (p *playerAdapter) current() (playback.NowPlaying, playback.Commands) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.np, p.cmds
}

func (p *playerAdapter) seeker() playback.Seeker {
	_, cmds := p.current()
	s, _ := cmds.(playback.Seeker)
	return s
}

func (p *playerAdapter) Next() error {
	if _, cmds := p.current(); cmds != nil {
		return cmds.NextTrack()
	}
	return nil
}

func (p *playerAdapter) Previous() error {
	if _, cmds := p.current(); cmds != nil {
		return cmds.PreviousTrack()
	}
	return nil
}

func (p *playerAdapter) Pause() error {
	if _, cmds := p.current(); cmds != nil {
		return cmds.Pause()
	}
	return nil
}

func (p *playerAdapter) Play() error {
	if _, cmds := p.current(); cmds != nil {
		return cmds.Play()
	}
	return nil
}

func (p *playerAdapter) PlayPause() error {
	np, cmds := p.current()
	if cmds == nil {
		return nil
	}
	if np.Playing {
		return cmds.Pause()
	}
	return cmds.Play()
}

// Stop maps to Pause: there is no stopped state once a track is loaded.
func (p *playerAdapter) Stop() error {
	return p.Pause()
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	if s := p.seeker(); s != nil {
		return s.SeekRelative(time.Duration(offset) * time.Microsecond)
	}
	return nil
}

func (p *playerAdapter) SetPosition(trackID string, position types.Microseconds) error {
	np, _ := p.current()
	// Stale requests for a track that is no longer current are ignored.
	if trackID != formatTrackID(np.URL) {
		return nil
	}
	if s := p.seeker(); s != nil {
		return s.Seek(time.Duration(position) * time.Microsecond)
	}
	return nil
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	np, _ := p.current()
	switch {
	case !np.Loaded:
		return types.PlaybackStatusStopped, nil
	case np.Playing:
		return types.PlaybackStatusPlaying, nil
	default:
		return types.PlaybackStatusPaused, nil
	}
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	np, _ := p.current()
	if np.URL == "" {
		return types.Metadata{}, nil
	}
	return buildMetadata(np), nil
}

func buildMetadata(np playback.NowPlaying) types.Metadata {
	meta := types.Metadata{
		TrackId:     dbus.ObjectPath(formatTrackID(np.URL)),
		Length:      types.Microseconds(np.Length.Microseconds()),
		Title:       np.Title,
		Album:       np.Album,
		TrackNumber: np.Index + 1,
		ArtUrl:      ArtURL(np),
	}
	if np.Artist != "" {
		meta.Artist = []string{np.Artist}
	}
	return meta
}

func (p *playerAdapter) Volume() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetVolume(_ float64) error {
	return nil
}

func (p *playerAdapter) Position() (int64, error) {
	if s := p.seeker(); s != nil {
		return s.Elapsed().Microseconds(), nil
	}
	return 0, nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

// The playlist wraps, so next and previous are always available.

func (p *playerAdapter) CanGoNext() (bool, error) {
	np, _ := p.current()
	return np.Total > 0, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	np, _ := p.current()
	return np.Total > 0, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	np, _ := p.current()
	return np.Loaded, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return p.seeker() != nil, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

func formatTrackID(url string) string {
	h := fnv.New64a()
	h.Write([]byte(url))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
