package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/wavelet/internal/playlist"
)

const (
	appName  = "wavelet"
	fileName = "config.toml"

	defaultSkipSeconds        = 10
	defaultPositionIntervalMS = 250
	defaultFetchTimeoutSecs   = 30
	defaultIdentity           = "Wavelet"
)

type Config struct {
	// Playlist is a .toml or .json playlist file. Inline [[tracks]] are
	// used when it is empty.
	Playlist string           `koanf:"playlist"`
	Tracks   []playlist.Entry `koanf:"tracks"`

	SkipSeconds         int `koanf:"skip_seconds"`          // ±skip for left/right (default: 10)
	PositionIntervalMS  int `koanf:"position_interval_ms"`  // time update cadence (default: 250)
	FetchTimeoutSeconds int `koanf:"fetch_timeout_seconds"` // remote track download limit (default: 30)

	// Desktop toast on auto-advance
	Notifications bool `koanf:"notifications"`

	NowPlaying NowPlayingConfig `koanf:"now_playing"`
	Log        LogConfig        `koanf:"log"`
}

// NowPlayingConfig holds the platform media-control integration settings.
type NowPlayingConfig struct {
	Enabled  *bool    `koanf:"enabled"`  // default: true
	Identity string   `koanf:"identity"` // name shown by media applets
	Artist   string   `koanf:"artist"`
	Album    string   `koanf:"album"`
	Artwork  []string `koanf:"artwork"` // URLs or paths, first usable one wins
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `koanf:"level"` // trace, debug, info, warn, error (default: info)
	File  string `koanf:"file"`  // default: $XDG_STATE_HOME/wavelet/wavelet.log
}

// Load reads the configuration. With an explicit path only that file is
// read and it must exist; otherwise the XDG config file and ./config.toml
// are merged, last wins.
func Load(explicit string) (*Config, error) {
	k := koanf.New(".")

	paths := getConfigPaths()
	if explicit != "" {
		explicit = expandPath(explicit)
		if _, err := os.Stat(explicit); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		paths = []string{explicit}
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("config %s: %w", path, err)
			}
		}
	}

	cfg := &Config{
		SkipSeconds:         defaultSkipSeconds,
		PositionIntervalMS:  defaultPositionIntervalMS,
		FetchTimeoutSeconds: defaultFetchTimeoutSecs,
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.Playlist = expandPath(cfg.Playlist)
	cfg.Log.File = expandPath(cfg.Log.File)
	for i, art := range cfg.NowPlaying.Artwork {
		cfg.NowPlaying.Artwork[i] = expandPath(art)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/wavelet/config.toml
		filepath.Join(xdg.ConfigHome, appName, fileName),
		// 2. ./config.toml (pwd, highest priority)
		fileName,
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// Skip returns the relative seek step with its default applied.
func (c *Config) Skip() time.Duration {
	if c.SkipSeconds <= 0 {
		return defaultSkipSeconds * time.Second
	}
	return time.Duration(c.SkipSeconds) * time.Second
}

// PositionInterval returns the time update cadence with its default applied.
func (c *Config) PositionInterval() time.Duration {
	if c.PositionIntervalMS <= 0 {
		return defaultPositionIntervalMS * time.Millisecond
	}
	return time.Duration(c.PositionIntervalMS) * time.Millisecond
}

// FetchTimeout returns the remote download limit with its default applied.
func (c *Config) FetchTimeout() time.Duration {
	if c.FetchTimeoutSeconds <= 0 {
		return defaultFetchTimeoutSecs * time.Second
	}
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// NowPlayingEnabled reports whether the media-control integration is on.
func (c *Config) NowPlayingEnabled() bool {
	return c.NowPlaying.Enabled == nil || *c.NowPlaying.Enabled
}

// Identity returns the name advertised to media applets.
func (c *Config) Identity() string {
	if c.NowPlaying.Identity == "" {
		return defaultIdentity
	}
	return c.NowPlaying.Identity
}

// ErrNoPlaylist is returned by LoadPlaylist when neither a playlist file
// nor inline tracks are configured.
var ErrNoPlaylist = errors.New("no playlist configured: pass a playlist file or add [[tracks]] to the config")

// LoadPlaylist builds the playlist: the playlist file if one is set,
// otherwise the inline tracks, resolved against the working directory.
func (c *Config) LoadPlaylist() (*playlist.Playlist, error) {
	if c.Playlist != "" {
		return playlist.Load(c.Playlist)
	}
	if len(c.Tracks) == 0 {
		return nil, ErrNoPlaylist
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return playlist.FromEntries(wd, c.Tracks)
}

// DefaultLogFile returns the log path used when none is configured.
func DefaultLogFile() (string, error) {
	return xdg.StateFile(filepath.Join(appName, appName+".log"))
}
