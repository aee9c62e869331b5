package main

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/llehouerou/wavelet/internal/app"
	"github.com/llehouerou/wavelet/internal/config"
	"github.com/llehouerou/wavelet/internal/errmsg"
	"github.com/llehouerou/wavelet/internal/logging"
	"github.com/llehouerou/wavelet/internal/mpris"
	"github.com/llehouerou/wavelet/internal/notify"
	"github.com/llehouerou/wavelet/internal/playback"
	"github.com/llehouerou/wavelet/internal/player"
	"github.com/llehouerou/wavelet/internal/stderr"
)

// busName is the MPRIS name: org.mpris.MediaPlayer2.wavelet.
const busName = "wavelet"

type options struct {
	playlist   string
	configPath string
	logFile    string
	logLevel   string
	noMPRIS    bool
}

func run(opts options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
	}
	if opts.playlist != "" {
		cfg.Playlist = opts.playlist
	}

	logger, closeLog, err := setupLogger(opts, cfg)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpLogSetup, err))
	}
	defer closeLog()

	logger.Info().
		Str("version", version).
		Str("playlist", cfg.Playlist).
		Msg("starting wavelet")

	list, err := cfg.LoadPlaylist()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpPlaylistLoad, err))
	}

	// Capture before the speaker opens: ALSA writes to fd 2 directly.
	capture, err := stderr.Start()
	if err != nil {
		logger.Warn().Err(err).Msg("stderr capture unavailable")
	} else {
		defer capture.Stop()
	}

	handle := player.New(player.Options{
		PositionInterval: cfg.PositionInterval(),
		FetchTimeout:     cfg.FetchTimeout(),
		Logger:           logger,
	})
	defer handle.Close()

	labels := playback.Labels{
		Artist:  cfg.NowPlaying.Artist,
		Album:   cfg.NowPlaying.Album,
		Artwork: cfg.NowPlaying.Artwork,
	}
	ctrlOpts := []playback.Option{
		playback.WithLogger(logger),
		playback.WithLabels(labels),
	}

	if cfg.NowPlayingEnabled() && !opts.noMPRIS {
		adapter, err := mpris.New(busName, cfg.Identity(), logger)
		if err != nil {
			logger.Warn().Err(err).Msg(errmsg.Format(errmsg.OpNowPlaying, err))
		} else {
			defer adapter.Close()
			ctrlOpts = append(ctrlOpts, playback.WithSurface(adapter))
		}
	}

	ctrl, err := playback.New(list, handle, ctrlOpts...)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpPlaylistLoad, err))
	}
	defer ctrl.Close()

	appOpts := app.Options{
		Skip:   cfg.Skip(),
		Labels: labels,
		Logger: logger,
	}
	if capture != nil {
		appOpts.Stderr = capture.Lines()
	}
	if cfg.Notifications {
		n, err := notify.New(busName)
		if err != nil {
			logger.Warn().Err(err).Msg(errmsg.Format(errmsg.OpNotify, err))
		} else {
			toaster := notify.NewToaster(n)
			defer func() { _ = toaster.Dismiss() }()
			appOpts.Toaster = toaster
		}
	}

	p := tea.NewProgram(app.New(ctrl, appOpts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		logger.Error().Err(err).Msg("ui stopped")
		return err
	}
	logger.Info().Msg("exiting")
	return nil
}

// setupLogger resolves the log file and level from flags, then config,
// then defaults.
func setupLogger(opts options, cfg *config.Config) (zerolog.Logger, func(), error) {
	logFile := firstNonEmpty(opts.logFile, cfg.Log.File)
	if logFile == "" {
		var err error
		if logFile, err = config.DefaultLogFile(); err != nil {
			return zerolog.Nop(), nil, err
		}
	}

	logger, closer, err := logging.Setup(logFile, firstNonEmpty(opts.logLevel, cfg.Log.Level))
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	return logger, func() { _ = closer.Close() }, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
