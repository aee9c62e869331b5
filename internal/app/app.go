// Package app is the terminal user interface: a bubbletea model that
// renders the controller state and turns keys and clicks into controller
// operations.
package app

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/llehouerou/wavelet/internal/keymap"
	"github.com/llehouerou/wavelet/internal/playback"
	"github.com/llehouerou/wavelet/internal/ui/tracklist"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	defaultSkip   = 10 * time.Second

	// status and help lines below the panels
	footerHeight = 2
)

// Toaster shows the now-playing desktop notification.
type Toaster interface {
	Show(title, body, icon string) error
}

// Options configures a Model.
type Options struct {
	Skip    time.Duration   // relative seek step, default 10s
	Toaster Toaster         // nil disables now-playing toasts
	Labels  playback.Labels // artist/album/artwork for toasts
	Stderr  <-chan string   // captured C library output, may be nil
	Logger  zerolog.Logger
}

// Model is the root bubbletea model.
type Model struct {
	ctrl *playback.Controller
	sub  *playback.Subscription

	keys    *keymap.Resolver
	helpMap keymap.HelpMap
	help    help.Model

	tracks tracklist.Model

	skip    time.Duration
	toaster Toaster
	labels  playback.Labels
	stderr  <-chan string

	status   string
	statusID int64
	dragging bool

	width, height int

	logger zerolog.Logger
}

// New builds the model and subscribes it to ctrl.
func New(ctrl *playback.Controller, opts Options) Model {
	skip := opts.Skip
	if skip <= 0 {
		skip = defaultSkip
	}

	m := Model{
		ctrl:    ctrl,
		sub:     ctrl.Subscribe(),
		keys:    keymap.Default(),
		helpMap: keymap.NewHelpMap(keymap.Bindings),
		help:    help.New(),
		skip:    skip,
		toaster: opts.Toaster,
		labels:  opts.Labels,
		stderr:  opts.Stderr,
		width:   defaultWidth,
		height:  defaultHeight,
		logger:  opts.Logger.With().Str("component", "app").Logger(),
	}
	m.tracks = tracklist.New(m.trackListRows())
	m.tracks.Follow(ctrl.State().Index, ctrl.Playlist().Len())
	return m
}

// Init starts listening for controller events and captured stderr.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.WatchEvents(), m.WatchStderr())
}
