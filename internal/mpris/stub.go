//go:build !linux

package mpris

import (
	"github.com/rs/zerolog"

	"github.com/llehouerou/wavelet/internal/playback"
)

// Adapter is unavailable on non-Linux platforms.
type Adapter struct{}

// New always fails with ErrUnsupported on non-Linux platforms.
func New(_, _ string, _ zerolog.Logger) (*Adapter, error) {
	return nil, ErrUnsupported
}

func (a *Adapter) Publish(_ playback.NowPlaying) error { return nil }

func (a *Adapter) BindCommands(_ playback.Commands) func() { return func() {} }

func (a *Adapter) Close() error { return nil }
