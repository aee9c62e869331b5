package mpris

import "errors"

// ErrUnsupported is returned by New on platforms without D-Bus.
var ErrUnsupported = errors.New("mpris: not supported on this platform")
