//go:build !windows

// Package stderr captures output that C audio libraries (ALSA, PulseAudio
// shims) write straight to file descriptor 2, bypassing os.Stderr. Left
// alone it would corrupt the TUI.
package stderr

import (
	"bufio"
	"os"
	"strings"
	"sync"

	"golang.org/x/sys/unix"
)

const bufferedLines = 100

// Capture redirects fd 2 into a pipe until Stop is called.
type Capture struct {
	lines    chan string
	orig     int
	r, w     *os.File
	stopOnce sync.Once
}

// Start begins capturing stderr output. It must run before the speaker is
// initialised. On error the program can continue uncaptured.
func Start() (*Capture, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}

	orig, err := unix.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return nil, err
	}

	if err := unix.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		unix.Close(orig)
		r.Close()
		w.Close()
		return nil, err
	}

	c := &Capture{
		lines: make(chan string, bufferedLines),
		orig:  orig,
		r:     r,
		w:     w,
	}
	go c.pump()
	return c, nil
}

func (c *Capture) pump() {
	defer close(c.lines)

	scanner := bufio.NewScanner(c.r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		select {
		case c.lines <- line:
		default:
			// Nobody is reading; drop rather than block the writer.
		}
	}
}

// Lines yields captured lines. It is closed after Stop.
func (c *Capture) Lines() <-chan string {
	return c.lines
}

// Stop restores the original stderr.
func (c *Capture) Stop() {
	c.stopOnce.Do(func() {
		_ = unix.Dup2(c.orig, int(os.Stderr.Fd()))
		_ = unix.Close(c.orig)
		c.w.Close()
		c.r.Close()
	})
}
