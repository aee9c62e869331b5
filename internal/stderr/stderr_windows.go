//go:build windows

// Package stderr is a pass-through on Windows, whose audio stack does not
// write to the console.
package stderr

// Capture is a no-op on Windows.
type Capture struct {
	lines chan string
}

// Start returns a capture whose Lines channel never yields.
func Start() (*Capture, error) {
	return &Capture{lines: make(chan string)}, nil
}

func (c *Capture) Lines() <-chan string {
	return c.lines
}

func (c *Capture) Stop() {}
