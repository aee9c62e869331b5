package playerbar

import (
	"strings"
	"time"

	"github.com/llehouerou/wavelet/internal/ui/styles"
)

const (
	filledBlock = "▓"
	emptyBlock  = "░"
)

// SeekBar is the on-screen extent of the seek bar, in terminal cells.
type SeekBar struct {
	X, Y  int
	Width int
}

// Contains reports whether the cell (x, y) lies on the bar.
func (b SeekBar) Contains(x, y int) bool {
	return y == b.Y && x >= b.X && x < b.X+b.Width
}

// PositionAt maps column x to a position in [0, duration]. The first cell is
// the start of the track and the last cell its end; columns outside the bar
// clamp, so drags that overshoot still land on an edge.
func (b SeekBar) PositionAt(x int, duration time.Duration) time.Duration {
	if b.Width <= 1 || duration <= 0 {
		return 0
	}
	ratio := float64(x-b.X) / float64(b.Width-1)
	ratio = min(max(ratio, 0), 1)
	return time.Duration(ratio * float64(duration))
}

// filled returns how many of width cells represent elapsed out of duration.
func filled(elapsed, duration time.Duration, width int) int {
	if duration <= 0 || elapsed <= 0 || width <= 0 {
		return 0
	}
	ratio := min(float64(elapsed)/float64(duration), 1)
	return int(ratio * float64(width))
}

// renderSeekBar draws width cells: a gradient filled part then the rest.
func renderSeekBar(elapsed, duration time.Duration, width int) string {
	t := styles.T()
	n := filled(elapsed, duration, width)
	return styles.GradientFill(filledBlock, n, width, t.Primary, t.Secondary) +
		t.S().Subtle.Render(strings.Repeat(emptyBlock, width-n))
}
