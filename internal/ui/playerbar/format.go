package playerbar

import (
	"fmt"
	"time"
)

// FormatTime renders d as m:ss, rounding down to whole seconds. Minutes are
// not padded and keep counting past 59.
func FormatTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// FormatDuration is FormatTime for a track length that may be unknown.
func FormatDuration(d time.Duration, known bool) string {
	if !known {
		return FormatTime(0)
	}
	return FormatTime(d)
}
