package timeline

import (
	"fmt"
	"math"
	"time"
)

// FormatFrameTime formats a number of seconds as H:MM:SS.mmm. Milliseconds
// are truncated, not rounded.
func FormatFrameTime(seconds float64) string {
	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	whole := math.Trunc(seconds)
	ms := int(1000 * (seconds - whole))
	s := int64(whole)
	return fmt.Sprintf("%s%d:%02d:%02d.%03d", sign, s/3600, (s/60)%60, s%60, ms)
}

// secondsToDuration converts seconds to a time.Duration at nanosecond
// precision.
func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(math.Round(seconds * float64(time.Second)))
}
