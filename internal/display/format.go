// Package display holds console presentation helpers: the startup banner
// and human-readable formatting of sizes and durations.
package display

import (
	"time"

	"github.com/dustin/go-humanize"
)

// FormatBytes returns a human-readable size in IEC units (e.g. "1.5 KiB").
func FormatBytes(bytes int64) string {
	if bytes < 0 {
		return "-" + humanize.IBytes(uint64(-bytes))
	}
	return humanize.IBytes(uint64(bytes))
}

// FormatDuration rounds d for log output: milliseconds under a second,
// tenths of a second under a minute, whole seconds above.
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return d.Round(time.Millisecond).String()
	case d < time.Minute:
		return d.Round(100 * time.Millisecond).String()
	default:
		return d.Round(time.Second).String()
	}
}
