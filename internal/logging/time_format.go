package logging

import "time"

const consoleTimestampLayout = "2006-01-02 15:04:05"

// formatTimestamp renders console timestamps in local time; JSON records use
// RFC3339 UTC instead.
func formatTimestamp(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.Local().Format(consoleTimestampLayout)
}

// formatDuration keeps request latencies and run durations at millisecond
// precision.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return d.String()
	}
	return d.Round(time.Millisecond).String()
}
