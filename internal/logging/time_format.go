package logging

import "time"

// consoleTimestampLayout is the local-time layout of console log lines.
const consoleTimestampLayout = "2006-01-02 15:04:05"

func formatTimestamp(ts time.Time) string {
	if ts.IsZero() {
		ts = time.Now()
	}
	return ts.In(time.Local).Format(consoleTimestampLayout)
}
