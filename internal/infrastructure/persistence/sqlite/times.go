package sqlite

import "time"

// Timestamps are stored as Unix milliseconds.
func msToTime(ms int64) time.Time {
	return time.UnixMilli(ms)
}
