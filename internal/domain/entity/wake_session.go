// Package entity holds the domain records timeout-override persists.
package entity

import "time"

// EndReason states how a wake session ended.
type EndReason string

const (
	// EndReasonExpired means the countdown ran out with no touch.
	EndReasonExpired EndReason = "expired"
	// EndReasonCancelled means the override was cleared explicitly.
	EndReasonCancelled EndReason = "cancelled"
)

// WakeSession is one armed interval of the watchdog: from installation (or
// re-arm after a previous end) to expiry or cancellation. It is an audit
// record only; nothing is restored from it on restart.
type WakeSession struct {
	ID         int64
	StartedAt  time.Time
	EndedAt    *time.Time
	Reason     EndReason
	ResetCount int
}

// Duration returns how long the session was armed, or how long it has been
// armed so far for a still-open session.
func (s *WakeSession) Duration(now time.Time) time.Duration {
	if s.EndedAt != nil {
		return s.EndedAt.Sub(s.StartedAt)
	}
	return now.Sub(s.StartedAt)
}
