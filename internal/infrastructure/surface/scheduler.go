package surface

import (
	"time"

	"github.com/jebstuart/TimeoutOverride/pkg/mainloop"
	"github.com/jebstuart/TimeoutOverride/pkg/watchdog"
)

var (
	_ watchdog.Scheduler = (*LoopScheduler)(nil)
	_ watchdog.Clock     = (*LoopScheduler)(nil)
)

// LoopScheduler adapts a mainloop.Loop to the watchdog's Scheduler and Clock
// interfaces.
type LoopScheduler struct {
	*mainloop.Loop
}

// NewLoopScheduler wraps loop.
func NewLoopScheduler(loop *mainloop.Loop) *LoopScheduler {
	return &LoopScheduler{Loop: loop}
}

// CallAfter schedules fn on the loop and returns the task as a generic
// handle.
func (s *LoopScheduler) CallAfter(d time.Duration, fn func()) watchdog.TaskHandle {
	return s.Loop.CallAfter(d, fn)
}
