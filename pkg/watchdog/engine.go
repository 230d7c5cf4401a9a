package watchdog

import (
	"time"

	"github.com/rs/zerolog"
)

// tickInterval is how often the engine re-checks the deadline while armed.
// The deadline itself is absolute, so a late tick can only delay expiry by at
// most one interval, never fire it early.
const tickInterval = 500 * time.Millisecond

// engine owns the countdown: the absolute deadline, the single pending tick,
// and the expiry notification. It knows nothing about events or callbacks;
// the proxy drives it.
type engine struct {
	window  Window
	sched   Scheduler
	clock   Clock
	timeout time.Duration
	log     zerolog.Logger

	deadline      time.Time
	tick          TaskHandle
	tickScheduled bool

	onComplete func()
}

func newEngine(timeout time.Duration, window Window, sched Scheduler, clock Clock, log zerolog.Logger) *engine {
	return &engine{
		window:  window,
		sched:   sched,
		clock:   clock,
		timeout: timeout,
		log:     log,
	}
}

// reset arms (or re-arms) the countdown: pushes the deadline to now+timeout,
// raises the keep-awake flag, and makes sure exactly one tick is pending.
// Calling while a tick is already scheduled only moves the deadline.
func (e *engine) reset() {
	e.deadline = e.clock.Now().Add(e.timeout)
	e.window.SetKeepAwake(true)

	if !e.tickScheduled {
		e.tick = e.sched.CallAfter(tickInterval, e.onTick)
		e.tickScheduled = true
	}

	e.log.Trace().Time("deadline", e.deadline).Msg("countdown reset")
}

// cancel unschedules any pending tick and drops the keep-awake flag. The
// completion listener slot is left untouched.
func (e *engine) cancel() {
	e.window.SetKeepAwake(false)

	if e.tickScheduled {
		e.tick.Stop()
		e.tick = nil
		e.tickScheduled = false
	}
}

func (e *engine) armed() bool {
	return e.tickScheduled
}

func (e *engine) onTick() {
	e.tickScheduled = false

	if !e.clock.Now().Before(e.deadline) {
		e.expire()
		return
	}

	e.tick = e.sched.CallAfter(tickInterval, e.onTick)
	e.tickScheduled = true
}

func (e *engine) expire() {
	e.window.SetKeepAwake(false)
	e.log.Debug().Dur("timeout", e.timeout).Msg("countdown expired, keep-awake released")

	if e.onComplete != nil {
		e.onComplete()
	}
}
