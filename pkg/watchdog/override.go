package watchdog

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Override suppresses a window's automatic idle timeout for a fixed duration
// after the last touch on its surface.
//
// Constructing an Override installs an interception proxy over the window's
// current dispatch target and arms the countdown. Every touch event re-arms
// it. When the countdown runs out the keep-awake flag is released, the
// optional completion listener fires, and the host's normal idle timeout
// takes over again. Clear tears the whole thing down and restores the
// dispatch target captured at install time.
//
// All public methods must be called on the scheduler goroutine; calls from
// anywhere else return a *WrongThreadError with no state changed.
type Override struct {
	timeout     time.Duration
	window      Window
	sched       Scheduler
	clock       Clock
	log         zerolog.Logger
	engine      *engine
	proxy       *callbackProxy
	passthrough WindowCallback
}

// Option configures an Override at construction.
type Option func(*Override)

// WithClock replaces the clock used for deadline arithmetic. Tests use this
// to drive time by hand.
func WithClock(clock Clock) Option {
	return func(o *Override) { o.clock = clock }
}

// WithLogger attaches a logger. Without it the Override is silent.
func WithLogger(log zerolog.Logger) Option {
	return func(o *Override) { o.log = log }
}

// New installs an Override on window and starts the countdown: the window
// will not idle out for timeout after the most recent touch. sched is both
// the task queue the countdown polls on and the affinity token for every
// public call, including this one.
func New(timeout time.Duration, window Window, sched Scheduler, opts ...Option) (*Override, error) {
	if err := checkAffinity(sched, "New"); err != nil {
		return nil, err
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("watchdog: timeout must be positive, got %v", timeout)
	}

	o := &Override{
		timeout: timeout,
		window:  window,
		sched:   sched,
		clock:   SystemClock,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(o)
	}

	o.engine = newEngine(timeout, window, sched, o.clock, o.log)
	o.proxy = newCallbackProxy(o.reset)

	o.passthrough = window.Callback()
	o.proxy.SetTarget(o.passthrough)
	window.SetCallback(o.proxy)
	window.SetKeepAwake(true)

	o.engine.reset()

	o.log.Debug().Dur("timeout", timeout).Msg("timeout override installed")
	return o, nil
}

// SetCallback replaces the forwarding target without disturbing the
// interception or the running countdown. Use it to layer additional dispatch
// handling on top of whatever was captured at install time.
func (o *Override) SetCallback(cb WindowCallback) error {
	if err := checkAffinity(o.sched, "SetCallback"); err != nil {
		return err
	}
	o.passthrough = cb
	o.proxy.SetTarget(cb)
	return nil
}

// SetOnTimerComplete registers the completion listener. It is invoked at most
// once per arm cycle, right after the keep-awake flag is released; a later
// Start re-arms it. Pass nil to detach.
func (o *Override) SetOnTimerComplete(fn func()) error {
	if err := checkAffinity(o.sched, "SetOnTimerComplete"); err != nil {
		return err
	}
	o.engine.onComplete = fn
	return nil
}

// Start resets the countdown to the full timeout, exactly as a touch would.
// The constructor calls it implicitly; call it to re-arm after expiry or
// Clear, or to count some non-touch event as activity.
func (o *Override) Start() error {
	if err := checkAffinity(o.sched, "Start"); err != nil {
		return err
	}
	o.reset()
	return nil
}

// Clear stops the countdown, releases the keep-awake flag, and restores the
// dispatch target captured at install time. The completion listener does not
// fire. After Clear the Override is dormant; Start re-installs against the
// window's then-current dispatch target. Do not call Clear twice without an
// intervening Start.
func (o *Override) Clear() error {
	if err := checkAffinity(o.sched, "Clear"); err != nil {
		return err
	}

	o.engine.cancel()
	o.window.SetCallback(o.passthrough)
	o.passthrough = nil
	o.proxy.SetTarget(nil)

	o.log.Debug().Msg("timeout override cleared")
	return nil
}

// Timeout returns the fixed countdown duration set at construction.
func (o *Override) Timeout() time.Duration {
	return o.timeout
}

// Armed reports whether the countdown is currently running.
func (o *Override) Armed() (bool, error) {
	if err := checkAffinity(o.sched, "Armed"); err != nil {
		return false, err
	}
	return o.engine.armed(), nil
}

// Remaining returns the time left until expiry, floored at zero. It is zero
// when the countdown is not armed.
func (o *Override) Remaining() (time.Duration, error) {
	if err := checkAffinity(o.sched, "Remaining"); err != nil {
		return 0, err
	}
	if !o.engine.armed() {
		return 0, nil
	}
	d := o.engine.deadline.Sub(o.clock.Now())
	if d < 0 {
		d = 0
	}
	return d, nil
}

// reset re-arms the countdown and, if something replaced the proxy in the
// window's callback slot since install (or Clear removed it), re-captures the
// current target and re-installs the proxy over it.
func (o *Override) reset() {
	if o.window.Callback() != WindowCallback(o.proxy) {
		o.passthrough = o.window.Callback()
		o.proxy.SetTarget(o.passthrough)
		o.window.SetCallback(o.proxy)
	}
	o.engine.reset()
}
