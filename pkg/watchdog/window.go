package watchdog

import "time"

// Window is the host surface whose idle behavior and dispatch chain the
// watchdog takes over. Implementations bind a real windowing system; tests
// use an in-memory fake.
type Window interface {
	// Callback returns the currently installed dispatch target, or nil.
	Callback() WindowCallback

	// SetCallback installs cb as the window's dispatch target. All input
	// events and window lifecycle notifications flow through it afterwards.
	SetCallback(cb WindowCallback)

	// SetKeepAwake sets or clears the window's keep-awake flag. While set,
	// the host suppresses its automatic idle timeout for this surface.
	SetKeepAwake(on bool)

	// KeepAwake reports the current state of the keep-awake flag.
	KeepAwake() bool
}

// TaskHandle is a scheduled task that can be unscheduled before it runs.
type TaskHandle interface {
	// Stop unschedules the task. Reports whether the task was still pending;
	// false means it already ran or was already stopped.
	Stop() bool
}

// Scheduler is the host's cooperative single-threaded task queue. It doubles
// as the thread-affinity token: the watchdog accepts public calls only from
// the goroutine the scheduler runs its tasks on.
type Scheduler interface {
	// CallAfter runs fn on the scheduler goroutine after at least d.
	CallAfter(d time.Duration, fn func()) TaskHandle

	// IsCurrent reports whether the caller is running on the scheduler
	// goroutine.
	IsCurrent() bool
}

// Clock supplies the current time. Deadline comparisons rely on Go's
// monotonic clock reading carried by time.Time, so wall-clock adjustments
// cannot move a deadline. Injected for tests.
type Clock interface {
	Now() time.Time
}

// SystemClock is the default Clock backed by time.Now.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }
