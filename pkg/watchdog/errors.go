package watchdog

import "fmt"

// WrongThreadError is returned when a public operation is invoked from a
// goroutine other than the scheduler's. It is reported before any state is
// mutated and is never recovered internally; the caller must re-issue the
// call from the scheduler goroutine.
type WrongThreadError struct {
	// Op is the operation that was rejected.
	Op string
}

func (e *WrongThreadError) Error() string {
	return fmt.Sprintf("watchdog: %s called off the scheduler goroutine", e.Op)
}

// checkAffinity returns a *WrongThreadError for op unless the caller is on
// the scheduler goroutine.
func checkAffinity(sched Scheduler, op string) error {
	if !sched.IsCurrent() {
		return &WrongThreadError{Op: op}
	}
	return nil
}
