// Package watchdog keeps a host window awake for a fixed duration after the
// last touch on its surface.
//
// It installs a transparent proxy over the window's current dispatch target:
// every event is forwarded unchanged, and touch events additionally re-arm a
// countdown. While the countdown runs, the window's keep-awake flag
// suppresses the host's idle timeout; when it expires the flag is released
// and an optional listener fires. Clearing the override restores the
// dispatch target that was in place before installation.
//
// The package is single-threaded by contract. Every public operation has to
// run on the goroutine of the Scheduler the Override was constructed with;
// pkg/mainloop provides a ready-made cooperative loop for hosts that do not
// already have one.
package watchdog
