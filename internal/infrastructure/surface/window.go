// Package surface binds the watchdog's abstract window to the running
// system: the keep-awake flag drives an idle inhibitor, the dispatch slot is
// an in-process callback reference.
package surface

import (
	"context"

	"github.com/jebstuart/TimeoutOverride/internal/application/port"
	"github.com/jebstuart/TimeoutOverride/internal/logging"
	"github.com/jebstuart/TimeoutOverride/pkg/watchdog"
)

var _ watchdog.Window = (*InhibitedWindow)(nil)

// InhibitedWindow is a watchdog.Window whose keep-awake flag holds a system
// idle inhibition while set. The dispatch-target slot follows the watchdog's
// single-threaded contract: it is only touched from the scheduler goroutine,
// so no locking is needed around it.
type InhibitedWindow struct {
	ctx       context.Context
	inhibitor port.IdleInhibitor
	reason    string

	cb        watchdog.WindowCallback
	keepAwake bool
}

// NewInhibitedWindow wraps inhibitor as a window surface. reason is the text
// shown by desktop environments that surface active inhibitions to the user.
func NewInhibitedWindow(ctx context.Context, inhibitor port.IdleInhibitor, reason string) *InhibitedWindow {
	return &InhibitedWindow{
		ctx:       ctx,
		inhibitor: inhibitor,
		reason:    reason,
	}
}

func (w *InhibitedWindow) Callback() watchdog.WindowCallback {
	return w.cb
}

func (w *InhibitedWindow) SetCallback(cb watchdog.WindowCallback) {
	w.cb = cb
}

func (w *InhibitedWindow) KeepAwake() bool {
	return w.keepAwake
}

// SetKeepAwake toggles the system inhibition. Redundant sets are absorbed
// here so the inhibitor's refcount moves once per actual transition.
func (w *InhibitedWindow) SetKeepAwake(on bool) {
	if on == w.keepAwake {
		return
	}
	w.keepAwake = on

	log := logging.FromContext(w.ctx)
	if on {
		if err := w.inhibitor.Inhibit(w.ctx, w.reason); err != nil {
			log.Warn().Err(err).Msg("surface: failed to acquire idle inhibition")
		}
		return
	}
	if err := w.inhibitor.Uninhibit(w.ctx); err != nil {
		log.Warn().Err(err).Msg("surface: failed to release idle inhibition")
	}
}
