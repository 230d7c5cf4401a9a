package cli

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jebstuart/TimeoutOverride/internal/application/usecase"
	"github.com/jebstuart/TimeoutOverride/internal/cli/model"
	"github.com/jebstuart/TimeoutOverride/internal/infrastructure/surface"
	"github.com/jebstuart/TimeoutOverride/pkg/mainloop"
	"github.com/jebstuart/TimeoutOverride/pkg/watchdog"
)

// WatchController drives a watchdog.Override from the TUI goroutine by
// posting every operation onto the scheduler loop. All exported methods are
// safe to call from any goroutine.
type WatchController struct {
	ctx  context.Context
	loop *mainloop.Loop
	win  *surface.InhibitedWindow
	ov   *watchdog.Override
	rec  *usecase.RecordWakeSessionsUseCase

	// program receives ExpiredMsg; set before the TUI starts.
	program *tea.Program

	// Loop-confined state: only touched from posted closures.
	resets  int
	cleared bool
	expired bool
}

var _ model.Controller = (*WatchController)(nil)

// NewWatchController wires a controller around an installed override and
// hooks its completion listener. The recorder may be nil-repo backed; it is
// still notified of every transition.
func NewWatchController(ctx context.Context, loop *mainloop.Loop, win *surface.InhibitedWindow, ov *watchdog.Override, rec *usecase.RecordWakeSessionsUseCase) *WatchController {
	c := &WatchController{
		ctx:  ctx,
		loop: loop,
		win:  win,
		ov:   ov,
		rec:  rec,
	}
	loop.Post(func() {
		_ = ov.SetOnTimerComplete(c.onExpired)
	})
	return c
}

// AttachProgram registers the TUI program that receives expiry
// notifications. Call it before the program starts.
func (c *WatchController) AttachProgram(p *tea.Program) {
	c.program = p
}

// onExpired runs on the loop goroutine. The expired flag marks the cycle
// boundary: the next touch starts a fresh session record.
func (c *WatchController) onExpired() {
	c.rec.Expired(c.ctx)
	c.expired = true
	c.resets = 0
	if c.program != nil {
		c.program.Send(model.ExpiredMsg{})
	}
}

func (c *WatchController) Touch() {
	c.loop.Post(func() {
		ev := watchdog.MotionEvent{
			Kind:   watchdog.MotionTouch,
			Action: watchdog.MotionActionDown,
			Time:   c.loop.Now(),
		}
		// Through the window's callback slot, so the interception proxy
		// sees it exactly like host-delivered input.
		if cb := c.win.Callback(); cb != nil {
			cb.DispatchTouch(ev)
		}
		if c.cleared {
			// A touch cannot reach a cleared override; nothing to count.
			return
		}
		if c.expired {
			// The dispatch above re-armed the countdown, opening a new arm
			// cycle; record it like an explicit re-arm would.
			c.expired = false
			c.resets = 0
			c.rec.Armed(c.ctx)
		}
		c.resets++
		c.rec.Touched(c.ctx)
	})
}

func (c *WatchController) Rearm() {
	c.loop.Post(func() {
		if err := c.ov.Start(); err != nil {
			return
		}
		c.cleared = false
		c.expired = false
		c.resets = 0
		c.rec.Armed(c.ctx)
	})
}

func (c *WatchController) Cancel() {
	c.loop.Post(func() {
		if c.cleared {
			return
		}
		if err := c.ov.Clear(); err != nil {
			return
		}
		c.cleared = true
		c.expired = false
		c.rec.Cancelled(c.ctx)
	})
}

// Shutdown cancels any running countdown, closing the open session record,
// and stops the loop. The loop drains queued work before exiting, so the
// final Clear always runs.
func (c *WatchController) Shutdown() {
	c.loop.Post(func() {
		if c.cleared {
			return
		}
		if err := c.ov.Clear(); err == nil {
			c.cleared = true
			c.rec.Cancelled(c.ctx)
		}
	})
	c.loop.Quit()
}

// Status blocks until the loop goroutine reports a snapshot. It returns a
// zero Status if the loop shuts down first.
func (c *WatchController) Status() model.Status {
	ch := make(chan model.Status, 1)
	c.loop.Post(func() {
		armed, _ := c.ov.Armed()
		remaining, _ := c.ov.Remaining()
		ch <- model.Status{
			Armed:     armed,
			Remaining: remaining,
			Timeout:   c.ov.Timeout(),
			Resets:    c.resets,
			KeepAwake: c.win.KeepAwake(),
		}
	})

	select {
	case st := <-ch:
		return st
	case <-c.ctx.Done():
		return model.Status{}
	case <-time.After(time.Second):
		return model.Status{}
	}
}
