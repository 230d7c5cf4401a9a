// Package mainloop provides a cooperative single-goroutine task loop for
// hosts that do not already have one. All posted tasks run sequentially on
// the goroutine that called Run, which makes the loop usable as the
// designated-thread token for components with single-threaded contracts.
package mainloop

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Loop runs queued tasks on a single goroutine.
type Loop struct {
	mu    sync.Mutex
	queue []func()
	wake  chan struct{}

	quit     chan struct{}
	quitOnce sync.Once

	// gid is the id of the goroutine currently inside Run, or 0.
	gid atomic.Uint64
}

// New creates an idle loop. Nothing runs until Run is called.
func New() *Loop {
	return &Loop{
		wake: make(chan struct{}, 1),
		quit: make(chan struct{}),
	}
}

// Run processes tasks on the calling goroutine until Quit is called or ctx
// is cancelled. Returns ctx.Err() on cancellation, nil on Quit.
func (l *Loop) Run(ctx context.Context) error {
	l.gid.Store(goroutineID())
	defer l.gid.Store(0)

	for {
		l.drain()

		select {
		case <-l.wake:
		case <-l.quit:
			l.drain()
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Quit stops the loop after the already-queued tasks have run. Safe to call
// from any goroutine, more than once.
func (l *Loop) Quit() {
	l.quitOnce.Do(func() { close(l.quit) })
}

// Post queues fn to run on the loop goroutine. Safe from any goroutine,
// including from inside a running task.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// CallAfter schedules fn to run on the loop goroutine after at least d.
// The returned task can be stopped before it runs; Stop genuinely
// unschedules it rather than leaving a dead callback in the queue.
func (l *Loop) CallAfter(d time.Duration, fn func()) *Task {
	t := &Task{}
	t.timer = time.AfterFunc(d, func() {
		l.Post(func() {
			if t.cancelled.Load() {
				return
			}
			t.done.Store(true)
			fn()
		})
	})
	return t
}

// IsCurrent reports whether the caller is running on the loop goroutine.
// False whenever the loop is not running.
func (l *Loop) IsCurrent() bool {
	gid := l.gid.Load()
	return gid != 0 && gid == goroutineID()
}

// Now returns the current time. Comparisons between times from the same Loop
// use Go's monotonic clock reading.
func (l *Loop) Now() time.Time {
	return time.Now()
}

func (l *Loop) drain() {
	for {
		l.mu.Lock()
		if len(l.queue) == 0 {
			l.mu.Unlock()
			return
		}
		fn := l.queue[0]
		l.queue = l.queue[1:]
		l.mu.Unlock()

		fn()
	}
}

// Task is a delayed call scheduled with CallAfter.
type Task struct {
	timer     *time.Timer
	cancelled atomic.Bool
	done      atomic.Bool
}

// Stop unschedules the task. Reports whether it was still pending; false
// means it already ran or was already stopped.
func (t *Task) Stop() bool {
	if t.cancelled.Swap(true) {
		return false
	}
	t.timer.Stop()
	return !t.done.Load()
}
