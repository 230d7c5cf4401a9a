//go:build windows

package idle

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sys/windows"

	"github.com/jebstuart/TimeoutOverride/internal/application/port"
	"github.com/jebstuart/TimeoutOverride/internal/logging"
)

// Execution state flags for SetThreadExecutionState.
const (
	esContinuous      = 0x80000000
	esSystemRequired  = 0x00000001
	esDisplayRequired = 0x00000002
)

var (
	kernel32                    = windows.NewLazySystemDLL("kernel32.dll")
	procSetThreadExecutionState = kernel32.NewProc("SetThreadExecutionState")
)

var _ port.IdleInhibitor = (*ExecStateInhibitor)(nil)

// ExecStateInhibitor keeps the display and system awake on Windows via
// SetThreadExecutionState.
//
// ES_CONTINUOUS state is per OS thread and goroutines migrate between
// threads, so every call must land on the same thread that established the
// hold, and that thread must stay alive for as long as the hold does. A
// dedicated goroutine pinned with LockOSThread serves all state changes.
type ExecStateInhibitor struct {
	mu       sync.Mutex
	refcount int

	calls chan execStateCall
	quit  chan struct{}
	once  sync.Once
}

type execStateCall struct {
	flags uintptr
	ack   chan struct{}
}

// NewExecStateInhibitor returns the Windows execution-state inhibitor.
func NewExecStateInhibitor() *ExecStateInhibitor {
	e := &ExecStateInhibitor{
		calls: make(chan execStateCall),
		quit:  make(chan struct{}),
	}
	go e.serve()
	return e
}

// serve owns the OS thread the execution state lives on. It never unlocks
// the thread; on quit the pinned thread is discarded with the goroutine,
// which also drops any leftover hold.
func (e *ExecStateInhibitor) serve() {
	runtime.LockOSThread()

	for {
		select {
		case call := <-e.calls:
			_, _, _ = procSetThreadExecutionState.Call(call.flags)
			close(call.ack)
		case <-e.quit:
			return
		}
	}
}

// setState applies flags on the pinned thread and waits for it to take.
// After Close it is a no-op.
func (e *ExecStateInhibitor) setState(flags uintptr) {
	call := execStateCall{flags: flags, ack: make(chan struct{})}
	select {
	case e.calls <- call:
		<-call.ack
	case <-e.quit:
	}
}

func (e *ExecStateInhibitor) Inhibit(ctx context.Context, reason string) error {
	log := logging.FromContext(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()

	e.refcount++
	if e.refcount > 1 {
		return nil
	}

	e.setState(esContinuous | esSystemRequired | esDisplayRequired)
	log.Info().Str("reason", reason).Msg("idle inhibitor: execution state held")
	return nil
}

func (e *ExecStateInhibitor) Uninhibit(ctx context.Context) error {
	log := logging.FromContext(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.refcount == 0 {
		return nil
	}
	e.refcount--
	if e.refcount > 0 {
		return nil
	}

	e.setState(esContinuous)
	log.Info().Msg("idle inhibitor: execution state released")
	return nil
}

func (e *ExecStateInhibitor) IsInhibited() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.refcount > 0
}

func (e *ExecStateInhibitor) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.refcount > 0 {
		e.setState(esContinuous)
	}
	e.refcount = 0

	e.once.Do(func() { close(e.quit) })
	return nil
}
