package idle

import (
	"context"
	"sync"

	"github.com/jebstuart/TimeoutOverride/internal/application/port"
)

var _ port.IdleInhibitor = (*NoopInhibitor)(nil)

// NoopInhibitor tracks the refcount but never touches the system. Used when
// the keep_awake.backend config is "none" and in tests.
type NoopInhibitor struct {
	mu       sync.Mutex
	refcount int
}

// NewNoopInhibitor returns an inhibitor that only bookkeeps.
func NewNoopInhibitor() *NoopInhibitor {
	return &NoopInhibitor{}
}

func (n *NoopInhibitor) Inhibit(_ context.Context, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.refcount++
	return nil
}

func (n *NoopInhibitor) Uninhibit(_ context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.refcount > 0 {
		n.refcount--
	}
	return nil
}

func (n *NoopInhibitor) IsInhibited() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.refcount > 0
}

func (n *NoopInhibitor) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.refcount = 0
	return nil
}
