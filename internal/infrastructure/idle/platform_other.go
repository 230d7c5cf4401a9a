//go:build !linux && !windows

package idle

import (
	"context"

	"github.com/jebstuart/TimeoutOverride/internal/application/port"
)

func newPlatformInhibitor(_ context.Context) port.IdleInhibitor {
	return NewNoopInhibitor()
}
