//go:build linux

package idle

import (
	"context"

	"github.com/jebstuart/TimeoutOverride/internal/application/port"
)

func newPlatformInhibitor(ctx context.Context) port.IdleInhibitor {
	return NewPortalInhibitor(ctx)
}
