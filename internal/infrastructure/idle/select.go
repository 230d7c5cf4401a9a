package idle

import (
	"context"

	"github.com/jebstuart/TimeoutOverride/internal/application/port"
	"github.com/jebstuart/TimeoutOverride/internal/config"
	"github.com/jebstuart/TimeoutOverride/internal/logging"
)

// NewInhibitor returns the inhibitor for the configured backend. "auto"
// picks the platform default; anything it can't serve degrades to the no-op
// inhibitor rather than failing.
func NewInhibitor(ctx context.Context, backend config.KeepAwakeBackend) port.IdleInhibitor {
	log := logging.FromContext(ctx)

	switch backend {
	case config.KeepAwakeNone:
		return NewNoopInhibitor()
	case config.KeepAwakePortal:
		return NewPortalInhibitor(ctx)
	case config.KeepAwakeAuto:
		return newPlatformInhibitor(ctx)
	default:
		log.Warn().Str("backend", string(backend)).Msg("unknown keep-awake backend, using none")
		return NewNoopInhibitor()
	}
}
