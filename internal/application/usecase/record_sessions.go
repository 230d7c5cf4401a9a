// Package usecase holds the application services tying the watchdog to its
// collaborators.
package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/jebstuart/TimeoutOverride/internal/domain/entity"
	"github.com/jebstuart/TimeoutOverride/internal/domain/repository"
	"github.com/jebstuart/TimeoutOverride/internal/logging"
)

// RecordWakeSessionsUseCase writes an audit trail of arm cycles: one record
// per armed interval, closed with the reason the interval ended. A nil
// repository disables recording entirely (history.enabled = false).
type RecordWakeSessionsUseCase struct {
	repo repository.WakeSessionRepository
	keep int

	mu     sync.Mutex
	id     int64
	open   bool
	resets int
}

// NewRecordWakeSessionsUseCase creates the recorder. keep bounds how many
// sessions Prune retains.
func NewRecordWakeSessionsUseCase(repo repository.WakeSessionRepository, keep int) *RecordWakeSessionsUseCase {
	return &RecordWakeSessionsUseCase{repo: repo, keep: keep}
}

// Armed opens a session record unless one is already open. Called when the
// override is installed or re-armed after expiry or clear.
func (u *RecordWakeSessionsUseCase) Armed(ctx context.Context) {
	if u == nil || u.repo == nil {
		return
	}
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.open {
		return
	}
	id, err := u.repo.Open(ctx, &entity.WakeSession{StartedAt: time.Now()})
	if err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("history: failed to open wake session")
		return
	}
	u.id = id
	u.open = true
	u.resets = 0
}

// Touched counts one activity-driven reset within the open session.
func (u *RecordWakeSessionsUseCase) Touched(_ context.Context) {
	if u == nil || u.repo == nil {
		return
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.open {
		u.resets++
	}
}

// Expired closes the open session as expired.
func (u *RecordWakeSessionsUseCase) Expired(ctx context.Context) {
	u.close(ctx, entity.EndReasonExpired)
}

// Cancelled closes the open session as cancelled, if one is open.
func (u *RecordWakeSessionsUseCase) Cancelled(ctx context.Context) {
	u.close(ctx, entity.EndReasonCancelled)
}

func (u *RecordWakeSessionsUseCase) close(ctx context.Context, reason entity.EndReason) {
	if u == nil || u.repo == nil {
		return
	}
	u.mu.Lock()
	defer u.mu.Unlock()

	if !u.open {
		return
	}
	now := time.Now()
	err := u.repo.Close(ctx, u.id, &entity.WakeSession{
		EndedAt:    &now,
		Reason:     reason,
		ResetCount: u.resets,
	})
	if err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("history: failed to close wake session")
	}
	u.open = false

	if u.keep > 0 {
		if err := u.repo.Prune(ctx, u.keep); err != nil {
			logging.FromContext(ctx).Debug().Err(err).Msg("history: prune failed")
		}
	}
}
