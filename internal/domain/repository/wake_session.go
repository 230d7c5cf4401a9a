// Package repository declares persistence contracts for the domain records.
package repository

import (
	"context"

	"github.com/jebstuart/TimeoutOverride/internal/domain/entity"
)

// WakeSessionRepository records wake sessions and serves the history views.
type WakeSessionRepository interface {
	// Open records the start of a new wake session and returns its id.
	Open(ctx context.Context, session *entity.WakeSession) (int64, error)

	// Close marks a session as ended with the given reason and final reset
	// count.
	Close(ctx context.Context, id int64, session *entity.WakeSession) error

	// Recent returns up to limit sessions, newest first.
	Recent(ctx context.Context, limit int) ([]entity.WakeSession, error)

	// Prune deletes the oldest sessions beyond keep.
	Prune(ctx context.Context, keep int) error
}
