package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jebstuart/TimeoutOverride/internal/domain/entity"
)

// memRepo is an in-memory WakeSessionRepository.
type memRepo struct {
	nextID   int64
	opened   []entity.WakeSession
	closed   map[int64]entity.WakeSession
	pruneArg int
}

func newMemRepo() *memRepo {
	return &memRepo{closed: make(map[int64]entity.WakeSession)}
}

func (m *memRepo) Open(_ context.Context, s *entity.WakeSession) (int64, error) {
	m.nextID++
	rec := *s
	rec.ID = m.nextID
	m.opened = append(m.opened, rec)
	return m.nextID, nil
}

func (m *memRepo) Close(_ context.Context, id int64, s *entity.WakeSession) error {
	m.closed[id] = *s
	return nil
}

func (m *memRepo) Recent(_ context.Context, _ int) ([]entity.WakeSession, error) {
	return m.opened, nil
}

func (m *memRepo) Prune(_ context.Context, keep int) error {
	m.pruneArg = keep
	return nil
}

func TestRecorder_OneRecordPerArmCycle(t *testing.T) {
	repo := newMemRepo()
	rec := NewRecordWakeSessionsUseCase(repo, 100)
	ctx := context.Background()

	rec.Armed(ctx)
	rec.Armed(ctx) // re-arm within an open cycle must not open another record
	rec.Touched(ctx)
	rec.Touched(ctx)
	rec.Expired(ctx)

	require.Len(t, repo.opened, 1)
	closed, ok := repo.closed[1]
	require.True(t, ok)
	assert.Equal(t, entity.EndReasonExpired, closed.Reason)
	assert.Equal(t, 2, closed.ResetCount)
	assert.Equal(t, 100, repo.pruneArg)
}

func TestRecorder_CancelledCycle(t *testing.T) {
	repo := newMemRepo()
	rec := NewRecordWakeSessionsUseCase(repo, 0)
	ctx := context.Background()

	rec.Armed(ctx)
	rec.Cancelled(ctx)

	closed, ok := repo.closed[1]
	require.True(t, ok)
	assert.Equal(t, entity.EndReasonCancelled, closed.Reason)
	assert.Zero(t, repo.pruneArg, "prune disabled when keep is zero")
}

func TestRecorder_CloseWithoutOpenIsNoop(t *testing.T) {
	repo := newMemRepo()
	rec := NewRecordWakeSessionsUseCase(repo, 10)
	ctx := context.Background()

	rec.Expired(ctx)
	rec.Cancelled(ctx)
	assert.Empty(t, repo.closed)
}

func TestRecorder_NilRepoDisablesRecording(t *testing.T) {
	rec := NewRecordWakeSessionsUseCase(nil, 10)
	ctx := context.Background()

	// Must not panic.
	rec.Armed(ctx)
	rec.Touched(ctx)
	rec.Expired(ctx)
	rec.Cancelled(ctx)
}

func TestRecorder_NewCycleAfterExpiry(t *testing.T) {
	repo := newMemRepo()
	rec := NewRecordWakeSessionsUseCase(repo, 100)
	ctx := context.Background()

	rec.Armed(ctx)
	rec.Expired(ctx)
	rec.Armed(ctx)
	rec.Cancelled(ctx)

	assert.Len(t, repo.opened, 2)
	assert.Len(t, repo.closed, 2)
}
