package cli

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jebstuart/TimeoutOverride/internal/application/usecase"
	"github.com/jebstuart/TimeoutOverride/internal/domain/entity"
	"github.com/jebstuart/TimeoutOverride/internal/infrastructure/idle"
	"github.com/jebstuart/TimeoutOverride/internal/infrastructure/surface"
	"github.com/jebstuart/TimeoutOverride/pkg/mainloop"
	"github.com/jebstuart/TimeoutOverride/pkg/watchdog"
)

// stubSessionRepo counts opened records and collects close reasons. Guarded
// by a mutex because the recorder writes from the loop goroutine while the
// test asserts from its own.
type stubSessionRepo struct {
	mu     sync.Mutex
	opened int
	closed []entity.EndReason
}

func (s *stubSessionRepo) Open(_ context.Context, _ *entity.WakeSession) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opened++
	return int64(s.opened), nil
}

func (s *stubSessionRepo) Close(_ context.Context, _ int64, sess *entity.WakeSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = append(s.closed, sess.Reason)
	return nil
}

func (s *stubSessionRepo) Recent(_ context.Context, _ int) ([]entity.WakeSession, error) {
	return nil, nil
}

func (s *stubSessionRepo) Prune(_ context.Context, _ int) error {
	return nil
}

func (s *stubSessionRepo) counts() (opened int, closed []entity.EndReason) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opened, append([]entity.EndReason(nil), s.closed...)
}

// newTestController runs a real loop with a noop inhibitor and a short
// timeout, mirroring the run command's wiring.
func newTestController(t *testing.T, timeout time.Duration) (*WatchController, *stubSessionRepo) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	loop := mainloop.New()
	done := make(chan struct{})
	go func() {
		_ = loop.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		loop.Quit()
		cancel()
		<-done
	})

	win := surface.NewInhibitedWindow(ctx, idle.NewNoopInhibitor(), "test")
	sched := surface.NewLoopScheduler(loop)

	type installed struct {
		ov  *watchdog.Override
		err error
	}
	installCh := make(chan installed, 1)
	loop.Post(func() {
		ov, err := watchdog.New(timeout, win, sched)
		installCh <- installed{ov: ov, err: err}
	})
	res := <-installCh
	require.NoError(t, res.err)

	repo := &stubSessionRepo{}
	rec := usecase.NewRecordWakeSessionsUseCase(repo, 0)
	rec.Armed(ctx)

	return NewWatchController(ctx, loop, win, res.ov, rec), repo
}

func waitExpired(t *testing.T, ctrl *WatchController) {
	t.Helper()
	require.Eventually(t, func() bool {
		return !ctrl.Status().Armed
	}, 3*time.Second, 50*time.Millisecond, "countdown never expired")
}

func TestTouchAfterExpiryOpensNewSession(t *testing.T) {
	ctrl, repo := newTestController(t, 50*time.Millisecond)

	waitExpired(t, ctrl)
	opened, closed := repo.counts()
	require.Equal(t, 1, opened)
	require.Equal(t, []entity.EndReason{entity.EndReasonExpired}, closed)

	// A touch on the still-installed proxy starts a second arm cycle; it
	// must show up in history like one started with an explicit re-arm.
	ctrl.Touch()
	require.Eventually(t, func() bool {
		return ctrl.Status().Armed
	}, time.Second, 10*time.Millisecond, "touch did not re-arm")

	opened, _ = repo.counts()
	assert.Equal(t, 2, opened)

	waitExpired(t, ctrl)
	opened, closed = repo.counts()
	assert.Equal(t, 2, opened)
	assert.Equal(t, []entity.EndReason{entity.EndReasonExpired, entity.EndReasonExpired}, closed)
}

func TestExpiryZeroesTouchCount(t *testing.T) {
	ctrl, repo := newTestController(t, 50*time.Millisecond)

	ctrl.Touch()
	ctrl.Touch()
	require.Eventually(t, func() bool {
		return ctrl.Status().Resets == 2
	}, time.Second, 10*time.Millisecond)

	waitExpired(t, ctrl)
	assert.Equal(t, 0, ctrl.Status().Resets)

	// The count restarts with the cycle, not on top of the old total.
	ctrl.Touch()
	require.Eventually(t, func() bool {
		return ctrl.Status().Resets == 1
	}, time.Second, 10*time.Millisecond)

	opened, _ := repo.counts()
	assert.Equal(t, 2, opened)
}
