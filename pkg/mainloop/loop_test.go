package mainloop

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runLoop(t *testing.T) *Loop {
	t.Helper()
	l := New()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = l.Run(context.Background())
	}()
	t.Cleanup(func() {
		l.Quit()
		wg.Wait()
	})
	return l
}

// call runs fn on the loop goroutine and waits for it to finish.
func call(l *Loop, fn func()) {
	done := make(chan struct{})
	l.Post(func() {
		fn()
		close(done)
	})
	<-done
}

func TestLoop_RunsPostedTasksInOrder(t *testing.T) {
	l := runLoop(t)

	var got []int
	for i := 0; i < 10; i++ {
		i := i
		l.Post(func() { got = append(got, i) })
	}

	call(l, func() {})
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, got)
}

func TestLoop_IsCurrent(t *testing.T) {
	l := runLoop(t)

	assert.False(t, l.IsCurrent(), "test goroutine is not the loop goroutine")

	var inside bool
	call(l, func() { inside = l.IsCurrent() })
	assert.True(t, inside, "tasks run on the loop goroutine")
}

func TestLoop_IsCurrentFalseWhenNotRunning(t *testing.T) {
	l := New()
	assert.False(t, l.IsCurrent())
}

func TestLoop_CallAfterFiresOnLoopGoroutine(t *testing.T) {
	l := runLoop(t)

	fired := make(chan bool, 1)
	l.CallAfter(10*time.Millisecond, func() {
		fired <- l.IsCurrent()
	})

	select {
	case onLoop := <-fired:
		assert.True(t, onLoop)
	case <-time.After(2 * time.Second):
		t.Fatal("delayed task never fired")
	}
}

func TestTask_StopUnschedules(t *testing.T) {
	l := runLoop(t)

	ran := make(chan struct{}, 1)
	task := l.CallAfter(30*time.Millisecond, func() { ran <- struct{}{} })

	require.True(t, task.Stop(), "task was still pending")

	select {
	case <-ran:
		t.Fatal("stopped task must not run")
	case <-time.After(100 * time.Millisecond):
	}

	assert.False(t, task.Stop(), "second stop reports not pending")
}

func TestTask_StopAfterRunReportsNotPending(t *testing.T) {
	l := runLoop(t)

	ran := make(chan struct{})
	task := l.CallAfter(time.Millisecond, func() { close(ran) })

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("task never ran")
	}

	assert.False(t, task.Stop())
}

func TestLoop_QuitDrainsQueuedTasks(t *testing.T) {
	l := New()

	var ran bool
	l.Post(func() { ran = true })
	l.Quit()

	require.NoError(t, l.Run(context.Background()))
	assert.True(t, ran)
}

func TestLoop_ContextCancellation(t *testing.T) {
	l := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := l.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
