package watchdog

import (
	"time"
)

// fakeLoop is a deterministic Scheduler+Clock for tests. Time only moves when
// Advance is called; due tasks run inline, in due order, on the test
// goroutine. The affinity answer is controlled by the current field.
type fakeLoop struct {
	now     time.Time
	tasks   []*fakeTask
	current bool
}

type fakeTask struct {
	due     time.Time
	fn      func()
	stopped bool
	done    bool
}

func (t *fakeTask) Stop() bool {
	if t.done || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

func newFakeLoop() *fakeLoop {
	return &fakeLoop{
		now:     time.Unix(1000, 0),
		current: true,
	}
}

func (l *fakeLoop) Now() time.Time { return l.now }

func (l *fakeLoop) IsCurrent() bool { return l.current }

func (l *fakeLoop) CallAfter(d time.Duration, fn func()) TaskHandle {
	t := &fakeTask{due: l.now.Add(d), fn: fn}
	l.tasks = append(l.tasks, t)
	return t
}

// pending reports how many scheduled tasks are still live.
func (l *fakeLoop) pending() int {
	n := 0
	for _, t := range l.tasks {
		if !t.done && !t.stopped {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d, running every task that comes due
// along the way (including tasks those tasks schedule).
func (l *fakeLoop) Advance(d time.Duration) {
	target := l.now.Add(d)
	for {
		next := l.nextDue(target)
		if next == nil {
			break
		}
		if next.due.After(l.now) {
			l.now = next.due
		}
		next.done = true
		next.fn()
	}
	l.now = target
}

func (l *fakeLoop) nextDue(limit time.Time) *fakeTask {
	var next *fakeTask
	for _, t := range l.tasks {
		if t.done || t.stopped || t.due.After(limit) {
			continue
		}
		if next == nil || t.due.Before(next.due) {
			next = t
		}
	}
	return next
}

// fakeWindow is an in-memory Window recording keep-awake transitions.
type fakeWindow struct {
	cb        WindowCallback
	keepAwake bool

	keepAwakeRaises int // false -> true transitions
	keepAwakeDrops  int // true -> false transitions
}

func (w *fakeWindow) Callback() WindowCallback     { return w.cb }
func (w *fakeWindow) SetCallback(cb WindowCallback) { w.cb = cb }
func (w *fakeWindow) KeepAwake() bool              { return w.keepAwake }

func (w *fakeWindow) SetKeepAwake(on bool) {
	if on && !w.keepAwake {
		w.keepAwakeRaises++
	}
	if !on && w.keepAwake {
		w.keepAwakeDrops++
	}
	w.keepAwake = on
}

// recordingCallback implements the full WindowCallback surface, logging each
// call and returning canned values.
type recordingCallback struct {
	calls []string

	retBool       bool
	retView       View
	retActionMode ActionMode

	lastKey    KeyEvent
	lastMotion MotionEvent
	lastFocus  bool
}

func (r *recordingCallback) record(name string) {
	r.calls = append(r.calls, name)
}

func (r *recordingCallback) DispatchKey(ev KeyEvent) bool {
	r.record("DispatchKey")
	r.lastKey = ev
	return r.retBool
}

func (r *recordingCallback) DispatchKeyShortcut(ev KeyEvent) bool {
	r.record("DispatchKeyShortcut")
	r.lastKey = ev
	return r.retBool
}

func (r *recordingCallback) DispatchTouch(ev MotionEvent) bool {
	r.record("DispatchTouch")
	r.lastMotion = ev
	return r.retBool
}

func (r *recordingCallback) DispatchTrackball(ev MotionEvent) bool {
	r.record("DispatchTrackball")
	r.lastMotion = ev
	return r.retBool
}

func (r *recordingCallback) DispatchGenericMotion(ev MotionEvent) bool {
	r.record("DispatchGenericMotion")
	r.lastMotion = ev
	return r.retBool
}

func (r *recordingCallback) DispatchPopulateAccessibility(ev *AccessibilityEvent) bool {
	r.record("DispatchPopulateAccessibility")
	return r.retBool
}

func (r *recordingCallback) CreatePanelView(feature PanelFeature) View {
	r.record("CreatePanelView")
	return r.retView
}

func (r *recordingCallback) CreatePanelMenu(feature PanelFeature, menu *Menu) bool {
	r.record("CreatePanelMenu")
	return r.retBool
}

func (r *recordingCallback) PreparePanel(feature PanelFeature, view View, menu *Menu) bool {
	r.record("PreparePanel")
	return r.retBool
}

func (r *recordingCallback) MenuOpened(feature PanelFeature, menu *Menu) bool {
	r.record("MenuOpened")
	return r.retBool
}

func (r *recordingCallback) MenuItemSelected(feature PanelFeature, item MenuItem) bool {
	r.record("MenuItemSelected")
	return r.retBool
}

func (r *recordingCallback) WindowAttributesChanged(attrs WindowAttributes) {
	r.record("WindowAttributesChanged")
}

func (r *recordingCallback) ContentChanged() {
	r.record("ContentChanged")
}

func (r *recordingCallback) WindowFocusChanged(hasFocus bool) {
	r.record("WindowFocusChanged")
	r.lastFocus = hasFocus
}

func (r *recordingCallback) AttachedToWindow() {
	r.record("AttachedToWindow")
}

func (r *recordingCallback) DetachedFromWindow() {
	r.record("DetachedFromWindow")
}

func (r *recordingCallback) PanelClosed(feature PanelFeature, menu *Menu) {
	r.record("PanelClosed")
}

func (r *recordingCallback) SearchRequested() bool {
	r.record("SearchRequested")
	return r.retBool
}

func (r *recordingCallback) StartActionMode(cb ActionModeCallback) ActionMode {
	r.record("StartActionMode")
	return r.retActionMode
}

func (r *recordingCallback) ActionModeStarted(mode ActionMode) {
	r.record("ActionModeStarted")
}

func (r *recordingCallback) ActionModeFinished(mode ActionMode) {
	r.record("ActionModeFinished")
}
