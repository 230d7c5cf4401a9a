package watchdog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// driveAll invokes every method of the dispatch surface once and returns the
// boolean results keyed by method name.
func driveAll(cb WindowCallback) map[string]bool {
	results := map[string]bool{
		"DispatchKey":                   cb.DispatchKey(KeyEvent{Code: 42}),
		"DispatchKeyShortcut":           cb.DispatchKeyShortcut(KeyEvent{Code: 43}),
		"DispatchTouch":                 cb.DispatchTouch(MotionEvent{Kind: MotionTouch, X: 1, Y: 2}),
		"DispatchTrackball":             cb.DispatchTrackball(MotionEvent{Kind: MotionTrackball}),
		"DispatchGenericMotion":         cb.DispatchGenericMotion(MotionEvent{Kind: MotionGeneric}),
		"DispatchPopulateAccessibility": cb.DispatchPopulateAccessibility(&AccessibilityEvent{Kind: "focus"}),
		"CreatePanelMenu":               cb.CreatePanelMenu(PanelFeatureOptions, &Menu{}),
		"PreparePanel":                  cb.PreparePanel(PanelFeatureOptions, nil, &Menu{}),
		"MenuOpened":                    cb.MenuOpened(PanelFeatureOptions, &Menu{}),
		"MenuItemSelected":              cb.MenuItemSelected(PanelFeatureOptions, MenuItem{ID: 7}),
		"SearchRequested":               cb.SearchRequested(),
	}
	cb.CreatePanelView(PanelFeatureContext)
	cb.WindowAttributesChanged(WindowAttributes{Width: 640, Height: 480})
	cb.ContentChanged()
	cb.WindowFocusChanged(true)
	cb.AttachedToWindow()
	cb.DetachedFromWindow()
	cb.PanelClosed(PanelFeatureOptions, &Menu{})
	cb.StartActionMode(nil)
	cb.ActionModeStarted(nil)
	cb.ActionModeFinished(nil)
	return results
}

var allDispatchMethods = []string{
	"DispatchKey", "DispatchKeyShortcut", "DispatchTouch", "DispatchTrackball",
	"DispatchGenericMotion", "DispatchPopulateAccessibility", "CreatePanelView",
	"CreatePanelMenu", "PreparePanel", "MenuOpened", "MenuItemSelected",
	"WindowAttributesChanged", "ContentChanged", "WindowFocusChanged",
	"AttachedToWindow", "DetachedFromWindow", "PanelClosed", "SearchRequested",
	"StartActionMode", "ActionModeStarted", "ActionModeFinished",
}

func TestProxy_ForwardsEveryMethod(t *testing.T) {
	for _, retBool := range []bool{true, false} {
		loop := newFakeLoop()
		target := &recordingCallback{retBool: retBool}
		win := &fakeWindow{cb: target}

		_, err := New(20*time.Second, win, loop, WithClock(loop))
		require.NoError(t, err)

		results := driveAll(win.Callback())

		for method, got := range results {
			assert.Equal(t, retBool, got, "%s must return the target's value", method)
		}
		for _, method := range allDispatchMethods {
			assert.Contains(t, target.calls, method, "%s must reach the forwarding target", method)
		}
	}
}

func TestProxy_ForwardsArgumentsUnmodified(t *testing.T) {
	loop := newFakeLoop()
	target := &recordingCallback{}
	win := &fakeWindow{cb: target}

	_, err := New(20*time.Second, win, loop, WithClock(loop))
	require.NoError(t, err)

	key := KeyEvent{Action: KeyActionDown, Code: 13, Rune: '\n'}
	win.Callback().DispatchKey(key)
	assert.Equal(t, key, target.lastKey)

	touch := MotionEvent{Kind: MotionTouch, Action: MotionActionDown, X: 3.5, Y: 7.25}
	win.Callback().DispatchTouch(touch)
	assert.Equal(t, touch, target.lastMotion)

	win.Callback().WindowFocusChanged(true)
	assert.True(t, target.lastFocus)
}

func TestProxy_NeutralDefaultsWithoutTarget(t *testing.T) {
	loop := newFakeLoop()
	win := &fakeWindow{} // no pre-existing dispatch target

	_, err := New(20*time.Second, win, loop, WithClock(loop))
	require.NoError(t, err)

	results := driveAll(win.Callback())
	for method, got := range results {
		assert.False(t, got, "%s must return the neutral default without a target", method)
	}
	assert.Nil(t, win.Callback().CreatePanelView(PanelFeatureOptions))
	assert.Nil(t, win.Callback().StartActionMode(nil))
}

func TestProxy_OnlyTouchResetsCountdown(t *testing.T) {
	o, loop, win := newTestOverride(t, 10*time.Second)

	fired := 0
	require.NoError(t, o.SetOnTimerComplete(func() { fired++ }))

	// Half the interval passes, then every non-touch event arrives. None of
	// them may extend the deadline.
	loop.Advance(5 * time.Second)
	cb := win.Callback()
	cb.DispatchKey(KeyEvent{Code: 1})
	cb.DispatchKeyShortcut(KeyEvent{Code: 2})
	cb.DispatchTrackball(MotionEvent{Kind: MotionTrackball})
	cb.DispatchGenericMotion(MotionEvent{Kind: MotionGeneric})
	cb.WindowFocusChanged(true)
	cb.AttachedToWindow()
	cb.MenuOpened(PanelFeatureOptions, &Menu{})

	loop.Advance(5500 * time.Millisecond)
	assert.Equal(t, 1, fired, "non-touch events must not have extended the deadline")
}

// keepAwakeProbe observes the keep-awake flag at the moment the forwarded
// touch reaches the original target.
type keepAwakeProbe struct {
	recordingCallback
	win          *fakeWindow
	flagAtTouch  bool
	touchReached bool
}

func (p *keepAwakeProbe) DispatchTouch(ev MotionEvent) bool {
	p.flagAtTouch = p.win.KeepAwake()
	p.touchReached = true
	return p.recordingCallback.DispatchTouch(ev)
}

func TestProxy_ResetHappensBeforeForwarding(t *testing.T) {
	loop := newFakeLoop()
	win := &fakeWindow{}
	probe := &keepAwakeProbe{win: win}
	win.cb = probe

	o, err := New(5*time.Second, win, loop, WithClock(loop))
	require.NoError(t, err)

	fired := 0
	require.NoError(t, o.SetOnTimerComplete(func() { fired++ }))

	// Let the countdown expire so the flag is down, then touch.
	loop.Advance(6 * time.Second)
	require.False(t, win.KeepAwake())

	win.Callback().DispatchTouch(MotionEvent{Kind: MotionTouch})
	assert.True(t, probe.touchReached, "touch must still be forwarded")
	assert.True(t, probe.flagAtTouch, "countdown must be re-armed before the touch is forwarded")
}
