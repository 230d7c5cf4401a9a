package watchdog

// WindowCallback is the composite dispatch interface a host window exposes.
// The host routes every input event and window lifecycle notification for a
// surface through whichever WindowCallback is currently installed on it.
//
// The interface is intentionally exhaustive: hosts offer a single composite
// callback slot with no per-event-type subscription, so anything that wants
// to observe one event category has to carry the whole surface.
type WindowCallback interface {
	// DispatchKey handles a key event. Returns true if consumed.
	DispatchKey(ev KeyEvent) bool

	// DispatchKeyShortcut handles an unhandled-shortcut key event.
	DispatchKeyShortcut(ev KeyEvent) bool

	// DispatchTouch handles a touch-screen pointer event.
	DispatchTouch(ev MotionEvent) bool

	// DispatchTrackball handles a trackball motion event.
	DispatchTrackball(ev MotionEvent) bool

	// DispatchGenericMotion handles motion events from other sources.
	DispatchGenericMotion(ev MotionEvent) bool

	// DispatchPopulateAccessibility lets the callback fill an accessibility
	// event. Returns true if dispatch should stop.
	DispatchPopulateAccessibility(ev *AccessibilityEvent) bool

	// CreatePanelView returns a custom view for the given panel, or nil to
	// let the host build a standard panel.
	CreatePanelView(feature PanelFeature) View

	// CreatePanelMenu populates the menu for a panel the first time it is
	// shown. Returns true if the panel should be displayed.
	CreatePanelMenu(feature PanelFeature, menu *Menu) bool

	// PreparePanel is called each time a panel is about to be shown.
	PreparePanel(feature PanelFeature, view View, menu *Menu) bool

	// MenuOpened is called when a panel menu is opened by the user.
	MenuOpened(feature PanelFeature, menu *Menu) bool

	// MenuItemSelected is called when a panel menu item is chosen.
	MenuItemSelected(feature PanelFeature, item MenuItem) bool

	// WindowAttributesChanged is called when the window's layout attributes
	// change.
	WindowAttributesChanged(attrs WindowAttributes)

	// ContentChanged is called when the window's content view changes.
	ContentChanged()

	// WindowFocusChanged is called when the window gains or loses focus.
	WindowFocusChanged(hasFocus bool)

	// AttachedToWindow is called when the callback's surface is attached.
	AttachedToWindow()

	// DetachedFromWindow is called when the callback's surface is detached.
	DetachedFromWindow()

	// PanelClosed is called when a panel is dismissed.
	PanelClosed(feature PanelFeature, menu *Menu)

	// SearchRequested is called when the user signals a search. Returns true
	// if the request was handled.
	SearchRequested() bool

	// StartActionMode gives the callback a chance to handle an action mode
	// request. Returns the started mode, or nil to decline.
	StartActionMode(cb ActionModeCallback) ActionMode

	// ActionModeStarted is called after an action mode has been started.
	ActionModeStarted(mode ActionMode)

	// ActionModeFinished is called after an action mode has finished.
	ActionModeFinished(mode ActionMode)
}

// ForwardingCallback implements WindowCallback by forwarding every call,
// arguments untouched, to a delegate and returning whatever the delegate
// returns. With no delegate set, every method degrades to the interface's
// neutral default (false, nil, or no-op).
//
// Interceptors embed it and override only the methods they care about, so the
// exhaustive pass-through surface lives in exactly one place.
type ForwardingCallback struct {
	target WindowCallback
}

// NewForwardingCallback returns a pass-through callback over target.
// A nil target is allowed.
func NewForwardingCallback(target WindowCallback) *ForwardingCallback {
	return &ForwardingCallback{target: target}
}

// SetTarget replaces the delegate. A nil target makes every method return its
// neutral default.
func (f *ForwardingCallback) SetTarget(target WindowCallback) {
	f.target = target
}

// Target returns the current delegate, or nil.
func (f *ForwardingCallback) Target() WindowCallback {
	return f.target
}

func (f *ForwardingCallback) DispatchKey(ev KeyEvent) bool {
	return f.target != nil && f.target.DispatchKey(ev)
}

func (f *ForwardingCallback) DispatchKeyShortcut(ev KeyEvent) bool {
	return f.target != nil && f.target.DispatchKeyShortcut(ev)
}

func (f *ForwardingCallback) DispatchTouch(ev MotionEvent) bool {
	return f.target != nil && f.target.DispatchTouch(ev)
}

func (f *ForwardingCallback) DispatchTrackball(ev MotionEvent) bool {
	return f.target != nil && f.target.DispatchTrackball(ev)
}

func (f *ForwardingCallback) DispatchGenericMotion(ev MotionEvent) bool {
	return f.target != nil && f.target.DispatchGenericMotion(ev)
}

func (f *ForwardingCallback) DispatchPopulateAccessibility(ev *AccessibilityEvent) bool {
	return f.target != nil && f.target.DispatchPopulateAccessibility(ev)
}

func (f *ForwardingCallback) CreatePanelView(feature PanelFeature) View {
	if f.target == nil {
		return nil
	}
	return f.target.CreatePanelView(feature)
}

func (f *ForwardingCallback) CreatePanelMenu(feature PanelFeature, menu *Menu) bool {
	return f.target != nil && f.target.CreatePanelMenu(feature, menu)
}

func (f *ForwardingCallback) PreparePanel(feature PanelFeature, view View, menu *Menu) bool {
	return f.target != nil && f.target.PreparePanel(feature, view, menu)
}

func (f *ForwardingCallback) MenuOpened(feature PanelFeature, menu *Menu) bool {
	return f.target != nil && f.target.MenuOpened(feature, menu)
}

func (f *ForwardingCallback) MenuItemSelected(feature PanelFeature, item MenuItem) bool {
	return f.target != nil && f.target.MenuItemSelected(feature, item)
}

func (f *ForwardingCallback) WindowAttributesChanged(attrs WindowAttributes) {
	if f.target != nil {
		f.target.WindowAttributesChanged(attrs)
	}
}

func (f *ForwardingCallback) ContentChanged() {
	if f.target != nil {
		f.target.ContentChanged()
	}
}

func (f *ForwardingCallback) WindowFocusChanged(hasFocus bool) {
	if f.target != nil {
		f.target.WindowFocusChanged(hasFocus)
	}
}

func (f *ForwardingCallback) AttachedToWindow() {
	if f.target != nil {
		f.target.AttachedToWindow()
	}
}

func (f *ForwardingCallback) DetachedFromWindow() {
	if f.target != nil {
		f.target.DetachedFromWindow()
	}
}

func (f *ForwardingCallback) PanelClosed(feature PanelFeature, menu *Menu) {
	if f.target != nil {
		f.target.PanelClosed(feature, menu)
	}
}

func (f *ForwardingCallback) SearchRequested() bool {
	return f.target != nil && f.target.SearchRequested()
}

func (f *ForwardingCallback) StartActionMode(cb ActionModeCallback) ActionMode {
	if f.target == nil {
		return nil
	}
	return f.target.StartActionMode(cb)
}

func (f *ForwardingCallback) ActionModeStarted(mode ActionMode) {
	if f.target != nil {
		f.target.ActionModeStarted(mode)
	}
}

func (f *ForwardingCallback) ActionModeFinished(mode ActionMode) {
	if f.target != nil {
		f.target.ActionModeFinished(mode)
	}
}
