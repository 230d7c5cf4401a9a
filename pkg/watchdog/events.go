package watchdog

import "time"

// MotionKind distinguishes the pointer event streams a window dispatches.
type MotionKind int

const (
	// MotionTouch is a position-based pointer interaction on the surface.
	MotionTouch MotionKind = iota
	// MotionTrackball is relative pointer motion from a trackball-like device.
	MotionTrackball
	// MotionGeneric covers every other motion source (scroll, hover, joystick).
	MotionGeneric
)

// MotionAction describes what the pointer did.
type MotionAction int

const (
	MotionActionDown MotionAction = iota
	MotionActionUp
	MotionActionMove
)

// MotionEvent is a pointer event flowing through a window's dispatch chain.
type MotionEvent struct {
	Kind   MotionKind
	Action MotionAction
	X, Y   float64
	Time   time.Time
}

// KeyAction describes a key transition.
type KeyAction int

const (
	KeyActionDown KeyAction = iota
	KeyActionUp
)

// KeyEvent is a keyboard event flowing through a window's dispatch chain.
type KeyEvent struct {
	Action KeyAction
	Code   int
	Rune   rune
	Time   time.Time
}

// AccessibilityEvent carries text the window exposes to assistive technology.
type AccessibilityEvent struct {
	Kind string
	Text []string
}

// PanelFeature identifies which window panel a panel callback refers to.
type PanelFeature int

const (
	PanelFeatureOptions PanelFeature = iota
	PanelFeatureContext
)

// MenuItem is a single entry of a window panel menu.
type MenuItem struct {
	ID    int
	Title string
}

// Menu is the mutable menu a window hands to panel callbacks.
type Menu struct {
	Items []MenuItem
}

// View is an opaque handle to a host view hierarchy node. The watchdog never
// inspects it; it only carries it between the host and the forwarding target.
type View interface{}

// WindowAttributes are the layout parameters reported by the host when a
// window's attributes change.
type WindowAttributes struct {
	Width, Height int
	Flags         uint64
}

// ActionMode is an opaque handle to a host contextual action mode.
type ActionMode interface{}

// ActionModeCallback is the host-side callback bundle for an action mode
// being started. Opaque to the watchdog.
type ActionModeCallback interface{}
