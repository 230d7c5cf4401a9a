package watchdog

// callbackProxy is the interception layer installed over the window's
// previous dispatch target. It embeds ForwardingCallback, so every method is
// a transparent pass-through to the captured target, and overrides touch
// dispatch alone: a touch is the one event category that counts as user
// activity and re-arms the countdown before being forwarded.
//
// Key, trackball, and generic motion events deliberately do not reset the
// timer; only direct pointer interaction with the surface does.
type callbackProxy struct {
	*ForwardingCallback

	// onActivity is invoked on every touch dispatch, before forwarding.
	onActivity func()
}

func newCallbackProxy(onActivity func()) *callbackProxy {
	return &callbackProxy{
		ForwardingCallback: NewForwardingCallback(nil),
		onActivity:         onActivity,
	}
}

// DispatchTouch re-arms the countdown, then forwards unchanged.
func (p *callbackProxy) DispatchTouch(ev MotionEvent) bool {
	p.onActivity()
	return p.ForwardingCallback.DispatchTouch(ev)
}
