// Package idle provides system idle/screensaver inhibition backends for the
// keep-awake flag.
package idle

import (
	"context"
	"fmt"
	"sync"

	"github.com/godbus/dbus/v5"

	"github.com/jebstuart/TimeoutOverride/internal/application/port"
	"github.com/jebstuart/TimeoutOverride/internal/logging"
)

const (
	portalDest   = "org.freedesktop.portal.Desktop"
	portalPath   = "/org/freedesktop/portal/desktop"
	portalIface  = "org.freedesktop.portal.Inhibit"
	requestIface = "org.freedesktop.portal.Request"

	// Inhibit flags from the portal spec. We only ever block idle and
	// suspend; logout and user switching stay available.
	flagSuspend = 4
	flagIdle    = 8
)

var _ port.IdleInhibitor = (*PortalInhibitor)(nil)

// PortalInhibitor blocks system idle through the XDG Desktop Portal Inhibit
// API. Works under Wayland with any compositor that ships a portal backend.
// If no session bus or portal is reachable, the inhibitor degrades to an
// in-process refcount and every call succeeds.
type PortalInhibitor struct {
	mu        sync.Mutex
	conn      *dbus.Conn
	supported bool
	refcount  int

	// request is the handle of the active inhibit request, empty when none.
	// requestDone is set once the portal signals Response for it, meaning
	// the request object is already gone and must not be closed again.
	request     dbus.ObjectPath
	requestDone bool
}

// NewPortalInhibitor probes the session bus for the Inhibit portal. The
// returned inhibitor is always usable; lack of a portal only makes it a
// refcounting no-op.
func NewPortalInhibitor(ctx context.Context) *PortalInhibitor {
	log := logging.FromContext(ctx)
	p := &PortalInhibitor{}

	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		log.Debug().Err(err).Msg("idle inhibitor: no D-Bus session bus")
		return p
	}
	p.conn = conn

	var version uint32
	err = conn.Object(portalDest, portalPath).
		Call("org.freedesktop.DBus.Properties.Get", 0, portalIface, "version").
		Store(&version)
	if err != nil {
		log.Debug().Err(err).Msg("idle inhibitor: inhibit portal not available")
		return p
	}

	p.supported = true
	log.Debug().Uint32("version", version).Msg("idle inhibitor: portal available")
	return p
}

// Inhibit increments the refcount; the first call activates inhibition.
func (p *PortalInhibitor) Inhibit(ctx context.Context, reason string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.refcount++
	if p.refcount > 1 || !p.supported {
		return nil
	}

	if err := p.activate(ctx, reason); err != nil {
		p.refcount--
		return err
	}
	return nil
}

// activate issues the portal Inhibit call. Caller holds the lock.
func (p *PortalInhibitor) activate(ctx context.Context, reason string) error {
	log := logging.FromContext(ctx)

	// Inhibit(window: s, flags: u, options: a{sv}) -> handle: o
	var handle dbus.ObjectPath
	err := p.conn.Object(portalDest, portalPath).Call(portalIface+".Inhibit", 0,
		"", // window identifier, empty for non-sandboxed callers
		uint32(flagIdle|flagSuspend),
		map[string]dbus.Variant{"reason": dbus.MakeVariant(reason)},
	).Store(&handle)
	if err != nil {
		log.Warn().Err(err).Msg("idle inhibitor: portal inhibit failed")
		return fmt.Errorf("portal inhibit: %w", err)
	}

	p.request = handle
	p.requestDone = false

	// Some portals (GNOME in particular) complete the request right away
	// with a Response signal, destroying the request object. Track that so
	// Uninhibit doesn't try to close an object that no longer exists.
	go p.watchResponse(ctx, handle)

	log.Info().Str("handle", string(handle)).Str("reason", reason).
		Msg("idle inhibitor: activated")
	return nil
}

// watchResponse waits for the Response signal on the request object and
// marks the request as already-completed when it arrives.
func (p *PortalInhibitor) watchResponse(ctx context.Context, handle dbus.ObjectPath) {
	match := fmt.Sprintf("type='signal',interface='%s',member='Response',path='%s'",
		requestIface, handle)
	if err := p.conn.BusObject().Call("org.freedesktop.DBus.AddMatch", 0, match).Err; err != nil {
		return
	}

	signals := make(chan *dbus.Signal, 1)
	p.conn.Signal(signals)
	defer func() {
		p.conn.RemoveSignal(signals)
		_ = p.conn.BusObject().Call("org.freedesktop.DBus.RemoveMatch", 0, match).Err
	}()

	for {
		select {
		case sig := <-signals:
			if sig == nil {
				return
			}
			if sig.Path == handle && sig.Name == requestIface+".Response" {
				p.mu.Lock()
				p.requestDone = true
				p.mu.Unlock()
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// Uninhibit decrements the refcount; at zero the inhibition is released.
func (p *PortalInhibitor) Uninhibit(ctx context.Context) error {
	log := logging.FromContext(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.refcount == 0 {
		return nil
	}
	p.refcount--
	if p.refcount > 0 || !p.supported || p.request == "" {
		return nil
	}

	if !p.requestDone {
		_ = p.conn.Object(portalDest, p.request).Call(requestIface+".Close", 0).Err
	}
	p.request = ""
	log.Info().Msg("idle inhibitor: released")
	return nil
}

// IsInhibited reports whether the refcount is above zero.
func (p *PortalInhibitor) IsInhibited() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.refcount > 0
}

// Close drops any active inhibition and the bus connection.
func (p *PortalInhibitor) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn != nil && p.request != "" && !p.requestDone {
		_ = p.conn.Object(portalDest, p.request).Call(requestIface+".Close", 0).Err
	}
	p.request = ""
	p.refcount = 0

	if p.conn == nil {
		return nil
	}
	err := p.conn.Close()
	p.conn = nil
	return err
}
