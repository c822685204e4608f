package player

import (
	"time"

	"github.com/godbus/dbus/v5"

	idbus "github.com/b0bbywan/go-spotify-dbus/backend/internal/dbus"
)

// SessionBus is a Bus backed by the user's session bus.
type SessionBus struct {
	conn *dbus.Conn
}

// NewSessionBus opens a private connection to the session bus.
func NewSessionBus() (*SessionBus, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, err
	}
	return &SessionBus{conn: conn}, nil
}

func (b *SessionBus) Object(dest string, path dbus.ObjectPath) Object {
	return b.conn.Object(dest, path)
}

func (b *SessionBus) Daemon() Object {
	return b.conn.BusObject()
}

// Close closes the underlying connection.
func (b *SessionBus) Close() error {
	if b.conn == nil {
		return nil
	}
	err := b.conn.Close()
	b.conn = nil
	return err
}

// handles are the two interfaces obtained on each successful connection.
// Both point at the same remote object.
type handles struct {
	props   *properties
	control *control
}

func newHandles(obj Object, timeout time.Duration) *handles {
	return &handles{
		props:   &properties{obj: obj, iface: MPRIS_PLAYER_IFACE, timeout: timeout},
		control: &control{obj: obj, timeout: timeout},
	}
}

// properties goes through org.freedesktop.DBus.Properties for a fixed interface.
type properties struct {
	obj     Object
	iface   string
	timeout time.Duration
}

func (p *properties) get(name string) (dbus.Variant, error) {
	return idbus.GetProperty(p.obj, p.timeout, p.iface, name)
}

func (p *properties) set(name string, value interface{}) error {
	return idbus.SetProperty(p.obj, p.timeout, p.iface, name, value)
}

// control calls members of the MPRIS player interface.
type control struct {
	obj     Object
	timeout time.Duration
}

func (c *control) call(method Method, args ...interface{}) error {
	return idbus.CallMethod(c.obj, c.timeout, MPRIS_PLAYER_IFACE+"."+string(method), args...)
}
