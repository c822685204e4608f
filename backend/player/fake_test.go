package player

import (
	"context"
	"sync"

	"github.com/godbus/dbus/v5"

	idbus "github.com/b0bbywan/go-spotify-dbus/backend/internal/dbus"
)

type fakeCall struct {
	Dest   string
	Method string
	Args   []interface{}
}

// fakeBus emulates a session bus with at most one MPRIS player on it.
type fakeBus struct {
	mu          sync.Mutex
	present     bool
	probes      int
	calls       []fakeCall
	props       map[string]dbus.Variant
	failProps   map[string]error
	failMethods map[string]error
}

func newFakeBus(present bool) *fakeBus {
	return &fakeBus{
		present:     present,
		props:       map[string]dbus.Variant{},
		failProps:   map[string]error{},
		failMethods: map[string]error{},
	}
}

func (b *fakeBus) Object(dest string, path dbus.ObjectPath) Object {
	return &fakeObject{bus: b, dest: dest}
}

func (b *fakeBus) Daemon() Object {
	return &fakeObject{bus: b, dest: idbus.DBUS_INTERFACE, daemon: true}
}

func (b *fakeBus) setPresent(present bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.present = present
}

func (b *fakeBus) setMetadata(md map[string]dbus.Variant) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.props[METADATA_PROPERTY] = dbus.MakeVariant(md)
}

func (b *fakeBus) probeCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.probes
}

func (b *fakeBus) remoteCalls() []fakeCall {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]fakeCall(nil), b.calls...)
}

type fakeObject struct {
	bus    *fakeBus
	dest   string
	daemon bool
}

func (o *fakeObject) CallWithContext(ctx context.Context, method string, flags dbus.Flags, args ...interface{}) *dbus.Call {
	b := o.bus
	b.mu.Lock()
	defer b.mu.Unlock()

	if o.daemon {
		b.probes++
		if !b.present {
			return &dbus.Call{Method: method, Err: dbus.Error{Name: idbus.ERR_NAME_HAS_NO_OWNER}}
		}
		return &dbus.Call{Method: method, Body: []interface{}{":1.42"}}
	}

	b.calls = append(b.calls, fakeCall{Dest: o.dest, Method: method, Args: args})

	switch method {
	case idbus.PROP_GET:
		name := args[1].(string)
		if err, ok := b.failProps[name]; ok {
			return &dbus.Call{Method: method, Err: err}
		}
		v, ok := b.props[name]
		if !ok {
			return &dbus.Call{Method: method, Err: dbus.Error{Name: idbus.ERR_UNKNOWN_PROPERTY}}
		}
		return &dbus.Call{Method: method, Body: []interface{}{v}}
	case idbus.PROP_SET:
		name := args[1].(string)
		if err, ok := b.failProps[name]; ok {
			return &dbus.Call{Method: method, Err: err}
		}
		b.props[name] = args[2].(dbus.Variant)
		return &dbus.Call{Method: method}
	default:
		if err, ok := b.failMethods[method]; ok {
			return &dbus.Call{Method: method, Err: err}
		}
		return &dbus.Call{Method: method}
	}
}

func spotifyMetadata() map[string]dbus.Variant {
	return map[string]dbus.Variant{
		KEY_TRACK_ID: dbus.MakeVariant("spotify:track:abc123"),
		KEY_TITLE:    dbus.MakeVariant("Song"),
		KEY_ARTIST:   dbus.MakeVariant([]string{"Artist A", "Artist B"}),
		KEY_ALBUM:    dbus.MakeVariant("Alb"),
		KEY_ART_URL:  dbus.MakeVariant("http://x"),
	}
}
