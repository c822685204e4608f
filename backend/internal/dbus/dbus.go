package dbus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/godbus/dbus/v5"
)

// DefaultTimeout is used when a caller passes a zero timeout.
var DefaultTimeout = 5 * time.Second

// Caller is the part of dbus.BusObject the helpers need.
type Caller interface {
	CallWithContext(ctx context.Context, method string, flags dbus.Flags, args ...interface{}) *dbus.Call
}

// Call issues method on obj and waits at most timeout for the reply.
// A negative timeout waits for as long as the transport does.
func Call(obj Caller, timeout time.Duration, method string, args ...interface{}) *dbus.Call {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	call := obj.CallWithContext(ctx, method, 0, args...)
	if call == nil {
		return &dbus.Call{Method: method, Args: args, Err: errors.New("dbus: no reply")}
	}
	if errors.Is(call.Err, context.DeadlineExceeded) {
		call.Err = &TimeoutError{}
	}
	return call
}

// GetProperty retrieves a single property from a D-Bus object.
func GetProperty(obj Caller, timeout time.Duration, iface, prop string) (dbus.Variant, error) {
	var v dbus.Variant
	call := Call(obj, timeout, PROP_GET, iface, prop)
	if call.Err != nil {
		return dbus.Variant{}, call.Err
	}
	if err := call.Store(&v); err != nil {
		return dbus.Variant{}, err
	}
	return v, nil
}

// SetProperty sets a single property on a D-Bus object. value is wrapped
// in a variant unless it already is one.
func SetProperty(obj Caller, timeout time.Duration, iface, prop string, value interface{}) error {
	v, ok := value.(dbus.Variant)
	if !ok {
		v = dbus.MakeVariant(value)
	}
	return Call(obj, timeout, PROP_SET, iface, prop, v).Err
}

// CallMethod calls a method on a D-Bus object and discards its reply.
func CallMethod(obj Caller, timeout time.Duration, method string, args ...interface{}) error {
	return Call(obj, timeout, method, args...).Err
}

// GetNameOwner resolves a well-known bus name to its unique owner (":1.42").
// It fails with org.freedesktop.DBus.Error.NameHasNoOwner when nobody owns it.
func GetNameOwner(bus Caller, timeout time.Duration, name string) (string, error) {
	var owner string
	call := Call(bus, timeout, BUS_GET_NAME_OWNER, name)
	if call.Err != nil {
		return "", call.Err
	}
	if err := call.Store(&owner); err != nil {
		return "", err
	}
	return owner, nil
}

// --- Variant extraction helpers ---

// ExtractString extracts a string from a variant value. Object paths are
// accepted since MPRIS exposes track ids as paths.
func ExtractString(v dbus.Variant) (string, bool) {
	switch val := v.Value().(type) {
	case string:
		return val, true
	case dbus.ObjectPath:
		return string(val), true
	default:
		return "", false
	}
}

// ExtractStringSlice extracts a list of strings from an "as" variant, or from
// a loosely typed "av" list.
func ExtractStringSlice(v dbus.Variant) ([]string, bool) {
	switch val := v.Value().(type) {
	case []string:
		return val, true
	case []interface{}:
		out := make([]string, 0, len(val))
		for _, item := range val {
			out = append(out, Stringify(item))
		}
		return out, true
	case []dbus.Variant:
		out := make([]string, 0, len(val))
		for _, item := range val {
			out = append(out, Stringify(item.Value()))
		}
		return out, true
	default:
		return nil, false
	}
}

// ExtractVariantMap extracts a map[string]dbus.Variant from a dbus.Variant.
func ExtractVariantMap(v dbus.Variant) (map[string]dbus.Variant, bool) {
	val, ok := v.Value().(map[string]dbus.Variant)
	return val, ok
}

// Stringify renders a decoded D-Bus value the way a user would read it.
func Stringify(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case dbus.ObjectPath:
		return string(v)
	case dbus.Variant:
		return Stringify(v.Value())
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Unwrap strips variants out of a decoded D-Bus value, recursively, so it
// can be encoded as JSON. Object paths become plain strings.
func Unwrap(value interface{}) interface{} {
	switch v := value.(type) {
	case dbus.Variant:
		return Unwrap(v.Value())
	case map[string]dbus.Variant:
		out := make(map[string]interface{}, len(v))
		for k, item := range v {
			out[k] = Unwrap(item.Value())
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, item := range v {
			out[k] = Unwrap(item)
		}
		return out
	case []dbus.Variant:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = Unwrap(item.Value())
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = Unwrap(item)
		}
		return out
	case dbus.ObjectPath:
		return string(v)
	default:
		return v
	}
}
