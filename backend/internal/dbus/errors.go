package dbus

import (
	"errors"

	"github.com/godbus/dbus/v5"
)

// TimeoutError is returned when a D-Bus call exceeds its deadline.
type TimeoutError struct{}

func (e *TimeoutError) Error() string { return "dbus: call timed out" }

// ErrorName returns the D-Bus error name carried by err, or "" when err is
// not a D-Bus error reply.
func ErrorName(err error) string {
	var dbusErr dbus.Error
	if errors.As(err, &dbusErr) {
		return dbusErr.Name
	}
	var dbusErrPtr *dbus.Error
	if errors.As(err, &dbusErrPtr) && dbusErrPtr != nil {
		return dbusErrPtr.Name
	}
	return ""
}

// IsErrorName reports whether err is a D-Bus error reply named name.
func IsErrorName(err error, name string) bool {
	return err != nil && ErrorName(err) == name
}
