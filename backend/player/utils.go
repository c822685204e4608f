package player

import (
	"strings"

	idbus "github.com/b0bbywan/go-spotify-dbus/backend/internal/dbus"
)

// BusNameFor returns the MPRIS bus name of a player (e.g. "spotify").
func BusNameFor(target string) string {
	return MPRIS_PREFIX + "." + target
}

// validateBusName validates that a busName is MPRIS-compliant
func validateBusName(busName string) error {
	if busName == "" {
		return &InvalidBusNameError{BusName: busName, Reason: "empty bus name"}
	}
	if !strings.HasPrefix(busName, MPRIS_PREFIX+".") || len(busName) == len(MPRIS_PREFIX)+1 {
		return &InvalidBusNameError{BusName: busName, Reason: "must start with org.mpris.MediaPlayer2."}
	}
	// Check that it doesn't contain dangerous characters
	if strings.Contains(busName, "..") || strings.Contains(busName, "/") || strings.ContainsAny(busName, "\x00\r\n ") {
		return &InvalidBusNameError{BusName: busName, Reason: "contains illegal characters"}
	}
	return nil
}

// remoteError classifies a failed remote call.
func remoteError(op string, err error) error {
	if idbus.IsErrorName(err, idbus.ERR_UNKNOWN_METHOD) {
		return &UnknownMethodError{Method: op}
	}
	return &RemoteCallError{Op: op, Err: err}
}

// lastSegment returns what follows the last ':' in s, or s itself.
func lastSegment(s string) string {
	return s[strings.LastIndexByte(s, ':')+1:]
}
