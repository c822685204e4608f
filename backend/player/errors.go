package player

import "fmt"

// NotConnectedError is returned by every call made before the player showed
// up on the bus. No remote call is attempted.
type NotConnectedError struct {
	BusName string
}

func (e *NotConnectedError) Error() string {
	return "player not connected: " + e.BusName
}

// RemoteCallError wraps a failure reaching or executing on the player.
type RemoteCallError struct {
	Op  string
	Err error
}

func (e *RemoteCallError) Error() string {
	return fmt.Sprintf("remote call %s failed: %v", e.Op, e.Err)
}

func (e *RemoteCallError) Unwrap() error {
	return e.Err
}

// UnknownMethodError indicates a method the client or the player does not know
type UnknownMethodError struct {
	Method string
}

func (e *UnknownMethodError) Error() string {
	return "unknown method: " + e.Method
}

// MissingFieldError indicates that a metadata key is absent from the snapshot
type MissingFieldError struct {
	Key string
}

func (e *MissingFieldError) Error() string {
	return "missing metadata field: " + e.Key
}

// InvalidBusNameError indicates that a busName is invalid
type InvalidBusNameError struct {
	BusName string
	Reason  string
}

func (e *InvalidBusNameError) Error() string {
	return "invalid player name: " + e.Reason
}

// ValidationError indicates that a parameter is invalid
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}
