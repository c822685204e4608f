package player

import (
	"fmt"

	"github.com/godbus/dbus/v5"

	"github.com/b0bbywan/go-spotify-dbus/logger"
)

// Invoke calls a method of the MPRIS player interface. Only the methods
// listed in methodSignatures are accepted and args must match their
// signature. The reply, if any, is discarded.
func (c *Client) Invoke(method Method, args ...interface{}) error {
	h, err := c.current()
	if err != nil {
		return err
	}
	if err := checkArgs(method, args); err != nil {
		return err
	}

	logger.Debug("[player] calling %s%v on %s", method, args, c.busName)
	if err := h.control.call(method, args...); err != nil {
		return remoteError(string(method), err)
	}
	return nil
}

// checkArgs validates args against the signature registered for method.
func checkArgs(method Method, args []interface{}) (err error) {
	want, ok := methodSignatures[method]
	if !ok {
		return &UnknownMethodError{Method: string(method)}
	}

	// SignatureOf panics on types D-Bus cannot represent
	defer func() {
		if r := recover(); r != nil {
			err = &ValidationError{Field: string(method), Message: fmt.Sprintf("invalid argument: %v", r)}
		}
	}()

	if got := dbus.SignatureOf(args...).String(); got != want {
		return &ValidationError{
			Field:   string(method),
			Message: fmt.Sprintf("expected arguments %q, got %q", want, got),
		}
	}
	return nil
}

// PlayPause toggles playback
func (c *Client) PlayPause() error {
	return c.Invoke(MethodPlayPause)
}

// Next skips to the next track
func (c *Client) Next() error {
	return c.Invoke(MethodNext)
}

// Previous goes back to the previous track
func (c *Client) Previous() error {
	return c.Invoke(MethodPrevious)
}

// Stop stops playback. Spotify handles it exactly like Pause.
func (c *Client) Stop() error {
	return c.Invoke(MethodStop)
}

// Pause pauses playback
func (c *Client) Pause() error {
	return c.Invoke(MethodPause)
}

// Play starts playback
func (c *Client) Play() error {
	return c.Invoke(MethodPlay)
}

// Seek moves the position by offset microseconds. Spotify accepts the call
// but ignores it.
//
// This is the MPRIS Seek method, not io.Seeker; go vet's stdmethods check
// reports the signature and is disabled in the Makefile.
func (c *Client) Seek(offset int64) error {
	return c.Invoke(MethodSeek, offset)
}

// Open asks the player to open uri (e.g. "spotify:track:4uLU6hMCjMI75M1A2tKUQC").
func (c *Client) Open(uri string) error {
	if uri == "" {
		if _, err := c.current(); err != nil {
			return err
		}
		return &ValidationError{Field: "uri", Message: "cannot be empty"}
	}
	return c.Invoke(MethodOpenURI, uri)
}

// SetPosition jumps to position microseconds within trackID.
func (c *Client) SetPosition(trackID string, position int64) error {
	if !dbus.ObjectPath(trackID).IsValid() {
		if _, err := c.current(); err != nil {
			return err
		}
		return &ValidationError{Field: "track_id", Message: "must be a valid object path"}
	}
	return c.Invoke(MethodSetPosition, dbus.ObjectPath(trackID), position)
}
