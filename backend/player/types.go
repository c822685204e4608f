package player

import (
	"context"

	"github.com/godbus/dbus/v5"

	idbus "github.com/b0bbywan/go-spotify-dbus/backend/internal/dbus"
)

// State is the availability of the target player.
type State int

func (s State) String() string {
	if s == Connected {
		return "connected"
	}
	return "disconnected"
}

// Metadata is the player's map of current-track fields, as read from the
// Metadata property.
type Metadata map[string]dbus.Variant

// Object is a remote bus object. dbus.BusObject satisfies it.
type Object interface {
	CallWithContext(ctx context.Context, method string, flags dbus.Flags, args ...interface{}) *dbus.Call
}

// Bus hands out remote objects. SessionBus adapts a live *dbus.Conn; tests
// provide their own.
type Bus interface {
	// Object returns the object exported by dest at path.
	Object(dest string, path dbus.ObjectPath) Object
	// Daemon returns the message bus itself (org.freedesktop.DBus).
	Daemon() Object
}

// TrackSnapshot mirrors the shape of a catalog track object (name, artists,
// album with images) so local and remote tracks can be handled alike.
// It only ever carries one artist and one image.
type TrackSnapshot struct {
	Name    string   `json:"name"`
	Artists []Artist `json:"artists"`
	Album   Album    `json:"album"`
}

type Artist struct {
	Name string `json:"name"`
}

type Album struct {
	Name   string  `json:"name"`
	Images []Image `json:"images"`
}

type Image struct {
	URL string `json:"url"`
}

// Request types for the API

type SeekRequest struct {
	Offset int64 `json:"offset"`
}

type OpenRequest struct {
	URI string `json:"uri"`
}

type PropertyRequest struct {
	Value interface{} `json:"value"`
}

// Values unwraps every field, for callers that cannot handle variants.
func (m Metadata) Values() map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = idbus.Unwrap(v)
	}
	return out
}

// Plain strips D-Bus variants out of a property or metadata value so it can
// be encoded as JSON.
func Plain(value interface{}) interface{} {
	return idbus.Unwrap(value)
}
