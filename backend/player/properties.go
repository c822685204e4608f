package player

import (
	"fmt"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/b0bbywan/go-spotify-dbus/logger"

	idbus "github.com/b0bbywan/go-spotify-dbus/backend/internal/dbus"
)

// GetProperty reads a property of the MPRIS player interface.
func (c *Client) GetProperty(name string) (dbus.Variant, error) {
	h, err := c.current()
	if err != nil {
		return dbus.Variant{}, err
	}
	if name == "" {
		return dbus.Variant{}, &ValidationError{Field: "property", Message: "cannot be empty"}
	}

	v, err := h.props.get(name)
	if err != nil {
		return dbus.Variant{}, remoteError(name, err)
	}
	return v, nil
}

// SetProperty writes a property of the MPRIS player interface.
func (c *Client) SetProperty(name string, value interface{}) error {
	h, err := c.current()
	if err != nil {
		return err
	}
	if name == "" {
		return &ValidationError{Field: "property", Message: "cannot be empty"}
	}

	logger.Debug("[player] setting %s to %v on %s", name, value, c.busName)
	if err := h.props.set(name, value); err != nil {
		return remoteError(name, err)
	}
	return nil
}

// RefreshMetadata fetches the Metadata property again and replaces the
// cached snapshot. Accessors never do this on their own.
func (c *Client) RefreshMetadata() (Metadata, error) {
	h, err := c.current()
	if err != nil {
		return nil, err
	}
	return c.fetchMetadata(h)
}

// MetadataUpdatedAt returns when the snapshot was last fetched.
func (c *Client) MetadataUpdatedAt() time.Time {
	return c.metadata.UpdatedAt(metadataCacheKey)
}

func (c *Client) fetchMetadata(h *handles) (Metadata, error) {
	v, err := h.props.get(METADATA_PROPERTY)
	if err != nil {
		return nil, remoteError(METADATA_PROPERTY, err)
	}
	raw, ok := idbus.ExtractVariantMap(v)
	if !ok {
		return nil, &RemoteCallError{
			Op:  METADATA_PROPERTY,
			Err: fmt.Errorf("unexpected signature %s", v.Signature()),
		}
	}

	md := Metadata(raw)
	c.metadata.Set(metadataCacheKey, md)
	logger.Debug("[player] cached %d metadata fields from %s", len(md), c.busName)
	return md, nil
}
