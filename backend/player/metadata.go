package player

import (
	"github.com/b0bbywan/go-spotify-dbus/logger"

	idbus "github.com/b0bbywan/go-spotify-dbus/backend/internal/dbus"
)

// snapshot returns the cached metadata. It is fetched on connection and
// by RefreshMetadata only, so it may describe a track that already ended.
func (c *Client) snapshot() (Metadata, error) {
	if _, err := c.current(); err != nil {
		return nil, err
	}
	md, _ := c.metadata.Get(metadataCacheKey)
	return md, nil
}

// GetInfo returns the raw value stored under key, or nil when the key is
// absent. Only a disconnected client makes it fail.
func (c *Client) GetInfo(key string) (interface{}, error) {
	md, err := c.snapshot()
	if err != nil {
		return nil, err
	}
	v, ok := md[key]
	if !ok {
		logger.Debug("[player] metadata key %s not set", key)
		return nil, nil
	}
	return v.Value(), nil
}

func (c *Client) stringField(key string) (string, error) {
	md, err := c.snapshot()
	if err != nil {
		return "", err
	}
	v, ok := md[key]
	if !ok {
		return "", &MissingFieldError{Key: key}
	}
	return idbus.Stringify(v.Value()), nil
}

// GetTrackID returns the last ':'-separated segment of the track id,
// so "spotify:track:abc123" gives "abc123".
func (c *Client) GetTrackID() (string, error) {
	id, err := c.stringField(KEY_TRACK_ID)
	if err != nil {
		return "", err
	}
	return lastSegment(id), nil
}

func (c *Client) GetAlbum() (string, error) {
	return c.stringField(KEY_ALBUM)
}

func (c *Client) GetTrack() (string, error) {
	return c.stringField(KEY_TITLE)
}

func (c *Client) GetArtURL() (string, error) {
	return c.stringField(KEY_ART_URL)
}

// GetArtist returns the first of the track's artists.
func (c *Client) GetArtist() (string, error) {
	md, err := c.snapshot()
	if err != nil {
		return "", err
	}
	v, ok := md[KEY_ARTIST]
	if !ok {
		return "", &MissingFieldError{Key: KEY_ARTIST}
	}

	artists, ok := idbus.ExtractStringSlice(v)
	if !ok {
		// some players send a single string
		artists = []string{idbus.Stringify(v.Value())}
	}
	if len(artists) == 0 {
		return "", &MissingFieldError{Key: KEY_ARTIST}
	}
	return artists[0], nil
}

// GetCurrentTrack assembles the cached metadata into a TrackSnapshot.
func (c *Client) GetCurrentTrack() (TrackSnapshot, error) {
	name, err := c.GetTrack()
	if err != nil {
		return TrackSnapshot{}, err
	}
	artist, err := c.GetArtist()
	if err != nil {
		return TrackSnapshot{}, err
	}
	album, err := c.GetAlbum()
	if err != nil {
		return TrackSnapshot{}, err
	}
	artURL, err := c.GetArtURL()
	if err != nil {
		return TrackSnapshot{}, err
	}

	return TrackSnapshot{
		Name:    name,
		Artists: []Artist{{Name: artist}},
		Album: Album{
			Name:   album,
			Images: []Image{{URL: artURL}},
		},
	}, nil
}
