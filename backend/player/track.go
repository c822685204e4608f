package player

import (
	"errors"

	"github.com/zmb3/spotify"
)

// FullTrack converts the snapshot to the Web API track type so it can go
// wherever a catalog track is expected.
func (t TrackSnapshot) FullTrack(id string) spotify.FullTrack {
	artists := make([]spotify.SimpleArtist, 0, len(t.Artists))
	for _, a := range t.Artists {
		artists = append(artists, spotify.SimpleArtist{Name: a.Name})
	}
	images := make([]spotify.Image, 0, len(t.Album.Images))
	for _, img := range t.Album.Images {
		images = append(images, spotify.Image{URL: img.URL})
	}

	track := spotify.FullTrack{
		SimpleTrack: spotify.SimpleTrack{
			Name:    t.Name,
			Artists: artists,
		},
		Album: spotify.SimpleAlbum{
			Name:   t.Album.Name,
			Images: images,
		},
	}
	if id != "" {
		track.ID = spotify.ID(id)
		track.URI = spotify.URI("spotify:track:" + id)
	}
	return track
}

// GetFullTrack returns the current track as a Web API track. A missing
// track id is not an error; the track is returned without one.
func (c *Client) GetFullTrack() (spotify.FullTrack, error) {
	snap, err := c.GetCurrentTrack()
	if err != nil {
		return spotify.FullTrack{}, err
	}

	id, err := c.GetTrackID()
	var missing *MissingFieldError
	if err != nil && !errors.As(err, &missing) {
		return spotify.FullTrack{}, err
	}
	return snap.FullTrack(id), nil
}
