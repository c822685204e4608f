package api

import (
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/zmb3/spotify"

	"github.com/b0bbywan/go-spotify-dbus/backend/player"
)

// fakePlayer records control calls and answers queries from its fields.
type fakePlayer struct {
	mu        sync.Mutex
	state     player.State
	updatedAt time.Time
	track     player.TrackSnapshot
	trackID   string
	info      map[string]interface{}
	props     map[string]interface{}
	err       error
	calls     []string
	lastArg   interface{}
}

func newFakePlayer() *fakePlayer {
	return &fakePlayer{
		state:     player.Connected,
		updatedAt: time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC),
		track: player.TrackSnapshot{
			Name:    "Song",
			Artists: []player.Artist{{Name: "Artist A"}},
			Album:   player.Album{Name: "Alb", Images: []player.Image{{URL: "http://x"}}},
		},
		trackID: "abc123",
		info:    map[string]interface{}{"xesam:title": "Song"},
		props:   map[string]interface{}{"PlaybackStatus": "Playing"},
	}
}

func (f *fakePlayer) record(call string, arg interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	f.lastArg = arg
	return f.err
}

func (f *fakePlayer) BusName() string              { return "org.mpris.MediaPlayer2.spotify" }
func (f *fakePlayer) State() player.State          { return f.state }
func (f *fakePlayer) MetadataUpdatedAt() time.Time { return f.updatedAt }

func (f *fakePlayer) GetProperty(name string) (dbus.Variant, error) {
	if f.err != nil {
		return dbus.Variant{}, f.err
	}
	v, ok := f.props[name]
	if !ok {
		return dbus.Variant{}, &player.RemoteCallError{Op: name, Err: dbus.Error{Name: "org.freedesktop.DBus.Error.UnknownProperty"}}
	}
	return dbus.MakeVariant(v), nil
}

func (f *fakePlayer) SetProperty(name string, value interface{}) error {
	return f.record("SetProperty:"+name, value)
}

func (f *fakePlayer) RefreshMetadata() (player.Metadata, error) {
	if err := f.record("RefreshMetadata", nil); err != nil {
		return nil, err
	}
	md := player.Metadata{}
	for k, v := range f.info {
		md[k] = dbus.MakeVariant(v)
	}
	return md, nil
}

func (f *fakePlayer) GetInfo(key string) (interface{}, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.info[key], nil
}

func (f *fakePlayer) GetTrackID() (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.trackID, nil
}

func (f *fakePlayer) GetCurrentTrack() (player.TrackSnapshot, error) {
	if f.err != nil {
		return player.TrackSnapshot{}, f.err
	}
	return f.track, nil
}

func (f *fakePlayer) GetFullTrack() (spotify.FullTrack, error) {
	if f.err != nil {
		return spotify.FullTrack{}, f.err
	}
	return f.track.FullTrack(f.trackID), nil
}

func (f *fakePlayer) PlayPause() error        { return f.record("PlayPause", nil) }
func (f *fakePlayer) Next() error             { return f.record("Next", nil) }
func (f *fakePlayer) Previous() error         { return f.record("Previous", nil) }
func (f *fakePlayer) Stop() error             { return f.record("Stop", nil) }
func (f *fakePlayer) Pause() error            { return f.record("Pause", nil) }
func (f *fakePlayer) Play() error             { return f.record("Play", nil) }
func (f *fakePlayer) Seek(offset int64) error { return f.record("Seek", offset) }
func (f *fakePlayer) Open(uri string) error   { return f.record("Open", uri) }

func (f *fakePlayer) lastCall() (string, interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return "", nil
	}
	return f.calls[len(f.calls)-1], f.lastArg
}
