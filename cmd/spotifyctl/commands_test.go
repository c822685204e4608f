package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/urfave/cli"

	"github.com/b0bbywan/go-spotify-dbus/backend/player"
)

type fakeController struct {
	calls    []string
	offset   int64
	uri      string
	err      error
	released bool
}

func (f *fakeController) BusName() string     { return "org.mpris.MediaPlayer2.spotify" }
func (f *fakeController) State() player.State { return player.Connected }

func (f *fakeController) GetProperty(name string) (dbus.Variant, error) {
	if name != "PlaybackStatus" {
		return dbus.Variant{}, &player.RemoteCallError{Op: name, Err: errors.New("no such property")}
	}
	return dbus.MakeVariant("Paused"), nil
}

func (f *fakeController) GetInfo(key string) (interface{}, error) {
	if key == "xesam:title" {
		return "Song", nil
	}
	return nil, nil
}

func (f *fakeController) GetCurrentTrack() (player.TrackSnapshot, error) {
	return player.TrackSnapshot{
		Name:    "Song",
		Artists: []player.Artist{{Name: "Artist A"}},
		Album:   player.Album{Name: "Alb", Images: []player.Image{{URL: "http://x"}}},
	}, nil
}

func (f *fakeController) call(name string) error {
	f.calls = append(f.calls, name)
	return f.err
}

func (f *fakeController) PlayPause() error { return f.call("PlayPause") }
func (f *fakeController) Next() error      { return f.call("Next") }
func (f *fakeController) Previous() error  { return f.call("Previous") }
func (f *fakeController) Stop() error      { return f.call("Stop") }
func (f *fakeController) Pause() error     { return f.call("Pause") }
func (f *fakeController) Play() error      { return f.call("Play") }

func (f *fakeController) Seek(offset int64) error {
	f.offset = offset
	return f.call("Seek")
}

func (f *fakeController) Open(uri string) error {
	f.uri = uri
	return f.call("Open")
}

func runApp(t *testing.T, f *fakeController, args ...string) (string, error) {
	t.Helper()
	app := newApp(func(c *cli.Context) (Controller, func(), error) {
		return f, func() { f.released = true }, nil
	})
	var out bytes.Buffer
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"spotifyctl"}, args...))
	return out.String(), err
}

func TestControlCommands(t *testing.T) {
	tests := map[string]string{
		"play":       "Play",
		"pause":      "Pause",
		"play-pause": "PlayPause",
		"stop":       "Stop",
		"next":       "Next",
		"previous":   "Previous",
	}
	for cmd, want := range tests {
		t.Run(cmd, func(t *testing.T) {
			f := &fakeController{}
			if _, err := runApp(t, f, cmd); err != nil {
				t.Fatalf("%s error = %v", cmd, err)
			}
			if len(f.calls) != 1 || f.calls[0] != want {
				t.Errorf("calls = %v, want [%s]", f.calls, want)
			}
			if !f.released {
				t.Error("controller should be released")
			}
		})
	}
}

func TestSeekAndOpen(t *testing.T) {
	f := &fakeController{}
	if _, err := runApp(t, f, "seek", "-5000000"); err != nil {
		t.Fatalf("seek error = %v", err)
	}
	if f.offset != -5000000 {
		t.Errorf("offset = %d, want -5000000", f.offset)
	}

	if _, err := runApp(t, f, "seek", "soon"); err == nil {
		t.Error("seek with a non-numeric offset should fail")
	}

	if _, err := runApp(t, f, "open", "spotify:track:xyz"); err != nil {
		t.Fatalf("open error = %v", err)
	}
	if f.uri != "spotify:track:xyz" {
		t.Errorf("uri = %q", f.uri)
	}

	if _, err := runApp(t, f, "open"); err == nil {
		t.Error("open without a uri should fail")
	}
}

func TestTrackCommand(t *testing.T) {
	out, err := runApp(t, &fakeController{}, "track")
	if err != nil {
		t.Fatalf("track error = %v", err)
	}
	if strings.TrimSpace(out) != "Artist A - Song (Alb)" {
		t.Errorf("track = %q", out)
	}

	out, err = runApp(t, &fakeController{}, "track", "--json")
	if err != nil {
		t.Fatalf("track --json error = %v", err)
	}
	if !strings.Contains(out, `"url": "http://x"`) {
		t.Errorf("track --json = %q", out)
	}
}

func TestQueryCommands(t *testing.T) {
	out, err := runApp(t, &fakeController{}, "status")
	if err != nil || strings.TrimSpace(out) != "org.mpris.MediaPlayer2.spotify connected" {
		t.Errorf("status = %q, %v", out, err)
	}

	out, err = runApp(t, &fakeController{}, "info", "xesam:title")
	if err != nil || strings.TrimSpace(out) != "Song" {
		t.Errorf("info = %q, %v", out, err)
	}
	if _, err := runApp(t, &fakeController{}, "info", "xesam:genre"); err == nil {
		t.Error("info on an absent key should fail")
	}

	out, err = runApp(t, &fakeController{}, "get", "PlaybackStatus")
	if err != nil || strings.TrimSpace(out) != "Paused" {
		t.Errorf("get = %q, %v", out, err)
	}
	var remote *player.RemoteCallError
	if _, err := runApp(t, &fakeController{}, "get", "Nope"); !errors.As(err, &remote) {
		t.Errorf("get Nope error = %v, want RemoteCallError", err)
	}
}

func TestCommandErrorsPropagate(t *testing.T) {
	f := &fakeController{err: &player.NotConnectedError{BusName: "org.mpris.MediaPlayer2.spotify"}}
	_, err := runApp(t, f, "play")

	var notConnected *player.NotConnectedError
	if !errors.As(err, &notConnected) {
		t.Errorf("play error = %v, want NotConnectedError", err)
	}
}

func TestDialFailure(t *testing.T) {
	app := newApp(func(c *cli.Context) (Controller, func(), error) {
		return nil, nil, errors.New("no session bus")
	})
	app.Writer = &bytes.Buffer{}
	if err := app.Run([]string{"spotifyctl", "play"}); err == nil || err.Error() != "no session bus" {
		t.Errorf("error = %v, want dial error", err)
	}
}
