package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/godbus/dbus/v5"
	"github.com/urfave/cli"

	"github.com/b0bbywan/go-spotify-dbus/backend/player"
	"github.com/b0bbywan/go-spotify-dbus/config"
)

// Controller is the part of the player client the commands use.
type Controller interface {
	BusName() string
	State() player.State

	GetProperty(name string) (dbus.Variant, error)
	GetInfo(key string) (interface{}, error)
	GetCurrentTrack() (player.TrackSnapshot, error)

	PlayPause() error
	Next() error
	Previous() error
	Stop() error
	Pause() error
	Play() error
	Seek(offset int64) error
	Open(uri string) error
}

type dialFunc func(c *cli.Context) (Controller, func(), error)

func newApp(dial dialFunc) *cli.App {
	app := cli.NewApp()
	app.Name = "spotifyctl"
	app.Usage = "control a running Spotify client over MPRIS"
	app.Version = config.AppVersion
	app.Flags = flags

	with := func(run func(c *cli.Context, p Controller) error) cli.ActionFunc {
		return func(c *cli.Context) error {
			p, release, err := dial(c)
			if err != nil {
				return err
			}
			defer release()
			return run(c, p)
		}
	}

	simple := func(name, usage string, call func(p Controller) error) cli.Command {
		return cli.Command{
			Name:  name,
			Usage: usage,
			Action: with(func(c *cli.Context, p Controller) error {
				return call(p)
			}),
		}
	}

	app.Commands = []cli.Command{
		{
			Name:   "status",
			Usage:  "print the player bus name and whether it is reachable",
			Action: with(status),
		},
		{
			Name:  "track",
			Usage: "print the current track",
			Flags: []cli.Flag{
				cli.BoolFlag{Name: "json", Usage: "print the track as JSON"},
			},
			Action: with(track),
		},
		{
			Name:      "info",
			Usage:     "print a raw metadata field",
			ArgsUsage: "<key>",
			Action:    with(info),
		},
		{
			Name:      "get",
			Usage:     "print a player property",
			ArgsUsage: "<property>",
			Action:    with(getProperty),
		},
		simple("play", "start playback", Controller.Play),
		simple("pause", "pause playback", Controller.Pause),
		simple("play-pause", "toggle playback", Controller.PlayPause),
		simple("stop", "stop playback", Controller.Stop),
		simple("next", "skip to the next track", Controller.Next),
		simple("previous", "go back to the previous track", Controller.Previous),
		{
			Name:            "seek",
			Usage:           "move the position by offset microseconds",
			ArgsUsage:       "<offset>",
			SkipFlagParsing: true, // negative offsets are not flags
			Action:          with(seek),
		},
		{
			Name:      "open",
			Usage:     "open a URI (e.g. spotify:track:4uLU6hMCjMI75M1A2tKUQC)",
			ArgsUsage: "<uri>",
			Action:    with(open),
		},
	}
	return app
}

func status(c *cli.Context, p Controller) error {
	fmt.Fprintf(c.App.Writer, "%s %s\n", p.BusName(), p.State())
	return nil
}

func track(c *cli.Context, p Controller) error {
	t, err := p.GetCurrentTrack()
	if err != nil {
		return err
	}
	if c.Bool("json") {
		enc := json.NewEncoder(c.App.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(t)
	}

	artist := ""
	if len(t.Artists) > 0 {
		artist = t.Artists[0].Name
	}
	fmt.Fprintf(c.App.Writer, "%s - %s (%s)\n", artist, t.Name, t.Album.Name)
	return nil
}

func info(c *cli.Context, p Controller) error {
	key, err := requireArg(c, "key")
	if err != nil {
		return err
	}
	v, err := p.GetInfo(key)
	if err != nil {
		return err
	}
	if v == nil {
		return fmt.Errorf("%s is not set", key)
	}
	fmt.Fprintln(c.App.Writer, v)
	return nil
}

func getProperty(c *cli.Context, p Controller) error {
	name, err := requireArg(c, "property")
	if err != nil {
		return err
	}
	v, err := p.GetProperty(name)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, v.Value())
	return nil
}

func seek(c *cli.Context, p Controller) error {
	raw, err := requireArg(c, "offset")
	if err != nil {
		return err
	}
	offset, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid offset %q: %w", raw, err)
	}
	return p.Seek(offset)
}

func open(c *cli.Context, p Controller) error {
	uri, err := requireArg(c, "uri")
	if err != nil {
		return err
	}
	return p.Open(uri)
}

func requireArg(c *cli.Context, name string) (string, error) {
	if c.NArg() != 1 {
		return "", fmt.Errorf("%s expects exactly one <%s>", c.Command.Name, name)
	}
	return c.Args().First(), nil
}
