package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli"

	"github.com/b0bbywan/go-spotify-dbus/backend/player"
	"github.com/b0bbywan/go-spotify-dbus/config"
	"github.com/b0bbywan/go-spotify-dbus/logger"
)

var flags = []cli.Flag{
	cli.StringFlag{
		EnvVar: "SPOTIFY_DBUS_PLAYER_TARGET",
		Name:   "player, p",
		Value:  player.DEFAULT_TARGET,
		Usage:  "MPRIS player name",
	},
	cli.DurationFlag{
		Name:  "wait, w",
		Usage: "wait up to this long for the player to appear",
	},
	cli.DurationFlag{
		Name:  "timeout",
		Value: 5 * time.Second,
		Usage: "per-call timeout",
	},
	cli.BoolFlag{
		Name:  "debug",
		Usage: "log bus activity to stderr",
	},
}

// dialSession connects to the player on the session bus. The returned
// func releases the client and the bus.
func dialSession(c *cli.Context) (Controller, func(), error) {
	if c.GlobalBool("debug") {
		logger.SetLevel(logger.DEBUG)
	} else {
		logger.SetLevel(logger.ERROR)
	}

	bus, err := player.NewSessionBus()
	if err != nil {
		return nil, nil, fmt.Errorf("session bus: %w", err)
	}

	cfg := &config.PlayerConfig{
		Target:        c.GlobalString("player"),
		RetryInterval: 250 * time.Millisecond,
		Timeout:       c.GlobalDuration("timeout"),
	}
	client, err := player.New(context.Background(), bus, cfg)
	if err != nil {
		bus.Close()
		return nil, nil, err
	}
	release := func() {
		client.Close()
		bus.Close()
	}

	if wait := c.GlobalDuration("wait"); wait > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), wait)
		defer cancel()
		if err := client.WaitConnected(ctx); err != nil {
			release()
			return nil, nil, fmt.Errorf("%s did not show up: %w", client.BusName(), err)
		}
	}
	return client, release, nil
}

func main() {
	app := newApp(dialSession)

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
