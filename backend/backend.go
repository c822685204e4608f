package backend

import (
	"context"

	"github.com/b0bbywan/go-spotify-dbus/backend/player"
	"github.com/b0bbywan/go-spotify-dbus/backend/zeroconf"
	"github.com/b0bbywan/go-spotify-dbus/config"
	"github.com/b0bbywan/go-spotify-dbus/logger"
)

type Backend struct {
	Player   *player.Client
	Zeroconf *zeroconf.ZeroConfBackend

	ctx context.Context
}

// New builds the player client on bus and the optional mDNS advertisement.
// The player does not need to be running yet.
func New(ctx context.Context, bus player.Bus, playercfg *config.PlayerConfig, zerocfg *config.ZeroConfig) (*Backend, error) {
	backend := Backend{ctx: ctx}

	p, err := player.New(ctx, bus, playercfg)
	if err != nil {
		return nil, err
	}
	backend.Player = p

	z, err := zeroconf.New(ctx, zerocfg)
	if err != nil {
		p.Close()
		return nil, err
	}
	backend.Zeroconf = z

	return &backend, nil
}

func (b *Backend) Start() error {
	if b.Player != nil {
		logger.Debug("[backend] player %s is %s", b.Player.BusName(), b.Player.State())
	}

	if b.Zeroconf != nil {
		if b.Player != nil {
			b.Zeroconf.Announce(b.Player.State().String())
		}
		if err := b.Zeroconf.Start(); err != nil {
			return err
		}
		if b.Player != nil {
			go b.announceConnection()
		}
	}
	return nil
}

// announceConnection flips the advertised state once the player shows up.
// It returns at once when the player is already connected.
func (b *Backend) announceConnection() {
	if err := b.Player.WaitConnected(b.ctx); err != nil {
		return
	}
	b.Zeroconf.Announce(player.Connected.String())
}

func (b *Backend) Close() {
	if b.Zeroconf != nil {
		b.Zeroconf.Close()
	}
	if b.Player != nil {
		b.Player.Close()
	}
}
