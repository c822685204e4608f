package zeroconf

import (
	"context"
	"fmt"
	"sync"

	"github.com/grandcat/zeroconf"

	"github.com/b0bbywan/go-spotify-dbus/config"
	"github.com/b0bbywan/go-spotify-dbus/logger"
)

// ZeroConfBackend advertises the HTTP API over mDNS
type ZeroConfBackend struct {
	Config *config.ZeroConfig

	server *zeroconf.Server
	state  string
	ctx    context.Context
	cancel context.CancelFunc
	mu     sync.Mutex
}

// New returns a backend ready to publish, or nil when advertising is disabled.
func New(ctx context.Context, cfg *config.ZeroConfig) (*ZeroConfBackend, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}
	if cfg.Port <= 0 {
		return nil, fmt.Errorf("invalid zeroconf port: %d", cfg.Port)
	}

	subCtx, cancel := context.WithCancel(ctx)

	return &ZeroConfBackend{
		Config: cfg,
		ctx:    subCtx,
		cancel: cancel,
	}, nil
}

// Start publishes the service until the context is cancelled or Close is called.
func (z *ZeroConfBackend) Start() error {
	z.mu.Lock()
	defer z.mu.Unlock()

	if z.server != nil {
		return fmt.Errorf("service already published")
	}

	server, err := zeroconf.Register(
		z.Config.InstanceName,
		z.Config.ServiceType,
		z.Config.Domain,
		z.Config.Port,
		z.records(),
		z.Config.Listen,
	)
	if err != nil {
		return err
	}

	z.server = server
	logger.Info("[discovery] service '%s' published (type: %s, port: %d)",
		z.Config.InstanceName, z.Config.ServiceType, z.Config.Port)

	go func() {
		<-z.ctx.Done()
		z.Close()
	}()

	return nil
}

// Close withdraws the service. Safe to call more than once.
func (z *ZeroConfBackend) Close() {
	z.mu.Lock()
	defer z.mu.Unlock()

	if z.server != nil {
		z.server.Shutdown()
		z.server = nil
		logger.Debug("[discovery] service '%s' withdrawn", z.Config.InstanceName)
	}

	if z.cancel != nil {
		z.cancel()
		z.cancel = nil
	}
}

// Announce advertises the player state ("connected", "disconnected") in the
// TXT records, live if the service is already published.
func (z *ZeroConfBackend) Announce(state string) {
	z.mu.Lock()
	defer z.mu.Unlock()

	if z.state == state {
		return
	}
	z.state = state
	if z.server != nil {
		z.server.SetText(z.records())
		logger.Debug("[discovery] player state now %s", state)
	}
}

// records must be called with mu held.
func (z *ZeroConfBackend) records() []string {
	txt := append([]string(nil), z.Config.TxtRecords...)
	if z.state != "" {
		txt = append(txt, "state="+z.state)
	}
	return txt
}

// TxtRecords returns the records currently advertised.
func (z *ZeroConfBackend) TxtRecords() []string {
	z.mu.Lock()
	defer z.mu.Unlock()
	return z.records()
}
