package player

import (
	"context"
	"sync"
	"time"

	"github.com/b0bbywan/go-spotify-dbus/cache"
	"github.com/b0bbywan/go-spotify-dbus/config"
	"github.com/b0bbywan/go-spotify-dbus/logger"

	idbus "github.com/b0bbywan/go-spotify-dbus/backend/internal/dbus"
)

// Client queries and controls a single MPRIS player.
//
// The player does not have to be running when the client is built: New
// probes it once and, when it is absent, keeps probing in the background
// until it appears. Once connected the client never goes back to
// Disconnected, even if the player exits.
type Client struct {
	bus      Bus
	busName  string
	timeout  time.Duration
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	// state and handles are published together
	mu      sync.RWMutex
	state   State
	handles *handles

	// cached snapshot of the Metadata property (no expiration)
	metadata *cache.Cache[Metadata]

	ready    chan struct{}
	loopDone chan struct{}
}

// New builds a client for the player named in cfg and probes it right away.
// It never blocks on the player being absent.
func New(ctx context.Context, bus Bus, cfg *config.PlayerConfig) (*Client, error) {
	if bus == nil {
		return nil, &ValidationError{Field: "bus", Message: "cannot be nil"}
	}
	if cfg == nil {
		cfg = &config.PlayerConfig{}
	}

	busName := cfg.BusName
	if busName == "" {
		target := cfg.Target
		if target == "" {
			target = DEFAULT_TARGET
		}
		busName = BusNameFor(target)
	}
	if err := validateBusName(busName); err != nil {
		return nil, err
	}

	interval := cfg.RetryInterval
	if interval <= 0 {
		interval = DEFAULT_RETRY_INTERVAL
	}

	subCtx, cancel := context.WithCancel(ctx)
	c := &Client{
		bus:      bus,
		busName:  busName,
		timeout:  cfg.Timeout,
		interval: interval,
		ctx:      subCtx,
		cancel:   cancel,
		state:    Disconnected,
		metadata: cache.New[Metadata](0),
		ready:    make(chan struct{}),
	}

	if err := c.probe(); err != nil {
		logger.Info("[player] %s not available, retrying every %s", busName, interval)
		logger.Debug("[player] probe %s: %v", busName, err)
		c.loopDone = make(chan struct{})
		go c.reconnectLoop()
		return c, nil
	}

	c.connect()
	return c, nil
}

// BusName returns the bus name of the target player.
func (c *Client) BusName() string {
	return c.busName
}

// State returns the current connection state.
func (c *Client) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Connected reports whether the player has been reached.
func (c *Client) Connected() bool {
	return c.State() == Connected
}

// WaitConnected blocks until the player is connected, ctx is done or the
// client is closed.
func (c *Client) WaitConnected(ctx context.Context) error {
	select {
	case <-c.ready:
		return nil
	default:
	}

	select {
	case <-c.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-c.ctx.Done():
		// a connect racing with Close still counts
		select {
		case <-c.ready:
			return nil
		default:
			return &NotConnectedError{BusName: c.busName}
		}
	}
}

// Close stops the reconnect loop, if any, and waits for it to return.
// It does not close the bus, which belongs to the caller.
func (c *Client) Close() {
	c.cancel()
	if c.loopDone != nil {
		<-c.loopDone
	}
}

// probe checks that somebody owns the player's bus name.
func (c *Client) probe() error {
	_, err := idbus.GetNameOwner(c.bus.Daemon(), c.timeout, c.busName)
	return err
}

// connect acquires fresh handles, caches the metadata snapshot, then
// publishes the Connected state. It runs at most once per client.
func (c *Client) connect() {
	h := newHandles(c.bus.Object(c.busName, MPRIS_PATH), c.timeout)

	if _, err := c.fetchMetadata(h); err != nil {
		logger.Warn("[player] failed to fetch metadata from %s: %v", c.busName, err)
	}

	c.mu.Lock()
	c.handles = h
	c.state = Connected
	c.mu.Unlock()
	close(c.ready)

	logger.Info("[player] connected to %s", c.busName)
}

// current returns the handles, or NotConnectedError while disconnected.
func (c *Client) current() (*handles, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.state != Connected {
		return nil, &NotConnectedError{BusName: c.busName}
	}
	return c.handles, nil
}
