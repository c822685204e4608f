package player

import (
	"time"

	"github.com/b0bbywan/go-spotify-dbus/logger"
)

// reconnectLoop probes the player every interval until it shows up or the
// client is closed. Probe failures are expected here and only logged.
func (c *Client) reconnectLoop() {
	defer close(c.loopDone)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	logger.Debug("[player] reconnect loop started for %s", c.busName)

	for {
		select {
		case <-c.ctx.Done():
			logger.Debug("[player] reconnect loop stopped")
			return
		case <-ticker.C:
			if err := c.probe(); err != nil {
				logger.Debug("[player] %s still unavailable: %v", c.busName, err)
				continue
			}
			c.connect()
			return
		}
	}
}
