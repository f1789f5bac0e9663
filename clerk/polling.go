package clerk

import (
	"context"
	"time"

	"github.com/MKhiriev/go-clerk-fapi/internal/workers"
)

// StartPolling refreshes the client snapshot every interval until ctx is
// done or StopPolling is called. A non-positive interval uses the default
// of 30s. Starting an already running poller is a no-op.
func (c *Clerk) StartPolling(ctx context.Context, interval time.Duration) {
	c.pollMu.Lock()
	defer c.pollMu.Unlock()

	if c.poller != nil && c.poller.Running() {
		return
	}
	c.poller = workers.NewPoller(c, interval, c.logger)
	c.poller.Run(ctx)
}

// StopPolling stops the poller and waits for an in-flight refresh.
func (c *Clerk) StopPolling() {
	c.pollMu.Lock()
	p := c.poller
	c.pollMu.Unlock()

	if p != nil {
		p.Stop()
	}
}

// Polling reports whether the poller is running.
func (c *Clerk) Polling() bool {
	c.pollMu.Lock()
	defer c.pollMu.Unlock()
	return c.poller != nil && c.poller.Running()
}
