// Package clock models time as a monotonically increasing block height,
// advanced only by the host, never by domain logic. Eligibility windows and
// renewal timestamps are all expressed in heights.
package clock

import (
	"context"
	"sync"
	"time"
)

// BlockClock exposes the current height to domain logic.
type BlockClock interface {
	Height() int64
}

// Counter is the canonical BlockClock: a host-advanced monotonic counter.
// Production wiring advances it on a fixed interval via Run; tests advance
// it manually.
type Counter struct {
	mu     sync.RWMutex
	height int64
}

// NewCounter starts a counter at the given height.
func NewCounter(start int64) *Counter {
	return &Counter{height: start}
}

// Height returns the current block height.
func (c *Counter) Height() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.height
}

// Advance moves the counter forward by n heights and returns the new height.
// Negative advances are ignored; the counter is monotonic.
func (c *Counter) Advance(n int64) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n > 0 {
		c.height += n
	}
	return c.height
}

// Run advances the counter by one height per interval until ctx is done.
func (c *Counter) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			c.Advance(1)
		}
	}
}
