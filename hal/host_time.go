package hal

import (
	"sync"
	"time"
)

// hostClock is either wall-clock based or advanced in fixed ticks.
type hostClock struct {
	mu    sync.Mutex
	now   func() time.Time
	start time.Time

	tick  time.Duration
	ticks uint64
}

func newHostClock() *hostClock {
	return &hostClock{now: time.Now}
}

// newTickClock returns a clock that only moves when stepped, by d per tick.
func newTickClock(d time.Duration) *hostClock {
	return &hostClock{tick: d}
}

// step marks n frames. The wall clock starts on its first step.
func (c *hostClock) step(n uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.now != nil && c.start.IsZero() {
		c.start = c.now()
	}
	c.ticks += n
}

func (c *hostClock) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.now == nil {
		return time.Duration(c.ticks) * c.tick
	}
	if c.start.IsZero() {
		return 0
	}
	return c.now().Sub(c.start)
}

// Ticks returns how many frames have been stepped.
func (c *hostClock) Ticks() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ticks
}
