package iconcloud

import (
	"sync/atomic"
	"time"

	"github.com/abedrayen/Portfolio/iconcloud/scene"
)

// Clock reports monotonic time elapsed since mount.
type Clock interface {
	Elapsed() time.Duration
}

// Driver advances a cloud once per display frame.
type Driver struct {
	cloud  *Cloud
	clock  Clock
	frames atomic.Uint64
}

func NewDriver(c *Cloud, clock Clock) *Driver {
	return &Driver{cloud: c, clock: clock}
}

// Step reads the clock and updates the group rotation. It never blocks on
// texture loading.
func (d *Driver) Step() scene.Group {
	d.frames.Add(1)
	return d.cloud.Tick(d.clock.Elapsed())
}

// Frames returns the number of steps taken.
func (d *Driver) Frames() uint64 { return d.frames.Load() }
