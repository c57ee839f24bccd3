// Package iconcloud is a rotating sphere of icon sprites.
//
// A Cloud owns the sphere layout and a texture loader. Positions are computed
// once per item count; textures are loaded as one batch per locator list and
// revealed together when the batch commits. The group rotation is driven by
// elapsed time alone and keeps turning while textures load.
package iconcloud

import (
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/abedrayen/Portfolio/iconcloud/scene"
	"github.com/abedrayen/Portfolio/iconcloud/sphere"
	"github.com/abedrayen/Portfolio/iconcloud/texture"
	log "github.com/sirupsen/logrus"
)

// Defaults.
const (
	DefaultRotationRateX = 0.1
	DefaultRotationRateY = 0.15
	DefaultOpacity       = 0.9
	DefaultScale         = 1.0
)

// Options configures a Cloud.
type Options struct {
	RadiusMin float64
	RadiusMax float64

	// RotationRateX and RotationRateY are in radians per second.
	RotationRateX float64
	RotationRateY float64

	Opacity float32
	Scale   float64

	// Rand drives the layout. Nil uses a randomly seeded source.
	Rand sphere.Source

	Log log.FieldLogger
}

// DefaultOptions returns the stock cloud look.
func DefaultOptions() Options {
	return Options{
		RadiusMin:     sphere.MinRadius,
		RadiusMax:     sphere.MaxRadius,
		RotationRateX: DefaultRotationRateX,
		RotationRateY: DefaultRotationRateY,
		Opacity:       DefaultOpacity,
		Scale:         DefaultScale,
	}
}

// Cloud is the icon cloud component.
type Cloud struct {
	loader *texture.Loader
	opts   Options
	log    log.FieldLogger

	mu         sync.Mutex
	images     []string
	positions  []sphere.Position
	layouts    uint64
	group      scene.Group
	outOfRange map[int]bool
}

// New returns a cloud with no images. The cloud owns loader from here on.
func New(loader *texture.Loader, opts Options) *Cloud {
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if opts.RadiusMin == 0 && opts.RadiusMax == 0 {
		opts.RadiusMin, opts.RadiusMax = sphere.MinRadius, sphere.MaxRadius
	}
	l := opts.Log
	if l == nil {
		l = log.StandardLogger()
	}
	return &Cloud{
		loader:     loader,
		opts:       opts,
		log:        l.WithField("component", "iconcloud"),
		positions:  []sphere.Position{},
		outOfRange: map[int]bool{},
	}
}

// SetImages replaces the locator list.
//
// Positions are regenerated only when the number of images changes. The
// loader starts a new batch unless the list is unchanged. If the loader
// refuses the list the cloud is left as it was.
func (c *Cloud) SetImages(images []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := slices.Clone(images)
	if _, err := c.loader.Load(next); err != nil {
		return err
	}

	if c.layouts == 0 || len(next) != len(c.images) {
		c.positions = sphere.GenerateRadius(c.opts.Rand, len(next), c.opts.RadiusMin, c.opts.RadiusMax)
		c.layouts++
		c.log.WithField("count", len(next)).Debug("layout generated")
	}
	c.images = next
	return nil
}

// Images returns the current locator list.
func (c *Cloud) Images() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.images)
}

// Positions returns a copy of the current layout.
func (c *Cloud) Positions() []sphere.Position {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.positions)
}

// Layouts returns how many times the layout has been generated.
func (c *Cloud) Layouts() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.layouts
}

// Tick sets the group rotation for the elapsed mounted time.
func (c *Cloud) Tick(elapsed time.Duration) scene.Group {
	s := elapsed.Seconds()
	g := scene.Group{
		RotX: s * c.opts.RotationRateX,
		RotY: s * c.opts.RotationRateY,
	}
	c.mu.Lock()
	c.group = g
	c.mu.Unlock()
	return g
}

// Group returns the rotation set by the last Tick.
func (c *Cloud) Group() scene.Group {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.group
}

// Sprites returns one sprite per committed texture. A texture whose index has
// no position is placed at the origin.
func (c *Cloud) Sprites() []scene.Sprite {
	set := c.loader.Committed()
	if set.Len() == 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]scene.Sprite, 0, set.Len())
	for _, e := range set.Entries() {
		pos, ok := sphere.At(c.positions, e.Index)
		if !ok && !c.outOfRange[e.Index] {
			c.outOfRange[e.Index] = true
			c.log.WithField("index", e.Index).Debug("no position for sprite, using origin")
		}
		out = append(out, scene.Sprite{
			Index:    e.Index,
			Position: pos,
			Texture:  e.Texture,
			Scale:    c.opts.Scale,
			Opacity:  c.opts.Opacity,
		})
	}
	return out
}

// Frame projects the current sprites for a w×h target.
func (c *Cloud) Frame(cam scene.Camera, w, h int) []scene.DrawOp {
	return scene.Project(cam, c.Group(), c.Sprites(), w, h)
}

// State returns the state of the current batch.
func (c *Cloud) State() texture.State { return c.loader.State() }

// Loader returns the underlying loader.
func (c *Cloud) Loader() *texture.Loader { return c.loader }

// Close tears the cloud down and releases every texture.
func (c *Cloud) Close() error {
	return c.loader.Close()
}
