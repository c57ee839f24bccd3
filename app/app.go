// Package app wires the portfolio scene: splash intro, icon cloud and the
// keyboard controls, on top of whatever host the hal package provides.
package app

import (
	"fmt"
	"image"
	"image/color"
	"math/rand/v2"
	"net/http"
	"slices"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/abedrayen/Portfolio/hal"
	"github.com/abedrayen/Portfolio/iconcloud"
	"github.com/abedrayen/Portfolio/iconcloud/scene"
	"github.com/abedrayen/Portfolio/iconcloud/texture"
	"github.com/abedrayen/Portfolio/internal/buildinfo"
	"github.com/abedrayen/Portfolio/internal/config"
	"github.com/abedrayen/Portfolio/splash"
	"github.com/go-gl/mathgl/mgl64"
)

// Options adjusts how New builds the app. The zero value uses the network
// and a random layout seed from the config.
type Options struct {
	// Fetcher replaces the http/file fetcher.
	Fetcher texture.Fetcher
	// ReloadEvery supersedes the texture batch every N steps; 0 disables.
	ReloadEvery uint64
}

// App is the portfolio scene. It implements hal.App.
type App struct {
	h   hal.HAL
	log log.FieldLogger

	cloud  *iconcloud.Cloud
	driver *iconcloud.Driver
	cam    scene.Camera
	bg     color.RGBA
	rng    *rand.Rand

	intro     *splash.Sequencer
	introImg  *image.RGBA
	introLast splash.State

	reloadEvery uint64
	steps       uint64
	reloads     uint64
}

var _ hal.App = (*App)(nil)

// New builds the app and starts loading the configured images.
func New(h hal.HAL, cfg config.Config, opts Options) (*App, error) {
	if err := config.Validate(&cfg); err != nil {
		return nil, err
	}
	l := h.Logger().WithField("component", "app")

	bg, err := parseHexColor(cfg.Window.Background)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = newFetcher(cfg.Loader)
	}
	loader, err := texture.NewLoader(texture.LoaderConfig{
		Fetcher:  fetcher,
		Uploader: h.Textures(),
		Decode: texture.DecodeOptions{
			MaxSize: cfg.Loader.MaxTextureSize,
			SVGSize: cfg.Loader.SVGSize,
		},
		MaxConcurrent: cfg.Loader.MaxConcurrent,
		Log:           h.Logger(),
	})
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	seed := cfg.Cloud.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	cloud := iconcloud.New(loader, iconcloud.Options{
		RadiusMin:     cfg.Cloud.RadiusMin,
		RadiusMax:     cfg.Cloud.RadiusMax,
		RotationRateX: cfg.Cloud.RotationX,
		RotationRateY: cfg.Cloud.RotationY,
		Opacity:       float32(cfg.Cloud.Opacity),
		Scale:         cfg.Cloud.Scale,
		Rand:          rng,
		Log:           h.Logger(),
	})
	if err := cloud.SetImages(cfg.Cloud.Images); err != nil {
		_ = cloud.Close()
		return nil, fmt.Errorf("app: %w", err)
	}

	cam := scene.DefaultCamera()
	cam.Position = mgl64.Vec3{0, 0, cfg.Camera.Distance}
	cam.FOVYRad = mgl64.DegToRad(cfg.Camera.FOVDegrees)
	cam.Near, cam.Far = cfg.Camera.Near, cfg.Camera.Far

	a := &App{
		h:           h,
		log:         l,
		cloud:       cloud,
		driver:      iconcloud.NewDriver(cloud, h.Clock()),
		cam:         cam,
		bg:          bg,
		rng:         rng,
		reloadEvery: opts.ReloadEvery,
	}
	if cfg.Splash.Enabled {
		sc := splash.DefaultConfig()
		sc.Duration = cfg.Splash.Duration
		if len(cfg.Splash.Texts) > 0 {
			sc.Texts = slices.Clone(cfg.Splash.Texts)
		}
		sc.Subtitle = cfg.Splash.Subtitle
		sc.Monogram = cfg.Splash.Monogram
		a.intro = splash.New(sc)
	}

	l.WithFields(log.Fields{
		"images": len(cfg.Cloud.Images),
		"seed":   seed,
		"splash": cfg.Splash.Enabled,
	}).Info("app started")
	return a, nil
}

func newFetcher(cfg config.LoaderConfig) texture.Fetcher {
	ua := cfg.UserAgent
	if ua == "" {
		ua = buildinfo.UserAgent()
	}
	return &texture.SchemeFetcher{
		HTTP: &texture.HTTPFetcher{
			Client:    &http.Client{Timeout: cfg.Timeout},
			UserAgent: ua,
			MaxBytes:  cfg.MaxBytes,
		},
		File: &texture.FileFetcher{Root: cfg.Root, MaxBytes: cfg.MaxBytes},
	}
}

// Step handles input, advances the intro and rotates the cloud.
func (a *App) Step() (err error) {
	defer recoverPanic(a.log, &err)

	if err := a.handleKeys(); err != nil {
		return err
	}
	if a.intro != nil && !a.intro.Finished() {
		a.introLast = a.intro.Advance(a.h.Clock().Elapsed())
		if a.introLast.Done {
			a.log.Debug("intro finished")
		}
	}
	a.driver.Step()

	a.steps++
	if a.reloadEvery > 0 && a.steps%a.reloadEvery == 0 {
		return a.Reload()
	}
	return nil
}

func (a *App) handleKeys() error {
	events := a.h.Keyboard().Events()
	for {
		select {
		case ev := <-events:
			if !ev.Press {
				continue
			}
			switch ev.Code {
			case hal.KeyEscape:
				return hal.ErrQuit
			case hal.KeyReload:
				if err := a.Reload(); err != nil {
					return err
				}
			case hal.KeySkip:
				if a.intro != nil {
					a.intro.Skip()
				}
			}
		default:
			return nil
		}
	}
}

// Reload shuffles the image order and starts a new batch, superseding the
// current one. The layout is kept because the image count is unchanged. With
// fewer than two images the list cannot change and the batch is kept.
func (a *App) Reload() error {
	before := a.cloud.Images()
	images := slices.Clone(before)
	a.rng.Shuffle(len(images), func(i, j int) { images[i], images[j] = images[j], images[i] })
	if len(images) > 1 && slices.Equal(images, before) {
		// An unchanged list would not start a new batch.
		images = append(images[1:], images[0])
	}
	a.reloads++
	a.log.WithField("reload", a.reloads).Info("reloading textures")
	return a.cloud.SetImages(images)
}

// Draw renders the cloud, then the intro over it while it runs.
func (a *App) Draw(t scene.Target) {
	w, h := t.Size()
	scene.Render(t, a.bg, a.cloud.Frame(a.cam, w, h))

	if a.intro == nil || a.intro.Finished() {
		return
	}
	b, ok := t.(hal.Blitter)
	if !ok {
		return
	}
	if a.introImg == nil || a.introImg.Bounds().Dx() != w || a.introImg.Bounds().Dy() != h {
		a.introImg = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	splash.Render(a.introImg, a.introLast)
	b.Blit(a.introImg)
}

// Cloud returns the icon cloud.
func (a *App) Cloud() *iconcloud.Cloud { return a.cloud }

// IntroDone reports whether the intro is over or disabled.
func (a *App) IntroDone() bool { return a.intro == nil || a.intro.Finished() }

// Close releases every texture and waits for in-flight fetches.
func (a *App) Close() error {
	err := a.cloud.Close()
	st := a.cloud.Loader().Stats()
	a.log.WithFields(log.Fields{
		"steps":    a.steps,
		"batches":  st.Batches,
		"settled":  st.Settled,
		"failed":   st.Failed,
		"stale":    st.Stale,
		"disposed": st.Disposed,
	}).Info("app closed")
	return err
}

func parseHexColor(s string) (color.RGBA, error) {
	if s == "" {
		return color.RGBA{A: 0xff}, nil
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "#"), 16, 32)
	if err != nil || len(s) != 7 {
		return color.RGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
