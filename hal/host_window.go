//go:build cgo

package hal

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	log "github.com/sirupsen/logrus"

	"github.com/abedrayen/Portfolio/internal/buildinfo"
)

// WindowConfig controls the desktop window.
type WindowConfig struct {
	Title  string
	Width  int
	Height int
	TPS    int

	Log log.FieldLogger
}

// RunWindow opens a desktop window, steps the app every tick and draws it
// every frame. It blocks until the window closes or Step returns ErrQuit.
func RunWindow(newApp NewAppFunc, cfg WindowConfig) (err error) {
	if cfg.TPS <= 0 {
		cfg.TPS = 60
	}
	h := newHost(cfg.Log, newHostClock(), ebitenUploader{})
	app, err := newApp(h)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := app.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	g := &hostGame{h: h, app: app, width: cfg.Width, height: cfg.Height}
	ebiten.SetWindowTitle(cfg.Title + " (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)

	err = ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

type hostGame struct {
	h             *hostHAL
	app           App
	width, height int
	overlay       *ebiten.Image
}

func (g *hostGame) Update() error {
	g.h.kbd.poll()
	g.h.clock.step(1)
	if err := g.app.Step(); err != nil {
		if errors.Is(err, ErrQuit) {
			return ebiten.Termination
		}
		return err
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	g.app.Draw(ebitenTarget{screen: screen, overlay: &g.overlay})
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
