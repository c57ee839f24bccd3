// Package hal is the only contact point between the portfolio and the host:
// logging, time, keyboard input, texture storage and the frame loop.
package hal

import (
	"errors"
	"image"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/abedrayen/Portfolio/iconcloud/scene"
	"github.com/abedrayen/Portfolio/iconcloud/texture"
)

// ErrQuit is returned by App.Step to end the run loop cleanly.
var ErrQuit = errors.New("hal: quit")

// Clock reports monotonic time since the app was mounted.
type Clock interface {
	Elapsed() time.Duration
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyEscape
	KeyReload
	KeySkip
)

func (k KeyCode) String() string {
	switch k {
	case KeyEscape:
		return "escape"
	case KeyReload:
		return "reload"
	case KeySkip:
		return "skip"
	default:
		return "unknown"
	}
}

// KeyEvent is a keyboard event.
type KeyEvent struct {
	Code  KeyCode
	Press bool
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// Blitter is implemented by targets that can composite a full-frame image.
type Blitter interface {
	Blit(img *image.RGBA)
}

// HAL provides the host services an App may use.
type HAL interface {
	Logger() log.FieldLogger
	Clock() Clock
	Keyboard() Keyboard
	Textures() texture.Uploader
}

// App is driven by a runner: Step once per tick, Draw once per frame.
type App interface {
	Step() error
	Draw(t scene.Target)
	Close() error
}

// NewAppFunc builds the app once the host is ready.
type NewAppFunc func(h HAL) (App, error)
