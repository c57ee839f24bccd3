package hal

import (
	log "github.com/sirupsen/logrus"

	"github.com/abedrayen/Portfolio/iconcloud/texture"
)

type hostHAL struct {
	logger log.FieldLogger
	clock  *hostClock
	kbd    *hostKeyboard
	tex    texture.Uploader
}

// New returns a host HAL with a wall clock and in-memory textures.
func New(l log.FieldLogger) HAL {
	return newHost(l, newHostClock(), texture.ImageUploader{})
}

func newHost(l log.FieldLogger, clock *hostClock, up texture.Uploader) *hostHAL {
	if l == nil {
		l = log.StandardLogger()
	}
	return &hostHAL{
		logger: l,
		clock:  clock,
		kbd:    newHostKeyboard(),
		tex:    up,
	}
}

func (h *hostHAL) Logger() log.FieldLogger    { return h.logger }
func (h *hostHAL) Clock() Clock               { return h.clock }
func (h *hostHAL) Keyboard() Keyboard         { return h.kbd }
func (h *hostHAL) Textures() texture.Uploader { return h.tex }
