//go:build !cgo

package hal

import (
	"errors"

	log "github.com/sirupsen/logrus"
)

// WindowConfig controls the desktop window.
type WindowConfig struct {
	Title  string
	Width  int
	Height int
	TPS    int

	Log log.FieldLogger
}

func RunWindow(_ NewAppFunc, _ WindowConfig) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}
