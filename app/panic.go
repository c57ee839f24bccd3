package app

import (
	"fmt"
	"runtime/debug"
	"strings"

	log "github.com/sirupsen/logrus"
)

// PanicError is returned by Step when a frame panicked.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("app: panic: %v", e.Value)
}

// recoverPanic turns a panic in the deferring function into a *PanicError and
// logs the stack one line per entry.
func recoverPanic(l log.FieldLogger, err *error) {
	r := recover()
	if r == nil {
		return
	}
	pe := &PanicError{Value: r, Stack: debug.Stack()}
	l.WithField("panic", r).Error("frame panicked")
	for _, line := range strings.Split(string(pe.Stack), "\n") {
		if line == "" {
			continue
		}
		l.Error(line)
	}
	*err = pe
}
