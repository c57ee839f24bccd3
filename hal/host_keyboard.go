//go:build cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var keyMap = []struct {
	key  ebiten.Key
	code KeyCode
}{
	{ebiten.KeyEscape, KeyEscape},
	{ebiten.KeyR, KeyReload},
	{ebiten.KeySpace, KeySkip},
	{ebiten.KeyEnter, KeySkip},
}

func (k *hostKeyboard) poll() {
	for _, m := range keyMap {
		if inpututil.IsKeyJustPressed(m.key) {
			k.send(m.code, true)
		}
		if inpututil.IsKeyJustReleased(m.key) {
			k.send(m.code, false)
		}
	}
}
