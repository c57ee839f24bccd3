package scene

import "image/color"

// Target receives projected sprites.
//
// Implementations should clip out-of-bounds sprites.
type Target interface {
	Size() (w, h int)
	Clear(c color.RGBA)
	DrawSprite(op DrawOp)
}

// Render clears t and draws ops in order.
func Render(t Target, bg color.RGBA, ops []DrawOp) {
	if t == nil {
		return
	}
	t.Clear(bg)
	for _, op := range ops {
		if op.Texture == nil || op.Size <= 0 {
			continue
		}
		t.DrawSprite(op)
	}
}
