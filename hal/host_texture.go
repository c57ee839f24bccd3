//go:build cgo

package hal

import (
	"image"
	"image/color"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/abedrayen/Portfolio/iconcloud/scene"
	"github.com/abedrayen/Portfolio/iconcloud/texture"
)

// ebitenTexture is a GPU-backed texture.
type ebitenTexture struct {
	img      *ebiten.Image
	w, h     int
	cs       texture.ColorSpace
	disposed atomic.Bool
}

func (t *ebitenTexture) Size() (w, h int)               { return t.w, t.h }
func (t *ebitenTexture) ColorSpace() texture.ColorSpace { return t.cs }

func (t *ebitenTexture) Dispose() {
	if t.disposed.Swap(true) {
		return
	}
	t.img.Deallocate()
}

type ebitenUploader struct{}

func (ebitenUploader) Upload(img *image.RGBA, cs texture.ColorSpace) (texture.Texture, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, texture.ErrEmptyImage
	}
	b := img.Bounds()
	return &ebitenTexture{
		img: ebiten.NewImageFromImage(img),
		w:   b.Dx(),
		h:   b.Dy(),
		cs:  cs,
	}, nil
}

// ebitenTarget draws onto the screen image of one frame.
type ebitenTarget struct {
	screen  *ebiten.Image
	overlay **ebiten.Image
}

func (t ebitenTarget) Size() (w, h int) {
	b := t.screen.Bounds()
	return b.Dx(), b.Dy()
}

func (t ebitenTarget) Clear(c color.RGBA) { t.screen.Fill(c) }

func (t ebitenTarget) DrawSprite(op scene.DrawOp) {
	et, ok := op.Texture.(*ebitenTexture)
	if !ok || et.disposed.Load() || op.Alpha <= 0 {
		return
	}
	edge := max(et.w, et.h)
	s := op.Size / float64(edge)

	var o ebiten.DrawImageOptions
	o.GeoM.Scale(s, s)
	o.GeoM.Translate(op.X-float64(et.w)*s/2, op.Y-float64(et.h)*s/2)
	o.ColorScale.ScaleAlpha(op.Alpha)
	o.Filter = ebiten.FilterLinear
	t.screen.DrawImage(et.img, &o)
}

// Blit uploads img into a cached overlay image and draws it over the screen.
func (t ebitenTarget) Blit(img *image.RGBA) {
	b := img.Bounds()
	ov := *t.overlay
	if ov == nil || ov.Bounds().Dx() != b.Dx() || ov.Bounds().Dy() != b.Dy() {
		if ov != nil {
			ov.Deallocate()
		}
		ov = ebiten.NewImage(b.Dx(), b.Dy())
		*t.overlay = ov
	}
	ov.WritePixels(img.Pix)
	t.screen.DrawImage(ov, nil)
}
