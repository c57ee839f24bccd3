package hal

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/abedrayen/Portfolio/iconcloud/scene"
)

// pixelSource is implemented by textures whose pixels live in memory.
type pixelSource interface {
	Image() image.Image
}

// Canvas is a software scene.Target backed by an RGBA image.
type Canvas struct {
	img *image.RGBA
}

var (
	_ scene.Target = (*Canvas)(nil)
	_ Blitter      = (*Canvas)(nil)
)

// NewCanvas returns a w×h canvas.
func NewCanvas(w, h int) *Canvas {
	return &Canvas{img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

// Image returns the backing image.
func (c *Canvas) Image() *image.RGBA { return c.img }

func (c *Canvas) Size() (w, h int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

func (c *Canvas) Clear(col color.RGBA) {
	xdraw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, xdraw.Src)
}

// DrawSprite scales the texture so its longer edge equals op.Size and centres
// it on op.X, op.Y. Textures without in-memory pixels are skipped.
func (c *Canvas) DrawSprite(op scene.DrawOp) {
	src, ok := op.Texture.(pixelSource)
	if !ok || op.Alpha <= 0 {
		return
	}
	img := src.Image()
	if img == nil {
		return
	}
	b := img.Bounds()
	edge := max(b.Dx(), b.Dy())
	if edge == 0 {
		return
	}

	s := op.Size / float64(edge)
	s2d := f64.Aff3{
		s, 0, op.X - float64(b.Dx())*s/2,
		0, s, op.Y - float64(b.Dy())*s/2,
	}
	var opts *xdraw.Options
	if op.Alpha < 1 {
		opts = &xdraw.Options{SrcMask: image.NewUniform(color.Alpha{A: uint8(op.Alpha * 0xff)})}
	}
	xdraw.ApproxBiLinear.Transform(c.img, s2d, img, b, xdraw.Over, opts)
}

// Blit composites img over the canvas at the origin.
func (c *Canvas) Blit(img *image.RGBA) {
	xdraw.Draw(c.img, c.img.Bounds(), img, img.Bounds().Min, xdraw.Over)
}
