package splash

import (
	"image"
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"
	"tinygo.org/x/tinyfont/freesans"
)

var (
	colorBG       = color.RGBA{R: 0x0a, G: 0x0a, B: 0x14, A: 0xff}
	colorFG       = color.RGBA{R: 0xf5, G: 0xf5, B: 0xf7, A: 0xff}
	colorDim      = color.RGBA{R: 0x9a, G: 0x9a, B: 0xb0, A: 0xff}
	colorAccent   = color.RGBA{R: 0x63, G: 0x66, B: 0xf1, A: 0xff}
	colorTrack    = color.RGBA{R: 0x22, G: 0x22, B: 0x33, A: 0xff}
	colorLogoText = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// imageDisplay lets tinyfont draw into an RGBA image.
type imageDisplay struct {
	img *image.RGBA
}

var _ drivers.Displayer = (*imageDisplay)(nil)

func (d *imageDisplay) Size() (x, y int16) {
	b := d.img.Bounds()
	return int16(b.Dx()), int16(b.Dy())
}

func (d *imageDisplay) SetPixel(x, y int16, c color.RGBA) {
	p := image.Pt(int(x), int(y)).Add(d.img.Bounds().Min)
	if !p.In(d.img.Bounds()) {
		return
	}
	d.img.SetRGBA(p.X, p.Y, c)
}

func (d *imageDisplay) Display() error { return nil }

func (d *imageDisplay) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	r := image.Rect(int(x), int(y), int(x)+int(width), int(y)+int(height)).
		Add(d.img.Bounds().Min).
		Intersect(d.img.Bounds())
	for py := r.Min.Y; py < r.Max.Y; py++ {
		for px := r.Min.X; px < r.Max.X; px++ {
			d.img.SetRGBA(px, py, c)
		}
	}
	return nil
}

func (d *imageDisplay) fillCircle(cx, cy, radius int, c color.RGBA) {
	r2 := radius * radius
	for y := -radius; y <= radius; y++ {
		for x := -radius; x <= radius; x++ {
			if x*x+y*y <= r2 {
				d.SetPixel(int16(cx+x), int16(cy+y), c)
			}
		}
	}
}

// Render draws st onto dst: monogram badge, rotating title, subtitle and
// progress bar, centred.
func Render(dst *image.RGBA, st State) {
	if dst == nil {
		return
	}
	d := &imageDisplay{img: dst}
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	if w <= 0 || h <= 0 {
		return
	}
	_ = d.FillRectangle(0, 0, int16(w), int16(h), colorBG)

	cx := w / 2
	logoR := h / 12
	if logoR < 8 {
		logoR = 8
	}
	logoY := h/2 - h/5
	d.fillCircle(cx, logoY, logoR, colorAccent)
	if st.Monogram != "" {
		writeCentered(d, &freesans.Bold12pt7b, cx, logoY+8, st.Monogram, colorLogoText)
	}

	titleY := h / 2
	writeCentered(d, &freesans.Bold18pt7b, cx, titleY, st.Text, colorFG)
	if st.Subtitle != "" {
		writeCentered(d, &freemono.Regular9pt7b, cx, titleY+28, st.Subtitle, colorDim)
	}

	barW := w * 3 / 5
	barX := cx - barW/2
	barY := titleY + 48
	_ = d.FillRectangle(int16(barX), int16(barY), int16(barW), 4, colorTrack)
	_ = d.FillRectangle(int16(barX), int16(barY), int16(barW*clampPercent(st.Progress)/100), 4, colorAccent)
}

func writeCentered(d *imageDisplay, f tinyfont.Fonter, cx, baseline int, s string, c color.RGBA) {
	_, outbox := tinyfont.LineWidth(f, s)
	x := cx - int(outbox)/2
	tinyfont.WriteLine(d, f, int16(x), int16(baseline), s, c)
}

func clampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
