package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Default decode sizes in pixels.
const (
	DefaultMaxSize = 256
	DefaultSVGSize = 128
)

// DecodeOptions controls rasterisation and normalisation.
type DecodeOptions struct {
	// MaxSize bounds the longer edge; larger images are downscaled.
	MaxSize int
	// SVGSize is the longer edge SVG documents are rasterised at.
	SVGSize int
}

func (o DecodeOptions) withDefaults() DecodeOptions {
	if o.MaxSize <= 0 {
		o.MaxSize = DefaultMaxSize
	}
	if o.SVGSize <= 0 {
		o.SVGSize = DefaultSVGSize
	}
	if o.SVGSize > o.MaxSize {
		o.SVGSize = o.MaxSize
	}
	return o
}

// Decode turns raw image bytes into a normalised RGBA image.
//
// Raster formats (png, jpeg, gif, webp, bmp) go through image.Decode, SVG
// documents are rasterised. Either way the result is redrawn onto a fresh
// RGBA canvas so every texture has the same pixel layout.
func Decode(data []byte, opts DecodeOptions) (*image.RGBA, error) {
	opts = opts.withDefaults()
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}

	if isSVG(data) {
		return rasterizeSVG(data, opts.SVGSize)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, ErrUnsupportedFormat
		}
		return nil, fmt.Errorf("texture: decode: %w", err)
	}
	return Normalize(img, opts.MaxSize)
}

// Normalize redraws img onto an RGBA canvas whose longer edge is at most maxSize.
func Normalize(img image.Image, maxSize int) (*image.RGBA, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, ErrEmptyImage
	}
	w, h := fit(b.Dx(), b.Dy(), maxSize)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
		return dst, nil
	}
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst, nil
}

func rasterizeSVG(data []byte, size int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("texture: parse svg: %w", err)
	}

	vw, vh := icon.ViewBox.W, icon.ViewBox.H
	if vw <= 0 || vh <= 0 {
		vw, vh = 1, 1
	}
	w, h := size, size
	if vw > vh {
		h = int(float64(size) * vh / vw)
	} else if vh > vw {
		w = int(float64(size) * vw / vh)
	}
	if w <= 0 || h <= 0 {
		return nil, ErrEmptyImage
	}

	icon.SetTarget(0, 0, float64(w), float64(h))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, dst, dst.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)
	return dst, nil
}

// isSVG reports whether data is markup with an svg element anywhere in it.
func isSVG(data []byte) bool {
	head := bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	head = bytes.TrimLeft(head, " \t\r\n")
	if !bytes.HasPrefix(head, []byte("<")) {
		return false
	}
	return bytes.Contains(bytes.ToLower(head), []byte("<svg"))
}

func fit(w, h, maxSize int) (int, int) {
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return w, h
	}
	if w >= h {
		nh := h * maxSize / w
		if nh < 1 {
			nh = 1
		}
		return maxSize, nh
	}
	nw := w * maxSize / h
	if nw < 1 {
		nw = 1
	}
	return nw, maxSize
}
