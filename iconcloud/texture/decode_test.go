package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const circleSVG = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 128 64" width="128" height="64">
  <rect x="0" y="0" width="128" height="64" fill="#ff0000"/>
</svg>`

func TestDecodePNGNormalisesToRGBA(t *testing.T) {
	img, err := Decode(pngBytes(t, 8, 4, color.RGBA{R: 10, G: 20, B: 30, A: 255}), DecodeOptions{})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 4), img.Bounds())
	assert.Equal(t, color.RGBA{R: 10, G: 20, B: 30, A: 255}, img.RGBAAt(3, 2))
}

func TestDecodeJPEGGrayBecomesRGBA(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 6, 6))
	for i := range src.Pix {
		src.Pix[i] = 200
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, src, &jpeg.Options{Quality: 100}))

	img, err := Decode(buf.Bytes(), DecodeOptions{})
	require.NoError(t, err)
	c := img.RGBAAt(2, 2)
	assert.InDelta(t, 200, int(c.R), 3)
	assert.Equal(t, c.R, c.G)
	assert.Equal(t, uint8(255), c.A)
}

func TestDecodeDownscalesLargeImages(t *testing.T) {
	img, err := Decode(pngBytes(t, 400, 100, color.White), DecodeOptions{MaxSize: 64})
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 16, img.Bounds().Dy())
}

func TestDecodeSVG(t *testing.T) {
	img, err := Decode([]byte(circleSVG), DecodeOptions{SVGSize: 32})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 32, 16), img.Bounds())

	c := img.RGBAAt(16, 8)
	assert.Equal(t, uint8(255), c.R)
	assert.Equal(t, uint8(0), c.G)
	assert.Equal(t, uint8(255), c.A)
}

func TestDecodeSVGClampedToMaxSize(t *testing.T) {
	img, err := Decode([]byte(circleSVG), DecodeOptions{SVGSize: 512, MaxSize: 64})
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode([]byte("definitely not pixels"), DecodeOptions{})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Decode(nil, DecodeOptions{})
	assert.ErrorIs(t, err, ErrEmptyImage)
}

func TestDecodeSVGWithLongPrologue(t *testing.T) {
	doc := "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n" +
		"<!-- " + strings.Repeat("Generator: vector exporter, SVG Export Plug-In. ", 60) + "-->\n" +
		"<!DOCTYPE svg PUBLIC \"-//W3C//DTD SVG 1.1//EN\" \"http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd\">\n" +
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10"><rect width="10" height="10" fill="#ff0000"/></svg>`
	require.Greater(t, len(doc), 1024)

	img, err := Decode([]byte(doc), DecodeOptions{SVGSize: 16})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 16, 16), img.Bounds())
}

func TestNormalizeEmpty(t *testing.T) {
	_, err := Normalize(image.NewRGBA(image.Rectangle{}), 10)
	assert.ErrorIs(t, err, ErrEmptyImage)
}

func TestIsSVG(t *testing.T) {
	assert.True(t, isSVG([]byte("  <svg></svg>")))
	assert.True(t, isSVG([]byte("\xef\xbb\xbf<?xml version=\"1.0\"?><svg/>")))
	assert.False(t, isSVG([]byte("\x89PNG\r\n")))
	assert.False(t, isSVG([]byte("<html></html>")))

	prologue := "<?xml version=\"1.0\"?>\n<!-- " + strings.Repeat("Generator: exporter. ", 200) + "-->\n"
	assert.True(t, isSVG([]byte(prologue+"<svg/>")))
}

func TestFit(t *testing.T) {
	cases := []struct {
		w, h, max    int
		wantW, wantH int
	}{
		{10, 10, 20, 10, 10},
		{40, 20, 20, 20, 10},
		{20, 40, 20, 10, 20},
		{1000, 1, 10, 10, 1},
		{5, 5, 0, 5, 5},
	}
	for _, c := range cases {
		w, h := fit(c.w, c.h, c.max)
		assert.Equal(t, c.wantW, w, "%+v", c)
		assert.Equal(t, c.wantH, h, "%+v", c)
	}
}

func TestImageUploader(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	tex, err := ImageUploader{}.Upload(img, ColorSpaceSRGB)
	require.NoError(t, err)

	w, h := tex.Size()
	assert.Equal(t, 3, w)
	assert.Equal(t, 2, h)
	assert.Equal(t, ColorSpaceSRGB, tex.ColorSpace())

	it := tex.(*ImageTexture)
	assert.NotNil(t, it.Image())
	it.Dispose()
	assert.True(t, it.Disposed())
	assert.Nil(t, it.Image())

	_, err = ImageUploader{}.Upload(image.NewRGBA(image.Rectangle{}), ColorSpaceSRGB)
	assert.ErrorIs(t, err, ErrEmptyImage)
}
