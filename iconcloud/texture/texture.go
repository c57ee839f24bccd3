// Package texture turns image locators into renderable textures.
//
// A Loader runs one batch per locator list. Every locator is fetched, decoded
// and uploaded independently; the batch publishes its successful textures as a
// single Set once every locator has settled. Starting a new batch supersedes
// the previous one: its textures are disposed and any of its results that
// arrive later are disposed on arrival instead of being merged.
package texture

import (
	"errors"
	"image"
	"sync/atomic"
)

var (
	ErrUnsupportedFormat = errors.New("texture: unsupported image format")
	ErrEmptyImage        = errors.New("texture: empty image")
	ErrClosed            = errors.New("texture: loader closed")
)

// ColorSpace tags how texture pixels are to be interpreted.
type ColorSpace uint8

const (
	ColorSpaceUnknown ColorSpace = iota
	// ColorSpaceSRGB is gamma-corrected sRGB.
	ColorSpaceSRGB
)

func (c ColorSpace) String() string {
	switch c {
	case ColorSpaceSRGB:
		return "srgb"
	default:
		return "unknown"
	}
}

// Texture is an owning handle over decoded pixels ready for rendering.
//
// Dispose releases the underlying storage. It must be called exactly once by
// the owner; the Loader is the owner of every texture it creates.
type Texture interface {
	Size() (w, h int)
	ColorSpace() ColorSpace
	Dispose()
}

// Uploader creates textures from normalised RGBA images.
type Uploader interface {
	Upload(img *image.RGBA, cs ColorSpace) (Texture, error)
}

// UploaderFunc adapts a function to Uploader.
type UploaderFunc func(img *image.RGBA, cs ColorSpace) (Texture, error)

func (f UploaderFunc) Upload(img *image.RGBA, cs ColorSpace) (Texture, error) { return f(img, cs) }

// ImageTexture keeps pixels in process memory. It backs headless rendering.
type ImageTexture struct {
	img      *image.RGBA
	cs       ColorSpace
	disposed atomic.Bool
}

func (t *ImageTexture) Size() (w, h int) {
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

func (t *ImageTexture) ColorSpace() ColorSpace { return t.cs }

// Image returns the pixels, or nil after Dispose.
func (t *ImageTexture) Image() image.Image {
	if t.disposed.Load() {
		return nil
	}
	return t.img
}

func (t *ImageTexture) Dispose() { t.disposed.Store(true) }

// Disposed reports whether Dispose has been called.
func (t *ImageTexture) Disposed() bool { return t.disposed.Load() }

// ImageUploader uploads into ImageTexture.
type ImageUploader struct{}

func (ImageUploader) Upload(img *image.RGBA, cs ColorSpace) (Texture, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}
	return &ImageTexture{img: img, cs: cs}, nil
}

// Entry pairs a texture with the index of the locator it came from.
type Entry struct {
	Index   int
	Texture Texture
}

// Set is a published, immutable batch result.
type Set struct {
	gen     uint64
	total   int
	entries []Entry
}

var emptySet = &Set{}

// Generation returns the batch generation that produced the set.
func (s *Set) Generation() uint64 {
	if s == nil {
		return 0
	}
	return s.gen
}

// Len returns the number of textures in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Total returns the number of locators in the batch, including failures.
func (s *Set) Total() int {
	if s == nil {
		return 0
	}
	return s.total
}

// Entries returns the entries in settlement order. The slice must not be modified.
func (s *Set) Entries() []Entry {
	if s == nil {
		return nil
	}
	return s.entries
}

// Lookup returns the texture for a locator index.
func (s *Set) Lookup(index int) (Texture, bool) {
	if s == nil {
		return nil, false
	}
	for _, e := range s.entries {
		if e.Index == index {
			return e.Texture, true
		}
	}
	return nil, false
}

// State is the lifecycle of one batch.
type State uint8

const (
	StateEmpty State = iota
	StateLoading
	StateCommitted
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateLoading:
		return "loading"
	case StateCommitted:
		return "committed"
	default:
		return "unknown"
	}
}
