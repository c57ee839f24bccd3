package scene

import (
	"sort"

	"github.com/abedrayen/Portfolio/iconcloud/texture"
	"github.com/go-gl/mathgl/mgl64"
)

// Sprite is one billboard in group space.
type Sprite struct {
	Index    int
	Position mgl64.Vec3
	Texture  texture.Texture
	Scale    float64
	Opacity  float32
}

// DrawOp is a projected sprite in target pixels.
type DrawOp struct {
	Index   int
	Texture texture.Texture

	// X, Y is the sprite centre; Size is its edge length.
	X, Y  float64
	Size  float64
	Alpha float32

	// Depth is the distance along the view direction.
	Depth float64
}

// Project returns draw operations for sprites, farthest first.
// Sprites behind the near plane or beyond the far plane are dropped.
func Project(cam Camera, g Group, sprites []Sprite, w, h int) []DrawOp {
	if w <= 0 || h <= 0 || len(sprites) == 0 {
		return nil
	}
	proj := cam.Projection(float64(w) / float64(h))
	mvp := proj.Mul4(cam.View()).Mul4(g.Matrix())
	focal := proj.At(1, 1)
	halfW, halfH := float64(w)/2, float64(h)/2

	ops := make([]DrawOp, 0, len(sprites))
	for _, s := range sprites {
		clip := mvp.Mul4x1(s.Position.Vec4(1))
		cw := clip.W()
		if cw <= cam.Near {
			continue
		}
		ndc := clip.Vec3().Mul(1 / cw)
		if ndc.Z() < -1 || ndc.Z() > 1 {
			continue
		}
		scale := s.Scale
		if scale <= 0 {
			scale = 1
		}
		ops = append(ops, DrawOp{
			Index:   s.Index,
			Texture: s.Texture,
			X:       (ndc.X() + 1) * halfW,
			Y:       (1 - ndc.Y()) * halfH,
			Size:    scale * focal / cw * halfH,
			Alpha:   s.Opacity,
			Depth:   cw,
		})
	}

	sort.SliceStable(ops, func(i, j int) bool { return ops[i].Depth > ops[j].Depth })
	return ops
}
