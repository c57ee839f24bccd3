// Package sphere places cloud items on (near) the surface of a sphere.
//
// Directions are uniform over the sphere's surface area: the polar angle is
// drawn as acos(u) with u uniform on [-1, 1], which avoids clustering at the
// poles. Radii are uniform in a fixed band so the cloud has some depth.
package sphere

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Default radius band.
const (
	MinRadius = 3.0
	MaxRadius = 5.0
)

// Source is the random source used for layout. *rand.Rand from math/rand and
// math/rand/v2 both satisfy it.
type Source interface {
	Float64() float64
}

// Position is a point in cloud space.
type Position = mgl64.Vec3

// Generate returns count positions with radii in [MinRadius, MaxRadius].
func Generate(rng Source, count int) []Position {
	return GenerateRadius(rng, count, MinRadius, MaxRadius)
}

// GenerateRadius returns count positions with radii uniform in [minR, maxR].
// A non-positive count yields an empty slice.
func GenerateRadius(rng Source, count int, minR, maxR float64) []Position {
	if count <= 0 {
		return []Position{}
	}
	if maxR < minR {
		minR, maxR = maxR, minR
	}

	out := make([]Position, 0, count)
	for i := 0; i < count; i++ {
		r := minR + rng.Float64()*(maxR-minR)
		theta := rng.Float64() * 2 * math.Pi
		phi := math.Acos(rng.Float64()*2 - 1)

		// mathgl names the polar angle theta and the azimuth phi.
		out = append(out, mgl64.SphericalToCartesian(r, phi, theta))
	}
	return out
}

// At returns positions[index], or the origin when index is out of range.
func At(positions []Position, index int) (Position, bool) {
	if index < 0 || index >= len(positions) {
		return Position{}, false
	}
	return positions[index], true
}
