package sphere

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCountAndRadius(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for _, n := range []int{0, 1, 3, 14, 500} {
		got := Generate(rng, n)
		require.Len(t, got, n)
		for i, p := range got {
			l := p.Len()
			assert.GreaterOrEqualf(t, l, MinRadius-1e-9, "n=%d i=%d", n, i)
			assert.LessOrEqualf(t, l, MaxRadius+1e-9, "n=%d i=%d", n, i)
		}
	}
}

func TestGenerateEmpty(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	got := Generate(rng, 0)
	require.NotNil(t, got)
	assert.Empty(t, got)
	assert.Empty(t, Generate(rng, -4))
}

func TestGenerateSeededIsReproducible(t *testing.T) {
	a := Generate(rand.New(rand.NewPCG(7, 7)), 20)
	b := Generate(rand.New(rand.NewPCG(7, 7)), 20)
	assert.Equal(t, a, b)
}

type fixedSource []float64

func (f *fixedSource) Float64() float64 {
	v := (*f)[0]
	*f = (*f)[1:]
	return v
}

func TestGenerateMatchesSphericalFormula(t *testing.T) {
	// r = 3 + 0.5*2 = 4, theta = 0.25*2π = π/2, u = 0.5*2-1 = 0 so phi = π/2.
	src := fixedSource{0.5, 0.25, 0.5}
	got := Generate(&src, 1)
	require.Len(t, got, 1)

	r, theta, phi := 4.0, math.Pi/2, math.Pi/2
	want := mgl64.Vec3{
		r * math.Sin(phi) * math.Cos(theta),
		r * math.Sin(phi) * math.Sin(theta),
		r * math.Cos(phi),
	}
	assert.True(t, got[0].ApproxEqualThreshold(want, 1e-9), "got %v want %v", got[0], want)
}

func TestGenerateNoPoleClustering(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 9))
	pts := Generate(rng, 20000)

	// Uniform over area: |z|/r is uniform on [0,1], so about a tenth falls in each band.
	var polar int
	for _, p := range pts {
		if math.Abs(p.Z())/p.Len() > 0.9 {
			polar++
		}
	}
	frac := float64(polar) / float64(len(pts))
	assert.InDelta(t, 0.1, frac, 0.02)
}

func TestGenerateRadiusSwapsBand(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 5))
	for _, p := range GenerateRadius(rng, 50, 2, 1) {
		assert.GreaterOrEqual(t, p.Len(), 1-1e-9)
		assert.LessOrEqual(t, p.Len(), 2+1e-9)
	}
}

func TestAtFallsBackToOrigin(t *testing.T) {
	pos := []Position{{1, 2, 3}}
	p, ok := At(pos, 0)
	assert.True(t, ok)
	assert.Equal(t, Position{1, 2, 3}, p)

	p, ok = At(pos, 5)
	assert.False(t, ok)
	assert.Equal(t, Position{}, p)

	_, ok = At(pos, -1)
	assert.False(t, ok)
}
