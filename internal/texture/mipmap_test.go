package texture

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pbrtex-renderer/internal/geometry"
	"pbrtex-renderer/internal/spectrum"
)

func constantScalars(w, h int, v float64) []Scalar {
	texels := make([]Scalar, w*h)
	for i := range texels {
		texels[i] = Scalar(v)
	}
	return texels
}

// rampScalars varies smoothly along x so filtered values are predictable.
func rampScalars(w, h int) []Scalar {
	texels := make([]Scalar, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			texels[y*w+x] = Scalar(float64(x) / float64(w-1))
		}
	}
	return texels
}

func checkerScalars(w, h int) []Scalar {
	texels := make([]Scalar, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				texels[y*w+x] = 1
			}
		}
	}
	return texels
}

// center returns the st coordinate of texel (x, y) on a w×h level.
func center(x, y, w, h int) geometry.Point2 {
	return geometry.Point2{
		X: (float64(x) + 0.5) / float64(w),
		Y: (float64(y) + 0.5) / float64(h),
	}
}

func TestLevelCount(t *testing.T) {
	tests := []struct {
		w, h   int
		levels int
	}{
		{1, 1, 1},
		{2, 2, 2},
		{4, 4, 3},
		{16, 8, 5},
		{8, 16, 5},
		{256, 256, 9},
	}
	for _, tc := range tests {
		m := NewMIPMap(constantScalars(tc.w, tc.h, 1), tc.w, tc.h, FilterTrilinear, WrapRepeat, 8)
		assert.Equal(t, tc.levels, m.Levels(), "levels for %dx%d", tc.w, tc.h)
	}
}

func TestCoarsestLevelIsConstantMean(t *testing.T) {
	m := NewMIPMap(constantScalars(8, 8, 0.7), 8, 8, FilterTrilinear, WrapRepeat, 8)
	w, h := m.LevelSize(m.Levels() - 1)
	require.Equal(t, 1, w)
	require.Equal(t, 1, h)
	assert.InDelta(t, 0.7, float64(m.Texel(m.Levels()-1, 0, 0)), 1e-9)
}

func TestLookupExactTexelAtIntegerAlignment(t *testing.T) {
	const w, h = 4, 4
	texels := make([]Scalar, w*h)
	for i := range texels {
		texels[i] = Scalar(float64(i) / 16)
	}
	m := NewMIPMap(texels, w, h, FilterTrilinear, WrapClamp, 8)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			got := m.Lookup(center(x, y, w, h), geometry.Vector2{}, geometry.Vector2{})
			assert.InDelta(t, float64(texels[y*w+x]), float64(got), 1e-12, "texel (%d,%d)", x, y)
		}
	}
}

func TestWrapModes(t *testing.T) {
	const w, h = 4, 4
	texels := rampScalars(w, h)

	repeat := NewMIPMap(texels, w, h, FilterTrilinear, WrapRepeat, 8)
	clamp := NewMIPMap(texels, w, h, FilterTrilinear, WrapClamp, 8)
	black := NewMIPMap(texels, w, h, FilterTrilinear, WrapBlack, 8)

	assert.Equal(t, repeat.Texel(0, w-1, 0), repeat.Texel(0, -1, 0), "repeat: x=-1 is x=width-1")
	assert.Equal(t, clamp.Texel(0, 0, 0), clamp.Texel(0, -1, 0), "clamp: x=-1 is x=0")
	assert.Equal(t, Scalar(0), black.Texel(0, -1, 0), "black: out of range is zero")
	assert.Equal(t, Scalar(0), black.Texel(0, w, 0))
	assert.Equal(t, Scalar(0), black.Texel(0, 0, -1))
}

func TestTrilinearContinuityAcrossLevels(t *testing.T) {
	const n = 16
	m := NewMIPMap(rampScalars(n, n), n, n, FilterTrilinear, WrapClamp, 8)
	st := geometry.Point2{X: 0.5, Y: 0.5}

	// Sweep the footprint width across every level boundary in small
	// multiplicative steps; the filtered value must change smoothly.
	prev := math.NaN()
	for width := 1.0 / (2 * n); width < 1.0; width *= 1.02 {
		got := float64(m.Lookup(st, geometry.Vector2{X: width}, geometry.Vector2{Y: width}))
		if !math.IsNaN(prev) {
			assert.InDelta(t, prev, got, 0.02, "jump at width %g", width)
		}
		prev = got
	}
}

func TestEWAIsotropicMatchesTrilinear(t *testing.T) {
	const n = 32
	texels := rampScalars(n, n)
	ewa := NewMIPMap(texels, n, n, FilterEWA, WrapClamp, 8)
	tri := NewMIPMap(texels, n, n, FilterTrilinear, WrapClamp, 8)

	st := geometry.Point2{X: 0.5, Y: 0.5}
	for _, d := range []float64{1.0 / n, 2.0 / n, 4.0 / n} {
		dx := geometry.Vector2{X: d}
		dy := geometry.Vector2{Y: d}
		assert.InDelta(t,
			float64(tri.Lookup(st, dx, dy)),
			float64(ewa.Lookup(st, dx, dy)),
			0.05, "footprint %g", d)
	}
}

func TestEWADegenerateFootprintFallsBack(t *testing.T) {
	const n = 8
	m := NewMIPMap(rampScalars(n, n), n, n, FilterEWA, WrapClamp, 8)

	// Zero derivatives must still return the exact base texel.
	got := m.Lookup(center(3, 2, n, n), geometry.Vector2{}, geometry.Vector2{})
	assert.InDelta(t, 3.0/7.0, float64(got), 1e-12)
}

func TestCheckerboardCoarsestLookupIsMean(t *testing.T) {
	m := NewMIPMap(checkerScalars(4, 4), 4, 4, FilterTrilinear, WrapRepeat, 8)

	// A derivative of a full texel forces the coarsest level.
	got := m.Lookup(
		geometry.Point2{X: 0.5, Y: 0.5},
		geometry.Vector2{X: 1},
		geometry.Vector2{Y: 1},
	)
	assert.InDelta(t, 0.5, float64(got), 1e-9)
}

func TestNonPowerOfTwoBaseIsResampled(t *testing.T) {
	m := NewMIPMap(constantScalars(5, 3, 0.4), 5, 3, FilterTrilinear, WrapClamp, 8)

	assert.Equal(t, 8, m.Width())
	assert.Equal(t, 4, m.Height())
	assert.Equal(t, 4, m.Levels())
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			assert.InDelta(t, 0.4, float64(m.Texel(0, x, y)), 1e-6)
		}
	}
}

func TestHugeFootprintReturnsCoarsestTexel(t *testing.T) {
	m := NewMIPMap(rampScalars(8, 8), 8, 8, FilterTrilinear, WrapClamp, 8)
	want := m.Texel(m.Levels()-1, 0, 0)
	got := m.Lookup(geometry.Point2{X: 0.25, Y: 0.75}, geometry.Vector2{X: 4}, geometry.Vector2{Y: 4})
	assert.Equal(t, want, got)
}

func TestRGBPyramid(t *testing.T) {
	texels := make([]spectrum.RGB, 4*4)
	for i := range texels {
		texels[i] = spectrum.RGB{R: 0.2, G: 0.4, B: 0.8}
	}
	m := NewMIPMap(texels, 4, 4, FilterEWA, WrapRepeat, 8)

	require.Equal(t, 3, m.Levels())
	top := m.Texel(2, 0, 0)
	assert.InDelta(t, 0.2, top.R, 1e-9)
	assert.InDelta(t, 0.4, top.G, 1e-9)
	assert.InDelta(t, 0.8, top.B, 1e-9)
}

func TestParseWrapModeDefaultsToRepeat(t *testing.T) {
	assert.Equal(t, WrapClamp, ParseWrapMode("clamp"))
	assert.Equal(t, WrapBlack, ParseWrapMode("black"))
	assert.Equal(t, WrapRepeat, ParseWrapMode("repeat"))
	assert.Equal(t, WrapRepeat, ParseWrapMode("no-such-mode"))
	assert.Equal(t, WrapRepeat, ParseWrapMode(""))
}
