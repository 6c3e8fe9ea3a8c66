package texture

import (
	"math"

	"pbrtex-renderer/internal/geometry"
)

// FilterMethod selects the lookup algorithm of a MIPMap.
type FilterMethod int

const (
	// FilterEWA uses an elliptically weighted average over the footprint.
	FilterEWA FilterMethod = iota
	// FilterTrilinear blends bilinear samples of two adjacent levels.
	FilterTrilinear
)

func (f FilterMethod) String() string {
	if f == FilterTrilinear {
		return "trilinear"
	}
	return "ewa"
}

// ParseFilterMethod maps a configuration string to a FilterMethod. Unknown
// strings fall back to EWA.
func ParseFilterMethod(s string) FilterMethod {
	if s == "trilinear" {
		return FilterTrilinear
	}
	return FilterEWA
}

// level is one pyramid resolution, a row-major grid of texels.
type level[T Texel[T]] struct {
	width, height int
	texels        []T
}

// texel fetches (x, y) with out-of-range coordinates resolved by wrap.
func (l *level[T]) texel(x, y int, wrap WrapMode) T {
	x, okx := wrap.resolve(x, l.width)
	y, oky := wrap.resolve(y, l.height)
	if !okx || !oky {
		var zero T
		return zero
	}
	return l.texels[y*l.width+x]
}

// MIPMap holds a pyramid of progressively box-filtered copies of a base
// image, finest first, and answers filtered lookups over it. Immutable once
// built; lookups are safe from any number of goroutines.
type MIPMap[T Texel[T]] struct {
	method        FilterMethod
	wrap          WrapMode
	maxAnisotropy float64
	pyramid       []level[T]
}

// NewMIPMap builds a pyramid from a row-major base image. Non-power-of-two
// bases are first resampled up to the next power of two; each coarser level
// is then a wrap-aware 2×2 box filter of the previous one, down to 1×1.
func NewMIPMap[T Texel[T]](texels []T, width, height int, method FilterMethod, wrap WrapMode, maxAnisotropy float64) *MIPMap[T] {
	if !isPowerOfTwo(width) || !isPowerOfTwo(height) {
		texels, width, height = resampleToPowerOfTwo(texels, width, height, wrap)
	}
	if maxAnisotropy <= 0 {
		maxAnisotropy = 8
	}

	nLevels := 1 + log2Int(max(width, height))
	m := &MIPMap[T]{
		method:        method,
		wrap:          wrap,
		maxAnisotropy: maxAnisotropy,
		pyramid:       make([]level[T], 0, nLevels),
	}
	m.pyramid = append(m.pyramid, level[T]{width: width, height: height, texels: texels})

	for i := 1; i < nLevels; i++ {
		prev := &m.pyramid[i-1]
		w := max(1, prev.width/2)
		h := max(1, prev.height/2)
		next := level[T]{width: w, height: h, texels: make([]T, w*h)}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				t := prev.texel(2*x, 2*y, wrap).
					Add(prev.texel(2*x+1, 2*y, wrap)).
					Add(prev.texel(2*x, 2*y+1, wrap)).
					Add(prev.texel(2*x+1, 2*y+1, wrap))
				next.texels[y*w+x] = t.Scale(0.25)
			}
		}
		m.pyramid = append(m.pyramid, next)
	}
	return m
}

// Width returns the finest level's width.
func (m *MIPMap[T]) Width() int { return m.pyramid[0].width }

// Height returns the finest level's height.
func (m *MIPMap[T]) Height() int { return m.pyramid[0].height }

// Levels returns the number of pyramid levels.
func (m *MIPMap[T]) Levels() int { return len(m.pyramid) }

// LevelSize returns the dimensions of pyramid level lvl.
func (m *MIPMap[T]) LevelSize(lvl int) (w, h int) {
	l := &m.pyramid[clampLevel(lvl, len(m.pyramid))]
	return l.width, l.height
}

// Texel fetches a single texel of level lvl, resolving out-of-range
// coordinates through the wrap mode.
func (m *MIPMap[T]) Texel(lvl, x, y int) T {
	l := &m.pyramid[clampLevel(lvl, len(m.pyramid))]
	return l.texel(x, y, m.wrap)
}

// Lookup filters the texture at st for a footprint spanned by the two
// raster-axis derivatives, using the method selected at construction.
func (m *MIPMap[T]) Lookup(st geometry.Point2, dstdx, dstdy geometry.Vector2) T {
	if m.method == FilterTrilinear {
		width := math.Max(
			math.Max(math.Abs(dstdx.X), math.Abs(dstdx.Y)),
			math.Max(math.Abs(dstdy.X), math.Abs(dstdy.Y)),
		)
		return m.lookupWidth(st, width)
	}
	return m.lookupEWA(st, dstdx, dstdy)
}

// lookupWidth is the trilinear path: choose the level whose texel spacing
// matches width and blend bilinear samples of the two bracketing levels.
func (m *MIPMap[T]) lookupWidth(st geometry.Point2, width float64) T {
	nLevels := len(m.pyramid)
	lvl := float64(nLevels-1) + math.Log2(math.Max(width, 1e-8))
	switch {
	case lvl < 0:
		return m.bilinear(0, st)
	case lvl >= float64(nLevels-1):
		return m.Texel(nLevels-1, 0, 0)
	default:
		i := int(math.Floor(lvl))
		d := lvl - float64(i)
		return m.bilinear(i, st).Scale(1 - d).Add(m.bilinear(i+1, st).Scale(d))
	}
}

// bilinear blends the four texels around st on one level by fractional
// offsets, with texel centers at half-integer st·resolution coordinates.
func (m *MIPMap[T]) bilinear(lvl int, st geometry.Point2) T {
	lvl = clampLevel(lvl, len(m.pyramid))
	l := &m.pyramid[lvl]
	s := st.X*float64(l.width) - 0.5
	t := st.Y*float64(l.height) - 0.5
	s0, t0 := int(math.Floor(s)), int(math.Floor(t))
	ds, dt := s-float64(s0), t-float64(t0)
	return l.texel(s0, t0, m.wrap).Scale((1 - ds) * (1 - dt)).
		Add(l.texel(s0+1, t0, m.wrap).Scale(ds * (1 - dt))).
		Add(l.texel(s0, t0+1, m.wrap).Scale((1 - ds) * dt)).
		Add(l.texel(s0+1, t0+1, m.wrap).Scale(ds * dt))
}

// lookupEWA models the footprint as an ellipse spanned by the derivative
// vectors, clamps its eccentricity to the anisotropy bound, and blends
// elliptically weighted averages of the two levels bracketing the minor
// axis. Degenerate footprints fall back to the trilinear path.
func (m *MIPMap[T]) lookupEWA(st geometry.Point2, dst0, dst1 geometry.Vector2) T {
	if dst0.LengthSquared() < dst1.LengthSquared() {
		dst0, dst1 = dst1, dst0
	}
	major := dst0.Length()
	minor := dst1.Length()
	if minor == 0 {
		return m.lookupWidth(st, major)
	}

	// Clamp eccentricity to bound the number of texels an EWA pass visits.
	if minor*m.maxAnisotropy < major {
		scale := major / (minor * m.maxAnisotropy)
		dst1 = dst1.Scale(scale)
		minor *= scale
	}

	nLevels := len(m.pyramid)
	lod := math.Max(0, float64(nLevels-1)+math.Log2(minor))
	i := int(math.Floor(lod))
	d := lod - float64(i)
	return m.ewa(i, st, dst0, dst1).Scale(1 - d).
		Add(m.ewa(i+1, st, dst0, dst1).Scale(d))
}

// ewa accumulates a normalized weighted sum of the texels inside the
// footprint ellipse on one level.
func (m *MIPMap[T]) ewa(lvl int, st geometry.Point2, dst0, dst1 geometry.Vector2) T {
	lvl = clampLevel(lvl, len(m.pyramid))
	l := &m.pyramid[lvl]

	// Convert to raster coordinates on this level.
	w, h := float64(l.width), float64(l.height)
	s := st.X*w - 0.5
	t := st.Y*h - 0.5
	dst0 = geometry.Vector2{X: dst0.X * w, Y: dst0.Y * h}
	dst1 = geometry.Vector2{X: dst1.X * w, Y: dst1.Y * h}

	// Implicit ellipse coefficients, normalized so e(s,t)=1 on the boundary.
	a := dst0.Y*dst0.Y + dst1.Y*dst1.Y + 1
	b := -2 * (dst0.X*dst0.Y + dst1.X*dst1.Y)
	c := dst0.X*dst0.X + dst1.X*dst1.X + 1
	invF := 1 / (a*c - b*b*0.25)
	a *= invF
	b *= invF
	c *= invF

	// Ellipse bounding box in texel coordinates.
	det := -b*b + 4*a*c
	invDet := 1 / det
	uSqrt := math.Sqrt(det * c)
	vSqrt := math.Sqrt(det * a)
	s0 := int(math.Ceil(s - 2*invDet*uSqrt))
	s1 := int(math.Floor(s + 2*invDet*uSqrt))
	t0 := int(math.Ceil(t - 2*invDet*vSqrt))
	t1 := int(math.Floor(t + 2*invDet*vSqrt))

	var sum T
	sumWeights := 0.0
	for it := t0; it <= t1; it++ {
		tt := float64(it) - t
		for is := s0; is <= s1; is++ {
			ss := float64(is) - s
			r2 := a*ss*ss + b*ss*tt + c*tt*tt
			if r2 >= 1 {
				continue
			}
			weight := ewaWeight(r2)
			sum = sum.Add(l.texel(is, it, m.wrap).Scale(weight))
			sumWeights += weight
		}
	}
	if sumWeights <= 0 {
		return m.bilinear(lvl, st)
	}
	return sum.Scale(1 / sumWeights)
}

const ewaWeightCount = 128

// ewaWeights is a radially symmetric gaussian falloff, exp(-2r²)-exp(-2),
// tabulated over r² in [0, 1).
var ewaWeights = func() [ewaWeightCount]float64 {
	var lut [ewaWeightCount]float64
	const alpha = 2.0
	for i := range lut {
		r2 := float64(i) / float64(ewaWeightCount-1)
		lut[i] = math.Exp(-alpha*r2) - math.Exp(-alpha)
	}
	return lut
}()

func ewaWeight(r2 float64) float64 {
	i := int(r2 * float64(ewaWeightCount))
	if i >= ewaWeightCount {
		i = ewaWeightCount - 1
	}
	return ewaWeights[i]
}

func clampLevel(lvl, n int) int {
	if lvl < 0 {
		return 0
	}
	if lvl >= n {
		return n - 1
	}
	return lvl
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// log2Int returns floor(log2(n)) for n ≥ 1.
func log2Int(n int) int {
	l := 0
	for n > 1 {
		n >>= 1
		l++
	}
	return l
}
