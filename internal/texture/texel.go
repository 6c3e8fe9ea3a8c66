// Package texture implements image-backed textures: MIP pyramid construction,
// trilinear and EWA filtered lookups, and a process-wide cache that shares one
// pyramid per distinct load request across concurrent render workers.
package texture

// Texel is the capability set a pyramid element must provide: addition,
// scaling and clamping. The zero value of a Texel type is black/zero and is
// what out-of-range fetches return under WrapBlack.
type Texel[T any] interface {
	Add(T) T
	Scale(float64) T
	Clamp(lo, hi float64) T
}

// Scalar is a single-channel texel, used for roughness and bump maps.
type Scalar float64

func (s Scalar) Add(t Scalar) Scalar {
	return s + t
}

func (s Scalar) Scale(k float64) Scalar {
	return Scalar(float64(s) * k)
}

func (s Scalar) Clamp(lo, hi float64) Scalar {
	if float64(s) < lo {
		return Scalar(lo)
	}
	if float64(s) > hi {
		return Scalar(hi)
	}
	return s
}
