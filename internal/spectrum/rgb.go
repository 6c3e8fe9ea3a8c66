// Package spectrum holds the RGB spectral representation used for shading
// and for multi-channel texels.
package spectrum

import "pbrtex-renderer/internal/geometry"

// RGB is a linear-light spectral triple.
type RGB struct {
	R, G, B float64
}

// New returns a uniform spectrum with all channels set to v.
func New(v float64) RGB {
	return RGB{v, v, v}
}

func (s RGB) Add(t RGB) RGB {
	return RGB{s.R + t.R, s.G + t.G, s.B + t.B}
}

// Mul multiplies component-wise.
func (s RGB) Mul(t RGB) RGB {
	return RGB{s.R * t.R, s.G * t.G, s.B * t.B}
}

func (s RGB) Scale(k float64) RGB {
	return RGB{s.R * k, s.G * k, s.B * k}
}

func (s RGB) Clamp(lo, hi float64) RGB {
	return RGB{
		geometry.Clamp(s.R, lo, hi),
		geometry.Clamp(s.G, lo, hi),
		geometry.Clamp(s.B, lo, hi),
	}
}

func (s RGB) IsBlack() bool {
	return s.R == 0 && s.G == 0 && s.B == 0
}

// Y returns the Rec.709 luminance.
func (s RGB) Y() float64 {
	return 0.212671*s.R + 0.715160*s.G + 0.072169*s.B
}

// Lerp interpolates between a and b by t.
func Lerp(t float64, a, b RGB) RGB {
	return a.Scale(1 - t).Add(b.Scale(t))
}
