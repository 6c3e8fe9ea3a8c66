package material

import (
	"math"

	"pbrtex-renderer/internal/geometry"
	"pbrtex-renderer/internal/texture"
)

// Bump perturbs the interaction's shading normal by the finite differences
// of a scalar displacement texture across the surface parameterization.
func Bump(d texture.Texture[texture.Scalar], si *geometry.SurfaceInteraction) {
	displace := float64(d.Evaluate(si))

	// Offset half the filter footprint in each direction; fall back to a
	// fixed step for degenerate derivatives.
	du := 0.5 * (math.Abs(si.DuDx) + math.Abs(si.DuDy))
	if du == 0 {
		du = 0.0005
	}
	shifted := *si
	shifted.P = si.P.Add(si.DpDu.Scale(du))
	shifted.UV = geometry.Point2{X: si.UV.X + du, Y: si.UV.Y}
	uDisplace := float64(d.Evaluate(&shifted))

	dv := 0.5 * (math.Abs(si.DvDx) + math.Abs(si.DvDy))
	if dv == 0 {
		dv = 0.0005
	}
	shifted = *si
	shifted.P = si.P.Add(si.DpDv.Scale(dv))
	shifted.UV = geometry.Point2{X: si.UV.X, Y: si.UV.Y + dv}
	vDisplace := float64(d.Evaluate(&shifted))

	dpdu := si.DpDu.Add(si.N.Scale((uDisplace - displace) / du))
	dpdv := si.DpDv.Add(si.N.Scale((vDisplace - displace) / dv))

	n := dpdu.Cross(dpdv).Normalize()
	if n.Length() == 0 {
		return
	}
	// Keep the perturbed normal on the original side of the surface.
	if n.Dot(si.N) < 0 {
		n = n.Scale(-1)
	}
	si.N = n
	si.DpDu = dpdu
	si.DpDv = dpdv
}
