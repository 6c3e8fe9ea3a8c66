// Package material assembles shading lobes from evaluated texture values.
package material

import (
	"math"

	"pbrtex-renderer/internal/geometry"
	"pbrtex-renderer/internal/spectrum"
)

// BxDF is one scattering lobe. F returns the reflectance for an outgoing/
// incoming direction pair against the shading normal; directions point away
// from the surface.
type BxDF interface {
	F(wo, wi, n geometry.Vec3) spectrum.RGB
}

// BSDF aggregates the lobes active at one surface interaction.
type BSDF struct {
	lobes []BxDF
}

func (b *BSDF) Add(l BxDF) {
	b.lobes = append(b.lobes, l)
}

func (b *BSDF) NumLobes() int {
	return len(b.lobes)
}

// F sums the reflectance of every lobe.
func (b *BSDF) F(wo, wi, n geometry.Vec3) spectrum.RGB {
	var sum spectrum.RGB
	for _, l := range b.lobes {
		sum = sum.Add(l.F(wo, wi, n))
	}
	return sum
}

// Lambertian is an ideal diffuse reflection lobe.
type Lambertian struct {
	Kd spectrum.RGB
}

func (l *Lambertian) F(wo, wi, n geometry.Vec3) spectrum.RGB {
	if wo.Dot(n)*wi.Dot(n) <= 0 {
		return spectrum.RGB{}
	}
	return l.Kd.Scale(1 / math.Pi)
}

// MicrofacetReflection is a glossy lobe with a Trowbridge-Reitz distribution
// and dielectric Fresnel.
type MicrofacetReflection struct {
	Ks         spectrum.RGB
	Alpha      float64
	EtaI, EtaT float64
}

func (m *MicrofacetReflection) F(wo, wi, n geometry.Vec3) spectrum.RGB {
	cosO := wo.Dot(n)
	cosI := wi.Dot(n)
	if cosO <= 0 || cosI <= 0 {
		return spectrum.RGB{}
	}
	wh := wo.Add(wi)
	if wh.Length() < 1e-12 {
		return spectrum.RGB{}
	}
	wh = wh.Normalize()

	d := trDistribution(wh.Dot(n), m.Alpha)
	g := 1 / (1 + trLambda(cosO, m.Alpha) + trLambda(cosI, m.Alpha))
	f := FresnelDielectric(wi.Dot(wh), m.EtaI, m.EtaT)
	return m.Ks.Scale(d * g * f / (4 * cosO * cosI))
}

// trDistribution is the isotropic Trowbridge-Reitz (GGX) normal distribution
// evaluated at a half vector with the given cosine to the normal.
func trDistribution(cosH, alpha float64) float64 {
	if cosH <= 0 {
		return 0
	}
	a2 := alpha * alpha
	denom := cosH*cosH*(a2-1) + 1
	return a2 / (math.Pi * denom * denom)
}

// trLambda is the Smith masking-shadowing auxiliary function.
func trLambda(cosTheta, alpha float64) float64 {
	c2 := cosTheta * cosTheta
	if c2 >= 1 {
		return 0
	}
	tan2 := (1 - c2) / c2
	return (math.Sqrt(1+alpha*alpha*tan2) - 1) / 2
}

// FresnelDielectric returns the unpolarized Fresnel reflectance at the
// boundary between two dielectrics.
func FresnelDielectric(cosThetaI, etaI, etaT float64) float64 {
	cosThetaI = geometry.Clamp(cosThetaI, -1, 1)
	if cosThetaI < 0 {
		etaI, etaT = etaT, etaI
		cosThetaI = -cosThetaI
	}

	sinThetaI := math.Sqrt(math.Max(0, 1-cosThetaI*cosThetaI))
	sinThetaT := etaI / etaT * sinThetaI
	if sinThetaT >= 1 {
		return 1 // total internal reflection
	}
	cosThetaT := math.Sqrt(math.Max(0, 1-sinThetaT*sinThetaT))

	rParl := (etaT*cosThetaI - etaI*cosThetaT) / (etaT*cosThetaI + etaI*cosThetaT)
	rPerp := (etaI*cosThetaI - etaT*cosThetaT) / (etaI*cosThetaI + etaT*cosThetaT)
	return (rParl*rParl + rPerp*rPerp) / 2
}

// RoughnessToAlpha remaps a perceptual roughness in [0, 1] to a microfacet
// alpha, with higher values giving larger highlights.
func RoughnessToAlpha(roughness float64) float64 {
	roughness = math.Max(roughness, 1e-3)
	x := math.Log(roughness)
	return 1.62142 + 0.819955*x + 0.1734*x*x + 0.0171201*x*x*x + 0.000640711*x*x*x*x
}
