package material

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pbrtex-renderer/internal/geometry"
	"pbrtex-renderer/internal/params"
	"pbrtex-renderer/internal/spectrum"
	"pbrtex-renderer/internal/texture"
)

func testInteraction() geometry.SurfaceInteraction {
	return geometry.SurfaceInteraction{
		N:    geometry.Vec3{Z: 1},
		UV:   geometry.Point2{X: 0.5, Y: 0.5},
		DpDu: geometry.Vec3{X: 1},
		DpDv: geometry.Vec3{Y: 1},
	}
}

func TestPlasticAssemblesActiveLobes(t *testing.T) {
	mat := NewPlastic(
		texture.NewConstant(spectrum.New(0.5)),
		texture.NewConstant(spectrum.New(0.25)),
		texture.NewConstant(texture.Scalar(0.1)),
		true, nil,
	)
	si := testInteraction()
	assert.Equal(t, 2, mat.ComputeScattering(&si).NumLobes())
}

func TestPlasticBlackComponentsContributeNoLobe(t *testing.T) {
	black := texture.NewConstant(spectrum.RGB{})
	mat := NewPlastic(black, black, texture.NewConstant(texture.Scalar(0.1)), true, nil)
	si := testInteraction()
	bsdf := mat.ComputeScattering(&si)

	assert.Equal(t, 0, bsdf.NumLobes())
	n := geometry.Vec3{Z: 1}
	assert.True(t, bsdf.F(n, n, n).IsBlack())
}

func TestLambertianReflectance(t *testing.T) {
	l := &Lambertian{Kd: spectrum.New(0.9)}
	n := geometry.Vec3{Z: 1}
	wo := geometry.Vec3{X: 0.5, Z: 0.8}
	wi := geometry.Vec3{Y: -0.3, Z: 0.9}

	f := l.F(wo, wi, n)
	assert.InDelta(t, 0.9/math.Pi, f.R, 1e-12)

	// Opposite hemispheres reflect nothing.
	below := geometry.Vec3{Z: -1}
	assert.True(t, l.F(wo, below, n).IsBlack())
}

func TestMicrofacetSpecularPeaksAtMirrorDirection(t *testing.T) {
	m := &MicrofacetReflection{Ks: spectrum.New(1), Alpha: 0.1, EtaI: 1.5, EtaT: 1}
	n := geometry.Vec3{Z: 1}
	wo := geometry.Vec3{X: 0.3, Z: 0.954}.Normalize()

	mirror := geometry.Vec3{X: -wo.X, Y: -wo.Y, Z: wo.Z}
	offAxis := geometry.Vec3{X: -wo.X, Y: 0.4, Z: wo.Z}.Normalize()

	assert.Greater(t, m.F(wo, mirror, n).R, m.F(wo, offAxis, n).R)
	assert.True(t, m.F(wo, geometry.Vec3{Z: -1}, n).IsBlack(), "transmission side is black")
}

func TestFresnelDielectricBounds(t *testing.T) {
	for _, cos := range []float64{0.05, 0.3, 0.7, 1} {
		f := FresnelDielectric(cos, 1, 1.5)
		assert.GreaterOrEqual(t, f, 0.0)
		assert.LessOrEqual(t, f, 1.0)
	}
	assert.InDelta(t, 1.0, FresnelDielectric(0.001, 1, 1.5), 0.05, "grazing incidence reflects fully")
}

func TestRoughnessToAlphaIsMonotone(t *testing.T) {
	prev := RoughnessToAlpha(0.01)
	for r := 0.02; r <= 1.0; r += 0.01 {
		a := RoughnessToAlpha(r)
		assert.Greater(t, a, prev, "roughness %g", r)
		prev = a
	}
}

// rampTexture varies along u, giving the bump map a nonzero gradient.
type rampTexture struct{}

func (rampTexture) Evaluate(si *geometry.SurfaceInteraction) texture.Scalar {
	return texture.Scalar(si.UV.X)
}

func TestBumpPerturbsNormal(t *testing.T) {
	si := testInteraction()
	Bump(rampTexture{}, &si)

	assert.InDelta(t, 1.0, si.N.Length(), 1e-9)
	assert.NotEqual(t, geometry.Vec3{Z: 1}, si.N)
	assert.Greater(t, si.N.Dot(geometry.Vec3{Z: 1}), 0.0, "orientation preserved")
}

func TestBumpConstantDisplacementKeepsNormal(t *testing.T) {
	si := testInteraction()
	Bump(texture.NewConstant(texture.Scalar(0.25)), &si)

	assert.InDelta(t, 0.0, si.N.X, 1e-9)
	assert.InDelta(t, 0.0, si.N.Y, 1e-9)
	assert.InDelta(t, 1.0, si.N.Z, 1e-9)
}

func TestPlasticFromParamsDefaults(t *testing.T) {
	mat, err := PlasticFromParams(params.New(nil))
	require.NoError(t, err)

	si := testInteraction()
	bsdf := mat.ComputeScattering(&si)
	assert.Equal(t, 2, bsdf.NumLobes(), "default Kd and Ks are 0.25")
	assert.True(t, mat.RemapRoughness)
	assert.Nil(t, mat.BumpMap)
}

func TestPlasticFromParamsMissingImageFails(t *testing.T) {
	_, err := PlasticFromParams(params.New(map[string]any{
		"kd": "definitely-missing.png",
	}))
	require.ErrorIs(t, err, texture.ErrImageLoad)
}
