package material

import (
	"math"

	"pbrtex-renderer/internal/geometry"
	"pbrtex-renderer/internal/params"
	"pbrtex-renderer/internal/spectrum"
	"pbrtex-renderer/internal/texture"
)

// Plastic combines a diffuse substrate with a glossy dielectric coat. All of
// its inputs are textures so any of them may be image-backed.
type Plastic struct {
	Kd        texture.Texture[spectrum.RGB]
	Ks        texture.Texture[spectrum.RGB]
	Roughness texture.Texture[texture.Scalar]
	BumpMap   texture.Texture[texture.Scalar] // optional

	// RemapRoughness interprets the roughness texture perceptually in [0, 1]
	// instead of as the raw microfacet alpha.
	RemapRoughness bool
}

// NewPlastic builds a plastic material; bump may be nil.
func NewPlastic(kd, ks texture.Texture[spectrum.RGB], roughness texture.Texture[texture.Scalar], remapRoughness bool, bump texture.Texture[texture.Scalar]) *Plastic {
	return &Plastic{
		Kd:             kd,
		Ks:             ks,
		Roughness:      roughness,
		BumpMap:        bump,
		RemapRoughness: remapRoughness,
	}
}

// ComputeScattering evaluates the material's textures at the interaction and
// assembles the active lobes. Black components contribute no lobe.
func (p *Plastic) ComputeScattering(si *geometry.SurfaceInteraction) *BSDF {
	if p.BumpMap != nil {
		Bump(p.BumpMap, si)
	}

	bsdf := &BSDF{}

	kd := p.Kd.Evaluate(si).Clamp(0, math.Inf(1))
	if !kd.IsBlack() {
		bsdf.Add(&Lambertian{Kd: kd})
	}

	ks := p.Ks.Evaluate(si).Clamp(0, math.Inf(1))
	if !ks.IsBlack() {
		rough := float64(p.Roughness.Evaluate(si))
		if p.RemapRoughness {
			rough = RoughnessToAlpha(rough)
		}
		bsdf.Add(&MicrofacetReflection{Ks: ks, Alpha: rough, EtaI: 1.5, EtaT: 1})
	}

	return bsdf
}

// PlasticFromParams builds a plastic material from a parameter set. The kd,
// ks, roughness and bumpmap keys may name image files; missing keys fall
// back to the documented constants (Kd=Ks=0.25, roughness=0.1, no bump).
func PlasticFromParams(tp *params.TextureParams) (*Plastic, error) {
	kd, err := rgbTextureOrConstant(tp, "kd", spectrum.New(0.25))
	if err != nil {
		return nil, err
	}
	ks, err := rgbTextureOrConstant(tp, "ks", spectrum.New(0.25))
	if err != nil {
		return nil, err
	}
	rough, err := scalarTextureOrConstant(tp, "roughness", 0.1)
	if err != nil {
		return nil, err
	}
	var bump texture.Texture[texture.Scalar]
	if path := tp.FindFilename("bumpmap", ""); path != "" {
		bump, err = imageScalarTexture(tp, path)
		if err != nil {
			return nil, err
		}
	}
	return NewPlastic(kd, ks, rough, tp.FindBool("remaproughness", true), bump), nil
}

func rgbTextureOrConstant(tp *params.TextureParams, key string, def spectrum.RGB) (texture.Texture[spectrum.RGB], error) {
	path := tp.FindFilename(key, "")
	if path == "" {
		return texture.NewConstant(def), nil
	}
	info := texture.InfoFromParams(tp)
	info.Path = path
	info.Gamma = tp.FindBool("gamma", texture.GammaDefault(path))
	return texture.NewImageTexture(texture.RGBMaps, texture.MappingFromParams(tp), info)
}

func scalarTextureOrConstant(tp *params.TextureParams, key string, def float64) (texture.Texture[texture.Scalar], error) {
	path := tp.FindFilename(key, "")
	if path == "" {
		return texture.NewConstant(texture.Scalar(def)), nil
	}
	return imageScalarTexture(tp, path)
}

func imageScalarTexture(tp *params.TextureParams, path string) (texture.Texture[texture.Scalar], error) {
	info := texture.InfoFromParams(tp)
	info.Path = path
	// Data textures read linearly regardless of extension.
	info.Gamma = tp.FindBool("gamma", false)
	return texture.NewImageTexture(texture.ScalarMaps, texture.MappingFromParams(tp), info)
}
