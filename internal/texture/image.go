package texture

import (
	"strings"

	"pbrtex-renderer/internal/geometry"
	"pbrtex-renderer/internal/params"
	"pbrtex-renderer/internal/spectrum"
)

// ImageTexture binds a 2D mapping to a shared, cached MIP pyramid. Immutable
// after construction; Evaluate is safe for concurrent use.
type ImageTexture[T Texel[T]] struct {
	mapping Mapping2D
	mipmap  *MIPMap[T]
}

// NewImageTexture resolves info through cache, triggering the build on first
// use. A failed image load is a construction error, never deferred to
// evaluation time.
func NewImageTexture[T Texel[T]](cache *Cache[T], mapping Mapping2D, info TexInfo) (*ImageTexture[T], error) {
	mipmap, err := cache.Get(info)
	if err != nil {
		return nil, err
	}
	return &ImageTexture[T]{mapping: mapping, mipmap: mipmap}, nil
}

// Evaluate maps the surface point to texture coordinates and returns the
// filtered texel there.
func (t *ImageTexture[T]) Evaluate(si *geometry.SurfaceInteraction) T {
	r := t.mapping.Map(si)
	return t.mipmap.Lookup(r.P, r.DstDx, r.DstDy)
}

// NewRGBFromParams constructs a color image texture from a parameter set,
// resolving the documented defaults.
func NewRGBFromParams(tp *params.TextureParams) (*ImageTexture[spectrum.RGB], error) {
	return NewImageTexture(RGBMaps, MappingFromParams(tp), InfoFromParams(tp))
}

// NewScalarFromParams constructs a single-channel image texture from a
// parameter set.
func NewScalarFromParams(tp *params.TextureParams) (*ImageTexture[Scalar], error) {
	return NewImageTexture(ScalarMaps, MappingFromParams(tp), InfoFromParams(tp))
}

// InfoFromParams resolves the cache key from a parameter set: wrap defaults
// to repeat, filtering to EWA, scale to 1, anisotropy to 8, and gamma
// correction is auto-enabled for low-bit-depth file extensions.
func InfoFromParams(tp *params.TextureParams) TexInfo {
	path := tp.FindFilename("filename", "")
	method := FilterEWA
	if tp.FindBool("trilinear", false) {
		method = FilterTrilinear
	}
	return TexInfo{
		Path:          path,
		Method:        method,
		Wrap:          ParseWrapMode(tp.FindString("wrap", "repeat")),
		Scale:         tp.FindFloat("scale", 1),
		Gamma:         tp.FindBool("gamma", GammaDefault(path)),
		MaxAnisotropy: tp.FindFloat("maxanisotropy", 8),
	}
}

// MappingFromParams builds the UV mapping from the uscale/vscale and
// udelta/vdelta parameters.
func MappingFromParams(tp *params.TextureParams) UVMapping {
	return UVMapping{
		Su: tp.FindFloat("uscale", 1),
		Sv: tp.FindFloat("vscale", 1),
		Du: tp.FindFloat("udelta", 0),
		Dv: tp.FindFloat("vdelta", 0),
	}
}

// GammaDefault reports whether a path's extension implies sRGB-encoded
// 8-bit data.
func GammaDefault(path string) bool {
	p := strings.ToLower(path)
	return strings.HasSuffix(p, ".tga") || strings.HasSuffix(p, ".png")
}
