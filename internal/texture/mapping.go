package texture

import "pbrtex-renderer/internal/geometry"

// Map2DResult couples mapped texture coordinates with their partial
// derivatives along the raster x and y axes. Computed per lookup, never
// stored.
type Map2DResult struct {
	P            geometry.Point2
	DstDx, DstDy geometry.Vector2
}

// Mapping2D produces texture coordinates for a surface point.
type Mapping2D interface {
	Map(si *geometry.SurfaceInteraction) Map2DResult
}

// UVMapping scales and offsets the surface's own (u, v) parameterization.
type UVMapping struct {
	Su, Sv float64 // scale
	Du, Dv float64 // offset
}

// NewUVMapping returns the identity UV mapping.
func NewUVMapping() UVMapping {
	return UVMapping{Su: 1, Sv: 1}
}

func (m UVMapping) Map(si *geometry.SurfaceInteraction) Map2DResult {
	return Map2DResult{
		P: geometry.Point2{
			X: m.Su*si.UV.X + m.Du,
			Y: m.Sv*si.UV.Y + m.Dv,
		},
		DstDx: geometry.Vector2{X: m.Su * si.DuDx, Y: m.Sv * si.DvDx},
		DstDy: geometry.Vector2{X: m.Su * si.DuDy, Y: m.Sv * si.DvDy},
	}
}
