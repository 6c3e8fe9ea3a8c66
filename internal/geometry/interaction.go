package geometry

// SurfaceInteraction describes a ray-surface hit: position, shading normal,
// parametric coordinates and their screen-space derivatives. Texture lookups
// derive their filter footprint from the derivative fields.
type SurfaceInteraction struct {
	P  Vec3   // hit point
	N  Vec3   // shading normal (bump mapping may perturb it)
	UV Point2 // surface parameterization

	// Partial derivatives of UV with respect to the raster x and y axes.
	DuDx, DvDx float64
	DuDy, DvDy float64

	// Partial derivatives of position with respect to UV.
	DpDu, DpDv Vec3

	Time float64
}
