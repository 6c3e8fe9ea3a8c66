// Package camera generates primary rays from film samples.
package camera

import "pbrtex-renderer/internal/geometry"

// Film records the resolution rays are generated for.
type Film struct {
	XRes, YRes int
}

// Sample identifies a film position and a shutter time in [0, 1).
type Sample struct {
	PFilm geometry.Point2
	Time  float64
}

// Camera maps a film sample to a world-space ray. The returned weight scales
// the radiance the ray contributes to the final image.
type Camera interface {
	GenerateRay(s Sample) (geometry.Ray, float64)
}
