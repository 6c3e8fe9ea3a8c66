package camera

import (
	"math"

	"pbrtex-renderer/internal/geometry"
)

// Environment captures a full latitude-longitude panorama: every film pixel
// maps to one spherical direction around the camera position.
type Environment struct {
	CameraToWorld geometry.Mat4
	ShutterOpen   float64
	ShutterClose  float64
	Film          Film
}

// NewEnvironment creates an environment camera.
func NewEnvironment(cameraToWorld geometry.Mat4, shutterOpen, shutterClose float64, film Film) *Environment {
	return &Environment{
		CameraToWorld: cameraToWorld,
		ShutterOpen:   shutterOpen,
		ShutterClose:  shutterClose,
		Film:          film,
	}
}

// GenerateRay maps the film sample to spherical angles: y spans latitude
// from the +Y pole, x spans a full longitude turn. The weight is always 1.
func (c *Environment) GenerateRay(s Sample) (geometry.Ray, float64) {
	theta := math.Pi * s.PFilm.Y / float64(c.Film.YRes)
	phi := 2 * math.Pi * s.PFilm.X / float64(c.Film.XRes)
	dir := geometry.Vec3{
		X: math.Sin(theta) * math.Cos(phi),
		Y: math.Cos(theta),
		Z: math.Sin(theta) * math.Sin(phi),
	}

	ray := geometry.Ray{
		Origin: geometry.Vec3{},
		Dir:    dir,
		TMax:   math.Inf(1),
		Time:   geometry.Lerp(s.Time, c.ShutterOpen, c.ShutterClose),
	}
	return ray.Transformed(c.CameraToWorld), 1
}
