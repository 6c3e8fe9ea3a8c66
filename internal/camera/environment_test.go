package camera

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"pbrtex-renderer/internal/geometry"
)

func assertVec3InDelta(t *testing.T, want, got geometry.Vec3, delta float64) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, delta)
	assert.InDelta(t, want.Y, got.Y, delta)
	assert.InDelta(t, want.Z, got.Z, delta)
}

func TestEnvironmentGenerateRayDirections(t *testing.T) {
	cam := NewEnvironment(geometry.Mat4Identity(), 0, 1, Film{XRes: 100, YRes: 50})

	tests := []struct {
		name string
		p    geometry.Point2
		dir  geometry.Vec3
	}{
		{"film center looks along -x", geometry.Point2{X: 50, Y: 25}, geometry.Vec3{X: -1}},
		{"quarter turn looks along +z", geometry.Point2{X: 25, Y: 25}, geometry.Vec3{Z: 1}},
		{"left edge looks along +x", geometry.Point2{X: 0, Y: 25}, geometry.Vec3{X: 1}},
		{"top row looks at the +y pole", geometry.Point2{X: 50, Y: 0}, geometry.Vec3{Y: 1}},
		{"bottom row looks at the -y pole", geometry.Point2{X: 50, Y: 50}, geometry.Vec3{Y: -1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ray, weight := cam.GenerateRay(Sample{PFilm: tc.p, Time: 0})
			assert.Equal(t, 1.0, weight)
			assertVec3InDelta(t, tc.dir, ray.Dir, 1e-12)
			assert.Equal(t, geometry.Vec3{}, ray.Origin)
			assert.True(t, math.IsInf(ray.TMax, 1))
		})
	}
}

func TestEnvironmentShutterTimeLerp(t *testing.T) {
	cam := NewEnvironment(geometry.Mat4Identity(), 1, 3, Film{XRes: 10, YRes: 10})

	ray, _ := cam.GenerateRay(Sample{PFilm: geometry.Point2{X: 5, Y: 5}, Time: 0.5})
	assert.InDelta(t, 2.0, ray.Time, 1e-12)

	ray, _ = cam.GenerateRay(Sample{PFilm: geometry.Point2{X: 5, Y: 5}, Time: 0})
	assert.InDelta(t, 1.0, ray.Time, 1e-12)
}

func TestEnvironmentCameraToWorldRotation(t *testing.T) {
	identity := NewEnvironment(geometry.Mat4Identity(), 0, 1, Film{XRes: 100, YRes: 50})
	rotated := NewEnvironment(geometry.Mat4RotateY(math.Pi/2), 0, 1, Film{XRes: 100, YRes: 50})

	s := Sample{PFilm: geometry.Point2{X: 50, Y: 25}}
	base, _ := identity.GenerateRay(s)
	got, _ := rotated.GenerateRay(s)

	want := geometry.Mat4RotateY(math.Pi / 2).MulVector(base.Dir)
	assertVec3InDelta(t, want, got.Dir, 1e-12)
}

func TestEnvironmentCameraTranslationMovesOrigin(t *testing.T) {
	offset := geometry.Vec3{X: 1, Y: 2, Z: 3}
	cam := NewEnvironment(geometry.Mat4Translate(offset), 0, 1, Film{XRes: 10, YRes: 10})

	ray, _ := cam.GenerateRay(Sample{PFilm: geometry.Point2{X: 5, Y: 5}})
	assertVec3InDelta(t, offset, ray.Origin, 1e-12)
}
