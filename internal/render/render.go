package render

import (
	"image"
	"math"
	"runtime"
	"sync"

	"pbrtex-renderer/internal/camera"
	"pbrtex-renderer/internal/geometry"
	"pbrtex-renderer/internal/material"
	"pbrtex-renderer/internal/spectrum"
	"pbrtex-renderer/internal/texture"
)

// Options configures a preview render.
type Options struct {
	Width       int
	Height      int
	Workers     int
	Supersample int
}

func (o Options) resolved() Options {
	if o.Width <= 0 {
		o.Width = 1024
	}
	if o.Height <= 0 {
		o.Height = o.Width / 2
	}
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.Supersample <= 0 {
		o.Supersample = 1
	}
	return o
}

// Panorama renders tex as seen by an environment camera oriented by
// camToWorld: a full latitude-longitude unwrap where each pixel performs a
// filtered lookup with a one-pixel footprint.
func Panorama(tex texture.Texture[spectrum.RGB], camToWorld geometry.Mat4, opts Options) *image.NRGBA {
	opts = opts.resolved()
	w := opts.Width * opts.Supersample
	h := opts.Height * opts.Supersample
	cam := camera.NewEnvironment(camToWorld, 0, 1, camera.Film{XRes: w, YRes: h})
	fb := NewFrameBuffer(w, h)

	forEachRow(h, opts.Workers, func(y int) {
		for x := 0; x < w; x++ {
			s := camera.Sample{
				PFilm: geometry.Point2{X: float64(x) + 0.5, Y: float64(y) + 0.5},
				Time:  0.5,
			}
			ray, weight := cam.GenerateRay(s)
			si := panoramaInteraction(ray, s, w, h)
			fb.SetRGB(x, y, tex.Evaluate(&si).Scale(weight))
		}
	})

	img := fb.Image()
	if opts.Supersample > 1 {
		img = Downsample(img, opts.Width, opts.Height)
	}
	return img
}

// panoramaInteraction reconstructs the surface interaction for a panorama
// pixel: UV is the film position itself, with a one-pixel footprint.
func panoramaInteraction(ray geometry.Ray, s camera.Sample, w, h int) geometry.SurfaceInteraction {
	theta := math.Pi * s.PFilm.Y / float64(h)
	phi := 2 * math.Pi * s.PFilm.X / float64(w)
	return geometry.SurfaceInteraction{
		P:    ray.Dir,
		N:    ray.Dir.Scale(-1),
		UV:   geometry.Point2{X: s.PFilm.X / float64(w), Y: s.PFilm.Y / float64(h)},
		DuDx: 1 / float64(w),
		DvDy: 1 / float64(h),
		DpDu: sphereDpDu(theta, phi),
		DpDv: sphereDpDv(theta, phi),
		Time: ray.Time,
	}
}

// SpherePreview renders a unit sphere shaded by mat under one directional
// light, viewed head-on. Every visible pixel evaluates the material's
// textures through the full filtered-lookup path.
func SpherePreview(mat *material.Plastic, lightDir geometry.Vec3, opts Options) *image.NRGBA {
	opts = opts.resolved()
	size := opts.Width * opts.Supersample
	fb := NewFrameBuffer(size, size)

	wi := lightDir.Normalize()
	wo := geometry.Vec3{Z: 1}

	forEachRow(size, opts.Workers, func(y int) {
		for x := 0; x < size; x++ {
			si, ok := sphereInteraction(x, y, size)
			if !ok {
				continue // transparent background
			}
			bsdf := mat.ComputeScattering(&si)
			cos := math.Max(0, si.N.Dot(wi))
			c := bsdf.F(wo, wi, si.N).Scale(cos * math.Pi)
			fb.SetRGB(x, y, c)
		}
	})

	img := fb.Image()
	if opts.Supersample > 1 {
		img = Downsample(img, opts.Width, opts.Width)
	}
	return img
}

// sphereInteraction projects a pixel orthographically onto the unit sphere.
// The UV derivatives come from finite differences against the next pixel.
func sphereInteraction(x, y, size int) (geometry.SurfaceInteraction, bool) {
	p, ok := spherePoint(float64(x)+0.5, float64(y)+0.5, size)
	if !ok {
		return geometry.SurfaceInteraction{}, false
	}
	u, v := sphereUV(p)
	theta := v * math.Pi
	phi := u * 2 * math.Pi

	si := geometry.SurfaceInteraction{
		P:    p,
		N:    p,
		UV:   geometry.Point2{X: u, Y: v},
		DpDu: sphereDpDu(theta, phi),
		DpDv: sphereDpDv(theta, phi),
		Time: 0.5,
	}
	if px, ok := spherePoint(float64(x)+1.5, float64(y)+0.5, size); ok {
		ux, vx := sphereUV(px)
		si.DuDx = wrappedDiff(ux, u)
		si.DvDx = vx - v
	}
	if py, ok := spherePoint(float64(x)+0.5, float64(y)+1.5, size); ok {
		uy, vy := sphereUV(py)
		si.DuDy = wrappedDiff(uy, u)
		si.DvDy = vy - v
	}
	return si, true
}

// spherePoint maps pixel coordinates to a point on the unit sphere, with a
// small margin around the silhouette.
func spherePoint(px, py float64, size int) (geometry.Vec3, bool) {
	const margin = 1.05
	sx := (2*px/float64(size) - 1) * margin
	sy := (1 - 2*py/float64(size)) * margin
	r2 := sx*sx + sy*sy
	if r2 > 1 {
		return geometry.Vec3{}, false
	}
	return geometry.Vec3{X: sx, Y: sy, Z: math.Sqrt(1 - r2)}, true
}

func sphereUV(p geometry.Vec3) (u, v float64) {
	theta := math.Acos(geometry.Clamp(p.Y, -1, 1))
	phi := math.Atan2(p.Z, p.X)
	if phi < 0 {
		phi += 2 * math.Pi
	}
	return phi / (2 * math.Pi), theta / math.Pi
}

// wrappedDiff is the signed u difference accounting for the seam at u=0.
func wrappedDiff(a, b float64) float64 {
	d := a - b
	if d > 0.5 {
		d -= 1
	} else if d < -0.5 {
		d += 1
	}
	return d
}

func sphereDpDu(theta, phi float64) geometry.Vec3 {
	return geometry.Vec3{
		X: -math.Sin(theta) * math.Sin(phi),
		Z: math.Sin(theta) * math.Cos(phi),
	}.Scale(2 * math.Pi)
}

func sphereDpDv(theta, phi float64) geometry.Vec3 {
	return geometry.Vec3{
		X: math.Cos(theta) * math.Cos(phi),
		Y: -math.Sin(theta),
		Z: math.Cos(theta) * math.Sin(phi),
	}.Scale(math.Pi)
}

// forEachRow fans rows out to a worker pool and waits for completion.
func forEachRow(rows, workers int, fn func(y int)) {
	rowChan := make(chan int, workers*2)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := range rowChan {
				fn(y)
			}
		}()
	}
	for y := 0; y < rows; y++ {
		rowChan <- y
	}
	close(rowChan)
	wg.Wait()
}
