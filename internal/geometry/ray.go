package geometry

// Ray is a half-line with an origin, direction, parametric extent and time.
type Ray struct {
	Origin Vec3
	Dir    Vec3
	TMax   float64
	Time   float64
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Dir.Scale(t))
}

// Transformed returns the ray with origin and direction mapped through m.
func (r Ray) Transformed(m Mat4) Ray {
	return Ray{
		Origin: m.MulPoint(r.Origin),
		Dir:    m.MulVector(r.Dir),
		TMax:   r.TMax,
		Time:   r.Time,
	}
}
