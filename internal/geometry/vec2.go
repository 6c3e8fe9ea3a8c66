package geometry

import "math"

// Point2 is a 2D parametric coordinate.
type Point2 struct {
	X, Y float64
}

// Vector2 is a 2D offset, typically a screen-space derivative of a Point2.
type Vector2 struct {
	X, Y float64
}

func (p Point2) Add(v Vector2) Point2 {
	return Point2{p.X + v.X, p.Y + v.Y}
}

// Sub returns the offset from q to p.
func (p Point2) Sub(q Point2) Vector2 {
	return Vector2{p.X - q.X, p.Y - q.Y}
}

func (p Point2) Scale(s float64) Point2 {
	return Point2{p.X * s, p.Y * s}
}

func (p Point2) Floor() Point2 {
	return Point2{math.Floor(p.X), math.Floor(p.Y)}
}

func (p Point2) Ceil() Point2 {
	return Point2{math.Ceil(p.X), math.Ceil(p.Y)}
}

func (p Point2) Min(q Point2) Point2 {
	return Point2{math.Min(p.X, q.X), math.Min(p.Y, q.Y)}
}

func (p Point2) Max(q Point2) Point2 {
	return Point2{math.Max(p.X, q.X), math.Max(p.Y, q.Y)}
}

func (p Point2) Distance(q Point2) float64 {
	return p.Sub(q).Length()
}

// LerpPoint2 interpolates between a and b by t.
func LerpPoint2(t float64, a, b Point2) Point2 {
	return Point2{Lerp(t, a.X, b.X), Lerp(t, a.Y, b.Y)}
}

func (v Vector2) Add(w Vector2) Vector2 {
	return Vector2{v.X + w.X, v.Y + w.Y}
}

func (v Vector2) Scale(s float64) Vector2 {
	return Vector2{v.X * s, v.Y * s}
}

func (v Vector2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

func (v Vector2) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Lerp interpolates between a and b by t.
func Lerp(t, a, b float64) float64 {
	return (1-t)*a + t*b
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
