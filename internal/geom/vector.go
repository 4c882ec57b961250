package geom

import "math"

// Vector is a 2D point or displacement. Methods return new values; a Vector
// is never mutated in place.
type Vector struct {
	X, Y float64
}

func Vec(x, y float64) Vector { return Vector{X: x, Y: y} }

// FromPolar builds a vector of magnitude m pointing at angle a (radians).
func FromPolar(m, a float64) Vector {
	return Vector{X: m * math.Cos(a), Y: m * math.Sin(a)}
}

func (v Vector) Add(u Vector) Vector   { return Vector{X: v.X + u.X, Y: v.Y + u.Y} }
func (v Vector) Sub(u Vector) Vector   { return Vector{X: v.X - u.X, Y: v.Y - u.Y} }
func (v Vector) Mult(s float64) Vector { return Vector{X: v.X * s, Y: v.Y * s} }
func (v Vector) Div(s float64) Vector  { return Vector{X: v.X / s, Y: v.Y / s} }
func (v Vector) Dot(u Vector) float64  { return v.X*u.X + v.Y*u.Y }
func (v Vector) Mag() float64          { return math.Sqrt(v.Dot(v)) }
func (v Vector) MagSqd() float64       { return v.Dot(v) }
func (v Vector) Heading() float64      { return math.Atan2(v.Y, v.X) }
func (v Vector) IsZero() bool          { return v.X == 0 && v.Y == 0 }

// Distance is the Euclidean distance between two points.
func (v Vector) Distance(u Vector) float64 { return v.Sub(u).Mag() }

// DistanceSqd avoids the square root; prefer it for comparisons.
func (v Vector) DistanceSqd(u Vector) float64 { return v.Sub(u).MagSqd() }

// SetMag rescales v to magnitude m. The zero vector stays zero.
func (v Vector) SetMag(m float64) Vector {
	mag := v.Mag()
	if mag == 0 {
		return v
	}
	return v.Mult(m / mag)
}

// Normalize returns the unit vector in the direction of v.
func (v Vector) Normalize() Vector { return v.SetMag(1) }

// Limit caps the magnitude of v at mx.
func (v Vector) Limit(mx float64) Vector {
	if m := v.Mag(); m > mx {
		return v.Mult(mx / m)
	}
	return v
}

func (v Vector) SetHeading(a float64) Vector { return FromPolar(v.Mag(), a) }
func (v Vector) Turn(a float64) Vector       { return v.SetHeading(v.Heading() + a) }

// Lerp interpolates linearly from v towards u by fraction s.
func (v Vector) Lerp(u Vector, s float64) Vector {
	return Vector{X: v.X + (u.X-v.X)*s, Y: v.Y + (u.Y-v.Y)*s}
}

// UnitNormal is the unit vector perpendicular to v (rotated +90 degrees).
func (v Vector) UnitNormal() Vector {
	return Vector{X: -v.Y, Y: v.X}.Normalize()
}

// Project returns the vector projection of v onto u.
func (v Vector) Project(u Vector) Vector {
	return u.Mult(v.Dot(u) / u.Dot(u))
}

// Reject returns the component of v perpendicular to u.
func (v Vector) Reject(u Vector) Vector {
	return v.Sub(v.Project(u))
}
