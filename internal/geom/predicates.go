package geom

import "math"

// Overlap reports whether the interiors of u and v intersect. Shapes that
// only touch do not overlap.
func Overlap(u, v Shape) bool {
	switch a := u.(type) {
	case Circle:
		switch b := v.(type) {
		case Circle:
			rr := a.Radius + b.Radius
			return CentroidDistanceSqd(a, b) < rr*rr
		case Rect:
			return overlapCircleRect(a, b)
		}
	case Rect:
		switch b := v.(type) {
		case Circle:
			return overlapCircleRect(b, a)
		case Rect:
			return a.XMax > b.XMin && a.XMin < b.XMax && a.YMax > b.YMin && a.YMin < b.YMax
		}
	}
	panic(unknownShape(u))
}

func overlapCircleRect(c Circle, r Rect) bool {
	p := r.Clamp(c.Centroid())
	return c.Centroid().DistanceSqd(p) < c.Radius*c.Radius
}

// BoundaryDistance is the shortest gap between the boundaries of u and v,
// or 0 when they overlap or touch.
func BoundaryDistance(u, v Shape) float64 {
	return math.Max(signedGap(u, v), 0)
}

func signedGap(u, v Shape) float64 {
	switch a := u.(type) {
	case Circle:
		switch b := v.(type) {
		case Circle:
			return CentroidDistance(a, b) - a.Radius - b.Radius
		case Rect:
			return gapCircleRect(a, b)
		}
	case Rect:
		switch b := v.(type) {
		case Circle:
			return gapCircleRect(b, a)
		case Rect:
			return axisGap(axisSeparation(a.XMin, a.XMax, b.XMin, b.XMax), axisSeparation(a.YMin, a.YMax, b.YMin, b.YMax))
		}
	}
	panic(unknownShape(u))
}

func gapCircleRect(c Circle, r Rect) float64 {
	dx := pointSeparation(c.X, r.XMin, r.XMax)
	dy := pointSeparation(c.Y, r.YMin, r.YMax)
	return axisGap(dx, dy) - c.Radius
}

// axisGap combines per-axis separations: a single separated axis is used as
// is, two separated axes give the corner distance.
func axisGap(dx, dy float64) float64 {
	switch {
	case dx == 0:
		return dy
	case dy == 0:
		return dx
	default:
		return math.Sqrt(dx*dx + dy*dy)
	}
}

func pointSeparation(p, lo, hi float64) float64 {
	switch {
	case p < lo:
		return lo - p
	case p > hi:
		return p - hi
	default:
		return 0
	}
}

func axisSeparation(aMin, aMax, bMin, bMax float64) float64 {
	switch {
	case aMax < bMin:
		return bMin - aMax
	case aMin > bMax:
		return aMin - bMax
	default:
		return 0
	}
}

// InsideDistance is the signed clearance of circle c inside v: positive when
// c lies inside v with that much room to spare, negative when it pokes out.
// Only a circle is supported as the inner shape.
func InsideDistance(c Circle, v Shape) float64 {
	switch b := v.(type) {
	case Circle:
		return b.Radius - CentroidDistance(c, b) - c.Radius
	case Rect:
		d := min(
			c.X-c.Radius-b.XMin,
			b.XMax-c.X-c.Radius,
			c.Y-c.Radius-b.YMin,
			b.YMax-c.Y-c.Radius,
		)
		if !CentroidWithin(c, b) {
			// Edge clearances understate how far out a centroid beyond a
			// corner is.
			d = min(d, -(c.Centroid().Distance(b.Clamp(c.Centroid())) + c.Radius))
		}
		return d
	}
	panic(unknownShape(v))
}

// Within reports whether u lies entirely inside v. Boundaries may touch.
func Within(u, v Shape) bool {
	switch a := u.(type) {
	case Circle:
		switch b := v.(type) {
		case Circle:
			return CentroidDistance(a, b)+a.Radius <= b.Radius
		case Rect:
			return a.X-a.Radius >= b.XMin &&
				a.X+a.Radius <= b.XMax &&
				a.Y-a.Radius >= b.YMin &&
				a.Y+a.Radius <= b.YMax
		}
	case Rect:
		switch b := v.(type) {
		case Circle:
			// farthest corner must be inside the circle
			fx := math.Max(sq(a.XMax-b.X), sq(a.XMin-b.X))
			fy := math.Max(sq(a.YMax-b.Y), sq(a.YMin-b.Y))
			return fx+fy <= b.Radius*b.Radius
		case Rect:
			return a.XMin >= b.XMin && a.XMax <= b.XMax &&
				a.YMin >= b.YMin && a.YMax <= b.YMax &&
				a.XMin <= a.XMax && a.YMin <= a.YMax
		}
	}
	panic(unknownShape(u))
}

// CentroidWithin reports whether the centroid of u lies inside or on the
// boundary of v.
func CentroidWithin(u, v Shape) bool {
	p := u.Centroid()
	switch b := v.(type) {
	case Circle:
		return p.DistanceSqd(b.Centroid()) <= b.Radius*b.Radius
	case Rect:
		return p.X >= b.XMin && p.X <= b.XMax && p.Y >= b.YMin && p.Y <= b.YMax
	}
	panic(unknownShape(v))
}

func CentroidDistance(u, v Shape) float64 {
	return u.Centroid().Distance(v.Centroid())
}

// CentroidDistanceSqd is CentroidDistance squared.
func CentroidDistanceSqd(u, v Shape) float64 {
	return u.Centroid().DistanceSqd(v.Centroid())
}

func sq(x float64) float64 { return x * x }
