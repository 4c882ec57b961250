package geom

import "fmt"

// Shape is the closed union of shapes the predicate library understands.
// Only Circle and Rect implement it.
type Shape interface {
	Centroid() Vector
	shape()
}

// Circle is a disc centred at (X, Y).
type Circle struct {
	X, Y   float64
	Radius float64
}

// Rect is an axis-aligned rectangle [XMin,XMax]×[YMin,YMax].
type Rect struct {
	XMin, XMax float64
	YMin, YMax float64
}

func (Circle) shape() {}
func (Rect) shape()   {}

func (c Circle) Centroid() Vector { return Vector{X: c.X, Y: c.Y} }

func (r Rect) Centroid() Vector {
	return Vector{X: (r.XMin + r.XMax) / 2, Y: (r.YMin + r.YMax) / 2}
}

// Bounds is the axis-aligned bounding rectangle of the circle.
func (c Circle) Bounds() Rect {
	return Rect{XMin: c.X - c.Radius, XMax: c.X + c.Radius, YMin: c.Y - c.Radius, YMax: c.Y + c.Radius}
}

func (r Rect) Width() float64  { return r.XMax - r.XMin }
func (r Rect) Height() float64 { return r.YMax - r.YMin }

// Clamp returns the point of r closest to p.
func (r Rect) Clamp(p Vector) Vector {
	return Vector{X: clamp(p.X, r.XMin, r.XMax), Y: clamp(p.Y, r.YMin, r.YMax)}
}

func (c Circle) String() string {
	return fmt.Sprintf("circle(%g,%g r=%g)", c.X, c.Y, c.Radius)
}

func (r Rect) String() string {
	return fmt.Sprintf("rect[%g,%g]x[%g,%g]", r.XMin, r.XMax, r.YMin, r.YMax)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// unknownShape is reached only if a new Shape implementation is added
// without extending the predicate switches.
func unknownShape(s Shape) string {
	return fmt.Sprintf("geom: unsupported shape %T", s)
}
