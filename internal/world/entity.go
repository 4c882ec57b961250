package world

import (
	"math"

	"github.com/agentgrid/gridindex/internal/geom"
)

// Entity is anything the grid can return from a proximity query: *Cell,
// *Actor or *Zone.
type Entity interface {
	geom.Shaper
	Kind() Kind
}

// AcceptFunc decides whether candidate may be returned by a Nearest query
// issued from ref. A nil AcceptFunc accepts everything.
type AcceptFunc func(candidate, ref Entity) bool

// As keeps the entities of concrete type T, preserving order.
//
//	actors := world.As[*world.Actor](res)
func As[T Entity](es []Entity) []T {
	out := make([]T, 0, len(es))
	for _, e := range es {
		if t, ok := e.(T); ok {
			out = append(out, t)
		}
	}
	return out
}

// placed reports whether e has a shape to compare. A zone only has bounds
// while attached; a detached zone matches nothing and is infinitely far.
func placed(e Entity) bool {
	if z, ok := e.(*Zone); ok {
		return z.Attached()
	}
	return true
}

func both(a, b Entity) bool { return placed(a) && placed(b) }

// Distance is the boundary distance between two entities.
func Distance(a, b Entity) float64 {
	if !both(a, b) {
		return math.Inf(1)
	}
	return geom.BoundaryDistance(a.Shape(), b.Shape())
}

func CentroidDistance(a, b Entity) float64 {
	if !both(a, b) {
		return math.Inf(1)
	}
	return geom.CentroidDistance(a.Shape(), b.Shape())
}

func IsOverlapping(a, b Entity) bool { return both(a, b) && geom.Overlap(a.Shape(), b.Shape()) }

// IsWithin reports whether a lies entirely inside b.
func IsWithin(a, b Entity) bool { return both(a, b) && geom.Within(a.Shape(), b.Shape()) }

func IsCentroidWithin(a, b Entity) bool {
	return both(a, b) && geom.CentroidWithin(a.Shape(), b.Shape())
}

// IsEnclosing reports whether b lies entirely inside a.
func IsEnclosing(a, b Entity) bool { return both(a, b) && geom.Within(b.Shape(), a.Shape()) }

func IsEnclosingCentroid(a, b Entity) bool {
	return both(a, b) && geom.CentroidWithin(b.Shape(), a.Shape())
}

func toEntities[T Entity](ts []T) []Entity {
	if len(ts) == 0 {
		return nil
	}
	out := make([]Entity, len(ts))
	for i, t := range ts {
		out[i] = t
	}
	return out
}

func filterEntities(es []Entity, keep func(Entity) bool) []Entity {
	var out []Entity
	for _, e := range es {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}
