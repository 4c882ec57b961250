package geom

import "sort"

// Shaper is anything with a current shape. Circle and Rect return themselves.
type Shaper interface {
	Shape() Shape
}

func (c Circle) Shape() Shape { return c }
func (r Rect) Shape() Shape   { return r }

// The functions below are brute-force O(n) scans over an explicit candidate
// list. Results keep the candidates' order unless stated otherwise.

// NeighborsFrom returns the candidates whose boundary lies closer than
// maxDistance to target.
func NeighborsFrom[T Shaper](target Shape, maxDistance float64, candidates []T) []T {
	return filter(candidates, func(c T) bool {
		return BoundaryDistance(target, c.Shape()) < maxDistance
	})
}

// NearestFrom returns up to k candidates ordered by boundary distance to
// target. Ties keep candidate order.
func NearestFrom[T Shaper](target Shape, k int, candidates []T) []T {
	if k <= 0 || len(candidates) == 0 {
		return nil
	}
	type ranked struct {
		c T
		d float64
	}
	rs := make([]ranked, len(candidates))
	for i, c := range candidates {
		rs[i] = ranked{c: c, d: BoundaryDistance(target, c.Shape())}
	}
	sort.SliceStable(rs, func(i, j int) bool { return rs[i].d < rs[j].d })
	n := min(k, len(rs))
	out := make([]T, n)
	for i := range out {
		out[i] = rs[i].c
	}
	return out
}

func OverlappingFrom[T Shaper](target Shape, candidates []T) []T {
	return filter(candidates, func(c T) bool { return Overlap(target, c.Shape()) })
}

// WithinFrom returns the candidates that target lies within.
func WithinFrom[T Shaper](target Shape, candidates []T) []T {
	return filter(candidates, func(c T) bool { return Within(target, c.Shape()) })
}

// CentroidWithinFrom returns the candidates that contain target's centroid.
func CentroidWithinFrom[T Shaper](target Shape, candidates []T) []T {
	return filter(candidates, func(c T) bool { return CentroidWithin(target, c.Shape()) })
}

// EnclosingFrom returns the candidates lying within target.
func EnclosingFrom[T Shaper](target Shape, candidates []T) []T {
	return filter(candidates, func(c T) bool { return Within(c.Shape(), target) })
}

// EnclosingCentroidFrom returns the candidates whose centroid lies within target.
func EnclosingCentroidFrom[T Shaper](target Shape, candidates []T) []T {
	return filter(candidates, func(c T) bool { return CentroidWithin(c.Shape(), target) })
}

func filter[T any](in []T, keep func(T) bool) []T {
	var out []T
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
