package world

import "math"

// axis maps coordinates on one grid axis to cell indices. Every index
// decision compares against line(i), the exact value cells use for their
// bounds, so membership never disagrees with Overlap on a grid line.
type axis struct {
	step float64
	end  float64 // width or height
	n    int
}

// line is the coordinate of grid line i. Line n is the far edge itself.
func (ax axis) line(i int) float64 {
	if i == ax.n {
		return ax.end
	}
	return float64(i) * ax.step
}

// index is the cell whose half-open span [line(i), line(i+1)) holds v,
// clamped to [0, n-1]. v == end lands in the last cell.
func (ax axis) index(v float64) int {
	i := int(math.Min(math.Max(math.Floor(v/ax.step), 0), float64(ax.n-1)))
	for i > 0 && ax.line(i) > v {
		i--
	}
	for i < ax.n-1 && ax.line(i+1) <= v {
		i++
	}
	return i
}

// span is the clamped index range of cells whose open interior meets
// (lo, hi). A bound lying exactly on a grid line does not reach past it.
func (ax axis) span(lo, hi float64) (first, last int) {
	first, last = ax.index(lo), ax.index(hi)
	if last > 0 && ax.line(last) >= hi {
		last--
	}
	return min(first, last), last
}

// closed lists the cells whose closed span holds v: one, or two when v lies
// on an interior grid line. Values off the axis give nil.
func (ax axis) closed(v float64) []int {
	if !(v >= 0 && v <= ax.end) {
		return nil
	}
	i := ax.index(v)
	if i > 0 && ax.line(i) == v {
		return []int{i - 1, i}
	}
	return []int{i}
}

// gap is the smallest distance from (lo, hi) to the enclosing grid lines,
// without clamping to the grid.
func (ax axis) gap(lo, hi float64) float64 {
	i := int(math.Floor(lo / ax.step))
	for ax.line(i) > lo {
		i--
	}
	for ax.line(i+1) <= lo {
		i++
	}
	j := int(math.Floor(hi / ax.step))
	for ax.line(j) >= hi {
		j--
	}
	for ax.line(j+1) < hi {
		j++
	}
	return min(lo-ax.line(i), ax.line(j+1)-hi)
}
