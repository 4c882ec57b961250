package world

import "fmt"

// IndexRange is an inclusive rectangle of cell indices.
type IndexRange struct {
	XMin, XMax int
	YMin, YMax int
}

func (r IndexRange) String() string {
	return fmt.Sprintf("[%d,%d]x[%d,%d]", r.XMin, r.XMax, r.YMin, r.YMax)
}

func (r IndexRange) Contains(xi, yi int) bool {
	return xi >= r.XMin && xi <= r.XMax && yi >= r.YMin && yi <= r.YMax
}

// Grow expands r by n cells on every side; negative n shrinks it.
func (r IndexRange) Grow(n int) IndexRange {
	return IndexRange{XMin: r.XMin - n, XMax: r.XMax + n, YMin: r.YMin - n, YMax: r.YMax + n}
}

func (r IndexRange) empty() bool { return r.XMin > r.XMax || r.YMin > r.YMax }

func (g *Grid) clip(r IndexRange) IndexRange {
	return IndexRange{
		XMin: max(r.XMin, 0),
		XMax: min(r.XMax, g.nx-1),
		YMin: max(r.YMin, 0),
		YMax: min(r.YMax, g.ny-1),
	}
}

// rectCells appends the indices of the cells in r clipped to the grid, row
// by row.
func (g *Grid) rectCells(r IndexRange, dst []int) []int {
	c := g.clip(r)
	if r.empty() || c.empty() {
		return dst
	}
	for yi := c.YMin; yi <= c.YMax; yi++ {
		for xi := c.XMin; xi <= c.XMax; xi++ {
			dst = append(dst, g.index(xi, yi))
		}
	}
	return dst
}

// ringCells appends the cells of ring level around r.
//
// Level 0 is r itself. Level ℓ > 0 is the ring of cells at Chebyshev
// distance ℓ outside r. Level ℓ < 0 is the perimeter of r shrunk by -ℓ-1,
// so -1 is r's own outer ring.
//
// The ring is walked top edge left to right, right edge top to bottom,
// bottom edge right to left, then left edge bottom to top. Edges lying
// outside the grid are skipped and the rest are clipped, so each cell
// appears once. A ring wholly outside the grid, or one whose bounds cross,
// is empty.
func (g *Grid) ringCells(r IndexRange, level int, dst []int) []int {
	if level == 0 {
		return g.rectCells(r, dst)
	}
	if level < 0 {
		level++
	}
	ring := r.Grow(level)
	if ring.empty() {
		return dst
	}
	c := g.clip(ring)
	if c.empty() {
		return dst
	}
	xs, xe, ys, ye := ring.XMin, ring.XMax, ring.YMin, ring.YMax

	if ys >= 0 {
		for xi := c.XMin; xi <= c.XMax; xi++ {
			dst = append(dst, g.index(xi, ys))
		}
	}
	if xe < g.nx {
		for yi := max(ys+1, c.YMin); yi <= c.YMax; yi++ {
			dst = append(dst, g.index(xe, yi))
		}
	}
	if ye < g.ny && ye > ys {
		for xi := min(xe-1, c.XMax); xi >= c.XMin; xi-- {
			dst = append(dst, g.index(xi, ye))
		}
	}
	if xs >= 0 && xs < xe {
		for yi := min(ye-1, c.YMax); yi >= max(ys+1, c.YMin); yi-- {
			dst = append(dst, g.index(xs, yi))
		}
	}
	return dst
}
