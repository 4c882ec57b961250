package world

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/agentgrid/gridindex/internal/core/ecs"
	"github.com/agentgrid/gridindex/internal/geom"
)

// Zone is a fixed rectangle of whole cells. Its cell set and bounds are
// computed on Attach and do not change while attached. A detached zone has
// zero Bounds; Distance and the Is* predicates treat it as absent.
type Zone struct {
	id     ecs.EntityID
	grid   *Grid
	r      IndexRange
	cells  []int // row-major
	bounds geom.Rect
}

// NewZone creates a detached zone spanning r. Indices must be non-negative
// with min <= max on both axes.
func NewZone(r IndexRange) (*Zone, error) {
	if r.XMin < 0 || r.YMin < 0 {
		return nil, fmt.Errorf("new zone %v: negative index: %w", r, ErrInvalidZone)
	}
	if r.empty() {
		return nil, fmt.Errorf("new zone %v: min greater than max: %w", r, ErrInvalidZone)
	}
	return &Zone{r: r}, nil
}

func (z *Zone) Kind() Kind        { return KindZone }
func (z *Zone) ID() ecs.EntityID  { return z.id }
func (z *Zone) Grid() *Grid       { return z.grid }
func (z *Zone) Attached() bool    { return z.grid != nil }
func (z *Zone) Range() IndexRange { return z.r }
func (z *Zone) NX() int           { return z.r.XMax - z.r.XMin + 1 }
func (z *Zone) NY() int           { return z.r.YMax - z.r.YMin + 1 }
func (z *Zone) Shape() geom.Shape { return z.bounds }
func (z *Zone) Bounds() geom.Rect { return z.bounds }
func (z *Zone) String() string    { return "zone" + z.r.String() }

// Attach adds z to g, linking it to every cell it spans.
func (z *Zone) Attach(g *Grid) error {
	if z.grid != nil {
		return fmt.Errorf("attach %v: %w", z, ErrAttached)
	}
	if z.r.XMax >= g.nx || z.r.YMax >= g.ny {
		return fmt.Errorf("attach %v to %dx%d grid: %w", z, g.nx, g.ny, ErrZoneOutsideGrid)
	}
	z.grid = g
	z.id = g.pool.Create()
	g.zones.Set(z.id, z)
	g.zoneIDs.Add(z.id)

	z.cells = g.rectCells(z.r, make([]int, 0, z.NX()*z.NY()))
	for _, i := range z.cells {
		g.cells[i].zones.Add(z.id)
	}
	lo := g.cells[g.index(z.r.XMin, z.r.YMin)].bounds
	hi := g.cells[g.index(z.r.XMax, z.r.YMax)].bounds
	z.bounds = geom.Rect{XMin: lo.XMin, XMax: hi.XMax, YMin: lo.YMin, YMax: hi.YMax}

	g.log.Debug("zone attached",
		zap.Uint32("zone", z.id.Index()),
		zap.Stringer("range", z.r),
	)
	return nil
}

// Detach removes z from its grid.
func (z *Zone) Detach() error {
	g := z.grid
	if g == nil {
		return fmt.Errorf("detach %v: %w", z, ErrDetached)
	}
	for _, i := range z.cells {
		g.cells[i].zones.Delete(z.id)
	}
	g.zoneIDs.Delete(z.id)
	g.registry.Release(z.id)
	g.log.Debug("zone detached", zap.Uint32("zone", z.id.Index()))
	z.grid, z.id, z.cells, z.bounds = nil, 0, nil, geom.Rect{}
	return nil
}

// Cells returns the cells z spans, row by row.
func (z *Zone) Cells() []*Cell {
	if z.grid == nil {
		return nil
	}
	return z.grid.cellPtrs(z.cells)
}

// Layer returns ring level around z. Level 0 is z's own cells.
func (z *Zone) Layer(level int) ([]*Cell, error) {
	if z.grid == nil {
		return nil, fmt.Errorf("layer: %w", ErrDetached)
	}
	return z.grid.Ring(z.r, level), nil
}
