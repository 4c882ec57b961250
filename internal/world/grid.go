package world

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/agentgrid/gridindex/internal/core/ecs"
	"github.com/agentgrid/gridindex/internal/core/event"
	"github.com/agentgrid/gridindex/internal/core/set"
	"github.com/agentgrid/gridindex/internal/geom"
)

// Grid is a uniform decomposition of [0,width]×[0,height] into square cells
// of side step, plus the actors and zones attached to it.
//
// A Grid is not safe for concurrent use: all mutations and queries must come
// from one goroutine, one operation at a time.
type Grid struct {
	width, height float64
	step          float64
	nx, ny        int
	xa, ya        axis
	slack         float64 // tolerance for float rounding when widening scans
	cells         []Cell  // row-major, index = yi*nx + xi

	pool     *ecs.EntityPool
	registry *ecs.Registry
	actors   *ecs.Store[Actor]
	zones    *ecs.Store[Zone]

	actorIDs   *set.Ordered[ecs.EntityID] // attachment order
	zoneIDs    *set.Ordered[ecs.EntityID]
	straddling *set.Ordered[ecs.EntityID] // actors overlapping the grid but not within it

	log        *zap.Logger
	bus        *event.Bus
	bruteBelow int
}

// Option configures a Grid.
type Option func(*Grid)

func WithLogger(log *zap.Logger) Option {
	return func(g *Grid) {
		if log != nil {
			g.log = log
		}
	}
}

// WithEventBus makes the grid emit CellEntered, CellExited, GridLeft and
// GridEntered events into bus.
func WithEventBus(bus *event.Bus) Option {
	return func(g *Grid) { g.bus = bus }
}

// WithBruteForceBelow makes Nearest sort every eligible entity directly when
// fewer than n entities of the requested kind exist.
func WithBruteForceBelow(n int) Option {
	return func(g *Grid) { g.bruteBelow = n }
}

// NewGrid builds a grid covering [0,width]×[0,height]. width/step and
// height/step must both be positive integers.
func NewGrid(width, height, step float64, opts ...Option) (*Grid, error) {
	if !(step > 0) || !(width > 0) || !(height > 0) {
		return nil, fmt.Errorf("width %g, height %g, step %g: %w", width, height, step, ErrInvalidGrid)
	}
	fx, fy := width/step, height/step
	if fx != math.Trunc(fx) || fy != math.Trunc(fy) || math.IsInf(fx, 0) || math.IsInf(fy, 0) {
		return nil, fmt.Errorf("step %g does not divide %gx%g: %w", step, width, height, ErrInvalidGrid)
	}

	g := &Grid{
		width:      width,
		height:     height,
		step:       step,
		nx:         int(fx),
		ny:         int(fy),
		xa:         axis{step: step, end: width, n: int(fx)},
		ya:         axis{step: step, end: height, n: int(fy)},
		slack:      step*1e-9 + math.Max(width, height)*1e-12,
		pool:       ecs.NewEntityPool(),
		actors:     ecs.NewStore[Actor](),
		zones:      ecs.NewStore[Zone](),
		actorIDs:   set.New[ecs.EntityID](),
		zoneIDs:    set.New[ecs.EntityID](),
		straddling: set.New[ecs.EntityID](),
		log:        zap.NewNop(),
	}
	g.registry = ecs.NewRegistry(g.pool)
	g.registry.Register(g.actors)
	g.registry.Register(g.zones)
	for _, opt := range opts {
		opt(g)
	}

	g.cells = make([]Cell, g.nx*g.ny)
	for yi := 0; yi < g.ny; yi++ {
		for xi := 0; xi < g.nx; xi++ {
			i := yi*g.nx + xi
			g.cells[i] = Cell{
				grid:  g,
				index: i,
				xi:    xi,
				yi:    yi,
				bounds: geom.Rect{
					XMin: g.xa.line(xi),
					XMax: g.xa.line(xi + 1),
					YMin: g.ya.line(yi),
					YMax: g.ya.line(yi + 1),
				},
				actors: set.New[ecs.EntityID](),
				zones:  set.New[ecs.EntityID](),
			}
		}
	}

	g.log.Debug("grid built",
		zap.Int("nx", g.nx),
		zap.Int("ny", g.ny),
		zap.Float64("step", step),
	)
	return g, nil
}

func (g *Grid) Width() float64  { return g.width }
func (g *Grid) Height() float64 { return g.height }
func (g *Grid) Step() float64   { return g.step }
func (g *Grid) NX() int         { return g.nx }
func (g *Grid) NY() int         { return g.ny }

// Bounds is the rectangle the grid covers.
func (g *Grid) Bounds() geom.Rect {
	return geom.Rect{XMax: g.width, YMax: g.height}
}

// Shape lets the grid be used wherever a geom.Shaper is accepted.
func (g *Grid) Shape() geom.Shape { return g.Bounds() }

// Extent is the index range of every cell.
func (g *Grid) Extent() IndexRange {
	return IndexRange{XMax: g.nx - 1, YMax: g.ny - 1}
}

// CellAt returns the cell at column xi, row yi, or nil outside the grid.
func (g *Grid) CellAt(xi, yi int) *Cell {
	if xi < 0 || xi >= g.nx || yi < 0 || yi >= g.ny {
		return nil
	}
	return &g.cells[yi*g.nx+xi]
}

// CellAtIndex returns the cell with row-major index i, or nil.
func (g *Grid) CellAtIndex(i int) *Cell {
	if i < 0 || i >= len(g.cells) {
		return nil
	}
	return &g.cells[i]
}

// CellOf returns the cell containing point (x, y). Points on an interior
// grid line belong to the cell on their right/below; points on the far
// edges belong to the last column/row. Points outside the grid give nil.
func (g *Grid) CellOf(x, y float64) *Cell {
	if !(x >= 0 && x <= g.width && y >= 0 && y <= g.height) {
		return nil
	}
	return g.CellAt(g.xa.index(x), g.ya.index(y))
}

// CellsInRect returns the cells in r clipped to the grid, row by row. A range
// that is inverted or entirely outside the grid gives nil.
func (g *Grid) CellsInRect(r IndexRange) []*Cell {
	return g.cellPtrs(g.rectCells(r, nil))
}

// CellsInCircle returns the cells belonging to c under mode, in row-major
// order.
func (g *Grid) CellsInCircle(c geom.Circle, mode Containment) ([]*Cell, error) {
	var keep func(geom.Rect) bool
	switch mode {
	case ContainWithin:
		keep = func(r geom.Rect) bool { return geom.Within(r, c) }
	case ContainOverlap:
		keep = func(geom.Rect) bool { return true }
	case ContainCentroid:
		keep = func(r geom.Rect) bool { return geom.CentroidWithin(r, c) }
	default:
		return nil, fmt.Errorf("cells in circle: %v: %w", mode, ErrInvalidContainment)
	}
	if !(c.Radius > 0) {
		return nil, fmt.Errorf("cells in circle: radius %g: %w", c.Radius, ErrInvalidRadius)
	}
	if !geom.Overlap(c, g.Bounds()) {
		return nil, nil
	}
	var out []*Cell
	for _, i := range g.rectCells(g.reachIndices(c.X, c.Y, c.Radius), nil) {
		b := g.cells[i].bounds
		if geom.Overlap(c, b) && keep(b) {
			out = append(out, &g.cells[i])
		}
	}
	return out, nil
}

// Layer returns rings of the whole grid counted inward: -1 is the outer
// ring, -2 the ring inside it, and so on. Level 0 is every cell; positive
// levels are empty.
func (g *Grid) Layer(level int) []*Cell {
	if level > 0 {
		return nil
	}
	return g.Ring(g.Extent(), level)
}

// Ring returns the cells of ring level around r; see ringCells.
func (g *Grid) Ring(r IndexRange, level int) []*Cell {
	return g.cellPtrs(g.ringCells(r, level, nil))
}

// Actors returns the attached actors in attachment order.
func (g *Grid) Actors() []*Actor {
	out := make([]*Actor, 0, g.actorIDs.Len())
	g.actorIDs.Each(func(id ecs.EntityID) bool {
		out = append(out, g.actor(id))
		return true
	})
	return out
}

// Zones returns the attached zones in attachment order.
func (g *Grid) Zones() []*Zone {
	out := make([]*Zone, 0, g.zoneIDs.Len())
	g.zoneIDs.Each(func(id ecs.EntityID) bool {
		out = append(out, g.zone(id))
		return true
	})
	return out
}

// Actor resolves an actor ID. Stale IDs resolve to nil.
func (g *Grid) Actor(id ecs.EntityID) *Actor {
	if !g.pool.Alive(id) {
		return nil
	}
	return g.actor(id)
}

// Zone resolves a zone ID. Stale IDs resolve to nil.
func (g *Grid) Zone(id ecs.EntityID) *Zone {
	if !g.pool.Alive(id) {
		return nil
	}
	return g.zone(id)
}

// Register ties a per-entity store to the grid: detaching an actor or zone
// also removes its entry from store.
func (g *Grid) Register(store ecs.Removable) { g.registry.Register(store) }

func (g *Grid) actor(id ecs.EntityID) *Actor {
	a, _ := g.actors.Get(id)
	return a
}

func (g *Grid) zone(id ecs.EntityID) *Zone {
	z, _ := g.zones.Get(id)
	return z
}

func (g *Grid) index(xi, yi int) int { return yi*g.nx + xi }

// bboxIndices is the index range of cells overlapped by the bounding box of
// the circle at (x, y) with radius d, clamped to the grid. A box edge lying
// exactly on a grid line does not reach into the next cell.
func (g *Grid) bboxIndices(x, y, d float64) IndexRange {
	var r IndexRange
	r.XMin, r.XMax = g.xa.span(x-d, x+d)
	r.YMin, r.YMax = g.ya.span(y-d, y+d)
	return r
}

// reachIndices is bboxIndices widened by the rounding slack. Callers test
// each cell in it exactly, so a box edge within rounding of a grid line
// must not drop the cell beyond.
func (g *Grid) reachIndices(x, y, d float64) IndexRange {
	return g.bboxIndices(x, y, d+g.slack)
}

// edgeMargin is the smallest gap between c and the edges of its unclamped
// cell bounding box, less the rounding slack. Every cell outside that box
// is at least this far from c.
func (g *Grid) edgeMargin(c geom.Circle) float64 {
	m := min(
		g.xa.gap(c.X-c.Radius, c.X+c.Radius),
		g.ya.gap(c.Y-c.Radius, c.Y+c.Radius),
	)
	return math.Max(m-g.slack, 0)
}

func (g *Grid) cellPtrs(idx []int) []*Cell {
	if len(idx) == 0 {
		return nil
	}
	out := make([]*Cell, len(idx))
	for i, ci := range idx {
		out[i] = &g.cells[ci]
	}
	return out
}

func (g *Grid) cellEntities(idx []int) []Entity {
	if len(idx) == 0 {
		return nil
	}
	out := make([]Entity, len(idx))
	for i, ci := range idx {
		out[i] = &g.cells[ci]
	}
	return out
}

// population is the number of entities of kind k attached to the grid.
func (g *Grid) population(k Kind) int {
	switch k {
	case KindCell:
		return len(g.cells)
	case KindActor:
		return g.actorIDs.Len()
	default:
		return g.zoneIDs.Len()
	}
}
