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

// moveEpsilon is the smallest coordinate or radius change that triggers a
// membership update.
const moveEpsilon = 1e-10

// Actor is a mobile circle. While attached, the set of cells it overlaps is
// kept exact after every SetXY or SetRadius.
type Actor struct {
	id   ecs.EntityID
	grid *Grid

	x, y, radius float64
	wrapX, wrapY bool

	cells           *set.Ordered[int] // indices of overlapped cells
	overlappingGrid bool
}

// NewActor creates a detached actor.
func NewActor(x, y, radius float64) (*Actor, error) {
	if !(radius > 0) {
		return nil, fmt.Errorf("new actor: radius %g: %w", radius, ErrInvalidRadius)
	}
	return &Actor{x: x, y: y, radius: radius, cells: set.New[int]()}, nil
}

func (a *Actor) Kind() Kind { return KindActor }

func (a *Actor) Shape() geom.Shape { return a.circle() }

func (a *Actor) circle() geom.Circle {
	return geom.Circle{X: a.x, Y: a.y, Radius: a.radius}
}

func (a *Actor) ID() ecs.EntityID      { return a.id }
func (a *Actor) Grid() *Grid           { return a.grid }
func (a *Actor) Attached() bool        { return a.grid != nil }
func (a *Actor) X() float64            { return a.x }
func (a *Actor) Y() float64            { return a.y }
func (a *Actor) Radius() float64       { return a.radius }
func (a *Actor) Position() geom.Vector { return geom.Vector{X: a.x, Y: a.y} }
func (a *Actor) OverlappingGrid() bool { return a.overlappingGrid }
func (a *Actor) Wrap() (x, y bool)     { return a.wrapX, a.wrapY }

func (a *Actor) String() string {
	return fmt.Sprintf("actor#%d(%g,%g r=%g)", a.id.Index(), a.x, a.y, a.radius)
}

// Attach adds a to g and computes its initial membership.
func (a *Actor) Attach(g *Grid) error {
	if a.grid != nil {
		return fmt.Errorf("attach %v: %w", a, ErrAttached)
	}
	a.grid = g
	a.id = g.pool.Create()
	g.actors.Set(a.id, a)
	g.actorIDs.Add(a.id)
	a.x, a.y = a.wrapped(a.x, a.y)
	a.sync()
	g.log.Debug("actor attached",
		zap.Uint32("actor", a.id.Index()),
		zap.Int("cells", a.cells.Len()),
	)
	return nil
}

// Detach removes a from its grid and from every cell.
func (a *Actor) Detach() error {
	g := a.grid
	if g == nil {
		return fmt.Errorf("detach %v: %w", a, ErrDetached)
	}
	a.unlinkAll()
	a.overlappingGrid = false
	g.straddling.Delete(a.id)
	g.actorIDs.Delete(a.id)
	g.registry.Release(a.id)
	g.log.Debug("actor detached", zap.Uint32("actor", a.id.Index()))
	a.grid = nil
	a.id = 0
	return nil
}

// SetXY moves a. Coordinates wrap if wrapping is enabled for that axis.
// Membership is only recomputed when the position actually changes.
func (a *Actor) SetXY(x, y float64) {
	if a.grid == nil {
		a.x, a.y = x, y
		return
	}
	x, y = a.wrapped(x, y)
	moved := !roughlyEqual(x, a.x) || !roughlyEqual(y, a.y)
	a.x, a.y = x, y
	if moved {
		a.sync()
	}
}

// Move displaces a by v.
func (a *Actor) Move(v geom.Vector) { a.SetXY(a.x+v.X, a.y+v.Y) }

func (a *Actor) SetRadius(r float64) error {
	if !(r > 0) {
		return fmt.Errorf("set radius %g: %w", r, ErrInvalidRadius)
	}
	changed := !roughlyEqual(r, a.radius)
	a.radius = r
	if changed && a.grid != nil {
		a.sync()
	}
	return nil
}

// SetWrap enables toroidal wrapping per axis. Takes effect on the next move.
func (a *Actor) SetWrap(x, y bool) { a.wrapX, a.wrapY = x, y }

func (a *Actor) wrapped(x, y float64) (float64, float64) {
	if a.wrapX {
		x = moduloShift(x, a.grid.width)
	}
	if a.wrapY {
		y = moduloShift(y, a.grid.height)
	}
	return x, y
}

// Cells returns the cells a overlaps, or nil when detached or off the grid.
func (a *Actor) Cells() []*Cell {
	if a.grid == nil {
		return nil
	}
	return a.grid.cellPtrs(a.cells.Values())
}

// CellOfCentroid is the cell containing a's centre, or nil off the grid.
func (a *Actor) CellOfCentroid() (*Cell, error) {
	if a.grid == nil {
		return nil, fmt.Errorf("cell of centroid: %w", ErrDetached)
	}
	return a.grid.CellOf(a.x, a.y), nil
}

// bbox is the clamped cell index range of a's bounding box.
func (a *Actor) bbox() IndexRange { return a.grid.bboxIndices(a.x, a.y, a.radius) }

// Layer returns ring level around the cells spanned by a's bounding box.
// Level 0 is every cell of the box. It returns nil when a is off the grid.
func (a *Actor) Layer(level int) ([]*Cell, error) {
	if a.grid == nil {
		return nil, fmt.Errorf("layer: %w", ErrDetached)
	}
	if !a.overlappingGrid {
		return nil, nil
	}
	return a.grid.Ring(a.bbox(), level), nil
}

// Distance is the boundary distance from a to e.
func (a *Actor) Distance(e Entity) float64 { return Distance(a, e) }

// InsideDistance is the signed clearance of a inside e.
func (a *Actor) InsideDistance(e Entity) float64 {
	if !placed(e) {
		return math.Inf(-1)
	}
	return geom.InsideDistance(a.circle(), e.Shape())
}

func (a *Actor) IsOverlapping(e Entity) bool       { return IsOverlapping(a, e) }
func (a *Actor) IsWithin(e Entity) bool            { return IsWithin(a, e) }
func (a *Actor) IsCentroidWithin(e Entity) bool    { return IsCentroidWithin(a, e) }
func (a *Actor) IsEnclosing(e Entity) bool         { return IsEnclosing(a, e) }
func (a *Actor) IsEnclosingCentroid(e Entity) bool { return IsEnclosingCentroid(a, e) }

// The *From methods scan an explicit candidate list instead of the grid.
// Like the grid queries they never return a itself, and detached zones are
// skipped.

func (a *Actor) others(candidates []Entity) []Entity {
	return filterEntities(candidates, func(e Entity) bool { return e != Entity(a) && placed(e) })
}

func (a *Actor) NearestFrom(k int, candidates []Entity) ([]Entity, error) {
	if k < 1 {
		return nil, fmt.Errorf("nearest from: k=%d: %w", k, ErrInvalidK)
	}
	return geom.NearestFrom(a.circle(), k, a.others(candidates)), nil
}

func (a *Actor) NeighborsFrom(maxDistance float64, candidates []Entity) []Entity {
	return geom.NeighborsFrom(a.circle(), maxDistance, a.others(candidates))
}

func (a *Actor) OverlappingFrom(candidates []Entity) []Entity {
	return geom.OverlappingFrom(a.circle(), a.others(candidates))
}

func (a *Actor) WithinFrom(candidates []Entity) []Entity {
	return geom.WithinFrom(a.circle(), a.others(candidates))
}

func (a *Actor) CentroidWithinFrom(candidates []Entity) []Entity {
	return geom.CentroidWithinFrom(a.circle(), a.others(candidates))
}

func (a *Actor) EnclosingFrom(candidates []Entity) []Entity {
	return geom.EnclosingFrom(a.circle(), a.others(candidates))
}

func (a *Actor) EnclosingCentroidFrom(candidates []Entity) []Entity {
	return geom.EnclosingCentroidFrom(a.circle(), a.others(candidates))
}

func roughlyEqual(u, v float64) bool { return math.Abs(u-v) < moveEpsilon }

// moduloShift maps p into [0, q).
func moduloShift(p, q float64) float64 {
	if p < 0 || p >= q {
		return p - math.Floor(p/q)*q
	}
	return p
}

func (a *Actor) emitGridChange(entered bool) {
	g := a.grid
	if entered {
		g.log.Debug("actor entered grid", zap.Uint32("actor", a.id.Index()))
		event.Emit(g.bus, event.GridEntered{Actor: a.id})
		return
	}
	g.log.Debug("actor left grid", zap.Uint32("actor", a.id.Index()))
	event.Emit(g.bus, event.GridLeft{Actor: a.id})
}
