package world

import (
	"fmt"
	"math"

	"github.com/agentgrid/gridindex/internal/geom"
)

// Proximity queries on actors, cells and zones. Each returns entities of the
// requested kind in discovery order and never includes the entity queried
// from. A nil result with a nil error means nothing matched; for actors it
// also covers the actor lying entirely off the grid.

func (a *Actor) ready(op string, kind Kind) error {
	if err := checkKind(kind); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if a.grid == nil {
		return fmt.Errorf("%s: %w", op, ErrDetached)
	}
	return nil
}

// Neighbors returns the entities of kind whose boundary is closer than
// maxDistance to a's.
func (a *Actor) Neighbors(maxDistance float64, kind Kind) ([]Entity, error) {
	if err := a.ready("neighbors", kind); err != nil {
		return nil, err
	}
	if !a.overlappingGrid || !(maxDistance > 0) {
		return nil, nil
	}
	g := a.grid
	idx := g.rectCells(g.reachIndices(a.x, a.y, a.radius+maxDistance), nil)
	return nonEmpty(filterEntities(g.gather(kind, idx, a, true), func(e Entity) bool {
		return Distance(a, e) < maxDistance
	})), nil
}

// Overlapping returns the entities of kind a overlaps.
func (a *Actor) Overlapping(kind Kind) ([]Entity, error) {
	if err := a.ready("overlapping", kind); err != nil {
		return nil, err
	}
	if !a.overlappingGrid {
		return nil, nil
	}
	g := a.grid
	switch kind {
	case KindCell:
		return g.cellEntities(a.cells.Values()), nil
	case KindZone:
		return nonEmpty(g.gather(kind, a.cells.Values(), a, false)), nil
	}
	// Past the grid edge only straddlers can be met.
	straddlers := !geom.Within(a.circle(), g.Bounds())
	return nonEmpty(filterEntities(g.gather(kind, a.cells.Values(), a, straddlers), func(e Entity) bool {
		return IsOverlapping(a, e)
	})), nil
}

// Within returns the entities of kind that contain a.
func (a *Actor) Within(kind Kind) ([]Entity, error) {
	if err := a.ready("within", kind); err != nil {
		return nil, err
	}
	if !a.overlappingGrid {
		return nil, nil
	}
	g := a.grid
	if kind != KindActor && !geom.Within(a.circle(), g.Bounds()) {
		return nil, nil
	}
	return nonEmpty(filterEntities(g.common(kind, a.cells.Values(), a), func(e Entity) bool {
		return IsWithin(a, e)
	})), nil
}

// CentroidWithin returns the entities of kind that contain a's centre.
func (a *Actor) CentroidWithin(kind Kind) ([]Entity, error) {
	if err := a.ready("centroid within", kind); err != nil {
		return nil, err
	}
	if !a.overlappingGrid {
		return nil, nil
	}
	g := a.grid
	idx := g.centroidCells(a.x, a.y)
	if kind == KindCell {
		return g.cellEntities(idx), nil
	}
	return nonEmpty(filterEntities(g.gather(kind, idx, a, true), func(e Entity) bool {
		return IsCentroidWithin(a, e)
	})), nil
}

// Enclosing returns the entities of kind lying entirely inside a.
func (a *Actor) Enclosing(kind Kind) ([]Entity, error) {
	if err := a.ready("enclosing", kind); err != nil {
		return nil, err
	}
	if !a.overlappingGrid {
		return nil, nil
	}
	return nonEmpty(filterEntities(a.grid.gather(kind, a.cells.Values(), a, false), func(e Entity) bool {
		return IsEnclosing(a, e)
	})), nil
}

// EnclosingCentroid returns the entities of kind whose centre lies inside a.
func (a *Actor) EnclosingCentroid(kind Kind) ([]Entity, error) {
	if err := a.ready("enclosing centroid", kind); err != nil {
		return nil, err
	}
	if !a.overlappingGrid {
		return nil, nil
	}
	// A straddler's centre may sit off the grid, where no cell records it.
	straddlers := !geom.Within(a.circle(), a.grid.Bounds())
	return nonEmpty(filterEntities(a.grid.gather(kind, a.cells.Values(), a, straddlers), func(e Entity) bool {
		return IsEnclosingCentroid(a, e)
	})), nil
}

// neighborReach is how many rings around a region can hold something closer
// than d. Ring L+1 is at least L*step away.
func (g *Grid) neighborReach(d float64) int {
	return int(math.Ceil((d + g.slack) / g.step))
}

// Neighbors returns the entities of kind whose boundary is closer than
// maxDistance to c.
func (c *Cell) Neighbors(maxDistance float64, kind Kind) ([]Entity, error) {
	if err := checkKind(kind); err != nil {
		return nil, fmt.Errorf("neighbors: %w", err)
	}
	if !(maxDistance > 0) {
		return nil, nil
	}
	g := c.grid
	idx := g.rectCells(c.indexRange().Grow(g.neighborReach(maxDistance)), nil)
	return nonEmpty(filterEntities(g.gather(kind, idx, c, true), func(e Entity) bool {
		return Distance(c, e) < maxDistance
	})), nil
}

// Overlapping returns the actors or zones overlapping c. Cells never
// overlap one another.
func (c *Cell) Overlapping(kind Kind) ([]Entity, error) {
	if err := checkKind(kind); err != nil {
		return nil, fmt.Errorf("overlapping: %w", err)
	}
	if kind == KindCell {
		return nil, nil
	}
	return nonEmpty(c.grid.gather(kind, []int{c.index}, c, false)), nil
}

// Within returns the actors or zones that contain c.
func (c *Cell) Within(kind Kind) ([]Entity, error) {
	if err := checkKind(kind); err != nil {
		return nil, fmt.Errorf("within: %w", err)
	}
	return c.local(kind, func(e Entity) bool { return IsWithin(c, e) }), nil
}

// CentroidWithin returns the actors or zones that contain c's centre.
func (c *Cell) CentroidWithin(kind Kind) ([]Entity, error) {
	if err := checkKind(kind); err != nil {
		return nil, fmt.Errorf("centroid within: %w", err)
	}
	return c.local(kind, func(e Entity) bool { return IsCentroidWithin(c, e) }), nil
}

// Enclosing returns the actors or zones lying entirely inside c.
func (c *Cell) Enclosing(kind Kind) ([]Entity, error) {
	if err := checkKind(kind); err != nil {
		return nil, fmt.Errorf("enclosing: %w", err)
	}
	return c.local(kind, func(e Entity) bool { return IsEnclosing(c, e) }), nil
}

// EnclosingCentroid returns the actors or zones whose centre lies inside c.
func (c *Cell) EnclosingCentroid(kind Kind) ([]Entity, error) {
	if err := checkKind(kind); err != nil {
		return nil, fmt.Errorf("enclosing centroid: %w", err)
	}
	return c.local(kind, func(e Entity) bool { return IsEnclosingCentroid(c, e) }), nil
}

// local filters c's own members of kind. Anything that contains c, lies in
// c or shares a centre point with it overlaps c, so no other cell need be
// consulted. Cell-to-cell containment is always empty.
func (c *Cell) local(kind Kind, keep func(Entity) bool) []Entity {
	if kind == KindCell {
		return nil
	}
	return nonEmpty(filterEntities(c.grid.gather(kind, []int{c.index}, c, false), keep))
}

func (z *Zone) ready(op string, kind Kind) error {
	if err := checkKind(kind); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if z.grid == nil {
		return fmt.Errorf("%s: %w", op, ErrDetached)
	}
	return nil
}

// Neighbors returns the entities of kind whose boundary is closer than
// maxDistance to z. z's own cells are at distance zero.
func (z *Zone) Neighbors(maxDistance float64, kind Kind) ([]Entity, error) {
	if err := z.ready("neighbors", kind); err != nil {
		return nil, err
	}
	if !(maxDistance > 0) {
		return nil, nil
	}
	g := z.grid
	idx := g.rectCells(z.r.Grow(g.neighborReach(maxDistance)), nil)
	return nonEmpty(filterEntities(g.gather(kind, idx, z, true), func(e Entity) bool {
		return Distance(z, e) < maxDistance
	})), nil
}

// Overlapping returns z's cells, or the actors or zones sharing any of them.
func (z *Zone) Overlapping(kind Kind) ([]Entity, error) {
	if err := z.ready("overlapping", kind); err != nil {
		return nil, err
	}
	return nonEmpty(z.grid.gather(kind, z.cells, z, false)), nil
}

// Within returns the entities of kind that contain z.
func (z *Zone) Within(kind Kind) ([]Entity, error) {
	if err := z.ready("within", kind); err != nil {
		return nil, err
	}
	es := z.grid.common(kind, z.cells, z)
	if kind == KindActor {
		es = filterEntities(es, func(e Entity) bool { return IsWithin(z, e) })
	}
	return nonEmpty(es), nil
}

// CentroidWithin returns the entities of kind that contain z's centre.
func (z *Zone) CentroidWithin(kind Kind) ([]Entity, error) {
	if err := z.ready("centroid within", kind); err != nil {
		return nil, err
	}
	g := z.grid
	p := z.bounds.Centroid()
	idx := g.centroidCells(p.X, p.Y)
	if kind == KindCell {
		return g.cellEntities(idx), nil
	}
	return nonEmpty(filterEntities(g.gather(kind, idx, z, false), func(e Entity) bool {
		return IsCentroidWithin(z, e)
	})), nil
}

// Enclosing returns the entities of kind lying entirely inside z. Every
// cell of z qualifies.
func (z *Zone) Enclosing(kind Kind) ([]Entity, error) {
	if err := z.ready("enclosing", kind); err != nil {
		return nil, err
	}
	if kind == KindCell {
		return z.grid.cellEntities(z.cells), nil
	}
	return nonEmpty(filterEntities(z.grid.gather(kind, z.cells, z, false), func(e Entity) bool {
		return IsEnclosing(z, e)
	})), nil
}

// EnclosingCentroid returns the entities of kind whose centre lies inside z.
func (z *Zone) EnclosingCentroid(kind Kind) ([]Entity, error) {
	if err := z.ready("enclosing centroid", kind); err != nil {
		return nil, err
	}
	if kind == KindCell {
		return z.grid.cellEntities(z.cells), nil
	}
	return nonEmpty(filterEntities(z.grid.gather(kind, z.cells, z, false), func(e Entity) bool {
		return IsEnclosingCentroid(z, e)
	})), nil
}

func nonEmpty(es []Entity) []Entity {
	if len(es) == 0 {
		return nil
	}
	return es
}
