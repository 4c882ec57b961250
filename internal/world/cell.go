package world

import (
	"github.com/agentgrid/gridindex/internal/core/ecs"
	"github.com/agentgrid/gridindex/internal/core/set"
	"github.com/agentgrid/gridindex/internal/geom"
)

// Cell is one square of the grid. Its geometry is fixed; only the sets of
// overlapping actors and containing zones change.
type Cell struct {
	grid   *Grid
	index  int
	xi, yi int
	bounds geom.Rect
	actors *set.Ordered[ecs.EntityID]
	zones  *set.Ordered[ecs.EntityID]
}

func (c *Cell) Kind() Kind        { return KindCell }
func (c *Cell) Shape() geom.Shape { return c.bounds }
func (c *Cell) Bounds() geom.Rect { return c.bounds }
func (c *Cell) Index() int        { return c.index }
func (c *Cell) XIndex() int       { return c.xi }
func (c *Cell) YIndex() int       { return c.yi }

// Checker is 0 or 1 in a checkerboard pattern over the grid.
func (c *Cell) Checker() int { return (c.xi % 2) ^ (c.yi % 2) }

// Actors returns the actors currently overlapping c.
func (c *Cell) Actors() []*Actor {
	out := make([]*Actor, 0, c.actors.Len())
	c.actors.Each(func(id ecs.EntityID) bool {
		out = append(out, c.grid.actor(id))
		return true
	})
	return out
}

// Zones returns the zones containing c.
func (c *Cell) Zones() []*Zone {
	out := make([]*Zone, 0, c.zones.Len())
	c.zones.Each(func(id ecs.EntityID) bool {
		out = append(out, c.grid.zone(id))
		return true
	})
	return out
}

func (c *Cell) String() string { return "cell" + c.indexRange().String() }

func (c *Cell) indexRange() IndexRange {
	return IndexRange{XMin: c.xi, XMax: c.xi, YMin: c.yi, YMax: c.yi}
}

// Row 0 is north; the neighbour accessors return nil past the grid edge.

func (c *Cell) North() *Cell     { return c.grid.CellAt(c.xi, c.yi-1) }
func (c *Cell) NorthEast() *Cell { return c.grid.CellAt(c.xi+1, c.yi-1) }
func (c *Cell) East() *Cell      { return c.grid.CellAt(c.xi+1, c.yi) }
func (c *Cell) SouthEast() *Cell { return c.grid.CellAt(c.xi+1, c.yi+1) }
func (c *Cell) South() *Cell     { return c.grid.CellAt(c.xi, c.yi+1) }
func (c *Cell) SouthWest() *Cell { return c.grid.CellAt(c.xi-1, c.yi+1) }
func (c *Cell) West() *Cell      { return c.grid.CellAt(c.xi-1, c.yi) }
func (c *Cell) NorthWest() *Cell { return c.grid.CellAt(c.xi-1, c.yi-1) }

// Compass holds the eight neighbours of a cell.
type Compass struct {
	North, NorthEast, East, SouthEast *Cell
	South, SouthWest, West, NorthWest *Cell
}

// MainCompass holds the four edge-adjacent neighbours of a cell.
type MainCompass struct {
	North, East, South, West *Cell
}

// CornerCompass holds the four diagonal neighbours of a cell.
type CornerCompass struct {
	NorthEast, SouthEast, SouthWest, NorthWest *Cell
}

func (c *Cell) Compass() Compass {
	return Compass{
		North:     c.North(),
		NorthEast: c.NorthEast(),
		East:      c.East(),
		SouthEast: c.SouthEast(),
		South:     c.South(),
		SouthWest: c.SouthWest(),
		West:      c.West(),
		NorthWest: c.NorthWest(),
	}
}

func (c *Cell) CompassMain() MainCompass {
	return MainCompass{North: c.North(), East: c.East(), South: c.South(), West: c.West()}
}

func (c *Cell) CompassCorners() CornerCompass {
	return CornerCompass{
		NorthEast: c.NorthEast(),
		SouthEast: c.SouthEast(),
		SouthWest: c.SouthWest(),
		NorthWest: c.NorthWest(),
	}
}

// Layer returns the ring of cells at Chebyshev distance level from c.
// Level 0 is c itself.
func (c *Cell) Layer(level int) []*Cell {
	return c.grid.Ring(c.indexRange(), level)
}

// LayerMain returns the cells level steps north, east, south and west of c,
// skipping any outside the grid. Levels 0 and -1 give c itself.
func (c *Cell) LayerMain(level int) []*Cell {
	switch {
	case level == 0 || level == -1:
		return []*Cell{c}
	case level < 0:
		return nil
	}
	var out []*Cell
	for _, n := range []*Cell{
		c.grid.CellAt(c.xi, c.yi-level),
		c.grid.CellAt(c.xi+level, c.yi),
		c.grid.CellAt(c.xi, c.yi+level),
		c.grid.CellAt(c.xi-level, c.yi),
	} {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}
