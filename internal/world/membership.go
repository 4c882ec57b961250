package world

import (
	"github.com/agentgrid/gridindex/internal/core/event"
	"github.com/agentgrid/gridindex/internal/geom"
)

// sync brings a's cell membership up to date with its circle. Only cells in
// the circle's bounding box are tested, so the cost follows the actor's size
// rather than the grid's.
func (a *Actor) sync() {
	g := a.grid
	c := a.circle()

	if !geom.Overlap(c, g.Bounds()) {
		if a.overlappingGrid {
			a.emitGridChange(false)
		}
		a.overlappingGrid = false
		g.straddling.Delete(a.id)
		a.unlinkAll()
		return
	}
	if !a.overlappingGrid {
		a.overlappingGrid = true
		a.emitGridChange(true)
	}
	if geom.Within(c, g.Bounds()) {
		g.straddling.Delete(a.id)
	} else {
		g.straddling.Add(a.id)
	}

	r := g.reachIndices(a.x, a.y, a.radius)
	if r.XMin == r.XMax && r.YMin == r.YMax &&
		a.cells.Len() == 1 && a.cells.Has(g.index(r.XMin, r.YMin)) {
		return
	}

	a.cells.Each(func(i int) bool {
		if cell := &g.cells[i]; !r.Contains(cell.xi, cell.yi) {
			a.unlink(i)
		}
		return true
	})
	for yi := r.YMin; yi <= r.YMax; yi++ {
		for xi := r.XMin; xi <= r.XMax; xi++ {
			i := g.index(xi, yi)
			had := a.cells.Has(i)
			has := geom.Overlap(c, g.cells[i].bounds)
			switch {
			case had && !has:
				a.unlink(i)
			case !had && has:
				a.link(i)
			}
		}
	}
}

func (a *Actor) link(i int) {
	a.cells.Add(i)
	a.grid.cells[i].actors.Add(a.id)
	event.Emit(a.grid.bus, event.CellEntered{Actor: a.id, Cell: i})
}

func (a *Actor) unlink(i int) {
	a.cells.Delete(i)
	a.grid.cells[i].actors.Delete(a.id)
	event.Emit(a.grid.bus, event.CellExited{Actor: a.id, Cell: i})
}

func (a *Actor) unlinkAll() {
	a.cells.Each(func(i int) bool {
		a.unlink(i)
		return true
	})
}
