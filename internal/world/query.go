package world

import (
	"github.com/agentgrid/gridindex/internal/core/ecs"
	"github.com/agentgrid/gridindex/internal/core/set"
)

// members is the ID set of kind k held by cell i. k must be KindActor or
// KindZone.
func (g *Grid) members(k Kind, i int) *set.Ordered[ecs.EntityID] {
	if k == KindActor {
		return g.cells[i].actors
	}
	return g.cells[i].zones
}

// resolve maps IDs of kind k to entities, dropping skip.
func (g *Grid) resolve(k Kind, ids *set.Ordered[ecs.EntityID], skip ecs.EntityID) []Entity {
	if ids.Len() == 0 {
		return nil
	}
	out := make([]Entity, 0, ids.Len())
	ids.Each(func(id ecs.EntityID) bool {
		if id == skip {
			return true
		}
		if k == KindActor {
			out = append(out, g.actor(id))
		} else {
			out = append(out, g.zone(id))
		}
		return true
	})
	return out
}

// gather returns the entities of kind k found in cells idx, in discovery
// order and without duplicates. Cells are returned as themselves. self is
// never part of the result. With straddlers set, actors that overlap the
// grid without lying inside it are added after the cell members.
func (g *Grid) gather(k Kind, idx []int, self Entity, straddlers bool) []Entity {
	if k == KindCell {
		out := make([]Entity, 0, len(idx))
		for _, i := range idx {
			if c := &g.cells[i]; Entity(c) != self {
				out = append(out, c)
			}
		}
		return out
	}
	ids := set.New[ecs.EntityID]()
	for _, i := range idx {
		g.members(k, i).Each(func(id ecs.EntityID) bool {
			ids.Add(id)
			return true
		})
	}
	if straddlers && k == KindActor {
		ids = ids.Union(g.straddling)
	}
	return g.resolve(k, ids, idOf(self))
}

// common returns the entities of kind k present in every cell of idx. For
// KindCell it is the single cell when idx has length one.
func (g *Grid) common(k Kind, idx []int, self Entity) []Entity {
	if len(idx) == 0 {
		return nil
	}
	if k == KindCell {
		if len(idx) == 1 && Entity(&g.cells[idx[0]]) != self {
			return []Entity{&g.cells[idx[0]]}
		}
		return nil
	}
	ids := g.members(k, idx[0]).Copy()
	for _, i := range idx[1:] {
		if ids.Len() == 0 {
			break
		}
		ids = ids.Intersection(g.members(k, i))
	}
	return g.resolve(k, ids, idOf(self))
}

// centroidCells returns the cells whose closed bounds contain (x, y): one
// cell, two on a grid line or four on a grid corner. Points outside the grid
// give nil.
func (g *Grid) centroidCells(x, y float64) []int {
	xs, ys := g.xa.closed(x), g.ya.closed(y)
	if xs == nil || ys == nil {
		return nil
	}
	out := make([]int, 0, len(xs)*len(ys))
	for _, yi := range ys {
		for _, xi := range xs {
			out = append(out, g.index(xi, yi))
		}
	}
	return out
}

func idOf(e Entity) ecs.EntityID {
	switch e := e.(type) {
	case *Actor:
		return e.id
	case *Zone:
		return e.id
	}
	return 0
}
