package world

import (
	"fmt"
	"sort"

	"github.com/agentgrid/gridindex/internal/core/ecs"
	"github.com/agentgrid/gridindex/internal/geom"
)

type candidate struct {
	e Entity
	d float64
}

// Nearest returns up to k entities of kind closest to a by boundary
// distance, nearest first. Ties keep discovery order. accept, when not nil,
// filters candidates before they are ranked.
//
// The search expands rings outward from a's cell bounding box. After ring L
// every unscanned cell is at least edgeMargin + L*step from a, so any
// candidate at or below that distance is final. Actors straddling the grid
// edge can be nearest through a point outside every cell; they are ranked
// from the start.
//
// An actor that does not overlap the grid gets nil.
func (a *Actor) Nearest(k int, accept AcceptFunc, kind Kind) ([]Entity, error) {
	if err := checkKind(kind); err != nil {
		return nil, fmt.Errorf("nearest: %w", err)
	}
	if a.grid == nil {
		return nil, fmt.Errorf("nearest: %w", ErrDetached)
	}
	if k < 1 {
		return nil, fmt.Errorf("nearest: k=%d: %w", k, ErrInvalidK)
	}
	if !a.overlappingGrid {
		return nil, nil
	}
	if accept == nil {
		accept = func(Entity, Entity) bool { return true }
	}
	g := a.grid
	if g.bruteBelow > 0 && g.population(kind) < g.bruteBelow {
		return a.nearestBrute(k, accept, kind), nil
	}

	c := a.circle()
	margin := g.edgeMargin(c)
	box := a.bbox()
	seen := make(map[Entity]struct{})
	var (
		pending []candidate
		out     []Entity
		ring    []int
	)
	consider := func(e Entity) {
		if e == Entity(a) {
			return
		}
		if _, dup := seen[e]; dup {
			return
		}
		seen[e] = struct{}{}
		if accept(e, a) {
			pending = append(pending, candidate{e: e, d: Distance(a, e)})
		}
	}

	if kind == KindActor {
		g.straddling.Each(func(id ecs.EntityID) bool {
			consider(g.actor(id))
			return true
		})
	}
	for level := 0; len(out) < k; level++ {
		ring = g.ringCells(box, level, ring[:0])
		if len(ring) == 0 {
			for _, p := range pending {
				if len(out) == k {
					break
				}
				out = append(out, p.e)
			}
			break
		}
		if kind == KindCell {
			for _, i := range ring {
				consider(&g.cells[i])
			}
		} else {
			for _, i := range ring {
				g.members(kind, i).Each(func(id ecs.EntityID) bool {
					if kind == KindActor {
						consider(g.actor(id))
					} else {
						consider(g.zone(id))
					}
					return true
				})
			}
		}
		sort.SliceStable(pending, func(i, j int) bool { return pending[i].d < pending[j].d })

		bound := margin + float64(level)*g.step
		n := 0
		for n < len(pending) && len(out) < k && pending[n].d <= bound {
			out = append(out, pending[n].e)
			n++
		}
		pending = pending[n:]
	}
	return out, nil
}

// nearestBrute ranks every eligible entity of kind directly.
func (a *Actor) nearestBrute(k int, accept AcceptFunc, kind Kind) []Entity {
	g := a.grid
	var pool []Entity
	switch kind {
	case KindCell:
		pool = make([]Entity, len(g.cells))
		for i := range g.cells {
			pool[i] = &g.cells[i]
		}
	case KindActor:
		for _, b := range g.Actors() {
			if b != a && b.overlappingGrid {
				pool = append(pool, b)
			}
		}
	case KindZone:
		pool = toEntities(g.Zones())
	}
	pool = filterEntities(pool, func(e Entity) bool { return accept(e, a) })
	return geom.NearestFrom(a.circle(), k, pool)
}
