package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/agentgrid/gridindex/internal/core/ecs"
	"github.com/agentgrid/gridindex/internal/core/set"
	coresys "github.com/agentgrid/gridindex/internal/core/system"
	"github.com/agentgrid/gridindex/internal/world"
)

// VisibilitySystem tracks, for every actor, which other actors lie within
// its view range and logs when one comes into or drops out of view.
// Phase 2 (Query), every other tick.
type VisibilitySystem struct {
	scene *Scene
	view  float64
	log   *zap.Logger

	known   map[ecs.EntityID]*set.Ordered[ecs.EntityID]
	appears int
	vanish  int
}

func NewVisibilitySystem(scene *Scene, view float64, log *zap.Logger) *VisibilitySystem {
	return &VisibilitySystem{
		scene: scene,
		view:  view,
		log:   log,
		known: make(map[ecs.EntityID]*set.Ordered[ecs.EntityID]),
	}
}

func (s *VisibilitySystem) Phase() coresys.Phase { return coresys.PhaseQuery }
func (s *VisibilitySystem) Interval() int        { return 2 }

func (s *VisibilitySystem) Update(_ time.Duration) {
	alive := make(map[ecs.EntityID]struct{})
	for _, a := range s.scene.Grid.Actors() {
		alive[a.ID()] = struct{}{}
		s.updateActor(a)
	}
	for id := range s.known {
		if _, ok := alive[id]; !ok {
			delete(s.known, id)
		}
	}
}

func (s *VisibilitySystem) updateActor(a *world.Actor) {
	nearby, err := a.Neighbors(s.view, world.KindActor)
	if err != nil {
		s.log.Error("visibility query failed", zap.String("actor", s.scene.Name(a)), zap.Error(err))
		return
	}
	seen := world.As[*world.Actor](nearby)
	ids := make([]ecs.EntityID, len(seen))
	for i, b := range seen {
		ids[i] = b.ID()
	}
	current := set.Of(ids...)
	prev, ok := s.known[a.ID()]
	if !ok {
		prev = set.New[ecs.EntityID]()
	}
	current.Difference(prev).Each(func(id ecs.EntityID) bool {
		s.appears++
		s.log.Debug("came into view",
			zap.String("viewer", s.scene.Name(a)),
			zap.String("actor", s.scene.Name(s.scene.Grid.Actor(id))),
		)
		return true
	})
	s.vanish += prev.Difference(current).Len()
	s.known[a.ID()] = current
}

// Visible returns how many actors a currently sees.
func (s *VisibilitySystem) Visible(a *world.Actor) int {
	if v, ok := s.known[a.ID()]; ok {
		return v.Len()
	}
	return 0
}

// Transitions returns how many times an actor came into and dropped out of
// view.
func (s *VisibilitySystem) Transitions() (appeared, vanished int) { return s.appears, s.vanish }
