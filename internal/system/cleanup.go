package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/agentgrid/gridindex/internal/core/ecs"
	"github.com/agentgrid/gridindex/internal/core/event"
	coresys "github.com/agentgrid/gridindex/internal/core/system"
)

// CleanupSystem detaches actors that drifted off the grid. Actors are
// queued from GridLeft events and detached at tick end if they have not
// come back in the meantime.
// Phase 3 (Report).
type CleanupSystem struct {
	scene    *Scene
	log      *zap.Logger
	queue    []ecs.EntityID
	detached int
}

func NewCleanupSystem(bus *event.Bus, scene *Scene, log *zap.Logger) *CleanupSystem {
	s := &CleanupSystem{scene: scene, log: log}
	event.Subscribe(bus, func(ev event.GridLeft) { s.queue = append(s.queue, ev.Actor) })
	return s
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseReport }

func (s *CleanupSystem) Update(_ time.Duration) {
	for _, id := range s.queue {
		a := s.scene.Grid.Actor(id)
		if a == nil || a.OverlappingGrid() {
			continue
		}
		name := s.scene.Name(a)
		if err := a.Detach(); err != nil {
			s.log.Error("detach failed", zap.String("actor", name), zap.Error(err))
			continue
		}
		s.detached++
		s.log.Info("actor detached off grid", zap.String("actor", name))
	}
	s.queue = s.queue[:0]
}

// Detached is the number of actors removed so far.
func (s *CleanupSystem) Detached() int { return s.detached }
