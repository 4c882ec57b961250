package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/agentgrid/gridindex/internal/core/event"
	coresys "github.com/agentgrid/gridindex/internal/core/system"
)

// EventCounts tallies membership events delivered so far.
type EventCounts struct {
	CellEntered int
	CellExited  int
	GridLeft    int
	GridEntered int
}

// EventSystem delivers the previous tick's membership events and counts
// them. Phase 0 (Events).
type EventSystem struct {
	bus    *event.Bus
	scene  *Scene
	log    *zap.Logger
	counts EventCounts
}

func NewEventSystem(bus *event.Bus, scene *Scene, log *zap.Logger) *EventSystem {
	s := &EventSystem{bus: bus, scene: scene, log: log}
	event.Subscribe(bus, func(event.CellEntered) { s.counts.CellEntered++ })
	event.Subscribe(bus, func(event.CellExited) { s.counts.CellExited++ })
	event.Subscribe(bus, func(ev event.GridLeft) {
		s.counts.GridLeft++
		if a := scene.Grid.Actor(ev.Actor); a != nil {
			log.Info("actor left the grid", zap.String("actor", scene.Name(a)))
		}
	})
	event.Subscribe(bus, func(ev event.GridEntered) {
		s.counts.GridEntered++
		if a := scene.Grid.Actor(ev.Actor); a != nil {
			log.Debug("actor entered the grid", zap.String("actor", scene.Name(a)))
		}
	})
	return s
}

func (s *EventSystem) Phase() coresys.Phase { return coresys.PhaseEvents }

func (s *EventSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	if n := s.bus.Pending(); n > 0 {
		s.log.Debug("dispatching membership events", zap.Int("count", n))
	}
	s.bus.DispatchAll()
}

// Counts returns the tallies so far.
func (s *EventSystem) Counts() EventCounts { return s.counts }
