package system

import (
	"time"

	coresys "github.com/agentgrid/gridindex/internal/core/system"
)

// DriftSystem moves every actor with a velocity by that velocity once per
// tick. Membership is updated by the move itself.
// Phase 1 (Move).
type DriftSystem struct {
	scene *Scene
	moves int
}

func NewDriftSystem(scene *Scene) *DriftSystem {
	return &DriftSystem{scene: scene}
}

func (s *DriftSystem) Phase() coresys.Phase { return coresys.PhaseMove }

func (s *DriftSystem) Update(_ time.Duration) {
	for _, a := range s.scene.Grid.Actors() {
		v, ok := s.scene.Velocities.Get(a.ID())
		if !ok {
			continue
		}
		a.Move(*v)
		s.moves++
	}
}

// Moves is the number of actor moves applied so far.
func (s *DriftSystem) Moves() int { return s.moves }
