package system

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/agentgrid/gridindex/internal/core/ecs"
	"github.com/agentgrid/gridindex/internal/data"
	"github.com/agentgrid/gridindex/internal/geom"
	"github.com/agentgrid/gridindex/internal/world"
)

// Velocity is the per-tick displacement of a drifting actor.
type Velocity = geom.Vector

// Scene is a grid populated from a scenario, plus the per-actor state the
// systems share.
type Scene struct {
	Grid       *world.Grid
	Velocities *ecs.Store[Velocity]
	names      map[ecs.EntityID]string
}

// NewScene attaches every zone and then every actor of sc to g. Actors with
// a non-zero velocity get an entry in Velocities.
func NewScene(g *world.Grid, sc *data.Scenario, log *zap.Logger) (*Scene, error) {
	s := &Scene{
		Grid:       g,
		Velocities: ecs.NewStore[Velocity](),
		names:      make(map[ecs.EntityID]string),
	}
	g.Register(s.Velocities)

	for i, ze := range sc.Zones() {
		z, err := world.NewZone(world.IndexRange{XMin: ze.XMin, XMax: ze.XMax, YMin: ze.YMin, YMax: ze.YMax})
		if err != nil {
			return nil, fmt.Errorf("zone %d (%q): %w", i, ze.Name, err)
		}
		if err := z.Attach(g); err != nil {
			return nil, fmt.Errorf("zone %d (%q): %w", i, ze.Name, err)
		}
		s.names[z.ID()] = ze.Name
	}
	for i, ae := range sc.Actors() {
		a, err := world.NewActor(ae.X, ae.Y, ae.Radius)
		if err != nil {
			return nil, fmt.Errorf("actor %d (%q): %w", i, ae.Name, err)
		}
		a.SetWrap(ae.WrapX, ae.WrapY)
		if err := a.Attach(g); err != nil {
			return nil, fmt.Errorf("actor %d (%q): %w", i, ae.Name, err)
		}
		s.names[a.ID()] = ae.Name
		if v := geom.Vec(ae.VX, ae.VY); !v.IsZero() {
			s.Velocities.Set(a.ID(), &v)
		}
	}

	zones, actors := sc.Count()
	log.Info("scene loaded",
		zap.Int("zones", zones),
		zap.Int("actors", actors),
		zap.Int("drifting", s.Velocities.Len()),
	)
	return s, nil
}

// Name returns the scenario name of an actor or zone, or a generated one.
func (s *Scene) Name(e world.Entity) string {
	var id ecs.EntityID
	switch v := e.(type) {
	case *world.Actor:
		id = v.ID()
	case *world.Zone:
		id = v.ID()
	case *world.Cell:
		return v.String()
	}
	if n := s.names[id]; n != "" {
		return n
	}
	return fmt.Sprintf("%v#%d", e.Kind(), id.Index())
}
