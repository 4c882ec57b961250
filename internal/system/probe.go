package system

import (
	"time"

	"go.uber.org/zap"

	coresys "github.com/agentgrid/gridindex/internal/core/system"
	"github.com/agentgrid/gridindex/internal/world"
)

// ProbeConfig selects what ProbeSystem asks of each actor.
type ProbeConfig struct {
	K           int
	Kind        world.Kind
	Accept      world.AcceptFunc // nil accepts everything
	MaxDistance float64
	Every       int // ticks between probes
}

// ProbeStats tallies the queries run by ProbeSystem.
type ProbeStats struct {
	Probes    int
	Nearest   int // entities returned by Nearest
	Neighbors int // entities returned by Neighbors
	Errors    int
}

// ProbeSystem runs Nearest and Neighbors for every actor on the grid and
// logs the results.
// Phase 2 (Query), every cfg.Every ticks.
type ProbeSystem struct {
	scene *Scene
	cfg   ProbeConfig
	log   *zap.Logger
	stats ProbeStats
}

func NewProbeSystem(scene *Scene, cfg ProbeConfig, log *zap.Logger) *ProbeSystem {
	if cfg.Every < 1 {
		cfg.Every = 1
	}
	return &ProbeSystem{scene: scene, cfg: cfg, log: log}
}

func (s *ProbeSystem) Phase() coresys.Phase { return coresys.PhaseQuery }
func (s *ProbeSystem) Interval() int        { return s.cfg.Every }

func (s *ProbeSystem) Update(_ time.Duration) {
	s.stats.Probes++

	for _, a := range s.scene.Grid.Actors() {
		if !a.OverlappingGrid() {
			continue
		}
		s.probe(a)
	}
}

func (s *ProbeSystem) probe(a *world.Actor) {
	name := s.scene.Name(a)
	nearest, err := a.Nearest(s.cfg.K, s.cfg.Accept, s.cfg.Kind)
	if err != nil {
		s.stats.Errors++
		s.log.Error("nearest failed", zap.String("actor", name), zap.Error(err))
		return
	}
	s.stats.Nearest += len(nearest)

	var near []float64
	var names []string
	for _, e := range nearest {
		names = append(names, s.scene.Name(e))
		near = append(near, world.Distance(a, e))
	}

	var neighbors []world.Entity
	if s.cfg.MaxDistance > 0 {
		neighbors, err = a.Neighbors(s.cfg.MaxDistance, s.cfg.Kind)
		if err != nil {
			s.stats.Errors++
			s.log.Error("neighbors failed", zap.String("actor", name), zap.Error(err))
			return
		}
		s.stats.Neighbors += len(neighbors)
	}

	s.log.Info("probe",
		zap.String("actor", name),
		zap.Float64("x", a.X()),
		zap.Float64("y", a.Y()),
		zap.Stringer("kind", s.cfg.Kind),
		zap.Strings("nearest", names),
		zap.Float64s("distances", near),
		zap.Int("neighbors", len(neighbors)),
	)
}

// Stats returns the tallies so far.
func (s *ProbeSystem) Stats() ProbeStats { return s.stats }
