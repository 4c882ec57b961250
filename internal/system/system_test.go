package system

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/agentgrid/gridindex/internal/core/event"
	coresys "github.com/agentgrid/gridindex/internal/core/system"
	"github.com/agentgrid/gridindex/internal/data"
	"github.com/agentgrid/gridindex/internal/world"
)

const driftScenario = `
zones:
  - name: plaza
    x_min: 2
    x_max: 4
    y_min: 2
    y_max: 3
actors:
  - name: scout
    x: 8
    y: 8
    radius: 2
    vx: -20
  - name: rock
    x: 80
    y: 80
    radius: 4
  - name: runner
    x: 150
    y: 80
    radius: 2
    vx: 20
    wrap_x: true
`

func newScene(t *testing.T, yaml string, bus *event.Bus) *Scene {
	t.Helper()
	log := zaptest.NewLogger(t)
	g, err := world.NewGrid(160, 160, 16, world.WithLogger(log), world.WithEventBus(bus))
	if err != nil {
		t.Fatal(err)
	}
	sc, err := data.ParseScenario([]byte(yaml))
	if err != nil {
		t.Fatal(err)
	}
	s, err := NewScene(g, sc, log)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func actorNamed(t *testing.T, s *Scene, name string) *world.Actor {
	t.Helper()
	for _, a := range s.Grid.Actors() {
		if s.Name(a) == name {
			return a
		}
	}
	t.Fatalf("no actor %q", name)
	return nil
}

func TestNewScene(t *testing.T) {
	s := newScene(t, driftScenario, nil)
	if n := len(s.Grid.Actors()); n != 3 {
		t.Fatalf("%d actors attached, want 3", n)
	}
	zones := s.Grid.Zones()
	if len(zones) != 1 || s.Name(zones[0]) != "plaza" || len(zones[0].Cells()) != 6 {
		t.Fatalf("zones = %v", zones)
	}
	if s.Velocities.Len() != 2 {
		t.Errorf("%d velocities, want 2", s.Velocities.Len())
	}
	rock := actorNamed(t, s, "rock")
	if s.Velocities.Has(rock.ID()) {
		t.Error("static actor got a velocity")
	}
	if x, _ := actorNamed(t, s, "runner").Wrap(); !x {
		t.Error("runner should wrap in x")
	}
	if got := s.Name(s.Grid.CellAt(1, 2)); got != s.Grid.CellAt(1, 2).String() {
		t.Errorf("cell name = %q", got)
	}
}

func TestNewSceneErrors(t *testing.T) {
	g, err := world.NewGrid(160, 160, 16)
	if err != nil {
		t.Fatal(err)
	}
	sc, err := data.ParseScenario([]byte("zones:\n  - {name: huge, x_min: 0, x_max: 10, y_min: 0, y_max: 0}\n"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewScene(g, sc, zaptest.NewLogger(t)); err == nil {
		t.Error("zone past the grid edge: expected an error")
	}
}

func TestDriftEventsAndCleanup(t *testing.T) {
	bus := event.NewBus()
	s := newScene(t, driftScenario, bus)
	log := zaptest.NewLogger(t)
	scout := actorNamed(t, s, "scout")
	runner := actorNamed(t, s, "runner")

	drift := NewDriftSystem(s)
	events := NewEventSystem(bus, s, log)
	cleanup := NewCleanupSystem(bus, s, log)
	r := coresys.NewRunner()
	r.Register(cleanup)
	r.Register(drift)
	r.Register(events)

	// Tick 1 delivers the attach events and moves scout off the grid.
	r.Tick(0)
	if c := events.Counts(); c.GridEntered != 3 || c.GridLeft != 0 {
		t.Fatalf("after tick 1: %+v", c)
	}
	if scout.OverlappingGrid() {
		t.Fatal("scout should be off the grid")
	}
	if runner.X() != 10 {
		t.Errorf("runner x = %g, want 10 after wrapping", runner.X())
	}

	// Tick 2 delivers GridLeft and cleanup detaches scout.
	r.Tick(0)
	if c := events.Counts(); c.GridLeft != 1 || c.CellExited == 0 || c.CellEntered == 0 {
		t.Fatalf("after tick 2: %+v", c)
	}
	if cleanup.Detached() != 1 || scout.Attached() {
		t.Fatalf("scout not detached (detached=%d)", cleanup.Detached())
	}
	if s.Velocities.Len() != 1 {
		t.Errorf("detaching should drop the velocity, %d left", s.Velocities.Len())
	}

	r.Tick(0)
	if drift.Moves() != 5 {
		t.Errorf("moves = %d, want 5", drift.Moves())
	}
	if n := len(s.Grid.Actors()); n != 2 {
		t.Errorf("%d actors left, want 2", n)
	}
}

func TestCleanupSkipsReturnedActors(t *testing.T) {
	bus := event.NewBus()
	s := newScene(t, "actors:\n  - {name: a, x: 8, y: 8, radius: 2}\n", bus)
	log := zaptest.NewLogger(t)
	events := NewEventSystem(bus, s, log)
	cleanup := NewCleanupSystem(bus, s, log)
	a := actorNamed(t, s, "a")

	a.SetXY(-50, 8)
	a.SetXY(8, 8)
	events.Update(0)
	events.Update(0)
	cleanup.Update(0)
	if cleanup.Detached() != 0 || !a.Attached() {
		t.Error("actor back on the grid was detached")
	}
	if c := events.Counts(); c.GridLeft != 1 || c.GridEntered != 2 {
		t.Errorf("counts = %+v", c)
	}
}

const probeScenario = `
actors:
  - {name: a, x: 50, y: 50, radius: 2}
  - {name: b, x: 60, y: 50, radius: 2}
  - {name: c, x: 100, y: 50, radius: 2}
`

func TestProbeSystem(t *testing.T) {
	s := newScene(t, probeScenario, nil)
	p := NewProbeSystem(s, ProbeConfig{K: 1, Kind: world.KindActor, MaxDistance: 15, Every: 2}, zaptest.NewLogger(t))
	r := coresys.NewRunner()
	r.Register(p)

	r.Tick(0)
	if p.Stats().Probes != 0 {
		t.Fatal("probed before Every ticks")
	}
	r.Tick(0)
	st := p.Stats()
	if st.Probes != 1 || st.Nearest != 3 || st.Neighbors != 2 || st.Errors != 0 {
		t.Errorf("stats = %+v", st)
	}
}

func TestProbeSystemFilter(t *testing.T) {
	s := newScene(t, probeScenario, nil)
	onlyC := func(candidate, _ world.Entity) bool { return s.Name(candidate) == "c" }
	p := NewProbeSystem(s, ProbeConfig{K: 2, Kind: world.KindActor, Accept: onlyC}, zaptest.NewLogger(t))
	p.Update(0)
	// a and b each find c; c finds nothing.
	if st := p.Stats(); st.Nearest != 2 || st.Neighbors != 0 {
		t.Errorf("stats = %+v", st)
	}

	bad := NewProbeSystem(s, ProbeConfig{K: 0, Kind: world.KindActor}, zaptest.NewLogger(t))
	bad.Update(0)
	if st := bad.Stats(); st.Errors != 3 {
		t.Errorf("k=0 should fail for every actor: %+v", st)
	}
}

func TestVisibilitySystem(t *testing.T) {
	s := newScene(t, probeScenario, nil)
	v := NewVisibilitySystem(s, 15, zaptest.NewLogger(t))
	a, b := actorNamed(t, s, "a"), actorNamed(t, s, "b")

	v.Update(0)
	if v.Visible(a) != 1 || v.Visible(b) != 1 || v.Visible(actorNamed(t, s, "c")) != 0 {
		t.Fatalf("visible a=%d b=%d", v.Visible(a), v.Visible(b))
	}
	if in, out := v.Transitions(); in != 2 || out != 0 {
		t.Errorf("transitions = %d, %d", in, out)
	}

	b.SetXY(140, 50)
	v.Update(0)
	if v.Visible(a) != 0 {
		t.Error("b should have left a's view")
	}
	if in, out := v.Transitions(); in != 2 || out != 2 {
		t.Errorf("transitions = %d, %d", in, out)
	}
}
