package world

import (
	"errors"
	"testing"
)

type query func(kind Kind) ([]Entity, error)

// checkQuery runs q for every kind and compares it, as a set, against
// filtering every eligible entity with keep.
func checkQuery(t *testing.T, g *Grid, name string, self Entity, q query, keep func(Entity) bool) {
	t.Helper()
	for _, kind := range []Kind{KindCell, KindActor, KindZone} {
		got, err := q(kind)
		if err != nil {
			t.Fatalf("%v.%s(%v): %v", self, name, kind, err)
		}
		want := filterEntities(eligible(g, kind, self), keep)
		seen := make(map[Entity]bool, len(got))
		for _, e := range got {
			if seen[e] {
				t.Fatalf("%v.%s(%v): %v returned twice", self, name, kind, e)
			}
			if e == self {
				t.Fatalf("%v.%s(%v): returned itself", self, name, kind)
			}
			seen[e] = true
		}
		if len(got) != len(want) {
			t.Fatalf("%v.%s(%v): got %d entities %v, want %d %v", self, name, kind, len(got), got, len(want), want)
		}
		for _, e := range want {
			if !seen[e] {
				t.Fatalf("%v.%s(%v): missing %v", self, name, kind, e)
			}
		}
	}
}

func TestActorProximityMatchesBruteForce(t *testing.T) {
	for seed := int64(11); seed <= 14; seed++ {
		g := populate(t, seed)
		for _, a := range g.Actors() {
			if !a.OverlappingGrid() {
				continue
			}
			for _, d := range []float64{0.5, 7, 30} {
				checkQuery(t, g, "Neighbors", a,
					func(k Kind) ([]Entity, error) { return a.Neighbors(d, k) },
					func(e Entity) bool { return Distance(a, e) < d })
			}
			checkQuery(t, g, "Overlapping", a, a.Overlapping,
				func(e Entity) bool { return IsOverlapping(a, e) })
			checkQuery(t, g, "Within", a, a.Within,
				func(e Entity) bool { return IsWithin(a, e) })
			checkQuery(t, g, "CentroidWithin", a, a.CentroidWithin,
				func(e Entity) bool { return IsCentroidWithin(a, e) })
			checkQuery(t, g, "Enclosing", a, a.Enclosing,
				func(e Entity) bool { return IsEnclosing(a, e) })
			checkQuery(t, g, "EnclosingCentroid", a, a.EnclosingCentroid,
				func(e Entity) bool { return IsEnclosingCentroid(a, e) })
		}
	}
}

func TestCellProximityMatchesBruteForce(t *testing.T) {
	g := populate(t, 21)
	for i := range g.cells {
		c := &g.cells[i]
		for _, d := range []float64{3, 20} {
			checkQuery(t, g, "Neighbors", c,
				func(k Kind) ([]Entity, error) { return c.Neighbors(d, k) },
				func(e Entity) bool { return Distance(c, e) < d })
		}
		checkQuery(t, g, "Overlapping", c, c.Overlapping,
			func(e Entity) bool { return IsOverlapping(c, e) })
		checkQuery(t, g, "Within", c, c.Within,
			func(e Entity) bool { return IsWithin(c, e) })
		checkQuery(t, g, "CentroidWithin", c, c.CentroidWithin,
			func(e Entity) bool { return IsCentroidWithin(c, e) })
		checkQuery(t, g, "Enclosing", c, c.Enclosing,
			func(e Entity) bool { return IsEnclosing(c, e) })
		checkQuery(t, g, "EnclosingCentroid", c, c.EnclosingCentroid,
			func(e Entity) bool { return IsEnclosingCentroid(c, e) })
	}
}

func TestZoneProximityMatchesBruteForce(t *testing.T) {
	for seed := int64(31); seed <= 33; seed++ {
		g := populate(t, seed)
		// one single-cell zone so cell containment has something to find
		mustZone(t, g, IndexRange{XMin: 4, XMax: 4, YMin: 3, YMax: 3})
		for _, z := range g.Zones() {
			for _, d := range []float64{2, 25} {
				checkQuery(t, g, "Neighbors", z,
					func(k Kind) ([]Entity, error) { return z.Neighbors(d, k) },
					func(e Entity) bool { return Distance(z, e) < d })
			}
			checkQuery(t, g, "Overlapping", z, z.Overlapping,
				func(e Entity) bool { return IsOverlapping(z, e) })
			checkQuery(t, g, "Within", z, z.Within,
				func(e Entity) bool { return IsWithin(z, e) })
			checkQuery(t, g, "CentroidWithin", z, z.CentroidWithin,
				func(e Entity) bool { return IsCentroidWithin(z, e) })
			checkQuery(t, g, "Enclosing", z, z.Enclosing,
				func(e Entity) bool { return IsEnclosing(z, e) })
			checkQuery(t, g, "EnclosingCentroid", z, z.EnclosingCentroid,
				func(e Entity) bool { return IsEnclosingCentroid(z, e) })
		}
	}
}

func TestActorCentroidOnGridLine(t *testing.T) {
	g := mustGrid(t, 40, 40, 10)
	a := mustActor(t, g, 20, 20, 1)
	cells, err := a.CentroidWithin(KindCell)
	if err != nil {
		t.Fatal(err)
	}
	if got := indices(As[*Cell](cells)); !equalInts(got, []int{5, 6, 9, 10}) {
		t.Errorf("centroid on a grid corner: cells %v, want [5 6 9 10]", got)
	}
	a.SetXY(40, 15)
	cells, _ = a.CentroidWithin(KindCell)
	if got := indices(As[*Cell](cells)); !equalInts(got, []int{7}) {
		t.Errorf("centroid on the east edge: cells %v, want [7]", got)
	}
	if c, _ := a.CellOfCentroid(); c.Index() != 7 {
		t.Errorf("CellOfCentroid = %v, want cell 7", c)
	}
}

func TestNeighborsNonPositiveDistance(t *testing.T) {
	g := populate(t, 5)
	a := g.Actors()[0]
	for _, d := range []float64{0, -3} {
		if got, err := a.Neighbors(d, KindCell); err != nil || got != nil {
			t.Errorf("Neighbors(%g) = %v, %v; want nil, nil", d, got, err)
		}
	}
	if _, err := g.CellAt(0, 0).Within(Kind(-1)); !errors.Is(err, ErrInvalidKind) {
		t.Errorf("Cell.Within(-1): err = %v", err)
	}
}

func TestFromQueries(t *testing.T) {
	g := mustGrid(t, 100, 100, 10)
	a := mustActor(t, g, 50, 50, 5)
	in := mustActor(t, g, 51, 50, 1)
	part := mustActor(t, g, 54.5, 50, 3)
	far := mustActor(t, g, 90, 90, 2)
	all := []Entity{far, part, in}

	if got := a.OverlappingFrom(all); len(got) != 2 || got[0] != part || got[1] != in {
		t.Errorf("OverlappingFrom = %v", got)
	}
	if got := a.EnclosingFrom(all); len(got) != 1 || got[0] != in {
		t.Errorf("EnclosingFrom = %v", got)
	}
	if got := in.WithinFrom(all); len(got) != 0 {
		t.Errorf("WithinFrom without a = %v", got)
	}
	if got := in.WithinFrom([]Entity{a}); len(got) != 1 {
		t.Errorf("WithinFrom(a) = %v", got)
	}
	near, err := a.NearestFrom(2, all)
	if err != nil {
		t.Fatal(err)
	}
	if len(near) != 2 || near[0] != part || near[1] != in {
		t.Errorf("NearestFrom = %v", near)
	}
	if got := a.NeighborsFrom(10, all); len(got) != 2 {
		t.Errorf("NeighborsFrom = %v", got)
	}
	if got := a.EnclosingCentroidFrom(all); len(got) != 2 {
		t.Errorf("EnclosingCentroidFrom = %v", got)
	}
	if got := in.CentroidWithinFrom(all); len(got) != 0 {
		t.Errorf("CentroidWithinFrom = %v", got)
	}
}

func TestFromQueriesSkipSelf(t *testing.T) {
	g := mustGrid(t, 100, 100, 10)
	a := mustActor(t, g, 50, 50, 5)
	b := mustActor(t, g, 52, 50, 1)
	withSelf := []Entity{a, b}

	near, err := a.NearestFrom(2, withSelf)
	if err != nil {
		t.Fatal(err)
	}
	checks := map[string][]Entity{
		"NearestFrom":           near,
		"NeighborsFrom":         a.NeighborsFrom(10, withSelf),
		"OverlappingFrom":       a.OverlappingFrom(withSelf),
		"EnclosingFrom":         a.EnclosingFrom(withSelf),
		"EnclosingCentroidFrom": a.EnclosingCentroidFrom(withSelf),
	}
	for name, got := range checks {
		if len(got) != 1 || got[0] != b {
			t.Errorf("%s = %v, want [%v]", name, got, b)
		}
	}
	if got := a.WithinFrom(withSelf); got != nil {
		t.Errorf("WithinFrom = %v, want nil", got)
	}
	if got := a.CentroidWithinFrom(withSelf); got != nil {
		t.Errorf("CentroidWithinFrom = %v, want nil", got)
	}
}
