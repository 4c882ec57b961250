package geom

import (
	"math"
	"testing"
)

func TestVectorArithmetic(t *testing.T) {
	v := Vec(3, 4)
	if got := v.Mag(); got != 5 {
		t.Errorf("Mag = %v, want 5", got)
	}
	if got := v.Add(Vec(1, -1)); got != Vec(4, 3) {
		t.Errorf("Add = %v", got)
	}
	if got := v.Sub(Vec(1, 1)).Mult(2); got != Vec(4, 6) {
		t.Errorf("Sub.Mult = %v", got)
	}
	if got := v.Normalize().Mag(); !near(got, 1) {
		t.Errorf("Normalize magnitude = %v", got)
	}
	if got := v.Limit(2.5); !near(got.Mag(), 2.5) {
		t.Errorf("Limit magnitude = %v", got.Mag())
	}
	if got := v.Limit(10); got != v {
		t.Errorf("Limit above magnitude changed vector: %v", got)
	}
	if got := (Vector{}).SetMag(3); !got.IsZero() {
		t.Errorf("SetMag on zero = %v", got)
	}
	if got := v.Distance(Vec(0, 0)); got != 5 {
		t.Errorf("Distance = %v", got)
	}
}

func TestVectorAngles(t *testing.T) {
	v := Vec(2, 0)
	u := v.Turn(math.Pi / 2)
	if !near(u.X, 0) || !near(u.Y, 2) {
		t.Errorf("Turn = %v, want (0,2)", u)
	}
	p := FromPolar(2, math.Pi)
	if !near(p.X, -2) || !near(p.Y, 0) {
		t.Errorf("FromPolar = %v", p)
	}
	if got := Vec(1, 1).Lerp(Vec(3, 5), 0.5); got != Vec(2, 3) {
		t.Errorf("Lerp = %v", got)
	}
}

func TestVectorProjection(t *testing.T) {
	v := Vec(3, 4)
	axis := Vec(1, 0)
	if got := v.Project(axis); got != Vec(3, 0) {
		t.Errorf("Project = %v", got)
	}
	if got := v.Reject(axis); got != Vec(0, 4) {
		t.Errorf("Reject = %v", got)
	}
	n := Vec(0, 5).UnitNormal()
	if !near(n.X, -1) || !near(n.Y, 0) {
		t.Errorf("UnitNormal = %v", n)
	}
}
