package data

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sample = `
zones:
  - name: plaza
    x_min: 2
    x_max: 4
    y_min: 2
    y_max: 3
actors:
  - name: scout
    x: 12.5
    y: 40
    radius: 3
    vx: 1.5
    wrap_x: true
  - name: rock
    x: 100
    y: 100
    radius: 8
`

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadScenario(path)
	if err != nil {
		t.Fatal(err)
	}
	if z, a := s.Count(); z != 1 || a != 2 {
		t.Fatalf("Count = %d zones, %d actors", z, a)
	}
	z := s.Zones()[0]
	if z.Name != "plaza" || z.XMin != 2 || z.XMax != 4 || z.YMin != 2 || z.YMax != 3 {
		t.Errorf("zone = %+v", z)
	}
	scout := s.Actor("scout")
	if scout == nil {
		t.Fatal("scout not found")
	}
	if scout.X != 12.5 || scout.VX != 1.5 || scout.VY != 0 || !scout.WrapX || scout.WrapY {
		t.Errorf("scout = %+v", *scout)
	}
	if s.Actor("ghost") != nil {
		t.Error("unknown name resolved")
	}
	if s.Actors()[1].Name != "rock" {
		t.Error("file order not kept")
	}
}

func TestParseScenarioErrors(t *testing.T) {
	tests := []struct {
		name, body, want string
	}{
		{"bad yaml", "actors: [", "parse scenario"},
		{"zero radius", "actors:\n  - name: a\n    radius: 0\n", "radius"},
		{"duplicate", "actors:\n  - {name: a, radius: 1}\n  - {name: a, radius: 2}\n", "duplicate"},
	}
	for _, tt := range tests {
		_, err := ParseScenario([]byte(tt.body))
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: err = %v, want mention of %q", tt.name, err, tt.want)
		}
	}
	if _, err := LoadScenario(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Error("missing file: expected an error")
	}
}
