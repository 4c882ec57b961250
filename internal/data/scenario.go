package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ZoneEntry is a rectangle of whole cells, given by inclusive cell indices.
type ZoneEntry struct {
	Name string `yaml:"name"`
	XMin int    `yaml:"x_min"`
	XMax int    `yaml:"x_max"`
	YMin int    `yaml:"y_min"`
	YMax int    `yaml:"y_max"`
}

// ActorEntry is a circle with an optional constant velocity.
type ActorEntry struct {
	Name   string  `yaml:"name"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Radius float64 `yaml:"radius"`
	VX     float64 `yaml:"vx"` // units per tick
	VY     float64 `yaml:"vy"`
	WrapX  bool    `yaml:"wrap_x"`
	WrapY  bool    `yaml:"wrap_y"`
}

type scenarioFile struct {
	Zones  []ZoneEntry  `yaml:"zones"`
	Actors []ActorEntry `yaml:"actors"`
}

// Scenario holds the zones and actors to place on a grid, in file order.
type Scenario struct {
	zones  []ZoneEntry
	actors []ActorEntry
	byName map[string]*ActorEntry
}

// LoadScenario loads a scenario YAML file.
func LoadScenario(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return ParseScenario(raw)
}

// ParseScenario decodes scenario YAML. Actor names must be unique when set
// and every radius must be positive.
func ParseScenario(raw []byte) (*Scenario, error) {
	var f scenarioFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	s := &Scenario{
		zones:  f.Zones,
		actors: f.Actors,
		byName: make(map[string]*ActorEntry, len(f.Actors)),
	}
	for i := range s.actors {
		e := &s.actors[i]
		if !(e.Radius > 0) {
			return nil, fmt.Errorf("parse scenario: actor %d (%q): radius %g must be positive", i, e.Name, e.Radius)
		}
		if e.Name == "" {
			continue
		}
		if _, dup := s.byName[e.Name]; dup {
			return nil, fmt.Errorf("parse scenario: duplicate actor name %q", e.Name)
		}
		s.byName[e.Name] = e
	}
	return s, nil
}

func (s *Scenario) Zones() []ZoneEntry   { return s.zones }
func (s *Scenario) Actors() []ActorEntry { return s.actors }

// Actor returns the actor entry with the given name, or nil if none.
func (s *Scenario) Actor(name string) *ActorEntry {
	return s.byName[name]
}

// Count returns the number of zones and actors loaded.
func (s *Scenario) Count() (zones, actors int) {
	return len(s.zones), len(s.actors)
}
