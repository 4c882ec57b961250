package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"go.uber.org/multierr"
)

type Config struct {
	Grid    GridConfig    `toml:"grid"`
	Probe   ProbeConfig   `toml:"probe"`
	Logging LoggingConfig `toml:"logging"`
}

type GridConfig struct {
	Width           float64 `toml:"width"`
	Height          float64 `toml:"height"`
	Step            float64 `toml:"step"`
	BruteForceBelow int     `toml:"brute_force_below"` // 0 disables the O(n) nearest path
}

type ProbeConfig struct {
	Scenario    string        `toml:"scenario"`
	Scripts     string        `toml:"scripts"` // directory of *.lua accept predicates, "" for none
	Ticks       int           `toml:"ticks"`
	TickRate    time.Duration `toml:"tick_rate"` // 0 runs flat out
	K           int           `toml:"k"`
	Kind        string        `toml:"kind"`   // cell, actor or zone
	Filter      string        `toml:"filter"` // Lua global used as the Nearest accept predicate
	MaxDistance float64       `toml:"max_distance"`
	Every       int           `toml:"every"` // probe every N ticks
	View        float64       `toml:"view"`  // visibility range between actors, 0 disables tracking

	DetachOffGrid bool `toml:"detach_off_grid"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Default is the configuration used when no file is given.
func Default() *Config { return defaults() }

func defaults() *Config {
	return &Config{
		Grid: GridConfig{
			Width:  300,
			Height: 300,
			Step:   20,
		},
		Probe: ProbeConfig{
			Scenario:    "data/scenario.yaml",
			Scripts:     "scripts",
			Ticks:       100,
			K:           3,
			Kind:        "actor",
			MaxDistance: 40,
			Every:       10,
			View:        30,

			DetachOffGrid: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate reports every problem in c at once.
func (c *Config) Validate() error {
	var err error
	g := c.Grid
	if !(g.Step > 0) || !(g.Width > 0) || !(g.Height > 0) {
		err = multierr.Append(err, fmt.Errorf("grid: width %g, height %g and step %g must be positive", g.Width, g.Height, g.Step))
	} else if !whole(g.Width/g.Step) || !whole(g.Height/g.Step) {
		err = multierr.Append(err, fmt.Errorf("grid: step %g must divide %gx%g", g.Step, g.Width, g.Height))
	}
	if g.BruteForceBelow < 0 {
		err = multierr.Append(err, errors.New("grid: brute_force_below must not be negative"))
	}

	p := c.Probe
	if p.Ticks < 0 {
		err = multierr.Append(err, errors.New("probe: ticks must not be negative"))
	}
	if p.TickRate < 0 {
		err = multierr.Append(err, errors.New("probe: tick_rate must not be negative"))
	}
	if p.K < 1 {
		err = multierr.Append(err, fmt.Errorf("probe: k=%d must be at least 1", p.K))
	}
	switch strings.ToLower(p.Kind) {
	case "cell", "square", "actor", "zone":
	default:
		err = multierr.Append(err, fmt.Errorf("probe: unknown kind %q", p.Kind))
	}
	if p.MaxDistance < 0 {
		err = multierr.Append(err, errors.New("probe: max_distance must not be negative"))
	}
	if p.View < 0 {
		err = multierr.Append(err, errors.New("probe: view must not be negative"))
	}
	if p.Every < 1 {
		err = multierr.Append(err, fmt.Errorf("probe: every=%d must be at least 1", p.Every))
	}
	if p.Filter != "" && p.Scripts == "" {
		err = multierr.Append(err, fmt.Errorf("probe: filter %q needs a scripts directory", p.Filter))
	}

	switch c.Logging.Format {
	case "json", "console":
	default:
		err = multierr.Append(err, fmt.Errorf("logging: unknown format %q", c.Logging.Format))
	}
	return err
}

func whole(f float64) bool { return f == float64(int64(f)) }
