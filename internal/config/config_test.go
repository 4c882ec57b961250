package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/multierr"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gridprobe.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[grid]
width = 400.0
step = 25.0
brute_force_below = 16

[probe]
tick_rate = "50ms"
kind = "zone"
detach_off_grid = false
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Grid.Width != 400 || cfg.Grid.Height != 300 || cfg.Grid.Step != 25 {
		t.Errorf("grid = %+v", cfg.Grid)
	}
	if cfg.Grid.BruteForceBelow != 16 {
		t.Errorf("brute_force_below = %d", cfg.Grid.BruteForceBelow)
	}
	if cfg.Probe.TickRate != 50*time.Millisecond || cfg.Probe.Kind != "zone" {
		t.Errorf("probe = %+v", cfg.Probe)
	}
	if cfg.Probe.DetachOffGrid {
		t.Error("detach_off_grid not overridden")
	}
	if cfg.Probe.K != 3 || cfg.Probe.View != 30 || cfg.Logging.Level != "info" {
		t.Errorf("defaults lost: k=%d view=%g level=%q", cfg.Probe.K, cfg.Probe.View, cfg.Logging.Level)
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Grid.Step = 7
	cfg.Probe.K = 0
	cfg.Probe.Kind = "tree"
	cfg.Logging.Format = "xml"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected an error")
	}
	if n := len(multierr.Errors(err)); n != 4 {
		t.Errorf("got %d errors, want 4: %v", n, err)
	}
	for _, want := range []string{"step 7", "k=0", `"tree"`, `"xml"`} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("missing file: expected an error")
	}
	if _, err := Load(writeConfig(t, "[grid\nwidth=")); err == nil {
		t.Error("malformed file: expected an error")
	}
	if _, err := Load(writeConfig(t, "[grid]\nstep = -1.0\n")); err == nil {
		t.Error("invalid values: expected an error")
	}
}
