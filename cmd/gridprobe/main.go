package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/agentgrid/gridindex/internal/config"
	"github.com/agentgrid/gridindex/internal/core/event"
	coresys "github.com/agentgrid/gridindex/internal/core/system"
	"github.com/agentgrid/gridindex/internal/data"
	"github.com/agentgrid/gridindex/internal/scripting"
	"github.com/agentgrid/gridindex/internal/system"
	"github.com/agentgrid/gridindex/internal/world"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printSection(title string) {
	lineLen := max(46-len(title)-1, 3)
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := max(42-len(label)-len(numStr), 3)
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

// ── Probe run ─────────────────────────────────────────────────────

func run() error {
	// 1. Load config; a missing default file falls back to built-in defaults
	cfgPath := "config/gridprobe.toml"
	explicit := false
	if p := os.Getenv("GRIDPROBE_CONFIG"); p != "" {
		cfgPath, explicit = p, true
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = config.Default()
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	// 3. Build the grid
	printSection("Grid")
	bus := event.NewBus()
	grid, err := world.NewGrid(cfg.Grid.Width, cfg.Grid.Height, cfg.Grid.Step,
		world.WithLogger(log.Named("grid")),
		world.WithEventBus(bus),
		world.WithBruteForceBelow(cfg.Grid.BruteForceBelow),
	)
	if err != nil {
		return fmt.Errorf("grid: %w", err)
	}
	printStat("Columns", grid.NX())
	printStat("Rows", grid.NY())

	// 4. Load the scenario
	printSection("Scenario")
	sc, err := data.LoadScenario(cfg.Probe.Scenario)
	if err != nil {
		return fmt.Errorf("scenario: %w", err)
	}
	scene, err := system.NewScene(grid, sc, log)
	if err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	zones, actors := sc.Count()
	printStat("Zones", zones)
	printStat("Actors", actors)

	// 5. Lua accept predicates
	printSection("Scripts")
	engine, err := scripting.NewEngine(cfg.Probe.Scripts, log.Named("lua"))
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer engine.Close()
	var accept world.AcceptFunc
	if cfg.Probe.Filter != "" {
		if accept, err = engine.Filter(cfg.Probe.Filter); err != nil {
			return fmt.Errorf("scripting: %w", err)
		}
		printOK(fmt.Sprintf("Filter %s", cfg.Probe.Filter))
	} else {
		printOK("No filter")
	}

	kind, err := world.ParseKind(cfg.Probe.Kind)
	if err != nil {
		return fmt.Errorf("probe kind: %w", err)
	}

	// 6. Create systems and register with runner
	runner := coresys.NewRunner()
	events := system.NewEventSystem(bus, scene, log)
	drift := system.NewDriftSystem(scene)
	probe := system.NewProbeSystem(scene, system.ProbeConfig{
		K:           cfg.Probe.K,
		Kind:        kind,
		Accept:      accept,
		MaxDistance: cfg.Probe.MaxDistance,
		Every:       cfg.Probe.Every,
	}, log.Named("probe"))
	runner.Register(events)
	runner.Register(drift)
	runner.Register(probe)

	var visibility *system.VisibilitySystem
	if cfg.Probe.View > 0 {
		visibility = system.NewVisibilitySystem(scene, cfg.Probe.View, log.Named("view"))
		runner.Register(visibility)
	}
	var cleanup *system.CleanupSystem
	if cfg.Probe.DetachOffGrid {
		cleanup = system.NewCleanupSystem(bus, scene, log)
		runner.Register(cleanup)
	}

	// 7. Tick loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(shutdownCh)

	var tickC <-chan time.Time
	if cfg.Probe.TickRate > 0 {
		ticker := time.NewTicker(cfg.Probe.TickRate)
		defer ticker.Stop()
		tickC = ticker.C
	}

	fmt.Println()
	log.Info("probe started",
		zap.Int("ticks", cfg.Probe.Ticks),
		zap.Duration("tick_rate", cfg.Probe.TickRate),
		zap.Int("systems", runner.Len()),
	)

	ticks := 0
loop:
	for ticks < cfg.Probe.Ticks {
		if tickC == nil {
			select {
			case sig := <-shutdownCh:
				log.Info("shutdown signal", zap.String("signal", sig.String()))
				break loop
			default:
			}
		} else {
			select {
			case <-tickC:
			case sig := <-shutdownCh:
				log.Info("shutdown signal", zap.String("signal", sig.String()))
				break loop
			}
		}
		runner.Tick(cfg.Probe.TickRate)
		ticks++
	}

	// 8. Summary
	fmt.Println()
	printSection("Summary")
	printStat("Ticks", ticks)
	printStat("Moves", drift.Moves())
	st := probe.Stats()
	printStat("Probes", st.Probes)
	printStat("Nearest results", st.Nearest)
	printStat("Neighbor results", st.Neighbors)
	printStat("Query errors", st.Errors)
	c := events.Counts()
	printStat("Cell entries", c.CellEntered)
	printStat("Cell exits", c.CellExited)
	printStat("Grid exits", c.GridLeft)
	if visibility != nil {
		in, out := visibility.Transitions()
		printStat("Came into view", in)
		printStat("Left view", out)
	}
	if cleanup != nil {
		printStat("Detached", cleanup.Detached())
	}
	printStat("Actors remaining", len(grid.Actors()))
	return nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
