package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/lotka/config"
	"github.com/pthm-cable/lotka/game"
	"github.com/pthm-cable/lotka/sim"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	scenarioTag := flag.String("scenario", "balanced", "Starting scenario: balanced, explosive-growth or collapse")
	logStats := flag.Bool("log-stats", false, "Output windowed stats via slog")
	snapshotDir := flag.String("snapshot-dir", "snapshots", "Directory for snapshot files")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	resume := flag.String("resume", "", "Resume from a snapshot file")
	seed := flag.Int64("seed", 0, "Particle placement seed (0 = time-based)")
	maxSteps := flag.Uint64("max-steps", 10000, "Headless: stop after N steps (0 = unlimited)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	scenario, err := sim.ParseScenario(*scenarioTag)
	if err != nil {
		slog.Error("invalid scenario flag", "error", err)
		os.Exit(1)
	}

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Headless:    *headless,
		Seed:        rngSeed,
		MaxSteps:    *maxSteps,
		OutputDir:   *outputDir,
		SnapshotDir: *snapshotDir,
		Scenario:    scenario,
		Resume:      *resume,
		LogStats:    *logStats,
	}

	if *headless {
		// Headless mode - pure CPU simulation, no raylib needed
		g, err := game.New(cfg, opts)
		if err != nil {
			slog.Error("failed to build session", "error", err)
			os.Exit(1)
		}
		defer g.Unload()

		slog.Info("starting headless simulation",
			"scenario", scenario.String(),
			"max_steps", *maxSteps,
		)

		for g.UpdateHeadless() {
		}

		snap := g.Snapshot()
		slog.Info("run complete", "step", snap.Step, "elapsed_sec", snap.Elapsed)
	} else {
		// Graphical mode
		rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Lotka-Volterra Ensemble")
		defer rl.CloseWindow()

		rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

		g, err := game.New(cfg, opts)
		if err != nil {
			slog.Error("failed to build session", "error", err)
			rl.CloseWindow()
			os.Exit(1)
		}
		defer g.Unload()

		g.Start()
		for !rl.WindowShouldClose() {
			g.Update()
			g.Draw()
		}
	}
}
