// Package game wires the simulation runner, telemetry pipeline and
// rendering layers into one session. The runner advances populations on
// its own wall-clock ticker; the game reads published snapshots from the
// render loop and never touches engine state directly.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/lotka/camera"
	"github.com/pthm-cable/lotka/config"
	"github.com/pthm-cable/lotka/ensemble"
	"github.com/pthm-cable/lotka/renderer"
	"github.com/pthm-cable/lotka/sim"
	"github.com/pthm-cable/lotka/telemetry"
	"github.com/pthm-cable/lotka/ui"
)

// Panel layout
const (
	panelWidth  = 200
	panelMargin = 10
)

// headlessLogEvery is the progress log interval in steps.
const headlessLogEvery = 1000

// Options selects the run mode and the on-disk side channels.
type Options struct {
	Headless    bool
	Seed        int64
	MaxSteps    uint64 // headless step budget, 0 means unbounded
	OutputDir   string // CSV output directory, empty disables
	SnapshotDir string
	Scenario    sim.Scenario
	Resume      string // snapshot file to restore from
	LogStats    bool
}

// Game holds the complete session state.
type Game struct {
	cfg  *config.Config
	opts Options

	runner *sim.Runner

	// Telemetry pipeline, fed from the runner's publish callback
	recorder  *telemetry.Recorder
	collector *telemetry.Collector
	detector  *telemetry.EventDetector
	output    *telemetry.OutputManager

	// Rendering state, all nil in headless mode
	orbit     *camera.Orbit
	particles *renderer.EnsembleRenderer
	stars     *renderer.StarRenderer
	hud       *ui.HUD
	chart     *ui.PopulationChart
	panel     *ui.ScenarioPanel

	showChart bool
}

// New builds a session from the loaded configuration. The raylib window
// must already exist when opts.Headless is false.
func New(cfg *config.Config, opts Options) (*Game, error) {
	engine := sim.NewEngine(buildParameters(cfg))
	if err := engine.Restore(initialPopulations(cfg), 0, opts.Scenario); err != nil {
		return nil, err
	}

	g := &Game{
		cfg:       cfg,
		opts:      opts,
		runner:    sim.NewRunner(engine, cfg.Derived.StepInterval),
		recorder:  telemetry.NewRecorder(cfg.Telemetry.HistorySize),
		collector: telemetry.NewCollector(cfg.Telemetry.StatsWindow, cfg.Derived.StepInterval, cfg.Simulation.Floor),
		detector:  telemetry.NewEventDetector(cfg.Simulation.Floor, cfg.Telemetry.OvershootThreshold),
		showChart: true,
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	g.output = output
	if err := g.output.WriteConfig(cfg); err != nil {
		slog.Warn("run config not written", "error", err)
	}

	if opts.Resume != "" {
		if err := g.resume(opts.Resume); err != nil {
			g.output.Close()
			return nil, err
		}
	}

	g.runner.SetOnPublish(g.onPublish)

	if !opts.Headless {
		g.initRendering()
	}

	return g, nil
}

// buildParameters converts the config's dynamics section into engine
// parameters. Growth rates come from the scenario preset, not the config,
// so only the matrix and scalars are copied here. Shape mismatches are
// rejected by config validation; extra entries are ignored.
func buildParameters(cfg *config.Config) sim.Parameters {
	p := sim.DefaultParameters()
	p.TimeStep = cfg.Simulation.TimeStep
	p.Floor = cfg.Simulation.Floor
	for i, row := range cfg.Simulation.InteractionMatrix {
		if i >= sim.NumSpecies {
			break
		}
		for j, v := range row {
			if j >= sim.NumSpecies {
				break
			}
			p.Interaction[i][j] = v
		}
	}
	return p
}

// initialPopulations reads the starting abundances, falling back to 1.0
// for any species the config leaves out.
func initialPopulations(cfg *config.Config) sim.Vector {
	v := sim.Vector{1, 1, 1}
	for i, n := range cfg.Simulation.InitialPopulation {
		if i >= sim.NumSpecies {
			break
		}
		v[i] = n
	}
	return v
}

// resume restores runner state from a snapshot file. The scenario tag in
// the file decides the growth rates; stored rates are informational.
func (g *Game) resume(path string) error {
	snap, err := telemetry.LoadSnapshot(path)
	if err != nil {
		return fmt.Errorf("loading snapshot: %w", err)
	}
	scenario, err := sim.ParseScenario(snap.Scenario)
	if err != nil {
		return fmt.Errorf("snapshot scenario: %w", err)
	}
	if err := g.runner.Restore(snap.Populations, snap.Step, scenario); err != nil {
		return err
	}
	slog.Info("resumed from snapshot", "path", path, "step", snap.Step, "scenario", snap.Scenario)
	return nil
}

// initRendering builds the particle cloud, starfield, camera and UI.
// Requires an open raylib window.
func (g *Game) initRendering() {
	rng := rand.New(rand.NewSource(g.opts.Seed))

	particles := ensemble.Generate(g.cfg.Ensemble.Count, g.cfg.Ensemble.RadiusMin, g.cfg.Ensemble.RadiusMax, rng)
	mapper := ensemble.Mapper{
		ScaleFactor: g.cfg.Ensemble.ScaleFactor,
		Amplitude:   g.cfg.Ensemble.DriftAmplitude,
	}
	g.particles = renderer.NewEnsembleRenderer(particles, mapper)
	g.stars = renderer.NewStarRenderer(g.cfg.Stars.Count, g.cfg.Stars.Radius, rng)

	g.orbit = camera.New(r3.Vec{}, g.cfg.Camera.Distance)
	g.orbit.AutoRotateSpeed = g.cfg.Camera.AutoRotateSpeed

	g.hud = ui.NewHUD()
	g.chart = ui.NewPopulationChart(int32(g.cfg.Screen.Width), int32(g.cfg.Screen.Height))
	g.panel = ui.NewScenarioPanel(int32(g.cfg.Screen.Width)-panelWidth-panelMargin, panelMargin, panelWidth)
}

// Start launches the background sampling loop. Headless runs drive the
// engine directly through UpdateHeadless instead.
func (g *Game) Start() {
	if g.opts.Headless {
		return
	}
	g.runner.Run()
}

// Update processes input and advances render-side state. Simulation
// stepping happens on the runner's ticker, not here.
func (g *Game) Update() {
	g.handleInput()

	// Auto-rotate only while the user is not dragging.
	if !rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		g.orbit.Update(float64(rl.GetFrameTime()))
	}
}

// UpdateHeadless advances the simulation one step without a window and
// reports whether the step budget allows another.
func (g *Game) UpdateHeadless() bool {
	g.runner.Tick()
	snap := g.runner.Snapshot()
	if snap.Step%headlessLogEvery == 0 {
		slog.Info("progress",
			"step", snap.Step,
			"elapsed_sec", snap.Elapsed,
			"predator", snap.Populations[sim.SpeciesPredator],
			"prey", snap.Populations[sim.SpeciesPrey],
			"competitor", snap.Populations[sim.SpeciesCompetitor],
		)
	}
	return g.opts.MaxSteps == 0 || snap.Step < g.opts.MaxSteps
}

// Draw renders one frame from the latest published snapshot.
func (g *Game) Draw() {
	snap := g.runner.Snapshot()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 8, G: 10, B: 18, A: 255})

	pos := g.orbit.Position()
	cam := rl.Camera3D{
		Position: rl.Vector3{X: float32(pos.X), Y: float32(pos.Y), Z: float32(pos.Z)},
		Target: rl.Vector3{
			X: float32(g.orbit.Target.X),
			Y: float32(g.orbit.Target.Y),
			Z: float32(g.orbit.Target.Z),
		},
		Up:         rl.Vector3{Y: 1},
		Fovy:       60,
		Projection: rl.CameraPerspective,
	}

	rl.BeginMode3D(cam)
	g.stars.Draw()
	// Drift runs on the render clock so motion stays smooth between the
	// slower simulation publishes.
	g.particles.Draw(snap.Populations, rl.GetTime())
	rl.EndMode3D()

	g.drawOverlay(snap)

	rl.EndDrawing()
}

// drawOverlay renders the HUD, chart and control panel on top of the 3D
// view and applies any control panel action.
func (g *Game) drawOverlay(snap sim.Snapshot) {
	desc, err := sim.DescribeScenario(snap.Scenario)
	if err != nil {
		desc = ""
	}
	g.hud.Draw(ui.HUDData{
		Title:       "LOTKA-VOLTERRA ENSEMBLE",
		Scenario:    snap.Scenario.String(),
		Description: desc,
		Populations: snap.Populations,
		Step:        snap.Step,
		Elapsed:     snap.Elapsed,
		FPS:         rl.GetFPS(),
		Paused:      g.runner.Paused(),
	})

	if g.showChart {
		g.chart.Draw(g.recorder)
	}

	action, scenario := g.panel.Draw(snap.Scenario, g.runner.Paused())
	g.applyAction(action, scenario)

	g.hud.DrawControls(int32(rl.GetScreenHeight()),
		"[1-3] scenario  [SPACE] pause  [H] chart  [C] camera  [S] snapshot")
}

// Snapshot returns the latest published simulation state.
func (g *Game) Snapshot() sim.Snapshot {
	return g.runner.Snapshot()
}

// Unload stops the sampler and closes the telemetry outputs.
func (g *Game) Unload() {
	g.runner.Stop()
	if err := g.output.Close(); err != nil {
		slog.Error("closing telemetry output", "error", err)
	}
}
