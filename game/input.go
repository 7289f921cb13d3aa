package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/lotka/sim"
	"github.com/pthm-cable/lotka/ui"
)

// Camera feel
const (
	dragSensitivity = 0.005 // radians per pixel of mouse drag
	keyRotateSpeed  = 1.2   // radians per second on arrow keys
	wheelDollyStep  = 2.0   // distance units per wheel notch
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	if rl.IsKeyPressed(rl.KeySpace) {
		g.runner.SetPaused(!g.runner.Paused())
	}

	// Scenario hotkeys
	if rl.IsKeyPressed(rl.KeyOne) {
		g.selectScenario(sim.ScenarioBalanced)
	}
	if rl.IsKeyPressed(rl.KeyTwo) {
		g.selectScenario(sim.ScenarioExplosiveGrowth)
	}
	if rl.IsKeyPressed(rl.KeyThree) {
		g.selectScenario(sim.ScenarioCollapse)
	}

	// Overlay toggles
	if rl.IsKeyPressed(rl.KeyH) {
		g.showChart = !g.showChart
	}

	if rl.IsKeyPressed(rl.KeyC) {
		g.orbit.Reset()
	}
	if rl.IsKeyPressed(rl.KeyS) {
		g.saveSnapshot()
	}

	g.handleCameraInput()
	g.chart.HandleInput()
}

// handleResize checks for window resize and re-anchors the overlays.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := int32(rl.GetScreenWidth())
	h := int32(rl.GetScreenHeight())
	g.chart.Resize(w, h)
	g.panel = ui.NewScenarioPanel(w-panelWidth-panelMargin, panelMargin, panelWidth)
}

// handleCameraInput processes orbit and dolly controls.
func (g *Game) handleCameraInput() {
	// Mouse drag orbits
	if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		delta := rl.GetMouseDelta()
		g.orbit.Rotate(float64(delta.X)*dragSensitivity, float64(-delta.Y)*dragSensitivity)
	}

	// Arrow key orbiting
	dt := float64(rl.GetFrameTime())
	if rl.IsKeyDown(rl.KeyRight) {
		g.orbit.Rotate(keyRotateSpeed*dt, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		g.orbit.Rotate(-keyRotateSpeed*dt, 0)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.orbit.Rotate(0, keyRotateSpeed*dt)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.orbit.Rotate(0, -keyRotateSpeed*dt)
	}

	// Dolly: mouse wheel or +/- keys
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.orbit.Dolly(float64(-wheel) * wheelDollyStep)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.orbit.Dolly(-wheelDollyStep)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.orbit.Dolly(wheelDollyStep)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		g.orbit.Reset()
	}
}

// applyAction dispatches a control panel click.
func (g *Game) applyAction(action ui.ControlAction, scenario sim.Scenario) {
	switch action {
	case ui.ActionSelectScenario:
		g.selectScenario(scenario)
	case ui.ActionTogglePause:
		g.runner.SetPaused(!g.runner.Paused())
	case ui.ActionResetCamera:
		g.orbit.Reset()
	case ui.ActionSaveSnapshot:
		g.saveSnapshot()
	}
}

// selectScenario applies a growth-rate preset. Rejections leave the
// running scenario in place.
func (g *Game) selectScenario(s sim.Scenario) {
	if err := g.runner.Apply(s); err != nil {
		slog.Error("scenario change rejected", "scenario", s.String(), "error", err)
		return
	}
	slog.Info("scenario changed", "scenario", s.String())
}
