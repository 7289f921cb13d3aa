package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/lotka/ensemble"
	"github.com/pthm-cable/lotka/sim"
)

// abundanceBarMax is the abundance at which a HUD bar reads full.
const abundanceBarMax = 15.0

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title       string
	Scenario    string
	Description string
	Populations sim.Vector
	Step        uint64
	Elapsed     float64
	FPS         int32
	Paused      bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer

	// Title
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	// Scenario line
	rl.DrawText(
		fmt.Sprintf("Scenario: %s - %s", data.Scenario, data.Description),
		10, 35, 16, rl.LightGray,
	)

	// Abundance bars per species
	y := int32(58)
	for _, sp := range sim.AllSpecies() {
		fill := rlColor(ensemble.SpeciesColor(sp))
		y = r.DrawBar(10, y, sp.String(), data.Populations[sp], abundanceBarMax, fill, 260)
	}

	// Simulation info
	rl.DrawText(
		fmt.Sprintf("Step: %d | t=%.1fs | FPS: %d", data.Step, data.Elapsed, data.FPS),
		10, y+4, 16, rl.LightGray,
	)

	// Status
	statusText := "Running"
	if data.Paused {
		statusText = "PAUSED"
	}
	rl.DrawText(statusText, 10, y+24, 16, rl.Yellow)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}
