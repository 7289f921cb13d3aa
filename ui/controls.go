package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/lotka/sim"
)

// ControlAction identifies a control the user clicked.
type ControlAction uint8

const (
	ActionNone ControlAction = iota
	ActionSelectScenario
	ActionTogglePause
	ActionResetCamera
	ActionSaveSnapshot
)

// Button layout
const (
	buttonHeight  = 26
	buttonSpacing = 6
)

// ScenarioPanel renders the scenario buttons and run controls.
type ScenarioPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewScenarioPanel creates a new scenario panel.
func NewScenarioPanel(x, y, width int32) *ScenarioPanel {
	return &ScenarioPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Draw renders the panel. It returns the clicked action and, for
// ActionSelectScenario, the chosen scenario.
func (c *ScenarioPanel) Draw(active sim.Scenario, paused bool) (ControlAction, sim.Scenario) {
	r := c.renderer
	padding := r.Theme.Padding

	scenarios := sim.Scenarios()
	rows := int32(len(scenarios)) + 3 // buttons below the scenario list
	panelHeight := rows*(buttonHeight+buttonSpacing) + padding*2 + r.Theme.LineHeight + 4

	r.DrawPanel(c.x, c.y, c.width, panelHeight)

	y := c.y + padding
	y = r.DrawSectionHeader(c.x+padding, y, "Scenario")
	y += 4

	action := ActionNone
	selected := active

	buttonWidth := float32(c.width - padding*2)
	for _, s := range scenarios {
		label := s.String()
		if s == active {
			label = "> " + label
		}
		bounds := rl.Rectangle{
			X:      float32(c.x + padding),
			Y:      float32(y),
			Width:  buttonWidth,
			Height: buttonHeight,
		}
		if gui.Button(bounds, label) && s != active {
			action = ActionSelectScenario
			selected = s
		}
		y += buttonHeight + buttonSpacing
	}

	pauseLabel := "Pause"
	if paused {
		pauseLabel = "Resume"
	}
	if gui.Button(rl.Rectangle{X: float32(c.x + padding), Y: float32(y), Width: buttonWidth, Height: buttonHeight}, pauseLabel) {
		action = ActionTogglePause
	}
	y += buttonHeight + buttonSpacing

	if gui.Button(rl.Rectangle{X: float32(c.x + padding), Y: float32(y), Width: buttonWidth, Height: buttonHeight}, "Reset Camera") {
		action = ActionResetCamera
	}
	y += buttonHeight + buttonSpacing

	if gui.Button(rl.Rectangle{X: float32(c.x + padding), Y: float32(y), Width: buttonWidth, Height: buttonHeight}, "Save Snapshot") {
		action = ActionSaveSnapshot
	}

	return action, selected
}
