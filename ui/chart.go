package ui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/lotka/ensemble"
	"github.com/pthm-cable/lotka/sim"
	"github.com/pthm-cable/lotka/telemetry"
)

// PopulationChart displays abundance history as line graphs along the
// bottom of the screen.
type PopulationChart struct {
	renderer *Renderer

	screenWidth  int32
	screenHeight int32

	// Panel dimensions
	panelWidth  int32
	panelHeight int32
	panelX      int32
	panelY      int32

	// Series visibility (toggled by clicking legend)
	seriesVisible [sim.NumSpecies]bool

	// Series metadata
	seriesNames  [sim.NumSpecies]string
	seriesColors [sim.NumSpecies]rl.Color
}

// NewPopulationChart creates a chart spanning the bottom of the screen.
func NewPopulationChart(screenWidth, screenHeight int32) *PopulationChart {
	p := &PopulationChart{
		renderer:     NewRenderer(),
		panelHeight:  170,
		panelX:       10,
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
	}
	p.layout()

	for _, sp := range sim.AllSpecies() {
		p.seriesVisible[sp] = true
		p.seriesNames[sp] = sp.String()
		p.seriesColors[sp] = rlColor(ensemble.SpeciesColor(sp))
	}

	return p
}

// layout recomputes the panel rectangle from the screen size.
func (p *PopulationChart) layout() {
	p.panelWidth = p.screenWidth - 20
	if p.panelWidth < 400 {
		p.panelWidth = 400
	}
	p.panelY = p.screenHeight - p.panelHeight - 10
}

// Resize updates panel dimensions when the window is resized.
func (p *PopulationChart) Resize(screenWidth, screenHeight int32) {
	p.screenWidth = screenWidth
	p.screenHeight = screenHeight
	p.layout()
}

// HandleInput processes mouse clicks for legend toggling.
func (p *PopulationChart) HandleInput() {
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}

	mx := rl.GetMouseX()
	my := rl.GetMouseY()

	legendY := p.panelY + p.panelHeight - 24
	legendX := p.panelX + 10

	for i := range p.seriesVisible {
		itemX := legendX + int32(i)*100
		itemW := int32(95)
		itemH := int32(18)

		if mx >= itemX && mx < itemX+itemW && my >= legendY && my < legendY+itemH {
			p.seriesVisible[i] = !p.seriesVisible[i]
			return
		}
	}
}

// Draw renders the chart from the recorded history.
func (p *PopulationChart) Draw(rec *telemetry.Recorder) {
	t := p.renderer.Theme

	// Panel background
	rl.DrawRectangle(p.panelX, p.panelY, p.panelWidth, p.panelHeight, t.PanelBg)
	rl.DrawRectangleLines(p.panelX, p.panelY, p.panelWidth, p.panelHeight, t.PanelBorder)

	// Title
	rl.DrawText("POPULATIONS", p.panelX+10, p.panelY+6, 14, rl.White)

	if rec.Len() < 2 {
		rl.DrawText("Waiting for data...", p.panelX+100, p.panelY+70, 14, t.TextDim)
		return
	}

	// Layout dimensions
	graphX := p.panelX + 10
	graphY := p.panelY + 24
	graphW := p.panelWidth - 20
	graphH := p.panelHeight - 54 // Leave room for legend

	var series [sim.NumSpecies][]float64
	for _, sp := range sim.AllSpecies() {
		series[sp] = rec.Series(sp)
	}

	p.drawGraph(graphX, graphY, graphW, graphH, series)
	p.drawLegend(p.panelX+10, p.panelY+p.panelHeight-24, series)
}

// drawGraph renders the grid and series lines.
func (p *PopulationChart) drawGraph(x, y, w, h int32, series [sim.NumSpecies][]float64) {
	t := p.renderer.Theme

	rl.DrawRectangle(x, y, w, h, t.GraphBg)
	rl.DrawRectangleLines(x, y, w, h, t.PanelBorder)

	// Grid lines
	for i := int32(1); i < 4; i++ {
		gridY := y + (h * i / 4)
		rl.DrawLine(x, gridY, x+w, gridY, t.GraphGrid)
	}
	for i := int32(1); i < 8; i++ {
		gridX := x + (w * i / 8)
		rl.DrawLine(gridX, y, gridX, y+h, t.GraphGrid)
	}

	min, max := p.seriesRange(series)

	for _, sp := range sim.AllSpecies() {
		if p.seriesVisible[sp] {
			p.drawSeriesLine(x, y, w, h, series[sp], min, max, p.seriesColors[sp])
		}
	}

	// Y-axis labels
	rl.DrawText(formatAbundance(max), x+2, y+2, 9, t.TextDim)
	rl.DrawText(formatAbundance(min), x+2, y+h-10, 9, t.TextDim)
}

// seriesRange finds min/max across visible series, padded slightly.
func (p *PopulationChart) seriesRange(series [sim.NumSpecies][]float64) (min, max float64) {
	min = math.MaxFloat64
	max = -math.MaxFloat64
	hasVisible := false

	for _, sp := range sim.AllSpecies() {
		if !p.seriesVisible[sp] {
			continue
		}
		hasVisible = true

		for _, v := range series[sp] {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}

	if !hasVisible || min >= max {
		return 0, 1
	}

	padding := (max - min) * 0.1
	if padding < 0.001 {
		padding = 0.001
	}
	return min - padding, max + padding
}

// drawSeriesLine draws one species history as a line.
func (p *PopulationChart) drawSeriesLine(x, y, w, h int32, series []float64, minVal, maxVal float64, color rl.Color) {
	if len(series) < 2 {
		return
	}

	valueRange := maxVal - minVal
	if valueRange <= 0 {
		valueRange = 1
	}

	var prevX, prevY int32
	for i, v := range series {
		// Map to screen coordinates
		px := x + int32(float64(i)*float64(w)/float64(len(series)-1))
		py := y + h - int32((v-minVal)/valueRange*float64(h))

		// Clamp to graph bounds
		if py < y {
			py = y
		}
		if py > y+h {
			py = y + h
		}

		if i > 0 {
			rl.DrawLine(prevX, prevY, px, py, color)
		}
		prevX, prevY = px, py
	}
}

// drawLegend draws the interactive legend with current values.
func (p *PopulationChart) drawLegend(x, y int32, series [sim.NumSpecies][]float64) {
	t := p.renderer.Theme
	itemWidth := int32(100)

	for i := range p.seriesVisible {
		itemX := x + int32(i)*itemWidth
		color := p.seriesColors[i]

		// Dim if not visible
		if !p.seriesVisible[i] {
			color.A = 80
		}

		rl.DrawRectangle(itemX, y+2, 10, 10, color)

		label := p.seriesNames[i]
		if n := len(series[i]); n > 0 {
			label = fmt.Sprintf("%s %s", p.seriesNames[i], formatAbundance(series[i][n-1]))
		}

		textColor := t.LabelColor
		if !p.seriesVisible[i] {
			textColor = t.TextDim
		}
		rl.DrawText(label, itemX+14, y, 11, textColor)
	}

	hintX := x + int32(len(p.seriesVisible))*itemWidth + 10
	rl.DrawText("(click to toggle)", hintX, y, 10, t.TextDim)
}

// formatAbundance formats an abundance value for display.
func formatAbundance(v float64) string {
	if v >= 100 {
		return fmt.Sprintf("%.0f", v)
	}
	if v >= 10 {
		return fmt.Sprintf("%.1f", v)
	}
	return fmt.Sprintf("%.2f", v)
}
