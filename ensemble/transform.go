package ensemble

import (
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/lotka/sim"
)

// Transform is the per-frame render state for one particle.
type Transform struct {
	Position r3.Vec
	Scale    float64
	Color    color.RGBA
}

// speciesColors is the static color table. Color identifies species
// membership and never varies with abundance.
var speciesColors = [sim.NumSpecies]color.RGBA{
	sim.SpeciesPredator:   {R: 244, G: 67, B: 54, A: 255},
	sim.SpeciesPrey:       {R: 76, G: 175, B: 80, A: 255},
	sim.SpeciesCompetitor: {R: 33, G: 150, B: 243, A: 255},
}

// SpeciesColor returns the display color for a species.
func SpeciesColor(s sim.Species) color.RGBA {
	if int(s) < len(speciesColors) {
		return speciesColors[s]
	}
	return color.RGBA{R: 200, G: 200, B: 200, A: 255}
}

// Mapper turns a particle plus the published populations into render
// attributes. The fields are the reference constants, exposed so tests
// can pin them.
type Mapper struct {
	// ScaleFactor converts abundance directly to particle scale. The high
	// end is deliberately unclamped: a population explosion reads as
	// ballooning particles, a collapse as specks at the floor.
	ScaleFactor float64
	// Amplitude bounds the floating drift around each particle's anchor.
	Amplitude float64
}

// NewMapper returns a Mapper with the reference constants.
func NewMapper() Mapper {
	return Mapper{ScaleFactor: 0.45, Amplitude: 0.5}
}

// ComputeTransform derives position, scale and color for one particle.
// It is a pure function of its inputs and the mapper constants: identical
// calls produce bit-identical transforms. Drift is deterministic in
// elapsed seconds with the particle's own anchor as phase offset, so the
// cloud shimmers without any per-particle motion state. Z stays fixed to
// keep the shell's depth structure.
func (m Mapper) ComputeTransform(p Particle, populations sim.Vector, elapsed float64) Transform {
	return Transform{
		Position: r3.Vec{
			X: p.Base.X + math.Sin(elapsed+p.Base.X)*m.Amplitude,
			Y: p.Base.Y + math.Cos(elapsed+p.Base.Y)*m.Amplitude,
			Z: p.Base.Z,
		},
		Scale: populations[p.Species] * m.ScaleFactor,
		Color: SpeciesColor(p.Species),
	}
}
