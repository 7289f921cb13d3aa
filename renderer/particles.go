// Package renderer draws the particle ensemble and backdrop with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/lotka/ensemble"
	"github.com/pthm-cable/lotka/sim"
)

// Sphere tessellation. Low poly keeps 3000 spheres cheap.
const (
	sphereRings  = 6
	sphereSlices = 8
)

// EnsembleRenderer renders the particle ensemble as spheres.
type EnsembleRenderer struct {
	mapper    ensemble.Mapper
	particles []ensemble.Particle
}

// NewEnsembleRenderer creates a renderer over a fixed ensemble.
func NewEnsembleRenderer(particles []ensemble.Particle, mapper ensemble.Mapper) *EnsembleRenderer {
	return &EnsembleRenderer{
		mapper:    mapper,
		particles: particles,
	}
}

// Draw renders every particle at its transform for the given populations.
// Must be called inside BeginMode3D.
func (r *EnsembleRenderer) Draw(populations sim.Vector, elapsed float64) {
	for i := range r.particles {
		tr := r.mapper.ComputeTransform(r.particles[i], populations, elapsed)

		pos := rl.Vector3{
			X: float32(tr.Position.X),
			Y: float32(tr.Position.Y),
			Z: float32(tr.Position.Z),
		}
		color := rl.Color{R: tr.Color.R, G: tr.Color.G, B: tr.Color.B, A: tr.Color.A}

		rl.DrawSphereEx(pos, float32(tr.Scale), sphereRings, sphereSlices, color)
	}
}
