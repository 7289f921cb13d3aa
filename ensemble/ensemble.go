// Package ensemble generates the particle cloud and maps published
// population state to per-particle render attributes. Everything here is
// pure math over immutable particle data; rendering backends consume the
// computed transforms.
package ensemble

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/lotka/sim"
)

// Particle is one member of the render cloud. All fields are fixed at
// generation time; world position, scale and color are derived per frame
// by Mapper.ComputeTransform and never stored.
type Particle struct {
	Theta, Phi, Radius float64
	Base               r3.Vec // Cartesian anchor derived from the spherical coordinates
	Species            sim.Species
}

// Generate samples count particles over a spherical shell with radii in
// [radiusMin, radiusMax). Species are assigned round-robin by index, so
// any count divisible by three lands exactly balanced. The slice is
// generated once per session and shared read-only afterwards.
func Generate(count int, radiusMin, radiusMax float64, rng *rand.Rand) []Particle {
	particles := make([]Particle, count)
	for i := range particles {
		theta := rng.Float64() * 2 * math.Pi
		// acos of a uniform value in [-1, 1] gives uniform density over
		// the sphere surface; uniform phi would crowd the poles.
		phi := math.Acos(2*rng.Float64() - 1)
		radius := radiusMin + rng.Float64()*(radiusMax-radiusMin)

		particles[i] = Particle{
			Theta:   theta,
			Phi:     phi,
			Radius:  radius,
			Base:    sphericalToCartesian(theta, phi, radius),
			Species: sim.Species(i % sim.NumSpecies),
		}
	}
	return particles
}

// sphericalToCartesian converts physics-convention spherical coordinates
// (phi measured from the +Z pole) to a Cartesian vector.
func sphericalToCartesian(theta, phi, radius float64) r3.Vec {
	sinPhi := math.Sin(phi)
	return r3.Vec{
		X: radius * sinPhi * math.Cos(theta),
		Y: radius * sinPhi * math.Sin(theta),
		Z: radius * math.Cos(phi),
	}
}
