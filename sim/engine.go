// Package sim implements a three-species generalized Lotka-Volterra model
// advanced by fixed-step explicit Euler integration. Scenario presets swap
// the growth-rate triple at runtime; the interaction matrix and time step
// stay fixed for a session. A Runner samples the engine on a wall-clock
// ticker and publishes immutable population snapshots for renderers.
package sim

import "math"

// Vector holds one abundance value per species, indexed by Species.
type Vector [NumSpecies]float64

// Matrix is the species interaction matrix. Entry (i, j) is the per-unit
// effect of species j's abundance on species i's growth rate. Diagonal
// entries model self-limitation, off-diagonal entries predation and
// competition.
type Matrix [NumSpecies][NumSpecies]float64

// Parameters holds everything Step needs besides the current populations.
type Parameters struct {
	GrowthRates [NumSpecies]float64
	Interaction Matrix
	TimeStep    float64
	Floor       float64
}

// DefaultParameters returns the reference configuration: the balanced
// growth rates and a cyclic interaction structure (each species preys on
// the next) with weak self-limitation on the diagonal.
func DefaultParameters() Parameters {
	return Parameters{
		GrowthRates: presets[ScenarioBalanced].rates,
		Interaction: Matrix{
			{-0.1, 0.5, -0.2},
			{-0.5, -0.1, 0.3},
			{0.2, -0.3, -0.1},
		},
		TimeStep: 0.05,
		Floor:    0.1,
	}
}

// Step advances the populations by one explicit Euler step of
//
//	dN_i/dt = N_i (r_i + Σ_j A_ij N_j)
//
// and clamps each component to p.Floor from below. Step is a pure function
// of its arguments; the input vector is never modified. The clamp is the
// only bound on the trajectory: oscillating or diverging output under
// extreme parameters is accepted behavior, not an error.
func Step(current Vector, p Parameters) Vector {
	var next Vector
	for i := 0; i < NumSpecies; i++ {
		interaction := 0.0
		for j := 0; j < NumSpecies; j++ {
			interaction += p.Interaction[i][j] * current[j]
		}
		dN := current[i] * (p.GrowthRates[i] + interaction)
		next[i] = math.Max(p.Floor, current[i]+dN*p.TimeStep)
	}
	return next
}

// Engine owns the simulation parameters and the current population state.
// It is not safe for concurrent use; Runner serializes access to it.
type Engine struct {
	params   Parameters
	current  Vector
	scenario Scenario
	steps    uint64
}

// NewEngine returns an engine in the reference initial condition: balanced
// scenario, every population at 1.0.
func NewEngine(p Parameters) *Engine {
	return &Engine{
		params:   p,
		current:  Vector{1, 1, 1},
		scenario: ScenarioBalanced,
	}
}

// Advance performs one integration step and returns the new populations.
func (e *Engine) Advance() Vector {
	e.current = Step(e.current, e.params)
	e.steps++
	return e.current
}

// Populations returns the current population vector.
func (e *Engine) Populations() Vector { return e.current }

// Parameters returns a copy of the active parameters.
func (e *Engine) Parameters() Parameters { return e.params }

// Scenario returns the most recently applied scenario.
func (e *Engine) Scenario() Scenario { return e.scenario }

// Steps returns the number of integration steps run so far.
func (e *Engine) Steps() uint64 { return e.steps }

// Elapsed returns simulated time in seconds (steps times dt).
func (e *Engine) Elapsed() float64 { return float64(e.steps) * e.params.TimeStep }

// ApplyScenario installs the preset's growth rates. Populations are left
// untouched, so the new regime takes over from wherever the trajectory
// currently is. Unknown scenarios fail with ErrUnknownScenario and leave
// all state unchanged.
func (e *Engine) ApplyScenario(s Scenario) error {
	rates, err := GrowthRatesFor(s)
	if err != nil {
		return err
	}
	e.params.GrowthRates = rates
	e.scenario = s
	return nil
}

// Restore replaces the engine state from a saved snapshot. Populations are
// clamped to the floor so the floor invariant survives a hand-edited file.
func (e *Engine) Restore(populations Vector, steps uint64, s Scenario) error {
	if err := e.ApplyScenario(s); err != nil {
		return err
	}
	for i := range populations {
		populations[i] = math.Max(e.params.Floor, populations[i])
	}
	e.current = populations
	e.steps = steps
	return nil
}
