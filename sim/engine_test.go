package sim

import (
	"math"
	"testing"
)

const tol = 1e-9

func TestStepKnownValue(t *testing.T) {
	p := DefaultParameters()
	start := Vector{1, 1, 1}

	got := Step(start, p)

	// Hand-expanded Euler update for each species at N = [1,1,1].
	want := Vector{
		1.0 + 1.0*(0.5+(-0.1*1.0+0.5*1.0-0.2*1.0))*0.05,
		1.0 + 1.0*(0.3+(-0.5*1.0-0.1*1.0+0.3*1.0))*0.05,
		1.0 + 1.0*(0.4+(0.2*1.0-0.3*1.0-0.1*1.0))*0.05,
	}
	for i := range got {
		if math.Abs(got[i]-want[i]) > tol {
			t.Errorf("species %d: got %.12f, want %.12f", i, got[i], want[i])
		}
	}
}

func TestStepFloorInvariant(t *testing.T) {
	cases := []struct {
		name  string
		rates [NumSpecies]float64
		start Vector
	}{
		{"balanced from ones", [NumSpecies]float64{0.5, 0.3, 0.4}, Vector{1, 1, 1}},
		{"collapse from ones", [NumSpecies]float64{-0.8, -0.6, -0.7}, Vector{1, 1, 1}},
		{"collapse from floor", [NumSpecies]float64{-0.8, -0.6, -0.7}, Vector{0.1, 0.1, 0.1}},
		{"harsh decline", [NumSpecies]float64{-50, -50, -50}, Vector{5, 0.2, 12}},
		{"mixed extremes", [NumSpecies]float64{8, -20, 0}, Vector{0.1, 30, 0.5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultParameters()
			p.GrowthRates = tc.rates
			v := tc.start
			for step := 0; step < 200; step++ {
				v = Step(v, p)
				for i := range v {
					if v[i] < p.Floor {
						t.Fatalf("step %d species %d: %.9f below floor %.2f", step, i, v[i], p.Floor)
					}
				}
			}
		})
	}
}

func TestStepPure(t *testing.T) {
	p := DefaultParameters()
	v := Vector{1.7, 0.4, 2.9}
	orig := v

	first := Step(v, p)
	second := Step(v, p)

	if v != orig {
		t.Errorf("input mutated: %v -> %v", orig, v)
	}
	if first != second {
		t.Errorf("repeated call diverged: %v vs %v", first, second)
	}
}

func TestAllNegativeRatesConvergeToFloor(t *testing.T) {
	p := Parameters{
		GrowthRates: [NumSpecies]float64{-0.8, -0.6, -0.7},
		Interaction: Matrix{
			{-0.1, 0, 0},
			{0, -0.1, 0},
			{0, 0, -0.1},
		},
		TimeStep: 0.05,
		Floor:    0.1,
	}
	v := Vector{1, 1, 1}
	const maxSteps = 400
	atFloor := false
	for step := 0; step < maxSteps; step++ {
		next := Step(v, p)
		for i := range next {
			if next[i] > v[i]+tol {
				t.Fatalf("step %d species %d: increased %.9f -> %.9f", step, i, v[i], next[i])
			}
		}
		v = next
		if v == (Vector{0.1, 0.1, 0.1}) {
			atFloor = true
			break
		}
	}
	if !atFloor {
		t.Fatalf("populations %v never reached the floor within %d steps", v, maxSteps)
	}
}

func TestApplyScenarioTakesEffect(t *testing.T) {
	e := NewEngine(DefaultParameters())
	e.Advance()

	if err := e.ApplyScenario(ScenarioCollapse); err != nil {
		t.Fatalf("apply collapse: %v", err)
	}
	want, _ := GrowthRatesFor(ScenarioCollapse)
	if e.Parameters().GrowthRates != want {
		t.Errorf("growth rates = %v, want %v", e.Parameters().GrowthRates, want)
	}

	before := e.Populations()
	after := e.Advance()
	for i := range after {
		if after[i] >= before[i] {
			t.Errorf("species %d: expected decline under collapse, got %.6f -> %.6f", i, before[i], after[i])
		}
	}
}

func TestEngineRestore(t *testing.T) {
	e := NewEngine(DefaultParameters())
	if err := e.Restore(Vector{0.01, 5, 1}, 42, ScenarioExplosiveGrowth); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if got, want := e.Populations(), (Vector{0.1, 5, 1}); got != want {
		t.Errorf("populations = %v, want %v (below-floor values must be clamped)", got, want)
	}
	if e.Steps() != 42 {
		t.Errorf("steps = %d, want 42", e.Steps())
	}
	if e.Scenario() != ScenarioExplosiveGrowth {
		t.Errorf("scenario = %v, want explosive-growth", e.Scenario())
	}

	if err := e.Restore(Vector{1, 1, 1}, 0, Scenario(7)); err == nil {
		t.Error("expected error restoring an unknown scenario")
	}
}
