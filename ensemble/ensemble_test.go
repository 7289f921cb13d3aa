package ensemble

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/lotka/sim"
)

const tol = 1e-9

func TestGenerateSpeciesBalance(t *testing.T) {
	cases := []struct {
		name  string
		count int
	}{
		{"reference count", 3000},
		{"small", 9},
		{"not divisible", 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			particles := Generate(tc.count, 10, 20, rand.New(rand.NewSource(1)))
			if len(particles) != tc.count {
				t.Fatalf("generated %d particles, want %d", len(particles), tc.count)
			}
			var counts [sim.NumSpecies]int
			for _, p := range particles {
				counts[p.Species]++
			}
			for s, got := range counts {
				want := tc.count / sim.NumSpecies
				if s < tc.count%sim.NumSpecies {
					want++
				}
				if got != want {
					t.Errorf("species %d: %d particles, want %d", s, got, want)
				}
			}
		})
	}
}

func TestGenerateRanges(t *testing.T) {
	particles := Generate(3000, 10, 20, rand.New(rand.NewSource(7)))
	for i, p := range particles {
		if p.Theta < 0 || p.Theta >= 2*math.Pi {
			t.Fatalf("particle %d: theta %.6f outside [0, 2pi)", i, p.Theta)
		}
		if p.Phi < 0 || p.Phi > math.Pi {
			t.Fatalf("particle %d: phi %.6f outside [0, pi]", i, p.Phi)
		}
		if p.Radius < 10 || p.Radius >= 20 {
			t.Fatalf("particle %d: radius %.6f outside [10, 20)", i, p.Radius)
		}
		norm := math.Sqrt(p.Base.X*p.Base.X + p.Base.Y*p.Base.Y + p.Base.Z*p.Base.Z)
		if math.Abs(norm-p.Radius) > tol {
			t.Fatalf("particle %d: |base| = %.9f, want radius %.9f", i, norm, p.Radius)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(300, 10, 20, rand.New(rand.NewSource(99)))
	b := Generate(300, 10, 20, rand.New(rand.NewSource(99)))
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("particle %d differs across identical seeds", i)
		}
	}
}
