package renderer

import (
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/lotka/ensemble"
)

// starTiers are the brightness levels stars are drawn at.
var starTiers = [3]uint8{110, 170, 255}

// StarRenderer renders a static starfield on a distant shell so the orbit
// camera reads as motion.
type StarRenderer struct {
	positions []rl.Vector3
	colors    []rl.Color
}

// NewStarRenderer places count stars uniformly on a shell of the given radius.
func NewStarRenderer(count int, radius float64, rng *rand.Rand) *StarRenderer {
	if count <= 0 {
		return &StarRenderer{}
	}

	// Reuse the ensemble placement math with a degenerate radius range.
	stars := ensemble.Generate(count, radius, radius, rng)

	s := &StarRenderer{
		positions: make([]rl.Vector3, count),
		colors:    make([]rl.Color, count),
	}
	for i, st := range stars {
		s.positions[i] = rl.Vector3{
			X: float32(st.Base.X),
			Y: float32(st.Base.Y),
			Z: float32(st.Base.Z),
		}
		tier := starTiers[rng.Intn(len(starTiers))]
		s.colors[i] = rl.Color{R: tier, G: tier, B: tier, A: 255}
	}
	return s
}

// Draw renders the starfield. Must be called inside BeginMode3D.
func (s *StarRenderer) Draw() {
	for i := range s.positions {
		rl.DrawPoint3D(s.positions[i], s.colors[i])
	}
}
