package telemetry

import (
	"testing"

	"github.com/pthm-cable/lotka/sim"
)

func TestRecorderAppendAndRecent(t *testing.T) {
	r := NewRecorder(5)

	for step := uint64(1); step <= 3; step++ {
		r.Append(sample(step, sim.Vector{float64(step), 1, 1}))
	}

	if r.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", r.Len())
	}

	recent := r.Recent()
	for i, s := range recent {
		if s.Step != uint64(i+1) {
			t.Errorf("Recent()[%d].Step = %d, want %d", i, s.Step, i+1)
		}
	}
}

func TestRecorderWrapEvictsOldest(t *testing.T) {
	r := NewRecorder(3)

	for step := uint64(1); step <= 5; step++ {
		r.Append(sample(step, sim.Vector{1, 1, 1}))
	}

	if r.Len() != 3 {
		t.Fatalf("Len() = %d, want 3 after wrap", r.Len())
	}

	recent := r.Recent()
	wantSteps := []uint64{3, 4, 5}
	for i, want := range wantSteps {
		if recent[i].Step != want {
			t.Errorf("Recent()[%d].Step = %d, want %d", i, recent[i].Step, want)
		}
	}
}

func TestRecorderSeries(t *testing.T) {
	r := NewRecorder(4)

	r.Append(sample(1, sim.Vector{1.0, 10.0, 100.0}))
	r.Append(sample(2, sim.Vector{2.0, 20.0, 200.0}))
	r.Append(sample(3, sim.Vector{3.0, 30.0, 300.0}))

	prey := r.Series(sim.SpeciesPrey)
	want := []float64{10.0, 20.0, 30.0}
	if len(prey) != len(want) {
		t.Fatalf("Series length = %d, want %d", len(prey), len(want))
	}
	for i := range want {
		if prey[i] != want[i] {
			t.Errorf("Series(prey)[%d] = %v, want %v", i, prey[i], want[i])
		}
	}
}

func TestRecorderLatest(t *testing.T) {
	r := NewRecorder(2)

	if _, ok := r.Latest(); ok {
		t.Error("Latest() on empty recorder returned ok = true")
	}

	r.Append(sample(7, sim.Vector{1, 2, 3}))
	r.Append(sample(8, sim.Vector{4, 5, 6}))

	latest, ok := r.Latest()
	if !ok {
		t.Fatal("Latest() returned ok = false")
	}
	if latest.Step != 8 {
		t.Errorf("Latest().Step = %d, want 8", latest.Step)
	}
}

func TestRecorderMinCapacity(t *testing.T) {
	r := NewRecorder(0)
	if r.Cap() != 1 {
		t.Errorf("Cap() = %d, want 1", r.Cap())
	}

	r.Append(sample(1, sim.Vector{1, 1, 1}))
	r.Append(sample(2, sim.Vector{2, 2, 2}))
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
	latest, _ := r.Latest()
	if latest.Step != 2 {
		t.Errorf("Latest().Step = %d, want 2", latest.Step)
	}
}
