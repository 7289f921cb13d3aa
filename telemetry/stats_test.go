package telemetry

import (
	"math"
	"testing"
	"time"

	"github.com/pthm-cable/lotka/sim"
)

const tol = 1e-9

func sample(step uint64, pops sim.Vector) Sample {
	return Sample{
		Step:        step,
		Elapsed:     float64(step) * 0.05,
		Scenario:    sim.ScenarioBalanced,
		Populations: pops,
	}
}

func TestCollectorWindowSizing(t *testing.T) {
	tests := []struct {
		name      string
		windowSec float64
		interval  time.Duration
		want      int
	}{
		{"five seconds at 100ms", 5.0, 100 * time.Millisecond, 50},
		{"one second at 100ms", 1.0, 100 * time.Millisecond, 10},
		{"sub-interval window clamps to one", 0.01, 100 * time.Millisecond, 1},
		{"rounds to nearest", 0.55, 100 * time.Millisecond, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCollector(tt.windowSec, tt.interval, 0.1)
			if got := c.SamplesPerWindow(); got != tt.want {
				t.Errorf("SamplesPerWindow() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCollectorFlushStats(t *testing.T) {
	c := NewCollector(0.3, 100*time.Millisecond, 0.1)

	c.Record(sample(10, sim.Vector{1.0, 4.0, 2.0}))
	c.Record(sample(11, sim.Vector{2.0, 5.0, 2.0}))
	if c.ShouldFlush() {
		t.Fatal("ShouldFlush() = true before window is full")
	}
	c.Record(sample(12, sim.Vector{3.0, 6.0, 2.0}))
	if !c.ShouldFlush() {
		t.Fatal("ShouldFlush() = false with a full window")
	}

	ws, ok := c.Flush()
	if !ok {
		t.Fatal("Flush() returned ok = false")
	}

	if ws.WindowStart != 10 || ws.WindowEnd != 12 {
		t.Errorf("window bounds = [%d, %d], want [10, 12]", ws.WindowStart, ws.WindowEnd)
	}
	if ws.Scenario != "balanced" {
		t.Errorf("Scenario = %q, want %q", ws.Scenario, "balanced")
	}

	// Predator series is 1, 2, 3: mean 2, sample std 1.
	if math.Abs(ws.PredatorMin-1.0) > tol || math.Abs(ws.PredatorMax-3.0) > tol {
		t.Errorf("predator min/max = %v/%v, want 1/3", ws.PredatorMin, ws.PredatorMax)
	}
	if math.Abs(ws.PredatorMean-2.0) > tol {
		t.Errorf("predator mean = %v, want 2", ws.PredatorMean)
	}
	if math.Abs(ws.PredatorStd-1.0) > tol {
		t.Errorf("predator std = %v, want 1", ws.PredatorStd)
	}

	// Competitor series is constant: std 0.
	if math.Abs(ws.CompetitorStd) > tol {
		t.Errorf("competitor std = %v, want 0", ws.CompetitorStd)
	}
	if math.Abs(ws.Mean(sim.SpeciesPrey)-5.0) > tol {
		t.Errorf("Mean(prey) = %v, want 5", ws.Mean(sim.SpeciesPrey))
	}
}

func TestCollectorFloorContacts(t *testing.T) {
	c := NewCollector(0.4, 100*time.Millisecond, 0.1)

	c.Record(sample(1, sim.Vector{0.1, 5.0, 5.0})) // one species at floor
	c.Record(sample(2, sim.Vector{0.2, 5.0, 5.0})) // clear
	c.Record(sample(3, sim.Vector{5.0, 0.1, 0.1})) // two at floor counts once
	c.Record(sample(4, sim.Vector{0.1, 0.1, 0.1})) // all at floor

	ws, ok := c.Flush()
	if !ok {
		t.Fatal("Flush() returned ok = false")
	}
	if ws.FloorContacts != 3 {
		t.Errorf("FloorContacts = %d, want 3", ws.FloorContacts)
	}
}

func TestCollectorFlushEmpty(t *testing.T) {
	c := NewCollector(1.0, 100*time.Millisecond, 0.1)
	if _, ok := c.Flush(); ok {
		t.Error("Flush() on empty collector returned ok = true")
	}
}

func TestCollectorResetsAfterFlush(t *testing.T) {
	c := NewCollector(0.2, 100*time.Millisecond, 0.1)

	c.Record(sample(1, sim.Vector{1, 1, 1}))
	c.Record(sample(2, sim.Vector{1, 1, 1}))
	if _, ok := c.Flush(); !ok {
		t.Fatal("first Flush() returned ok = false")
	}

	c.Record(sample(3, sim.Vector{2, 2, 2}))
	c.Record(sample(4, sim.Vector{4, 4, 4}))
	ws, ok := c.Flush()
	if !ok {
		t.Fatal("second Flush() returned ok = false")
	}
	if ws.WindowStart != 3 || ws.WindowEnd != 4 {
		t.Errorf("window bounds = [%d, %d], want [3, 4]", ws.WindowStart, ws.WindowEnd)
	}
	if math.Abs(ws.PredatorMean-3.0) > tol {
		t.Errorf("predator mean = %v, want 3", ws.PredatorMean)
	}
}

func TestSummarizeSingleSample(t *testing.T) {
	st := summarize([]float64{2.5})
	if st.Min != 2.5 || st.Max != 2.5 || st.Mean != 2.5 {
		t.Errorf("summarize single = %+v, want min/max/mean 2.5", st)
	}
	if st.StdDev != 0 {
		t.Errorf("StdDev = %v, want 0 for a single sample", st.StdDev)
	}
}
