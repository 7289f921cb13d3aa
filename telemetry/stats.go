package telemetry

import (
	"log/slog"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/lotka/sim"
)

// floorEps absorbs rounding when comparing abundances against the floor.
const floorEps = 1e-9

// SpeciesStats summarizes one species over a stats window.
type SpeciesStats struct {
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
}

// WindowStats aggregates the samples of one stats window. Field order is
// the CSV column order.
type WindowStats struct {
	WindowStart uint64  `csv:"window_start_step"`
	WindowEnd   uint64  `csv:"window_end_step"`
	ElapsedSec  float64 `csv:"elapsed_sec"`
	Scenario    string  `csv:"scenario"`

	PredatorMin  float64 `csv:"predator_min"`
	PredatorMax  float64 `csv:"predator_max"`
	PredatorMean float64 `csv:"predator_mean"`
	PredatorStd  float64 `csv:"predator_std"`

	PreyMin  float64 `csv:"prey_min"`
	PreyMax  float64 `csv:"prey_max"`
	PreyMean float64 `csv:"prey_mean"`
	PreyStd  float64 `csv:"prey_std"`

	CompetitorMin  float64 `csv:"competitor_min"`
	CompetitorMax  float64 `csv:"competitor_max"`
	CompetitorMean float64 `csv:"competitor_mean"`
	CompetitorStd  float64 `csv:"competitor_std"`

	// FloorContacts counts samples where at least one species sat at the
	// floor.
	FloorContacts int `csv:"floor_contacts"`
}

func (w *WindowStats) setSpecies(s sim.Species, st SpeciesStats) {
	switch s {
	case sim.SpeciesPredator:
		w.PredatorMin, w.PredatorMax, w.PredatorMean, w.PredatorStd = st.Min, st.Max, st.Mean, st.StdDev
	case sim.SpeciesPrey:
		w.PreyMin, w.PreyMax, w.PreyMean, w.PreyStd = st.Min, st.Max, st.Mean, st.StdDev
	case sim.SpeciesCompetitor:
		w.CompetitorMin, w.CompetitorMax, w.CompetitorMean, w.CompetitorStd = st.Min, st.Max, st.Mean, st.StdDev
	}
}

// Mean returns the window mean for one species.
func (w WindowStats) Mean(s sim.Species) float64 {
	switch s {
	case sim.SpeciesPredator:
		return w.PredatorMean
	case sim.SpeciesPrey:
		return w.PreyMean
	case sim.SpeciesCompetitor:
		return w.CompetitorMean
	}
	return 0
}

// LogValue groups the headline numbers for structured logging.
func (w WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("window_end", w.WindowEnd),
		slog.String("scenario", w.Scenario),
		slog.Float64("predator_mean", w.PredatorMean),
		slog.Float64("prey_mean", w.PreyMean),
		slog.Float64("competitor_mean", w.CompetitorMean),
		slog.Int("floor_contacts", w.FloorContacts),
	)
}

// LogStats emits the window summary via slog.
func (w WindowStats) LogStats() {
	slog.Info("window stats", "stats", w)
}

// Collector accumulates published samples and flushes a WindowStats once
// per stats window.
type Collector struct {
	samplesPerWindow int
	floor            float64

	start   Sample
	samples []Sample
}

// NewCollector sizes windows as windowSec of wall time at the given
// sampling interval.
func NewCollector(windowSec float64, sampleInterval time.Duration, floor float64) *Collector {
	n := int(windowSec/sampleInterval.Seconds() + 0.5)
	if n < 1 {
		n = 1
	}
	return &Collector{samplesPerWindow: n, floor: floor}
}

// SamplesPerWindow returns the window length in samples.
func (c *Collector) SamplesPerWindow() int {
	return c.samplesPerWindow
}

// Record adds one sample to the open window.
func (c *Collector) Record(s Sample) {
	if len(c.samples) == 0 {
		c.start = s
	}
	c.samples = append(c.samples, s)
}

// ShouldFlush reports whether the open window is complete.
func (c *Collector) ShouldFlush() bool {
	return len(c.samples) >= c.samplesPerWindow
}

// Flush summarizes the open window and resets it. The second return is
// false when no samples were recorded.
func (c *Collector) Flush() (WindowStats, bool) {
	if len(c.samples) == 0 {
		return WindowStats{}, false
	}
	last := c.samples[len(c.samples)-1]
	ws := WindowStats{
		WindowStart: c.start.Step,
		WindowEnd:   last.Step,
		ElapsedSec:  last.Elapsed,
		Scenario:    last.Scenario.String(),
	}

	series := make([]float64, len(c.samples))
	for _, sp := range sim.AllSpecies() {
		for i, smp := range c.samples {
			series[i] = smp.Populations[sp]
		}
		ws.setSpecies(sp, summarize(series))
	}

	for _, smp := range c.samples {
		for i := range smp.Populations {
			if smp.Populations[i] <= c.floor+floorEps {
				ws.FloorContacts++
				break
			}
		}
	}

	c.samples = c.samples[:0]
	return ws, true
}

// summarize computes the window moments for one series.
func summarize(series []float64) SpeciesStats {
	min, max := series[0], series[0]
	for _, v := range series[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	st := SpeciesStats{
		Min:  min,
		Max:  max,
		Mean: stat.Mean(series, nil),
	}
	// Sample standard deviation needs at least two points.
	if len(series) > 1 {
		st.StdDev = stat.StdDev(series, nil)
	}
	return st
}
