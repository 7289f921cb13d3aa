package game

import (
	"log/slog"

	"github.com/pthm-cable/lotka/sim"
	"github.com/pthm-cable/lotka/telemetry"
)

// toSample converts a published snapshot into a telemetry sample.
func toSample(s sim.Snapshot) telemetry.Sample {
	return telemetry.Sample{
		Step:        s.Step,
		Elapsed:     s.Elapsed,
		Scenario:    s.Scenario,
		Populations: s.Populations,
	}
}

// onPublish runs on the sampling goroutine after every integration step.
// It feeds the chart history, the stats windows and the event detector,
// and mirrors everything to the CSV writers. Write failures are logged
// and never stop the simulation.
func (g *Game) onPublish(snap sim.Snapshot) {
	sample := toSample(snap)

	g.recorder.Append(sample)

	if err := g.output.WriteSample(sample); err != nil {
		slog.Error("failed to write trajectory", "error", err)
	}

	g.collector.Record(sample)
	if g.collector.ShouldFlush() {
		g.flushStats()
	}

	for _, event := range g.detector.Check(sample) {
		event.LogEvent()
		if err := g.output.WriteEvent(event); err != nil {
			slog.Error("failed to write event", "error", err)
		}
	}
}

// flushStats closes the current stats window and emits it.
func (g *Game) flushStats() {
	stats, ok := g.collector.Flush()
	if !ok {
		return
	}

	if g.opts.LogStats {
		stats.LogStats()
	}

	if err := g.output.WriteStats(stats); err != nil {
		slog.Error("failed to write stats", "error", err)
	}
}

// saveSnapshot writes the current state to the snapshot directory.
func (g *Game) saveSnapshot() {
	snap := g.runner.Snapshot()
	state := telemetry.NewStateSnapshot(toSample(snap), g.runner.Parameters().GrowthRates)

	path, err := telemetry.SaveSnapshot(state, g.opts.SnapshotDir)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}

	slog.Info("snapshot saved", "path", path, "step", snap.Step)
}
