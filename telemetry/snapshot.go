package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pthm-cable/lotka/sim"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// StateSnapshot holds the complete simulation state for resuming a run.
// Scenario is stored as its tag so files stay readable and stable across
// enum changes.
type StateSnapshot struct {
	Version int `json:"version"`

	Step       uint64  `json:"step"`
	ElapsedSec float64 `json:"elapsed_sec"`
	Scenario   string  `json:"scenario"`

	Populations sim.Vector              `json:"populations"`
	GrowthRates [sim.NumSpecies]float64 `json:"growth_rates"`
}

// NewStateSnapshot captures a published sample and the active growth rates.
func NewStateSnapshot(s Sample, rates [sim.NumSpecies]float64) *StateSnapshot {
	return &StateSnapshot{
		Version:     SnapshotVersion,
		Step:        s.Step,
		ElapsedSec:  s.Elapsed,
		Scenario:    s.Scenario.String(),
		Populations: s.Populations,
		GrowthRates: rates,
	}
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *StateSnapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%d.json", snapshot.Step)
	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk and rejects unknown versions.
func LoadSnapshot(path string) (*StateSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot StateSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d not supported (want %d)", snapshot.Version, SnapshotVersion)
	}

	return &snapshot, nil
}
