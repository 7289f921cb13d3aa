package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/lotka/config"
	"github.com/pthm-cable/lotka/sim"
)

// TrajectoryRow is one sampled population state in trajectory.csv.
type TrajectoryRow struct {
	Step       uint64  `csv:"step"`
	ElapsedSec float64 `csv:"elapsed_sec"`
	Scenario   string  `csv:"scenario"`
	Predator   float64 `csv:"predator"`
	Prey       float64 `csv:"prey"`
	Competitor float64 `csv:"competitor"`
}

// OutputManager handles structured run output with CSV logging.
type OutputManager struct {
	dir            string
	trajectoryFile *os.File
	statsFile      *os.File
	eventFile      *os.File

	// Track if headers have been written
	trajectoryHeaderWritten bool
	statsHeaderWritten      bool
	eventHeaderWritten      bool
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	// Create output directory
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	// Open trajectory.csv
	trajectoryPath := filepath.Join(dir, "trajectory.csv")
	f, err := os.Create(trajectoryPath)
	if err != nil {
		return nil, fmt.Errorf("creating trajectory.csv: %w", err)
	}
	om.trajectoryFile = f

	// Open stats.csv
	statsPath := filepath.Join(dir, "stats.csv")
	f, err = os.Create(statsPath)
	if err != nil {
		om.trajectoryFile.Close()
		return nil, fmt.Errorf("creating stats.csv: %w", err)
	}
	om.statsFile = f

	// Open events.csv
	eventPath := filepath.Join(dir, "events.csv")
	f, err = os.Create(eventPath)
	if err != nil {
		om.trajectoryFile.Close()
		om.statsFile.Close()
		return nil, fmt.Errorf("creating events.csv: %w", err)
	}
	om.eventFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	configPath := filepath.Join(om.dir, "config.yaml")
	return cfg.WriteYAML(configPath)
}

// WriteSample writes one population sample to trajectory.csv.
func (om *OutputManager) WriteSample(s Sample) error {
	if om == nil {
		return nil
	}

	records := []TrajectoryRow{{
		Step:       s.Step,
		ElapsedSec: s.Elapsed,
		Scenario:   s.Scenario.String(),
		Predator:   s.Populations[sim.SpeciesPredator],
		Prey:       s.Populations[sim.SpeciesPrey],
		Competitor: s.Populations[sim.SpeciesCompetitor],
	}}

	if !om.trajectoryHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.trajectoryFile); err != nil {
			return fmt.Errorf("writing trajectory: %w", err)
		}
		om.trajectoryHeaderWritten = true
	} else {
		// Subsequent writes skip headers
		if err := gocsv.MarshalWithoutHeaders(records, om.trajectoryFile); err != nil {
			return fmt.Errorf("writing trajectory: %w", err)
		}
	}

	return nil
}

// WriteStats writes a window stats record to stats.csv.
func (om *OutputManager) WriteStats(stats WindowStats) error {
	if om == nil {
		return nil
	}

	records := []WindowStats{stats}

	if !om.statsHeaderWritten {
		if err := gocsv.Marshal(records, om.statsFile); err != nil {
			return fmt.Errorf("writing stats: %w", err)
		}
		om.statsHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.statsFile); err != nil {
			return fmt.Errorf("writing stats: %w", err)
		}
	}

	return nil
}

// WriteEvent writes a detector event to events.csv.
func (om *OutputManager) WriteEvent(e Event) error {
	if om == nil {
		return nil
	}

	records := []Event{e}

	if !om.eventHeaderWritten {
		if err := gocsv.Marshal(records, om.eventFile); err != nil {
			return fmt.Errorf("writing event: %w", err)
		}
		om.eventHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.eventFile); err != nil {
			return fmt.Errorf("writing event: %w", err)
		}
	}

	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error

	if om.trajectoryFile != nil {
		if err := om.trajectoryFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if om.statsFile != nil {
		if err := om.statsFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if om.eventFile != nil {
		if err := om.eventFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
