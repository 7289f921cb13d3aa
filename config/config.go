// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Simulation SimulationConfig `yaml:"simulation"`
	Ensemble   EnsembleConfig   `yaml:"ensemble"`
	Camera     CameraConfig     `yaml:"camera"`
	Stars      StarsConfig      `yaml:"stars"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// SimulationConfig holds the population dynamics parameters.
type SimulationConfig struct {
	TimeStep          float64     `yaml:"time_step"`           // Integration step size
	StepIntervalMS    int         `yaml:"step_interval_ms"`    // Wall-clock interval between steps
	Floor             float64     `yaml:"floor"`               // Minimum abundance per species
	InitialPopulation []float64   `yaml:"initial_population"`  // Starting abundance per species
	InteractionMatrix [][]float64 `yaml:"interaction_matrix"`  // Row i: effect of each species on species i
}

// EnsembleConfig holds particle ensemble parameters.
type EnsembleConfig struct {
	Count          int     `yaml:"count"`           // Number of particles
	RadiusMin      float64 `yaml:"radius_min"`      // Inner shell radius
	RadiusMax      float64 `yaml:"radius_max"`      // Outer shell radius
	ScaleFactor    float64 `yaml:"scale_factor"`    // Abundance-to-scale multiplier
	DriftAmplitude float64 `yaml:"drift_amplitude"` // Positional drift amplitude
}

// CameraConfig holds orbit camera parameters.
type CameraConfig struct {
	Distance        float64 `yaml:"distance"`          // Initial orbit distance
	AutoRotateSpeed float64 `yaml:"auto_rotate_speed"` // Radians per second, 0 disables
}

// StarsConfig holds background starfield parameters.
type StarsConfig struct {
	Count  int     `yaml:"count"`  // Number of stars (0 disables)
	Radius float64 `yaml:"radius"` // Starfield shell radius
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	HistorySize        int     `yaml:"history_size"`        // Samples kept for the population chart
	StatsWindow        float64 `yaml:"stats_window"`        // Seconds per stats window
	OvershootThreshold float64 `yaml:"overshoot_threshold"` // Abundance for overshoot events, 0 disables
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	StepInterval time.Duration // Simulation.StepIntervalMS as a Duration
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Compute derived values
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects configurations the simulation cannot run with.
func (c *Config) validate() error {
	if c.Simulation.TimeStep <= 0 {
		return fmt.Errorf("simulation.time_step must be positive, got %v", c.Simulation.TimeStep)
	}
	if c.Simulation.StepIntervalMS < 1 {
		return fmt.Errorf("simulation.step_interval_ms must be at least 1, got %d", c.Simulation.StepIntervalMS)
	}
	if c.Simulation.Floor <= 0 {
		return fmt.Errorf("simulation.floor must be positive, got %v", c.Simulation.Floor)
	}
	if n := len(c.Simulation.InitialPopulation); n != 3 {
		return fmt.Errorf("simulation.initial_population must have 3 entries, got %d", n)
	}
	if n := len(c.Simulation.InteractionMatrix); n != 3 {
		return fmt.Errorf("simulation.interaction_matrix must have 3 rows, got %d", n)
	}
	for i, row := range c.Simulation.InteractionMatrix {
		if len(row) != 3 {
			return fmt.Errorf("simulation.interaction_matrix row %d must have 3 entries, got %d", i, len(row))
		}
	}
	if c.Ensemble.Count < 1 {
		return fmt.Errorf("ensemble.count must be at least 1, got %d", c.Ensemble.Count)
	}
	if c.Ensemble.RadiusMin <= 0 || c.Ensemble.RadiusMax <= c.Ensemble.RadiusMin {
		return fmt.Errorf("ensemble radii must satisfy 0 < radius_min < radius_max, got (%v, %v)",
			c.Ensemble.RadiusMin, c.Ensemble.RadiusMax)
	}
	if c.Ensemble.ScaleFactor <= 0 {
		return fmt.Errorf("ensemble.scale_factor must be positive, got %v", c.Ensemble.ScaleFactor)
	}
	if c.Camera.Distance <= 0 {
		return fmt.Errorf("camera.distance must be positive, got %v", c.Camera.Distance)
	}
	if c.Telemetry.HistorySize < 1 {
		return fmt.Errorf("telemetry.history_size must be at least 1, got %d", c.Telemetry.HistorySize)
	}
	if c.Telemetry.StatsWindow <= 0 {
		return fmt.Errorf("telemetry.stats_window must be positive, got %v", c.Telemetry.StatsWindow)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.StepInterval = time.Duration(c.Simulation.StepIntervalMS) * time.Millisecond
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
