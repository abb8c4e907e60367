// Package config provides simulation configuration: influenza-like defaults,
// YAML file loading, and validation run before any task is dispatched.
package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full batch configuration.
type Config struct {
	Disease DiseaseConfig `yaml:"disease"`
	Run     RunConfig     `yaml:"run"`
	IO      IOConfig      `yaml:"io"`
}

// DiseaseConfig holds the epidemiological constants. Rates are per second.
type DiseaseConfig struct {
	SigmaR           float64 `yaml:"sigma_r"`
	SigmaTheta       float64 `yaml:"sigma_theta"`
	ConservativeTime int     `yaml:"conservative_time"` // hours
	NoInfectious     float64 `yaml:"no_infectious"`
	Gamma            float64 `yaml:"gamma"`
	R0               float64 `yaml:"r0"`
	Nc               float64 `yaml:"nc"`
	PDaily           float64 `yaml:"p_daily"`
}

// RunConfig holds the batch and per-run constants.
type RunConfig struct {
	Simulations         int     `yaml:"simulations"` // repetitions per zero patient
	MaxSimulationDays   int     `yaml:"max_simulation_days"`
	OutputInterval      int     `yaml:"output_interval"` // seconds between snapshots
	HalfClass           bool    `yaml:"half_class"`
	VaccineEfficacyRate float64 `yaml:"vaccine_efficacy_rate"` // in [0, 1]
	Workers             int     `yaml:"workers"`               // 0 = one per CPU
	Seed                int64   `yaml:"seed"`                  // 0 = fresh entropy per batch
}

// IOConfig holds the file locations.
type IOConfig struct {
	DataDir    string `yaml:"data_dir"`
	InfoFile   string `yaml:"info_file"`
	TraceFile  string `yaml:"trace_file"`
	OutputRoot string `yaml:"output_root"`
	Database   string `yaml:"database"` // optional SQLite results store
}

// Default returns the defaults for an influenza-like pathogen.
func Default() Config {
	return Config{
		Disease: DiseaseConfig{
			SigmaR:           2,
			SigmaTheta:       45 * math.Pi / 180,
			ConservativeTime: 24,
			NoInfectious:     1 / (10 * 24 * 3600.0),
			Gamma:            1 / (14 * 24 * 3600.0),
			R0:               2,
			Nc:               10,
			PDaily:           15 / (24 * 60.0),
		},
		Run: RunConfig{
			Simulations:         100,
			MaxSimulationDays:   240,
			OutputInterval:      3600,
			HalfClass:           false,
			VaccineEfficacyRate: 0.86,
		},
		IO: IOConfig{
			DataDir:    ".",
			InfoFile:   "info.dat",
			TraceFile:  "all_xy.csv",
			OutputRoot: ".",
		},
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate rejects bad configuration before any run starts. A failure here
// is fatal to the whole batch.
func (c Config) Validate() error {
	d := c.Disease
	for _, check := range []struct {
		name  string
		value float64
	}{
		{"disease.sigma_r", d.SigmaR},
		{"disease.sigma_theta", d.SigmaTheta},
		{"disease.no_infectious", d.NoInfectious},
		{"disease.gamma", d.Gamma},
		{"disease.r0", d.R0},
		{"disease.nc", d.Nc},
		{"disease.p_daily", d.PDaily},
	} {
		if check.value <= 0 {
			return fmt.Errorf("%s must be positive, got %v", check.name, check.value)
		}
	}
	if d.ConservativeTime < 0 {
		return fmt.Errorf("disease.conservative_time must be non-negative, got %d", d.ConservativeTime)
	}

	r := c.Run
	if r.Simulations <= 0 {
		return fmt.Errorf("run.simulations must be positive, got %d", r.Simulations)
	}
	if r.MaxSimulationDays <= 0 {
		return fmt.Errorf("run.max_simulation_days must be positive, got %d", r.MaxSimulationDays)
	}
	if r.OutputInterval <= 0 {
		return fmt.Errorf("run.output_interval must be positive, got %d", r.OutputInterval)
	}
	if r.VaccineEfficacyRate < 0 || r.VaccineEfficacyRate > 1 {
		return fmt.Errorf("run.vaccine_efficacy_rate must be in [0,1], got %v", r.VaccineEfficacyRate)
	}
	if r.Workers < 0 {
		return fmt.Errorf("run.workers must be non-negative, got %d", r.Workers)
	}
	return nil
}
