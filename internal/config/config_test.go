package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestDefaultValues(t *testing.T) {
	cfg := Default()

	if cfg.Disease.SigmaR != 2 {
		t.Errorf("sigma_r = %v, want 2", cfg.Disease.SigmaR)
	}
	if math.Abs(cfg.Disease.SigmaTheta-45*math.Pi/180) > 1e-12 {
		t.Errorf("sigma_theta = %v, want 45 degrees in radians", cfg.Disease.SigmaTheta)
	}
	if cfg.Disease.ConservativeTime != 24 {
		t.Errorf("conservative_time = %v, want 24", cfg.Disease.ConservativeTime)
	}
	if cfg.Run.MaxSimulationDays != 240 || cfg.Run.OutputInterval != 3600 {
		t.Errorf("run constants = %+v, want 240 days / 3600 s interval", cfg.Run)
	}
	if cfg.Run.VaccineEfficacyRate != 0.86 {
		t.Errorf("vaccine_efficacy_rate = %v, want 0.86", cfg.Run.VaccineEfficacyRate)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
disease:
  r0: 3.5
run:
  simulations: 7
  half_class: true
io:
  data_dir: /tmp/obs
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Disease.R0 != 3.5 {
		t.Errorf("r0 = %v, want 3.5", cfg.Disease.R0)
	}
	if cfg.Run.Simulations != 7 || !cfg.Run.HalfClass {
		t.Errorf("run = %+v, want 7 simulations half-class", cfg.Run)
	}
	if cfg.IO.DataDir != "/tmp/obs" {
		t.Errorf("data_dir = %q, want /tmp/obs", cfg.IO.DataDir)
	}
	// Untouched keys keep the defaults.
	if cfg.Disease.SigmaR != 2 {
		t.Errorf("sigma_r = %v, want default 2", cfg.Disease.SigmaR)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Load of missing file succeeded, want error")
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"negative sigma_r", func(c *Config) { c.Disease.SigmaR = -1 }, "sigma_r"},
		{"zero gamma", func(c *Config) { c.Disease.Gamma = 0 }, "gamma"},
		{"zero r0", func(c *Config) { c.Disease.R0 = 0 }, "r0"},
		{"negative conservative_time", func(c *Config) { c.Disease.ConservativeTime = -1 }, "conservative_time"},
		{"zero simulations", func(c *Config) { c.Run.Simulations = 0 }, "simulations"},
		{"zero days", func(c *Config) { c.Run.MaxSimulationDays = 0 }, "max_simulation_days"},
		{"zero interval", func(c *Config) { c.Run.OutputInterval = 0 }, "output_interval"},
		{"efficacy above 1", func(c *Config) { c.Run.VaccineEfficacyRate = 1.5 }, "vaccine_efficacy_rate"},
		{"negative workers", func(c *Config) { c.Run.Workers = -2 }, "workers"},
	}

	for _, tc := range cases {
		cfg := Default()
		tc.mutate(&cfg)
		err := cfg.Validate()
		if err == nil {
			t.Errorf("%s: Validate succeeded, want error", tc.name)
			continue
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Errorf("%s: error %q does not name %q", tc.name, err, tc.want)
		}
	}
}
