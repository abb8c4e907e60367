package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/talgya/classroomsim/internal/config"
	"github.com/talgya/classroomsim/internal/disease"
	"github.com/talgya/classroomsim/internal/entropy"
	"github.com/talgya/classroomsim/internal/output"
	"github.com/talgya/classroomsim/internal/runner"
	"github.com/talgya/classroomsim/internal/sim"
	"github.com/talgya/classroomsim/internal/trace"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a batch of transmission simulations",
		Long: `Run simulates every (zero patient, repetition) pair over the recorded
class trace, writing one CSV snapshot file per run and, when --db is set,
mirroring results into a SQLite store.`,
		RunE: runBatch,
	}

	cmd.Flags().String("config", "", "YAML configuration file")
	cmd.Flags().String("data", "", "Directory holding the observation files")
	cmd.Flags().IntP("simulations", "n", 0, "Repetitions per zero patient")
	cmd.Flags().Bool("half-class", false, "Simulate the declared half-size roster")
	cmd.Flags().Int("max-days", 0, "Simulation horizon in days")
	cmd.Flags().Int("output-interval", 0, "Seconds between status snapshots")
	cmd.Flags().Float64("vaccine-efficacy", -1, "Teacher vaccine efficacy rate in [0,1]")
	cmd.Flags().Int64("seed", 0, "Batch seed (0 = fresh entropy)")
	cmd.Flags().Int("workers", 0, "Worker count (0 = one per CPU)")
	cmd.Flags().String("output", "", "Output root for per-run CSV files")
	cmd.Flags().String("db", "", "SQLite results store path")

	return cmd
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	info, err := trace.LoadInfo(filepath.Join(cfg.IO.DataDir, cfg.IO.InfoFile))
	if err != nil {
		return err
	}
	if info.Kids < 1 {
		return fmt.Errorf("observation declares %d kids; need at least one zero patient candidate", info.Kids)
	}

	tr, err := trace.Load(filepath.Join(cfg.IO.DataDir, cfg.IO.TraceFile))
	if err != nil {
		return err
	}

	slog.Info("observation loaded",
		"teachers", info.Teachers,
		"kids", info.Kids,
		"class_seconds", tr.ClassSeconds(),
	)

	d := disease.New(disease.Constants{
		SigmaR:           cfg.Disease.SigmaR,
		SigmaTheta:       cfg.Disease.SigmaTheta,
		ConservativeTime: cfg.Disease.ConservativeTime,
		NoInfectious:     cfg.Disease.NoInfectious,
		Gamma:            cfg.Disease.Gamma,
		R0:               cfg.Disease.R0,
		Nc:               cfg.Disease.Nc,
		PDaily:           cfg.Disease.PDaily,
	})
	slog.Info("disease model derived",
		"beta0", d.Beta0,
		"rho_daily", d.RhoDaily,
		"beta_max", d.BetaMax,
	)

	seed := cfg.Run.Seed
	if seed == 0 {
		seed = entropy.BatchSeed()
	}

	var store *output.Store
	if cfg.IO.Database != "" {
		store, err = output.OpenStore(cfg.IO.Database)
		if err != nil {
			return err
		}
		defer store.Close()
		slog.Info("results store opened", "path", cfg.IO.Database)
	}

	r := &runner.Runner{
		Scenario: &sim.Scenario{
			Disease:             d,
			Trace:               tr,
			Info:                info,
			MaxSimulationDays:   cfg.Run.MaxSimulationDays,
			OutputInterval:      cfg.Run.OutputInterval,
			HalfClass:           cfg.Run.HalfClass,
			VaccineEfficacyRate: cfg.Run.VaccineEfficacyRate,
		},
		Simulations: cfg.Run.Simulations,
		Workers:     cfg.Run.Workers,
		Seed:        seed,
		OutputRoot:  cfg.IO.OutputRoot,
		Store:       store,
	}

	summary := r.Run()
	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d runs failed", summary.Failed, summary.Completed+summary.Failed)
	}
	return nil
}

// loadConfig builds the effective configuration: defaults, then the config
// file if given, then explicit flags on top.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.IO.DataDir, _ = flags.GetString("data")
	}
	if flags.Changed("simulations") {
		cfg.Run.Simulations, _ = flags.GetInt("simulations")
	}
	if flags.Changed("half-class") {
		cfg.Run.HalfClass, _ = flags.GetBool("half-class")
	}
	if flags.Changed("max-days") {
		cfg.Run.MaxSimulationDays, _ = flags.GetInt("max-days")
	}
	if flags.Changed("output-interval") {
		cfg.Run.OutputInterval, _ = flags.GetInt("output-interval")
	}
	if flags.Changed("vaccine-efficacy") {
		cfg.Run.VaccineEfficacyRate, _ = flags.GetFloat64("vaccine-efficacy")
	}
	if flags.Changed("seed") {
		cfg.Run.Seed, _ = flags.GetInt64("seed")
	}
	if flags.Changed("workers") {
		cfg.Run.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("output") {
		cfg.IO.OutputRoot, _ = flags.GetString("output")
	}
	if flags.Changed("db") {
		cfg.IO.Database, _ = flags.GetString("db")
	}

	return cfg, nil
}
