package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/talgya/classroomsim/internal/trace"
)

func newGenTraceCmd() *cobra.Command {
	cfg := trace.DefaultSynthConfig()

	cmd := &cobra.Command{
		Use:   "gen-trace <dir>",
		Short: "Generate a synthetic observation trace",
		Long: `Gen-trace writes a synthetic info.dat and all_xy.csv pair into the given
directory, with occupants wandering on simplex-noise paths. Useful for
sizing experiments when no recorded observation is at hand.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, tr := trace.Synthesize(cfg)
			if err := trace.WriteFiles(args[0], info, tr); err != nil {
				return err
			}
			slog.Info("synthetic trace written",
				"dir", args[0],
				"teachers", info.Teachers,
				"kids", info.Kids,
				"seconds", tr.ClassSeconds(),
				"seed", cfg.Seed,
			)
			return nil
		},
	}

	cmd.Flags().Int64Var(&cfg.Seed, "seed", cfg.Seed, "Noise seed")
	cmd.Flags().IntVar(&cfg.Teachers, "teachers", cfg.Teachers, "Teacher count")
	cmd.Flags().IntVar(&cfg.Kids, "kids", cfg.Kids, "Kid count")
	cmd.Flags().IntVar(&cfg.Seconds, "seconds", cfg.Seconds, "Class period length in seconds")
	cmd.Flags().Float64Var(&cfg.RoomWidth, "room-width", cfg.RoomWidth, "Room width in meters")
	cmd.Flags().Float64Var(&cfg.RoomDepth, "room-depth", cfg.RoomDepth, "Room depth in meters")
	cmd.Flags().Float64Var(&cfg.AbsentRate, "absent-rate", cfg.AbsentRate, "Approximate untracked fraction")

	return cmd
}
