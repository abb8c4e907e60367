// Command classroomsim runs Monte-Carlo batches of person-to-person
// transmission simulations over recorded classroom position traces.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	rootCmd := &cobra.Command{
		Use:   "classroomsim",
		Short: "Classroom disease transmission simulator",
		Long: `classroomsim simulates infectious-disease transmission inside a classroom
using recorded occupant position and orientation traces.

For each candidate zero patient and each stochastic repetition it evolves
every occupant's infection status until the epidemic dies out or the
simulation horizon is reached, recording periodic status snapshots.`,
	}

	rootCmd.AddCommand(
		newRunCmd(),
		newGenTraceCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("classroomsim version %s\n", version)
		},
	}
}
