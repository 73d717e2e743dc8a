package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags.
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "mysterymate",
	Short: "Horcrux chess referee for two players at one keyboard",
	Long: `Mystery Mate referees a chess variant where each side secretly marks one
of its own pieces as a horcrux. Capturing the opponent's horcrux, or naming
it with one of your guesses, wins the match.

Examples:
  # Play from the standard position
  mysterymate play

  # Continue from a piece placement with black to move
  mysterymate play --resume "4k3/8/8/8/8/8/4P3/4K3" --turn b

  # Print Prometheus metrics for the session on exit
  mysterymate play --metrics`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log match events to stderr")
}

// newLogger is a development logger when verbose, otherwise warnings only
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}
