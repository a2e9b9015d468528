// Command neuroevo runs headless neuroevolution experiments and inspects
// their checkpoints.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "neuroevo",
		Short: "Evolve feedforward controllers with a genetic algorithm",
		Long: `neuroevo evolves the weights of fixed-shape feedforward networks.

Each generation keeps the best networks unchanged, adds fresh random ones
and fills the rest with mutated crossovers of the best.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newEvolveCmd(),
		newInspectCmd(),
	)
	return rootCmd
}
