package main

import (
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/baldhumanity/neuroevolution-go/neuroevolution"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <checkpoint>",
		Short: "Print a summary of a checkpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := neuroevolution.LoadCheckpoint(args[0],
				neuroevolution.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "generation:   %d\n", engine.Generation())
			fmt.Fprintf(out, "state:        %s\n", engine.State())
			fmt.Fprintf(out, "population:   %d (%d pending)\n", engine.PopulationSize(), engine.Pending())
			fmt.Fprintf(out, "architecture: %s\n", engine.Architecture())
			if best := engine.Best(); best != nil {
				fmt.Fprintf(out, "best score:   %.4f\n", best.Score())
			}

			stats := engine.Stats()
			if len(stats) == 0 {
				return nil
			}
			fmt.Fprintln(out)
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "GEN\tBEST\tMEAN\tMEDIAN\tWORST")
			for _, s := range stats {
				fmt.Fprintf(tw, "%d\t%.4f\t%.4f\t%.4f\t%.4f\n", s.Generation, s.Best, s.Mean, s.Median, s.Worst)
			}
			return tw.Flush()
		},
	}
}
