package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/baldhumanity/neuroevolution-go/internal/logging"
	"github.com/baldhumanity/neuroevolution-go/neuroevolution"
	"github.com/baldhumanity/neuroevolution-go/neuroevolution/nn"
)

func newEvolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evolve",
		Short: "Evolve XOR controllers for a number of generations",
		Long: `Evolve networks against the XOR task, a headless stand-in for a game
that scores each controller once per generation.

Configuration comes from --config (INI or YAML); --population, --architecture
and --seed override it. With --resume the run continues from --checkpoint using
the configuration stored there, so those four flags are rejected.`,
		RunE: runEvolve,
	}

	cmd.Flags().String("config", "", "Config file (.ini, .yaml)")
	cmd.Flags().Int("generations", 50, "Number of generations to run")
	cmd.Flags().Int("population", 0, "Override population size")
	cmd.Flags().String("architecture", "", "Override architecture, e.g. 2,2,1")
	cmd.Flags().Int64("seed", 0, "Override random seed")
	cmd.Flags().String("stats", "", "Write per-generation stats CSV to this file")
	cmd.Flags().String("checkpoint", "", "Save the final population to this file")
	cmd.Flags().Bool("resume", false, "Resume from --checkpoint instead of starting fresh")
	return cmd
}

func runEvolve(cmd *cobra.Command, args []string) error {
	levelName, _ := cmd.Flags().GetString("log-level")
	logger := logging.NewLogger(levelName, cmd.ErrOrStderr())

	generations, _ := cmd.Flags().GetInt("generations")
	statsPath, _ := cmd.Flags().GetString("stats")
	checkpointPath, _ := cmd.Flags().GetString("checkpoint")
	resume, _ := cmd.Flags().GetBool("resume")

	var (
		engine   *neuroevolution.Neuroevolution
		networks []*nn.Network
		err      error
	)
	if resume {
		if checkpointPath == "" {
			return fmt.Errorf("--resume needs --checkpoint")
		}
		for _, name := range []string{"config", "population", "architecture", "seed"} {
			if cmd.Flags().Changed(name) {
				return fmt.Errorf("--%s cannot be combined with --resume; the checkpoint carries its own configuration", name)
			}
		}
		engine, networks, err = resumeEngine(checkpointPath, logger)
	} else {
		engine, networks, err = newEngine(cmd, logger)
	}
	if err != nil {
		return err
	}

	var statsWriter *neuroevolution.StatsWriter
	if statsPath != "" {
		f, err := os.Create(statsPath)
		if err != nil {
			return fmt.Errorf("creating stats file: %w", err)
		}
		defer f.Close()
		statsWriter = neuroevolution.NewStatsWriter(f)
	}

	for g := 0; g < generations; g++ {
		scores, err := evalXOR(networks)
		if err != nil {
			return err
		}
		for i, network := range networks {
			if err := engine.AddGenome(neuroevolution.NewGenome(scores[i], network)); err != nil {
				return err
			}
		}

		networks, err = engine.NextGeneration()
		if err != nil {
			return fmt.Errorf("generation %d: %w", engine.Generation(), err)
		}
		if statsWriter != nil {
			stats := engine.Stats()
			if err := statsWriter.Write(stats[len(stats)-1]); err != nil {
				return err
			}
		}
	}

	if checkpointPath != "" {
		if err := engine.SaveCheckpoint(checkpointPath); err != nil {
			return err
		}
	}

	return printWinner(cmd, engine)
}

func newEngine(cmd *cobra.Command, logger *slog.Logger) (*neuroevolution.Neuroevolution, []*nn.Network, error) {
	config := neuroevolution.DefaultConfig()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := neuroevolution.LoadConfig(path)
		if err != nil {
			return nil, nil, err
		}
		config = loaded
	}
	if cmd.Flags().Changed("population") {
		config.Neuroevolution.PopulationSize, _ = cmd.Flags().GetInt("population")
	}
	if cmd.Flags().Changed("architecture") {
		s, _ := cmd.Flags().GetString("architecture")
		arch, err := nn.ParseArchitecture(s)
		if err != nil {
			return nil, nil, err
		}
		config.Neuroevolution.Architecture = arch
	}
	if cmd.Flags().Changed("seed") {
		config.Neuroevolution.Seed, _ = cmd.Flags().GetInt64("seed")
	}
	if arch := config.Architecture(); arch.Inputs() != 2 || arch.Outputs() != 1 {
		return nil, nil, fmt.Errorf("the XOR task needs 2 inputs and 1 output, architecture is %s", arch)
	}

	engine, err := neuroevolution.New(config, neuroevolution.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}
	networks, err := engine.CreateInitialPopulation()
	if err != nil {
		return nil, nil, err
	}
	return engine, networks, nil
}

func resumeEngine(path string, logger *slog.Logger) (*neuroevolution.Neuroevolution, []*nn.Network, error) {
	engine, err := neuroevolution.LoadCheckpoint(path, neuroevolution.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}

	switch engine.State() {
	case neuroevolution.StatePopulationReady:
		networks, err := engine.Population()
		return engine, networks, err
	case neuroevolution.StateGenerationClosed:
		networks, err := engine.NextGeneration()
		return engine, networks, err
	case neuroevolution.StateEmpty:
		networks, err := engine.CreateInitialPopulation()
		return engine, networks, err
	default:
		return nil, nil, fmt.Errorf("checkpoint %s was taken mid-generation (%d individuals pending)", path, engine.Pending())
	}
}

func printWinner(cmd *cobra.Command, engine *neuroevolution.Neuroevolution) error {
	out := cmd.OutOrStdout()
	best := engine.Best()
	if best == nil {
		fmt.Fprintln(out, "No genome was evaluated.")
		return nil
	}

	winner, err := nn.FromWeights(engine.Architecture(), best.Weights())
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Best genome after %d generations: score %.4f\n", engine.Generation()-1, best.Score())
	fmt.Fprintln(out, " Input | Expected | Output")
	fmt.Fprintln(out, "-----------------------------")
	for i, inputs := range xorInputs {
		output, err := winner.Activate(inputs)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, " %v |   %.1f    | %.4f\n", inputs, xorOutputs[i], output[0])
	}
	return nil
}
