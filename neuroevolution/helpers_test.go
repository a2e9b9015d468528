package neuroevolution

import (
	"io"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/baldhumanity/neuroevolution-go/neuroevolution/nn"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(popSize int, arch ...int) *Config {
	config := DefaultConfig()
	config.Neuroevolution.PopulationSize = popSize
	if len(arch) > 0 {
		config.Neuroevolution.Architecture = arch
	}
	return config
}

func newTestEngine(t *testing.T, config *Config, seed int64) *Neuroevolution {
	t.Helper()
	n, err := New(config, WithRand(rand.New(rand.NewSource(seed))), WithLogger(discardLogger()))
	require.NoError(t, err)
	return n
}

// rankedGeneration fills a generation with random genomes carrying the given scores.
func rankedGeneration(t *testing.T, r *Reproduction, rng *rand.Rand, scores ...float64) *Generation {
	t.Helper()
	g := NewGeneration(r)
	for _, s := range scores {
		network, err := nn.New(r.Architecture, rng)
		require.NoError(t, err)
		require.NoError(t, g.AddGenome(NewGenome(s, network)))
	}
	return g
}
