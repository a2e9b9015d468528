package neuroevolution

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baldhumanity/neuroevolution-go/neuroevolution/nn"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	config := DefaultConfig()
	require.NoError(t, config.Validate())
	assert.Equal(t, 50, config.Neuroevolution.PopulationSize)
	assert.Equal(t, nn.Architecture{2, 2, 1}, config.Architecture())
}

func TestLoadConfigINI(t *testing.T) {
	path := writeFile(t, "flappy.ini", `
# birds per round and their controller shape
[Neuroevolution]
population_size = 20
architecture    = 2,4,1
seed            = 99

[Reproduction]
elitism       = 0.25
mutation_rate = 0.2
`)
	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 20, config.Neuroevolution.PopulationSize)
	assert.Equal(t, nn.Architecture{2, 4, 1}, config.Architecture())
	assert.Equal(t, int64(99), config.Neuroevolution.Seed)
	assert.Equal(t, 0.25, config.Reproduction.Elitism)
	assert.Equal(t, 0.2, config.Reproduction.MutationRate)

	// Keys left out keep their defaults.
	assert.Equal(t, 0.2, config.Reproduction.RandomBehaviour)
	assert.Equal(t, 0.5, config.Reproduction.MutationRange)
	assert.Equal(t, 1, config.Reproduction.MinElites)
}

func TestLoadConfigYAML(t *testing.T) {
	path := writeFile(t, "flappy.yaml", `
neuroevolution:
  population_size: 30
  architecture: [3, 5, 2]
  history_limit: 10
reproduction:
  random_behaviour: 0.1
`)
	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 30, config.Neuroevolution.PopulationSize)
	assert.Equal(t, nn.Architecture{3, 5, 2}, config.Architecture())
	assert.Equal(t, 10, config.Neuroevolution.HistoryLimit)
	assert.Equal(t, 0.1, config.Reproduction.RandomBehaviour)
	assert.Equal(t, 0.2, config.Reproduction.Elitism)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	path := writeFile(t, "bad.ini", `
[Neuroevolution]
population_size = 0
`)
	_, err := LoadConfig(path)
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.ini"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"population":     func(c *Config) { c.Neuroevolution.PopulationSize = -1 },
		"one layer":      func(c *Config) { c.Neuroevolution.Architecture = []int{2} },
		"empty layer":    func(c *Config) { c.Neuroevolution.Architecture = []int{2, 0, 1} },
		"history":        func(c *Config) { c.Neuroevolution.HistoryLimit = -1 },
		"elitism":        func(c *Config) { c.Reproduction.Elitism = 1.5 },
		"random":         func(c *Config) { c.Reproduction.RandomBehaviour = -0.1 },
		"fractions":      func(c *Config) { c.Reproduction.Elitism, c.Reproduction.RandomBehaviour = 0.6, 0.6 },
		"mutation rate":  func(c *Config) { c.Reproduction.MutationRate = 2 },
		"mutation range": func(c *Config) { c.Reproduction.MutationRange = -1 },
		"min elites":     func(c *Config) { c.Reproduction.MinElites = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			config := DefaultConfig()
			mutate(config)
			require.ErrorIs(t, config.Validate(), ErrInvalidConfig)
		})
	}
}
