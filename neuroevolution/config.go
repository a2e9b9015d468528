package neuroevolution

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"

	"github.com/baldhumanity/neuroevolution-go/neuroevolution/nn"
)

// Config stores the parameters of a neuroevolution run.
type Config struct {
	Neuroevolution NeuroevolutionConfig `yaml:"neuroevolution"`
	Reproduction   ReproductionConfig   `yaml:"reproduction"`
}

// NeuroevolutionConfig holds the population shape and lifecycle parameters.
type NeuroevolutionConfig struct {
	PopulationSize int   `ini:"population_size" yaml:"population_size"`
	Architecture   []int `ini:"architecture" delim:"," yaml:"architecture"` // layer sizes, input first
	Seed           int64 `ini:"seed" yaml:"seed"`
	HistoryLimit   int   `ini:"history_limit" yaml:"history_limit"` // 0 keeps every generation
}

// ReproductionConfig holds the selection and mutation parameters.
type ReproductionConfig struct {
	Elitism         float64 `ini:"elitism" yaml:"elitism"`                   // fraction carried over unchanged
	RandomBehaviour float64 `ini:"random_behaviour" yaml:"random_behaviour"` // fraction of fresh random networks
	MutationRate    float64 `ini:"mutation_rate" yaml:"mutation_rate"`       // per-weight probability
	MutationRange   float64 `ini:"mutation_range" yaml:"mutation_range"`     // max absolute perturbation
	MinElites       int     `ini:"min_elites" yaml:"min_elites"`             // floor for small populations
}

// DefaultConfig returns the reference parameters: 50 networks shaped 2-2-1,
// 20% elites, 20% random newcomers, 10% mutation rate within ±0.5.
func DefaultConfig() *Config {
	return &Config{
		Neuroevolution: NeuroevolutionConfig{
			PopulationSize: 50,
			Architecture:   []int{2, 2, 1},
			Seed:           1,
		},
		Reproduction: ReproductionConfig{
			Elitism:         0.2,
			RandomBehaviour: 0.2,
			MutationRate:    0.1,
			MutationRange:   0.5,
			MinElites:       1,
		},
	}
}

// LoadConfig reads a configuration file on top of DefaultConfig.
// Files ending in .yaml or .yml are parsed as YAML, anything else as INI
// with [Neuroevolution] and [Reproduction] sections.
func LoadConfig(filePath string) (*Config, error) {
	config := DefaultConfig()

	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file '%s': %w", filePath, err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
		}
	default:
		cfg, err := ini.LoadSources(ini.LoadOptions{
			IgnoreInlineComment:         true,
			UnescapeValueCommentSymbols: true,
		}, filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file '%s': %w", filePath, err)
		}
		if err := cfg.Section("Neuroevolution").MapTo(&config.Neuroevolution); err != nil {
			return nil, fmt.Errorf("failed to map [Neuroevolution] section: %w", err)
		}
		if err := cfg.Section("Reproduction").MapTo(&config.Reproduction); err != nil {
			return nil, fmt.Errorf("failed to map [Reproduction] section: %w", err)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Architecture returns the configured layer sizes.
func (c *Config) Architecture() nn.Architecture {
	return nn.Architecture(c.Neuroevolution.Architecture).Clone()
}

// Validate reports the first configuration error, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	if c.Neuroevolution.PopulationSize <= 0 {
		return fmt.Errorf("%w: population_size must be positive, got %d", ErrInvalidConfig, c.Neuroevolution.PopulationSize)
	}
	if err := c.Architecture().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Neuroevolution.HistoryLimit < 0 {
		return fmt.Errorf("%w: history_limit cannot be negative", ErrInvalidConfig)
	}

	r := c.Reproduction
	if r.Elitism < 0 || r.Elitism > 1 {
		return fmt.Errorf("%w: elitism must be between 0 and 1", ErrInvalidConfig)
	}
	if r.RandomBehaviour < 0 || r.RandomBehaviour > 1 {
		return fmt.Errorf("%w: random_behaviour must be between 0 and 1", ErrInvalidConfig)
	}
	if r.Elitism+r.RandomBehaviour > 1 {
		return fmt.Errorf("%w: elitism + random_behaviour cannot exceed 1", ErrInvalidConfig)
	}
	if r.MutationRate < 0 || r.MutationRate > 1 {
		return fmt.Errorf("%w: mutation_rate must be between 0 and 1", ErrInvalidConfig)
	}
	if r.MutationRange < 0 {
		return fmt.Errorf("%w: mutation_range cannot be negative", ErrInvalidConfig)
	}
	if r.MinElites < 1 {
		return fmt.Errorf("%w: min_elites must be at least 1", ErrInvalidConfig)
	}
	return nil
}
