package neuroevolution

import (
	"fmt"
	"log/slog"
	"math/rand"
	"slices"

	"github.com/baldhumanity/neuroevolution-go/neuroevolution/nn"
)

// State is a step of the population lifecycle.
type State int

const (
	// StateEmpty means no population has been created yet.
	StateEmpty State = iota
	// StatePopulationReady means networks were handed out and none has reported.
	StatePopulationReady
	// StateEvaluating means some, but not all, individuals have reported.
	StateEvaluating
	// StateGenerationClosed means every individual has reported.
	StateGenerationClosed
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StatePopulationReady:
		return "population-ready"
	case StateEvaluating:
		return "evaluating"
	case StateGenerationClosed:
		return "generation-closed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Option customizes a Neuroevolution.
type Option func(*Neuroevolution)

// WithRand sets the random source used for every stochastic step.
// Without it a source seeded from Config.Neuroevolution.Seed is used.
func WithRand(rng *rand.Rand) Option {
	return func(n *Neuroevolution) { n.rng = rng }
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(n *Neuroevolution) { n.logger = logger }
}

// Neuroevolution drives the generational loop: it hands out networks,
// collects one Genome per individual and breeds the next population once
// every individual has reported.
//
// It is not safe for concurrent use. Callers that evaluate networks in
// parallel must serialize AddGenome.
type Neuroevolution struct {
	// Config is the engine's own copy of the configuration passed to New.
	// It must not be modified once the engine exists.
	Config *Config

	arch         nn.Architecture
	rng          *rand.Rand
	logger       *slog.Logger
	reproduction *Reproduction

	state      State
	generation int         // 1-based number of the current round, 0 before the first
	population [][]float64 // weights handed out for the current round
	current    *Generation
	history    []*Generation
	dropped    int // generations evicted from history by HistoryLimit
}

// New validates config and creates an engine in the Empty state. The engine
// keeps a copy of config; later changes to the caller's value have no effect.
func New(config *Config, opts ...Option) (*Neuroevolution, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	owned := *config
	owned.Neuroevolution.Architecture = slices.Clone(config.Neuroevolution.Architecture)

	n := &Neuroevolution{
		Config: &owned,
		arch:   owned.Architecture(),
		state:  StateEmpty,
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.rng == nil {
		n.rng = rand.New(rand.NewSource(owned.Neuroevolution.Seed))
	}
	if n.logger == nil {
		n.logger = slog.Default()
	}

	n.reproduction = NewReproduction(&n.Config.Reproduction, n.arch, n.rng)
	n.current = NewGeneration(n.reproduction)
	return n, nil
}

// PopulationSize returns the number of individuals per generation.
func (n *Neuroevolution) PopulationSize() int { return n.Config.Neuroevolution.PopulationSize }

// Architecture returns the layer sizes shared by every network.
func (n *Neuroevolution) Architecture() nn.Architecture { return n.arch.Clone() }

// State returns the current lifecycle state.
func (n *Neuroevolution) State() State { return n.state }

// Generation returns the 1-based number of the current round, or 0 before
// the initial population exists.
func (n *Neuroevolution) Generation() int { return n.generation }

// Pending returns how many individuals of the current round have not reported.
func (n *Neuroevolution) Pending() int {
	if n.state == StateEmpty {
		return 0
	}
	return n.PopulationSize() - n.current.Len()
}

// CurrentGeneration returns the generation collecting genomes for this round.
func (n *Neuroevolution) CurrentGeneration() *Generation { return n.current }

// History returns the archived generations, oldest first. With a
// HistoryLimit only the most recent ones are kept.
func (n *Neuroevolution) History() []*Generation {
	return append([]*Generation(nil), n.history...)
}

// Stats summarizes every archived generation, oldest first.
func (n *Neuroevolution) Stats() []GenerationStats {
	stats := make([]GenerationStats, len(n.history))
	for i, g := range n.history {
		stats[i] = g.Stats(n.dropped + i + 1)
	}
	return stats
}

// Best returns the highest scoring genome seen in the retained history and
// the current round, or nil if nothing has been reported.
func (n *Neuroevolution) Best() *Genome {
	var best *Genome
	for _, g := range append(n.History(), n.current) {
		if b := g.Best(); b != nil && (best == nil || b.score > best.score) {
			best = b
		}
	}
	return best
}

// CreateInitialPopulation builds PopulationSize independently randomized
// networks. It may only be called once, on an Empty engine.
func (n *Neuroevolution) CreateInitialPopulation() ([]*nn.Network, error) {
	if n.state != StateEmpty {
		return nil, fmt.Errorf("%w: initial population already created (state %s)", ErrProtocol, n.state)
	}

	networks := make([]*nn.Network, n.PopulationSize())
	population := make([][]float64, n.PopulationSize())
	for i := range networks {
		network, err := nn.New(n.arch, n.rng)
		if err != nil {
			return nil, err
		}
		networks[i] = network
		population[i] = network.Weights()
	}

	n.population = population
	n.generation = 1
	n.state = StatePopulationReady
	n.logger.Debug("initial population created",
		"size", len(networks), "architecture", n.arch.String())
	return networks, nil
}

// AddGenome records the result of one individual's episode. Exactly one
// genome per individual is expected; reports beyond PopulationSize are
// rejected with ErrProtocol.
func (n *Neuroevolution) AddGenome(genome *Genome) error {
	switch n.state {
	case StateEmpty:
		return fmt.Errorf("%w: no population has been created", ErrProtocol)
	case StateGenerationClosed:
		return fmt.Errorf("%w: all %d individuals of generation %d already reported", ErrProtocol, n.PopulationSize(), n.generation)
	}
	if genome != nil && genome.NumWeights() != n.arch.WeightCount() {
		return fmt.Errorf("%w: genome carries %d weights, architecture %s needs %d",
			nn.ErrDimensionMismatch, genome.NumWeights(), n.arch, n.arch.WeightCount())
	}

	if err := n.current.AddGenome(genome); err != nil {
		return err
	}

	n.state = StateEvaluating
	if n.current.Len() == n.PopulationSize() {
		n.state = StateGenerationClosed
	}
	n.logger.Debug("genome reported",
		"generation", n.generation, "score", genome.score, "pending", n.Pending())
	return nil
}

// NextGeneration archives the current generation and returns the networks of
// the next one. Every individual must have reported first.
func (n *Neuroevolution) NextGeneration() ([]*nn.Network, error) {
	switch n.state {
	case StateEmpty:
		return nil, fmt.Errorf("%w: no population has been created", ErrProtocol)
	case StatePopulationReady, StateEvaluating:
		return nil, fmt.Errorf("%w: %d of %d individuals have not reported", ErrProtocol, n.Pending(), n.PopulationSize())
	}

	// Breed before touching any state, so a failure leaves the round closed
	// and retryable.
	weights, err := n.current.GenerateNextGeneration(n.PopulationSize())
	if err != nil {
		return nil, fmt.Errorf("breeding generation %d: %w", n.generation+1, err)
	}

	networks := make([]*nn.Network, len(weights))
	for i, w := range weights {
		network, err := nn.FromWeights(n.arch, w)
		if err != nil {
			return nil, fmt.Errorf("building network %d: %w", i, err)
		}
		networks[i] = network
	}

	// Archive the finished round, then open the next one.
	closed := n.current
	closed.close()
	n.logger.Info("generation closed", "stats", closed.Stats(n.generation))
	n.archive(closed)

	n.current = NewGeneration(n.reproduction)
	n.population = weights
	n.generation++
	n.state = StatePopulationReady
	return networks, nil
}

// Population returns fresh networks carrying the weights handed out for the
// current round, e.g. to resume evaluation after loading a checkpoint.
func (n *Neuroevolution) Population() ([]*nn.Network, error) {
	networks := make([]*nn.Network, len(n.population))
	for i, w := range n.population {
		network, err := nn.FromWeights(n.arch, w)
		if err != nil {
			return nil, err
		}
		networks[i] = network
	}
	return networks, nil
}

// archive appends g to history and evicts the oldest entries beyond HistoryLimit.
func (n *Neuroevolution) archive(g *Generation) {
	n.history = append(n.history, g)
	limit := n.Config.Neuroevolution.HistoryLimit
	if limit > 0 && len(n.history) > limit {
		evict := len(n.history) - limit
		n.history = append([]*Generation(nil), n.history[evict:]...)
		n.dropped += evict
	}
}
