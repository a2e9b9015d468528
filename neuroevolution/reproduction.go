package neuroevolution

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/baldhumanity/neuroevolution-go/neuroevolution/nn"
)

// crossoverBias is the probability that a child weight comes from the first parent.
const crossoverBias = 0.5

// Reproduction creates the weight vectors of a new population from a ranked
// generation: elitism, random injection, crossover and mutation.
type Reproduction struct {
	Config       *ReproductionConfig
	Architecture nn.Architecture
	rng          *rand.Rand
}

// NewReproduction creates a reproduction manager drawing randomness from rng.
func NewReproduction(config *ReproductionConfig, arch nn.Architecture, rng *rand.Rand) *Reproduction {
	return &Reproduction{
		Config:       config,
		Architecture: arch.Clone(),
		rng:          rng,
	}
}

// EliteCount is floor(elitism * populationSize), raised to MinElites and
// capped by both populationSize and the number of ranked genomes available.
func (r *Reproduction) EliteCount(populationSize, available int) int {
	n := int(math.Floor(r.Config.Elitism * float64(populationSize)))
	n = max(n, r.Config.MinElites)
	return min(n, populationSize, available)
}

// RandomCount is floor(random_behaviour * populationSize).
func (r *Reproduction) RandomCount(populationSize int) int {
	return int(math.Floor(r.Config.RandomBehaviour * float64(populationSize)))
}

// Breed creates nbChildren networks. Each weight is taken from parent1 or
// parent2 with equal probability, then mutated.
func (r *Reproduction) Breed(parent1, parent2 *Genome, nbChildren int) ([]*nn.Network, error) {
	want := r.Architecture.WeightCount()
	if parent1.NumWeights() != want || parent2.NumWeights() != want {
		return nil, fmt.Errorf("%w: parents carry %d and %d weights, architecture %s needs %d",
			nn.ErrDimensionMismatch, parent1.NumWeights(), parent2.NumWeights(), r.Architecture, want)
	}

	children := make([]*nn.Network, 0, nbChildren)
	for c := 0; c < nbChildren; c++ {
		weights := make([]float64, want)
		for i := range weights {
			if r.rng.Float64() < crossoverBias {
				weights[i] = parent1.weights[i]
			} else {
				weights[i] = parent2.weights[i]
			}
		}
		r.mutate(weights)

		child, err := nn.FromWeights(r.Architecture, weights)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}

// mutate perturbs each weight with probability MutationRate by a value drawn
// uniformly from [-MutationRange, MutationRange). The draw is compared with a
// strict less-than, so a rate of 0 never mutates and a rate of 1 always does.
func (r *Reproduction) mutate(weights []float64) {
	for i := range weights {
		if r.rng.Float64() < r.Config.MutationRate {
			weights[i] += (r.rng.Float64()*2 - 1) * r.Config.MutationRange
		}
	}
}

// NextPopulation builds populationSize weight vectors from ranked genomes
// (best first). Parents for crossover are drawn with replacement from the
// elites only.
func (r *Reproduction) NextPopulation(ranked []*Genome, populationSize int) ([][]float64, error) {
	if populationSize <= 0 {
		return nil, fmt.Errorf("%w: population size must be positive, got %d", ErrInvalidConfig, populationSize)
	}
	if len(ranked) == 0 {
		return nil, ErrBreedingUnderflow
	}

	// The top of the ranking forms the elite pool. It is never empty: at
	// least MinElites, and never more than what was reported.
	eliteCount := r.EliteCount(populationSize, len(ranked))
	elites := ranked[:eliteCount]
	next := make([][]float64, 0, populationSize)

	// Elitism: carried over verbatim, as copies so the archived genomes stay
	// untouched.
	for _, g := range elites {
		next = append(next, g.Weights())
	}

	// Fresh random networks, ignoring ancestry. With high elitism plus
	// random_behaviour this can overshoot populationSize; the truncation
	// below handles that.
	for i := 0; i < r.RandomCount(populationSize); i++ {
		network, err := nn.New(r.Architecture, r.rng)
		if err != nil {
			return nil, err
		}
		next = append(next, network.Weights())
	}

	// Crossover between elites fills the rest. Both parents are drawn with
	// replacement, so an elite may breed with itself.
	for len(next) < populationSize {
		parent1 := elites[r.rng.Intn(len(elites))]
		parent2 := elites[r.rng.Intn(len(elites))]
		children, err := r.Breed(parent1, parent2, 1)
		if err != nil {
			return nil, err
		}
		next = append(next, children[0].Weights())
	}

	// Truncate, keeping elites first.
	if len(next) > populationSize {
		next = next[:populationSize]
	}
	return next, nil
}
