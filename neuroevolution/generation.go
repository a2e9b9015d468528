package neuroevolution

import (
	"fmt"
	"math"
	"sort"

	"github.com/baldhumanity/neuroevolution-go/neuroevolution/nn"
)

// Generation is the ranked set of genomes reported during one evaluation round.
//
// Genomes are kept sorted by score, best first. Equal scores keep submission
// order, so an earlier report ranks ahead of a later one with the same score.
type Generation struct {
	genomes      []*Genome
	reproduction *Reproduction
	closed       bool
}

// NewGeneration creates an empty generation that breeds with r.
func NewGeneration(r *Reproduction) *Generation {
	return &Generation{reproduction: r}
}

// AddGenome inserts genome at its rank. Closed generations reject new genomes.
func (g *Generation) AddGenome(genome *Genome) error {
	if g.closed {
		return fmt.Errorf("%w: generation is closed", ErrProtocol)
	}
	if genome == nil {
		return fmt.Errorf("%w: nil genome", ErrInvalidGenome)
	}
	if math.IsNaN(genome.score) || math.IsInf(genome.score, 0) {
		return fmt.Errorf("%w: score %v cannot be ranked", ErrInvalidGenome, genome.score)
	}

	// First position holding a strictly lower score; ties stay ahead.
	i := sort.Search(len(g.genomes), func(i int) bool {
		return g.genomes[i].score < genome.score
	})
	g.genomes = append(g.genomes, nil)
	copy(g.genomes[i+1:], g.genomes[i:])
	g.genomes[i] = genome
	return nil
}

// Len returns the number of genomes reported so far.
func (g *Generation) Len() int { return len(g.genomes) }

// Closed reports whether the generation has been archived.
func (g *Generation) Closed() bool { return g.closed }

// Genomes returns the ranked genomes, best first.
func (g *Generation) Genomes() []*Genome {
	return append([]*Genome(nil), g.genomes...)
}

// Best returns the top-ranked genome, or nil if the generation is empty.
func (g *Generation) Best() *Genome {
	if len(g.genomes) == 0 {
		return nil
	}
	return g.genomes[0]
}

// Scores returns the ranked scores, best first.
func (g *Generation) Scores() []float64 {
	scores := make([]float64, len(g.genomes))
	for i, genome := range g.genomes {
		scores[i] = genome.score
	}
	return scores
}

// Breed produces nbChildren networks by uniform crossover of the two parents
// followed by mutation.
func (g *Generation) Breed(parent1, parent2 *Genome, nbChildren int) ([]*nn.Network, error) {
	return g.reproduction.Breed(parent1, parent2, nbChildren)
}

// GenerateNextGeneration returns exactly populationSize weight vectors for the
// next round: elites first, then random newcomers, then bred children.
func (g *Generation) GenerateNextGeneration(populationSize int) ([][]float64, error) {
	return g.reproduction.NextPopulation(g.genomes, populationSize)
}

// close freezes the generation before it is moved into history.
func (g *Generation) close() { g.closed = true }
