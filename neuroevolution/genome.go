package neuroevolution

import "github.com/baldhumanity/neuroevolution-go/neuroevolution/nn"

// Genome is an immutable snapshot of one individual: its final score and the
// flat weight vector of the network that earned it.
type Genome struct {
	score   float64
	weights []float64
}

// NewGenome captures network's weights at call time. Later changes to the
// network do not affect the genome.
func NewGenome(score float64, network *nn.Network) *Genome {
	return &Genome{score: score, weights: network.Weights()}
}

// newGenomeFromWeights copies weights into a new genome.
func newGenomeFromWeights(score float64, weights []float64) *Genome {
	return &Genome{score: score, weights: append([]float64(nil), weights...)}
}

// Score returns the fitness reported for the individual.
func (g *Genome) Score() float64 { return g.score }

// Weights returns a copy of the captured weight vector.
func (g *Genome) Weights() []float64 {
	return append([]float64(nil), g.weights...)
}

// NumWeights returns the length of the captured weight vector.
func (g *Genome) NumWeights() int { return len(g.weights) }
