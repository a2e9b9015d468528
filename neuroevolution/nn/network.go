package nn

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// Network is a fully connected feedforward network without bias units.
//
// Weights are stored in one flat slice ordered by layer, then neuron, then
// incoming connection, which is exactly the layout returned by Weights.
// Neuron values of every layer live in a second flat slice and are working
// state for Activate only.
type Network struct {
	arch          Architecture
	weights       []float64
	values        []float64
	weightOffsets []int // start of layer l's weights in weights (layer 0 has none)
	valueOffsets  []int // start of layer l's neuron values in values
}

// newNetwork lays out storage for arch with all weights set to zero.
func newNetwork(arch Architecture) (*Network, error) {
	if err := arch.Validate(); err != nil {
		return nil, err
	}

	n := &Network{
		arch:          arch.Clone(),
		weightOffsets: make([]int, len(arch)),
		valueOffsets:  make([]int, len(arch)),
	}

	numValues, numWeights := 0, 0
	for l, size := range arch {
		n.valueOffsets[l] = numValues
		n.weightOffsets[l] = numWeights
		numValues += size
		if l > 0 {
			numWeights += size * arch[l-1]
		}
	}
	n.values = make([]float64, numValues)
	n.weights = make([]float64, numWeights)
	return n, nil
}

// New builds a network for arch and draws every weight independently and
// uniformly from [-1, 1) using rng. rng must not be nil.
func New(arch Architecture, rng *rand.Rand) (*Network, error) {
	n, err := newNetwork(arch)
	if err != nil {
		return nil, err
	}
	for i := range n.weights {
		n.weights[i] = rng.Float64()*2 - 1
	}
	return n, nil
}

// FromWeights builds a network for arch and loads the given flat weight vector.
func FromWeights(arch Architecture, weights []float64) (*Network, error) {
	n, err := newNetwork(arch)
	if err != nil {
		return nil, err
	}
	if err := n.SetWeights(weights); err != nil {
		return nil, err
	}
	return n, nil
}

// Architecture returns a copy of the layer sizes the network was built from.
func (n *Network) Architecture() Architecture {
	return n.arch.Clone()
}

// NumWeights returns the length of the flat weight vector.
func (n *Network) NumWeights() int {
	return len(n.weights)
}

// Activate runs a forward pass and returns the output layer values.
// The input slice must match the size of the input layer.
func (n *Network) Activate(inputs []float64) ([]float64, error) {
	if len(inputs) != n.arch.Inputs() {
		return nil, fmt.Errorf("%w: got %d inputs, network has %d input neurons", ErrDimensionMismatch, len(inputs), n.arch.Inputs())
	}
	copy(n.values[:len(inputs)], inputs)

	for l := 1; l < len(n.arch); l++ {
		prevSize := n.arch[l-1]
		prev := n.values[n.valueOffsets[l-1] : n.valueOffsets[l-1]+prevSize]
		layer := n.values[n.valueOffsets[l] : n.valueOffsets[l]+n.arch[l]]
		w := n.weights[n.weightOffsets[l]:]

		for j := range layer {
			layer[j] = Sigmoid(floats.Dot(prev, w[j*prevSize:(j+1)*prevSize]))
		}
	}

	last := len(n.arch) - 1
	outputs := make([]float64, n.arch[last])
	copy(outputs, n.values[n.valueOffsets[last]:])
	return outputs, nil
}

// Weights returns a copy of the flat weight vector.
func (n *Network) Weights() []float64 {
	out := make([]float64, len(n.weights))
	copy(out, n.weights)
	return out
}

// SetWeights replaces every weight from a flat vector in the order produced by
// Weights. The vector is copied; its length must match NumWeights exactly.
func (n *Network) SetWeights(weights []float64) error {
	if len(weights) != len(n.weights) {
		return fmt.Errorf("%w: got %d weights, architecture %s needs %d", ErrDimensionMismatch, len(weights), n.arch, len(n.weights))
	}
	copy(n.weights, weights)
	return nil
}
