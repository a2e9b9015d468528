package main

import (
	"fmt"

	"github.com/baldhumanity/neuroevolution-go/neuroevolution/nn"
)

// XOR inputs and expected outputs.
var xorInputs = [][]float64{
	{0.0, 0.0},
	{0.0, 1.0},
	{1.0, 0.0},
	{1.0, 1.0},
}
var xorOutputs = []float64{0.0, 1.0, 1.0, 0.0}

// evalXOR scores every network on the four XOR cases as max(0, 4-SSE)^2.
// Forward passes for one case run concurrently across networks.
func evalXOR(networks []*nn.Network) ([]float64, error) {
	sse := make([]float64, len(networks))
	inputs := make([][]float64, len(networks))
	for c, in := range xorInputs {
		for i := range inputs {
			inputs[i] = in
		}
		outputs, err := nn.ActivateAll(networks, inputs)
		if err != nil {
			return nil, fmt.Errorf("xor case %d: %w", c, err)
		}
		for i, out := range outputs {
			diff := out[0] - xorOutputs[c]
			sse[i] += diff * diff
		}
	}

	scores := make([]float64, len(networks))
	for i, e := range sse {
		base := max(0, 4.0-e)
		scores[i] = base * base
	}
	return scores, nil
}
