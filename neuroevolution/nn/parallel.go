package nn

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ActivateAll runs one forward pass per network concurrently. inputs[i] is fed
// to networks[i] and the outputs come back in the same order.
//
// Each network only touches its own working state, so the passes are
// independent. The same *Network must not appear twice in networks.
func ActivateAll(networks []*Network, inputs [][]float64) ([][]float64, error) {
	if len(networks) != len(inputs) {
		return nil, fmt.Errorf("%w: %d networks but %d input vectors", ErrDimensionMismatch, len(networks), len(inputs))
	}

	outputs := make([][]float64, len(networks))
	var g errgroup.Group
	for i := range networks {
		i := i
		g.Go(func() error {
			out, err := networks[i].Activate(inputs[i])
			if err != nil {
				return fmt.Errorf("network %d: %w", i, err)
			}
			outputs[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outputs, nil
}
