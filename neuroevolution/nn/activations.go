package nn

import "math"

// Sigmoid is the logistic function 1/(1+e^-x) applied to every hidden and output neuron.
func Sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}
