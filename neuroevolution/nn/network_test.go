package nn

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLayout(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	n, err := New(Architecture{2, 3, 1}, rng)
	require.NoError(t, err)

	// 2*3 hidden weights + 3*1 output weights.
	assert.Equal(t, 9, n.NumWeights())
	assert.Equal(t, Architecture{2, 3, 1}, n.Architecture())

	for i, w := range n.Weights() {
		assert.GreaterOrEqual(t, w, -1.0, "weight %d", i)
		assert.Less(t, w, 1.0, "weight %d", i)
	}
}

func TestNewRejectsShortArchitecture(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	_, err := New(Architecture{3}, rng)
	require.ErrorIs(t, err, ErrInvalidArchitecture)

	_, err = New(nil, rng)
	require.ErrorIs(t, err, ErrInvalidArchitecture)

	_, err = New(Architecture{2, 0, 1}, rng)
	require.ErrorIs(t, err, ErrInvalidArchitecture)
}

func TestNewDeterministic(t *testing.T) {
	a, err := New(Architecture{2, 4, 2}, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	b, err := New(Architecture{2, 4, 2}, rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	assert.Equal(t, a.Weights(), b.Weights())
}

func TestWeightsRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for _, arch := range []Architecture{{2, 1}, {2, 2, 1}, {4, 8, 8, 3}} {
		n, err := New(arch, rng)
		require.NoError(t, err)

		before := n.Weights()
		require.NoError(t, n.SetWeights(n.Weights()))
		assert.Equal(t, before, n.Weights(), "arch %s", arch)
	}
}

func TestWeightsReturnsCopy(t *testing.T) {
	n, err := New(Architecture{2, 2, 1}, rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	w := n.Weights()
	w[0] = 100
	assert.NotEqual(t, 100.0, n.Weights()[0])
}

func TestSetWeightsLengthMismatch(t *testing.T) {
	n, err := New(Architecture{2, 2, 1}, rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	before := n.Weights()

	err = n.SetWeights(make([]float64, 5))
	require.ErrorIs(t, err, ErrDimensionMismatch)

	err = n.SetWeights(make([]float64, 7))
	require.ErrorIs(t, err, ErrDimensionMismatch)

	assert.Equal(t, before, n.Weights(), "failed SetWeights must not touch the network")
}

func TestSetWeightsOrder(t *testing.T) {
	// Hidden neuron 0 reads input 0 only, hidden neuron 1 reads input 1 only,
	// the output neuron reads hidden 0 only. This pins the flat layout.
	n, err := FromWeights(Architecture{2, 2, 1}, []float64{
		1, 0, // hidden 0
		0, 1, // hidden 1
		1, 0, // output
	})
	require.NoError(t, err)

	out, err := n.Activate([]float64{2, -50})
	require.NoError(t, err)
	assert.InDelta(t, Sigmoid(Sigmoid(2)), out[0], 1e-12)
}

func TestActivateClosedForm(t *testing.T) {
	n, err := FromWeights(Architecture{2, 2, 1}, []float64{1, 1, 1, 1, 1, 1})
	require.NoError(t, err)

	out, err := n.Activate([]float64{0, 0})
	require.NoError(t, err)
	require.Len(t, out, 1)

	want := Sigmoid(Sigmoid(0)*1 + Sigmoid(0)*1)
	assert.InDelta(t, want, out[0], 1e-9)
	assert.InDelta(t, 1/(1+math.Exp(-1)), out[0], 1e-9)
}

func TestActivateInputMismatch(t *testing.T) {
	n, err := New(Architecture{2, 2, 1}, rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	_, err = n.Activate([]float64{1})
	require.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = n.Activate([]float64{1, 2, 3})
	require.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestActivateRepeatable(t *testing.T) {
	n, err := New(Architecture{2, 5, 3, 2}, rand.New(rand.NewSource(11)))
	require.NoError(t, err)

	first, err := n.Activate([]float64{0.3, 0.7})
	require.NoError(t, err)
	_, err = n.Activate([]float64{-4, 9})
	require.NoError(t, err)
	again, err := n.Activate([]float64{0.3, 0.7})
	require.NoError(t, err)

	assert.Equal(t, first, again)
	for _, v := range first {
		assert.True(t, v > 0 && v < 1, "sigmoid output %f out of (0,1)", v)
	}
}

func TestParseArchitecture(t *testing.T) {
	arch, err := ParseArchitecture("2, 2,1")
	require.NoError(t, err)
	assert.Equal(t, Architecture{2, 2, 1}, arch)
	assert.Equal(t, "2,2,1", arch.String())
	assert.Equal(t, 6, arch.WeightCount())

	_, err = ParseArchitecture("2")
	require.ErrorIs(t, err, ErrInvalidArchitecture)

	_, err = ParseArchitecture("2,x,1")
	require.ErrorIs(t, err, ErrInvalidArchitecture)
}
