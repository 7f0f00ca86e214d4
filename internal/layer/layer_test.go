// Package layer provides unit tests for neurons and layers.
package layer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FlavioCFOliveira/danne/internal/activations"
	"github.com/FlavioCFOliveira/danne/internal/initializer"
)

// TestNewLayer tests layer construction.
func TestNewLayer(t *testing.T) {
	l, err := New(4, 2, activations.KindSigmoid, initializer.NewMersenneTwister(1), BiasOnce)
	require.NoError(t, err)

	assert.Equal(t, 4, l.Len())
	assert.Equal(t, 2, l.Synapses())
	assert.Equal(t, activations.KindSigmoid, l.Activation())
	for _, n := range l.Neurons() {
		assert.Equal(t, 2, n.Synapses())
		assert.Equal(t, activations.KindSigmoid, n.Activation())
	}

	_, err = New(0, 2, activations.KindSigmoid, nil, BiasOnce)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = New(3, 0, activations.KindSigmoid, nil, BiasOnce)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

// TestLayerForward tests that outputs follow neuron order.
func TestLayerForward(t *testing.T) {
	l, err := New(3, 2, activations.KindTanh, initializer.NewMersenneTwister(1), BiasOnce)
	require.NoError(t, err)

	require.NoError(t, l.Neuron(0).SetWeights([]float64{1, 0}, 0))
	require.NoError(t, l.Neuron(1).SetWeights([]float64{0, 1}, 0))
	require.NoError(t, l.Neuron(2).SetWeights([]float64{1, 1}, -0.5))

	out, err := l.Forward([]float64{0.5, 2})
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.InDelta(t, activations.Tanh(0.5), out[0], 1e-12)
	assert.InDelta(t, activations.Tanh(2), out[1], 1e-12)
	assert.InDelta(t, activations.Tanh(2), out[2], 1e-12)
	assert.Equal(t, out, l.Outputs())
}

// TestLayerForwardInputMismatch tests the input width guard.
func TestLayerForwardInputMismatch(t *testing.T) {
	l, err := New(2, 3, activations.KindSigmoid, nil, BiasOnce)
	require.NoError(t, err)

	_, err = l.Forward([]float64{1, 2})
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

// TestSoftmaxLayer tests that a softmax layer emits a probability vector.
func TestSoftmaxLayer(t *testing.T) {
	l, err := New(4, 3, activations.KindSoftmax, initializer.NewMersenneTwister(5), BiasOnce)
	require.NoError(t, err)

	out, err := l.Forward([]float64{0.2, -1, 3})
	require.NoError(t, err)

	sum := 0.0
	for _, p := range out {
		assert.GreaterOrEqual(t, p, 0.0)
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
	for i, n := range l.Neurons() {
		assert.Equal(t, out[i], n.Output())
	}
}

// TestLayerDeltas tests that deltas reflect the last adjustment.
func TestLayerDeltas(t *testing.T) {
	l, err := New(2, 2, activations.KindSigmoid, initializer.NewMersenneTwister(2), BiasOnce)
	require.NoError(t, err)

	_, err = l.Forward([]float64{1, 1})
	require.NoError(t, err)
	l.Neuron(0).AdjustWeights(0.5, 1, false)
	l.Neuron(1).AdjustWeights(-0.5, 1, false)

	assert.Equal(t, []float64{0.5, -0.5}, l.Deltas())
}

// TestFromNeurons tests assembling a layer from restored neurons.
func TestFromNeurons(t *testing.T) {
	a, err := NewNeuron(2, activations.KindSigmoid, nil, BiasOnce)
	require.NoError(t, err)
	b, err := NewNeuron(2, activations.KindSigmoid, nil, BiasOnce)
	require.NoError(t, err)
	c, err := NewNeuron(3, activations.KindSigmoid, nil, BiasOnce)
	require.NoError(t, err)

	l, err := FromNeurons([]*Neuron{a, b})
	require.NoError(t, err)
	assert.Equal(t, 2, l.Len())
	assert.Equal(t, 2, l.Synapses())

	_, err = FromNeurons([]*Neuron{a, c})
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = FromNeurons(nil)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}
