// Package layer provides neurons and the fully connected layers built from them.
package layer

import (
	"github.com/pkg/errors"

	"github.com/FlavioCFOliveira/danne/internal/activations"
	"github.com/FlavioCFOliveira/danne/internal/initializer"
)

// Layer is an ordered, fixed-size set of neurons that all read the same input.
// It has no backward pass of its own; the network assigns error signals
// because it needs the weights of the adjacent layer.
type Layer struct {
	neurons  []*Neuron
	synapses int
	kind     activations.Kind
}

// New creates a layer of neurons units, each with synapses weights and the
// same activation kind.
func New(neurons, synapses int, kind activations.Kind, init initializer.Initializer, mode BiasMode) (*Layer, error) {
	if neurons < 1 {
		return nil, errors.Wrapf(ErrInvalidConfiguration, "layer needs at least 1 neuron, got %d", neurons)
	}

	l := &Layer{
		neurons:  make([]*Neuron, neurons),
		synapses: synapses,
		kind:     kind,
	}
	for i := range l.neurons {
		n, err := NewNeuron(synapses, kind, init, mode)
		if err != nil {
			return nil, errors.WithMessagef(err, "neuron %d", i)
		}
		l.neurons[i] = n
	}
	return l, nil
}

// FromNeurons assembles a layer from existing neurons, which must agree on
// synapse count and activation kind.
func FromNeurons(neurons []*Neuron) (*Layer, error) {
	if len(neurons) < 1 {
		return nil, errors.Wrap(ErrInvalidConfiguration, "layer needs at least 1 neuron")
	}
	first := neurons[0]
	for i, n := range neurons[1:] {
		if n.Synapses() != first.Synapses() || n.Activation() != first.Activation() {
			return nil, errors.Wrapf(ErrInvalidConfiguration,
				"neuron %d does not match neuron 0 in shape or activation", i+1)
		}
	}
	return &Layer{
		neurons:  append([]*Neuron(nil), neurons...),
		synapses: first.Synapses(),
		kind:     first.Activation(),
	}, nil
}

// Forward feeds input to every neuron and returns their activations in
// neuron order. Softmax layers normalise the raw sums across the layer.
func (l *Layer) Forward(input []float64) ([]float64, error) {
	if len(input) != l.synapses {
		return nil, errors.Wrapf(ErrInvalidConfiguration,
			"layer got %d inputs, want %d", len(input), l.synapses)
	}

	out := make([]float64, len(l.neurons))
	if l.kind == activations.KindSoftmax {
		for i, n := range l.neurons {
			raw, err := n.Net(input)
			if err != nil {
				return nil, err
			}
			out[i] = raw
		}
		out = activations.Softmax(out)
		for i, n := range l.neurons {
			n.output = out[i]
		}
		return out, nil
	}

	for i, n := range l.neurons {
		a, err := n.Activate(input)
		if err != nil {
			return nil, err
		}
		out[i] = a
	}
	return out, nil
}

// Neurons returns the layer's neurons. The slice must not be modified.
func (l *Layer) Neurons() []*Neuron { return l.neurons }

// Neuron returns neuron i.
func (l *Layer) Neuron(i int) *Neuron { return l.neurons[i] }

// Len returns the neuron count.
func (l *Layer) Len() int { return len(l.neurons) }

// Synapses returns the input width each neuron expects.
func (l *Layer) Synapses() int { return l.synapses }

// Activation returns the layer's activation kind.
func (l *Layer) Activation() activations.Kind { return l.kind }

// Outputs returns the activations cached by the last forward pass.
func (l *Layer) Outputs() []float64 {
	out := make([]float64, len(l.neurons))
	for i, n := range l.neurons {
		out[i] = n.output
	}
	return out
}

// Deltas returns the error signals cached by the last weight adjustment.
func (l *Layer) Deltas() []float64 {
	out := make([]float64, len(l.neurons))
	for i, n := range l.neurons {
		out[i] = n.err
	}
	return out
}
