package layer

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/FlavioCFOliveira/danne/internal/activations"
	"github.com/FlavioCFOliveira/danne/internal/initializer"
)

// BiasMode controls how the bias enters the weighted sum.
type BiasMode int

const (
	// BiasOnce computes sum(w_i * x_i) + b.
	BiasOnce BiasMode = iota

	// BiasPerSynapse computes sum(w_i * x_i + b), adding the bias once per
	// synapse. Networks trained this way need it to reproduce their outputs.
	BiasPerSynapse
)

// String returns the config name of the mode.
func (m BiasMode) String() string {
	switch m {
	case BiasOnce:
		return "once"
	case BiasPerSynapse:
		return "per_synapse"
	}
	return fmt.Sprintf("BiasMode(%d)", int(m))
}

// MarshalText implements encoding.TextMarshaler.
func (m BiasMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *BiasMode) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "once", "":
		*m = BiasOnce
	case "per_synapse", "persynapse":
		*m = BiasPerSynapse
	default:
		return errors.Errorf("unknown bias mode %q", text)
	}
	return nil
}

// Neuron is a single unit with one weight per synapse and a bias.
// The weight count is fixed at construction.
type Neuron struct {
	id      uuid.UUID
	weights []float64
	bias    float64
	kind    activations.Kind
	act     activations.Activation
	mode    BiasMode

	// Cached by the most recent forward pass and weight adjustment.
	input  []float64
	output float64
	err    float64
}

// NewNeuron creates a neuron with synapses weights. Each weight, then the
// bias, is drawn from init via initializer.Value. A nil init uses the shared
// default generator.
func NewNeuron(synapses int, kind activations.Kind, init initializer.Initializer, mode BiasMode) (*Neuron, error) {
	if synapses < 1 {
		return nil, errors.Wrapf(ErrInvalidConfiguration, "neuron needs at least 1 synapse, got %d", synapses)
	}
	if init == nil {
		init = initializer.Default()
	}

	n := newNeuron(uuid.New(), synapses, kind, mode)
	for i := range n.weights {
		n.weights[i] = initializer.Value(init)
	}
	n.bias = initializer.Value(init)

	return n, nil
}

// RestoreNeuron rebuilds a neuron from saved weights, keeping its ID.
func RestoreNeuron(id uuid.UUID, weights []float64, bias float64, kind activations.Kind, mode BiasMode) (*Neuron, error) {
	if len(weights) < 1 {
		return nil, errors.Wrapf(ErrInvalidConfiguration, "neuron %s has no weights", id)
	}
	n := newNeuron(id, len(weights), kind, mode)
	copy(n.weights, weights)
	n.bias = bias
	return n, nil
}

func newNeuron(id uuid.UUID, synapses int, kind activations.Kind, mode BiasMode) *Neuron {
	return &Neuron{
		id:      id,
		weights: make([]float64, synapses),
		kind:    kind,
		act:     activations.For(kind),
		mode:    mode,
		input:   make([]float64, synapses),
	}
}

// Net computes the weighted sum of input plus bias and caches input.
func (n *Neuron) Net(input []float64) (float64, error) {
	if len(input) != len(n.weights) {
		return 0, errors.Wrapf(ErrInvalidConfiguration,
			"neuron %s: got %d inputs, want %d", n.id, len(input), len(n.weights))
	}
	copy(n.input, input)

	if n.mode == BiasPerSynapse {
		sum := 0.0
		for i, w := range n.weights {
			sum += w*n.input[i] + n.bias
		}
		return sum, nil
	}
	return floats.Dot(n.weights, n.input) + n.bias, nil
}

// Activate applies the activation function to Net(input) and caches the result.
func (n *Neuron) Activate(input []float64) (float64, error) {
	raw, err := n.Net(input)
	if err != nil {
		return 0, err
	}
	n.output = n.act.Activate(raw)
	return n.output, nil
}

// AdjustWeights applies w_i += input_i * err * lr using the input cached by
// the last forward pass. When applyLearningRate is false the rate is 1.
// The bias is never adjusted.
func (n *Neuron) AdjustWeights(err, learningRate float64, applyLearningRate bool) {
	n.err = err
	step := err
	if applyLearningRate {
		step *= learningRate
	}
	floats.AddScaled(n.weights, step, n.input)
}

// Derivative returns the activation derivative at the cached output.
func (n *Neuron) Derivative() float64 {
	return n.act.Derivative(n.output)
}

// ID returns the neuron's identifier.
func (n *Neuron) ID() uuid.UUID { return n.id }

// Synapses returns the number of weights.
func (n *Neuron) Synapses() int { return len(n.weights) }

// Weights returns a copy of the weights.
func (n *Neuron) Weights() []float64 {
	return append([]float64(nil), n.weights...)
}

// Weight returns the weight of synapse i.
func (n *Neuron) Weight(i int) float64 { return n.weights[i] }

// Bias returns the bias.
func (n *Neuron) Bias() float64 { return n.bias }

// Activation returns the activation kind.
func (n *Neuron) Activation() activations.Kind { return n.kind }

// BiasMode returns how the bias enters the weighted sum.
func (n *Neuron) BiasMode() BiasMode { return n.mode }

// Input returns a copy of the input cached by the last forward pass.
func (n *Neuron) Input() []float64 {
	return append([]float64(nil), n.input...)
}

// Output returns the activation cached by the last forward pass.
func (n *Neuron) Output() float64 { return n.output }

// Delta returns the error signal cached by the last weight adjustment.
func (n *Neuron) Delta() float64 { return n.err }

// SetWeights overwrites the weights and bias. The weight count must match.
func (n *Neuron) SetWeights(weights []float64, bias float64) error {
	if len(weights) != len(n.weights) {
		return errors.Wrapf(ErrInvalidConfiguration,
			"neuron %s: got %d weights, want %d", n.id, len(weights), len(n.weights))
	}
	copy(n.weights, weights)
	n.bias = bias
	return nil
}

// String implements fmt.Stringer.
func (n *Neuron) String() string {
	return fmt.Sprintf("%s (Total Weights: %d)", n.id, len(n.weights))
}
