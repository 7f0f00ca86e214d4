// Package net provides the feed-forward network, its training loop and the
// reporting callbacks driven by it.
package net

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/FlavioCFOliveira/danne/internal/activations"
	"github.com/FlavioCFOliveira/danne/internal/initializer"
	"github.com/FlavioCFOliveira/danne/internal/layer"
	"github.com/FlavioCFOliveira/danne/internal/loss"
	"github.com/FlavioCFOliveira/danne/internal/opt"
)

// Construction limits.
const (
	MinSamples       = 4
	MinInputWidth    = 2
	MinHiddenNeurons = 2
)

// Defaults used by the configuration layer.
const (
	DefaultLearningRate = 1.0
	DefaultEpochs       = 2000
)

// State is a step of the network's construction lifecycle.
type State int

const (
	StateEmpty State = iota
	StateInputBound
	StateLayersBuilding
	StateReady
	StateTrained
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateInputBound:
		return "input bound"
	case StateLayersBuilding:
		return "layers building"
	case StateReady:
		return "ready"
	case StateTrained:
		return "trained"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// TargetTransform is applied to every training target before the error
// signal is computed.
type TargetTransform int

const (
	// TargetIdentity uses targets as given.
	TargetIdentity TargetTransform = iota

	// TargetSigmoid squashes targets through the sigmoid first.
	// Targets of 0 and 1 become 0.5 and ~0.73.
	TargetSigmoid
)

func (t TargetTransform) String() string {
	switch t {
	case TargetIdentity:
		return "identity"
	case TargetSigmoid:
		return "sigmoid"
	}
	return fmt.Sprintf("TargetTransform(%d)", int(t))
}

// MarshalText implements encoding.TextMarshaler.
func (t TargetTransform) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TargetTransform) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "identity", "none", "":
		*t = TargetIdentity
	case "sigmoid":
		*t = TargetSigmoid
	default:
		return errors.Errorf("unknown target transform %q", text)
	}
	return nil
}

// Apply returns the transformed target. The input is not modified.
func (t TargetTransform) Apply(target []float64) []float64 {
	if t != TargetSigmoid {
		return target
	}
	out := make([]float64, len(target))
	for i, v := range target {
		out[i] = activations.Sigmoid(v)
	}
	return out
}

// Network is a stack of hidden layers followed by one output layer.
//
// It is built incrementally: bind the training inputs, add hidden layers,
// then bind the training targets, which creates the output layer. A Network
// is not safe for concurrent use.
type Network struct {
	hidden []*layer.Layer
	output *layer.Layer

	learningRate      float64
	epochs            int
	applyLearningRate bool
	targetTransform   TargetTransform
	outputActivation  activations.Kind
	biasMode          layer.BiasMode
	init              initializer.Initializer
	callbacks         []Callback
	scheduler         opt.Scheduler
	loss              loss.Loss

	inputs     [][]float64
	targets    [][]float64
	inputWidth int
	state      State
}

// Option configures a Network.
type Option func(*Network)

// WithInitializer sets the random source for weights and biases.
func WithInitializer(init initializer.Initializer) Option {
	return func(n *Network) { n.init = init }
}

// WithBiasMode sets how neurons add their bias.
func WithBiasMode(mode layer.BiasMode) Option {
	return func(n *Network) { n.biasMode = mode }
}

// WithApplyLearningRate controls whether weight deltas are scaled by the
// learning rate. When false every update uses a rate of 1.
func WithApplyLearningRate(apply bool) Option {
	return func(n *Network) { n.applyLearningRate = apply }
}

// WithTargetTransform sets the preprocessing applied to training targets.
func WithTargetTransform(t TargetTransform) Option {
	return func(n *Network) { n.targetTransform = t }
}

// WithOutputActivation sets the activation of the output layer.
func WithOutputActivation(kind activations.Kind) Option {
	return func(n *Network) { n.outputActivation = kind }
}

// WithCallbacks registers reporting callbacks used by Train.
func WithCallbacks(callbacks ...Callback) Option {
	return func(n *Network) { n.callbacks = append(n.callbacks, callbacks...) }
}

// WithScheduler sets the learning-rate policy used by Train.
func WithScheduler(s opt.Scheduler) Option {
	return func(n *Network) { n.scheduler = s }
}

// WithLoss sets the loss reported to callbacks. The default is MSE.
func WithLoss(l loss.Loss) Option {
	return func(n *Network) { n.loss = l }
}

// New creates an empty network.
func New(learningRate float64, epochs int, opts ...Option) *Network {
	n := &Network{
		learningRate:      learningRate,
		epochs:            epochs,
		applyLearningRate: true,
		outputActivation:  activations.KindSigmoid,
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.init == nil {
		n.init = initializer.Default()
	}
	return n
}

// SetTrainingInput binds the training input rows. It needs at least
// MinSamples rows of at least MinInputWidth columns, all of equal width.
// The rows are copied.
func (n *Network) SetTrainingInput(samples [][]float64) error {
	if n.state != StateEmpty && n.state != StateInputBound {
		return errors.Wrapf(ErrInvalidNetworkState,
			"training input must be bound before hidden layers are added (state: %s)", n.state)
	}
	if len(samples) < MinSamples {
		return errors.Wrapf(ErrNotEnoughTrainingData,
			"training data must contain at least %d rows, got %d", MinSamples, len(samples))
	}
	width := len(samples[0])
	if width < MinInputWidth {
		return errors.Wrapf(ErrNotEnoughTrainingData,
			"training data must contain at least %d columns, got %d", MinInputWidth, width)
	}
	rows, err := copyRows(samples, width)
	if err != nil {
		return errors.Wrap(ErrInvalidInputShape, err.Error())
	}

	n.inputs = rows
	n.inputWidth = width
	n.state = StateInputBound
	return nil
}

// AddHiddenLayer appends a hidden layer of neurons units. Its synapse count
// is the width of the previous hidden layer, or the input width for the
// first one.
func (n *Network) AddHiddenLayer(neurons int, kind activations.Kind) error {
	if n.state != StateInputBound && n.state != StateLayersBuilding {
		return errors.Wrapf(ErrInvalidNetworkState,
			"hidden layers must be added after the input and before the output is bound (state: %s)", n.state)
	}
	if neurons < MinHiddenNeurons {
		return errors.Wrapf(ErrNotEnoughHiddenNeurons,
			"a hidden layer needs at least %d neurons, got %d", MinHiddenNeurons, neurons)
	}

	synapses := n.inputWidth
	if len(n.hidden) > 0 {
		synapses = n.hidden[len(n.hidden)-1].Len()
	}
	l, err := layer.New(neurons, synapses, kind, n.init, n.biasMode)
	if err != nil {
		return errors.WithMessagef(err, "hidden layer %d", len(n.hidden))
	}

	n.hidden = append(n.hidden, l)
	n.state = StateLayersBuilding
	return nil
}

// SetTrainingOutput binds the training targets and creates the output
// layer, one neuron per target column. It needs at least one hidden layer
// and as many rows as the training input.
func (n *Network) SetTrainingOutput(samples [][]float64) error {
	if n.state != StateLayersBuilding {
		return errors.Wrapf(ErrInvalidNetworkState,
			"output can only be bound after at least one hidden layer is added (state: %s)", n.state)
	}
	if len(samples) != len(n.inputs) {
		return errors.Wrapf(ErrInvalidOutputShape,
			"output data must contain the same number of rows as the input data: got %d, want %d",
			len(samples), len(n.inputs))
	}
	width := len(samples[0])
	if width < 1 {
		return errors.Wrap(ErrInvalidOutputShape, "output data must contain at least 1 column")
	}
	rows, err := copyRows(samples, width)
	if err != nil {
		return errors.Wrap(ErrInvalidOutputShape, err.Error())
	}

	last := n.hidden[len(n.hidden)-1]
	out, err := layer.New(width, last.Len(), n.outputActivation, n.init, n.biasMode)
	if err != nil {
		return errors.WithMessage(err, "output layer")
	}

	n.targets = rows
	n.output = out
	n.state = StateReady
	return nil
}

// FeedForward propagates input through every layer and returns the output
// layer's activations. Weights are not modified.
func (n *Network) FeedForward(input []float64) ([]float64, error) {
	if n.state != StateReady && n.state != StateTrained {
		return nil, errors.Wrapf(ErrInvalidNetworkState,
			"feed forward needs input, hidden and output layers (state: %s)", n.state)
	}
	if len(input) != n.inputWidth {
		return nil, errors.Wrapf(ErrInvalidInputShape,
			"input has %d values, want %d", len(input), n.inputWidth)
	}
	return n.forward(input)
}

// Train runs the epoch loop over the bound training data with the
// network's callbacks. It can be called again to continue training.
func (n *Network) Train(ctx context.Context) error {
	t := &Trainer{
		Network:   n,
		Scheduler: n.scheduler,
		Loss:      n.loss,
		Callbacks: n.callbacks,
	}
	return t.Run(ctx)
}

// Evaluate runs every sample through FeedForward and returns the summed
// loss against its target. A nil loss means SumAbs.
func (n *Network) Evaluate(samples, targets [][]float64, l loss.Loss) (float64, error) {
	if len(samples) != len(targets) {
		return 0, errors.Wrapf(ErrInvalidOutputShape,
			"got %d samples and %d targets", len(samples), len(targets))
	}
	if l == nil {
		l = loss.SumAbs{}
	}

	total := 0.0
	for i, sample := range samples {
		out, err := n.FeedForward(sample)
		if err != nil {
			return 0, errors.WithMessagef(err, "sample %d", i)
		}
		if len(targets[i]) != len(out) {
			return 0, errors.Wrapf(ErrInvalidOutputShape,
				"target %d has %d values, want %d", i, len(targets[i]), len(out))
		}
		total += l.Forward(out, targets[i])
	}
	return total, nil
}

func (n *Network) forward(input []float64) ([]float64, error) {
	curr := input
	for i, l := range n.hidden {
		next, err := l.Forward(curr)
		if err != nil {
			return nil, errors.WithMessagef(err, "hidden layer %d", i)
		}
		curr = next
	}
	out, err := n.output.Forward(curr)
	if err != nil {
		return nil, errors.WithMessage(err, "output layer")
	}
	return out, nil
}

// backward assigns error signals and adjusts weights for the sample most
// recently passed through forward. The output layer is updated first; each
// hidden layer then reads the already updated weights of the layer after it.
func (n *Network) backward(target []float64, lr float64) {
	for j, nr := range n.output.Neurons() {
		delta := nr.Derivative() * (target[j] - nr.Output())
		nr.AdjustWeights(delta, lr, n.applyLearningRate)
	}

	down := n.output
	for i := len(n.hidden) - 1; i >= 0; i-- {
		l := n.hidden[i]
		for j, nr := range l.Neurons() {
			sum := 0.0
			for _, k := range down.Neurons() {
				sum += k.Delta() * k.Weight(j)
			}
			nr.AdjustWeights(nr.Derivative()*sum, lr, n.applyLearningRate)
		}
		down = l
	}
}

func (n *Network) canTrain() error {
	if n.state != StateReady && n.state != StateTrained {
		return errors.Wrapf(ErrInvalidNetworkState,
			"training needs input, hidden and output layers (state: %s)", n.state)
	}
	if len(n.inputs) == 0 || len(n.inputs) != len(n.targets) {
		return errors.Wrap(ErrInvalidNetworkState, "no training data bound")
	}
	if n.epochs < 0 {
		return errors.Wrapf(ErrInvalidConfiguration, "epoch count must not be negative, got %d", n.epochs)
	}
	return nil
}

// copyRows deep-copies rows, checking they all have width columns.
func copyRows(rows [][]float64, width int) ([][]float64, error) {
	out := make([][]float64, len(rows))
	for i, r := range rows {
		if len(r) != width {
			return nil, errors.Errorf("row %d has %d columns, want %d", i, len(r), width)
		}
		out[i] = append([]float64(nil), r...)
	}
	return out, nil
}

// State returns the lifecycle state.
func (n *Network) State() State { return n.state }

// LearningRate returns the base learning rate.
func (n *Network) LearningRate() float64 { return n.learningRate }

// SetLearningRate changes the base learning rate.
func (n *Network) SetLearningRate(lr float64) { n.learningRate = lr }

// Epochs returns the number of epochs Train runs.
func (n *Network) Epochs() int { return n.epochs }

// SetEpochs changes the number of epochs Train runs.
func (n *Network) SetEpochs(epochs int) { n.epochs = epochs }

// ApplyLearningRate reports whether weight deltas are scaled by the rate.
func (n *Network) ApplyLearningRate() bool { return n.applyLearningRate }

// TargetTransform returns the target preprocessing step.
func (n *Network) TargetTransform() TargetTransform { return n.targetTransform }

// BiasMode returns how neurons add their bias.
func (n *Network) BiasMode() layer.BiasMode { return n.biasMode }

// HiddenLayers returns the hidden layers in order.
func (n *Network) HiddenLayers() []*layer.Layer { return n.hidden }

// OutputLayer returns the output layer, or nil before the output is bound.
func (n *Network) OutputLayer() *layer.Layer { return n.output }

// Layers returns the hidden layers followed by the output layer.
func (n *Network) Layers() []*layer.Layer {
	layers := append([]*layer.Layer(nil), n.hidden...)
	if n.output != nil {
		layers = append(layers, n.output)
	}
	return layers
}

// InputWidth returns the expected input vector length.
func (n *Network) InputWidth() int { return n.inputWidth }

// OutputWidth returns the output vector length, or 0 before the output is bound.
func (n *Network) OutputWidth() int {
	if n.output == nil {
		return 0
	}
	return n.output.Len()
}

// SampleCount returns the number of bound training samples.
func (n *Network) SampleCount() int { return len(n.inputs) }
