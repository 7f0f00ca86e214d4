package net

import (
	"encoding/gob"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/FlavioCFOliveira/danne/internal/activations"
	"github.com/FlavioCFOliveira/danne/internal/layer"
)

// snapshotFormat tags the stream so unrelated gob data is rejected early.
const snapshotFormat = "danne-snapshot/1"

// NeuronSnapshot holds one neuron's parameters.
type NeuronSnapshot struct {
	ID      uuid.UUID
	Weights []float64
	Bias    float64
}

// LayerSnapshot holds one layer's activation and neurons.
type LayerSnapshot struct {
	Activation activations.Kind
	Neurons    []NeuronSnapshot
}

// Snapshot is everything needed to rebuild a network for inference
// without retraining. The last layer is the output layer.
type Snapshot struct {
	InputWidth        int
	BiasMode          layer.BiasMode
	LearningRate      float64
	Epochs            int
	ApplyLearningRate bool
	TargetTransform   TargetTransform
	Layers            []LayerSnapshot
}

// Snapshot captures the current weights and shape of the network.
func (n *Network) Snapshot() (*Snapshot, error) {
	if n.output == nil {
		return nil, errors.Wrapf(ErrInvalidNetworkState, "snapshot needs an output layer (state: %s)", n.state)
	}

	s := &Snapshot{
		InputWidth:        n.inputWidth,
		BiasMode:          n.biasMode,
		LearningRate:      n.learningRate,
		Epochs:            n.epochs,
		ApplyLearningRate: n.applyLearningRate,
		TargetTransform:   n.targetTransform,
	}
	for _, l := range n.Layers() {
		ls := LayerSnapshot{Activation: l.Activation()}
		for _, nr := range l.Neurons() {
			ls.Neurons = append(ls.Neurons, NeuronSnapshot{
				ID:      nr.ID(),
				Weights: nr.Weights(),
				Bias:    nr.Bias(),
			})
		}
		s.Layers = append(s.Layers, ls)
	}
	return s, nil
}

// FromSnapshot rebuilds a network in StateTrained. It can run FeedForward
// but has no training data bound.
func FromSnapshot(s *Snapshot, opts ...Option) (*Network, error) {
	if s == nil || len(s.Layers) < 2 {
		return nil, errors.Wrap(ErrInvalidConfiguration, "snapshot needs at least one hidden and one output layer")
	}

	n := New(s.LearningRate, s.Epochs, opts...)
	n.biasMode = s.BiasMode
	n.applyLearningRate = s.ApplyLearningRate
	n.targetTransform = s.TargetTransform
	n.inputWidth = s.InputWidth

	width := s.InputWidth
	for i, ls := range s.Layers {
		neurons := make([]*layer.Neuron, len(ls.Neurons))
		for j, ns := range ls.Neurons {
			if len(ns.Weights) != width {
				return nil, errors.Wrapf(ErrInvalidConfiguration,
					"layer %d neuron %d has %d weights, want %d", i, j, len(ns.Weights), width)
			}
			nr, err := layer.RestoreNeuron(ns.ID, ns.Weights, ns.Bias, ls.Activation, s.BiasMode)
			if err != nil {
				return nil, errors.WithMessagef(err, "layer %d neuron %d", i, j)
			}
			neurons[j] = nr
		}
		l, err := layer.FromNeurons(neurons)
		if err != nil {
			return nil, errors.WithMessagef(err, "layer %d", i)
		}
		if i == len(s.Layers)-1 {
			n.output = l
			n.outputActivation = l.Activation()
		} else {
			n.hidden = append(n.hidden, l)
		}
		width = l.Len()
	}

	n.state = StateTrained
	return n, nil
}

// Encode writes the network snapshot to w using gob encoding.
func (n *Network) Encode(w io.Writer) error {
	s, err := n.Snapshot()
	if err != nil {
		return err
	}

	encoder := gob.NewEncoder(w)
	if err := encoder.Encode(snapshotFormat); err != nil {
		return errors.Wrap(err, "failed to encode format")
	}
	if err := encoder.Encode(s); err != nil {
		return errors.Wrap(err, "failed to encode snapshot")
	}
	return nil
}

// Decode reads a network written by Encode.
func Decode(r io.Reader, opts ...Option) (*Network, error) {
	decoder := gob.NewDecoder(r)

	var format string
	if err := decoder.Decode(&format); err != nil {
		return nil, errors.Wrap(err, "failed to read format")
	}
	if format != snapshotFormat {
		return nil, errors.Wrapf(ErrInvalidConfiguration, "unsupported snapshot format %q", format)
	}

	var s Snapshot
	if err := decoder.Decode(&s); err != nil {
		return nil, errors.Wrap(err, "failed to read snapshot")
	}
	return FromSnapshot(&s, opts...)
}

// Save saves the network to a file.
func (n *Network) Save(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "failed to create file")
	}

	if err := n.Encode(file); err != nil {
		file.Close()
		return err
	}
	return errors.Wrap(file.Close(), "failed to close file")
}

// Load loads a network from a file written by Save.
func Load(filename string, opts ...Option) (*Network, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}
	defer file.Close()

	return Decode(file, opts...)
}
