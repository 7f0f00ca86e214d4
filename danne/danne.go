// Package danne is the public entry point to the network engine. It
// re-exports the types and constructors needed to build, train, persist
// and query a feed-forward network.
package danne

import (
	"github.com/FlavioCFOliveira/danne/internal/activations"
	"github.com/FlavioCFOliveira/danne/internal/config"
	"github.com/FlavioCFOliveira/danne/internal/initializer"
	"github.com/FlavioCFOliveira/danne/internal/layer"
	"github.com/FlavioCFOliveira/danne/internal/loss"
	"github.com/FlavioCFOliveira/danne/internal/net"
	"github.com/FlavioCFOliveira/danne/internal/opt"
)

// Re-export common types for easier access
type (
	Network         = net.Network
	Option          = net.Option
	State           = net.State
	TargetTransform = net.TargetTransform
	Trainer         = net.Trainer
	Snapshot        = net.Snapshot
	Dataset         = net.Dataset
	Callback        = net.Callback
	Layer           = layer.Layer
	Neuron          = layer.Neuron
	BiasMode        = layer.BiasMode
	Activation      = activations.Kind
	Initializer     = initializer.Initializer
	Scheduler       = opt.Scheduler
	Loss            = loss.Loss
	Config          = config.Config
)

// Network creation
func New(learningRate float64, epochs int, opts ...Option) *Network {
	return net.New(learningRate, epochs, opts...)
}

// Activations
const (
	Sigmoid = activations.KindSigmoid
	Tanh    = activations.KindTanh
	ReLU    = activations.KindReLU
	Softmax = activations.KindSoftmax
)

// Bias modes
const (
	BiasOnce       = layer.BiasOnce
	BiasPerSynapse = layer.BiasPerSynapse
)

// Target transforms
const (
	TargetIdentity = net.TargetIdentity
	TargetSigmoid  = net.TargetSigmoid
)

// Lifecycle states
const (
	StateEmpty          = net.StateEmpty
	StateInputBound     = net.StateInputBound
	StateLayersBuilding = net.StateLayersBuilding
	StateReady          = net.StateReady
	StateTrained        = net.StateTrained
)

// Errors
var (
	ErrNotEnoughTrainingData  = net.ErrNotEnoughTrainingData
	ErrNotEnoughHiddenNeurons = net.ErrNotEnoughHiddenNeurons
	ErrInvalidOutputShape     = net.ErrInvalidOutputShape
	ErrNumericParse           = net.ErrNumericParse
	ErrInvalidNetworkState    = net.ErrInvalidNetworkState
	ErrInvalidInputShape      = net.ErrInvalidInputShape
	ErrInvalidConfiguration   = net.ErrInvalidConfiguration
)

// Options
func WithInitializer(init Initializer) Option      { return net.WithInitializer(init) }
func WithBiasMode(mode BiasMode) Option            { return net.WithBiasMode(mode) }
func WithApplyLearningRate(apply bool) Option      { return net.WithApplyLearningRate(apply) }
func WithTargetTransform(t TargetTransform) Option { return net.WithTargetTransform(t) }
func WithOutputActivation(kind Activation) Option  { return net.WithOutputActivation(kind) }
func WithCallbacks(callbacks ...Callback) Option   { return net.WithCallbacks(callbacks...) }
func WithScheduler(s Scheduler) Option             { return net.WithScheduler(s) }
func WithLoss(l Loss) Option                       { return net.WithLoss(l) }

// Initializers
func MersenneTwister(seed uint64) Initializer {
	return initializer.NewMersenneTwister(seed)
}

func Random(seed int64) Initializer {
	return initializer.NewUniform(seed)
}

func Cryptographic() Initializer {
	return initializer.NewCrypto()
}

// Schedulers
func ConstantLR(lr float64) Scheduler {
	return opt.Constant{LearningRate: lr}
}

func StepLR(lr float64, stepSize int, gamma float64) Scheduler {
	return opt.NewStepLR(lr, stepSize, gamma)
}

func ExponentialLR(lr, gamma float64) Scheduler {
	return opt.NewExponentialLR(lr, gamma)
}

func ReduceLROnPlateau(lr, factor float64, patience int, threshold, minLR float64) Scheduler {
	return opt.NewReduceLROnPlateau(lr, factor, patience, threshold, minLR)
}

// Losses
var (
	MSE    = loss.MSE{}
	SumAbs = loss.SumAbs{}
)

// Callbacks
func Logger(interval int) net.Logger {
	return net.Logger{Interval: interval}
}

func CSVLogger(filename string) *net.CSVLogger {
	return net.NewCSVLogger(filename, false)
}

func ModelCheckpoint(filename string) *net.ModelCheckpoint {
	return net.NewModelCheckpoint(filename)
}

// Data
func LoadCSV(filename string, labelCols []int, hasHeader bool) (*Dataset, error) {
	return net.LoadCSV(filename, labelCols, hasHeader)
}

// Configuration
func LoadConfig(path string) (*Config, error) {
	return config.Load(path)
}

func DefaultConfig() *Config {
	return config.Default()
}

// Persistence
func Load(filename string, opts ...Option) (*Network, error) {
	return net.Load(filename, opts...)
}

func FromSnapshot(s *Snapshot, opts ...Option) (*Network, error) {
	return net.FromSnapshot(s, opts...)
}
