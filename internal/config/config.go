// Package config loads training runs from YAML.
package config

import (
	"io"
	"math"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/FlavioCFOliveira/danne/internal/activations"
	"github.com/FlavioCFOliveira/danne/internal/initializer"
	"github.com/FlavioCFOliveira/danne/internal/layer"
	"github.com/FlavioCFOliveira/danne/internal/loss"
	"github.com/FlavioCFOliveira/danne/internal/net"
	"github.com/FlavioCFOliveira/danne/internal/opt"
)

// Config describes a network and how to train it.
type Config struct {
	LearningRate      float64             `yaml:"learning_rate"`
	Epochs            int                 `yaml:"epochs"`
	ApplyLearningRate bool                `yaml:"apply_learning_rate"`
	TargetTransform   net.TargetTransform `yaml:"target_transform"`
	BiasMode          layer.BiasMode      `yaml:"bias_mode"`
	Initializer       InitializerConfig   `yaml:"initializer"`
	HiddenLayers      []LayerConfig       `yaml:"hidden_layers"`
	OutputActivation  activations.Kind    `yaml:"output_activation"`
	Schedule          ScheduleConfig      `yaml:"schedule"`
	Loss              string              `yaml:"loss"`
	Data              DataConfig          `yaml:"data"`
	Log               LogConfig           `yaml:"log"`

	// Checkpoint, when set, is the file the best network is saved to.
	Checkpoint string `yaml:"checkpoint,omitempty"`
}

// InitializerConfig picks the weight initializer. Seed 0 seeds from the clock.
type InitializerConfig struct {
	Kind initializer.Kind `yaml:"kind"`
	Seed uint64           `yaml:"seed"`
}

// LayerConfig defines one hidden layer.
type LayerConfig struct {
	Neurons    int              `yaml:"neurons"`
	Activation activations.Kind `yaml:"activation"`
}

// ScheduleConfig selects a learning-rate schedule.
type ScheduleConfig struct {
	Kind   opt.Kind   `yaml:"kind"`
	Params opt.Params `yaml:",inline"`
}

// DataConfig locates the CSV training data.
type DataConfig struct {
	Path         string `yaml:"path"`
	LabelColumns []int  `yaml:"label_columns"`
	HasHeader    bool   `yaml:"has_header"`
	Normalize    bool   `yaml:"normalize"`

	// Holdout is the trailing fraction of rows kept out of training and
	// used to report the error on unseen samples. 0 trains on every row.
	Holdout float64 `yaml:"holdout"`
}

// LogConfig controls progress output.
type LogConfig struct {
	Interval int    `yaml:"interval"`
	Verbose  bool   `yaml:"verbose"`
	CSV      string `yaml:"csv,omitempty"`
}

// Default returns the configuration of the classic XOR run: learning rate 1,
// 2000 epochs and one sigmoid hidden layer of 4 neurons.
func Default() *Config {
	return &Config{
		LearningRate:      net.DefaultLearningRate,
		Epochs:            net.DefaultEpochs,
		ApplyLearningRate: true,
		HiddenLayers:      []LayerConfig{{Neurons: 4, Activation: activations.KindSigmoid}},
		OutputActivation:  activations.KindSigmoid,
		Schedule:          ScheduleConfig{Kind: opt.KindConstant},
		Loss:              "mse",
		Log:               LogConfig{Interval: 100},
	}
}

// Load reads and validates the YAML file at path. Fields it leaves out
// keep their Default values.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open config")
	}
	defer f.Close()

	c, err := Read(f)
	if err != nil {
		return nil, errors.WithMessage(err, path)
	}
	return c, nil
}

// Read decodes and validates a YAML configuration. Unknown keys are rejected.
func Read(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return nil, errors.Wrap(net.ErrInvalidConfiguration, err.Error())
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate reports the first setting that cannot produce a working run.
func (c *Config) Validate() error {
	switch {
	case math.IsNaN(c.LearningRate) || c.LearningRate < 0:
		return errors.Wrapf(net.ErrInvalidConfiguration, "learning_rate must be >= 0, got %v", c.LearningRate)
	case c.Epochs < 0:
		return errors.Wrapf(net.ErrInvalidConfiguration, "epochs must be >= 0, got %d", c.Epochs)
	case len(c.HiddenLayers) == 0:
		return errors.Wrap(net.ErrInvalidConfiguration, "at least one hidden layer is required")
	case math.IsNaN(c.Data.Holdout) || c.Data.Holdout < 0 || c.Data.Holdout >= 1:
		return errors.Wrapf(net.ErrInvalidConfiguration, "data.holdout must be in [0, 1), got %v", c.Data.Holdout)
	case c.Log.Interval < 0:
		return errors.Wrapf(net.ErrInvalidConfiguration, "log.interval must be >= 0, got %d", c.Log.Interval)
	}
	for i, l := range c.HiddenLayers {
		if l.Neurons < net.MinHiddenNeurons {
			return errors.Wrapf(net.ErrNotEnoughHiddenNeurons,
				"hidden_layers[%d] needs at least %d neurons, got %d", i, net.MinHiddenNeurons, l.Neurons)
		}
	}
	if _, err := c.Scheduler(); err != nil {
		return err
	}
	if _, err := c.LossFunc(); err != nil {
		return err
	}
	return nil
}

// Scheduler builds the configured learning-rate schedule.
func (c *Config) Scheduler() (opt.Scheduler, error) {
	s, err := opt.New(c.Schedule.Kind, c.LearningRate, c.Schedule.Params)
	if err != nil {
		return nil, errors.Wrap(net.ErrInvalidConfiguration, err.Error())
	}
	return s, nil
}

// LossFunc builds the configured loss.
func (c *Config) LossFunc() (loss.Loss, error) {
	l, err := loss.Parse(c.Loss)
	if err != nil {
		return nil, errors.Wrap(net.ErrInvalidConfiguration, err.Error())
	}
	return l, nil
}

// Callbacks builds the reporting callbacks: a Logger writing to w, plus a
// CSVLogger and a ModelCheckpoint when their files are configured.
func (c *Config) Callbacks(w io.Writer) []net.Callback {
	callbacks := []net.Callback{
		net.Logger{Writer: w, Interval: c.Log.Interval, Verbose: c.Log.Verbose},
	}
	if c.Log.CSV != "" {
		callbacks = append(callbacks, net.NewCSVLogger(c.Log.CSV, false))
	}
	if c.Checkpoint != "" {
		ckpt := net.NewModelCheckpoint(c.Checkpoint)
		ckpt.Writer = w
		callbacks = append(callbacks, ckpt)
	}
	return callbacks
}

// Options converts the configuration into network options. Extra
// callbacks are registered after the configured ones.
func (c *Config) Options(callbacks ...net.Callback) ([]net.Option, error) {
	init, err := initializer.New(c.Initializer.Kind, c.Initializer.Seed)
	if err != nil {
		return nil, errors.Wrap(net.ErrInvalidConfiguration, err.Error())
	}
	sched, err := c.Scheduler()
	if err != nil {
		return nil, err
	}
	lossFn, err := c.LossFunc()
	if err != nil {
		return nil, err
	}

	return []net.Option{
		net.WithInitializer(init),
		net.WithBiasMode(c.BiasMode),
		net.WithApplyLearningRate(c.ApplyLearningRate),
		net.WithTargetTransform(c.TargetTransform),
		net.WithOutputActivation(c.OutputActivation),
		net.WithScheduler(sched),
		net.WithLoss(lossFn),
		net.WithCallbacks(callbacks...),
	}, nil
}

// Build creates a network bound to the given data with every configured
// hidden layer, ready to train.
func (c *Config) Build(inputs, targets [][]float64, callbacks ...net.Callback) (*net.Network, error) {
	opts, err := c.Options(callbacks...)
	if err != nil {
		return nil, err
	}

	n := net.New(c.LearningRate, c.Epochs, opts...)
	if err := n.SetTrainingInput(inputs); err != nil {
		return nil, err
	}
	for i, l := range c.HiddenLayers {
		if err := n.AddHiddenLayer(l.Neurons, l.Activation); err != nil {
			return nil, errors.WithMessagef(err, "hidden_layers[%d]", i)
		}
	}
	if err := n.SetTrainingOutput(targets); err != nil {
		return nil, err
	}
	return n, nil
}

// LoadData reads the configured CSV file.
func (c *Config) LoadData() (*net.Dataset, error) {
	if c.Data.Path == "" {
		return nil, errors.Wrap(net.ErrInvalidConfiguration, "data.path is not set")
	}
	ds, err := net.LoadCSV(c.Data.Path, c.Data.LabelColumns, c.Data.HasHeader)
	if err != nil {
		return nil, err
	}
	if c.Data.Normalize {
		ds.Normalize()
	}
	return ds, nil
}

// SplitData separates the held-out rows from the training rows. Without a
// holdout the test set is empty.
func (c *Config) SplitData(ds *net.Dataset) (train, test *net.Dataset) {
	if c.Data.Holdout <= 0 {
		return ds, &net.Dataset{}
	}
	return ds.Split(1 - c.Data.Holdout)
}

// Write encodes c as YAML.
func (c *Config) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return errors.Wrap(err, "failed to encode config")
	}
	return errors.Wrap(enc.Close(), "failed to flush config")
}
