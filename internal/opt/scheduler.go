// Package opt provides learning-rate policies for the training loop.
package opt

import (
	"math"
	"strings"

	"github.com/pkg/errors"
)

// Scheduler supplies the learning rate for each epoch.
type Scheduler interface {
	// Rate returns the learning rate for the current epoch.
	Rate() float64

	// Step advances the schedule by one epoch, given that epoch's loss.
	Step(loss float64)
}

// Constant keeps the learning rate fixed.
type Constant struct {
	LearningRate float64
}

func (c Constant) Rate() float64 { return c.LearningRate }
func (c Constant) Step(float64)  {}

// StepLR decays the learning rate by gamma every stepSize epochs.
type StepLR struct {
	lr        float64
	stepSize  int
	gamma     float64
	lastEpoch int
}

func NewStepLR(initialLR float64, stepSize int, gamma float64) *StepLR {
	return &StepLR{
		lr:       initialLR,
		stepSize: stepSize,
		gamma:    gamma,
	}
}

func (s *StepLR) Step(float64) {
	s.lastEpoch++
	if s.stepSize > 0 && s.lastEpoch%s.stepSize == 0 {
		s.lr *= s.gamma
	}
}

func (s *StepLR) Rate() float64 { return s.lr }

// ExponentialLR decays the learning rate by gamma every epoch.
type ExponentialLR struct {
	lr    float64
	gamma float64
}

func NewExponentialLR(initialLR, gamma float64) *ExponentialLR {
	return &ExponentialLR{lr: initialLR, gamma: gamma}
}

func (s *ExponentialLR) Step(float64) { s.lr *= s.gamma }

func (s *ExponentialLR) Rate() float64 { return s.lr }

// ReduceLROnPlateau reduces the learning rate when the loss has stopped improving.
type ReduceLROnPlateau struct {
	lr        float64
	factor    float64
	patience  int
	threshold float64
	cooldown  int
	minLR     float64

	bestLoss        float64
	numBadEpochs    int
	cooldownCounter int
}

func NewReduceLROnPlateau(initialLR, factor float64, patience int, threshold, minLR float64) *ReduceLROnPlateau {
	return &ReduceLROnPlateau{
		lr:        initialLR,
		factor:    factor,
		patience:  patience,
		threshold: threshold,
		minLR:     minLR,
		bestLoss:  math.MaxFloat64,
	}
}

func (s *ReduceLROnPlateau) Step(currentLoss float64) {
	if s.cooldownCounter > 0 {
		s.cooldownCounter--
		return
	}

	if currentLoss < s.bestLoss-s.threshold {
		s.bestLoss = currentLoss
		s.numBadEpochs = 0
	} else {
		s.numBadEpochs++
	}

	if s.numBadEpochs >= s.patience {
		s.lr = math.Max(s.lr*s.factor, s.minLR)
		s.numBadEpochs = 0
		s.cooldownCounter = s.cooldown
	}
}

func (s *ReduceLROnPlateau) Rate() float64 { return s.lr }

// Kind names a schedule in configuration.
type Kind string

const (
	KindConstant    Kind = "constant"
	KindStep        Kind = "step"
	KindExponential Kind = "exponential"
	KindPlateau     Kind = "plateau"
)

// Params holds the tunables of every schedule; each kind reads its own.
type Params struct {
	StepSize  int     `yaml:"step_size"`
	Gamma     float64 `yaml:"gamma"`
	Factor    float64 `yaml:"factor"`
	Patience  int     `yaml:"patience"`
	Threshold float64 `yaml:"threshold"`
	MinLR     float64 `yaml:"min_lr"`
}

// New builds the schedule named by kind starting at lr.
func New(kind Kind, lr float64, p Params) (Scheduler, error) {
	switch Kind(strings.ToLower(string(kind))) {
	case KindConstant, "":
		return Constant{LearningRate: lr}, nil
	case KindStep:
		if p.StepSize < 1 {
			return nil, errors.Errorf("step schedule needs step_size >= 1, got %d", p.StepSize)
		}
		return NewStepLR(lr, p.StepSize, p.Gamma), nil
	case KindExponential:
		return NewExponentialLR(lr, p.Gamma), nil
	case KindPlateau:
		if p.Patience < 1 {
			return nil, errors.Errorf("plateau schedule needs patience >= 1, got %d", p.Patience)
		}
		return NewReduceLROnPlateau(lr, p.Factor, p.Patience, p.Threshold, p.MinLR), nil
	}
	return nil, errors.Errorf("unknown schedule %q", kind)
}
