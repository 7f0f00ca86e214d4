package net

import (
	"github.com/pkg/errors"

	"github.com/FlavioCFOliveira/danne/internal/layer"
)

// Errors returned by network construction, training and inference. They are
// wrapped with context; test for them with errors.Is.
var (
	// ErrNotEnoughTrainingData is returned when the training set has too few
	// rows or columns.
	ErrNotEnoughTrainingData = errors.New("not enough training data")

	// ErrNotEnoughHiddenNeurons is returned when a hidden layer is requested
	// with fewer than MinHiddenNeurons neurons.
	ErrNotEnoughHiddenNeurons = errors.New("not enough hidden neurons")

	// ErrInvalidOutputShape is returned when the training targets disagree
	// with the training inputs or have no columns.
	ErrInvalidOutputShape = errors.New("invalid output shape")

	// ErrNumericParse is returned when a raw value cannot be read as a number.
	ErrNumericParse = errors.New("cannot parse value as float")

	// ErrInvalidNetworkState is returned when an operation is called before
	// the construction steps it depends on.
	ErrInvalidNetworkState = errors.New("invalid network state")

	// ErrInvalidInputShape is returned when an input vector or input row has
	// the wrong width.
	ErrInvalidInputShape = errors.New("invalid input shape")

	// ErrInvalidConfiguration is returned for bad layer shapes, snapshots
	// and hyperparameters.
	ErrInvalidConfiguration = layer.ErrInvalidConfiguration
)
