// Package loss provides the error measures reported while training.
// Backpropagation in this engine computes its own error signals, so a loss
// here is a diagnostic only and has no backward pass.
package loss

import (
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Loss measures the distance between a prediction and its target.
type Loss interface {
	// Forward computes the loss between predicted and true values.
	Forward(yPred, yTrue []float64) float64
}

// MSE (Mean Squared Error) loss.
type MSE struct{}

// Forward computes mean squared error: (1/n) * sum((y_pred - y_true)^2)
func (m MSE) Forward(yPred, yTrue []float64) float64 {
	n := len(yPred)
	if n != len(yTrue) {
		panic("MSE: prediction and target must have same length")
	}
	if n == 0 {
		return 0
	}

	d := floats.Distance(yPred, yTrue, 2)
	return d * d / float64(n)
}

// SumAbs is the summed absolute error: sum(|y_pred - y_true|).
type SumAbs struct{}

// Forward computes sum(|y_pred - y_true|).
func (s SumAbs) Forward(yPred, yTrue []float64) float64 {
	if len(yPred) != len(yTrue) {
		panic("SumAbs: prediction and target must have same length")
	}
	return floats.Distance(yPred, yTrue, 1)
}

// Name returns a short identifier for l, used in reports.
func Name(l Loss) string {
	switch l.(type) {
	case MSE, *MSE:
		return "mse"
	case SumAbs, *SumAbs:
		return "sum_abs"
	default:
		return "custom"
	}
}

// Parse returns the loss named by s, as produced by Name. An empty name is MSE.
func Parse(s string) (Loss, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mse", "":
		return MSE{}, nil
	case "sum_abs", "sumabs":
		return SumAbs{}, nil
	}
	return nil, errors.Errorf("unknown loss %q", s)
}
