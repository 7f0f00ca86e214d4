// Package loss provides unit tests for loss functions.
package loss

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestMSEForward tests MSE forward pass.
func TestMSEForward(t *testing.T) {
	tests := []struct {
		name     string
		yPred    []float64
		yTrue    []float64
		expected float64
	}{
		{"Perfect prediction", []float64{1.0, 2.0, 3.0}, []float64{1.0, 2.0, 3.0}, 0.0},
		{"Single error", []float64{1.0, 2.0}, []float64{1.5, 2.0}, 0.125},
		{"Multiple errors", []float64{1.0, 2.0, 3.0}, []float64{0.0, 1.0, 2.0}, 1.0},
		{"Large errors", []float64{10.0}, []float64{0.0}, 100.0},
		{"Empty", nil, nil, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, MSE{}.Forward(tt.yPred, tt.yTrue), 1e-9)
		})
	}
}

// TestSumAbsForward tests the summed absolute error.
func TestSumAbsForward(t *testing.T) {
	assert.InDelta(t, 0.0, SumAbs{}.Forward([]float64{1, 2}, []float64{1, 2}), 1e-12)
	assert.InDelta(t, 0.6, SumAbs{}.Forward([]float64{0.1, 0.8, 0.9}, []float64{0, 1, 1.2}), 1e-12)
}

// TestLengthMismatch tests that mismatched slices panic.
func TestLengthMismatch(t *testing.T) {
	assert.Panics(t, func() { MSE{}.Forward([]float64{1.0, 2.0}, []float64{1.0}) })
	assert.Panics(t, func() { SumAbs{}.Forward([]float64{1.0}, nil) })
}

// TestName tests report names.
func TestName(t *testing.T) {
	assert.Equal(t, "mse", Name(MSE{}))
	assert.Equal(t, "sum_abs", Name(&SumAbs{}))
}

func TestParse(t *testing.T) {
	l, err := Parse("")
	assert.NoError(t, err)
	assert.Equal(t, MSE{}, l)

	l, err = Parse("Sum_Abs")
	assert.NoError(t, err)
	assert.Equal(t, "sum_abs", Name(l))

	_, err = Parse("hinge")
	assert.Error(t, err)
}
