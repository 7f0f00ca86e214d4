// Package activations provides unit tests for activation functions.
package activations

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"
)

// TestSigmoid tests Sigmoid activation.
func TestSigmoid(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{math.Inf(-1), 0.0},
		{-2.0, 1 / (1 + math.Exp(2))},
		{0.0, 0.5},
		{2.0, 1 / (1 + math.Exp(-2))},
		{math.Inf(1), 1.0},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.expected, Sigmoid(tt.input), 1e-12, "Sigmoid(%v)", tt.input)
	}
}

// TestSigmoidDerivative tests the derivative taken from the activated output.
func TestSigmoidDerivative(t *testing.T) {
	// sigmoid(0) = 0.5, derivative = 0.25
	assert.InDelta(t, 0.25, SigmoidDerivative(Sigmoid(0)), 1e-12)
	assert.InDelta(t, 0.0, SigmoidDerivative(1), 1e-12)
	assert.InDelta(t, 0.0, SigmoidDerivative(0), 1e-12)
	assert.Less(t, SigmoidDerivative(Sigmoid(10)), 1e-4)
}

// TestTanh tests Tanh activation and derivative.
func TestTanh(t *testing.T) {
	for _, x := range []float64{-2, -1, 0, 1, 2} {
		assert.InDelta(t, math.Tanh(x), Tanh(x), 1e-12)
	}
	assert.InDelta(t, 1.0, TanhDerivative(Tanh(0)), 1e-12)
	assert.InDelta(t, 1-math.Tanh(1)*math.Tanh(1), TanhDerivative(Tanh(1)), 1e-12)
}

// TestReLU tests ReLU activation and derivative.
func TestReLU(t *testing.T) {
	tests := []struct {
		input      float64
		expected   float64
		derivative float64
	}{
		{-1.0, 0.0, 0.0},
		{0.0, 0.0, 0.0},
		{1.0, 1.0, 1.0},
		{2.5, 2.5, 1.0},
		{-0.1, 0.0, 0.0},
	}

	for _, tt := range tests {
		a := ReLU(tt.input)
		assert.Equal(t, tt.expected, a, "ReLU(%v)", tt.input)
		assert.Equal(t, tt.derivative, ReLUDerivative(a), "ReLU'(%v)", tt.input)
	}
}

// TestDerivativeFromOutput checks derivative(activation(x)) against a
// central finite difference of the activation at x.
func TestDerivativeFromOutput(t *testing.T) {
	settings := &fd.Settings{Formula: fd.Central}

	for _, kind := range []Kind{KindSigmoid, KindTanh, KindReLU} {
		act := For(kind)
		for _, x := range []float64{-2, -0.5, 0.3, 1.7} {
			want := fd.Derivative(act.Activate, x, settings)
			got := act.Derivative(act.Activate(x))
			assert.InDelta(t, want, got, 1e-6, "%s'(%v)", kind, x)
		}
	}
}

// TestSoftmax tests that softmax yields a probability vector.
func TestSoftmax(t *testing.T) {
	inputs := [][]float64{
		{1, 2, 3},
		{0, 0, 0, 0},
		{-5, 10},
		{1000, 1001, 999},
		{42},
	}

	for _, in := range inputs {
		out := Softmax(in)
		require.Len(t, out, len(in))

		sum := 0.0
		for _, p := range out {
			assert.GreaterOrEqual(t, p, 0.0)
			sum += p
		}
		assert.InDelta(t, 1.0, sum, 1e-9, "softmax(%v)", in)
	}

	out := Softmax([]float64{1, 2, 3})
	assert.Less(t, out[0], out[1])
	assert.Less(t, out[1], out[2])
	assert.Empty(t, Softmax(nil))
}

// TestSoftmaxDoesNotMutateInput tests that the caller's slice is untouched.
func TestSoftmaxDoesNotMutateInput(t *testing.T) {
	in := []float64{0.5, -1, 3}
	orig := append([]float64(nil), in...)

	_ = Softmax(in)

	assert.Equal(t, orig, in)
}

// TestSoftmaxDerivative tests the diagonal softmax derivative.
func TestSoftmaxDerivative(t *testing.T) {
	act := For(KindSoftmax)
	assert.InDelta(t, 1.0, act.Activate(3.2), 1e-12)
	assert.InDelta(t, 0.21, act.Derivative(0.3), 1e-12)
}

// TestNonFinitePropagates tests that NaN is not trapped.
func TestNonFinitePropagates(t *testing.T) {
	assert.True(t, math.IsNaN(Sigmoid(math.NaN())))
	assert.True(t, math.IsNaN(Tanh(math.NaN())))
}

// TestParseKind tests kind names round-trip through text.
func TestParseKind(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
	}{
		{"sigmoid", KindSigmoid},
		{"Tanh", KindTanh},
		{"HyperbolicTangent", KindTanh},
		{"RELU", KindReLU},
		{" softmax ", KindSoftmax},
	}

	for _, tt := range tests {
		k, err := ParseKind(tt.name)
		require.NoError(t, err)
		assert.Equal(t, tt.kind, k)
	}

	_, err := ParseKind("swish")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"swish"`)
	_, hasStack := err.(interface{ StackTrace() errors.StackTrace })
	assert.True(t, hasStack, "parse errors carry a stack trace")

	var k Kind
	require.NoError(t, k.UnmarshalText([]byte("relu")))
	assert.Equal(t, KindReLU, k)
	text, err := KindTanh.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "tanh", string(text))
	assert.Equal(t, "Kind(9)", Kind(9).String())
}

// TestForUnknownKind tests the sigmoid fallback.
func TestForUnknownKind(t *testing.T) {
	assert.InDelta(t, 0.5, For(Kind(99)).Activate(0), 1e-12)
}
