// Package activations provides the activation functions used by neurons.
//
// Every derivative is expressed in terms of the already-activated output a,
// not the raw pre-activation x. Backpropagation only keeps the neuron output
// around, so this is the form the training loop can evaluate directly.
package activations

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Kind selects an activation function.
type Kind int

const (
	KindSigmoid Kind = iota
	KindTanh
	KindReLU
	KindSoftmax
)

var kindNames = map[Kind]string{
	KindSigmoid: "sigmoid",
	KindTanh:    "tanh",
	KindReLU:    "relu",
	KindSoftmax: "softmax",
}

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind converts a name such as "sigmoid" or "Tanh" into a Kind.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "hyperbolictangent", "hyperbolic_tangent":
		return KindTanh, nil
	}
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return KindSigmoid, errors.Errorf("unknown activation %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Activation is an activation function with derivative.
type Activation interface {
	// Activate computes f(x)
	Activate(x float64) float64

	// Derivative computes f'(x) given a = f(x)
	Derivative(a float64) float64
}

// For returns the activation for kind. Unknown kinds fall back to Sigmoid.
func For(kind Kind) Activation {
	switch kind {
	case KindTanh:
		return tanh{}
	case KindReLU:
		return relu{}
	case KindSoftmax:
		return softmax{}
	default:
		return sigmoid{}
	}
}

// Sigmoid computes 1 / (1 + e^-x).
func Sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// SigmoidDerivative computes a * (1 - a) where a = Sigmoid(x).
func SigmoidDerivative(a float64) float64 {
	return a * (1 - a)
}

// Tanh computes the hyperbolic tangent of x.
func Tanh(x float64) float64 {
	return math.Tanh(x)
}

// TanhDerivative computes 1 - a^2 where a = Tanh(x).
func TanhDerivative(a float64) float64 {
	return 1 - a*a
}

// ReLU computes max(0, x).
func ReLU(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0
}

// ReLUDerivative returns 1 if a > 0, else 0.
func ReLUDerivative(a float64) float64 {
	if a > 0 {
		return 1
	}
	return 0
}

// Softmax returns exp(x_i) / sum(exp(x)) as a new slice.
// The input is left untouched.
func Softmax(x []float64) []float64 {
	out := make([]float64, len(x))
	if len(x) == 0 {
		return out
	}

	// Shift by the max for numerical stability; the result is unchanged.
	maxVal := floats.Max(x)
	for i, v := range x {
		out[i] = math.Exp(v - maxVal)
	}
	floats.Scale(1/floats.Sum(out), out)

	return out
}

type sigmoid struct{}

func (sigmoid) Activate(x float64) float64   { return Sigmoid(x) }
func (sigmoid) Derivative(a float64) float64 { return SigmoidDerivative(a) }

type tanh struct{}

func (tanh) Activate(x float64) float64   { return Tanh(x) }
func (tanh) Derivative(a float64) float64 { return TanhDerivative(a) }

type relu struct{}

func (relu) Activate(x float64) float64   { return ReLU(x) }
func (relu) Derivative(a float64) float64 { return ReLUDerivative(a) }

// softmax is applied across a whole layer by the layer itself. On a single
// value it degenerates to 1. The derivative is the diagonal of the Jacobian.
type softmax struct{}

func (softmax) Activate(x float64) float64   { return Softmax([]float64{x})[0] }
func (softmax) Derivative(a float64) float64 { return a * (1 - a) }
