// Package activations provides benchmarks for activation functions.
package activations

import (
	"math/rand"
	"testing"
)

// fillRandom fills a slice with random values.
func fillRandom(slice []float64) {
	for i := range slice {
		slice[i] = rand.Float64()*4 - 2
	}
}

// BenchmarkSigmoid benchmarks the Sigmoid activation and its derivative.
func BenchmarkSigmoid(b *testing.B) {
	inputs := make([]float64, 1000)
	fillRandom(inputs)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, x := range inputs {
			_ = SigmoidDerivative(Sigmoid(x))
		}
	}
}

// BenchmarkReLU benchmarks the ReLU activation and its derivative.
func BenchmarkReLU(b *testing.B) {
	inputs := make([]float64, 1000)
	fillRandom(inputs)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, x := range inputs {
			_ = ReLUDerivative(ReLU(x))
		}
	}
}

// BenchmarkSoftmax benchmarks softmax over a 64-wide vector.
func BenchmarkSoftmax(b *testing.B) {
	inputs := make([]float64, 64)
	fillRandom(inputs)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Softmax(inputs)
	}
}
