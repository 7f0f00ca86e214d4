package initializer

import (
	"sync"

	"gonum.org/v1/gonum/mathext/prng"
)

// MersenneTwister is the favored strategy: a 32-bit MT19937 generator.
type MersenneTwister struct {
	mu  sync.Mutex
	src *prng.MT19937
}

// NewMersenneTwister returns an MT19937 source seeded with seed.
func NewMersenneTwister(seed uint64) *MersenneTwister {
	src := prng.NewMT19937()
	src.Seed(seed)
	return &MersenneTwister{src: src}
}

// Float64 returns a value in [0, 1) built from the top 53 bits of a draw.
func (m *MersenneTwister) Float64() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return float64(m.src.Uint64()>>11) / (1 << 53)
}

// IntRange returns an integer in [lo, hi).
func (m *MersenneTwister) IntRange(lo, hi int) int {
	checkRange(lo, hi)
	m.mu.Lock()
	defer m.mu.Unlock()
	return lo + int(m.src.Uint64()%uint64(hi-lo))
}
