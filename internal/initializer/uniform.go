package initializer

import (
	"math/rand"
	"sync"
)

// Uniform is a general-purpose seeded PRNG backed by math/rand.
type Uniform struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewUniform returns a Uniform source seeded with seed.
func NewUniform(seed int64) *Uniform {
	return &Uniform{rng: rand.New(rand.NewSource(seed))}
}

// Float64 returns a value in [0, 1).
func (u *Uniform) Float64() float64 {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.rng.Float64()
}

// IntRange returns an integer in [lo, hi).
func (u *Uniform) IntRange(lo, hi int) int {
	checkRange(lo, hi)
	u.mu.Lock()
	defer u.mu.Unlock()
	return lo + u.rng.Intn(hi-lo)
}
