// Package initializer provides the random sources used to seed neuron
// weights and biases.
package initializer

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// Jitter range added to every initial value: [MinJitter, MaxJitter).
const (
	MinJitter = -2
	MaxJitter = 2
)

// Initializer produces pseudo-random numbers for weight initialization.
// Implementations are safe for concurrent use.
type Initializer interface {
	// Float64 returns a value in [0, 1).
	Float64() float64

	// IntRange returns an integer in [lo, hi). It panics if hi <= lo.
	IntRange(lo, hi int) int
}

// Value returns a base fraction in [0, 1) plus an integer offset in
// [MinJitter, MaxJitter), giving a value in [-2, 2).
func Value(init Initializer) float64 {
	base := init.Float64()
	return base + float64(init.IntRange(MinJitter, MaxJitter))
}

// Kind names an initializer strategy.
type Kind int

const (
	KindMersenneTwister Kind = iota
	KindRandom
	KindCryptographic
)

// String returns the config name of the kind.
func (k Kind) String() string {
	switch k {
	case KindMersenneTwister:
		return "mersenne_twister"
	case KindRandom:
		return "random"
	case KindCryptographic:
		return "cryptographic"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "mersenne_twister", "mersennetwister", "mt19937", "":
		*k = KindMersenneTwister
	case "random", "uniform":
		*k = KindRandom
	case "cryptographic", "crypto":
		*k = KindCryptographic
	default:
		return errors.Errorf("unknown initializer %q", text)
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// New builds the strategy named by kind. The seed is ignored by the
// cryptographic source. A zero seed seeds from the clock.
func New(kind Kind, seed uint64) (Initializer, error) {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	switch kind {
	case KindMersenneTwister:
		return NewMersenneTwister(seed), nil
	case KindRandom:
		return NewUniform(int64(seed)), nil
	case KindCryptographic:
		return NewCrypto(), nil
	}
	return nil, errors.Errorf("unknown initializer kind %d", int(kind))
}

var (
	defaultOnce sync.Once
	defaultInit Initializer
)

// Default returns the process-wide Mersenne Twister, seeded from the clock
// on first use.
func Default() Initializer {
	defaultOnce.Do(func() {
		defaultInit = NewMersenneTwister(uint64(time.Now().UnixNano()))
	})
	return defaultInit
}

func checkRange(lo, hi int) {
	if hi <= lo {
		panic(fmt.Sprintf("initializer: invalid range [%d, %d)", lo, hi))
	}
}
