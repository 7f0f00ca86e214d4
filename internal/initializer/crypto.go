package initializer

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
)

// Crypto draws from the operating system's cryptographically strong source.
// It cannot be seeded, so results are never reproducible.
type Crypto struct {
	mu  sync.Mutex
	buf [8]byte
}

// NewCrypto returns a Crypto source.
func NewCrypto() *Crypto {
	return &Crypto{}
}

func (c *Crypto) uint64() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := rand.Read(c.buf[:]); err != nil {
		panic("initializer: crypto/rand failed: " + err.Error())
	}
	return binary.LittleEndian.Uint64(c.buf[:])
}

// Float64 returns a value in [0, 1) built from 53 random bits.
func (c *Crypto) Float64() float64 {
	return float64(c.uint64()>>11) / (1 << 53)
}

// IntRange returns an integer in [lo, hi).
func (c *Crypto) IntRange(lo, hi int) int {
	checkRange(lo, hi)
	return lo + int(c.uint64()%uint64(hi-lo))
}
