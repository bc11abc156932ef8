// Package sim implements the deterministic simulation core: wave generation,
// enemy stat scaling, and the world state container. It contains pure logic
// with no external dependencies so every operation is reproducible and
// testable in isolation.
package sim

// RNG is a deterministic 32-bit pseudo-random generator (xorshift with a Weyl
// sequence mixed in). It is a pure function of its own state; all arithmetic
// is uint32 with wraparound, so streams are identical across platforms.
type RNG struct {
	state uint32
	weyl  uint32
}

// weylIncrement is the odd constant added to the Weyl counter each draw.
const weylIncrement uint32 = 0x9E3779B9

// NewRNG creates a generator seeded from the given value. A zero seed is
// remapped so the xorshift state never sticks at zero.
func NewRNG(seed uint32) *RNG {
	if seed == 0 {
		seed = 0x6D2B79F5
	}
	return &RNG{state: seed, weyl: seed}
}

// Next returns the next random uint32.
func (r *RNG) Next() uint32 {
	r.weyl += weylIncrement
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x + r.weyl
}

// Float64 returns a random float64 in [0, 1).
func (r *RNG) Float64() float64 {
	return float64(r.Next()) / float64(1<<32)
}

// Intn returns a random int in [0, n). Returns 0 for n <= 0.
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint32(n))
}

// Range returns a random float64 in [lo, hi).
func (r *RNG) Range(lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// MixSeed combines a run seed, wave index, and tier salt into one 32-bit
// seed. Each wave's generator is seeded freshly from this, so a wave's output
// depends only on its own inputs, never on prior waves. The mix must stay
// bit-for-bit stable: changing it changes every generated wave.
func MixSeed(runSeed, waveIndex, salt uint32) uint32 {
	h := runSeed
	h ^= waveIndex * 0x9E3779B9
	h ^= salt * 0x85EBCA6B
	h ^= h >> 16
	h *= 0x7FEB352D
	h ^= h >> 15
	h *= 0x846CA68B
	h ^= h >> 16
	return h
}
