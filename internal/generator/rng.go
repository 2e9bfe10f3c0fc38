package generator

import "math"

// SimpleRNG is a deterministic pseudo-random number generator (xorshift64).
// Its output depends only on the seed, never on the platform.
type SimpleRNG struct {
	state uint64
}

// NewRNG creates a new RNG with the given seed.
func NewRNG(seed uint64) *SimpleRNG {
	if seed == 0 {
		seed = 88172645463325252 // Default seed
	}
	return &SimpleRNG{state: seed}
}

// Next returns the next random uint64.
func (r *SimpleRNG) Next() uint64 {
	r.state ^= r.state << 13
	r.state ^= r.state >> 7
	r.state ^= r.state << 17
	return r.state
}

// Float returns a random float64 in [0, 1).
func (r *SimpleRNG) Float() float64 {
	return float64(r.Next()>>11) / float64(1<<53)
}

// Intn returns a random int in [0, n).
func (r *SimpleRNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Range returns a random float64 in [lo, hi). It returns lo when hi <= lo.
func (r *SimpleRNG) Range(lo, hi float64) float64 {
	f := r.Float()
	if hi <= lo {
		return lo
	}
	return lo + f*(hi-lo)
}

// Chance reports true with probability p. It always draws, so the stream
// stays aligned regardless of p.
func (r *SimpleRNG) Chance(p float64) bool {
	return r.Float() < p
}

// splitmix64 scrambles a 64-bit value. Used to turn structured inputs into
// well-spread seeds.
func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	x = (x ^ (x >> 30)) * 0xBF58476D1CE4E5B9
	x = (x ^ (x >> 27)) * 0x94D049BB133111EB
	return x ^ (x >> 31)
}

// mixSeed combines a level seed with its variant into an RNG seed.
func mixSeed(seed int64, variant int) uint64 {
	return splitmix64(uint64(seed) ^ splitmix64(uint64(int64(variant))))
}

// DeriveSeed returns a reproducible, shareable seed for a world, level and
// variant. The result is always non-negative.
func DeriveSeed(world, level, variant int) int64 {
	x := splitmix64(uint64(int64(world)))
	x = splitmix64(x ^ uint64(int64(level)))
	x = splitmix64(x ^ uint64(int64(variant)))
	return int64(x & math.MaxInt64)
}
