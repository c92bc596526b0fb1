package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Int63 returns a non-negative pseudo-random int64, suitable as a new seed.
func (r *RNG) Int63() int64 {
	return r.r.Int64()
}

// Float64 returns a pseudo-random value in [0, 1).
func (r *RNG) Float64() float64 {
	return r.r.Float64()
}

// IntN returns a pseudo-random int in [0, n). It returns 0 when n <= 0.
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }

const golden = 0x9e3779b97f4a7c15

func mix64(z uint64) uint64 {
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Hash folds seed and keys into a well-mixed 64-bit value. Equal inputs always
// produce equal outputs.
func Hash(seed int64, keys ...uint64) uint64 {
	h := mix64(uint64(seed) + golden)
	for _, k := range keys {
		h = mix64(h ^ (k + golden))
	}
	return h
}

// UnitFloat maps a hash to [0, 1) using its top 53 bits.
func UnitFloat(h uint64) float64 {
	return float64(h>>11) / (1 << 53)
}

// Dice is a small stateless-keyed random stream. A Dice built from the same
// keys yields the same sequence, which keeps per-cell decisions independent of
// visit order.
type Dice struct {
	state uint64
}

// NewDice seeds a stream for one cell of one generation.
func NewDice(seed int64, generation uint64, x, y int) Dice {
	return Dice{state: Hash(seed, generation, uint64(x), uint64(y))}
}

// Uint64 advances the stream (splitmix64).
func (d *Dice) Uint64() uint64 {
	d.state += golden
	return mix64(d.state)
}

// Float64 returns a value in [0, 1).
func (d *Dice) Float64() float64 {
	return UnitFloat(d.Uint64())
}

// IntN returns a value in [0, n). It returns 0 when n <= 0.
func (d *Dice) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return int(d.Uint64() % uint64(n))
}
