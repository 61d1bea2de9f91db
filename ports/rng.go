package ports

import (
	"math/rand"
)

// RNG provides seeded random number generation so that random
// sampling and scatter synthesis are reproducible in tests.
type RNG interface {
	// Float64 returns a pseudo-random number in [0,1)
	Float64() float64

	// Intn returns a pseudo-random number in [0,n)
	Intn(n int) int
}

// SeededRNG is the default RNG backed by math/rand with a fixed seed
type SeededRNG struct {
	r *rand.Rand
}

// NewSeededRNG creates a deterministic RNG from a seed
func NewSeededRNG(seed int64) *SeededRNG {
	return &SeededRNG{r: rand.New(rand.NewSource(seed))}
}

func (s *SeededRNG) Float64() float64 { return s.r.Float64() }
func (s *SeededRNG) Intn(n int) int   { return s.r.Intn(n) }
