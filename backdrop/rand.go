package backdrop

import (
	"math/rand"
	"time"
)

// Rand is the narrow random source scenes draw from. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// NewRand returns a seeded generator; seed 0 picks a time-based seed.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// between returns a value in [lo, hi)
func between(rng Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
