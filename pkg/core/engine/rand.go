package engine

import "math/rand"

// Rand is the random source the selector and optimizer draw from. It is an
// explicit dependency so trials are reproducible under a seeded source.
type Rand interface {
	// Intn returns a uniform value in [0, n)
	Intn(n int) int
	// Int63 returns a non-negative 63-bit value, used to derive
	// independent per-trial sources
	Int63() int64
}

// NewRand returns a math/rand backed source with the given seed
func NewRand(seed int64) Rand {
	return rand.New(rand.NewSource(seed))
}
