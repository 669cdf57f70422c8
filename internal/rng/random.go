// Package rng builds the seeded generators every stochastic part of a run
// draws from, so a seed reproduces a run exactly.
package rng

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

// New returns a PCG generator whose two state words are derived from seed.
func New(seed int64) *rand.Rand {
	return NewSalted(seed, "")
}

// NewSalted derives an independent stream for the same seed, so the decoder,
// the tick loop and mutation do not consume each other's draws.
func NewSalted(seed int64, salt string) *rand.Rand {
	// Non-cryptographic PRNG is intentional for deterministic simulation behavior.
	// #nosec G404
	return rand.New(rand.NewPCG(seedWord(seed, salt+"a"), seedWord(seed, salt+"b")))
}

func seedWord(seed int64, salt string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%d:%s", seed, salt)))
	return h.Sum64()
}
