package crypto

import (
	crand "crypto/rand"
	"fmt"
	"math/rand/v2"
)

// NewRand returns a generator seeded from the operating system's secure
// source. Callers that generate concurrently must each hold their own.
func NewRand() (*rand.Rand, error) {
	var seed [32]byte
	if _, err := crand.Read(seed[:]); err != nil {
		return nil, fmt.Errorf("seeding random source: %w", err)
	}
	return rand.New(rand.NewChaCha8(seed)), nil
}

