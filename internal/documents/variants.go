// Copyright 2025 The Gastronomie-Verzeichnis Authors
// Licensed under the EUPL-1.2

package documents

import (
	"math/rand/v2"
	"sync"
)

// VariantSource picks one entry from a pool of text variants.
type VariantSource interface {
	Choose(pool []string) string
}

// RandomSource chooses variants uniformly at random. It is safe for
// concurrent use.
type RandomSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomSource creates a RandomSource. A zero seed draws a random one.
func NewRandomSource(seed uint64) *RandomSource {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &RandomSource{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Choose implements VariantSource.
func (s *RandomSource) Choose(pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	s.mu.Lock()
	i := s.rng.IntN(len(pool))
	s.mu.Unlock()
	return pool[i]
}

// IntN returns a uniform number in [0, n).
func (s *RandomSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

// FixedSource always chooses the variant at its index, wrapping around
// short pools.
type FixedSource int

// Choose implements VariantSource.
func (s FixedSource) Choose(pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	i := int(s) % len(pool)
	if i < 0 {
		i += len(pool)
	}
	return pool[i]
}
