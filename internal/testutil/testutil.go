// Package testutil provides testing utilities for tieredvec.
//
// This package is intended for use in tests and benchmarks only. It provides
// a deterministic seeded random source and unique heap-allocated string
// payloads for release-discipline tests.
package testutil

import (
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// RNG struct encapsulates the random number generator and seed.
type RNG struct {
	rand *rand.Rand
	seed int64
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// IntN returns a deterministic pseudo-random int in [0, n).
func (r *RNG) IntN(n int) int {
	return r.rand.Intn(n)
}

// ULID returns a fresh unique string. Every call allocates, which is exactly
// what leak and release tests need from their payloads.
func (r *RNG) ULID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), r.rand).String()
}
