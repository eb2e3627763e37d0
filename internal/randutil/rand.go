// Package randutil builds the seeded generators used to deal demonstration
// hands. Nothing in the EV search draws random numbers.
package randutil

import (
	rand "math/rand/v2"

	"github.com/coder/quartz"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a PCG generator for seed. The two PCG words are splitmix64
// outputs of seed and seed+step, so nearby seeds give unrelated streams.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Seed returns explicit when set, otherwise a seed taken from the clock.
func Seed(explicit *int64, clock quartz.Clock) int64 {
	if explicit != nil {
		return *explicit
	}
	return clock.Now().UnixNano()
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
