// Package sntoken builds and parses startup-notification activation tokens.
package sntoken

import "sync/atomic"

// InitialSeed is the fixed non-zero value every fresh Seed starts from.
const InitialSeed uint32 = 0xDEADBEEF

// Seed is a xorshift32 timestamp source.
//
// The step is applied as a single compare-and-swap, so concurrent callers
// never observe a half-advanced value and never share a timestamp.
type Seed struct {
	v atomic.Uint32
}

// NewSeed creates a Seed starting at the given value.
// A zero initial value is pinned to InitialSeed; xorshift32 maps zero to
// zero and would otherwise never advance.
func NewSeed(initial uint32) *Seed {
	s := &Seed{}
	if initial == 0 {
		initial = InitialSeed
	}
	s.v.Store(initial)
	return s
}

// Next advances the seed and returns the pre-advance value.
func (s *Seed) Next() uint32 {
	for {
		old := s.v.Load()
		if s.v.CompareAndSwap(old, xorshift32(old)) {
			return old
		}
	}
}

// xorshift32 is the generator from the "Xorshift RNGs" paper by
// George Marsaglia.
func xorshift32(x uint32) uint32 {
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	return x
}

// processSeed backs NextTimestamp for all callers in the process.
var processSeed = NewSeed(InitialSeed)

// NextTimestamp advances the process-wide seed and returns the
// pre-advance value.
func NextTimestamp() uint32 {
	return processSeed.Next()
}
