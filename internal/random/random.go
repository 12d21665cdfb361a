// Package random provides the injectable randomness used by subnet
// distribution, simulated latency and IPv4 identification values.
package random

import (
	"math/rand/v2"
)

// Source is the capability every randomized step draws from.
type Source interface {
	// IntN returns a uniform int in [0, n). It panics if n <= 0.
	IntN(n int) int
	// Float64 returns a uniform float64 in [0.0, 1.0).
	Float64() float64
	// Uint32 returns a uniform 32-bit value.
	Uint32() uint32
}

// New returns a PCG-backed source for an explicit seed. Equal seeds produce
// equal sequences regardless of any other source in the process.
func New(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Shuffle permutes s in place with a Fisher-Yates pass driven by src.
func Shuffle[T any](src Source, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

// Fixed replays canned values. Each sequence cycles once exhausted; an empty
// sequence yields zero values. IntN results are reduced modulo n.
type Fixed struct {
	Ints   []int
	Floats []float64
	Words  []uint32

	ii, fi, wi int
}

func (f *Fixed) IntN(n int) int {
	if n <= 0 {
		panic("random: invalid argument to IntN")
	}
	if len(f.Ints) == 0 {
		return 0
	}
	v := f.Ints[f.ii%len(f.Ints)]
	f.ii++
	if v < 0 {
		v = -v
	}
	return v % n
}

func (f *Fixed) Float64() float64 {
	if len(f.Floats) == 0 {
		return 0
	}
	v := f.Floats[f.fi%len(f.Floats)]
	f.fi++
	return v
}

func (f *Fixed) Uint32() uint32 {
	if len(f.Words) == 0 {
		return 0
	}
	v := f.Words[f.wi%len(f.Words)]
	f.wi++
	return v
}
