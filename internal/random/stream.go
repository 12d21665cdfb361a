package random

import (
	"github.com/iti/rngstream"
)

// Stream is a Source backed by an MRG32k3a stream. Every call to NewStream
// starts a new stream, statistically independent of all earlier ones, so
// each component can own its own generator. Within one process the streams
// are handed out in a fixed order: creating the same streams in the same
// order reproduces the same draws.
type Stream struct {
	rng *rngstream.RngStream
}

// NewStream creates the next stream and labels it with name. Stream creation
// advances package-wide state and must not race with itself.
func NewStream(name string) *Stream {
	return &Stream{rng: rngstream.New(name)}
}

func (s *Stream) IntN(n int) int {
	if n <= 0 {
		panic("random: invalid argument to IntN")
	}
	v := int(s.rng.RandU01() * float64(n))
	if v >= n {
		v = n - 1
	}
	return v
}

// Float64 returns a uniform value in (0, 1).
func (s *Stream) Float64() float64 {
	return s.rng.RandU01()
}

func (s *Stream) Uint32() uint32 {
	return uint32(s.rng.RandU01() * (1 << 32))
}
