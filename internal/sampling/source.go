// Package sampling provides the uniform random source used by the simulation
// and the normal-distribution sampler built on top of it.
package sampling

import (
	"math/rand"
	"time"
)

// Source yields uniform samples in [0, 1).
// *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// NewSource returns a seeded generator. A zero seed seeds from the clock.
func NewSource(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Sequence replays a fixed list of uniforms, cycling when exhausted.
// It is meant for tests that need exact control over every draw.
type Sequence struct {
	values []float64
	next   int
}

// NewSequence creates a Sequence. Values outside [0, 1) are clamped into range.
func NewSequence(values ...float64) *Sequence {
	vs := make([]float64, len(values))
	for i, v := range values {
		switch {
		case v < 0:
			v = 0
		case v >= 1:
			v = 0.9999999999
		}
		vs[i] = v
	}
	return &Sequence{values: vs}
}

// Float64 returns the next value in the sequence.
// An empty Sequence always returns 0.
func (s *Sequence) Float64() float64 {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next]
	s.next = (s.next + 1) % len(s.values)
	return v
}

// Draws reports how many values have been consumed modulo the sequence length.
func (s *Sequence) Draws() int {
	return s.next
}

// Shuffle performs a Fisher-Yates shuffle of n elements driven by src.
func Shuffle(src Source, n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := int(src.Float64() * float64(i+1))
		if j > i {
			j = i
		}
		swap(i, j)
	}
}
