// Package dataset generates deterministic random data series for chart specs.
//
// Every plot module draws its data from a Source seeded with the placeholder's
// seed, so regenerating a gallery with the same configuration reproduces the
// exact same charts byte-for-byte.
package dataset

import (
	"math/rand"
	"time"
)

// Source produces reproducible pseudo-random draws for a single chart.
// It is not safe for concurrent use; each chart build owns its own Source.
type Source struct {
	rng *rand.Rand
}

// New creates a Source seeded with the given seed.
func New(seed int64) *Source {
	return &Source{rng: rand.New(rand.NewSource(seed))}
}

// Normals returns n draws from the standard normal distribution.
func (s *Source) Normals(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = s.rng.NormFloat64()
	}
	return out
}

// Floats returns n uniform draws in [0, 1).
func (s *Source) Floats(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = s.rng.Float64()
	}
	return out
}

// IntsBetween returns n uniform draws in [lo, hi).
// It panics if hi <= lo, matching rand.Intn semantics.
func (s *Source) IntsBetween(n, lo, hi int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = lo + s.rng.Intn(hi-lo)
	}
	return out
}

// Choices returns n draws from the given options, uniformly with replacement.
func (s *Source) Choices(n int, options []string) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = options[s.rng.Intn(len(options))]
	}
	return out
}

// Days returns n consecutive daily timestamps starting at start.
func Days(start time.Time, n int) []time.Time {
	out := make([]time.Time, n)
	for i := range out {
		out[i] = start.AddDate(0, 0, i)
	}
	return out
}

// Trend returns n values linearly interpolated from lo to hi.
// For n == 1 it returns [lo].
func Trend(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + step*float64(i)
	}
	return out
}
