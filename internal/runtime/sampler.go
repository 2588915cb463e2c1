package runtime

import (
	"math/rand/v2"
	"sort"
)

// Sampler picks indices with probability proportional to their weight.
// Non-positive weights are never picked.
type Sampler struct {
	cumulative []int
	total      int
}

// NewSampler builds a sampler over weights.
func NewSampler(weights []int) *Sampler {
	s := &Sampler{cumulative: make([]int, len(weights))}
	for i, w := range weights {
		if w > 0 {
			s.total += w
		}
		s.cumulative[i] = s.total
	}
	return s
}

// Total is the sum of the positive weights.
func (s *Sampler) Total() int {
	return s.total
}

// Pick returns a weighted random index. Total must be positive.
func (s *Sampler) Pick(rng *rand.Rand) int {
	r := rng.IntN(s.total)
	// smallest i with cumulative[i] > r
	return sort.SearchInts(s.cumulative, r+1)
}

// sampleIndex draws an argument index uniformly from [0, size).
// The draw is floor(size * u) with u in [0, 1); the guard keeps it below size
// should rounding ever produce size itself.
func sampleIndex(size int, rng *rand.Rand) int {
	i := int(float64(size) * rng.Float64())
	if i >= size {
		i = size - 1
	}
	return i
}
