package runtime

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSampler_WeightProportionality(t *testing.T) {
	weights := []int{1, 0, 3, 6}
	s := NewSampler(weights)
	assert.Equal(t, 10, s.Total())

	rng := rand.New(rand.NewPCG(42, 1))
	const trials = 100000
	counts := make([]int, len(weights))
	for i := 0; i < trials; i++ {
		counts[s.Pick(rng)]++
	}

	assert.Zero(t, counts[1], "zero-weight index must never be picked")
	for i, w := range weights {
		want := float64(w) / 10
		got := float64(counts[i]) / trials
		// ~5 standard deviations for the largest variance case (p=0.5).
		assert.InDelta(t, want, got, 0.01, "index %d", i)
	}
}

func TestSampler_NegativeWeightsIgnored(t *testing.T) {
	s := NewSampler([]int{-5, 2})
	assert.Equal(t, 2, s.Total())
	rng := rand.New(rand.NewPCG(1, 1))
	for i := 0; i < 100; i++ {
		assert.Equal(t, 1, s.Pick(rng))
	}
}

func TestSampleIndex_Bounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 9))
	for size := 1; size <= 5; size++ {
		seen := make(map[int]bool)
		for i := 0; i < 1000; i++ {
			idx := sampleIndex(size, rng)
			assert.GreaterOrEqual(t, idx, 0)
			assert.Less(t, idx, size)
			seen[idx] = true
		}
		assert.Len(t, seen, size)
	}
}
