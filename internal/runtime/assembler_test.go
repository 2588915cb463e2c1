package runtime

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/aretw0/twotruths/pkg/domain"
	"github.com/aretw0/twotruths/pkg/generator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedLiar renders "<prefix> <n>" truths and draws lies from liePool.
type fixedLiar struct {
	generator.Base
	liePool []string
}

func (f *fixedLiar) Lie(_ domain.ValueMap, rng *rand.Rand) string {
	return f.liePool[rng.IntN(len(f.liePool))]
}

func newFixedLiar(prefix string, n int, liePool ...string) *fixedLiar {
	args := make([]domain.ValueMap, n)
	for i := range args {
		args[i] = domain.ValueMap{"n": domain.Int(int64(i))}
	}
	return &fixedLiar{
		Base:    generator.NewBase(domain.GeneratorConfig{Kind: "fixed", Template: prefix + " {n}", Arguments: args}),
		liePool: liePool,
	}
}

func cubing(t *testing.T, n int) generator.Generator {
	t.Helper()
	args := make([]domain.ValueMap, n)
	for i := range args {
		args[i] = domain.ValueMap{
			"date": domain.String(fmt.Sprintf("day %d", i)),
			"time": domain.Float(10 + float64(i)/7),
		}
	}
	g, err := generator.NewMeasurement(domain.GeneratorConfig{
		Kind:      generator.KindMeasurement,
		Template:  "On {date}, I solved the cube in exactly {time}.",
		Arguments: args,
	})
	require.NoError(t, err)
	return g
}

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func TestGenerateTruthsLies_Uniqueness(t *testing.T) {
	gens := []generator.Generator{cubing(t, 20), cubing(t, 5)}
	for seed := uint64(1); seed <= 50; seed++ {
		c, err := GenerateTruthsLies(gens, 3, 4, 10, true, seeded(seed))
		require.NoError(t, err)
		require.Equal(t, 7, c.Len())
		assert.Len(t, c.Truths(), 3)
		assert.Len(t, c.Lies(), 4)

		seen := make(map[string]bool)
		for _, s := range c.All() {
			assert.False(t, seen[s.Text], "duplicate %q", s.Text)
			seen[s.Text] = true
		}
	}
}

func TestGenerateTruthsLies_TruthsFirstThenLies(t *testing.T) {
	c, err := GenerateTruthsLies([]generator.Generator{cubing(t, 10)}, 2, 2, 10, true, seeded(3))
	require.NoError(t, err)

	var flags []bool
	for _, s := range c.All() {
		flags = append(flags, s.Truth)
	}
	assert.Equal(t, []bool{true, true, false, false}, flags)
}

func TestGenerateTruthsLies_EnsureNotTrue(t *testing.T) {
	// Half the lie pool collides with some truth of the generator.
	g := newFixedLiar("fact", 4, "fact 0", "fact 3", "myth a", "myth b", "myth c")
	for seed := uint64(1); seed <= 30; seed++ {
		c, err := GenerateTruthsLies([]generator.Generator{g}, 1, 3, 200, true, seeded(seed))
		require.NoError(t, err)
		for _, lie := range c.Lies() {
			for i := 0; i < g.Size(); i++ {
				truth, err := generator.TruthAt(g, i)
				require.NoError(t, err)
				assert.NotEqual(t, truth, lie.Text)
			}
		}
	}
}

func TestGenerateTruthsLies_LieMatchingChosenTruthRejectedWithoutEnsure(t *testing.T) {
	// The only possible lie equals the only possible truth.
	g := newFixedLiar("fact", 1, "fact 0")
	_, err := GenerateTruthsLies([]generator.Generator{g}, 1, 1, 5, false, seeded(1))

	var exhausted *domain.DuplicateExhaustionError
	require.True(t, errors.As(err, &exhausted))
	assert.Equal(t, "lie", exhausted.Kind)
	assert.Equal(t, 0, exhausted.Achieved)
	assert.Equal(t, 6, exhausted.Attempts)
}

func TestGenerateTruthsLies_RetryExhaustion(t *testing.T) {
	gens := []generator.Generator{cubing(t, 1)}
	for _, ensure := range []bool{false, true} {
		t.Run(fmt.Sprintf("ensureNotTrue=%v", ensure), func(t *testing.T) {
			_, err := GenerateTruthsLies(gens, 2, 0, 0, ensure, seeded(1))
			require.ErrorIs(t, err, domain.ErrDuplicateExhaustion)

			var exhausted *domain.DuplicateExhaustionError
			require.True(t, errors.As(err, &exhausted))
			assert.Equal(t, "truth", exhausted.Kind)
			assert.Equal(t, 2, exhausted.Requested)
			assert.Equal(t, 1, exhausted.Achieved)
			assert.Equal(t, 1, exhausted.Attempts)
		})
	}
}

func TestGenerateTruthsLies_AllTruthsReachable(t *testing.T) {
	// Exactly as many truths as argument sets, with a generous budget.
	gens := []generator.Generator{cubing(t, 3), cubing(t, 2)}
	c, err := GenerateTruthsLies(gens, 3, 0, 200, false, seeded(11))
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())
}

func TestGenerateTruthsLies_NoArguments(t *testing.T) {
	gens := []generator.Generator{cubing(t, 0)}

	_, err := GenerateTruthsLies(gens, 1, 0, 10, true, seeded(1))
	assert.ErrorIs(t, err, domain.ErrNoArguments)

	c, err := GenerateTruthsLies(gens, 0, 0, 10, true, seeded(1))
	require.NoError(t, err)
	assert.Zero(t, c.Len())
}

func TestGenerateTruthsLies_ZeroWeightGeneratorNeverUsed(t *testing.T) {
	empty := newFixedLiar("never", 0, "never lie")
	full := newFixedLiar("fact", 50, "myth 1", "myth 2", "myth 3", "myth 4", "myth 5")

	c, err := GenerateTruthsLies([]generator.Generator{empty, full}, 10, 3, 100, true, seeded(5))
	require.NoError(t, err)
	for _, s := range c.All() {
		assert.NotContains(t, s.Text, "never")
	}
}

func TestGenerateTruthsLies_SeedIsReproducible(t *testing.T) {
	gens := []generator.Generator{cubing(t, 30)}
	a, err := GenerateTruthsLies(gens, 4, 4, 10, true, seeded(99))
	require.NoError(t, err)
	b, err := GenerateTruthsLies(gens, 4, 4, 10, true, seeded(99))
	require.NoError(t, err)
	assert.Equal(t, a.Statements(), b.Statements())
}

func TestGenerateTruthsLies_NegativeRetriesTreatedAsZero(t *testing.T) {
	_, err := GenerateTruthsLies([]generator.Generator{cubing(t, 1)}, 2, 0, -3, false, seeded(1))
	var exhausted *domain.DuplicateExhaustionError
	require.True(t, errors.As(err, &exhausted))
	assert.Equal(t, 1, exhausted.Attempts)
}

func TestGenerateTruthsLies_RejectionObserver(t *testing.T) {
	g := newFixedLiar("fact", 2, "fact 0", "fact 1", "myth")

	var rejections []Rejection
	c, err := GenerateTruthsLies([]generator.Generator{g}, 2, 1, 100, true, seeded(8),
		WithRejectionObserver(func(r Rejection) { rejections = append(rejections, r) }))
	require.NoError(t, err)
	assert.Equal(t, []domain.Statement{{Text: "myth"}}, c.Lies())

	for _, r := range rejections {
		if r.Truth {
			assert.Equal(t, ReasonDuplicate, r.Reason)
		} else {
			assert.Equal(t, ReasonKnownTruth, r.Reason)
			assert.Contains(t, []string{"fact 0", "fact 1"}, r.Text)
		}
	}
}
