package generator

import (
	"math/rand/v2"
	"strconv"

	"github.com/aretw0/twotruths/pkg/domain"
)

const (
	// KindCount is the registered name of CountGenerator.
	KindCount = "CountStatementGenerator"

	// CountField is the argument holding the counted quantity.
	CountField = "count"

	maxCountOffset = 3
)

// CountGenerator renders statements about whole quantities ("I own {count} cubes").
// Lies move the count by a non-zero offset of at most three, never below zero
// when the true count is non-negative.
type CountGenerator struct {
	Base
}

// NewCount creates a CountGenerator.
func NewCount(config domain.GeneratorConfig) (Generator, error) {
	return &CountGenerator{Base: NewBase(config)}, nil
}

func (g *CountGenerator) Truth(args domain.ValueMap) string {
	n, _ := args[CountField].Int()
	return g.Base.Truth(withField(args, CountField, strconv.FormatInt(n, 10)))
}

func (g *CountGenerator) Lie(args domain.ValueMap, rng *rand.Rand) string {
	n, _ := args[CountField].Int()
	offset := int64(rng.IntN(maxCountOffset) + 1)
	if rng.IntN(2) == 0 {
		offset = -offset
	}
	lie := n + offset
	if n >= 0 && lie < 0 {
		lie = n - offset
	}
	return g.Base.Truth(withField(args, CountField, strconv.FormatInt(lie, 10)))
}
