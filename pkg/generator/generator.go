package generator

import (
	"math/rand/v2"

	"github.com/aretw0/twotruths/pkg/domain"
	"github.com/aretw0/twotruths/pkg/render"
)

// Generator renders truths and lies from its argument sets.
//
// Truth must be deterministic: the same arguments always give the same text.
// Lie may draw from rng and need not differ from the truth on every call.
// Implementations are read-only after construction and may be shared.
type Generator interface {
	Kind() string
	Name() string
	Size() int
	Argument(index int) (domain.ValueMap, error)
	Truth(args domain.ValueMap) string
	Lie(args domain.ValueMap, rng *rand.Rand) string
}

// Base holds the configuration shared by every variant and provides the
// default truth rendering. Variants embed it and supply Lie.
type Base struct {
	config domain.GeneratorConfig
}

// NewBase wraps a config.
func NewBase(config domain.GeneratorConfig) Base {
	return Base{config: config}
}

func (b Base) Kind() string { return b.config.Kind }

func (b Base) Name() string { return b.config.Name }

// Template returns the raw template string.
func (b Base) Template() string { return b.config.Template }

// Size is the number of argument sets, which is also the sampling weight.
func (b Base) Size() int { return len(b.config.Arguments) }

// Argument returns the argument set at index.
func (b Base) Argument(index int) (domain.ValueMap, error) {
	if index < 0 || index >= len(b.config.Arguments) {
		return nil, &domain.IndexOutOfRangeError{Index: index, Size: len(b.config.Arguments)}
	}
	return b.config.Arguments[index], nil
}

// Truth renders the template directly against args.
func (b Base) Truth(args domain.ValueMap) string {
	return render.Render(b.config.Template, args)
}

// TruthAt renders the truth for the argument set at index.
func TruthAt(g Generator, index int) (string, error) {
	args, err := g.Argument(index)
	if err != nil {
		return "", err
	}
	return g.Truth(args), nil
}

// LieAt renders a lie for the argument set at index.
func LieAt(g Generator, index int, rng *rand.Rand) (string, error) {
	args, err := g.Argument(index)
	if err != nil {
		return "", err
	}
	return g.Lie(args, rng), nil
}
