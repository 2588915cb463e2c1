package runtime

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/aretw0/twotruths/pkg/collection"
	"github.com/aretw0/twotruths/pkg/domain"
	"github.com/aretw0/twotruths/pkg/generator"
)

// Rejection reasons reported to observers.
const (
	ReasonDuplicate  = "duplicate"
	ReasonKnownTruth = "known_truth"
)

// Rejection describes a candidate statement that was discarded and retried.
type Rejection struct {
	Truth     bool
	Generator int
	Text      string
	Reason    string
}

// Option configures a single GenerateTruthsLies call.
type Option func(*assembler)

// WithRejectionObserver registers a callback invoked for every rejected candidate.
func WithRejectionObserver(fn func(Rejection)) Option {
	return func(a *assembler) {
		a.onReject = fn
	}
}

type assembler struct {
	gens          []generator.Generator
	weights       []int
	sampler       *Sampler
	rng           *rand.Rand
	maxRetries    int
	ensureNotTrue bool
	truthTables   []*truthTable
	onReject      func(Rejection)
}

// truthTable holds every truth a generator can render, by argument index and by text.
type truthTable struct {
	byIndex []domain.Statement
	texts   *collection.Collection
}

// GenerateTruthsLies assembles a duplicate-free collection of truths followed by lies.
//
// Generators are picked with probability proportional to their size and an
// argument set is then drawn uniformly. Each statement gets maxRetries+1
// attempts; running out fails the whole batch with *domain.DuplicateExhaustionError.
// With ensureNotTrue, every truth of every generator is rendered up front and a
// lie is also rejected when it matches any truth of the generator that produced it.
//
// All randomness is drawn from rng, which must not be shared with concurrent calls.
func GenerateTruthsLies(
	gens []generator.Generator,
	truths, lies, maxRetries int,
	ensureNotTrue bool,
	rng *rand.Rand,
	opts ...Option,
) (*collection.Collection, error) {
	if maxRetries < 0 {
		maxRetries = 0
	}

	a := &assembler{
		gens:          gens,
		weights:       make([]int, len(gens)),
		rng:           rng,
		maxRetries:    maxRetries,
		ensureNotTrue: ensureNotTrue,
	}
	for _, opt := range opts {
		opt(a)
	}

	for i, g := range gens {
		a.weights[i] = g.Size()
	}
	a.sampler = NewSampler(a.weights)

	out := collection.New()
	if truths <= 0 && lies <= 0 {
		return out, nil
	}
	if a.sampler.Total() == 0 {
		return nil, domain.ErrNoArguments
	}

	if ensureNotTrue {
		if err := a.precomputeTruths(); err != nil {
			return nil, err
		}
	}

	for i := 0; i < truths; i++ {
		if err := a.addOne(out, true); err != nil {
			return nil, a.exhausted(err, "truth", truths, i)
		}
	}
	for i := 0; i < lies; i++ {
		if err := a.addOne(out, false); err != nil {
			return nil, a.exhausted(err, "lie", lies, i)
		}
	}
	return out, nil
}

var errRetriesExhausted = errors.New("retries exhausted")

func (a *assembler) exhausted(err error, kind string, requested, achieved int) error {
	if errors.Is(err, errRetriesExhausted) {
		return &domain.DuplicateExhaustionError{
			Kind:      kind,
			Requested: requested,
			Achieved:  achieved,
			Attempts:  a.maxRetries + 1,
		}
	}
	return err
}

func (a *assembler) precomputeTruths() error {
	a.truthTables = make([]*truthTable, len(a.gens))
	for gi, g := range a.gens {
		table := &truthTable{
			byIndex: make([]domain.Statement, g.Size()),
			texts:   collection.New(),
		}
		for i := range table.byIndex {
			text, err := generator.TruthAt(g, i)
			if err != nil {
				return fmt.Errorf("render truth %d of generator %d: %w", i, gi, err)
			}
			s := domain.Statement{Text: text, Truth: true}
			table.byIndex[i] = s
			// Two argument sets may render the same text; the set only needs one.
			_ = table.texts.Insert(s)
		}
		a.truthTables[gi] = table
	}
	return nil
}

// addOne inserts one accepted statement into out or reports errRetriesExhausted.
func (a *assembler) addOne(out *collection.Collection, truth bool) error {
	for attempt := 0; attempt <= a.maxRetries; attempt++ {
		gi := a.sampler.Pick(a.rng)
		ai := sampleIndex(a.weights[gi], a.rng)

		s, err := a.candidate(gi, ai, truth)
		if err != nil {
			return err
		}

		if !truth && a.ensureNotTrue && a.truthTables[gi].texts.Contains(s.Text) {
			a.reject(s, gi, ReasonKnownTruth)
			continue
		}

		if err := out.Insert(s); err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				a.reject(s, gi, ReasonDuplicate)
				continue
			}
			return err
		}
		return nil
	}
	return errRetriesExhausted
}

func (a *assembler) candidate(gi, ai int, truth bool) (domain.Statement, error) {
	if truth {
		if a.ensureNotTrue {
			table := a.truthTables[gi]
			if ai < 0 || ai >= len(table.byIndex) {
				return domain.Statement{}, &domain.IndexOutOfRangeError{Index: ai, Size: len(table.byIndex)}
			}
			return table.byIndex[ai], nil
		}
		text, err := generator.TruthAt(a.gens[gi], ai)
		if err != nil {
			return domain.Statement{}, err
		}
		return domain.Statement{Text: text, Truth: true}, nil
	}

	text, err := generator.LieAt(a.gens[gi], ai, a.rng)
	if err != nil {
		return domain.Statement{}, err
	}
	return domain.Statement{Text: text, Truth: false}, nil
}

func (a *assembler) reject(s domain.Statement, gi int, reason string) {
	if a.onReject == nil {
		return
	}
	a.onReject(Rejection{Truth: s.Truth, Generator: gi, Text: s.Text, Reason: reason})
}
