// Package collection provides an ordered, duplicate-free set of statements.
package collection

import (
	"iter"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/aretw0/twotruths/pkg/domain"
)

// Collection keeps statements in order and rejects duplicate text.
// It is not safe for concurrent use.
type Collection struct {
	statements []domain.Statement
	index      map[string]struct{}
	truths     []domain.Statement
	lies       []domain.Statement
}

// New creates an empty collection.
func New() *Collection {
	return &Collection{
		index: make(map[string]struct{}),
	}
}

// Insert appends s unless a statement with the same text is already present,
// in which case it returns *domain.AlreadyExistsError.
func (c *Collection) Insert(s domain.Statement) error {
	if c.Contains(s.Text) {
		return &domain.AlreadyExistsError{Text: s.Text}
	}
	c.index[s.Text] = struct{}{}
	c.statements = append(c.statements, s)
	if s.Truth {
		c.truths = append(c.truths, s)
	} else {
		c.lies = append(c.lies, s)
	}
	return nil
}

// Count returns 1 if a statement with the same text is present, 0 otherwise.
func (c *Collection) Count(s domain.Statement) int {
	if c.Contains(s.Text) {
		return 1
	}
	return 0
}

// Contains reports whether text is present.
func (c *Collection) Contains(text string) bool {
	_, ok := c.index[text]
	return ok
}

// Get returns the statement at position i in the current order.
func (c *Collection) Get(i int) (domain.Statement, bool) {
	if i < 0 || i >= len(c.statements) {
		return domain.Statement{}, false
	}
	return c.statements[i], true
}

// Len returns the number of statements.
func (c *Collection) Len() int {
	return len(c.statements)
}

// Sort orders statements lexically by text. It is stable and idempotent and
// leaves the truth and lie views untouched.
func (c *Collection) Sort() {
	slices.SortStableFunc(c.statements, func(a, b domain.Statement) int {
		return strings.Compare(a.Text, b.Text)
	})
}

// Shuffle randomizes the order using rng.
func (c *Collection) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(c.statements), func(i, j int) {
		c.statements[i], c.statements[j] = c.statements[j], c.statements[i]
	})
}

// Statements returns a copy of the statements in the current order.
func (c *Collection) Statements() []domain.Statement {
	return slices.Clone(c.statements)
}

// Truths returns the true statements in insertion order.
func (c *Collection) Truths() []domain.Statement {
	return slices.Clone(c.truths)
}

// Lies returns the false statements in insertion order.
func (c *Collection) Lies() []domain.Statement {
	return slices.Clone(c.lies)
}

// All iterates over the statements in the current order.
func (c *Collection) All() iter.Seq2[int, domain.Statement] {
	return func(yield func(int, domain.Statement) bool) {
		for i, s := range c.statements {
			if !yield(i, s) {
				return
			}
		}
	}
}
