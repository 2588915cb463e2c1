package domain

import "time"

// Statement is one rendered sentence and whether it is true.
// Two statements with the same Text are duplicates regardless of Truth.
type Statement struct {
	Text  string `json:"text" yaml:"text"`
	Truth bool   `json:"truth" yaml:"truth"`
}

// Less orders statements lexically by text.
func (s Statement) Less(other Statement) bool {
	return s.Text < other.Text
}

// Batch is a generated, ordered set of statements.
type Batch struct {
	ID         string      `json:"id"`
	CreatedAt  time.Time   `json:"created_at"`
	Statements []Statement `json:"statements"`
}

// MaskedStatement is a statement as shown to a player, without its truth flag.
type MaskedStatement struct {
	Text string `json:"text"`
}

// Masked returns the quiz view of the batch.
func (b *Batch) Masked() []MaskedStatement {
	out := make([]MaskedStatement, len(b.Statements))
	for i, s := range b.Statements {
		out[i] = MaskedStatement{Text: s.Text}
	}
	return out
}

// Counts returns the number of truths and lies in the batch.
func (b *Batch) Counts() (truths, lies int) {
	for _, s := range b.Statements {
		if s.Truth {
			truths++
		} else {
			lies++
		}
	}
	return truths, lies
}
