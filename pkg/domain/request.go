package domain

import "fmt"

// DefaultMaxRetries bounds attempts per statement when a request does not say otherwise.
const DefaultMaxRetries = 10

// Request describes the mix of statements a caller wants.
type Request struct {
	Truths        int    `json:"truths" yaml:"truths" mapstructure:"truths"`
	Lies          int    `json:"lies" yaml:"lies" mapstructure:"lies"`
	MaxRetries    int    `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
	EnsureNotTrue bool   `json:"ensure_not_true" yaml:"ensure_not_true" mapstructure:"ensure_not_true"`
	RandomOrder   bool   `json:"random_order" yaml:"random_order" mapstructure:"random_order"`
	Seed          uint64 `json:"seed,omitempty" yaml:"seed,omitempty" mapstructure:"seed"`
}

// DefaultRequest returns a request with the documented defaults and no statements.
func DefaultRequest() Request {
	return Request{
		MaxRetries:    DefaultMaxRetries,
		EnsureNotTrue: true,
	}
}

// Validate checks the invariants the assembler relies on.
func (r Request) Validate() error {
	if r.Truths < 0 {
		return &ValidationError{Field: "truths", Message: fmt.Sprintf("must be non-negative, got %d", r.Truths)}
	}
	if r.Lies < 0 {
		return &ValidationError{Field: "lies", Message: fmt.Sprintf("must be non-negative, got %d", r.Lies)}
	}
	if r.Truths == 0 && r.Lies == 0 {
		return &ValidationError{Message: "at least one truth or lie must be requested"}
	}
	if r.MaxRetries < 0 {
		return &ValidationError{Field: "max_retries", Message: fmt.Sprintf("must be non-negative, got %d", r.MaxRetries)}
	}
	return nil
}
