package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyExists is returned when a statement text is already in a collection.
	ErrAlreadyExists = errors.New("statement already exists")

	// ErrDuplicateExhaustion is returned when a statement could not be generated
	// without duplicates within the retry budget.
	ErrDuplicateExhaustion = errors.New("generated too many duplicate statements")

	// ErrUnknownGeneratorKind is returned when no generator is registered for a kind.
	ErrUnknownGeneratorKind = errors.New("unknown generator kind")

	// ErrIndexOutOfRange is returned on argument access past a generator's size.
	ErrIndexOutOfRange = errors.New("argument index out of range")

	// ErrNoArguments is returned when statements are requested but no generator has arguments.
	ErrNoArguments = errors.New("no generator has any arguments")

	// ErrInvalidRequest is returned when a request fails boundary validation.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInvalidValue is returned when an argument cannot be represented as a Value.
	ErrInvalidValue = errors.New("invalid argument value")

	// ErrBatchNotFound is returned when a batch ID cannot be found in the store.
	ErrBatchNotFound = errors.New("batch not found")
)

// AlreadyExistsError carries the duplicated statement text.
type AlreadyExistsError struct {
	Text string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("statement already in the collection: %s", e.Text)
}

func (e *AlreadyExistsError) Unwrap() error { return ErrAlreadyExists }

// DuplicateExhaustionError reports how far a batch got before retries ran out.
type DuplicateExhaustionError struct {
	Kind      string // "truth" or "lie"
	Requested int
	Achieved  int
	Attempts  int
}

func (e *DuplicateExhaustionError) Error() string {
	return fmt.Sprintf("generated too many duplicate statements: %d/%d %ss after %d attempts",
		e.Achieved, e.Requested, e.Kind, e.Attempts)
}

func (e *DuplicateExhaustionError) Unwrap() error { return ErrDuplicateExhaustion }

// UnknownKindError names the kind the registry could not resolve.
type UnknownKindError struct {
	Kind string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown generator kind: %q", e.Kind)
}

func (e *UnknownKindError) Unwrap() error { return ErrUnknownGeneratorKind }

// IndexOutOfRangeError reports an argument access outside [0, Size).
type IndexOutOfRangeError struct {
	Index int
	Size  int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("argument index %d out of range [0, %d)", e.Index, e.Size)
}

func (e *IndexOutOfRangeError) Unwrap() error { return ErrIndexOutOfRange }

// ValidationError describes a rejected request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid request: %s %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid request: %s", e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidRequest }
