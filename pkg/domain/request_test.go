package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr bool
	}{
		{"defaults with truths", Request{Truths: 2, MaxRetries: 10}, false},
		{"lies only", Request{Lies: 1}, false},
		{"nothing requested", Request{}, true},
		{"negative truths", Request{Truths: -1, Lies: 1}, true},
		{"negative lies", Request{Truths: 1, Lies: -1}, true},
		{"negative retries", Request{Truths: 1, MaxRetries: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidRequest)
			var verr *ValidationError
			assert.True(t, errors.As(err, &verr))
		})
	}
}

func TestDefaultRequest(t *testing.T) {
	r := DefaultRequest()
	assert.Equal(t, DefaultMaxRetries, r.MaxRetries)
	assert.True(t, r.EnsureNotTrue)
	assert.False(t, r.RandomOrder)
}

func TestErrors_Unwrap(t *testing.T) {
	assert.ErrorIs(t, &AlreadyExistsError{Text: "x"}, ErrAlreadyExists)
	assert.ErrorIs(t, &UnknownKindError{Kind: "x"}, ErrUnknownGeneratorKind)
	assert.ErrorIs(t, &IndexOutOfRangeError{Index: 3, Size: 2}, ErrIndexOutOfRange)

	err := &DuplicateExhaustionError{Kind: "truth", Requested: 2, Achieved: 1, Attempts: 1}
	assert.ErrorIs(t, err, ErrDuplicateExhaustion)
	assert.Equal(t, "generated too many duplicate statements: 1/2 truths after 1 attempts", err.Error())
}

func TestBatch_MaskedAndCounts(t *testing.T) {
	b := &Batch{Statements: []Statement{
		{Text: "a", Truth: true},
		{Text: "b", Truth: false},
		{Text: "c", Truth: true},
	}}
	truths, lies := b.Counts()
	assert.Equal(t, 2, truths)
	assert.Equal(t, 1, lies)
	assert.Equal(t, []MaskedStatement{{Text: "a"}, {Text: "b"}, {Text: "c"}}, b.Masked())
}
