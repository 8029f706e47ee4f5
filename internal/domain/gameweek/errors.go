package gameweek

import (
	"fmt"

	crerr "github.com/cockroachdb/errors"
)

// Kind classifies engine failures surfaced to callers.
type Kind string

const (
	KindMissingField    Kind = "MissingFieldError"
	KindEmptyInput      Kind = "EmptyInputError"
	KindMalformedRecord Kind = "MalformedRecordError"
)

var (
	ErrMissingField    = crerr.New("missing required field")
	ErrEmptyInput      = crerr.New("empty input")
	ErrMalformedRecord = crerr.New("malformed record")
)

// Error is a structured engine failure: a kind, the offending field when
// known, and a message.
type Error struct {
	Kind    Kind
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field=%s)", e.Kind, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is matches the sentinel for the error's kind.
func (e *Error) Is(target error) bool {
	switch e.Kind {
	case KindMissingField:
		return target == ErrMissingField
	case KindEmptyInput:
		return target == ErrEmptyInput
	case KindMalformedRecord:
		return target == ErrMalformedRecord
	default:
		return false
	}
}

func NewMissingFieldError(field, message string) *Error {
	return &Error{Kind: KindMissingField, Field: field, Message: message}
}

func NewEmptyInputError(message string) *Error {
	return &Error{Kind: KindEmptyInput, Message: message}
}

func NewMalformedRecordError(field, message string) *Error {
	return &Error{Kind: KindMalformedRecord, Field: field, Message: message}
}

// KindOf extracts the engine kind from err, if any.
func KindOf(err error) (Kind, bool) {
	var engineErr *Error
	if crerr.As(err, &engineErr) {
		return engineErr.Kind, true
	}
	return "", false
}
