package length

import (
	"errors"
	"fmt"
)

// ErrInvalidLength is matched by every error reporting an input that does not
// fit the requested length type.
var ErrInvalidLength = errors.New("invalid length")

// InvalidLength reports a slice that is too long for the target length type.
// The original slice is handed back untouched so no data is lost.
type InvalidLength[T any] struct {
	TypeName string
	original []T
}

// NewInvalidLength builds the error for a slice that does not fit L.
func NewInvalidLength[T any, L Length](original []T) *InvalidLength[T] {
	return &InvalidLength[T]{TypeName: TypeName[L](), original: original}
}

func (e *InvalidLength[T]) Error() string {
	return fmt.Sprintf("cannot fit %d into %s", len(e.original), e.TypeName)
}

func (e *InvalidLength[T]) Unwrap() error { return ErrInvalidLength }

// Len is the length of the rejected input.
func (e *InvalidLength[T]) Len() int { return len(e.original) }

// Into returns the slice that could not be converted.
func (e *InvalidLength[T]) Into() []T { return e.original }

// InvalidStrLength is InvalidLength for string inputs.
type InvalidStrLength struct {
	TypeName string
	original string
}

// NewInvalidStrLength builds the error for a string that does not fit L.
func NewInvalidStrLength[L Length](original string) *InvalidStrLength {
	return &InvalidStrLength{TypeName: TypeName[L](), original: original}
}

func (e *InvalidStrLength) Error() string {
	return fmt.Sprintf("cannot fit %d into %s", len(e.original), e.TypeName)
}

func (e *InvalidStrLength) Unwrap() error { return ErrInvalidLength }

// Len is the byte length of the rejected input.
func (e *InvalidStrLength) Len() int { return len(e.original) }

// Into returns the string that could not be converted.
func (e *InvalidStrLength) Into() string { return e.original }
