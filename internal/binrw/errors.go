package binrw

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is matched by every error caused by a length, count or
	// offset that does not fit the remaining input.
	ErrOutOfBounds = errors.New("out of bounds")

	// ErrUnexpectedValue is matched by every error caused by a field that did
	// not hold its required value.
	ErrUnexpectedValue = errors.New("unexpected value")
)

// BoundsError reports a slicing operation that asked for more bytes than the
// Reader had left.
type BoundsError struct {
	Op   string
	Want int
	Have int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("%s %d bytes: %d remaining: %v", e.Op, e.Want, e.Have, ErrOutOfBounds)
}

func (e *BoundsError) Unwrap() error {
	return ErrOutOfBounds
}

// ValueError reports a decoded field that did not match its expected value.
type ValueError struct {
	Field string
	Want  any
	Got   any
}

func valueErrf(field string, want, got any) error {
	return &ValueError{Field: field, Want: want, Got: got}
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%s: %v: got %v, want %v", e.Field, ErrUnexpectedValue, e.Got, e.Want)
}

func (e *ValueError) Unwrap() error {
	return ErrUnexpectedValue
}

// invariantf panics with an internal-consistency message. It is reserved for
// caller or schema bugs, never for bad input.
func invariantf(format string, args ...any) {
	panic(fmt.Sprintf("binrw: "+format, args...))
}
