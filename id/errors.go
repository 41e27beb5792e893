package id

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLength matches every *InvalidLengthError.
	ErrInvalidLength = errors.New("id: invalid length")

	// ErrDomain matches every *DomainError.
	ErrDomain = errors.New("id: index out of domain")
)

// InvalidLengthError is returned when binary or hex input does not have the
// exact identifier size.
type InvalidLengthError struct {
	Kind string
	Got  int
	Want int
	Hex  bool
	Err  error
}

func (e *InvalidLengthError) Error() string {
	form := "bytes"
	if e.Hex {
		form = "hex characters"
	}
	if e.Err != nil {
		return fmt.Sprintf("id: invalid %s: expected %d %s: %v", e.Kind, e.Want, form, e.Err)
	}
	return fmt.Sprintf("id: invalid %s: expected %d %s, got %d", e.Kind, e.Want, form, e.Got)
}

func (e *InvalidLengthError) Is(target error) bool {
	return target == ErrInvalidLength
}

func (e *InvalidLengthError) Unwrap() error {
	return e.Err
}

// DomainError reports an object index outside [1, MaxIndex], either passed by
// the caller or decoded from an identifier.
type DomainError struct {
	Op     string
	Index  int64
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("id: %s: index %d %s", e.Op, e.Index, e.Reason)
}

func (e *DomainError) Is(target error) bool {
	return target == ErrDomain
}
