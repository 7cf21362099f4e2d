package query

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is wrapped by every construction error. A caller
	// bug, reported immediately and never coerced.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInternal marks a broken invariant, such as a kind with no compile
	// rule. It is raised by panic, never returned.
	ErrInternal = errors.New("internal consistency failure")
)

// Error is a construction error.
type Error struct {
	// Op is the constructor that failed, e.g. "NewMutation".
	Op string

	// Kind is the requested query kind.
	Kind Kind

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("query.%s(%s): %s: %s", e.Op, e.Kind, ErrInvalidArgument, e.Message)
}

// Unwrap lets errors.Is match ErrInvalidArgument.
func (e *Error) Unwrap() error {
	return ErrInvalidArgument
}

// InternalError is the panic value for an internal-consistency failure.
type InternalError struct {
	Kind    Kind
	Message string
}

// Error implements the error interface.
func (e *InternalError) Error() string {
	return fmt.Sprintf("%s: %s (kind=%s)", ErrInternal, e.Message, e.Kind)
}

// Unwrap lets errors.Is match ErrInternal.
func (e *InternalError) Unwrap() error {
	return ErrInternal
}

func invalidf(op string, kind Kind, format string, args ...any) *Error {
	return &Error{Op: op, Kind: kind, Message: fmt.Sprintf(format, args...)}
}
