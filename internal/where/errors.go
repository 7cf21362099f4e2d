package where

import (
	"errors"
	"fmt"
)

// ErrInvalidCondition is wrapped by every construction error in this
// package. Test for it with errors.Is.
var ErrInvalidCondition = errors.New("invalid condition")

// ConditionError describes why a node could not be constructed.
type ConditionError struct {
	// Column is the column of the offending comparison, if any.
	Column string

	// Operator is the offending operator, zero for combinator errors.
	Operator Operator

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *ConditionError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s: %s (column=%s, op=%s)", ErrInvalidCondition, e.Message, e.Column, e.Operator)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidCondition, e.Message)
}

// Unwrap lets errors.Is match ErrInvalidCondition.
func (e *ConditionError) Unwrap() error {
	return ErrInvalidCondition
}

func conditionErrorf(column string, op Operator, format string, args ...any) *ConditionError {
	return &ConditionError{
		Column:   column,
		Operator: op,
		Message:  fmt.Sprintf(format, args...),
	}
}
