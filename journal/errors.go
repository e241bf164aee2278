package journal

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation matches any *ValidationError with errors.Is.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidInput matches any *InvalidInputError with errors.Is.
	ErrInvalidInput = errors.New("invalid numeric input")
)

// ValidationError reports a field that is present but not acceptable,
// such as a direction other than Long or Short.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// InvalidInputError reports a non-finite number (NaN or ±Inf).
type InvalidInputError struct {
	Field string
	Value float64
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %v is not a finite number", e.Field, e.Value)
}

func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }
