package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter indicates that a loan input is outside its valid domain.
	ErrInvalidParameter = errors.New("invalid loan parameter")

	// ErrNumericOverflow indicates that an intermediate value could not be represented.
	ErrNumericOverflow = errors.New("numeric overflow")

	ErrInvalidView = errors.New("invalid schedule view")
)

// InvalidParameterError reports which input was rejected and why.
type InvalidParameterError struct {
	Field  string
	Value  any
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %s", e.Field, e.Value, e.Reason)
}

func (e *InvalidParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}

// NumericOverflowError is returned when the annuity factor leaves the float64 range.
type NumericOverflowError struct {
	Operation string
}

func (e *NumericOverflowError) Error() string {
	return fmt.Sprintf("numeric overflow computing %s", e.Operation)
}

func (e *NumericOverflowError) Is(target error) bool {
	return target == ErrNumericOverflow
}
