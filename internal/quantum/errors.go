package quantum

import (
	"errors"
	"fmt"
)

// Domain errors for grid construction and propagation.
var (
	// ErrInvalidParameter indicates a numeric argument outside its valid domain.
	ErrInvalidParameter = errors.New("quantum: invalid parameter")

	// ErrNotInitialized indicates Update was called before Initialize.
	ErrNotInitialized = errors.New("quantum: propagator not initialized")

	// ErrDimensionMismatch indicates an array whose length differs from the grid.
	ErrDimensionMismatch = errors.New("quantum: dimension mismatch between array and grid")
)

// ParameterError reports which parameter was rejected and why.
type ParameterError struct {
	Name   string
	Value  float64
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("quantum: invalid parameter %s=%g: %s", e.Name, e.Value, e.Reason)
}

func (e *ParameterError) Unwrap() error {
	return ErrInvalidParameter
}

func dimensionError(what string, got, want int) error {
	return fmt.Errorf("%w: %s has %d points, grid has %d", ErrDimensionMismatch, what, got, want)
}
