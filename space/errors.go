package space

import "errors"

var (
	// ErrDimension is returned when an object does not have the number of
	// dimensions an operation requires.
	ErrDimension = errors.New("space: dimension mismatch")

	// ErrDegenerate is returned when a blade is zero or degenerate where a
	// real manifold is required.
	ErrDegenerate = errors.New("space: degenerate manifold")

	// ErrImaginary is returned when the intersection of two manifolds is
	// imaginary.
	ErrImaginary = errors.New("space: imaginary intersection")

	// ErrTopology is returned when a polytope is structurally invalid.
	ErrTopology = errors.New("space: invalid topology")
)
