// Package errs defines the error taxonomy shared by the vector, set and
// compact packages.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidReference is returned when a required operand is nil.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrWrongArgument is returned when an argument is malformed (bad direction,
	// negative step, corners that do not form a box).
	ErrWrongArgument = errors.New("wrong argument")

	// ErrOutOfBounds is returned when an index is out of range or an iterator
	// cannot move without leaving its compact.
	ErrOutOfBounds = errors.New("out of bounds")

	// ErrNotFound is returned when a search by sample misses.
	ErrNotFound = errors.New("not found")

	// ErrNaN is returned when a coordinate is NaN.
	ErrNaN = errors.New("not a number")

	// ErrMultipleDefinition is returned when inserting a duplicate into a deduplicating set.
	ErrMultipleDefinition = errors.New("multiple definition")

	// ErrInvalidDimension is returned for a zero dimension.
	ErrInvalidDimension = errors.New("invalid dimension")

	// ErrDimension is the sentinel matched by every *ErrDimensionMismatch.
	ErrDimension = errors.New("wrong dimension")

	// ErrNoOverlap is returned when intersecting compacts that do not intersect.
	ErrNoOverlap = fmt.Errorf("%w: compacts do not intersect", ErrWrongArgument)

	// ErrNotMergeable is returned when two compacts cannot be merged into a box
	// without covering space outside both.
	ErrNotMergeable = fmt.Errorf("%w: compacts are not mergeable", ErrWrongArgument)
)

// ErrDimensionMismatch indicates operands of different dimensionality.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// Is reports whether target is ErrDimension.
func (e *ErrDimensionMismatch) Is(target error) bool { return target == ErrDimension }

// Dimension returns a *ErrDimensionMismatch, or nil if expected == actual.
func Dimension(expected, actual int) error {
	if expected == actual {
		return nil
	}
	return &ErrDimensionMismatch{Expected: expected, Actual: actual}
}
