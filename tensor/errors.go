// SPDX-License-Identifier: MIT
// Package tensor: sentinel error set.
// Every public operation validates before it allocates and returns one of the
// sentinels below, possibly wrapped with operation context. Callers match with
// errors.Is; typed wrappers (DimensionError, IndexError) also support errors.As.

package tensor

import (
	"errors"
	"fmt"
)

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "tensor: ". Validators wrap the sentinels with
// their own tag and facades wrap once more with the operation name, e.g.
//
//	Add: ValidateSameShape: tensor: shape mismatch [2 2] vs [2 3]
//
// ERROR PRIORITY (checked in this order by every facade):
// nil operand -> invalid strategy -> rank -> shape -> index -> divisor.

var (
	// ErrShapeMismatch indicates operand shapes that are incompatible for the
	// requested operation (different shapes for elementwise ops, inner
	// dimension mismatch for MatMul).
	ErrShapeMismatch = errors.New("tensor: shape mismatch")

	// ErrInvalidDimensions is returned for an empty shape, a non-positive
	// dimension, or a rank the operation does not support.
	ErrInvalidDimensions = errors.New("tensor: invalid dimensions")

	// ErrIndexOutOfBounds indicates element access outside the tensor.
	ErrIndexOutOfBounds = errors.New("tensor: index out of bounds")

	// ErrNotSquareMatrix signals a square-only operation applied to a
	// non-square (or non rank-2) tensor.
	ErrNotSquareMatrix = errors.New("tensor: matrix is not square")

	// ErrSingularMatrix is reserved for operations that need a non-singular
	// matrix. Determinant reports a singular matrix as 0, not as this error.
	ErrSingularMatrix = errors.New("tensor: singular matrix")

	// ErrDivisionByZero indicates a zero scalar divisor or a zero element in
	// an elementwise divisor.
	ErrDivisionByZero = errors.New("tensor: division by zero")

	// ErrInvalidOperation is the catch-all for malformed requests, such as an
	// unsupported rank combination in MatMul or an unknown strategy.
	ErrInvalidOperation = errors.New("tensor: invalid operation")

	// ErrInvalidRowDimension is returned by Row for an out-of-range row.
	ErrInvalidRowDimension = errors.New("tensor: invalid row dimension")

	// ErrInvalidColumnDimension is returned by Col for an out-of-range column.
	ErrInvalidColumnDimension = errors.New("tensor: invalid column dimension")

	// ErrNilTensor indicates a nil receiver or operand.
	ErrNilTensor = errors.New("tensor: nil tensor")
)

// ErrDimensionMismatch names the same condition as ErrShapeMismatch.
var ErrDimensionMismatch = ErrShapeMismatch

// ErrIncompatibleDimensions names the same condition as ErrShapeMismatch.
var ErrIncompatibleDimensions = ErrShapeMismatch

// DimensionError reports the two operand shapes of a failed binary operation.
type DimensionError struct {
	Op    string // check that rejected the operands
	Left  Shape
	Right Shape
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s: %s %v vs %v", e.Op, ErrShapeMismatch, e.Left, e.Right)
}

// Unwrap returns ErrShapeMismatch.
func (e *DimensionError) Unwrap() error { return ErrShapeMismatch }

// IndexError reports an index that falls outside Shape.
type IndexError struct {
	Index []int
	Shape Shape
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: index %v, shape %v", ErrIndexOutOfBounds, e.Index, e.Shape)
}

// Unwrap returns ErrIndexOutOfBounds.
func (e *IndexError) Unwrap() error { return ErrIndexOutOfBounds }

// tensorErrorf wraps err with the public operation name.
func tensorErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
