// SPDX-License-Identifier: MIT
// Package: tensor
//
// Purpose:
//   - Single source of truth for shape, index, rank and divisor checks.
//   - Facades call these before allocating anything; the error path never
//     allocates a result buffer.
//
// Note:
//   - Validators wrap sentinels with their own tag; facades add the
//     operation name on top. errors.Is matches through both layers.
//   - Composite checks run NotNil first, then rank, then shape.

package tensor

import "fmt"

// validatorErrorf wraps err with the validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil rejects a nil tensor.
func ValidateNotNil[T Number](t *Tensor[T]) error {
	if t == nil {
		return validatorErrorf("ValidateNotNil", ErrNilTensor)
	}
	return nil
}

// ValidateShape rejects an empty shape or any non-positive dimension.
func ValidateShape(shape Shape) error {
	if err := shape.Validate(); err != nil {
		return validatorErrorf("ValidateShape", err)
	}
	return nil
}

// ValidateStrategy rejects values outside the declared strategies.
func ValidateStrategy(s Strategy) error {
	if !s.valid() {
		return validatorErrorf("ValidateStrategy", fmt.Errorf("%w: unknown strategy %d", ErrInvalidOperation, int(s)))
	}
	return nil
}

// ValidateSameShape checks NotNil(a), NotNil(b) and equal shapes.
func ValidateSameShape[T Number](a, b *Tensor[T]) error {
	if err := ValidateNotNil(a); err != nil {
		return validatorErrorf("ValidateSameShape", err)
	}
	if err := ValidateNotNil(b); err != nil {
		return validatorErrorf("ValidateSameShape", err)
	}
	if !a.shape.Equal(b.shape) {
		return &DimensionError{Op: "ValidateSameShape", Left: a.shape.Clone(), Right: b.shape.Clone()}
	}
	return nil
}

// ValidateRank2 checks NotNil and rank == 2.
func ValidateRank2[T Number](t *Tensor[T]) error {
	if err := ValidateNotNil(t); err != nil {
		return validatorErrorf("ValidateRank2", err)
	}
	if t.rank != 2 {
		return validatorErrorf("ValidateRank2", fmt.Errorf("%w: rank %d, want 2", ErrInvalidDimensions, t.rank))
	}
	return nil
}

// validateRank1 checks NotNil and rank == 1.
func validateRank1[T Number](t *Tensor[T]) error {
	if err := ValidateNotNil(t); err != nil {
		return validatorErrorf("validateRank1", err)
	}
	if t.rank != 1 {
		return validatorErrorf("validateRank1", fmt.Errorf("%w: rank %d, want 1", ErrInvalidDimensions, t.rank))
	}
	return nil
}

// ValidateSquare checks that t is a square rank-2 tensor.
func ValidateSquare[T Number](t *Tensor[T]) error {
	if err := ValidateNotNil(t); err != nil {
		return validatorErrorf("ValidateSquare", err)
	}
	if !t.IsSquare() {
		return validatorErrorf("ValidateSquare", fmt.Errorf("%w: shape %v", ErrNotSquareMatrix, t.shape))
	}
	return nil
}

// ValidateMulCompatible checks the inner dimensions of a product for the
// supported rank pairs: (2,2) and (2,1) need a.cols == b.rows, (1,2) needs
// len(a) == b.rows and (1,1) needs equal lengths. Any other pair is
// ErrInvalidOperation.
func ValidateMulCompatible[T Number](a, b *Tensor[T]) error {
	if err := ValidateNotNil(a); err != nil {
		return validatorErrorf("ValidateMulCompatible", err)
	}
	if err := ValidateNotNil(b); err != nil {
		return validatorErrorf("ValidateMulCompatible", err)
	}

	var inner, outer int
	switch {
	case a.rank == 2 && (b.rank == 2 || b.rank == 1):
		inner, outer = a.shape[1], b.shape[0]
	case a.rank == 1 && (b.rank == 2 || b.rank == 1):
		inner, outer = a.shape[0], b.shape[0]
	default:
		return validatorErrorf("ValidateMulCompatible",
			fmt.Errorf("%w: product of rank %d and rank %d", ErrInvalidOperation, a.rank, b.rank))
	}
	if inner != outer {
		return &DimensionError{Op: "ValidateMulCompatible", Left: a.shape.Clone(), Right: b.shape.Clone()}
	}
	return nil
}

// ValidateIndex checks that idx addresses an element of shape: one index per
// dimension, each within [0, dim).
func ValidateIndex(shape Shape, idx ...int) error {
	if len(idx) != len(shape) {
		return &IndexError{Index: append([]int(nil), idx...), Shape: shape.Clone()}
	}
	for i, v := range idx {
		if v < 0 || v >= shape[i] {
			return &IndexError{Index: append([]int(nil), idx...), Shape: shape.Clone()}
		}
	}
	return nil
}

// ValidateNonZero rejects a divisor slice that contains a zero element.
func ValidateNonZero[T Number](data []T) error {
	for i, v := range data {
		if v == 0 {
			return validatorErrorf("ValidateNonZero", fmt.Errorf("%w: element %d", ErrDivisionByZero, i))
		}
	}
	return nil
}
