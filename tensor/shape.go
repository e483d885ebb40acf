package tensor

import (
	"fmt"
	"math"
)

// Shape holds the dimension sizes of a tensor, outermost first.
type Shape []int

// NumElements returns the product of all dimensions, or 0 for an empty shape.
// Only meaningful for a shape that passed Validate.
func (s Shape) NumElements() int {
	if len(s) == 0 {
		return 0
	}
	n := 1
	for _, d := range s {
		n *= d
	}
	return n
}

// Validate checks that the shape is non-empty, every dimension is > 0 and the
// element count fits in an int.
func (s Shape) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("%w: empty shape", ErrInvalidDimensions)
	}
	n := 1
	for i, d := range s {
		if d <= 0 {
			return fmt.Errorf("%w: dimension %d is %d", ErrInvalidDimensions, i, d)
		}
		if n > math.MaxInt/d {
			return fmt.Errorf("%w: element count of %v overflows int", ErrInvalidDimensions, []int(s))
		}
		n *= d
	}
	return nil
}

// Equal reports whether both shapes have the same dimensions.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	copy(out, s)
	return out
}

// Strides returns row-major strides: stride[i] is the product of all
// dimensions after i.
func (s Shape) Strides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}
	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// offset converts a full index into a flat row-major offset.
// The caller validates idx first.
func (s Shape) offset(idx []int) int {
	off := 0
	for i, v := range idx {
		off = off*s[i] + v
	}
	return off
}
