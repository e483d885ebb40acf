package tensor

import (
	"fmt"
	"math/rand/v2"
)

// New builds a tensor with the given shape from a copy of data.
//
// Errors: ErrInvalidDimensions for an empty shape or a non-positive dimension,
// ErrShapeMismatch when len(data) != product(shape).
func New[T Number](data []T, shape []int, opts ...Option) (*Tensor[T], error) {
	s := Shape(shape).Clone()
	if err := ValidateShape(s); err != nil {
		return nil, tensorErrorf("New", err)
	}
	if len(data) != s.NumElements() {
		return nil, tensorErrorf("New", fmt.Errorf("%w: %d elements for shape %v", ErrShapeMismatch, len(data), s))
	}
	o := gatherOptions(opts...)
	buf := make([]T, len(data))
	copy(buf, data)

	return newTensor(buf, s, o.hint, o.engine), nil
}

// FromFlat builds a rows×cols matrix from row-major data.
func FromFlat[T Number](rows, cols int, data []T, opts ...Option) (*Tensor[T], error) {
	t, err := New(data, []int{rows, cols}, opts...)
	if err != nil {
		return nil, tensorErrorf("FromFlat", err)
	}
	return t, nil
}

// FromRows builds a matrix from a copy of nested rows. Every row must have the
// length of the first one.
//
// Errors: ErrInvalidDimensions for no rows or an empty first row,
// ErrShapeMismatch for a ragged row.
func FromRows[T Number](rows [][]T, opts ...Option) (*Tensor[T], error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, tensorErrorf("FromRows", fmt.Errorf("%w: no elements", ErrInvalidDimensions))
	}
	cols := len(rows[0])
	data := make([]T, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, tensorErrorf("FromRows", fmt.Errorf("%w: row %d has %d elements, want %d", ErrShapeMismatch, i, len(row), cols))
		}
		data = append(data, row...)
	}
	o := gatherOptions(opts...)

	return newTensor(data, Shape{len(rows), cols}, o.hint, o.engine), nil
}

// Fill returns a tensor of the given shape with every element set to v.
func Fill[T Number](shape []int, v T, opts ...Option) (*Tensor[T], error) {
	s := Shape(shape).Clone()
	if err := ValidateShape(s); err != nil {
		return nil, tensorErrorf("Fill", err)
	}
	o := gatherOptions(opts...)
	buf := make([]T, s.NumElements())
	if v != 0 {
		for i := range buf {
			buf[i] = v
		}
	}

	return newTensor(buf, s, o.hint, o.engine), nil
}

// Zeros returns a zero-filled tensor.
func Zeros[T Number](shape []int, opts ...Option) (*Tensor[T], error) {
	return Fill[T](shape, 0, opts...)
}

// Ones returns a tensor filled with 1.
func Ones[T Number](shape []int, opts ...Option) (*Tensor[T], error) {
	return Fill[T](shape, 1, opts...)
}

// NewMatrix returns a zero-filled rows×cols matrix.
func NewMatrix[T Number](rows, cols int, opts ...Option) (*Tensor[T], error) {
	return Zeros[T]([]int{rows, cols}, opts...)
}

// Identity returns the n×n identity matrix.
func Identity[T Number](n int, opts ...Option) (*Tensor[T], error) {
	t, err := Zeros[T]([]int{n, n}, opts...)
	if err != nil {
		return nil, tensorErrorf("Identity", err)
	}
	for i := 0; i < n; i++ {
		t.data[i*n+i] = 1
	}
	return t, nil
}

// RandomWithSeed returns a tensor whose elements are drawn uniformly from
// [lo, hi) by a PCG generator seeded with seed, then converted to T.
// The same seed always yields the same tensor. Integer kinds truncate.
func RandomWithSeed[T Number](shape []int, seed uint64, lo, hi float64, opts ...Option) (*Tensor[T], error) {
	s := Shape(shape).Clone()
	if err := ValidateShape(s); err != nil {
		return nil, tensorErrorf("RandomWithSeed", err)
	}
	if !(lo < hi) {
		return nil, tensorErrorf("RandomWithSeed", fmt.Errorf("%w: empty range [%g, %g)", ErrInvalidOperation, lo, hi))
	}
	o := gatherOptions(opts...)
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	buf := make([]T, s.NumElements())
	for i := range buf {
		buf[i] = T(lo + rng.Float64()*(hi-lo))
	}

	return newTensor(buf, s, o.hint, o.engine), nil
}
