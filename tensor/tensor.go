// Package tensor provides dense row-major numeric arrays whose arithmetic runs
// on one of four interchangeable strategies: Sequential, Parallel, SIMD and
// ParallelSIMD.
//
// A Tensor owns its flat buffer exclusively. Its shape never changes after
// construction, and every operation either fails validation (operands
// untouched, nothing allocated) or returns a fresh, fully populated tensor.
//
// Element kinds cover every Go integer and floating point type. Determinant
// and cofactor expansion run in float64 regardless of the element kind.
//
// All indexing goes through bounds-checked accessors that return errors;
// there is no panicking index operator.
package tensor

import (
	"math"

	"github.com/katalvlaran/lvnum/simd"
)

// Number is the set of element kinds a Tensor can hold.
type Number = simd.Number

// Tensor is a dense row-major array of T.
type Tensor[T Number] struct {
	data   []T      // flat backing storage, len == shape.NumElements()
	shape  Shape    // immutable, every dimension > 0
	rank   int      // len(shape), cached
	hint   Strategy // used when an operation is called with Auto
	engine *Engine  // shared compute engine
}

// newTensor wraps data without copying. data must already match shape.
func newTensor[T Number](data []T, shape Shape, hint Strategy, e *Engine) *Tensor[T] {
	return &Tensor[T]{data: data, shape: shape, rank: len(shape), hint: hint, engine: e}
}

// like allocates a zeroed tensor with the given shape that inherits t's hint
// and engine.
func (t *Tensor[T]) like(shape Shape) *Tensor[T] {
	return newTensor(make([]T, shape.NumElements()), shape, t.hint, t.engine)
}

// resolve maps Auto onto the tensor's hint and rejects unknown strategies.
func (t *Tensor[T]) resolve(s Strategy) (Strategy, error) {
	if err := ValidateStrategy(s); err != nil {
		return Auto, err
	}
	if s == Auto {
		return t.hint, nil
	}
	return s, nil
}

// Shape returns a copy of the dimensions.
func (t *Tensor[T]) Shape() Shape { return t.shape.Clone() }

// Rank returns the number of dimensions.
func (t *Tensor[T]) Rank() int { return t.rank }

// Size returns the number of elements.
func (t *Tensor[T]) Size() int { return len(t.data) }

// Rows returns the first dimension.
func (t *Tensor[T]) Rows() int { return t.shape[0] }

// Cols returns the second dimension, or 1 for a rank-1 tensor.
func (t *Tensor[T]) Cols() int {
	if t.rank < 2 {
		return 1
	}
	return t.shape[1]
}

// IsSquare reports whether t is a rank-2 tensor with equal dimensions.
func (t *Tensor[T]) IsSquare() bool { return t.rank == 2 && t.shape[0] == t.shape[1] }

// IsEmpty reports whether t holds no elements. Only a nil tensor is empty.
func (t *Tensor[T]) IsEmpty() bool { return t == nil || len(t.data) == 0 }

// Strategy returns the hint used for Auto.
func (t *Tensor[T]) Strategy() Strategy { return t.hint }

// Engine returns the engine the tensor is bound to.
func (t *Tensor[T]) Engine() *Engine { return t.engine }

// Data returns a copy of the flat row-major buffer.
func (t *Tensor[T]) Data() []T {
	out := make([]T, len(t.data))
	copy(out, t.data)
	return out
}

// At returns the element at the full index idx.
func (t *Tensor[T]) At(idx ...int) (T, error) {
	var zero T
	if err := ValidateNotNil(t); err != nil {
		return zero, tensorErrorf("At", err)
	}
	if err := ValidateIndex(t.shape, idx...); err != nil {
		return zero, tensorErrorf("At", err)
	}
	return t.data[t.shape.offset(idx)], nil
}

// SetAt stores v at the full index idx.
func (t *Tensor[T]) SetAt(v T, idx ...int) error {
	if err := ValidateNotNil(t); err != nil {
		return tensorErrorf("SetAt", err)
	}
	if err := ValidateIndex(t.shape, idx...); err != nil {
		return tensorErrorf("SetAt", err)
	}
	t.data[t.shape.offset(idx)] = v
	return nil
}

// Get returns the element at (row, col) of a rank-2 tensor.
func (t *Tensor[T]) Get(row, col int) (T, error) {
	var zero T
	if err := ValidateRank2(t); err != nil {
		return zero, tensorErrorf("Get", err)
	}
	if err := ValidateIndex(t.shape, row, col); err != nil {
		return zero, tensorErrorf("Get", err)
	}
	return t.data[row*t.shape[1]+col], nil
}

// Set stores v at (row, col) of a rank-2 tensor.
func (t *Tensor[T]) Set(row, col int, v T) error {
	if err := ValidateRank2(t); err != nil {
		return tensorErrorf("Set", err)
	}
	if err := ValidateIndex(t.shape, row, col); err != nil {
		return tensorErrorf("Set", err)
	}
	t.data[row*t.shape[1]+col] = v
	return nil
}

// Row returns a copy of row i of a rank-2 tensor.
func (t *Tensor[T]) Row(i int) ([]T, error) {
	if err := ValidateRank2(t); err != nil {
		return nil, tensorErrorf("Row", err)
	}
	if i < 0 || i >= t.shape[0] {
		return nil, tensorErrorf("Row", ErrInvalidRowDimension)
	}
	cols := t.shape[1]
	out := make([]T, cols)
	copy(out, t.data[i*cols:(i+1)*cols])
	return out, nil
}

// Col returns a copy of column j of a rank-2 tensor.
func (t *Tensor[T]) Col(j int) ([]T, error) {
	if err := ValidateRank2(t); err != nil {
		return nil, tensorErrorf("Col", err)
	}
	if j < 0 || j >= t.shape[1] {
		return nil, tensorErrorf("Col", ErrInvalidColumnDimension)
	}
	rows, cols := t.shape[0], t.shape[1]
	out := make([]T, rows)
	for i := range out {
		out[i] = t.data[i*cols+j]
	}
	return out, nil
}

// Clone returns a deep copy bound to the same engine and hint.
func (t *Tensor[T]) Clone() *Tensor[T] {
	return newTensor(t.Data(), t.shape.Clone(), t.hint, t.engine)
}

// Reshape returns a copy of t viewed with a new shape of the same size.
func (t *Tensor[T]) Reshape(shape ...int) (*Tensor[T], error) {
	if err := ValidateNotNil(t); err != nil {
		return nil, tensorErrorf("Reshape", err)
	}
	s := Shape(shape).Clone()
	if err := ValidateShape(s); err != nil {
		return nil, tensorErrorf("Reshape", err)
	}
	if s.NumElements() != len(t.data) {
		return nil, tensorErrorf("Reshape", &DimensionError{Op: "Reshape", Left: t.shape.Clone(), Right: s})
	}
	return newTensor(t.Data(), s, t.hint, t.engine), nil
}

// Equal reports whether other has the same shape and every element differs
// by at most the engine's epsilon (DefaultEpsilon unless configured).
func (t *Tensor[T]) Equal(other *Tensor[T]) bool {
	eps := DefaultEpsilon
	if t != nil && t.engine != nil {
		eps = t.engine.eps
	}
	return t.ApproxEqual(other, eps)
}

// ApproxEqual reports whether other has the same shape and
// |t[i] - other[i]| <= eps for every element. A NaN never compares equal;
// equal infinities do. Two nil tensors are equal.
func (t *Tensor[T]) ApproxEqual(other *Tensor[T], eps float64) bool {
	if t == nil || other == nil {
		return t == nil && other == nil
	}
	if !t.shape.Equal(other.shape) {
		return false
	}
	for i, v := range t.data {
		w := other.data[i]
		if v == w {
			continue
		}
		// NaN fails the comparison
		if !(math.Abs(float64(v)-float64(w)) <= eps) {
			return false
		}
	}
	return true
}
