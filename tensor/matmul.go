// SPDX-License-Identifier: MIT

package tensor

import (
	"github.com/katalvlaran/lvnum/parallel"
	"github.com/katalvlaran/lvnum/simd"
)

// MatMul multiplies t by other, dispatching on the operand ranks:
//
//	(2,2) m×k · k×n -> m×n
//	(2,1) m×k · k   -> m
//	(1,2) k   · k×n -> n
//	(1,1) k   · k   -> [1] (dot product)
//
// Sequential and Parallel run the classic triple loop (Parallel over row
// blocks). SIMD transposes the right operand once and computes every cell as
// a lane-chunked dot product; ParallelSIMD does the same per row block. The
// SIMD strategies sum in a different order, so results may differ from the
// scalar ones in the last bits.
//
// Errors: ErrNilTensor, ErrShapeMismatch on an inner dimension mismatch,
// ErrInvalidOperation for any other rank pair.
func (t *Tensor[T]) MatMul(other *Tensor[T], s Strategy) (*Tensor[T], error) {
	if err := ValidateMulCompatible(t, other); err != nil {
		return nil, tensorErrorf("MatMul", err)
	}
	s, err := t.resolve(s)
	if err != nil {
		return nil, tensorErrorf("MatMul", err)
	}

	var out *Tensor[T]
	switch {
	case t.rank == 2 && other.rank == 2:
		m, k, n := t.shape[0], t.shape[1], other.shape[1]
		out = t.like(Shape{m, n})
		err = matMul(t.engine, s, out.data, t.data, other.data, m, k, n)
	case t.rank == 2: // matrix · vector is a product with n == 1
		m, k := t.shape[0], t.shape[1]
		out = t.like(Shape{m})
		err = matMul(t.engine, s, out.data, t.data, other.data, m, k, 1)
	case other.rank == 2: // vector · matrix is (matrixᵀ · vector)
		k, n := other.shape[0], other.shape[1]
		out = t.like(Shape{n})
		err = matMul(t.engine, s, out.data, transposeData(other.data, k, n), t.data, n, k, 1)
	default:
		out = t.like(Shape{1})
		out.data[0], err = dot(t.engine, s, t.data, other.data)
	}
	if err != nil {
		return nil, tensorErrorf("MatMul", err)
	}
	return out, nil
}

// MatVec multiplies the rank-2 tensor t by the vector v.
func (t *Tensor[T]) MatVec(v *Tensor[T], s Strategy) (*Tensor[T], error) {
	if err := ValidateRank2(t); err != nil {
		return nil, tensorErrorf("MatVec", err)
	}
	if err := validateRank1(v); err != nil {
		return nil, tensorErrorf("MatVec", err)
	}
	return t.MatMul(v, s)
}

// VecMat multiplies the vector t by the rank-2 tensor m.
func (t *Tensor[T]) VecMat(m *Tensor[T], s Strategy) (*Tensor[T], error) {
	if err := validateRank1(t); err != nil {
		return nil, tensorErrorf("VecMat", err)
	}
	if err := ValidateRank2(m); err != nil {
		return nil, tensorErrorf("VecMat", err)
	}
	return t.MatMul(m, s)
}

// Dot returns the inner product of two vectors of equal length.
func (t *Tensor[T]) Dot(other *Tensor[T], s Strategy) (T, error) {
	var zero T
	if err := validateRank1(t); err != nil {
		return zero, tensorErrorf("Dot", err)
	}
	if err := validateRank1(other); err != nil {
		return zero, tensorErrorf("Dot", err)
	}
	out, err := t.MatMul(other, s)
	if err != nil {
		return zero, tensorErrorf("Dot", err)
	}
	return out.data[0], nil
}

// Transpose returns the k×m transpose of an m×k tensor. SIMD strategies have
// no vector form of the gather and run their scalar counterparts.
//
// Errors: ErrInvalidDimensions when rank != 2.
func (t *Tensor[T]) Transpose(s Strategy) (*Tensor[T], error) {
	if err := ValidateRank2(t); err != nil {
		return nil, tensorErrorf("Transpose", err)
	}
	s, err := t.resolve(s)
	if err != nil {
		return nil, tensorErrorf("Transpose", err)
	}

	rows, cols := t.shape[0], t.shape[1]
	if !s.UsesParallel() {
		return newTensor(transposeData(t.data, rows, cols), Shape{cols, rows}, t.hint, t.engine), nil
	}

	out := t.like(Shape{cols, rows})
	err = parallel.Run(t.engine.cfg, out.data, cols, rows, func(r parallel.Range, dst []T) error {
		for j := r.Lo; j < r.Hi; j++ {
			row := dst[(j-r.Lo)*rows : (j-r.Lo+1)*rows]
			for i := range row {
				row[i] = t.data[i*cols+j]
			}
		}
		return nil
	})
	if err != nil {
		return nil, tensorErrorf("Transpose", err)
	}
	return out, nil
}

// matMul writes the m×n product of a (m×k) and b (k×n) into dst.
func matMul[T Number](e *Engine, s Strategy, dst, a, b []T, m, k, n int) error {
	switch s {
	case Sequential:
		mulRows(dst, a, b, 0, m, k, n)
		return nil
	case Parallel:
		return parallel.Run(e.cfg, dst, m, n, func(r parallel.Range, part []T) error {
			mulRows(part, a, b, r.Lo, r.Hi, k, n)
			return nil
		})
	}

	bt := b
	if n > 1 {
		bt = transposeData(b, k, n)
	}
	if s == SIMD {
		dotRows(e.kernel, dst, a, bt, 0, m, k, n)
		return nil
	}
	return parallel.Run(e.cfg, dst, m, n, func(r parallel.Range, part []T) error {
		dotRows(e.kernel, part, a, bt, r.Lo, r.Hi, k, n)
		return nil
	})
}

// mulRows computes rows [lo, hi) of a·b with the triple loop. dst starts at
// row lo.
func mulRows[T Number](dst, a, b []T, lo, hi, k, n int) {
	for i := lo; i < hi; i++ {
		arow := a[i*k : (i+1)*k]
		out := dst[(i-lo)*n : (i-lo+1)*n]
		for j := range out {
			var sum T
			for p, av := range arow {
				sum += av * b[p*n+j]
			}
			out[j] = sum
		}
	}
}

// dotRows computes rows [lo, hi) of a·b where bt is b transposed (n×k).
func dotRows[T Number](kern *simd.Kernel, dst, a, bt []T, lo, hi, k, n int) {
	for i := lo; i < hi; i++ {
		arow := a[i*k : (i+1)*k]
		out := dst[(i-lo)*n : (i-lo+1)*n]
		for j := range out {
			out[j] = simd.Dot(kern, arow, bt[j*k:(j+1)*k])
		}
	}
}

// dot is the (1,1) case of MatMul.
func dot[T Number](e *Engine, s Strategy, a, b []T) (T, error) {
	add := func(acc, v T) T { return acc + v }
	switch s {
	case Sequential:
		var sum T
		for i := range a {
			sum += a[i] * b[i]
		}
		return sum, nil
	case SIMD:
		return simd.Dot(e.kernel, a, b), nil
	case Parallel:
		return parallel.Reduce(e.cfg, len(a), 0, func(r parallel.Range) T {
			var sum T
			for i := r.Lo; i < r.Hi; i++ {
				sum += a[i] * b[i]
			}
			return sum
		}, add)
	default:
		return parallel.Reduce(e.cfg, len(a), 0, func(r parallel.Range) T {
			return simd.Dot(e.kernel, a[r.Lo:r.Hi], b[r.Lo:r.Hi])
		}, add)
	}
}

// transposeData returns the cols×rows transpose of a row-major rows×cols
// buffer.
func transposeData[T Number](src []T, rows, cols int) []T {
	out := make([]T, len(src))
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out[j*rows+i] = src[i*cols+j]
		}
	}
	return out
}
