// SPDX-License-Identifier: MIT

package tensor

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvnum/parallel"
	"github.com/katalvlaran/lvnum/simd"
)

// Trace returns the sum of the main diagonal of a square tensor.
//
// Errors: ErrNilTensor, ErrNotSquareMatrix.
func (t *Tensor[T]) Trace(s Strategy) (T, error) {
	var zero T
	if err := ValidateSquare(t); err != nil {
		return zero, tensorErrorf("Trace", err)
	}
	s, err := t.resolve(s)
	if err != nil {
		return zero, tensorErrorf("Trace", err)
	}

	n := t.shape[0]
	diag := func(lo, hi int) []T {
		out := make([]T, 0, hi-lo)
		for i := lo; i < hi; i++ {
			out = append(out, t.data[i*n+i])
		}
		return out
	}
	fold := func(lo, hi int) T {
		var sum T
		for i := lo; i < hi; i++ {
			sum += t.data[i*n+i]
		}
		return sum
	}
	add := func(acc, v T) T { return acc + v }

	var tr T
	switch s {
	case Sequential:
		tr = fold(0, n)
	case SIMD:
		tr = simd.Sum(t.engine.kernel, diag(0, n))
	case Parallel:
		tr, err = parallel.Reduce(t.engine.cfg, n, zero, func(r parallel.Range) T { return fold(r.Lo, r.Hi) }, add)
	default:
		tr, err = parallel.Reduce(t.engine.cfg, n, zero, func(r parallel.Range) T {
			return simd.Sum(t.engine.kernel, diag(r.Lo, r.Hi))
		}, add)
	}
	if err != nil {
		return zero, tensorErrorf("Trace", err)
	}
	return tr, nil
}

// Determinant returns the determinant of a square tensor as float64.
//
// Implementation:
//   - 1×1: the single element.
//   - 2×2: ad - bc.
//   - n≥3: Gaussian elimination with partial pivoting on a float64 copy. Each
//     row swap negates the sign; an exactly zero pivot means the matrix is
//     singular and the result is 0 (not an error).
//
// Errors: ErrNilTensor, ErrNotSquareMatrix.
// Complexity: O(n³) time, O(n²) memory.
func (t *Tensor[T]) Determinant() (float64, error) {
	if err := ValidateSquare(t); err != nil {
		return 0, tensorErrorf("Determinant", err)
	}
	return determinant(toFloat64(t.data), t.shape[0]), nil
}

// Minor returns the matrix t without row i and column j.
//
// Errors: ErrNilTensor, ErrInvalidDimensions when t is not rank 2 or either
// dimension is 1, ErrIndexOutOfBounds for i or j outside t.
func (t *Tensor[T]) Minor(i, j int) (*Tensor[T], error) {
	if err := ValidateRank2(t); err != nil {
		return nil, tensorErrorf("Minor", err)
	}
	rows, cols := t.shape[0], t.shape[1]
	if rows < 2 || cols < 2 {
		return nil, tensorErrorf("Minor", fmt.Errorf("%w: minor of a %dx%d matrix", ErrInvalidDimensions, rows, cols))
	}
	if err := ValidateIndex(t.shape, i, j); err != nil {
		return nil, tensorErrorf("Minor", err)
	}
	return newTensor(minorData(t.data, rows, cols, i, j), Shape{rows - 1, cols - 1}, t.hint, t.engine), nil
}

// CofactorMatrix returns C with C[i][j] = (-1)^(i+j) · det(Minor(i, j)).
// Parallel strategies split the output rows across tasks; SIMD strategies run
// their scalar counterparts. Integer element kinds are rounded to the nearest
// integer. The cofactor matrix of a 1×1 matrix is [[1]].
//
// Errors: ErrNilTensor, ErrNotSquareMatrix.
// Complexity: O(n⁵) time.
func (t *Tensor[T]) CofactorMatrix(s Strategy) (*Tensor[T], error) {
	if err := ValidateSquare(t); err != nil {
		return nil, tensorErrorf("CofactorMatrix", err)
	}
	s, err := t.resolve(s)
	if err != nil {
		return nil, tensorErrorf("CofactorMatrix", err)
	}

	n := t.shape[0]
	out := t.like(Shape{n, n})
	if n == 1 {
		out.data[0] = 1
		return out, nil
	}

	work := toFloat64(t.data)
	fillRows := func(dst []T, lo, hi int) {
		for i := lo; i < hi; i++ {
			for j := 0; j < n; j++ {
				c := determinant(minorData(work, n, n, i, j), n-1)
				if (i+j)%2 == 1 {
					c = -c
				}
				dst[(i-lo)*n+j] = fromFloat64[T](c)
			}
		}
	}

	if !s.UsesParallel() {
		fillRows(out.data, 0, n)
		return out, nil
	}
	err = parallel.Run(t.engine.cfg, out.data, n, n, func(r parallel.Range, dst []T) error {
		fillRows(dst, r.Lo, r.Hi)
		return nil
	})
	if err != nil {
		return nil, tensorErrorf("CofactorMatrix", err)
	}
	return out, nil
}

// determinant consumes a, a row-major n×n working copy.
func determinant(a []float64, n int) float64 {
	switch n {
	case 1:
		return a[0]
	case 2:
		return a[0]*a[3] - a[1]*a[2]
	}

	det := 1.0
	for col := 0; col < n; col++ {
		// Stage 1: pick the largest magnitude pivot at or below the diagonal.
		pivot, best := col, math.Abs(a[col*n+col])
		for r := col + 1; r < n; r++ {
			if v := math.Abs(a[r*n+col]); v > best {
				pivot, best = r, v
			}
		}
		if best == 0 {
			return 0
		}
		if pivot != col {
			swapRows(a, n, pivot, col)
			det = -det
		}

		// Stage 2: eliminate below the pivot.
		p := a[col*n+col]
		det *= p
		prow := a[col*n : (col+1)*n]
		for r := col + 1; r < n; r++ {
			row := a[r*n : (r+1)*n]
			f := row[col] / p
			if f == 0 {
				continue
			}
			for c := col; c < n; c++ {
				row[c] -= f * prow[c]
			}
		}
	}

	return det
}

func swapRows(a []float64, n, i, j int) {
	ri, rj := a[i*n:(i+1)*n], a[j*n:(j+1)*n]
	for c := range ri {
		ri[c], rj[c] = rj[c], ri[c]
	}
}

// minorData copies src (rows×cols) without row i and column j.
func minorData[E any](src []E, rows, cols, i, j int) []E {
	out := make([]E, 0, (rows-1)*(cols-1))
	for r := 0; r < rows; r++ {
		if r == i {
			continue
		}
		row := src[r*cols : (r+1)*cols]
		out = append(out, row[:j]...)
		out = append(out, row[j+1:]...)
	}
	return out
}

func toFloat64[T Number](src []T) []float64 {
	out := make([]float64, len(src))
	for i, v := range src {
		out[i] = float64(v)
	}
	return out
}

// fromFloat64 converts v to T, rounding to nearest for integer kinds.
func fromFloat64[T Number](v float64) T {
	one := T(1)
	if one/(one+one) == 0 { // integer kind
		return T(math.Round(v))
	}
	return T(v)
}
