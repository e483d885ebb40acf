package tensor_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/lvnum/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestElementwiseStrategiesAgree checks that every strategy produces the
// sequential result bit for bit. Sizes cover lane tails and uneven partitions.
func TestElementwiseStrategiesAgree(t *testing.T) {
	for name, e := range engines(t) {
		for _, dims := range [][2]int{{1, 1}, {3, 5}, {17, 9}, {64, 33}} {
			t.Run(fmt.Sprintf("%s/%dx%d", name, dims[0], dims[1]), func(t *testing.T) {
				a := mustRandom(t, dims[0], dims[1], 1, tensor.WithEngine(e))
				b := mustRandom(t, dims[0], dims[1], 2, tensor.WithEngine(e))
				// keep divisors away from zero
				b, err := b.Map(func(v float64) float64 { return v + 3 }, tensor.Auto)
				require.NoError(t, err)

				ops := map[string]func(s tensor.Strategy) (*tensor.Tensor[float64], error){
					"add":      func(s tensor.Strategy) (*tensor.Tensor[float64], error) { return a.Add(b, s) },
					"sub":      func(s tensor.Strategy) (*tensor.Tensor[float64], error) { return a.Sub(b, s) },
					"hadamard": func(s tensor.Strategy) (*tensor.Tensor[float64], error) { return a.Hadamard(b, s) },
					"divide":   func(s tensor.Strategy) (*tensor.Tensor[float64], error) { return a.Divide(b, s) },
					"scale":    func(s tensor.Strategy) (*tensor.Tensor[float64], error) { return a.Scale(-1.75, s) },
					"negate":   func(s tensor.Strategy) (*tensor.Tensor[float64], error) { return a.Negate(s) },
					"divscal":  func(s tensor.Strategy) (*tensor.Tensor[float64], error) { return a.DivideScalar(4, s) },
				}
				for opName, op := range ops {
					want, err := op(tensor.Sequential)
					require.NoError(t, err)
					for _, s := range tensor.Strategies()[1:] {
						got, err := op(s)
						require.NoError(t, err, "%s/%s", opName, s)
						require.Equal(t, want.Data(), got.Data(), "%s/%s", opName, s)
						require.Equal(t, want.Shape(), got.Shape())
					}
				}
			})
		}
	}
}

func TestElementwiseIntegers(t *testing.T) {
	a := mustFlat(t, 2, 3, []int32{1, 2, 3, 4, 5, 6})
	b := mustFlat(t, 2, 3, []int32{6, 5, 4, 3, 2, 1})

	for _, s := range tensor.Strategies() {
		sum, err := a.Add(b, s)
		require.NoError(t, err)
		assert.Equal(t, []int32{7, 7, 7, 7, 7, 7}, sum.Data(), s.String())

		diff, err := a.Sub(b, s)
		require.NoError(t, err)
		assert.Equal(t, []int32{-5, -3, -1, 1, 3, 5}, diff.Data(), s.String())

		prod, err := a.Mul(b, s)
		require.NoError(t, err)
		assert.Equal(t, []int32{6, 10, 12, 12, 10, 6}, prod.Data(), s.String())

		quo, err := b.Divide(a, s)
		require.NoError(t, err)
		assert.Equal(t, []int32{6, 2, 1, 0, 0, 0}, quo.Data(), s.String())

		neg, err := a.Negate(s)
		require.NoError(t, err)
		assert.Equal(t, []int32{-1, -2, -3, -4, -5, -6}, neg.Data(), s.String())

		half, err := a.DivideScalar(2, s)
		require.NoError(t, err)
		assert.Equal(t, []int32{0, 1, 1, 2, 2, 3}, half.Data(), s.String())
	}
}

func TestNegateUnsignedWraps(t *testing.T) {
	a := mustNew(t, []uint8{0, 1, 255}, []int{3})
	for _, s := range tensor.Strategies() {
		neg, err := a.Negate(s)
		require.NoError(t, err)
		assert.Equal(t, []uint8{0, 255, 1}, neg.Data(), s.String())
	}
}

// TestShapeMismatchLeavesOperandsUntouched covers both elementwise and
// product rejections.
func TestShapeMismatchLeavesOperandsUntouched(t *testing.T) {
	a := mustFlat(t, 2, 2, []float64{1, 2, 3, 4})
	b := mustFlat(t, 2, 3, []float64{1, 2, 3, 4, 5, 6})
	aBefore, bBefore := a.Data(), b.Data()

	for _, s := range tensor.Strategies() {
		out, err := a.Add(b, s)
		require.ErrorIs(t, err, tensor.ErrShapeMismatch)
		require.ErrorIs(t, err, tensor.ErrIncompatibleDimensions)
		assert.Nil(t, out)

		out, err = b.MatMul(a, s)
		require.ErrorIs(t, err, tensor.ErrDimensionMismatch)
		assert.Nil(t, out)
	}
	assert.Equal(t, aBefore, a.Data())
	assert.Equal(t, bBefore, b.Data())
}

func TestDivisionByZero(t *testing.T) {
	a := mustFlat(t, 2, 2, []float64{1, 2, 3, 4})
	z := mustFlat(t, 2, 2, []float64{1, 0, 1, 1})
	ints := mustFlat(t, 1, 2, []int{4, 8})

	for _, s := range tensor.Strategies() {
		out, err := a.DivideScalar(0, s)
		require.ErrorIs(t, err, tensor.ErrDivisionByZero)
		assert.Nil(t, out)

		out, err = a.Divide(z, s)
		require.ErrorIs(t, err, tensor.ErrDivisionByZero)
		assert.Nil(t, out)

		iout, err := ints.DivideScalar(0, s)
		require.ErrorIs(t, err, tensor.ErrDivisionByZero)
		assert.Nil(t, iout)
	}
}

func TestInvalidStrategy(t *testing.T) {
	a := mustFlat(t, 1, 2, []float64{1, 2})
	_, err := a.Add(a, tensor.Strategy(42))
	require.ErrorIs(t, err, tensor.ErrInvalidOperation)
	_, err = a.Sum(tensor.Strategy(-1))
	require.ErrorIs(t, err, tensor.ErrInvalidOperation)
}

func TestAutoUsesHint(t *testing.T) {
	seq := mustFlat(t, 2, 2, []float64{1, 2, 3, 4}, tensor.WithConcurrent(false))
	par := mustFlat(t, 2, 2, []float64{1, 2, 3, 4})
	simd := mustFlat(t, 2, 2, []float64{1, 2, 3, 4}, tensor.WithStrategy(tensor.SIMD))

	assert.Equal(t, tensor.Sequential, seq.Strategy())
	assert.Equal(t, tensor.DefaultStrategy, par.Strategy())
	assert.Equal(t, tensor.SIMD, simd.Strategy())

	for _, m := range []*tensor.Tensor[float64]{seq, par, simd} {
		out, err := m.Scale(2, tensor.Auto)
		require.NoError(t, err)
		assert.Equal(t, []float64{2, 4, 6, 8}, out.Data())
		assert.Equal(t, m.Strategy(), out.Strategy(), "results inherit the hint")
		assert.Same(t, m.Engine(), out.Engine())
	}
}

func TestSumAndMean(t *testing.T) {
	for name, e := range engines(t) {
		m := mustRandom(t, 31, 17, 99, tensor.WithEngine(e))
		want, err := m.Sum(tensor.Sequential)
		require.NoError(t, err)
		for _, s := range tensor.Strategies() {
			got, err := m.Sum(s)
			require.NoError(t, err)
			assert.InDelta(t, want, got, 1e-9, "%s/%s", name, s)
		}

		// a fixed worker count gives a reproducible parallel sum
		p1, _ := m.Sum(tensor.Parallel)
		p2, _ := m.Sum(tensor.Parallel)
		assert.Equal(t, p1, p2)
	}

	ints := mustNew(t, []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, []int{10})
	for _, s := range tensor.Strategies() {
		sum, err := ints.Sum(s)
		require.NoError(t, err)
		assert.Equal(t, int64(55), sum)
		mean, err := ints.Mean(s)
		require.NoError(t, err)
		assert.Equal(t, 5.5, mean)
	}
}

func TestMap(t *testing.T) {
	m := mustFlat(t, 1, 3, []int{1, 2, 3})
	for _, s := range tensor.Strategies() {
		sq, err := m.Map(func(v int) int { return v * v }, s)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 4, 9}, sq.Data(), s.String())
	}
	assert.Equal(t, []int{1, 2, 3}, m.Data())
}
