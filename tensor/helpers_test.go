package tensor_test

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-vecmath/cpu"
	"github.com/katalvlaran/lvnum/simd"
	"github.com/katalvlaran/lvnum/tensor"
	"github.com/stretchr/testify/require"
)

// engines returns engines with uneven worker counts and different kernels so
// that partition remainders and lane tails are exercised.
func engines(t testing.TB) map[string]*tensor.Engine {
	t.Helper()
	narrow := simd.Probe(simd.WithFeatures(cpu.Features{HasSSE2: true}))
	mid := simd.Probe(simd.WithFeatures(cpu.Features{HasSSE2: true, HasAVX2: true}))
	return map[string]*tensor.Engine{
		"host/3":   tensor.NewEngine(tensor.WithWorkers(3)),
		"narrow/5": tensor.NewEngine(tensor.WithWorkers(5), tensor.WithKernel(narrow)),
		"mid/7":    tensor.NewEngine(tensor.WithWorkers(7), tensor.WithKernel(mid)),
		"scalar/4": tensor.NewEngine(tensor.WithWorkers(4), tensor.WithoutSIMD()),
	}
}

func mustFlat[T tensor.Number](t testing.TB, rows, cols int, data []T, opts ...tensor.Option) *tensor.Tensor[T] {
	t.Helper()
	m, err := tensor.FromFlat(rows, cols, data, opts...)
	require.NoError(t, err)
	return m
}

func mustNew[T tensor.Number](t testing.TB, data []T, shape []int, opts ...tensor.Option) *tensor.Tensor[T] {
	t.Helper()
	m, err := tensor.New(data, shape, opts...)
	require.NoError(t, err)
	return m
}

func mustRandom(t testing.TB, rows, cols int, seed uint64, opts ...tensor.Option) *tensor.Tensor[float64] {
	t.Helper()
	m, err := tensor.RandomWithSeed[float64]([]int{rows, cols}, seed, -1, 1, opts...)
	require.NoError(t, err)
	return m
}

// requireClose compares element by element with a tolerance relative to the
// magnitude of the expected value.
func requireClose(t testing.TB, want, got []float64, rel float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		tol := rel * math.Max(1, math.Abs(want[i]))
		require.InDelta(t, want[i], got[i], tol, "element %d", i)
	}
}
