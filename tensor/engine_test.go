package tensor_test

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/cwbudde/algo-vecmath/cpu"
	"github.com/katalvlaran/lvnum/parallel"
	"github.com/katalvlaran/lvnum/simd"
	"github.com/katalvlaran/lvnum/tensor"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStrategy(t *testing.T) {
	tests := map[string]tensor.Strategy{
		"auto":          tensor.Auto,
		"seq":           tensor.Sequential,
		" Sequential ":  tensor.Sequential,
		"par":           tensor.Parallel,
		"PARALLEL":      tensor.Parallel,
		"simd":          tensor.SIMD,
		"parsimd":       tensor.ParallelSIMD,
		"parallel-simd": tensor.ParallelSIMD,
		"parallel_simd": tensor.ParallelSIMD,
	}
	for in, want := range tests {
		got, err := tensor.ParseStrategy(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := tensor.ParseStrategy("gpu")
	require.ErrorIs(t, err, tensor.ErrInvalidOperation)

	for _, s := range tensor.Strategies() {
		back, err := tensor.ParseStrategy(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, back)
	}
}

func TestStrategyPredicates(t *testing.T) {
	assert.Equal(t, []tensor.Strategy{tensor.Sequential, tensor.Parallel, tensor.SIMD, tensor.ParallelSIMD}, tensor.Strategies())
	assert.Equal(t, tensor.Parallel, tensor.FromConcurrent(true))
	assert.Equal(t, tensor.Sequential, tensor.FromConcurrent(false))
	assert.True(t, tensor.ParallelSIMD.UsesSIMD())
	assert.True(t, tensor.ParallelSIMD.UsesParallel())
	assert.False(t, tensor.SIMD.UsesParallel())
	assert.False(t, tensor.Parallel.UsesSIMD())
	assert.Equal(t, "Strategy(9)", tensor.Strategy(9).String())
}

func TestOptionsPanicOnNonsense(t *testing.T) {
	assert.Panics(t, func() { tensor.WithWorkers(0) })
	assert.Panics(t, func() { tensor.WithEpsilon(-1) })
	assert.Panics(t, func() { tensor.WithEpsilon(math.NaN()) })
	assert.Panics(t, func() { tensor.WithEpsilon(math.Inf(1)) })
	assert.Panics(t, func() { tensor.WithKernel(nil) })
	assert.Panics(t, func() { tensor.WithEngine(nil) })
	assert.Panics(t, func() { tensor.WithStrategy(tensor.Auto) })
	assert.Panics(t, func() { tensor.WithStrategy(tensor.Strategy(17)) })
}

func TestEngineConfiguration(t *testing.T) {
	k := simd.Probe(simd.WithFeatures(cpu.Features{HasSSE2: true}))
	e := tensor.NewEngine(tensor.WithWorkers(2), tensor.WithEpsilon(1e-3), tensor.WithKernel(k))
	assert.Equal(t, 2, e.Workers())
	assert.Equal(t, 1e-3, e.Epsilon())
	assert.Same(t, k, e.Kernel())

	forced := tensor.NewEngine(tensor.WithKernel(k), tensor.WithoutSIMD())
	info := forced.SIMDInfo()
	assert.Equal(t, 1, info.LaneWidth)
	assert.False(t, info.HasMid)
	assert.False(t, info.HasWide)
	assert.Equal(t, "scalar", info.Level)

	assert.Same(t, tensor.DefaultEngine(), tensor.DefaultEngine())
	assert.GreaterOrEqual(t, tensor.DefaultEngine().Workers(), 1)
}

func TestSIMDInfoReportsKernel(t *testing.T) {
	t.Setenv(simd.EnvNoSIMD, "")
	k := simd.Probe(simd.WithFeatures(cpu.Features{HasSSE2: true}))
	info := tensor.NewEngine(tensor.WithKernel(k)).SIMDInfo()
	assert.Equal(t, 4, info.LaneWidth)
	assert.Equal(t, "128-bit", info.Level)
}

func TestEngineLogsSelection(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	tensor.NewEngine(tensor.WithLogger(logger), tensor.WithoutSIMD())

	out := buf.String()
	assert.Contains(t, out, "simd kernel selected")
	assert.Contains(t, out, "tensor engine ready")
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

// TestTaskPanicReachesCaller makes sure a panic inside a parallel task is
// re-raised on the calling goroutine after the join.
func TestTaskPanicReachesCaller(t *testing.T) {
	var buf bytes.Buffer
	e := tensor.NewEngine(tensor.WithWorkers(4), tensor.WithLogger(zerolog.New(&buf)))
	m := mustFlat(t, 4, 4, make([]float64, 16), tensor.WithEngine(e))

	defer func() {
		v := recover()
		require.NotNil(t, v)
		pe, ok := v.(*parallel.PanicError)
		require.True(t, ok, "got %T", v)
		assert.Equal(t, "boom", pe.Value)
		assert.Contains(t, buf.String(), "parallel task panicked")
	}()

	_, _ = m.Map(func(float64) float64 { panic("boom") }, tensor.Parallel)
	t.Fatal("unreachable")
}
