package parallel_test

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/katalvlaran/lvnum/parallel"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cfgWith(workers int) parallel.Config {
	return parallel.Config{Workers: workers, Logger: zerolog.Nop()}
}

func TestDefaultConfig(t *testing.T) {
	cfg := parallel.DefaultConfig()
	assert.GreaterOrEqual(t, cfg.Workers, 1)
}

func TestTasksClamped(t *testing.T) {
	cfg := cfgWith(8)
	assert.Equal(t, 3, cfg.Tasks(3))
	assert.Equal(t, 8, cfg.Tasks(100))
	assert.Equal(t, 1, cfgWith(0).Tasks(100))
	assert.Empty(t, cfg.Ranges(0))
}

// TestRunWritesEveryRow fills a row-major buffer through disjoint parts.
func TestRunWritesEveryRow(t *testing.T) {
	const rows, cols = 37, 5
	out := make([]int, rows*cols)

	err := parallel.Run(cfgWith(4), out, rows, cols, func(r parallel.Range, dst []int) error {
		assert.Len(t, dst, r.Len()*cols)
		for i := r.Lo; i < r.Hi; i++ {
			for j := 0; j < cols; j++ {
				dst[(i-r.Lo)*cols+j] = i*cols + j
			}
		}
		return nil
	})
	require.NoError(t, err)

	for i, v := range out {
		require.Equal(t, i, v)
	}
}

func TestRunPanicsOnBadCoverage(t *testing.T) {
	assert.Panics(t, func() {
		_ = parallel.Run(cfgWith(2), make([]int, 5), 2, 2, func(parallel.Range, []int) error { return nil })
	})
}

// TestDoJoinsAllErrors checks that every failing task is reported and that
// all tasks ran before the call returned.
func TestDoJoinsAllErrors(t *testing.T) {
	errA := errors.New("task a")
	errB := errors.New("task b")
	var ran atomic.Int32

	err := parallel.Do(cfgWith(4), 8, func(r parallel.Range) error {
		ran.Add(1)
		switch r.Task {
		case 1:
			return errA
		case 3:
			return errB
		}
		return nil
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
	assert.Equal(t, int32(4), ran.Load())
}

// TestDoReraisesPanic makes sure a task panic reaches the caller after join.
func TestDoReraisesPanic(t *testing.T) {
	for _, workers := range []int{1, 4} {
		var ran atomic.Int32
		func() {
			defer func() {
				v := recover()
				require.NotNil(t, v, "panic must propagate")
				pe, ok := v.(*parallel.PanicError)
				require.True(t, ok, "want *PanicError, got %T", v)
				assert.Equal(t, "boom", pe.Value)
				assert.NotEmpty(t, pe.Stack)
				assert.Contains(t, pe.Error(), "boom")
			}()
			_ = parallel.Do(cfgWith(workers), 8, func(r parallel.Range) error {
				ran.Add(1)
				if r.Task == workers-1 {
					panic("boom")
				}
				return nil
			})
		}()
		assert.Equal(t, int32(workers), ran.Load(), "all tasks are joined before re-raising")
	}
}

func TestNestedDoKeepsInnerPanic(t *testing.T) {
	for _, workers := range []int{1, 4} {
		func() {
			defer func() {
				pe, ok := recover().(*parallel.PanicError)
				require.True(t, ok, "want *PanicError")
				assert.Equal(t, "boom", pe.Value, "inner panic is not wrapped twice")
				assert.Equal(t, 1, pe.Range.Task, "range of the inner task")
			}()
			_ = parallel.Do(cfgWith(workers), 8, func(r parallel.Range) error {
				if r.Task != 0 {
					return nil
				}
				return parallel.Do(cfgWith(2), 4, func(inner parallel.Range) error {
					if inner.Task == 1 {
						panic("boom")
					}
					return nil
				})
			})
		}()
	}
}

func TestPanicErrorUnwrap(t *testing.T) {
	inner := errors.New("inner")
	pe := &parallel.PanicError{Value: inner}
	assert.ErrorIs(t, pe, inner)
	assert.Nil(t, (&parallel.PanicError{Value: 42}).Unwrap())
}

func TestReduceSumsInTaskOrder(t *testing.T) {
	data := make([]int, 1001)
	for i := range data {
		data[i] = i
	}
	for _, workers := range []int{1, 3, 8} {
		got, err := parallel.Reduce(cfgWith(workers), len(data), 0,
			func(r parallel.Range) int {
				s := 0
				for _, v := range data[r.Lo:r.Hi] {
					s += v
				}
				return s
			},
			func(acc, v int) int { return acc + v },
		)
		require.NoError(t, err)
		assert.Equal(t, 1000*1001/2, got)
	}
}

func TestReduceEmpty(t *testing.T) {
	got, err := parallel.Reduce(cfgWith(4), 0, 7,
		func(parallel.Range) int { return 100 },
		func(acc, v int) int { return acc + v },
	)
	require.NoError(t, err)
	assert.Equal(t, 7, got)
}
