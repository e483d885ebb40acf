// SPDX-License-Identifier: MIT

package parallel

import (
	"errors"
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"

	"github.com/rs/zerolog"
)

// Config controls how many goroutines a call may spawn.
type Config struct {
	Workers int            // upper bound on tasks per call; clamped to [1, rows]
	Logger  zerolog.Logger // receives task panics before they are re-raised
}

// DefaultConfig uses one task per logical CPU and a no-op logger.
func DefaultConfig() Config {
	return Config{
		Workers: runtime.NumCPU(),
		Logger:  zerolog.Nop(),
	}
}

// Tasks returns the number of tasks a call over rows rows will use.
func (c Config) Tasks(rows int) int {
	return clampTasks(c.Workers, rows)
}

// Ranges returns the partitions a call over rows rows will use.
func (c Config) Ranges(rows int) []Range {
	if rows == 0 {
		return nil
	}
	return Partition(rows, c.Tasks(rows))
}

// Do runs fn once per partition of [0, rows) on its own goroutine and waits
// for all of them. Task errors are returned joined; a task panic is re-raised
// as *PanicError on the calling goroutine after every task has finished.
func Do(cfg Config, rows int, fn func(r Range) error) error {
	ranges := cfg.Ranges(rows)
	switch len(ranges) {
	case 0:
		return nil
	case 1:
		// single partition: no goroutine, but the same failure contract
		return runTask(cfg, ranges[0], fn)
	}

	var (
		wg     sync.WaitGroup
		errs   = make([]error, len(ranges)) // slot per task, written by its owner only
		panics = make([]*PanicError, len(ranges))
	)
	wg.Add(len(ranges))
	for i, r := range ranges {
		go func() {
			defer wg.Done()
			defer func() {
				if v := recover(); v != nil {
					if p, ok := v.(*PanicError); ok {
						panics[i] = p // already wrapped by a nested Do
						return
					}
					panics[i] = &PanicError{Range: r, Value: v, Stack: debug.Stack()}
				}
			}()
			errs[i] = fn(r)
		}()
	}
	wg.Wait()

	for _, p := range panics {
		if p != nil {
			cfg.Logger.Error().Str("range", p.Range.String()).Interface("panic", p.Value).Msg("parallel task panicked")
			panic(p)
		}
	}

	return errors.Join(errs...)
}

// runTask executes a single partition inline, converting a panic into
// *PanicError so callers observe the same value regardless of task count.
func runTask(cfg Config, r Range, fn func(r Range) error) (err error) {
	defer func() {
		if v := recover(); v != nil {
			if p, ok := v.(*PanicError); ok {
				panic(p) // already wrapped by a nested Do
			}
			p := &PanicError{Range: r, Value: v, Stack: debug.Stack()}
			cfg.Logger.Error().Str("range", r.String()).Interface("panic", v).Msg("parallel task panicked")
			panic(p)
		}
	}()

	return fn(r)
}

// Run partitions the rows of out (each row spans stride elements) and hands
// every task its own disjoint sub-slice of out.
//
// Run panics if len(out) != rows*stride.
func Run[T any](cfg Config, out []T, rows, stride int, fn func(r Range, dst []T) error) error {
	if rows*stride != len(out) {
		panic(fmt.Sprintf("parallel: Run rows=%d stride=%d does not cover buffer of length %d", rows, stride, len(out)))
	}

	ranges := cfg.Ranges(rows)
	parts := Split(out, ranges, stride)

	return Do(cfg, rows, func(r Range) error {
		return fn(r, parts[r.Task])
	})
}

// Reduce folds [0, n) in parallel: each task computes a partial with fn over
// its range, and the partials are combined in task order starting from zero.
// The result is deterministic for a fixed worker count; changing the worker
// count changes the grouping and may change floating point rounding.
func Reduce[R any](cfg Config, n int, zero R, fn func(r Range) R, combine func(acc, v R) R) (R, error) {
	partials := make([]R, len(cfg.Ranges(n)))
	err := Do(cfg, n, func(r Range) error {
		partials[r.Task] = fn(r) // each task owns exactly one slot
		return nil
	})
	if err != nil {
		return zero, err
	}

	acc := zero
	for _, p := range partials {
		acc = combine(acc, p)
	}

	return acc, nil
}
