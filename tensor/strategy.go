package tensor

import (
	"fmt"
	"strings"
)

// Strategy selects the kernel family an operation runs on. All concrete
// strategies produce the same result for a valid input, up to the summation
// order of reductions and matrix products.
type Strategy int

const (
	// Auto defers to the strategy hint stored in the tensor.
	Auto Strategy = iota

	// Sequential runs a single scalar pass on the calling goroutine.
	Sequential

	// Parallel partitions the output across goroutines, one scalar pass each.
	Parallel

	// SIMD runs lane-chunked kernels on the calling goroutine.
	SIMD

	// ParallelSIMD partitions the output and runs lane-chunked kernels per part.
	ParallelSIMD
)

// String returns the canonical lowercase name.
func (s Strategy) String() string {
	switch s {
	case Auto:
		return "auto"
	case Sequential:
		return "sequential"
	case Parallel:
		return "parallel"
	case SIMD:
		return "simd"
	case ParallelSIMD:
		return "parallel-simd"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// UsesSIMD reports whether s runs lane-chunked kernels.
func (s Strategy) UsesSIMD() bool { return s == SIMD || s == ParallelSIMD }

// UsesParallel reports whether s fans out over goroutines.
func (s Strategy) UsesParallel() bool { return s == Parallel || s == ParallelSIMD }

func (s Strategy) valid() bool { return s >= Auto && s <= ParallelSIMD }

// Strategies returns the four concrete strategies in declaration order.
func Strategies() []Strategy {
	return []Strategy{Sequential, Parallel, SIMD, ParallelSIMD}
}

// FromConcurrent maps a boolean concurrency flag onto Parallel or Sequential.
func FromConcurrent(concurrent bool) Strategy {
	if concurrent {
		return Parallel
	}
	return Sequential
}

// ParseStrategy accepts a canonical name or one of the short forms
// seq, par and parsimd. Matching ignores case and surrounding spaces.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "auto":
		return Auto, nil
	case "sequential", "seq":
		return Sequential, nil
	case "parallel", "par":
		return Parallel, nil
	case "simd":
		return SIMD, nil
	case "parallel-simd", "parallel_simd", "parsimd":
		return ParallelSIMD, nil
	}
	return Auto, fmt.Errorf("ParseStrategy(%q): %w", name, ErrInvalidOperation)
}
