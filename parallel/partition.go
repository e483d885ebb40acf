// SPDX-License-Identifier: MIT

package parallel

import "fmt"

// Range is the half-open interval [Lo, Hi) of rows owned by one task.
type Range struct {
	Task int // zero-based task index
	Lo   int // first row (inclusive)
	Hi   int // last row (exclusive)
}

// Len returns the number of rows in the range.
func (r Range) Len() int { return r.Hi - r.Lo }

// String implements fmt.Stringer.
func (r Range) String() string {
	return fmt.Sprintf("task %d [%d,%d)", r.Task, r.Lo, r.Hi)
}

// Partition splits n rows across tasks contiguous ranges.
// Every task but the last receives n/tasks rows; the last one receives the
// rest, including the n mod tasks remainder. When tasks > n the leading
// ranges are empty.
//
// Partition panics if n < 0 or tasks < 1 (programmer error).
// Complexity: O(tasks).
func Partition(n, tasks int) []Range {
	if n < 0 {
		panic(fmt.Sprintf("parallel: Partition n=%d must be >= 0", n))
	}
	if tasks < 1 {
		panic(fmt.Sprintf("parallel: Partition tasks=%d must be >= 1", tasks))
	}

	block := n / tasks
	ranges := make([]Range, tasks)
	for i := 0; i < tasks; i++ {
		lo := i * block
		hi := lo + block
		if i == tasks-1 {
			hi = n // last task absorbs the remainder
		}
		ranges[i] = Range{Task: i, Lo: lo, Hi: hi}
	}

	return ranges
}

// Split cuts buf into one sub-slice per range, where each row spans stride
// elements. Sub-slices are capacity-limited so they cannot overlap.
//
// Split panics if the ranges do not fit into buf.
func Split[T any](buf []T, ranges []Range, stride int) [][]T {
	parts := make([][]T, len(ranges))
	for i, r := range ranges {
		lo, hi := r.Lo*stride, r.Hi*stride
		if lo < 0 || hi > len(buf) || lo > hi {
			panic(fmt.Sprintf("parallel: %s (stride %d) outside buffer of length %d", r, stride, len(buf)))
		}
		parts[i] = buf[lo:hi:hi]
	}

	return parts
}

// clampTasks keeps the task count within [1, rows] so no goroutine is spawned
// for an empty range.
func clampTasks(workers, rows int) int {
	return max(1, min(workers, rows))
}
