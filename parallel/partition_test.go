package parallel_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/lvnum/parallel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPartitionCoversRange checks that ranges are contiguous, disjoint, cover
// [0, n) exactly and that the last one absorbs n mod tasks.
func TestPartitionCoversRange(t *testing.T) {
	for _, n := range []int{0, 1, 2, 7, 10, 64, 101, 1000} {
		for _, tasks := range []int{1, 2, 3, 4, 7, 8, 16} {
			t.Run(fmt.Sprintf("n=%d/T=%d", n, tasks), func(t *testing.T) {
				ranges := parallel.Partition(n, tasks)
				require.Len(t, ranges, tasks)

				block := n / tasks
				next := 0
				for i, r := range ranges {
					assert.Equal(t, i, r.Task)
					assert.Equal(t, next, r.Lo, "ranges must be contiguous")
					assert.LessOrEqual(t, r.Lo, r.Hi)
					if i < tasks-1 {
						assert.Equal(t, block, r.Len())
					} else {
						assert.Equal(t, block+n%tasks, r.Len(), "last task absorbs the remainder")
					}
					next = r.Hi
				}
				assert.Equal(t, n, next, "union must be [0, n)")
			})
		}
	}
}

func TestPartitionPanicsOnBadInput(t *testing.T) {
	assert.Panics(t, func() { parallel.Partition(-1, 2) })
	assert.Panics(t, func() { parallel.Partition(4, 0) })
}

// TestSplitIsCapacityLimited ensures a part cannot grow into its neighbour.
func TestSplitIsCapacityLimited(t *testing.T) {
	buf := make([]int, 12)
	parts := parallel.Split(buf, parallel.Partition(4, 2), 3)
	require.Len(t, parts, 2)
	require.Len(t, parts[0], 6)
	require.Equal(t, 6, cap(parts[0]))

	grown := append(parts[0], 99)
	grown[0] = 1
	assert.Equal(t, 0, buf[6], "append on a part must not write the next part")
}

func TestSplitPanicsOutsideBuffer(t *testing.T) {
	assert.Panics(t, func() {
		parallel.Split(make([]int, 3), parallel.Partition(4, 2), 1)
	})
}
