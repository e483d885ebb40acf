package tensor

// Sum returns the sum of all elements.
//
// Summation order depends on the strategy: Sequential folds left to right,
// Parallel folds each partition and combines the partials in task order, SIMD
// accumulates per lane. Results are deterministic for a fixed strategy and
// worker count; changing the worker count may change the least-significant
// bits of a floating point sum.
func (t *Tensor[T]) Sum(s Strategy) (T, error) {
	var zero T
	if err := ValidateNotNil(t); err != nil {
		return zero, tensorErrorf("Sum", err)
	}
	s, err := t.resolve(s)
	if err != nil {
		return zero, tensorErrorf("Sum", err)
	}

	sum, err := runSum(t.engine, s, t.data)
	if err != nil {
		return zero, tensorErrorf("Sum", err)
	}
	return sum, nil
}

// Mean returns the arithmetic mean as float64.
func (t *Tensor[T]) Mean(s Strategy) (float64, error) {
	sum, err := t.Sum(s)
	if err != nil {
		return 0, tensorErrorf("Mean", err)
	}
	return float64(sum) / float64(len(t.data)), nil
}
