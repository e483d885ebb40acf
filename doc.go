// Package lvnum is a dense numeric array library with interchangeable
// execution strategies: every elementwise operation, product and reduction
// can run sequentially, split across goroutines, vectorised in CPU lanes, or
// both split and vectorised, and all four produce the same answer.
//
// What is inside?
//
//	tensor/      generic Tensor[T] (rank 1 and 2 fully supported), factories,
//	             elementwise ops, MatMul/MatVec/Dot, Trace, Determinant,
//	             CofactorMatrix, the Engine and its functional options
//	simd/        CPU feature probe and lane-chunked kernels with scalar tails
//	parallel/    row partitioning and disjoint sub-slice fan-out
//	cmd/lvbench  compares the strategies on your machine
//
// Quick start:
//
//	a, _ := tensor.FromFlat(2, 2, []float64{1, 2, 3, 4})
//	b, _ := tensor.FromFlat(2, 2, []float64{5, 6, 7, 8})
//	c, _ := a.MatMul(b, tensor.ParallelSIMD) // [[19 22] [43 50]]
//
// Passing tensor.Auto uses the strategy hint fixed when the receiver was
// built (tensor.WithStrategy, tensor.WithConcurrent); the default is Parallel.
//
// Set LVNUM_NO_SIMD=1 to force the scalar kernels at probe time.
package lvnum
