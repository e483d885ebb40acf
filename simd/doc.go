// Package simd provides lane-chunked numeric kernels selected by a one-time
// CPU capability probe.
//
// Probe inspects the processor once and freezes the result into an immutable
// *Kernel:
//
//	LevelWide   512-bit vectors (AVX-512F)      16 float32 lanes
//	LevelMid    256-bit vectors (AVX2)           8 float32 lanes
//	LevelNarrow 128-bit vectors (SSE2, NEON)     4 float32 lanes
//	LevelNone   no vector unit, or forced off    scalar loops only
//
// Every kernel processes len - len%lanes elements in lane-sized chunks and the
// remaining len%lanes elements with a scalar tail loop. With LevelNone every
// kernel is a plain scalar loop; results never depend on which path ran,
// except for the summation order of Dot and Sum.
//
// float64 slices take the algo-vecmath block kernels (Add, Sub, Mul, Scale)
// whenever a vector level was detected.
//
// Setting LVNUM_NO_SIMD=1 in the environment forces LevelNone, which is useful
// to compare results against the scalar path.
package simd
