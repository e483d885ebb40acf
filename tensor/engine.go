// SPDX-License-Identifier: MIT

package tensor

import (
	"sync"

	"github.com/katalvlaran/lvnum/parallel"
	"github.com/katalvlaran/lvnum/simd"
	"github.com/rs/zerolog"
)

// Engine bundles the probed SIMD kernel, the parallel configuration and the
// numeric tolerance shared by every tensor bound to it. An Engine is
// immutable and safe for concurrent use.
type Engine struct {
	cfg    parallel.Config
	kernel *simd.Kernel
	eps    float64
	logger zerolog.Logger
}

// NewEngine builds an engine. Without WithKernel it probes the CPU once.
func NewEngine(opts ...EngineOption) *Engine {
	def := parallel.DefaultConfig()
	o := engineOptions{
		workers: def.Workers,
		eps:     DefaultEpsilon,
		logger:  zerolog.Nop(),
	}
	for _, set := range opts {
		set(&o)
	}

	k := o.kernel
	switch {
	case o.noSIMD:
		k = simd.Probe(simd.WithForceGeneric(), simd.WithLogger(o.logger))
	case k == nil:
		k = simd.Probe(simd.WithLogger(o.logger))
	}

	e := &Engine{
		cfg:    parallel.Config{Workers: o.workers, Logger: o.logger},
		kernel: k,
		eps:    o.eps,
		logger: o.logger,
	}
	e.logger.Debug().
		Int("workers", o.workers).
		Float64("eps", o.eps).
		Stringer("kernel", k).
		Msg("tensor engine ready")

	return e
}

var defaultEngine = sync.OnceValue(func() *Engine { return NewEngine() })

// DefaultEngine returns the process-wide engine, probing the CPU on first use.
func DefaultEngine() *Engine { return defaultEngine() }

// Workers returns the number of goroutines parallel strategies use.
func (e *Engine) Workers() int { return e.cfg.Workers }

// Epsilon returns the tolerance used by Tensor.Equal.
func (e *Engine) Epsilon() float64 { return e.eps }

// Kernel returns the probed SIMD kernel.
func (e *Engine) Kernel() *simd.Kernel { return e.kernel }

// SIMDInfo summarizes the vector capabilities the engine detected.
type SIMDInfo struct {
	LaneWidth int    // float32 lanes per vector, 1 when scalar
	HasMid    bool   // 256-bit class (AVX2)
	HasWide   bool   // 512-bit class (AVX-512F)
	Level     string // human-readable level name
}

// SIMDInfo reports the lane width and capability flags of the kernel.
func (e *Engine) SIMDInfo() SIMDInfo {
	return SIMDInfo{
		LaneWidth: e.kernel.LaneWidth(),
		HasMid:    e.kernel.HasMid(),
		HasWide:   e.kernel.HasWide(),
		Level:     e.kernel.Level().String(),
	}
}

// ---------- Strategy execution ----------

// binaryKernel is a simd kernel of the form dst = a op b.
type binaryKernel[T Number] func(k *simd.Kernel, dst, a, b []T)

// unaryKernel is a simd kernel of the form dst = f(src).
type unaryKernel[T Number] func(k *simd.Kernel, dst, src []T)

// runBinary fills dst[i] = op(a[i], b[i]) using strategy s. All slices have
// equal length and dst is freshly allocated.
func runBinary[T Number](e *Engine, s Strategy, dst, a, b []T, op func(x, y T) T, vec binaryKernel[T]) error {
	switch s {
	case Sequential:
		for i := range dst {
			dst[i] = op(a[i], b[i])
		}
		return nil
	case SIMD:
		vec(e.kernel, dst, a, b)
		return nil
	case Parallel:
		return parallel.Run(e.cfg, dst, len(dst), 1, func(r parallel.Range, part []T) error {
			ap, bp := a[r.Lo:r.Hi], b[r.Lo:r.Hi]
			for i := range part {
				part[i] = op(ap[i], bp[i])
			}
			return nil
		})
	default: // ParallelSIMD
		return parallel.Run(e.cfg, dst, len(dst), 1, func(r parallel.Range, part []T) error {
			vec(e.kernel, part, a[r.Lo:r.Hi], b[r.Lo:r.Hi])
			return nil
		})
	}
}

// runUnary fills dst[i] = op(src[i]) using strategy s.
func runUnary[T Number](e *Engine, s Strategy, dst, src []T, op func(x T) T, vec unaryKernel[T]) error {
	switch s {
	case Sequential:
		for i := range dst {
			dst[i] = op(src[i])
		}
		return nil
	case SIMD:
		vec(e.kernel, dst, src)
		return nil
	case Parallel:
		return parallel.Run(e.cfg, dst, len(dst), 1, func(r parallel.Range, part []T) error {
			sp := src[r.Lo:r.Hi]
			for i := range part {
				part[i] = op(sp[i])
			}
			return nil
		})
	default:
		return parallel.Run(e.cfg, dst, len(dst), 1, func(r parallel.Range, part []T) error {
			vec(e.kernel, part, src[r.Lo:r.Hi])
			return nil
		})
	}
}

// runSum folds src with strategy s. Parallel strategies combine per-task
// partials in task order, so the result is deterministic for a fixed worker
// count; a different count may change the least-significant bits.
func runSum[T Number](e *Engine, s Strategy, src []T) (T, error) {
	seq := func(xs []T) T {
		var acc T
		for _, v := range xs {
			acc += v
		}
		return acc
	}
	add := func(acc, v T) T { return acc + v }

	switch s {
	case Sequential:
		return seq(src), nil
	case SIMD:
		return simd.Sum(e.kernel, src), nil
	case Parallel:
		return parallel.Reduce(e.cfg, len(src), 0, func(r parallel.Range) T {
			return seq(src[r.Lo:r.Hi])
		}, add)
	default:
		return parallel.Reduce(e.cfg, len(src), 0, func(r parallel.Range) T {
			return simd.Sum(e.kernel, src[r.Lo:r.Hi])
		}, add)
	}
}
