// SPDX-License-Identifier: MIT

// Package tensor: functional configuration for engines and tensors.
//
// Two option families exist:
//   - EngineOption configures an *Engine (workers, tolerance, logger, kernel).
//   - Option configures a single tensor at construction (engine, strategy hint).
//
// Both follow the same contract: WithX constructors panic only on nonsensical
// values (programmer error), setters apply in order and the last one wins.
// Nothing here mutates a tensor after it was built; the strategy hint is fixed
// at construction and every operation also takes an explicit Strategy.
package tensor

import (
	"math"

	"github.com/katalvlaran/lvnum/simd"
	"github.com/rs/zerolog"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultEpsilon is the absolute tolerance used by Equal.
	DefaultEpsilon = 1e-6

	// DefaultStrategy is the hint a tensor carries when none is given.
	DefaultStrategy = Parallel
)

// ---------- Internal panic messages ----------

const (
	panicWorkersInvalid  = "tensor: WithWorkers: workers must be >= 1"
	panicEpsilonInvalid  = "tensor: WithEpsilon: eps must be finite, non-negative"
	panicKernelNil       = "tensor: WithKernel: kernel must not be nil"
	panicEngineNil       = "tensor: WithEngine: engine must not be nil"
	panicStrategyInvalid = "tensor: WithStrategy: strategy must be a concrete strategy"
)

// ---------- Engine options ----------

// EngineOption configures NewEngine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	workers int            // >= 1; runtime.NumCPU by default
	eps     float64        // >= 0; DefaultEpsilon
	logger  zerolog.Logger // Nop by default
	kernel  *simd.Kernel   // probed when nil
	noSIMD  bool           // force scalar kernels
}

// WithWorkers sets the number of goroutines parallel strategies fan out to.
// Panics if n < 1.
func WithWorkers(n int) EngineOption {
	if n < 1 {
		panic(panicWorkersInvalid)
	}
	return func(o *engineOptions) { o.workers = n }
}

// WithEpsilon sets the tolerance used by Tensor.Equal.
// Panics when eps is NaN, infinite or negative.
func WithEpsilon(eps float64) EngineOption {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicEpsilonInvalid)
	}
	return func(o *engineOptions) { o.eps = eps }
}

// WithLogger sets the logger for kernel selection and task failures.
func WithLogger(l zerolog.Logger) EngineOption {
	return func(o *engineOptions) { o.logger = l }
}

// WithKernel reuses an already probed kernel instead of probing again.
func WithKernel(k *simd.Kernel) EngineOption {
	if k == nil {
		panic(panicKernelNil)
	}
	return func(o *engineOptions) { o.kernel = k }
}

// WithoutSIMD makes the SIMD strategies run their scalar fallback.
// It takes precedence over WithKernel.
func WithoutSIMD() EngineOption {
	return func(o *engineOptions) { o.noSIMD = true }
}

// ---------- Tensor options ----------

// Option configures a tensor at construction.
type Option func(*Options)

// Options stores the resolved tensor configuration.
type Options struct {
	engine *Engine
	hint   Strategy
}

// WithEngine binds the tensor to e instead of DefaultEngine.
// Results of an operation inherit the receiver's engine.
func WithEngine(e *Engine) Option {
	if e == nil {
		panic(panicEngineNil)
	}
	return func(o *Options) { o.engine = e }
}

// WithStrategy sets the hint used when an operation is called with Auto.
// Panics for Auto itself or an unknown value.
func WithStrategy(s Strategy) Option {
	if s == Auto || !s.valid() {
		panic(panicStrategyInvalid)
	}
	return func(o *Options) { o.hint = s }
}

// WithConcurrent sets the hint to Parallel (true) or Sequential (false).
func WithConcurrent(concurrent bool) Option {
	return WithStrategy(FromConcurrent(concurrent))
}

// gatherOptions applies opts on top of the defaults.
// The default engine is only built when no WithEngine was given.
func gatherOptions(opts ...Option) Options {
	o := Options{hint: DefaultStrategy}
	for _, set := range opts {
		set(&o)
	}
	if o.engine == nil {
		o.engine = DefaultEngine()
	}
	return o
}
