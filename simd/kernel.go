// SPDX-License-Identifier: MIT

package simd

import (
	"fmt"
	"unsafe"

	"github.com/cwbudde/algo-vecmath/cpu"
	"github.com/rs/zerolog"
	xcpu "golang.org/x/sys/cpu"
)

// maxLanes bounds the lane accumulators; 64 int8 lanes fill a 512-bit register.
const maxLanes = 64

// Number is the set of element kinds the kernels operate on.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Kernel is the frozen result of a capability probe. It is immutable and safe
// for concurrent use.
type Kernel struct {
	level    Level
	features cpu.Features
	hasMid   bool // 256-bit class vectors available
	hasWide  bool // 512-bit class vectors available
}

// Option configures Probe.
type Option func(*probeOptions)

type probeOptions struct {
	forceGeneric bool
	features     *cpu.Features
	logger       zerolog.Logger
}

// WithForceGeneric disables vector kernels regardless of the hardware.
func WithForceGeneric() Option {
	return func(o *probeOptions) { o.forceGeneric = true }
}

// WithFeatures replaces hardware detection with the given feature set.
// It decides the Level, lane counts and whether float kernels take the vector
// path at all. The vector libraries still pick their own instruction set from
// their process-wide detection (cpu.SetForcedFeatures before first use for
// algo-vecmath, HWY_NO_SIMD for go-highway).
func WithFeatures(f cpu.Features) Option {
	return func(o *probeOptions) { o.features = &f }
}

// WithLogger sets the logger that reports the selected level.
func WithLogger(l zerolog.Logger) Option {
	return func(o *probeOptions) { o.logger = l }
}

// Probe detects the widest usable vector class and returns a Kernel bound to it.
// Detection goes through algo-vecmath's cached feature probe; AVX-512F is read
// from golang.org/x/sys/cpu.
func Probe(opts ...Option) *Kernel {
	o := probeOptions{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	features := cpu.DetectFeatures()
	if o.features != nil {
		features = *o.features
	}

	k := &Kernel{features: features}
	if o.forceGeneric || NoSIMDEnv() {
		k.level = LevelNone
	} else {
		k.level = detectLevel(features, xcpu.X86.HasAVX512F)
	}
	k.hasMid = k.level >= LevelMid
	k.hasWide = k.level >= LevelWide

	o.logger.Debug().
		Str("level", k.level.String()).
		Str("arch", features.Architecture).
		Int("lanes_f32", k.LaneWidth()).
		Bool("mid", k.hasMid).
		Bool("wide", k.hasWide).
		Msg("simd kernel selected")

	return k
}

// detectLevel maps a feature set onto a Level. AVX-512 counts only on top of
// AVX2 so a forced feature set without AVX2 never reports LevelWide.
func detectLevel(f cpu.Features, hasAVX512F bool) Level {
	switch {
	case f.ForceGeneric:
		return LevelNone
	case f.HasAVX2 && hasAVX512F:
		return LevelWide
	case f.HasAVX2:
		return LevelMid
	case f.HasSSE2 || f.HasNEON:
		return LevelNarrow
	default:
		return LevelNone
	}
}

// Level returns the selected vector class.
func (k *Kernel) Level() Level { return k.level }

// Features returns the feature set the kernel was probed with.
func (k *Kernel) Features() cpu.Features { return k.features }

// HasMid reports 256-bit class support (AVX2 or better).
func (k *Kernel) HasMid() bool { return k.hasMid }

// HasWide reports 512-bit class support (AVX-512F).
func (k *Kernel) HasWide() bool { return k.hasWide }

// LaneWidth returns the number of float32 lanes per vector: 16, 8, 4, or 1
// when the kernel runs scalar code.
func (k *Kernel) LaneWidth() int { return Lanes[float32](k) }

// String implements fmt.Stringer.
func (k *Kernel) String() string {
	return fmt.Sprintf("simd.Kernel{level=%s lanes=%d mid=%t wide=%t}", k.level, k.LaneWidth(), k.hasMid, k.hasWide)
}

// Lanes returns how many T elements fit into one vector of k, at least 1.
func Lanes[T Number](k *Kernel) int {
	var zero T
	width := k.level.WidthBytes()
	if width == 0 {
		return 1
	}
	return min(maxLanes, max(1, width/int(unsafe.Sizeof(zero))))
}

// vectorized reports whether float slices go to the vector libraries.
func (k *Kernel) vectorized() bool { return k.level != LevelNone }

func checkLen(op string, n int, others ...int) {
	for _, m := range others {
		if m != n {
			panic(fmt.Sprintf("simd: %s length mismatch: %d vs %d", op, n, m))
		}
	}
}
