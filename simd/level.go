package simd

import (
	"os"
	"strconv"
)

// Level is the vector instruction class a Kernel dispatches to.
type Level int

const (
	// LevelNone runs scalar loops only.
	LevelNone Level = iota

	// LevelNarrow uses 128-bit vectors (SSE2 on amd64, NEON on arm64).
	LevelNarrow

	// LevelMid uses 256-bit vectors (AVX2).
	LevelMid

	// LevelWide uses 512-bit vectors (AVX-512F).
	LevelWide
)

// String returns a human-readable name for the level.
func (l Level) String() string {
	switch l {
	case LevelNone:
		return "scalar"
	case LevelNarrow:
		return "128-bit"
	case LevelMid:
		return "256-bit"
	case LevelWide:
		return "512-bit"
	default:
		return "unknown"
	}
}

// WidthBytes returns the vector register width in bytes, or 0 for LevelNone.
func (l Level) WidthBytes() int {
	switch l {
	case LevelNarrow:
		return 16
	case LevelMid:
		return 32
	case LevelWide:
		return 64
	default:
		return 0
	}
}

// EnvNoSIMD is the environment variable that forces scalar kernels.
const EnvNoSIMD = "LVNUM_NO_SIMD"

// NoSIMDEnv reports whether EnvNoSIMD is set to a true value.
// Any non-empty value that does not parse as a bool counts as true.
func NoSIMDEnv() bool {
	val := os.Getenv(EnvNoSIMD)
	if val == "" {
		return false
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}
