package simd

import (
	"github.com/ajroetker/go-highway/hwy"
)

// float32 kernels on go-highway's portable vectors. hwy fixes its register
// width at process start (HWY_NO_SIMD forces its scalar mode); a zero width
// leaves everything to the scalar tail.

type vecOp32 func(a, b hwy.Vec[float32]) hwy.Vec[float32]

func binary32(dst, a, b []float32, vop vecOp32, op func(x, y float32) float32) {
	lanes := hwy.MaxLanes[float32]()
	n := len(dst)
	i := 0
	if lanes > 0 {
		for ; i+lanes <= n; i += lanes {
			hwy.Store(vop(hwy.Load(a[i:i+lanes]), hwy.Load(b[i:i+lanes])), dst[i:i+lanes])
		}
	}
	for ; i < n; i++ {
		dst[i] = op(a[i], b[i])
	}
}

func add32(dst, a, b []float32) {
	binary32(dst, a, b, hwy.Add[float32], func(x, y float32) float32 { return x + y })
}

func sub32(dst, a, b []float32) {
	binary32(dst, a, b, hwy.Sub[float32], func(x, y float32) float32 { return x - y })
}

func mul32(dst, a, b []float32) {
	binary32(dst, a, b, hwy.Mul[float32], func(x, y float32) float32 { return x * y })
}

func div32(dst, a, b []float32) {
	binary32(dst, a, b, hwy.Div[float32], func(x, y float32) float32 { return x / y })
}

func scale32(dst, src []float32, s float32) {
	lanes := hwy.MaxLanes[float32]()
	n := len(dst)
	i := 0
	if lanes > 0 {
		vs := hwy.Set(s)
		for ; i+lanes <= n; i += lanes {
			hwy.Store(hwy.Mul(hwy.Load(src[i:i+lanes]), vs), dst[i:i+lanes])
		}
	}
	for ; i < n; i++ {
		dst[i] = src[i] * s
	}
}

// dot32 keeps one vector accumulator, reduces it horizontally, then adds the
// scalar tail.
func dot32(a, b []float32) float32 {
	lanes := hwy.MaxLanes[float32]()
	n := len(a)
	var s float32
	i := 0
	if lanes > 0 && n >= lanes {
		acc := hwy.Zero[float32]()
		for ; i+lanes <= n; i += lanes {
			acc = hwy.Add(acc, hwy.Mul(hwy.Load(a[i:i+lanes]), hwy.Load(b[i:i+lanes])))
		}
		s = hwy.ReduceSum(acc)
	}
	for ; i < n; i++ {
		s += a[i] * b[i]
	}
	return s
}

func sum32(src []float32) float32 {
	lanes := hwy.MaxLanes[float32]()
	n := len(src)
	var s float32
	i := 0
	if lanes > 0 && n >= lanes {
		acc := hwy.Zero[float32]()
		for ; i+lanes <= n; i += lanes {
			acc = hwy.Add(acc, hwy.Load(src[i:i+lanes]))
		}
		s = hwy.ReduceSum(acc)
	}
	for ; i < n; i++ {
		s += src[i]
	}
	return s
}
