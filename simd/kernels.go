package simd

import (
	vecmath "github.com/cwbudde/algo-vecmath"
)

// The binary kernels write dst[i] = a[i] op b[i]. All slices must have the
// same length and dst must not overlap a or b; a length mismatch panics.
//
// On a vector level float64 runs on algo-vecmath and float32 on go-highway;
// the other kinds use lane-sized chunks plus a scalar tail.

// Add computes dst = a + b.
func Add[T Number](k *Kernel, dst, a, b []T) {
	checkLen("Add", len(dst), len(a), len(b))
	if k.vectorized() {
		switch d := any(dst).(type) {
		case []float64:
			vecmath.AddBlock(d, any(a).([]float64), any(b).([]float64))
			return
		case []float32:
			add32(d, any(a).([]float32), any(b).([]float32))
			return
		}
	}
	lanes := Lanes[T](k)
	n := len(dst)
	body := n - n%lanes
	for i := 0; i < body; i += lanes {
		dc, ac, bc := dst[i:i+lanes:i+lanes], a[i:i+lanes:i+lanes], b[i:i+lanes:i+lanes]
		for l := range dc {
			dc[l] = ac[l] + bc[l]
		}
	}
	for i := body; i < n; i++ {
		dst[i] = a[i] + b[i]
	}
}

// Sub computes dst = a - b.
func Sub[T Number](k *Kernel, dst, a, b []T) {
	checkLen("Sub", len(dst), len(a), len(b))
	if k.vectorized() {
		switch d := any(dst).(type) {
		case []float64:
			// a + (-b) rounds exactly like a - b.
			vecmath.ScaleBlock(d, any(b).([]float64), -1)
			vecmath.AddBlockInPlace(d, any(a).([]float64))
			return
		case []float32:
			sub32(d, any(a).([]float32), any(b).([]float32))
			return
		}
	}
	lanes := Lanes[T](k)
	n := len(dst)
	body := n - n%lanes
	for i := 0; i < body; i += lanes {
		dc, ac, bc := dst[i:i+lanes:i+lanes], a[i:i+lanes:i+lanes], b[i:i+lanes:i+lanes]
		for l := range dc {
			dc[l] = ac[l] - bc[l]
		}
	}
	for i := body; i < n; i++ {
		dst[i] = a[i] - b[i]
	}
}

// Mul computes the elementwise product dst = a * b.
func Mul[T Number](k *Kernel, dst, a, b []T) {
	checkLen("Mul", len(dst), len(a), len(b))
	if k.vectorized() {
		switch d := any(dst).(type) {
		case []float64:
			vecmath.MulBlock(d, any(a).([]float64), any(b).([]float64))
			return
		case []float32:
			mul32(d, any(a).([]float32), any(b).([]float32))
			return
		}
	}
	lanes := Lanes[T](k)
	n := len(dst)
	body := n - n%lanes
	for i := 0; i < body; i += lanes {
		dc, ac, bc := dst[i:i+lanes:i+lanes], a[i:i+lanes:i+lanes], b[i:i+lanes:i+lanes]
		for l := range dc {
			dc[l] = ac[l] * bc[l]
		}
	}
	for i := body; i < n; i++ {
		dst[i] = a[i] * b[i]
	}
}

// Div computes dst = a / b. Integer callers must reject zero divisors first.
func Div[T Number](k *Kernel, dst, a, b []T) {
	checkLen("Div", len(dst), len(a), len(b))
	if k.vectorized() {
		if d, ok := any(dst).([]float32); ok {
			div32(d, any(a).([]float32), any(b).([]float32))
			return
		}
	}
	lanes := Lanes[T](k)
	n := len(dst)
	body := n - n%lanes
	for i := 0; i < body; i += lanes {
		dc, ac, bc := dst[i:i+lanes:i+lanes], a[i:i+lanes:i+lanes], b[i:i+lanes:i+lanes]
		for l := range dc {
			dc[l] = ac[l] / bc[l]
		}
	}
	for i := body; i < n; i++ {
		dst[i] = a[i] / b[i]
	}
}

// Scale computes dst = src * s.
func Scale[T Number](k *Kernel, dst, src []T, s T) {
	checkLen("Scale", len(dst), len(src))
	if k.vectorized() {
		switch d := any(dst).(type) {
		case []float64:
			vecmath.ScaleBlock(d, any(src).([]float64), any(s).(float64))
			return
		case []float32:
			scale32(d, any(src).([]float32), any(s).(float32))
			return
		}
	}
	lanes := Lanes[T](k)
	n := len(dst)
	body := n - n%lanes
	for i := 0; i < body; i += lanes {
		dc, sc := dst[i:i+lanes:i+lanes], src[i:i+lanes:i+lanes]
		for l := range dc {
			dc[l] = sc[l] * s
		}
	}
	for i := body; i < n; i++ {
		dst[i] = src[i] * s
	}
}

// Dot returns the inner product of a and b. Products accumulate per lane,
// the lanes are reduced left to right and the scalar tail is added last.
// float64 goes through vecmath.DotProduct, whose summation order is its own.
func Dot[T Number](k *Kernel, a, b []T) T {
	checkLen("Dot", len(a), len(b))
	if k.vectorized() {
		switch av := any(a).(type) {
		case []float64:
			return any(vecmath.DotProduct(av, any(b).([]float64))).(T)
		case []float32:
			return any(dot32(av, any(b).([]float32))).(T)
		}
	}
	lanes := Lanes[T](k)
	n := len(a)
	if lanes == 1 {
		var s T
		for i := range a {
			s += a[i] * b[i]
		}
		return s
	}

	var acc [maxLanes]T
	body := n - n%lanes
	for i := 0; i < body; i += lanes {
		ac, bc := a[i:i+lanes:i+lanes], b[i:i+lanes:i+lanes]
		for l := range ac {
			acc[l] += ac[l] * bc[l]
		}
	}
	s := reduceLanes(acc[:lanes])
	for i := body; i < n; i++ {
		s += a[i] * b[i]
	}
	return s
}

// Sum returns the sum of src using the same lane order as Dot.
func Sum[T Number](k *Kernel, src []T) T {
	if k.vectorized() {
		switch v := any(src).(type) {
		case []float64:
			return any(vecmath.Sum(v)).(T)
		case []float32:
			return any(sum32(v)).(T)
		}
	}
	lanes := Lanes[T](k)
	n := len(src)
	if lanes == 1 {
		var s T
		for _, v := range src {
			s += v
		}
		return s
	}

	var acc [maxLanes]T
	body := n - n%lanes
	for i := 0; i < body; i += lanes {
		for l, v := range src[i : i+lanes : i+lanes] {
			acc[l] += v
		}
	}
	s := reduceLanes(acc[:lanes])
	for i := body; i < n; i++ {
		s += src[i]
	}
	return s
}

// reduceLanes is the horizontal add of a lane accumulator.
func reduceLanes[T Number](acc []T) T {
	var s T
	for _, v := range acc {
		s += v
	}
	return s
}
