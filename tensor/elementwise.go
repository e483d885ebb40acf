package tensor

import (
	"github.com/katalvlaran/lvnum/simd"
)

// binaryOp validates both operands and the strategy, allocates the result and
// runs op on it. Nothing is allocated when validation fails.
func (t *Tensor[T]) binaryOp(name string, other *Tensor[T], s Strategy, op func(x, y T) T, vec binaryKernel[T]) (*Tensor[T], error) {
	if err := ValidateSameShape(t, other); err != nil {
		return nil, tensorErrorf(name, err)
	}
	s, err := t.resolve(s)
	if err != nil {
		return nil, tensorErrorf(name, err)
	}

	out := t.like(t.shape.Clone())
	if err = runBinary(t.engine, s, out.data, t.data, other.data, op, vec); err != nil {
		return nil, tensorErrorf(name, err)
	}
	return out, nil
}

// unaryOp is binaryOp for a single operand.
func (t *Tensor[T]) unaryOp(name string, s Strategy, op func(x T) T, vec unaryKernel[T]) (*Tensor[T], error) {
	if err := ValidateNotNil(t); err != nil {
		return nil, tensorErrorf(name, err)
	}
	s, err := t.resolve(s)
	if err != nil {
		return nil, tensorErrorf(name, err)
	}

	out := t.like(t.shape.Clone())
	if err = runUnary(t.engine, s, out.data, t.data, op, vec); err != nil {
		return nil, tensorErrorf(name, err)
	}
	return out, nil
}

// Add returns t + other elementwise.
//
// Errors: ErrNilTensor, ErrShapeMismatch, ErrInvalidOperation (strategy).
func (t *Tensor[T]) Add(other *Tensor[T], s Strategy) (*Tensor[T], error) {
	return t.binaryOp("Add", other, s, func(x, y T) T { return x + y }, simd.Add[T])
}

// Sub returns t - other elementwise.
func (t *Tensor[T]) Sub(other *Tensor[T], s Strategy) (*Tensor[T], error) {
	return t.binaryOp("Sub", other, s, func(x, y T) T { return x - y }, simd.Sub[T])
}

// Hadamard returns the elementwise product of t and other.
func (t *Tensor[T]) Hadamard(other *Tensor[T], s Strategy) (*Tensor[T], error) {
	return t.binaryOp("Hadamard", other, s, func(x, y T) T { return x * y }, simd.Mul[T])
}

// Mul is an alias for Hadamard.
func (t *Tensor[T]) Mul(other *Tensor[T], s Strategy) (*Tensor[T], error) {
	return t.Hadamard(other, s)
}

// Divide returns t / other elementwise. Every element of other is checked
// before the result is allocated.
//
// Errors: ErrNilTensor, ErrShapeMismatch, ErrDivisionByZero.
func (t *Tensor[T]) Divide(other *Tensor[T], s Strategy) (*Tensor[T], error) {
	if err := ValidateSameShape(t, other); err != nil {
		return nil, tensorErrorf("Divide", err)
	}
	if err := ValidateNonZero(other.data); err != nil {
		return nil, tensorErrorf("Divide", err)
	}
	return t.binaryOp("Divide", other, s, func(x, y T) T { return x / y }, simd.Div[T])
}

// Scale returns t * alpha.
func (t *Tensor[T]) Scale(alpha T, s Strategy) (*Tensor[T], error) {
	return t.unaryOp("Scale", s,
		func(x T) T { return x * alpha },
		func(k *simd.Kernel, dst, src []T) { simd.Scale(k, dst, src, alpha) },
	)
}

// Negate returns -t. For unsigned kinds this wraps modulo 2^n.
func (t *Tensor[T]) Negate(s Strategy) (*Tensor[T], error) {
	return t.unaryOp("Negate", s,
		func(x T) T { return -x },
		func(k *simd.Kernel, dst, src []T) {
			var zero T
			simd.Scale(k, dst, src, zero-1)
		},
	)
}

// DivideScalar returns t / d.
//
// Errors: ErrNilTensor, ErrDivisionByZero when d == 0.
func (t *Tensor[T]) DivideScalar(d T, s Strategy) (*Tensor[T], error) {
	if err := ValidateNotNil(t); err != nil {
		return nil, tensorErrorf("DivideScalar", err)
	}
	if err := ValidateNonZero([]T{d}); err != nil {
		return nil, tensorErrorf("DivideScalar", err)
	}
	return t.unaryOp("DivideScalar", s,
		func(x T) T { return x / d },
		func(k *simd.Kernel, dst, src []T) {
			for i := range dst {
				dst[i] = src[i] / d
			}
		},
	)
}

// Map returns a new tensor with fn applied to every element. fn must be safe
// for concurrent use when s is a parallel strategy; the SIMD strategies have
// no vector form of an arbitrary function and run their scalar counterparts.
func (t *Tensor[T]) Map(fn func(T) T, s Strategy) (*Tensor[T], error) {
	if err := ValidateNotNil(t); err != nil {
		return nil, tensorErrorf("Map", err)
	}
	s, err := t.resolve(s)
	if err != nil {
		return nil, tensorErrorf("Map", err)
	}
	if s.UsesSIMD() {
		s = FromConcurrent(s.UsesParallel())
	}

	out := t.like(t.shape.Clone())
	if err = runUnary(t.engine, s, out.data, t.data, fn, nil); err != nil {
		return nil, tensorErrorf("Map", err)
	}
	return out, nil
}
