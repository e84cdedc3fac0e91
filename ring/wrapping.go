package ring

import "golang.org/x/exp/constraints"

// Wrapping is the native arithmetic of an unsigned integer type:
// counts are taken modulo 2^bits and silently wrap.
//
// Wrapping[uint64]{} counts modulo 2^64.
type Wrapping[T constraints.Unsigned] struct{}

// Zero returns 0
func (Wrapping[T]) Zero() T {
	return 0
}

// One returns 1
func (Wrapping[T]) One() T {
	return 1
}

// Add returns x + y with wraparound
func (Wrapping[T]) Add(x, y T) T {
	return x + y
}

// Mul returns x * y with wraparound
func (Wrapping[T]) Mul(x, y T) T {
	return x * y
}
