// Package ring provides the arithmetic used to count accepted strings.
//
// Counts grow exponentially with string length, so the counting routines in
// package dfa never fix a numeric type. Instead the caller supplies the
// arithmetic as a small capability value: Adder for length-by-length counting
// and Semiring for counting a single length by matrix power.
//
// The arithmetic decides the overflow behavior entirely:
//   - Mod counts modulo a fixed modulus
//   - Wrapping counts modulo 2^bits of an unsigned integer type
//   - Big counts exactly
package ring

import "errors"

// ErrZeroModulus is returned by NewMod for a zero modulus
var ErrZeroModulus = errors.New("ring: modulus must be positive")

// Adder is the arithmetic needed to accumulate counts.
//
// Zero must be an identity for Add and One is the count of a single string.
// Add must not modify its arguments.
type Adder[T any] interface {
	Zero() T
	One() T
	Add(x, y T) T
}

// Semiring extends Adder with multiplication.
// Mul must distribute over Add and must not modify its arguments.
type Semiring[T any] interface {
	Adder[T]
	Mul(x, y T) T
}
