package dfa

import (
	"math/bits"

	"github.com/coregx/tinydfa/ring"
)

// Count returns, for every length ℓ in [0, limit), the number of strings of
// length ℓ that d accepts, computed in the caller's arithmetic r.
//
// It maintains the distribution count[s] = number of strings of the current
// length leading from StartState to s, and advances it one symbol at a time by
// applying the transition table as a linear transfer operator. Only two
// distribution vectors are kept.
//
// The result has exactly limit elements; it is empty if limit <= 0.
// Cost is O(limit * States() * Alphabet().Len()) additions. r alone decides
// overflow behavior; Count performs no overflow checking.
func Count[T any](d *DFA, r ring.Adder[T], limit int) []T {
	if limit <= 0 {
		return []T{}
	}
	states := d.States()
	result := make([]T, limit)

	cur := zeros[T](r, states)
	prev := zeros[T](r, states)
	// live tracks states reached by at least one string of the current
	// length; all other entries are known to be zero and are skipped.
	live := make([]bool, states)
	prevLive := make([]bool, states)

	cur[StartState] = r.One()
	live[StartState] = true
	result[0] = matchSum(d, r, cur, live)

	for l := 1; l < limit; l++ {
		cur, prev = prev, cur
		live, prevLive = prevLive, live
		for s := range cur {
			cur[s] = r.Zero()
			live[s] = false
		}
		for s := 0; s < states; s++ {
			if !prevLive[s] {
				continue
			}
			for _, next := range d.trans[s*d.stride : (s+1)*d.stride] {
				cur[next] = r.Add(cur[next], prev[s])
				live[next] = true
			}
		}
		result[l] = matchSum(d, r, cur, live)
	}
	return result
}

// CountLength returns the number of strings of exactly the given length that
// d accepts, computed in the caller's arithmetic r.
//
// It raises the transfer matrix to the given power by repeated squaring, so
// the cost is O(States()³ * log(length)) multiplications instead of the
// O(length) steps of Count. Prefer it for long lengths and small DFAs.
func CountLength[T any](d *DFA, r ring.Semiring[T], length uint64) T {
	states := d.States()

	// m[x*states+y] = number of symbols leading from x to y
	m := zeros[T](r, states*states)
	for x := 0; x < states; x++ {
		for _, y := range d.trans[x*d.stride : (x+1)*d.stride] {
			m[x*states+int(y)] = r.Add(m[x*states+int(y)], r.One())
		}
	}

	v := zeros[T](r, states)
	v[StartState] = r.One()
	for length > 0 {
		if length&1 == 1 {
			v = vecMul(r, v, m, states)
		}
		length >>= 1
		if length > 0 {
			m = matMul(r, m, m, states)
		}
	}

	return matchSum[T](d, r, v, nil)
}

// maxLinearLength bounds the lengths PreferLinear picks a linear pass for,
// since Count keeps one result per length.
const maxLinearLength = 1 << 22

// maxMatrixEntries bounds the transfer matrix CountLength may allocate.
const maxMatrixEntries = 1 << 24

// PreferLinear reports whether answering queries lengths, the longest of
// which is longest, takes fewer operations with a single Count pass up to
// longest than with one CountLength per query.
//
// A length of maxLinearLength or more always prefers CountLength. Otherwise
// a DFA whose transfer matrix would exceed maxMatrixEntries always prefers
// Count.
func PreferLinear(d *DFA, queries int, longest uint64) bool {
	if longest >= maxLinearLength {
		return false
	}
	states := float64(d.States())
	if states*states > maxMatrixEntries {
		return true
	}
	linear := float64(longest+1) * states * float64(max(d.stride, 1))
	matrix := float64(max(queries, 1)) * states * states * states * float64(bits.Len64(longest)+1)
	return linear <= matrix
}

// matchSum adds the entries of dist that belong to accepting states.
// If live is non-nil, states not marked live are skipped.
func matchSum[T any](d *DFA, r ring.Adder[T], dist []T, live []bool) T {
	sum := r.Zero()
	for s, v := range dist {
		if d.accept[s] && (live == nil || live[s]) {
			sum = r.Add(sum, v)
		}
	}
	return sum
}

func zeros[T any](r ring.Adder[T], n int) []T {
	v := make([]T, n)
	for i := range v {
		v[i] = r.Zero()
	}
	return v
}

// vecMul returns the row vector v times the n×n matrix m
func vecMul[T any](r ring.Semiring[T], v, m []T, n int) []T {
	out := zeros[T](r, n)
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			out[y] = r.Add(out[y], r.Mul(v[x], m[x*n+y]))
		}
	}
	return out
}

// matMul returns the n×n product a*b
func matMul[T any](r ring.Semiring[T], a, b []T, n int) []T {
	out := zeros[T](r, n*n)
	for x := 0; x < n; x++ {
		for k := 0; k < n; k++ {
			ax := a[x*n+k]
			for y := 0; y < n; y++ {
				out[x*n+y] = r.Add(out[x*n+y], r.Mul(ax, b[k*n+y]))
			}
		}
	}
	return out
}
