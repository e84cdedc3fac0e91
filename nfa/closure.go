package nfa

import (
	"math/bits"

	"golang.org/x/exp/slices"
)

// RemoveEpsilon reduces an epsilon-NFA to an equivalent epsilon-free NFA over
// the same node set.
//
// For every node x that epsilon-reaches a node y, each labeled edge
// y -c-> z becomes x -c-> z. If z itself epsilon-reaches the accepting node, a
// shortcut x -c-> accept is added too, so consumers of the NFA never need an
// epsilon-closure again: a node set accepts iff it contains Accept().
//
// Cost is O(V³/64 + V²·alphabet) for V nodes.
func RemoveEpsilon(e *EpsilonNFA) *NFA {
	reach := epsilonReach(e)
	n := e.States()
	k := e.alphabet.Len()

	next := make([][][]StateID, k)
	for sym := range next {
		next[sym] = make([][]StateID, n)
	}

	for x := 0; x < n; x++ {
		reach.each(x, func(y int) {
			for _, edge := range e.edges[y] {
				if edge.IsEpsilon() {
					continue
				}
				dst := &next[edge.Label][x]
				*dst = append(*dst, edge.Next)
				if reach.has(int(edge.Next), int(e.accept)) {
					*dst = append(*dst, e.accept)
				}
			}
		})
	}

	for sym := range next {
		for x, dst := range next[sym] {
			if len(dst) > 1 {
				slices.Sort(dst)
				next[sym][x] = slices.Compact(dst)
			}
		}
	}

	return &NFA{
		next:         next,
		start:        e.start,
		accept:       e.accept,
		acceptsEmpty: reach.has(int(e.start), int(e.accept)),
		alphabet:     e.alphabet,
	}
}

// epsilonReach computes the reflexive-transitive closure of the epsilon edges.
func epsilonReach(e *EpsilonNFA) *bitMatrix {
	n := e.States()
	m := newBitMatrix(n)
	for x, out := range e.edges {
		m.set(x, x)
		for _, edge := range out {
			if edge.IsEpsilon() {
				m.set(x, int(edge.Next))
			}
		}
	}

	// Warshall: once x reaches k, x reaches everything k reaches.
	for k := 0; k < n; k++ {
		rowK := m.row(k)
		for x := 0; x < n; x++ {
			if x != k && m.has(x, k) {
				row := m.row(x)
				for w := range row {
					row[w] |= rowK[w]
				}
			}
		}
	}
	return m
}

// bitMatrix is a square boolean matrix stored as one bitset per row.
type bitMatrix struct {
	n     int
	words int // uint64 words per row
	bits  []uint64
}

func newBitMatrix(n int) *bitMatrix {
	words := (n + 63) / 64
	return &bitMatrix{
		n:     n,
		words: words,
		bits:  make([]uint64, n*words),
	}
}

func (m *bitMatrix) row(x int) []uint64 {
	return m.bits[x*m.words : (x+1)*m.words]
}

func (m *bitMatrix) set(x, y int) {
	m.bits[x*m.words+y/64] |= 1 << (uint(y) % 64)
}

func (m *bitMatrix) has(x, y int) bool {
	return m.bits[x*m.words+y/64]&(1<<(uint(y)%64)) != 0
}

// each calls f for every column set in row x, in increasing order
func (m *bitMatrix) each(x int, f func(y int)) {
	for w, word := range m.row(x) {
		for word != 0 {
			f(w*64 + bits.TrailingZeros64(word))
			word &= word - 1
		}
	}
}
