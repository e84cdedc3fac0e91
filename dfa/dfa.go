// Package dfa provides deterministic automata for the tinydfa pattern
// language: subset construction from an epsilon-free NFA, whole-string
// matching, counting accepted strings by length, and a compact binary
// encoding.
//
// A DFA is immutable once built. All of its methods and the counting
// functions are safe for concurrent use without locking.
package dfa

import (
	"fmt"

	"github.com/coregx/tinydfa/nfa"
)

// DFA is a total deterministic automaton over an Alphabet.
//
// Transitions are stored as one flat table with a row of Alphabet().Len()
// entries per state, so Next is a single index computation.
type DFA struct {
	alphabet *nfa.Alphabet
	stride   int // alphabet length
	trans    []StateID
	accept   []bool
}

// Alphabet returns the alphabet the DFA reads
func (d *DFA) Alphabet() *nfa.Alphabet {
	return d.alphabet
}

// States returns the number of states
func (d *DFA) States() int {
	return len(d.accept)
}

// Next returns the successor of state s on the symbol with index sym.
// Panics if s or sym is out of range.
func (d *DFA) Next(s StateID, sym int) StateID {
	if sym < 0 || sym >= d.stride {
		panic(fmt.Sprintf("dfa: symbol index %d out of range [0, %d)", sym, d.stride))
	}
	return d.trans[int(s)*d.stride+sym]
}

// IsMatch returns true if s is an accepting state
func (d *DFA) IsMatch(s StateID) bool {
	return d.accept[s]
}

// MatchStates returns the number of accepting states
func (d *DFA) MatchStates() int {
	n := 0
	for _, ok := range d.accept {
		if ok {
			n++
		}
	}
	return n
}

// Match reports whether the whole of text is accepted.
//
// Returns an error wrapping ErrInvalidInput if text contains a byte that is
// not an alphabet symbol. Runs in O(len(text)) time without allocating.
func (d *DFA) Match(text string) (bool, error) {
	s := StartState
	for i := 0; i < len(text); i++ {
		sym, ok := d.alphabet.Index(text[i])
		if !ok {
			return false, invalidInput(text, i)
		}
		s = d.trans[int(s)*d.stride+sym]
	}
	return d.accept[s], nil
}

// String returns a human-readable representation of the DFA
func (d *DFA) String() string {
	return fmt.Sprintf("DFA{states: %d, matchStates: %d, alphabet: %q}",
		d.States(), d.MatchStates(), d.alphabet.String())
}
