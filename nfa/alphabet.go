package nfa

import (
	"fmt"
	"strings"
)

// Metachars lists the bytes reserved by the pattern language.
// None of them may appear in an Alphabet.
const Metachars = "()|*.+?"

// MaxAlphabetLen is the largest alphabet that can be declared: every byte
// value except the metacharacters.
const MaxAlphabetLen = 256 - len(Metachars)

// Alphabet is an ordered set of symbols with a bijection symbol <-> index.
//
// Symbol indexes are dense in [0, Len()) and follow declaration order, so the
// alphabet "BA" maps 'B' to 0 and 'A' to 1. Every automaton built over an
// alphabet uses these indexes as transition labels.
//
// An Alphabet is immutable and safe for concurrent use.
type Alphabet struct {
	symbols []byte
	// index maps each byte to its symbol index + 1; 0 means absent
	index [256]uint8
}

// NewAlphabet validates symbols and returns the alphabet they declare.
//
// Symbols must be pairwise distinct and must not collide with Metachars.
// The empty alphabet is valid: it only admits the empty string.
func NewAlphabet(symbols string) (*Alphabet, error) {
	if len(symbols) > MaxAlphabetLen {
		return nil, &PatternError{Pattern: symbols, Pos: -1, Msg: "alphabet too large"}
	}
	a := &Alphabet{symbols: []byte(symbols)}
	for i := 0; i < len(symbols); i++ {
		c := symbols[i]
		if strings.IndexByte(Metachars, c) >= 0 {
			return nil, &PatternError{Pattern: symbols, Pos: i, Msg: fmt.Sprintf("alphabet symbol %q is a metacharacter", c)}
		}
		if a.index[c] != 0 {
			return nil, &PatternError{Pattern: symbols, Pos: i, Msg: fmt.Sprintf("duplicate alphabet symbol %q", c)}
		}
		a.index[c] = uint8(i + 1)
	}
	return a, nil
}

// Len returns the number of symbols
func (a *Alphabet) Len() int {
	return len(a.symbols)
}

// Index returns the index of symbol c, or (-1, false) if c is not declared.
func (a *Alphabet) Index(c byte) (int, bool) {
	i := a.index[c]
	if i == 0 {
		return -1, false
	}
	return int(i) - 1, true
}

// Symbol returns the symbol with the given index.
// Panics if i is out of range.
func (a *Alphabet) Symbol(i int) byte {
	return a.symbols[i]
}

// String returns the symbols in declaration order
func (a *Alphabet) String() string {
	return string(a.symbols)
}
