// Package tinydfa compiles regular expressions over a small, caller-declared
// alphabet into complete DFAs and counts the strings they accept.
//
// A pattern is compiled in three stages:
//   - nfa.BuildEpsilonNFA turns the pattern into a position automaton
//   - nfa.RemoveEpsilon folds the epsilon edges away
//   - dfa.Determinize runs subset construction
//
// The resulting DFA answers whole-string membership queries and counts
// accepted strings of every length in a caller-chosen arithmetic.
//
// Basic usage:
//
//	re, err := tinydfa.Compile("(AA?B)*", "AB")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ok, err := re.Match("AABAB")
//	fmt.Println(ok) // true
//
//	// strings of length 0..6 accepted, modulo 1e9+7
//	counts := tinydfa.Count[uint64](re, ring.MustMod(1_000_000_007), 7)
//
// The pattern language has no escapes. Its metacharacters are ( ) | * + ? and
// '.', which matches any single alphabet symbol. Matching is anchored at both
// ends: a text matches only if the whole text is in the language.
package tinydfa

import (
	"github.com/coregx/tinydfa/dfa"
	"github.com/coregx/tinydfa/nfa"
	"github.com/coregx/tinydfa/ring"
)

// Config configures compilation.
type Config = dfa.Config

var (
	// ErrInvalidPattern is wrapped by every pattern or alphabet error
	ErrInvalidPattern = nfa.ErrInvalidPattern

	// ErrInvalidInput is returned by Match for a byte outside the alphabet
	ErrInvalidInput = dfa.ErrInvalidInput

	// ErrStateLimitExceeded is returned when determinization exceeds
	// Config.MaxStates
	ErrStateLimitExceeded = dfa.ErrStateLimitExceeded
)

// Regex is a compiled pattern.
//
// A Regex is immutable and safe to use concurrently from multiple goroutines.
//
// Example:
//
//	re := tinydfa.MustCompile(".*A.*", "AB")
//	ok, _ := re.Match("BAB") // true
type Regex struct {
	pattern string
	dfa     *dfa.DFA
}

// Compile compiles pattern over the symbols of alphabet.
//
// Symbols must be distinct and must not be metacharacters. Returns an error
// wrapping ErrInvalidPattern if the alphabet or pattern is malformed, or
// ErrStateLimitExceeded if the DFA grows beyond DefaultConfig().MaxStates.
//
// Example:
//
//	re, err := tinydfa.Compile("A+B*C+|D*", "ABCDE")
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern, alphabet string) (*Regex, error) {
	return CompileWithConfig(pattern, alphabet, DefaultConfig())
}

// MustCompile compiles a pattern and panics if it fails.
//
// This is useful for patterns known to be valid at compile time.
func MustCompile(pattern, alphabet string) *Regex {
	re, err := Compile(pattern, alphabet)
	if err != nil {
		panic("tinydfa: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// CompileWithConfig compiles a pattern with custom configuration.
//
// Example:
//
//	config := tinydfa.DefaultConfig().WithMaxStates(4096)
//	re, err := tinydfa.CompileWithConfig(".*A.....", "AB", config)
func CompileWithConfig(pattern, alphabet string, config Config) (*Regex, error) {
	a, err := nfa.NewAlphabet(alphabet)
	if err != nil {
		return nil, err
	}
	enfa, err := nfa.BuildEpsilonNFA(pattern, a)
	if err != nil {
		return nil, err
	}
	d, err := dfa.Determinize(nfa.RemoveEpsilon(enfa), config)
	if err != nil {
		return nil, err
	}
	return &Regex{pattern: pattern, dfa: d}, nil
}

// DefaultConfig returns the default configuration for compilation.
func DefaultConfig() Config {
	return dfa.DefaultConfig()
}

// Match reports whether the whole of text is accepted.
//
// Returns an error wrapping ErrInvalidInput if text contains a byte that is
// not an alphabet symbol.
func (r *Regex) Match(text string) (bool, error) {
	return r.dfa.Match(text)
}

// DFA returns the underlying automaton
func (r *Regex) DFA() *dfa.DFA {
	return r.dfa
}

// Pattern returns the source text used to compile the regex
func (r *Regex) Pattern() string {
	return r.pattern
}

// Alphabet returns the alphabet symbols in declaration order
func (r *Regex) Alphabet() string {
	return r.dfa.Alphabet().String()
}

// States returns the number of DFA states
func (r *Regex) States() int {
	return r.dfa.States()
}

// String returns the source text used to compile the regex.
func (r *Regex) String() string {
	return r.pattern
}

// Count returns, for each length ℓ in [0, limit), the number of accepted
// strings of length ℓ, computed in the arithmetic r.
//
// Example:
//
//	re := tinydfa.MustCompile(".*A.*", "AB")
//	tinydfa.Count[uint64](re, ring.Wrapping[uint64]{}, 5) // [0 1 3 7 15]
func Count[T any](re *Regex, r ring.Adder[T], limit int) []T {
	return dfa.Count[T](re.dfa, r, limit)
}

// CountLength returns the number of accepted strings of exactly the given
// length, computed in the arithmetic r by matrix power.
func CountLength[T any](re *Regex, r ring.Semiring[T], length uint64) T {
	return dfa.CountLength[T](re.dfa, r, length)
}
