package dfa

import (
	"testing"

	"github.com/coregx/tinydfa/nfa"
)

const testModulus = 1_000_000_007

// mustBuild compiles pattern over alphabet with the default config
func mustBuild(t testing.TB, pattern, alphabet string) *DFA {
	t.Helper()
	d, err := build(pattern, alphabet, DefaultConfig())
	if err != nil {
		t.Fatalf("build(%q, %q) error = %v", pattern, alphabet, err)
	}
	return d
}

func build(pattern, alphabet string, config Config) (*DFA, error) {
	a, err := nfa.NewAlphabet(alphabet)
	if err != nil {
		return nil, err
	}
	enfa, err := nfa.BuildEpsilonNFA(pattern, a)
	if err != nil {
		return nil, err
	}
	return Determinize(nfa.RemoveEpsilon(enfa), config)
}

// allStrings calls f with every string of length n over alphabet
func allStrings(alphabet string, n int, f func(string)) {
	buf := make([]byte, n)
	var rec func(i int)
	rec = func(i int) {
		if i == n {
			f(string(buf))
			return
		}
		for j := 0; j < len(alphabet); j++ {
			buf[i] = alphabet[j]
			rec(i + 1)
		}
	}
	rec(0)
}
