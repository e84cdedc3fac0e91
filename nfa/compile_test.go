package nfa

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuildEpsilonNFASingleSymbol(t *testing.T) {
	e, err := BuildEpsilonNFA("A", testAlphabet(t, "AB"))
	if err != nil {
		t.Fatalf("BuildEpsilonNFA() error = %v", err)
	}
	want := "EpsilonNFA{states: 4, start: 0, accept: 3}\n" +
		"  0 -ε-> 1\n" +
		"  1 -A-> 2\n" +
		"  2 -ε-> 3"
	if diff := cmp.Diff(want, e.String()); diff != "" {
		t.Errorf("String() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildEpsilonNFANodeCount(t *testing.T) {
	patterns := []string{"", "A", "(A|B)*", "A+B?C*", "((A))", ".|"}
	for _, p := range patterns {
		t.Run(p, func(t *testing.T) {
			e, err := BuildEpsilonNFA(p, testAlphabet(t, "ABC"))
			if err != nil {
				t.Fatalf("BuildEpsilonNFA() error = %v", err)
			}
			if e.States() != len(p)+3 {
				t.Errorf("States() = %d, want %d", e.States(), len(p)+3)
			}
			if e.Start() != 0 || int(e.Accept()) != len(p)+2 {
				t.Errorf("Start, Accept = %d, %d, want 0, %d", e.Start(), e.Accept(), len(p)+2)
			}
		})
	}
}

func TestBuildEpsilonNFAQuantifierEdges(t *testing.T) {
	// node of pattern position p is p+1
	tests := []struct {
		pattern string
		from    StateID
		want    []StateID // epsilon targets
	}{
		{pattern: "A*", from: 1, want: []StateID{3}},
		{pattern: "A*", from: 2, want: []StateID{1, 3}},
		{pattern: "A+", from: 1, want: nil},
		{pattern: "A+", from: 2, want: []StateID{1, 3}},
		{pattern: "A?", from: 1, want: []StateID{3}},
		{pattern: "A?", from: 2, want: []StateID{3}},
		{pattern: "(A)*", from: 1, want: []StateID{2, 5}},
		{pattern: "(A)*", from: 4, want: []StateID{1, 5}},
		{pattern: "A|B", from: 0, want: []StateID{3, 1}},
		{pattern: "A|B", from: 2, want: []StateID{5}},
		{pattern: "(A|B)", from: 1, want: []StateID{2, 4}},
		{pattern: "(A|B)", from: 3, want: []StateID{5}},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			e, err := BuildEpsilonNFA(tt.pattern, testAlphabet(t, "AB"))
			if err != nil {
				t.Fatalf("BuildEpsilonNFA() error = %v", err)
			}
			var got []StateID
			for _, edge := range e.Edges(tt.from) {
				if edge.IsEpsilon() {
					got = append(got, edge.Next)
				}
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("epsilon edges of %d mismatch (-want +got):\n%s", tt.from, diff)
			}
		})
	}
}

func TestBuildEpsilonNFAAny(t *testing.T) {
	e, err := BuildEpsilonNFA(".", testAlphabet(t, "ABC"))
	if err != nil {
		t.Fatal(err)
	}
	want := []Edge{{Label: 0, Next: 2}, {Label: 1, Next: 2}, {Label: 2, Next: 2}}
	if diff := cmp.Diff(want, e.Edges(1)); diff != "" {
		t.Errorf("'.' edges mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildEpsilonNFAErrors(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		pos     int
	}{
		{name: "unclosed group", pattern: "(A", pos: 0},
		{name: "unclosed inner group", pattern: "((A)", pos: 0},
		{name: "unopened group", pattern: "A)", pos: 1},
		{name: "leading star", pattern: "*A", pos: 0},
		{name: "quantifier after open", pattern: "(*A)", pos: 1},
		{name: "quantifier after bar", pattern: "A|+", pos: 2},
		{name: "stacked quantifiers", pattern: "A**", pos: 2},
		{name: "question after plus", pattern: "A+?", pos: 2},
		{name: "unknown symbol", pattern: "AC", pos: 1},
		{name: "whitespace", pattern: "A B", pos: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildEpsilonNFA(tt.pattern, testAlphabet(t, "AB"))
			if !errors.Is(err, ErrInvalidPattern) {
				t.Fatalf("BuildEpsilonNFA(%q) error = %v, want ErrInvalidPattern", tt.pattern, err)
			}
			var perr *PatternError
			if !errors.As(err, &perr) {
				t.Fatalf("error %T is not a *PatternError", err)
			}
			if perr.Pos != tt.pos {
				t.Errorf("Pos = %d, want %d (%v)", perr.Pos, tt.pos, err)
			}
			if perr.Pattern != tt.pattern {
				t.Errorf("Pattern = %q, want %q", perr.Pattern, tt.pattern)
			}
		})
	}
}

func TestBuildEpsilonNFANilAlphabet(t *testing.T) {
	if _, err := BuildEpsilonNFA("A", nil); !errors.Is(err, ErrInvalidPattern) {
		t.Errorf("BuildEpsilonNFA(nil alphabet) error = %v, want ErrInvalidPattern", err)
	}
}
