package nfa

import (
	"fmt"

	"github.com/coregx/tinydfa/internal/conv"
)

// BuildEpsilonNFA compiles pattern into an epsilon-NFA over alphabet.
//
// The pattern language has no escaping. Every byte is either an alphabet
// symbol or one of the metacharacters:
//
//	( )   grouping
//	|     alternation
//	*     zero or more
//	+     one or more
//	?     zero or one
//	.     any single alphabet symbol
//
// Pattern positions become nodes; operators are encoded as epsilon edges
// between positions rather than as a syntax tree. A '.' expands to one edge
// per alphabet symbol, so the automaton grows with len(pattern)*alphabet.Len()
// in the worst case; alphabets are capped at MaxAlphabetLen.
//
// Returns a *PatternError (wrapping ErrInvalidPattern) for unbalanced
// parentheses, a quantifier without an operand, or a byte that is neither a
// metacharacter nor an alphabet symbol.
func BuildEpsilonNFA(pattern string, alphabet *Alphabet) (*EpsilonNFA, error) {
	if alphabet == nil {
		return nil, &PatternError{Pattern: pattern, Pos: -1, Msg: "no alphabet"}
	}
	groups, err := scanGroups(pattern)
	if err != nil {
		return nil, err
	}

	n := len(pattern)
	b := NewBuilderWithCapacity(alphabet, n+3)
	start := b.AddNode()
	first := b.AddNodes(n + 1) // one node per position, plus the position after the last byte
	end := b.AddNode()
	pos := func(p int) StateID {
		return first + StateID(conv.IntToUint32(p))
	}

	for i := 0; i < n; i++ {
		c := pattern[i]
		switch c {
		case '(', ')':
			b.AddEpsilon(pos(i), pos(i+1))

		case '|':
			left, right := start, end
			if open := groups.enclosing[i]; open >= 0 {
				left, right = pos(open), pos(groups.partner[open])
			}
			b.AddEpsilon(left, pos(i+1)) // skip to this alternative
			b.AddEpsilon(pos(i), right)  // left branch done, leave the group

		case '*', '+', '?':
			atom, err := groups.operand(pattern, i)
			if err != nil {
				return nil, err
			}
			if c != '+' {
				b.AddEpsilon(pos(atom), pos(i+1))
			}
			if c != '?' {
				b.AddEpsilon(pos(i), pos(atom))
			}
			b.AddEpsilon(pos(i), pos(i+1))

		case '.':
			b.AddAny(pos(i), pos(i+1))

		default:
			sym, ok := alphabet.Index(c)
			if !ok {
				return nil, &PatternError{
					Pattern: pattern,
					Pos:     i,
					Msg:     fmt.Sprintf("symbol %q is not in alphabet %q", c, alphabet.String()),
				}
			}
			b.AddSymbol(pos(i), sym, pos(i+1))
		}
	}

	b.AddEpsilon(start, pos(0))
	b.AddEpsilon(pos(n), end)
	b.SetStart(start)
	b.SetAccept(end)

	enfa, err := b.Build()
	if err != nil {
		// Every edge above targets a node allocated up front.
		panic(fmt.Sprintf("nfa: epsilon-NFA for %q failed validation: %v", pattern, err))
	}
	return enfa, nil
}

// groupTable records the bracket structure of a pattern.
type groupTable struct {
	// partner[i] is the matching bracket of a '(' or ')' at i, else -1
	partner []int
	// enclosing[i] is the '(' enclosing the '|' at i, -1 at top level
	enclosing []int
}

// scanGroups pairs parentheses and resolves the group each '|' belongs to.
func scanGroups(pattern string) (*groupTable, error) {
	g := &groupTable{
		partner:   make([]int, len(pattern)),
		enclosing: make([]int, len(pattern)),
	}
	var stack []int
	for i := 0; i < len(pattern); i++ {
		g.partner[i] = -1
		g.enclosing[i] = -1
		switch pattern[i] {
		case '(':
			stack = append(stack, i)
		case ')':
			if len(stack) == 0 {
				return nil, &PatternError{Pattern: pattern, Pos: i, Msg: "unmatched ')'"}
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			g.partner[open] = i
			g.partner[i] = open
		case '|':
			if len(stack) > 0 {
				g.enclosing[i] = stack[len(stack)-1]
			}
		}
	}
	if len(stack) > 0 {
		return nil, &PatternError{Pattern: pattern, Pos: stack[len(stack)-1], Msg: "unmatched '('"}
	}
	return g, nil
}

// operand returns the position of the atom the quantifier at i applies to:
// the matching '(' if the quantifier follows a group, else the previous byte.
func (g *groupTable) operand(pattern string, i int) (int, error) {
	if i == 0 {
		return -1, &PatternError{Pattern: pattern, Pos: i, Msg: fmt.Sprintf("missing operand for %q", pattern[i])}
	}
	switch prev := pattern[i-1]; prev {
	case ')':
		return g.partner[i-1], nil
	case '(', '|', '*', '+', '?':
		return -1, &PatternError{
			Pattern: pattern,
			Pos:     i,
			Msg:     fmt.Sprintf("missing operand for %q after %q", pattern[i], prev),
		}
	default:
		return i - 1, nil
	}
}
