package nfa

import (
	"fmt"
	"strings"
)

// StateID identifies an NFA node.
// This is a 32-bit unsigned integer for compact representation.
type StateID uint32

// InvalidState represents an invalid/uninitialized node ID
const InvalidState StateID = 0xFFFFFFFF

// Label is the symbol index carried by an edge, or Epsilon.
type Label int32

// Epsilon labels an edge that consumes no input
const Epsilon Label = -1

// Edge is a directed edge of an EpsilonNFA.
type Edge struct {
	Label Label
	Next  StateID
}

// IsEpsilon reports whether the edge consumes no input
func (e Edge) IsEpsilon() bool {
	return e.Label == Epsilon
}

// EpsilonNFA is a position automaton with epsilon edges.
//
// Nodes are stored in an arena indexed by StateID. Node 0 is the start
// sentinel, pattern position p is node p+1 and the last node is the end
// sentinel, which is the only accepting node and always the highest ID.
type EpsilonNFA struct {
	edges    [][]Edge
	start    StateID
	accept   StateID
	alphabet *Alphabet
}

// Start returns the start sentinel
func (e *EpsilonNFA) Start() StateID {
	return e.start
}

// Accept returns the accepting end sentinel
func (e *EpsilonNFA) Accept() StateID {
	return e.accept
}

// States returns the number of nodes
func (e *EpsilonNFA) States() int {
	return len(e.edges)
}

// Alphabet returns the alphabet the edges are labeled over
func (e *EpsilonNFA) Alphabet() *Alphabet {
	return e.alphabet
}

// Edges returns the outgoing edges of node id.
// Returns nil if the ID is invalid. The slice must not be modified.
func (e *EpsilonNFA) Edges(id StateID) []Edge {
	if int(id) >= len(e.edges) {
		return nil
	}
	return e.edges[id]
}

// String returns a human-readable representation of the epsilon-NFA
func (e *EpsilonNFA) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "EpsilonNFA{states: %d, start: %d, accept: %d}", len(e.edges), e.start, e.accept)
	for id, out := range e.edges {
		for _, edge := range out {
			if edge.IsEpsilon() {
				fmt.Fprintf(&sb, "\n  %d -ε-> %d", id, edge.Next)
			} else {
				fmt.Fprintf(&sb, "\n  %d -%c-> %d", id, e.alphabet.Symbol(int(edge.Label)), edge.Next)
			}
		}
	}
	return sb.String()
}

// NFA is an epsilon-free nondeterministic automaton over the node set of
// the EpsilonNFA it was reduced from.
//
// For every symbol and node the destinations are a sorted, duplicate-free
// slice. The accepting node is unchanged; whether the empty string is
// accepted is recorded separately since no edge can express it.
type NFA struct {
	// next[symbol][node] lists destination nodes
	next         [][][]StateID
	start        StateID
	accept       StateID
	acceptsEmpty bool
	alphabet     *Alphabet
}

// Next returns the destinations of node id on the symbol with index sym.
// The slice must not be modified.
func (n *NFA) Next(sym int, id StateID) []StateID {
	return n.next[sym][id]
}

// Start returns the initial node
func (n *NFA) Start() StateID {
	return n.start
}

// Accept returns the accepting node
func (n *NFA) Accept() StateID {
	return n.accept
}

// AcceptsEmpty reports whether the start node epsilon-reaches the accepting node
func (n *NFA) AcceptsEmpty() bool {
	return n.acceptsEmpty
}

// States returns the number of nodes
func (n *NFA) States() int {
	return int(n.accept) + 1
}

// Alphabet returns the alphabet the transitions are labeled over
func (n *NFA) Alphabet() *Alphabet {
	return n.alphabet
}

// Transitions returns the total number of (node, symbol, destination) triples
func (n *NFA) Transitions() int {
	total := 0
	for _, bySym := range n.next {
		for _, dst := range bySym {
			total += len(dst)
		}
	}
	return total
}

// String returns a human-readable representation of the NFA
func (n *NFA) String() string {
	return fmt.Sprintf("NFA{states: %d, transitions: %d, start: %d, accept: %d, acceptsEmpty: %v}",
		n.States(), n.Transitions(), n.start, n.accept, n.acceptsEmpty)
}
