package nfa

import (
	"fmt"
)

// Builder constructs epsilon-NFAs incrementally using a low-level API.
// This provides full control over construction and is used by BuildEpsilonNFA.
//
// Edge targets may reference nodes that do not exist yet; they are checked
// once, by Validate. Edge sources must already exist.
type Builder struct {
	edges    [][]Edge
	start    StateID
	accept   StateID
	alphabet *Alphabet
}

// NewBuilder creates a new builder for edges labeled over alphabet
func NewBuilder(alphabet *Alphabet) *Builder {
	return NewBuilderWithCapacity(alphabet, 16)
}

// NewBuilderWithCapacity creates a new builder with the specified initial node capacity
func NewBuilderWithCapacity(alphabet *Alphabet, capacity int) *Builder {
	return &Builder{
		edges:    make([][]Edge, 0, capacity),
		start:    InvalidState,
		accept:   InvalidState,
		alphabet: alphabet,
	}
}

// AddNode adds a node without edges and returns its ID
func (b *Builder) AddNode() StateID {
	id := StateID(len(b.edges))
	b.edges = append(b.edges, nil)
	return id
}

// AddNodes adds n nodes and returns the ID of the first one.
// The new nodes have consecutive IDs.
func (b *Builder) AddNodes(n int) StateID {
	id := StateID(len(b.edges))
	for i := 0; i < n; i++ {
		b.edges = append(b.edges, nil)
	}
	return id
}

// AddEpsilon adds an edge from -> to that consumes no input
func (b *Builder) AddEpsilon(from, to StateID) {
	b.addEdge(from, Edge{Label: Epsilon, Next: to})
}

// AddSymbol adds an edge from -> to that consumes the symbol with index sym
func (b *Builder) AddSymbol(from StateID, sym int, to StateID) {
	b.addEdge(from, Edge{Label: Label(sym), Next: to})
}

// AddAny adds one edge from -> to for every symbol of the alphabet
func (b *Builder) AddAny(from, to StateID) {
	for sym := 0; sym < b.alphabet.Len(); sym++ {
		b.AddSymbol(from, sym, to)
	}
}

func (b *Builder) addEdge(from StateID, e Edge) {
	if int(from) >= len(b.edges) {
		panic(&BuildError{Message: "edge source out of bounds", StateID: from})
	}
	b.edges[from] = append(b.edges[from], e)
}

// SetStart sets the initial node
func (b *Builder) SetStart(start StateID) {
	b.start = start
}

// SetAccept sets the accepting node
func (b *Builder) SetAccept(accept StateID) {
	b.accept = accept
}

// States returns the current number of nodes
func (b *Builder) States() int {
	return len(b.edges)
}

// Validate checks that the epsilon-NFA is well-formed:
//   - start and accept are set and in range
//   - accept is the highest node ID
//   - every edge targets an existing node and carries a valid label
func (b *Builder) Validate() error {
	if b.start == InvalidState {
		return &BuildError{Message: "start state not set", StateID: InvalidState}
	}
	if int(b.start) >= len(b.edges) {
		return &BuildError{Message: "start state out of bounds", StateID: b.start}
	}
	if b.accept == InvalidState {
		return &BuildError{Message: "accept state not set", StateID: InvalidState}
	}
	if int(b.accept) != len(b.edges)-1 {
		return &BuildError{Message: "accept state must be the highest state", StateID: b.accept}
	}

	alphabetLen := Label(b.alphabet.Len())
	for i, out := range b.edges {
		id := StateID(i)
		for _, e := range out {
			if int(e.Next) >= len(b.edges) {
				return &BuildError{
					Message: fmt.Sprintf("invalid next state %d", e.Next),
					StateID: id,
				}
			}
			if e.Label != Epsilon && (e.Label < 0 || e.Label >= alphabetLen) {
				return &BuildError{
					Message: fmt.Sprintf("invalid edge label %d", e.Label),
					StateID: id,
				}
			}
		}
	}
	return nil
}

// Build validates and returns the constructed epsilon-NFA.
// The builder must not be used afterwards.
func (b *Builder) Build() (*EpsilonNFA, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &EpsilonNFA{
		edges:    b.edges,
		start:    b.start,
		accept:   b.accept,
		alphabet: b.alphabet,
	}, nil
}
