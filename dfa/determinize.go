package dfa

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/coregx/tinydfa/internal/conv"
	"github.com/coregx/tinydfa/internal/sparse"
	"github.com/coregx/tinydfa/nfa"
)

// Determinize converts an epsilon-free NFA into an equivalent total DFA by
// subset construction.
//
// Algorithm:
//  1. State 0 is the configuration {n.Start()}; it accepts iff the NFA
//     accepts the empty string
//  2. Take the oldest unexplored configuration (FIFO)
//  3. For every symbol, union the NFA successors of its nodes and
//     canonicalize the union (sorted, duplicate-free)
//  4. Unseen configurations get the next state ID and are queued; a
//     configuration accepts iff it contains n.Accept()
//  5. Stop when no configuration is left unexplored
//
// The empty configuration is an ordinary (dead) state, so the transition
// table is total. Returns ErrStateLimitExceeded if more than
// config.MaxStates states are discovered.
func Determinize(n *nfa.NFA, config Config) (*DFA, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	k := n.Alphabet().Len()
	table := newConfigTable(64)
	accept := make([]bool, 0, 64)
	trans := make([]StateID, 0, 64*k)

	discover := func(cfg []nfa.StateID, h uint64, isMatch bool) StateID {
		id := table.insert(cfg, h)
		accept = append(accept, isMatch)
		for sym := 0; sym < k; sym++ {
			trans = append(trans, InvalidState)
		}
		return id
	}

	startCfg := []nfa.StateID{n.Start()}
	_, h, _ := table.lookup(startCfg)
	discover(startCfg, h, n.AcceptsEmpty())

	succ := sparse.NewSparseSet(conv.IntToUint32(n.States()))
	scratch := make([]nfa.StateID, 0, n.States())

	// States are numbered in discovery order, so walking the IDs in order
	// is a FIFO over the worklist.
	for cur := 0; cur < table.len(); cur++ {
		cfg := table.configs[cur]
		for sym := 0; sym < k; sym++ {
			succ.Clear()
			scratch = scratch[:0]
			for _, id := range cfg {
				for _, dst := range n.Next(sym, id) {
					if succ.Insert(uint32(dst)) {
						scratch = append(scratch, dst)
					}
				}
			}
			slices.Sort(scratch)

			id, h, ok := table.lookup(scratch)
			if !ok {
				if table.len() >= config.MaxStates {
					return nil, &DFAError{
						Kind:    StateLimitExceeded,
						Message: fmt.Sprintf("DFA state limit exceeded: more than %d states", config.MaxStates),
					}
				}
				id = discover(scratch, h, contains(scratch, n.Accept()))
			}
			trans[cur*k+sym] = id
		}
	}

	for i, next := range trans {
		if next == InvalidState {
			panic(fmt.Sprintf("dfa: transition %d of state %d left undefined", i%k, i/k))
		}
	}

	return &DFA{
		alphabet: n.Alphabet(),
		stride:   k,
		trans:    trans,
		accept:   accept,
	}, nil
}
