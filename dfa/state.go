package dfa

import (
	"encoding/binary"

	"github.com/dchest/siphash"
	"golang.org/x/exp/slices"

	"github.com/coregx/tinydfa/nfa"
)

// StateID identifies a DFA state.
// States are numbered densely in discovery order.
type StateID uint32

// Special state constants
const (
	// InvalidState represents an invalid/uninitialized state ID
	InvalidState StateID = 0xFFFFFFFF

	// StartState is always state ID 0: the configuration holding only the
	// NFA start node.
	StartState StateID = 0
)

// Fixed SipHash keys. Configuration keys never leave the process, so the
// only requirement is that they are stable within one determinization.
const (
	keyK0 = 0x7464666163666731
	keyK1 = 0x636f6e6669676b65
)

// configTable assigns DFA state IDs to NFA configurations.
//
// A configuration is a sorted, duplicate-free slice of NFA node IDs, so the
// same node set always has the same encoding regardless of the order in
// which its nodes were discovered. Configurations are bucketed by their
// SipHash digest and compared element-wise inside a bucket, so hash
// collisions can never merge distinct configurations.
type configTable struct {
	buckets map[uint64][]StateID
	configs [][]nfa.StateID
	buf     []byte
}

func newConfigTable(capacity int) *configTable {
	return &configTable{
		buckets: make(map[uint64][]StateID, capacity),
		configs: make([][]nfa.StateID, 0, capacity),
	}
}

// hash computes the key of a canonical configuration.
func (t *configTable) hash(config []nfa.StateID) uint64 {
	t.buf = t.buf[:0]
	for _, id := range config {
		t.buf = binary.LittleEndian.AppendUint32(t.buf, uint32(id))
	}
	return siphash.Hash(keyK0, keyK1, t.buf)
}

// lookup returns the state assigned to config, if any
func (t *configTable) lookup(config []nfa.StateID) (StateID, uint64, bool) {
	h := t.hash(config)
	for _, id := range t.buckets[h] {
		if slices.Equal(t.configs[id], config) {
			return id, h, true
		}
	}
	return InvalidState, h, false
}

// insert assigns the next state ID to config, whose hash is h.
// config is copied.
func (t *configTable) insert(config []nfa.StateID, h uint64) StateID {
	id := StateID(len(t.configs))
	t.configs = append(t.configs, slices.Clone(config))
	t.buckets[h] = append(t.buckets[h], id)
	return id
}

// len returns the number of assigned states
func (t *configTable) len() int {
	return len(t.configs)
}

// contains reports whether a canonical configuration includes node id
func contains(config []nfa.StateID, id nfa.StateID) bool {
	_, ok := slices.BinarySearch(config, id)
	return ok
}
