// Package sparse provides a sparse set of automaton node IDs.
//
// A sparse set supports O(1) insertion, membership testing and clearing.
// Subset construction uses one to drop duplicate NFA nodes while collecting
// the successor configuration of every (state, symbol) pair.
package sparse

// SparseSet is a set of uint32 values drawn from [0, capacity).
// The sparse array maps values to indices in the dense array, and a value is
// a member only if the two agree, so stale sparse entries are harmless.
type SparseSet struct {
	sparse []uint32 // maps value -> index in dense
	dense  []uint32 // members
}

// NewSparseSet creates a new sparse set that can hold values below capacity.
func NewSparseSet(capacity uint32) *SparseSet {
	return &SparseSet{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Insert adds a value to the set and reports whether it was newly added.
// Panics if value >= capacity.
func (s *SparseSet) Insert(value uint32) bool {
	if s.Contains(value) {
		return false
	}
	s.sparse[value] = uint32(len(s.dense))
	s.dense = append(s.dense, value)
	return true
}

// Contains returns true if the value is in the set
func (s *SparseSet) Contains(value uint32) bool {
	if int(value) >= len(s.sparse) {
		return false
	}
	idx := s.sparse[value]
	return int(idx) < len(s.dense) && s.dense[idx] == value
}

// Clear removes all elements from the set in O(1) time
func (s *SparseSet) Clear() {
	s.dense = s.dense[:0]
}
