package ledger

import (
	"github.com/ethereum/go-ethereum/common"
)

// orderedSet keeps addresses in insertion order with O(1) membership, append
// and removal. Removal moves the last element into the freed slot.
type orderedSet struct {
	items []common.Address
	index map[common.Address]int
}

func newOrderedSet() *orderedSet {
	return &orderedSet{index: make(map[common.Address]int)}
}

func (s *orderedSet) Len() int {
	return len(s.items)
}

func (s *orderedSet) Contains(a common.Address) bool {
	_, ok := s.index[a]
	return ok
}

// Add appends a and reports whether it was not already present.
func (s *orderedSet) Add(a common.Address) bool {
	if s.Contains(a) {
		return false
	}
	s.index[a] = len(s.items)
	s.items = append(s.items, a)
	return true
}

// Remove swap-removes a and returns the position it occupied, or -1.
func (s *orderedSet) Remove(a common.Address) int {
	i, ok := s.index[a]
	if !ok {
		return -1
	}
	last := len(s.items) - 1
	if i != last {
		moved := s.items[last]
		s.items[i] = moved
		s.index[moved] = i
	}
	s.items = s.items[:last]
	delete(s.index, a)
	return i
}

// insertAt restores a at position i, undoing a Remove that returned i.
func (s *orderedSet) insertAt(a common.Address, i int) {
	if i == len(s.items) {
		s.Add(a)
		return
	}
	displaced := s.items[i]
	s.items[i] = a
	s.index[a] = i
	s.index[displaced] = len(s.items)
	s.items = append(s.items, displaced)
}

// popLast removes the most recently appended element, undoing an Add.
func (s *orderedSet) popLast() {
	last := len(s.items) - 1
	delete(s.index, s.items[last])
	s.items = s.items[:last]
}

// Items returns a copy of the elements in order.
func (s *orderedSet) Items() []common.Address {
	out := make([]common.Address, len(s.items))
	copy(out, s.items)
	return out
}
