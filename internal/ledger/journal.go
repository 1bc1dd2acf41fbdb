package ledger

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// txn journals every state write of one ledger operation so the operation can
// be undone as a whole. Amounts are never mutated in place: a write swaps the
// pointer and the journal keeps the previous one.
type txn struct {
	undo   []func()
	events []Event
	now    uint64
}

func (tx *txn) onRevert(fn func()) {
	tx.undo = append(tx.undo, fn)
}

func (tx *txn) revert() {
	for i := len(tx.undo) - 1; i >= 0; i-- {
		tx.undo[i]()
	}
	tx.undo = nil
	tx.events = nil
}

func (tx *txn) set(dst **uint256.Int, v *uint256.Int) {
	old := *dst
	tx.onRevert(func() { *dst = old })
	*dst = v
}

func (tx *txn) add(dst **uint256.Int, v *uint256.Int) error {
	sum, overflow := new(uint256.Int).AddOverflow(*dst, v)
	if overflow {
		return newError(CodeArithmetic, "addition overflow")
	}
	tx.set(dst, sum)
	return nil
}

func (tx *txn) sub(dst **uint256.Int, v *uint256.Int) error {
	diff, underflow := new(uint256.Int).SubOverflow(*dst, v)
	if underflow {
		return newError(CodeArithmetic, "subtraction underflow")
	}
	tx.set(dst, diff)
	return nil
}

func (tx *txn) setBool(dst *bool, v bool) {
	old := *dst
	tx.onRevert(func() { *dst = old })
	*dst = v
}

func (tx *txn) setUint64(dst *uint64, v uint64) {
	old := *dst
	tx.onRevert(func() { *dst = old })
	*dst = v
}

func (tx *txn) setAddress(dst *common.Address, v common.Address) {
	old := *dst
	tx.onRevert(func() { *dst = old })
	*dst = v
}

func (tx *txn) addToSet(s *orderedSet, a common.Address) {
	if s.Add(a) {
		tx.onRevert(s.popLast)
	}
}

func (tx *txn) removeFromSet(s *orderedSet, a common.Address) {
	if i := s.Remove(a); i >= 0 {
		tx.onRevert(func() { s.insertAt(a, i) })
	}
}

func (tx *txn) emit(e Event) {
	e.Time = tx.now
	tx.events = append(tx.events, e)
}
