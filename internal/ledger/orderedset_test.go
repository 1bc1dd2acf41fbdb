package ledger

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

func addrs(n int) []common.Address {
	out := make([]common.Address, n)
	for i := range out {
		out[i] = common.BigToAddress(big.NewInt(int64(i + 1)))
	}
	return out
}

func TestOrderedSetAddRemove(t *testing.T) {
	a := addrs(4)
	s := newOrderedSet()
	for _, x := range a {
		assert.True(t, s.Add(x))
	}
	assert.False(t, s.Add(a[0]))
	assert.Equal(t, 4, s.Len())

	// Removing from the middle moves the last element into the hole.
	assert.Equal(t, 1, s.Remove(a[1]))
	assert.Equal(t, []common.Address{a[0], a[3], a[2]}, s.Items())
	assert.False(t, s.Contains(a[1]))
	assert.Equal(t, -1, s.Remove(a[1]))

	assert.Equal(t, 2, s.Remove(a[2]))
	assert.Equal(t, []common.Address{a[0], a[3]}, s.Items())
}

func TestOrderedSetUndo(t *testing.T) {
	a := addrs(4)
	s := newOrderedSet()
	for _, x := range a {
		s.Add(x)
	}
	before := s.Items()

	i := s.Remove(a[1])
	s.insertAt(a[1], i)
	assert.Equal(t, before, s.Items())
	assert.True(t, s.Contains(a[1]))

	i = s.Remove(a[3])
	s.insertAt(a[3], i)
	assert.Equal(t, before, s.Items())

	extra := common.HexToAddress("0xff")
	s.Add(extra)
	s.popLast()
	assert.Equal(t, before, s.Items())
	assert.False(t, s.Contains(extra))
}

func TestOrderedSetItemsIsCopy(t *testing.T) {
	a := addrs(2)
	s := newOrderedSet()
	s.Add(a[0])
	items := s.Items()
	items[0] = a[1]
	assert.True(t, s.Contains(a[0]))
	assert.Equal(t, a[0], s.Items()[0])
}
