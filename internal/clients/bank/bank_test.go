package bank_test

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babylonchain/staking-ledger/internal/clients/bank"
)

var (
	custody = common.HexToAddress("0xc0")
	token   = common.HexToAddress("0x70")
	alice   = common.HexToAddress("0xa1")
	bob     = common.HexToAddress("0xb0")
)

func TestTransferInAndOut(t *testing.T) {
	b := bank.New(custody)
	require.NoError(t, b.Credit(token, alice, uint256.NewInt(100)))

	require.NoError(t, b.TransferIn(context.Background(), token, alice, uint256.NewInt(60)))
	assert.Equal(t, uint64(40), b.BalanceOf(token, alice).Uint64())
	assert.Equal(t, uint64(60), b.BalanceOf(token, custody).Uint64())

	require.NoError(t, b.TransferOut(context.Background(), token, bob, uint256.NewInt(25)))
	assert.Equal(t, uint64(35), b.BalanceOf(token, custody).Uint64())
	assert.Equal(t, uint64(25), b.BalanceOf(token, bob).Uint64())
}

func TestMoveInsufficientBalance(t *testing.T) {
	b := bank.New(custody)
	require.NoError(t, b.Credit(token, alice, uint256.NewInt(10)))

	err := b.Move(token, alice, bob, uint256.NewInt(11))
	assert.True(t, errors.Is(err, bank.ErrInsufficientBalance))
	assert.Equal(t, uint64(10), b.BalanceOf(token, alice).Uint64())
	assert.True(t, b.BalanceOf(token, bob).IsZero())
}

func TestRevertToUndoesWrites(t *testing.T) {
	b := bank.New(custody)
	require.NoError(t, b.Credit(token, alice, uint256.NewInt(100)))

	cp := b.Checkpoint()
	require.NoError(t, b.Move(token, alice, bob, uint256.NewInt(30)))
	require.NoError(t, b.Credit(token, bob, uint256.NewInt(5)))
	b.RevertTo(cp)

	assert.Equal(t, uint64(100), b.BalanceOf(token, alice).Uint64())
	assert.True(t, b.BalanceOf(token, bob).IsZero())
}

func TestCommitKeepsWrites(t *testing.T) {
	b := bank.New(custody)
	require.NoError(t, b.Credit(token, alice, uint256.NewInt(100)))

	cp := b.Checkpoint()
	require.NoError(t, b.Move(token, alice, bob, uint256.NewInt(30)))
	b.Commit(cp)

	// A later section cannot reach back past a committed one.
	cp = b.Checkpoint()
	b.RevertTo(cp)
	assert.Equal(t, uint64(70), b.BalanceOf(token, alice).Uint64())
	assert.Equal(t, uint64(30), b.BalanceOf(token, bob).Uint64())
}

func TestSnapshotRestore(t *testing.T) {
	b := bank.New(custody)
	require.NoError(t, b.Credit(token, alice, uint256.NewInt(7)))
	require.NoError(t, b.Credit(token, bob, uint256.NewInt(9)))

	snapshot := b.Snapshot()
	require.Len(t, snapshot, 2)

	restored := bank.New(custody)
	require.NoError(t, restored.Restore(snapshot))
	assert.Equal(t, snapshot, restored.Snapshot())
	assert.Equal(t, []bank.Balance{{Token: token, Account: alice, Amount: "7"}}, restored.Balances(alice))
}

func TestRestoreRejectsBadAmount(t *testing.T) {
	b := bank.New(custody)
	err := b.Restore([]bank.Balance{{Token: token, Account: alice, Amount: "abc"}})
	assert.Error(t, err)
}
