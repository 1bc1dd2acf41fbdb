package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babylonchain/staking-ledger/internal/ledger"
)

func TestExecuteUnstakeAfterTimelock(t *testing.T) {
	f := newFixture(t)
	f.stake(alice, validatorA, usdc, n(1000))
	id, err := f.ledger.RequestUnstake(f.ctx, alice, validatorA, usdc, alice, n(500))
	require.NoError(t, err)

	f.advance(timelock*time.Second - time.Second)
	err = f.ledger.ExecuteUnstake(f.ctx, validatorA, id, id)
	assert.ErrorIs(t, err, ledger.ErrTimelock)
	assert.True(t, f.bank.BalanceOf(usdc, alice).IsZero())

	f.advance(time.Second)
	require.NoError(t, f.ledger.ExecuteUnstake(f.ctx, validatorA, id, id))
	assert.Equal(t, uint64(500), f.bank.BalanceOf(usdc, alice).Uint64())
	assert.Equal(t, uint64(500), f.bank.BalanceOf(usdc, custody).Uint64())

	w, err := f.ledger.WithdrawalRequest(validatorA, id)
	require.NoError(t, err)
	assert.True(t, w.Executed)
	assert.True(t, f.pool(validatorA, usdc).PendingWithdrawals.IsZero())
}

func TestExecuteUnstakeIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.stake(alice, validatorA, usdc, n(1000))
	_, err := f.ledger.RequestUnstake(f.ctx, alice, validatorA, usdc, alice, n(300))
	require.NoError(t, err)
	_, err = f.ledger.RequestUnstake(f.ctx, alice, validatorA, usdc, bob, n(200))
	require.NoError(t, err)
	f.advance(timelock * time.Second)

	require.NoError(t, f.ledger.ExecuteUnstake(f.ctx, validatorA, 0, 1))
	require.NoError(t, f.ledger.ExecuteUnstake(f.ctx, validatorA, 0, 1))

	assert.Equal(t, uint64(300), f.bank.BalanceOf(usdc, alice).Uint64())
	assert.Equal(t, uint64(200), f.bank.BalanceOf(usdc, bob).Uint64())
}

func TestExecuteUnstakeRangeIsAtomic(t *testing.T) {
	f := newFixture(t)
	f.stake(alice, validatorA, usdc, n(1000))
	_, err := f.ledger.RequestUnstake(f.ctx, alice, validatorA, usdc, alice, n(100))
	require.NoError(t, err)
	f.advance(time.Hour)
	_, err = f.ledger.RequestUnstake(f.ctx, alice, validatorA, usdc, alice, n(100))
	require.NoError(t, err)

	// The first request is due, the second is not yet.
	f.advance(timelock*time.Second - time.Hour)
	err = f.ledger.ExecuteUnstake(f.ctx, validatorA, 0, 1)

	var lerr *ledger.Error
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, ledger.CodeTimelock, lerr.Code)
	require.NotNil(t, lerr.RequestID)
	assert.Equal(t, uint64(1), *lerr.RequestID)

	w, err := f.ledger.WithdrawalRequest(validatorA, 0)
	require.NoError(t, err)
	assert.False(t, w.Executed)
	assert.True(t, f.bank.BalanceOf(usdc, alice).IsZero())
}

func TestExecuteUnstakeInvalidRange(t *testing.T) {
	f := newFixture(t)
	f.stake(alice, validatorA, usdc, n(1000))
	_, err := f.ledger.RequestUnstake(f.ctx, alice, validatorA, usdc, alice, n(100))
	require.NoError(t, err)

	assert.ErrorIs(t, f.ledger.ExecuteUnstake(f.ctx, validatorA, 0, 1), ledger.ErrInvalidRange)
	assert.ErrorIs(t, f.ledger.ExecuteUnstake(f.ctx, validatorA, 1, 0), ledger.ErrInvalidRange)
	assert.ErrorIs(t, f.ledger.ExecuteUnstake(f.ctx, validatorB, 0, 0), ledger.ErrInvalidRange)
}

func TestPausedRequestCannotExecute(t *testing.T) {
	f := newFixture(t)
	f.stake(alice, validatorA, usdc, n(1000))
	id, err := f.ledger.RequestUnstake(f.ctx, alice, validatorA, usdc, alice, n(100))
	require.NoError(t, err)
	f.advance(timelock * time.Second)

	require.NoError(t, f.ledger.PauseUnstakeRequests(f.ctx, admin, validatorA, []uint64{id}, true))
	assert.ErrorIs(t, f.ledger.ExecuteUnstake(f.ctx, validatorA, id, id), ledger.ErrRequestPaused)

	require.NoError(t, f.ledger.PauseUnstakeRequests(f.ctx, admin, validatorA, []uint64{id}, false))
	require.NoError(t, f.ledger.ExecuteUnstake(f.ctx, validatorA, id, id))
	assert.Equal(t, uint64(100), f.bank.BalanceOf(usdc, alice).Uint64())
}

func TestPauseUnstakeRequestsValidation(t *testing.T) {
	f := newFixture(t)
	f.stake(alice, validatorA, usdc, n(1000))
	_, err := f.ledger.RequestUnstake(f.ctx, alice, validatorA, usdc, alice, n(100))
	require.NoError(t, err)

	err = f.ledger.PauseUnstakeRequests(f.ctx, alice, validatorA, []uint64{0}, true)
	assert.ErrorIs(t, err, ledger.ErrBadRole)

	err = f.ledger.PauseUnstakeRequests(f.ctx, admin, validatorA, []uint64{0, 5}, true)
	assert.ErrorIs(t, err, ledger.ErrInvalidRange)
	w, err := f.ledger.WithdrawalRequest(validatorA, 0)
	require.NoError(t, err)
	assert.False(t, w.Paused, "a failed call leaves earlier ids untouched")
}

func TestCancelUnstakeRestoresShares(t *testing.T) {
	f := newFixture(t)
	f.stake(alice, validatorA, usdc, n(1000))
	f.stake(bob, validatorA, usdc, n(1000))
	id, err := f.ledger.RequestUnstake(f.ctx, alice, validatorA, usdc, alice, n(500))
	require.NoError(t, err)

	assert.ErrorIs(t, f.ledger.CancelUnstake(f.ctx, bob, validatorA, id, id), ledger.ErrBadRole)

	require.NoError(t, f.ledger.CancelUnstake(f.ctx, alice, validatorA, id, id))
	d := f.delegator(validatorA, usdc, alice)
	assert.Equal(t, uint64(1000), d.Shares.Uint64())
	assert.Equal(t, uint64(2000), f.pool(validatorA, usdc).StakedAmount.Uint64())
	assert.Equal(t, uint64(2000), f.collateral(usdc).TotalLocked.Uint64())

	assert.ErrorIs(t, f.ledger.CancelUnstake(f.ctx, alice, validatorA, id, id), ledger.ErrAlreadyExecuted)

	// A cancelled request is consumed and never pays out.
	f.advance(timelock * time.Second)
	require.NoError(t, f.ledger.ExecuteUnstake(f.ctx, validatorA, id, id))
	assert.True(t, f.bank.BalanceOf(usdc, alice).IsZero())
	f.requireConsistent()
}

func TestCancelUnstakeAtAppreciatedRate(t *testing.T) {
	f := newFixture(t)
	f.stake(alice, validatorA, usdc, n(1000))
	id, err := f.ledger.RequestUnstake(f.ctx, alice, validatorA, usdc, alice, n(500))
	require.NoError(t, err)

	// Rewards lift the rate to 2 tokens per share.
	f.fund(usdc, admin, n(2000))
	require.NoError(t, f.ledger.SendRewards(f.ctx, admin, usdc, n(2000)))
	require.NoError(t, f.ledger.DistributeValidatorRewards(f.ctx, admin, usdc))
	p := f.pool(validatorA, usdc)
	require.Equal(t, uint64(1000), p.StakedAmount.Uint64())
	require.Equal(t, uint64(500), p.Shares.Uint64())

	require.NoError(t, f.ledger.CancelUnstake(f.ctx, alice, validatorA, id, id))
	d := f.delegator(validatorA, usdc, alice)
	assert.Equal(t, uint64(750), d.Shares.Uint64())
	assert.Equal(t, uint64(1500), d.Balance.Uint64())
}

func TestCancelUnstakeRespectsDelegatorPause(t *testing.T) {
	f := newFixture(t)
	f.stake(alice, validatorA, usdc, n(1000))
	id, err := f.ledger.RequestUnstake(f.ctx, alice, validatorA, usdc, alice, n(500))
	require.NoError(t, err)
	require.NoError(t, f.ledger.SetDelegatorActionPaused(f.ctx, admin, validatorA, true))

	assert.ErrorIs(t, f.ledger.CancelUnstake(f.ctx, alice, validatorA, id, id), ledger.ErrDelegatorActionPaused)
	_, err = f.ledger.RequestUnstake(f.ctx, alice, validatorA, usdc, alice, n(1))
	assert.ErrorIs(t, err, ledger.ErrDelegatorActionPaused)
}
