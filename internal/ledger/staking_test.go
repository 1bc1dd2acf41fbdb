package ledger_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babylonchain/staking-ledger/internal/ledger"
)

func TestStakeIntoEmptyPool(t *testing.T) {
	f := newFixture(t)

	shares := f.stake(alice, validatorA, usdc, n(1000))

	assert.Equal(t, uint64(1000), shares.Uint64())
	p := f.pool(validatorA, usdc)
	assert.Equal(t, uint64(1000), p.StakedAmount.Uint64())
	assert.Equal(t, uint64(1000), p.Shares.Uint64())
	assert.Equal(t, uint64(1000), f.collateral(usdc).TotalLocked.Uint64())
	assert.Equal(t, uint64(1000), f.bank.BalanceOf(usdc, custody).Uint64())
	assert.True(t, f.bank.BalanceOf(usdc, alice).IsZero())

	require.Len(t, f.events, 1)
	e := f.events[0]
	assert.Equal(t, ledger.EventStaked, e.Type)
	assert.Equal(t, alice, e.Account)
	assert.Equal(t, "1000", e.Amount)
	assert.Equal(t, "1000", e.Shares)
	assert.Equal(t, uint64(start.Unix()), e.Time)
}

func TestSecondStakeAtParRate(t *testing.T) {
	f := newFixture(t)
	f.stake(alice, validatorA, usdc, n(1000))

	shares := f.stake(bob, validatorA, usdc, n(500))

	assert.Equal(t, uint64(500), shares.Uint64())
	p := f.pool(validatorA, usdc)
	assert.Equal(t, uint64(1500), p.StakedAmount.Uint64())
	assert.Equal(t, uint64(1500), p.Shares.Uint64())
	assert.Equal(t, 2, p.DelegatorCount)
	f.requireConsistent()
}

func TestStakeRejections(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(f *fixture)
		amount  uint64
		want    error
	}{
		{
			name:   "zero amount",
			amount: 0,
			want:   ledger.ErrZeroAmount,
		},
		{
			name: "ledger paused",
			prepare: func(f *fixture) {
				require.NoError(f.t, f.ledger.SetPaused(f.ctx, admin, true))
			},
			amount: 10,
			want:   ledger.ErrPaused,
		},
		{
			name: "delegator actions paused",
			prepare: func(f *fixture) {
				require.NoError(f.t, f.ledger.SetDelegatorActionPaused(f.ctx, admin, validatorA, true))
			},
			amount: 10,
			want:   ledger.ErrDelegatorActionPaused,
		},
		{
			name: "collateral disabled",
			prepare: func(f *fixture) {
				require.NoError(f.t, f.ledger.SetCollateralEnabled(f.ctx, admin, usdc, false))
			},
			amount: 10,
			want:   ledger.ErrCollateralDisabled,
		},
		{
			name: "cap exceeded",
			prepare: func(f *fixture) {
				require.NoError(f.t, f.ledger.SetCollateralMaxStake(f.ctx, admin, usdc, n(1500)))
				f.stake(bob, validatorA, usdc, n(1000))
			},
			amount: 600,
			want:   ledger.ErrStakeCapExceeded,
		},
		{
			name:   "insufficient token balance",
			amount: 10,
			want:   ledger.ErrCollaborator,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.prepare != nil {
				tt.prepare(f)
			}
			before := f.pool(validatorA, usdc)
			f.events = nil

			_, err := f.ledger.Stake(f.ctx, alice, validatorA, usdc, n(tt.amount))

			assert.ErrorIs(t, err, tt.want)
			after := f.pool(validatorA, usdc)
			assert.Equal(t, before.StakedAmount, after.StakedAmount)
			assert.Equal(t, before.Shares, after.Shares)
			assert.Equal(t, before.DelegatorCount, after.DelegatorCount)
			assert.Empty(t, f.events)
		})
	}
}

func TestStakeErrorCarriesContext(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ledger.SetCollateralMaxStake(f.ctx, admin, usdc, n(10)))
	f.fund(usdc, alice, n(11))

	_, err := f.ledger.Stake(f.ctx, alice, validatorA, usdc, n(11))

	var lerr *ledger.Error
	require.ErrorAs(t, err, &lerr)
	require.NotNil(t, lerr.Validator)
	require.NotNil(t, lerr.Collateral)
	assert.Equal(t, validatorA, *lerr.Validator)
	assert.Equal(t, usdc, *lerr.Collateral)
	assert.Equal(t, ledger.CodeStakeCapExceeded, ledger.CodeOf(err))
}

func TestStakeUnknownValidator(t *testing.T) {
	f := newFixture(t)
	f.fund(usdc, alice, n(10))
	_, err := f.ledger.Stake(f.ctx, alice, carol, usdc, n(10))
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestRequestUnstakeCapsToBalance(t *testing.T) {
	f := newFixture(t)
	f.stake(alice, validatorA, usdc, n(1000))

	id, err := f.ledger.RequestUnstake(f.ctx, alice, validatorA, usdc, bob, n(5000))
	require.NoError(t, err)

	w, err := f.ledger.WithdrawalRequest(validatorA, id)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), w.Amount.Uint64())
	assert.Equal(t, bob, w.Receiver)
	assert.Equal(t, alice, w.Delegator)
	assert.Equal(t, uint64(start.Unix())+timelock, w.Timelock)

	p := f.pool(validatorA, usdc)
	assert.True(t, p.Shares.IsZero())
	assert.True(t, p.StakedAmount.IsZero())
	assert.Equal(t, uint64(1000), p.PendingWithdrawals.Uint64())
	assert.True(t, f.collateral(usdc).TotalLocked.IsZero())

	_, err = f.ledger.RequestUnstake(f.ctx, alice, validatorA, usdc, bob, n(1))
	assert.ErrorIs(t, err, ledger.ErrInsufficientAmount)
}

func TestRequestUnstakeDefaultsRecipientToCaller(t *testing.T) {
	f := newFixture(t)
	f.stake(alice, validatorA, usdc, n(1000))

	id, err := f.ledger.RequestUnstake(f.ctx, alice, validatorA, usdc, common.Address{}, n(400))
	require.NoError(t, err)
	assert.Equal(t, uint64(0), id)

	w, err := f.ledger.WithdrawalRequest(validatorA, id)
	require.NoError(t, err)
	assert.Equal(t, alice, w.Receiver)
	assert.Equal(t, uint64(400), w.Amount.Uint64())

	id, err = f.ledger.RequestUnstake(f.ctx, alice, validatorA, usdc, alice, n(100))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), id, "request ids are sequential per validator")
}

func TestRequestUnstakeWithoutPosition(t *testing.T) {
	f := newFixture(t)
	f.stake(alice, validatorA, usdc, n(1000))
	_, err := f.ledger.RequestUnstake(f.ctx, bob, validatorA, usdc, bob, n(1))
	assert.ErrorIs(t, err, ledger.ErrInsufficientAmount)
}
