package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babylonchain/staking-ledger/internal/ledger"
)

func (f *fixture) sendRewards(token common.Address, amount *uint256.Int) {
	f.fund(token, admin, amount)
	require.NoError(f.t, f.ledger.SendRewards(f.ctx, admin, token, amount))
}

func TestDistributeSameTokenEqualWeights(t *testing.T) {
	f := newFixture(t)
	f.stake(alice, validatorA, usdc, n(1000))
	f.stake(bob, validatorB, usdc, n(1000))
	f.sendRewards(usdc, n(1000))

	require.NoError(t, f.ledger.DistributeValidatorRewards(f.ctx, admin, usdc))

	for _, v := range []common.Address{validatorA, validatorB} {
		p := f.pool(v, usdc)
		assert.Equal(t, uint64(1250), p.StakedAmount.Uint64(), "delegators get half of 500")
		assert.Equal(t, uint64(1000), p.Shares.Uint64(), "rewards mint no shares")
		assert.Equal(t, uint64(250), p.AccumulatedRewards.Uint64())
		assert.Equal(t, uint64(250), p.RewardsForWithdrawal.Uint64(), "admin keeps the rest")
	}
	assert.Equal(t, uint64(1250), f.delegator(validatorA, usdc, alice).Balance.Uint64())

	info := f.ledger.RewardInfo(usdc)
	assert.Equal(t, uint64(1000), info.TotalAmount.Uint64())
	assert.Equal(t, uint64(1000), info.Distributed.Uint64())
	assert.Equal(t, uint64(2500), f.collateral(usdc).TotalLocked.Uint64())
	assert.Equal(t, 0, f.swap.calls)

	err := f.ledger.DistributeValidatorRewards(f.ctx, admin, usdc)
	assert.ErrorIs(t, err, ledger.ErrZeroAmount, "nothing left to distribute")
}

func TestDistributeSwapsOncePerCollateral(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ledger.SetValidatorEnabled(f.ctx, admin, validatorB, false))
	// Equal USD value on both sides: 1 weth at 2000 and 2000 usdc.
	f.stake(alice, validatorA, weth, e18(1))
	f.stake(bob, validatorA, usdc, n(2000e6))
	f.fund(weth, reserve, e18(10))
	f.sendRewards(usdc, n(1000e6))

	require.NoError(t, f.ledger.DistributeValidatorRewards(f.ctx, admin, usdc))

	assert.Equal(t, 1, f.swap.calls)
	// 250 usdc at 2000 usdc per weth.
	wethPool := f.pool(validatorA, weth)
	assert.Equal(t, "1125000000000000000", wethPool.StakedAmount.Dec())
	assert.Equal(t, "125000000000000000", wethPool.AccumulatedRewards.Dec())
	usdcPool := f.pool(validatorA, usdc)
	assert.Equal(t, uint64(2250e6), usdcPool.StakedAmount.Uint64())
	assert.Equal(t, uint64(500e6), usdcPool.RewardsForWithdrawal.Uint64())

	assert.Equal(t, "1125000000000000000", f.bank.BalanceOf(weth, custody).Dec())
	assert.Equal(t, f.collateral(weth).TotalLocked.Dec(), f.bank.BalanceOf(weth, custody).Dec())
	f.requireConsistent()
}

func TestDistributeSkipsDisabledCollateralPools(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ledger.SetValidatorEnabled(f.ctx, admin, validatorB, false))
	f.stake(alice, validatorA, weth, e18(1))
	f.stake(bob, validatorA, usdc, n(2000e6))
	require.NoError(t, f.ledger.SetCollateralEnabled(f.ctx, admin, weth, false))
	f.sendRewards(usdc, n(1000e6))

	require.NoError(t, f.ledger.DistributeValidatorRewards(f.ctx, admin, usdc))

	assert.Equal(t, 0, f.swap.calls)
	assert.Equal(t, e18(1), f.pool(validatorA, weth).StakedAmount)
	assert.Equal(t, uint64(2500e6), f.pool(validatorA, usdc).StakedAmount.Uint64())
}

func TestDistributeByWeight(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ledger.SetRewardWeightCoefficient(f.ctx, admin, validatorA, 3))
	assert.Equal(t, uint64(4), f.ledger.Params().WeightDenominator)
	f.stake(alice, validatorA, usdc, n(1000))
	f.stake(bob, validatorB, usdc, n(1000))
	f.sendRewards(usdc, n(1000))

	require.NoError(t, f.ledger.DistributeValidatorRewards(f.ctx, admin, usdc))

	assert.Equal(t, uint64(1375), f.pool(validatorA, usdc).StakedAmount.Uint64())
	assert.Equal(t, uint64(1125), f.pool(validatorB, usdc).StakedAmount.Uint64())
}

func TestDistributeRequiresAdminAndKnownToken(t *testing.T) {
	f := newFixture(t)
	assert.ErrorIs(t, f.ledger.DistributeValidatorRewards(f.ctx, alice, usdc), ledger.ErrBadRole)
	assert.ErrorIs(t, f.ledger.DistributeValidatorRewards(f.ctx, admin, carol), ledger.ErrNotFound)
	assert.ErrorIs(t, f.ledger.DistributeValidatorRewards(f.ctx, admin, usdc), ledger.ErrZeroAmount)

	f.fund(carol, admin, n(10))
	assert.ErrorIs(t, f.ledger.SendRewards(f.ctx, admin, carol, n(10)), ledger.ErrNotFound)
	assert.ErrorIs(t, f.ledger.SendRewards(f.ctx, admin, usdc, n(0)), ledger.ErrZeroAmount)
}

func TestDistributeRollsBackFailedSwap(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ledger.SetValidatorEnabled(f.ctx, admin, validatorB, false))
	f.stake(alice, validatorA, weth, e18(1))
	f.stake(bob, validatorA, usdc, n(2000e6))
	f.fund(weth, reserve, e18(10))
	f.sendRewards(usdc, n(1000e6))
	custodyBefore := f.bank.BalanceOf(usdc, custody)
	f.events = nil
	f.swap.fail = true

	err := f.ledger.DistributeValidatorRewards(f.ctx, admin, usdc)

	assert.ErrorIs(t, err, ledger.ErrCollaborator)
	assert.Equal(t, custodyBefore, f.bank.BalanceOf(usdc, custody), "swap input returned to custody")
	assert.True(t, f.bank.BalanceOf(usdc, reserve).IsZero())
	assert.True(t, f.ledger.RewardInfo(usdc).Distributed.IsZero())
	assert.Equal(t, uint64(2000e6), f.pool(validatorA, usdc).StakedAmount.Uint64())
	assert.True(t, f.pool(validatorA, usdc).RewardsForWithdrawal.IsZero())
	assert.Empty(t, f.events)
}

func TestNestedCallFromCollaboratorIsRejected(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ledger.SetValidatorEnabled(f.ctx, admin, validatorB, false))
	f.stake(alice, validatorA, weth, e18(1))
	f.stake(bob, validatorA, usdc, n(2000e6))
	f.fund(weth, reserve, e18(10))
	f.sendRewards(usdc, n(1000e6))
	f.fund(usdc, carol, n(10))

	var nested error
	f.swap.hook = func(ctx context.Context) error {
		_, nested = f.ledger.Stake(ctx, carol, validatorA, usdc, n(10))
		return nested
	}
	err := f.ledger.DistributeValidatorRewards(f.ctx, admin, usdc)

	assert.ErrorIs(t, nested, ledger.ErrReentrantCall)
	assert.ErrorIs(t, err, ledger.ErrCollaborator)
	assert.ErrorIs(t, err, ledger.ErrReentrantCall)
	assert.Equal(t, uint64(10), f.bank.BalanceOf(usdc, carol).Uint64())

	// The lock is released once the outer call returns.
	f.swap.hook = nil
	_, err = f.ledger.Stake(f.ctx, carol, validatorA, usdc, n(10))
	assert.NoError(t, err)
}

func TestExchangeValidatorRewards(t *testing.T) {
	f := newFixture(t)
	f.stake(alice, validatorA, usdc, n(1000))
	f.stake(bob, validatorB, usdc, n(1000))
	f.sendRewards(usdc, n(1000))
	require.NoError(t, f.ledger.DistributeValidatorRewards(f.ctx, admin, usdc))

	err := f.ledger.ExchangeValidatorRewards(f.ctx, alice, validatorA, usdc)
	assert.ErrorIs(t, err, ledger.ErrBadRole)

	require.NoError(t, f.ledger.ExchangeValidatorRewards(f.ctx, adminA, validatorA, usdc))

	p := f.pool(validatorA, usdc)
	assert.True(t, p.RewardsForWithdrawal.IsZero())
	assert.Equal(t, uint64(1500), p.StakedAmount.Uint64())
	assert.Equal(t, uint64(1200), p.Shares.Uint64())
	d := f.delegator(validatorA, usdc, adminA)
	assert.Equal(t, uint64(200), d.Shares.Uint64())
	assert.Equal(t, uint64(250), d.Balance.Uint64())
	assert.Equal(t, uint64(250), d.AccumulatedRewards.Uint64())
	assert.Equal(t, uint64(1250), f.delegator(validatorA, usdc, alice).Balance.Uint64())
	assert.Equal(t, uint64(2750), f.collateral(usdc).TotalLocked.Uint64())

	err = f.ledger.ExchangeValidatorRewards(f.ctx, adminA, validatorA, usdc)
	assert.ErrorIs(t, err, ledger.ErrZeroAmount)
	f.requireConsistent()
}

func TestExchangeValidatorRewardsCollateralGuards(t *testing.T) {
	f := newFixture(t)
	f.stake(alice, validatorA, usdc, n(1000))
	f.stake(bob, validatorB, usdc, n(1000))
	f.sendRewards(usdc, n(1000))
	require.NoError(t, f.ledger.DistributeValidatorRewards(f.ctx, admin, usdc))

	require.NoError(t, f.ledger.SetCollateralEnabled(f.ctx, admin, usdc, false))
	err := f.ledger.ExchangeValidatorRewards(f.ctx, adminA, validatorA, usdc)
	assert.ErrorIs(t, err, ledger.ErrCollateralDisabled)
	assert.Equal(t, uint64(250), f.pool(validatorA, usdc).RewardsForWithdrawal.Uint64())

	// A pool already above its cap still compounds its admin rewards.
	require.NoError(t, f.ledger.SetCollateralEnabled(f.ctx, admin, usdc, true))
	require.NoError(t, f.ledger.SetCollateralMaxStake(f.ctx, admin, usdc, n(1)))
	require.NoError(t, f.ledger.ExchangeValidatorRewards(f.ctx, adminA, validatorA, usdc))
	assert.Equal(t, uint64(1500), f.pool(validatorA, usdc).StakedAmount.Uint64())
	f.requireConsistent()
}

func TestNestedCallWithDerivedContextIsRejected(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ledger.SetValidatorEnabled(f.ctx, admin, validatorB, false))
	f.stake(alice, validatorA, weth, e18(1))
	f.stake(bob, validatorA, usdc, n(2000e6))
	f.fund(weth, reserve, e18(10))
	f.sendRewards(usdc, n(1000e6))

	var nested error
	f.swap.hook = func(ctx context.Context) error {
		derived, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()
		nested = f.ledger.SetPaused(derived, admin, true)
		return nil
	}
	require.NoError(t, f.ledger.DistributeValidatorRewards(f.ctx, admin, usdc))

	assert.ErrorIs(t, nested, ledger.ErrReentrantCall)
	assert.False(t, f.ledger.Params().Paused)
}
