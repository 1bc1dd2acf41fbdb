package ledger_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babylonchain/staking-ledger/internal/ledger"
)

func TestAddCollateral(t *testing.T) {
	f := newFixture(t)
	dai := common.HexToAddress("0xda")

	assert.ErrorIs(t, f.ledger.AddCollateral(f.ctx, alice, dai, n(1), 18, true), ledger.ErrBadRole)
	assert.ErrorIs(t, f.ledger.AddCollateral(f.ctx, admin, usdc, n(1), 6, true), ledger.ErrAlreadyExists)
	assert.ErrorIs(t, f.ledger.AddCollateral(f.ctx, admin, common.Address{}, n(1), 6, true), ledger.ErrInvalidArgument)
	assert.ErrorIs(t, f.ledger.AddCollateral(f.ctx, admin, dai, n(1), 37, true), ledger.ErrInvalidArgument)

	require.NoError(t, f.ledger.AddCollateral(f.ctx, admin, dai, n(500), 18, true))
	c := f.collateral(dai)
	assert.True(t, c.IsEnabled)
	assert.True(t, c.IsUSDStable)
	assert.Equal(t, uint8(18), c.Decimals)
	assert.Equal(t, uint64(500), c.MaxStakeAmount.Uint64())
	assert.Equal(t, []common.Address{usdc, weth, dai}, f.ledger.ActiveCollaterals())
	assert.Equal(t, []ledger.EventType{ledger.EventCollateralAdded}, f.eventTypes())
}

func TestSetCollateralEnabled(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.ledger.SetCollateralEnabled(f.ctx, admin, usdc, false))
	assert.Equal(t, []common.Address{weth}, f.ledger.ActiveCollaterals())
	assert.False(t, f.collateral(usdc).IsEnabled)

	// Disabling twice is a no-op.
	require.NoError(t, f.ledger.SetCollateralEnabled(f.ctx, admin, usdc, false))
	assert.Len(t, f.events, 1)

	require.NoError(t, f.ledger.SetCollateralEnabled(f.ctx, admin, usdc, true))
	assert.Equal(t, []common.Address{weth, usdc}, f.ledger.ActiveCollaterals())
	assert.Len(t, f.ledger.Collaterals(), 2)
	assert.ErrorIs(t, f.ledger.SetCollateralEnabled(f.ctx, admin, carol, true), ledger.ErrNotFound)
}

func TestValidatorRegistry(t *testing.T) {
	f := newFixture(t)
	validatorC := common.HexToAddress("0x1c")

	assert.ErrorIs(t, f.ledger.AddValidator(f.ctx, admin, validatorA, adminA, 1, 5000), ledger.ErrAlreadyExists)
	assert.ErrorIs(t, f.ledger.AddValidator(f.ctx, admin, validatorC, carol, 1, 500), ledger.ErrInvalidArgument,
		"profit sharing below the minimum")
	assert.ErrorIs(t, f.ledger.AddValidator(f.ctx, admin, validatorC, common.Address{}, 1, 5000), ledger.ErrInvalidArgument)

	require.NoError(t, f.ledger.AddValidator(f.ctx, admin, validatorC, carol, 5, 2000))
	assert.Equal(t, uint64(7), f.ledger.Params().WeightDenominator)
	assert.Equal(t, []common.Address{validatorA, validatorB, validatorC}, f.ledger.ActiveValidators())

	require.NoError(t, f.ledger.SetValidatorEnabled(f.ctx, admin, validatorA, false))
	assert.Equal(t, uint64(6), f.ledger.Params().WeightDenominator)
	assert.Equal(t, []common.Address{validatorC, validatorB}, f.ledger.ActiveValidators())

	require.NoError(t, f.ledger.SetRewardWeightCoefficient(f.ctx, admin, validatorA, 10))
	assert.Equal(t, uint64(6), f.ledger.Params().WeightDenominator, "disabled validators do not count")
	require.NoError(t, f.ledger.SetValidatorEnabled(f.ctx, admin, validatorA, true))
	assert.Equal(t, uint64(16), f.ledger.Params().WeightDenominator)

	v, err := f.ledger.Validator(validatorC)
	require.NoError(t, err)
	assert.Equal(t, carol, v.Admin)
	assert.Equal(t, uint64(2000), v.ProfitSharingBPS)
	assert.Len(t, f.ledger.Validators(), 3)
}

func TestSetProfitSharing(t *testing.T) {
	f := newFixture(t)

	assert.ErrorIs(t, f.ledger.SetProfitSharing(f.ctx, admin, validatorA, 6000), ledger.ErrBadRole)
	assert.ErrorIs(t, f.ledger.SetProfitSharing(f.ctx, adminA, validatorA, 999), ledger.ErrInvalidArgument)
	assert.ErrorIs(t, f.ledger.SetProfitSharing(f.ctx, adminA, validatorA, 10001), ledger.ErrInvalidArgument)

	require.NoError(t, f.ledger.SetProfitSharing(f.ctx, adminA, validatorA, 8000))
	v, err := f.ledger.Validator(validatorA)
	require.NoError(t, err)
	assert.Equal(t, uint64(8000), v.ProfitSharingBPS)

	require.NoError(t, f.ledger.SetMinProfitSharingBPS(f.ctx, admin, 9000))
	assert.ErrorIs(t, f.ledger.SetProfitSharing(f.ctx, adminA, validatorA, 8500), ledger.ErrInvalidArgument)
}

func TestParams(t *testing.T) {
	f := newFixture(t)

	assert.ErrorIs(t, f.ledger.SetWithdrawTimelock(f.ctx, alice, 1), ledger.ErrBadRole)
	require.NoError(t, f.ledger.SetWithdrawTimelock(f.ctx, admin, 60))
	assert.ErrorIs(t, f.ledger.SetSlashingTreasury(f.ctx, admin, common.Address{}), ledger.ErrInvalidArgument)
	require.NoError(t, f.ledger.SetSlashingTreasury(f.ctx, admin, carol))
	assert.ErrorIs(t, f.ledger.SetMinProfitSharingBPS(f.ctx, admin, 10001), ledger.ErrInvalidArgument)

	p := f.ledger.Params()
	assert.Equal(t, uint64(60), p.WithdrawTimelock)
	assert.Equal(t, carol, p.SlashingTreasury)
	require.Len(t, f.events, 2)
	assert.Equal(t, "withdraw_timelock", f.events[0].Param)
	assert.Equal(t, "slashing_treasury", f.events[1].Param)
}

func TestPauseBlocksDelegatorOperations(t *testing.T) {
	f := newFixture(t)
	f.stake(alice, validatorA, usdc, n(1000))
	_, err := f.ledger.RequestUnstake(f.ctx, alice, validatorA, usdc, alice, n(100))
	require.NoError(t, err)
	require.NoError(t, f.ledger.SetPaused(f.ctx, admin, true))

	_, err = f.ledger.RequestUnstake(f.ctx, alice, validatorA, usdc, alice, n(100))
	assert.ErrorIs(t, err, ledger.ErrPaused)
	assert.ErrorIs(t, f.ledger.ExecuteUnstake(f.ctx, validatorA, 0, 0), ledger.ErrPaused)
	assert.ErrorIs(t, f.ledger.CancelUnstake(f.ctx, alice, validatorA, 0, 0), ledger.ErrPaused)
	assert.ErrorIs(t, f.ledger.ExchangeValidatorRewards(f.ctx, adminA, validatorA, usdc), ledger.ErrPaused)

	// Admin operations stay available.
	assert.NoError(t, f.ledger.SetCollateralMaxStake(f.ctx, admin, usdc, n(1)))
	require.NoError(t, f.ledger.SetPaused(f.ctx, admin, false))
	assert.NoError(t, f.ledger.CancelUnstake(f.ctx, alice, validatorA, 0, 0))
}

func TestNewValidatesCollaborators(t *testing.T) {
	_, err := ledger.New(ledger.Config{}, nil, staticOracle{}, &fakeSwap{}, roles{})
	assert.ErrorIs(t, err, ledger.ErrInvalidArgument)

	_, err = ledger.New(ledger.Config{MinProfitSharingBPS: 10001}, newFixture(t).bank, staticOracle{}, &fakeSwap{}, roles{})
	assert.ErrorIs(t, err, ledger.ErrInvalidArgument)
}

func TestParseRole(t *testing.T) {
	role, err := ledger.ParseRole("slasher")
	require.NoError(t, err)
	assert.Equal(t, ledger.SlasherRole, role)

	_, err = ledger.ParseRole("operator")
	assert.ErrorIs(t, err, ledger.ErrUnknownRole)
}
