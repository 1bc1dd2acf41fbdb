package ledger_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babylonchain/staking-ledger/internal/ledger"
)

// busyFixture runs a mix of operations so that every part of the state is
// populated.
func busyFixture(t *testing.T) *fixture {
	f := newFixture(t)
	f.stake(alice, validatorA, usdc, n(1000))
	f.stake(bob, validatorA, usdc, n(500))
	f.stake(carol, validatorB, usdc, n(700))
	f.stake(adminA, validatorA, usdc, n(100))
	f.sendRewards(usdc, n(333))
	require.NoError(t, f.ledger.DistributeValidatorRewards(f.ctx, admin, usdc))
	_, err := f.ledger.RequestUnstake(f.ctx, alice, validatorA, usdc, alice, n(250))
	require.NoError(t, err)
	_, err = f.ledger.RequestUnstake(f.ctx, bob, validatorA, usdc, carol, n(100))
	require.NoError(t, err)
	require.NoError(t, f.ledger.PauseUnstakeRequests(f.ctx, admin, validatorA, []uint64{1}, true))
	require.NoError(t, f.ledger.SlashValidatorCollateral(f.ctx, slasher, validatorB, usdc, 100))
	require.NoError(t, f.ledger.SetCollateralEnabled(f.ctx, admin, weth, false))
	return f
}

func TestSnapshotRoundTrip(t *testing.T) {
	f := busyFixture(t)
	state := f.ledger.Snapshot()

	raw, err := json.Marshal(state)
	require.NoError(t, err)
	var decoded ledger.State
	require.NoError(t, json.Unmarshal(raw, &decoded))

	g := newFixture(t)
	require.NoError(t, g.ledger.Restore(&decoded))
	assert.Equal(t, state, g.ledger.Snapshot())
	assert.Equal(t, f.pool(validatorA, usdc), g.pool(validatorA, usdc))
	assert.Equal(t, f.ledger.ActiveCollaterals(), g.ledger.ActiveCollaterals())
	g.requireConsistent()
}

func TestRestoredLedgerKeepsWorking(t *testing.T) {
	f := busyFixture(t)
	state := f.ledger.Snapshot()
	balances := f.bank.Snapshot()

	g := newFixture(t)
	require.NoError(t, g.bank.Restore(balances))
	require.NoError(t, g.ledger.Restore(state))
	g.now = f.now.Add(timelock * time.Second)

	w, err := g.ledger.WithdrawalRequest(validatorA, 0)
	require.NoError(t, err)
	require.NoError(t, g.ledger.ExecuteUnstake(g.ctx, validatorA, 0, 0))
	assert.Equal(t, w.Amount, g.bank.BalanceOf(usdc, alice))
	assert.ErrorIs(t, g.ledger.ExecuteUnstake(g.ctx, validatorA, 1, 1), ledger.ErrRequestPaused)
}

func TestRestoreRejectsInconsistentState(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *ledger.State)
	}{
		{"share sum", func(s *ledger.State) { s.Validators[0].Pools[0].Shares = "1" }},
		{"bad decimal", func(s *ledger.State) { s.Collaterals[0].TotalLocked = "12abc" }},
		{"weight denominator", func(s *ledger.State) { s.Params.WeightDenominator++ }},
		{"unknown active collateral", func(s *ledger.State) {
			s.ActiveCollaterals = append(s.ActiveCollaterals, carol)
		}},
		{"duplicate delegator", func(s *ledger.State) {
			p := &s.Validators[0].Pools[0]
			p.Delegators = append(p.Delegators, p.Delegators[0])
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := busyFixture(t)
			state := f.ledger.Snapshot()
			tt.mutate(state)

			before := f.ledger.Snapshot()
			assert.Error(t, f.ledger.Restore(state))
			assert.Equal(t, before, f.ledger.Snapshot(), "a rejected state leaves the ledger untouched")
		})
	}
}

func TestSharesStayConsistentAcrossOperations(t *testing.T) {
	f := busyFixture(t)
	f.requireConsistent()

	require.NoError(t, f.ledger.Liquidate(f.ctx, slasher, validatorA, f.ledger.ActiveCollaterals(), 700))
	f.requireConsistent()
	require.NoError(t, f.ledger.ExchangeValidatorRewards(f.ctx, adminB, validatorB, usdc))
	f.requireConsistent()
	require.NoError(t, f.ledger.CancelUnstake(f.ctx, alice, validatorA, 0, 0))
	f.requireConsistent()

	// Custody always covers what the ledger owes.
	owed := f.collateral(usdc).TotalLocked.Clone()
	owed.Add(owed, f.collateral(usdc).SlashedAmount)
	for _, id := range []common.Address{validatorA, validatorB} {
		p := f.pool(id, usdc)
		owed.Add(owed, p.RewardsForWithdrawal)
		owed.Add(owed, p.PendingWithdrawals)
	}
	assert.False(t, owed.Gt(f.bank.BalanceOf(usdc, custody)), "owed %s", owed.Dec())
}
