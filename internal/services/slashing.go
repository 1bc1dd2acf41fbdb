package services

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/rs/zerolog/log"

	"github.com/babylonchain/staking-ledger/internal/ledger"
	"github.com/babylonchain/staking-ledger/internal/types"
)

// SlashingIncident is a validator misbehaviour reported by the slashing
// queue.
type SlashingIncident struct {
	Validator        common.Address
	ProblemTimestamp uint64
	// SlashPercent is an 18 decimal fraction applied to pending withdrawals.
	SlashPercent *uint256.Int
	// LiquidateBPS, when non zero, also liquidates the listed collaterals.
	LiquidateBPS uint64
	Collaterals  []common.Address
}

func (s *Services) SlashValidatorCollateral(
	ctx context.Context, caller, validator, collateral common.Address, bps uint64,
) *types.Error {
	return s.execute(ctx, "slash_validator_collateral", func(ctx context.Context) error {
		return s.Ledger.SlashValidatorCollateral(ctx, caller, validator, collateral, bps)
	})
}

func (s *Services) SlashValidatorRewards(
	ctx context.Context, caller, validator, collateral common.Address, bps uint64,
) *types.Error {
	return s.execute(ctx, "slash_validator_rewards", func(ctx context.Context) error {
		return s.Ledger.SlashValidatorRewards(ctx, caller, validator, collateral, bps)
	})
}

func (s *Services) Liquidate(
	ctx context.Context, caller, validator common.Address, collaterals []common.Address, bps uint64,
) *types.Error {
	return s.execute(ctx, "liquidate", func(ctx context.Context) error {
		return s.Ledger.Liquidate(ctx, caller, validator, collaterals, bps)
	})
}

func (s *Services) LiquidateDelegator(
	ctx context.Context, caller, validator, collateral, delegator common.Address, bps uint64,
) *types.Error {
	return s.execute(ctx, "liquidate_delegator", func(ctx context.Context) error {
		return s.Ledger.LiquidateDelegator(ctx, caller, validator, collateral, delegator, bps)
	})
}

func (s *Services) SlashUnstakeRequests(
	ctx context.Context, caller, validator common.Address, problemTimestamp uint64, slashPercent *uint256.Int,
) *types.Error {
	return s.execute(ctx, "slash_unstake_requests", func(ctx context.Context) error {
		return s.Ledger.SlashUnstakeRequests(ctx, caller, validator, problemTimestamp, slashPercent)
	})
}

func (s *Services) WithdrawSlashingTreasury(ctx context.Context, caller common.Address) *types.Error {
	return s.execute(ctx, "withdraw_slashing_treasury", func(ctx context.Context) error {
		return s.Ledger.WithdrawSlashingTreasury(ctx, caller)
	})
}

// ProcessSlashingIncident applies an incident as the system slasher. The
// withdrawal slash and the liquidation commit together, so an incident that
// fails leaves nothing behind for a redelivery to slash again.
func (s *Services) ProcessSlashingIncident(ctx context.Context, incident SlashingIncident) *types.Error {
	slasher, err := s.systemCaller(ledger.SlasherRole)
	if err != nil {
		return err
	}
	apiErr := s.execute(ctx, "slashing_incident", func(ctx context.Context) error {
		return s.Ledger.SlashIncident(
			ctx, slasher, incident.Validator, incident.ProblemTimestamp,
			incident.SlashPercent, incident.Collaterals, incident.LiquidateBPS,
		)
	})
	if apiErr != nil {
		return apiErr
	}
	log.Ctx(ctx).Info().
		Str("validator", incident.Validator.Hex()).
		Uint64("liquidate_bps", incident.LiquidateBPS).
		Msg("slashing incident processed")
	return nil
}
