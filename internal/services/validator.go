package services

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/babylonchain/staking-ledger/internal/types"
)

// ExchangeValidatorRewards restakes the validator's accrued admin rewards in
// collateral on behalf of the validator admin.
func (s *Services) ExchangeValidatorRewards(
	ctx context.Context, caller, validator, collateral common.Address,
) *types.Error {
	return s.execute(ctx, "exchange_validator_rewards", func(ctx context.Context) error {
		return s.Ledger.ExchangeValidatorRewards(ctx, caller, validator, collateral)
	})
}

func (s *Services) SetProfitSharing(
	ctx context.Context, caller, validator common.Address, bps uint64,
) *types.Error {
	return s.execute(ctx, "set_profit_sharing", func(ctx context.Context) error {
		return s.Ledger.SetProfitSharing(ctx, caller, validator, bps)
	})
}
