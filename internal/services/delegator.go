package services

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/rs/zerolog/log"

	"github.com/babylonchain/staking-ledger/internal/types"
)

type StakeResultPublic struct {
	Validator  string `json:"validator"`
	Collateral string `json:"collateral"`
	Amount     string `json:"amount"`
	Shares     string `json:"shares"`
}

type UnstakeRequestResultPublic struct {
	Validator    string `json:"validator"`
	WithdrawalID uint64 `json:"withdrawal_id"`
}

func (s *Services) Stake(
	ctx context.Context, caller, validator, collateral common.Address, amount *uint256.Int,
) (*StakeResultPublic, *types.Error) {
	var shares *uint256.Int
	err := s.execute(ctx, "stake", func(ctx context.Context) error {
		var err error
		shares, err = s.Ledger.Stake(ctx, caller, validator, collateral, amount)
		return err
	})
	if err != nil {
		return nil, err
	}
	log.Ctx(ctx).Debug().
		Str("validator", validator.Hex()).
		Str("collateral", collateral.Hex()).
		Str("shares", shares.Dec()).
		Msg("stake accepted")
	return &StakeResultPublic{
		Validator:  validator.Hex(),
		Collateral: collateral.Hex(),
		Amount:     amount.Dec(),
		Shares:     shares.Dec(),
	}, nil
}

// RequestUnstake queues a withdrawal of shares for recipient. A zero
// recipient pays the caller.
func (s *Services) RequestUnstake(
	ctx context.Context, caller, validator, collateral, recipient common.Address, shares *uint256.Int,
) (*UnstakeRequestResultPublic, *types.Error) {
	var id uint64
	err := s.execute(ctx, "request_unstake", func(ctx context.Context) error {
		var err error
		id, err = s.Ledger.RequestUnstake(ctx, caller, validator, collateral, recipient, shares)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &UnstakeRequestResultPublic{Validator: validator.Hex(), WithdrawalID: id}, nil
}

func (s *Services) ExecuteUnstake(ctx context.Context, validator common.Address, fromID, toID uint64) *types.Error {
	return s.execute(ctx, "execute_unstake", func(ctx context.Context) error {
		return s.Ledger.ExecuteUnstake(ctx, validator, fromID, toID)
	})
}

func (s *Services) CancelUnstake(
	ctx context.Context, caller, validator common.Address, fromID, toID uint64,
) *types.Error {
	return s.execute(ctx, "cancel_unstake", func(ctx context.Context) error {
		return s.Ledger.CancelUnstake(ctx, caller, validator, fromID, toID)
	})
}

func (s *Services) SendRewards(
	ctx context.Context, caller, token common.Address, amount *uint256.Int,
) *types.Error {
	return s.execute(ctx, "send_rewards", func(ctx context.Context) error {
		return s.Ledger.SendRewards(ctx, caller, token, amount)
	})
}
