package services

import (
	"context"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/babylonchain/staking-ledger/internal/ledger"
	"github.com/babylonchain/staking-ledger/internal/types"
)

// Events recorded by the service itself, next to the ledger's own.
const (
	EventDeposited   ledger.EventType = "Deposited"
	EventRoleGranted ledger.EventType = "RoleGranted"
	EventRoleRevoked ledger.EventType = "RoleRevoked"
)

// ParamsUpdate changes the ledger wide settings, nil fields are left as is.
type ParamsUpdate struct {
	MinProfitSharingBPS *uint64
	WithdrawTimelock    *uint64
	SlashingTreasury    *common.Address
}

func (s *Services) AddCollateral(
	ctx context.Context, caller, id common.Address, maxStake *uint256.Int, decimals uint8, isUSDStable bool,
) *types.Error {
	return s.execute(ctx, "add_collateral", func(ctx context.Context) error {
		if err := s.Ledger.AddCollateral(ctx, caller, id, maxStake, decimals, isUSDStable); err != nil {
			return err
		}
		return s.Clients.Swap.RegisterToken(id, decimals, isUSDStable)
	})
}

func (s *Services) SetCollateralEnabled(ctx context.Context, caller, id common.Address, enabled bool) *types.Error {
	return s.execute(ctx, "set_collateral_enabled", func(ctx context.Context) error {
		return s.Ledger.SetCollateralEnabled(ctx, caller, id, enabled)
	})
}

func (s *Services) SetCollateralMaxStake(
	ctx context.Context, caller, id common.Address, maxStake *uint256.Int,
) *types.Error {
	return s.execute(ctx, "set_collateral_max_stake", func(ctx context.Context) error {
		return s.Ledger.SetCollateralMaxStake(ctx, caller, id, maxStake)
	})
}

func (s *Services) AddValidator(
	ctx context.Context, caller, id, admin common.Address, weight, profitSharingBPS uint64,
) *types.Error {
	return s.execute(ctx, "add_validator", func(ctx context.Context) error {
		return s.Ledger.AddValidator(ctx, caller, id, admin, weight, profitSharingBPS)
	})
}

func (s *Services) SetValidatorEnabled(ctx context.Context, caller, id common.Address, enabled bool) *types.Error {
	return s.execute(ctx, "set_validator_enabled", func(ctx context.Context) error {
		return s.Ledger.SetValidatorEnabled(ctx, caller, id, enabled)
	})
}

func (s *Services) SetRewardWeightCoefficient(
	ctx context.Context, caller, id common.Address, weight uint64,
) *types.Error {
	return s.execute(ctx, "set_reward_weight", func(ctx context.Context) error {
		return s.Ledger.SetRewardWeightCoefficient(ctx, caller, id, weight)
	})
}

func (s *Services) SetDelegatorActionPaused(
	ctx context.Context, caller, id common.Address, paused bool,
) *types.Error {
	return s.execute(ctx, "set_delegator_action_paused", func(ctx context.Context) error {
		return s.Ledger.SetDelegatorActionPaused(ctx, caller, id, paused)
	})
}

func (s *Services) PauseUnstakeRequests(
	ctx context.Context, caller, validator common.Address, ids []uint64, paused bool,
) *types.Error {
	return s.execute(ctx, "pause_unstake_requests", func(ctx context.Context) error {
		return s.Ledger.PauseUnstakeRequests(ctx, caller, validator, ids, paused)
	})
}

func (s *Services) DistributeValidatorRewards(ctx context.Context, caller, token common.Address) *types.Error {
	return s.execute(ctx, "distribute_validator_rewards", func(ctx context.Context) error {
		return s.Ledger.DistributeValidatorRewards(ctx, caller, token)
	})
}

func (s *Services) SetPaused(ctx context.Context, caller common.Address, paused bool) *types.Error {
	return s.execute(ctx, "set_paused", func(ctx context.Context) error {
		return s.Ledger.SetPaused(ctx, caller, paused)
	})
}

// UpdateParams applies every set field in turn. A failing field leaves the
// earlier ones applied and persisted.
func (s *Services) UpdateParams(ctx context.Context, caller common.Address, update ParamsUpdate) *types.Error {
	return s.execute(ctx, "update_params", func(ctx context.Context) error {
		if update.MinProfitSharingBPS != nil {
			if err := s.Ledger.SetMinProfitSharingBPS(ctx, caller, *update.MinProfitSharingBPS); err != nil {
				return err
			}
		}
		if update.WithdrawTimelock != nil {
			if err := s.Ledger.SetWithdrawTimelock(ctx, caller, *update.WithdrawTimelock); err != nil {
				return err
			}
		}
		if update.SlashingTreasury != nil {
			if err := s.Ledger.SetSlashingTreasury(ctx, caller, *update.SlashingTreasury); err != nil {
				return err
			}
		}
		return nil
	})
}

// SetPrice overrides the static oracle price of a collateral. Prices are not
// part of the persisted state and reset to the genesis prices on restart.
func (s *Services) SetPrice(ctx context.Context, caller, token common.Address, price *uint256.Int) *types.Error {
	if err := s.requireAdmin(caller); err != nil {
		return err
	}
	if _, err := s.Ledger.Collateral(token); err != nil {
		return s.toApiError(ctx, "set_price", err)
	}
	if err := s.Clients.Oracle.SetPrice(token, price); err != nil {
		return types.NewError(http.StatusBadRequest, types.BadRequest, err)
	}
	return nil
}

func (s *Services) GrantRole(ctx context.Context, caller common.Address, role ledger.Role, account common.Address) *types.Error {
	if err := s.requireAdmin(caller); err != nil {
		return err
	}
	return s.execute(ctx, "grant_role", func(ctx context.Context) error {
		if err := s.Clients.Access.Grant(role, account); err != nil {
			return types.NewError(http.StatusBadRequest, types.BadRequest, err)
		}
		s.pending = append(s.pending, s.roleEvent(EventRoleGranted, role, account))
		return nil
	})
}

func (s *Services) RevokeRole(ctx context.Context, caller common.Address, role ledger.Role, account common.Address) *types.Error {
	if err := s.requireAdmin(caller); err != nil {
		return err
	}
	return s.execute(ctx, "revoke_role", func(ctx context.Context) error {
		if err := s.Clients.Access.Revoke(role, account); err != nil {
			return types.NewError(http.StatusBadRequest, types.BadRequest, err)
		}
		s.pending = append(s.pending, s.roleEvent(EventRoleRevoked, role, account))
		return nil
	})
}

func (s *Services) RoleMembers(role ledger.Role) []string {
	members := s.Clients.Access.Members(role)
	out := make([]string, 0, len(members))
	for _, m := range members {
		out = append(out, m.Hex())
	}
	return out
}

func (s *Services) roleEvent(eventType ledger.EventType, role ledger.Role, account common.Address) ledger.Event {
	return ledger.Event{
		Type:    eventType,
		Account: account,
		Param:   string(role),
		Time:    uint64(s.clock().Unix()),
	}
}

func (s *Services) requireAdmin(caller common.Address) *types.Error {
	if !s.Clients.Access.HasRole(ledger.AdminRole, caller) {
		return types.NewErrorWithMsg(http.StatusForbidden, types.Forbidden, "caller is not an admin")
	}
	return nil
}
