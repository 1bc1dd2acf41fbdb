package services

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/rs/zerolog/log"

	"github.com/babylonchain/staking-ledger/internal/db"
	"github.com/babylonchain/staking-ledger/internal/db/model"
	"github.com/babylonchain/staking-ledger/internal/ledger"
	"github.com/babylonchain/staking-ledger/internal/types"
)

type ParamsPublic struct {
	MinProfitSharingBPS uint64 `json:"min_profit_sharing_bps"`
	WithdrawTimelock    uint64 `json:"withdraw_timelock"`
	SlashingTreasury    string `json:"slashing_treasury"`
	Paused              bool   `json:"paused"`
	WeightDenominator   uint64 `json:"weight_denominator"`
	Custody             string `json:"custody"`
	Sequence            uint64 `json:"sequence"`
}

type CollateralPublic struct {
	ID             string `json:"id"`
	Decimals       uint8  `json:"decimals"`
	IsEnabled      bool   `json:"is_enabled"`
	IsUSDStable    bool   `json:"is_usd_stable"`
	MaxStakeAmount string `json:"max_stake_amount"`
	TotalLocked    string `json:"total_locked"`
	SlashedAmount  string `json:"slashed_amount"`
	Rewards        string `json:"rewards"`
}

type ValidatorPublic struct {
	ID                      string   `json:"id"`
	Admin                   string   `json:"admin"`
	RewardWeightCoefficient uint64   `json:"reward_weight_coefficient"`
	ProfitSharingBPS        uint64   `json:"profit_sharing_bps"`
	DelegatorActionPaused   bool     `json:"delegator_action_paused"`
	IsEnabled               bool     `json:"is_enabled"`
	WithdrawalCount         uint64   `json:"withdrawal_count"`
	Collaterals             []string `json:"collaterals"`
}

type PoolPublic struct {
	Validator            string `json:"validator"`
	Collateral           string `json:"collateral"`
	StakedAmount         string `json:"staked_amount"`
	Shares               string `json:"shares"`
	Locked               string `json:"locked"`
	AccumulatedRewards   string `json:"accumulated_rewards"`
	RewardsForWithdrawal string `json:"rewards_for_withdrawal"`
	SharePrice           string `json:"share_price"`
	PendingWithdrawals   string `json:"pending_withdrawals"`
	DelegatorCount       int    `json:"delegator_count"`
}

type DelegatorPublic struct {
	Validator          string `json:"validator"`
	Collateral         string `json:"collateral"`
	Account            string `json:"account"`
	Shares             string `json:"shares"`
	Locked             string `json:"locked"`
	AccumulatedRewards string `json:"accumulated_rewards"`
	Balance            string `json:"balance"`
}

type WithdrawalPublic struct {
	Validator      string `json:"validator"`
	ID             uint64 `json:"id"`
	Delegator      string `json:"delegator"`
	Receiver       string `json:"receiver"`
	Collateral     string `json:"collateral"`
	Amount         string `json:"amount"`
	SlashingAmount string `json:"slashing_amount"`
	Timelock       uint64 `json:"timelock"`
	Executed       bool   `json:"executed"`
	Paused         bool   `json:"paused"`
}

type RewardPublic struct {
	Token       string `json:"token"`
	TotalAmount string `json:"total_amount"`
	Distributed string `json:"distributed"`
}

type BalancePublic struct {
	Account string `json:"account"`
	Token   string `json:"token"`
	Amount  string `json:"amount"`
}

type LedgerEventPublic struct {
	ID        string          `json:"id"`
	Sequence  uint64          `json:"sequence"`
	Index     int             `json:"index"`
	Type      string          `json:"type"`
	Timestamp int64           `json:"timestamp"`
	Event     json.RawMessage `json:"event"`
}

func (s *Services) GetParams(ctx context.Context) *ParamsPublic {
	p := s.Ledger.Params()
	return &ParamsPublic{
		MinProfitSharingBPS: p.MinProfitSharingBPS,
		WithdrawTimelock:    p.WithdrawTimelock,
		SlashingTreasury:    p.SlashingTreasury.Hex(),
		Paused:              p.Paused,
		WeightDenominator:   p.WeightDenominator,
		Custody:             s.Ledger.Custody().Hex(),
		Sequence:            s.Sequence(),
	}
}

func (s *Services) GetCollaterals(ctx context.Context) []*CollateralPublic {
	views := s.Ledger.Collaterals()
	out := make([]*CollateralPublic, 0, len(views))
	for _, c := range views {
		out = append(out, collateralPublic(c))
	}
	return out
}

func (s *Services) GetCollateral(ctx context.Context, id common.Address) (*CollateralPublic, *types.Error) {
	c, err := s.Ledger.Collateral(id)
	if err != nil {
		return nil, s.toApiError(ctx, "get_collateral", err)
	}
	return collateralPublic(c), nil
}

func (s *Services) GetValidators(ctx context.Context) []*ValidatorPublic {
	views := s.Ledger.Validators()
	out := make([]*ValidatorPublic, 0, len(views))
	for _, v := range views {
		out = append(out, validatorPublic(v))
	}
	return out
}

func (s *Services) GetValidator(ctx context.Context, id common.Address) (*ValidatorPublic, *types.Error) {
	v, err := s.Ledger.Validator(id)
	if err != nil {
		return nil, s.toApiError(ctx, "get_validator", err)
	}
	return validatorPublic(v), nil
}

func (s *Services) GetPool(ctx context.Context, validator, collateral common.Address) (*PoolPublic, *types.Error) {
	p, err := s.Ledger.Pool(validator, collateral)
	if err != nil {
		return nil, s.toApiError(ctx, "get_pool", err)
	}
	return &PoolPublic{
		Validator:            p.Validator.Hex(),
		Collateral:           p.Collateral.Hex(),
		StakedAmount:         p.StakedAmount.Dec(),
		Shares:               p.Shares.Dec(),
		Locked:               p.Locked.Dec(),
		AccumulatedRewards:   p.AccumulatedRewards.Dec(),
		RewardsForWithdrawal: p.RewardsForWithdrawal.Dec(),
		SharePrice:           p.SharePrice.Dec(),
		PendingWithdrawals:   p.PendingWithdrawals.Dec(),
		DelegatorCount:       p.DelegatorCount,
	}, nil
}

func (s *Services) GetDelegator(
	ctx context.Context, validator, collateral, account common.Address,
) (*DelegatorPublic, *types.Error) {
	d, err := s.Ledger.Delegator(validator, collateral, account)
	if err != nil {
		return nil, s.toApiError(ctx, "get_delegator", err)
	}
	return &DelegatorPublic{
		Validator:          validator.Hex(),
		Collateral:         collateral.Hex(),
		Account:            d.Account.Hex(),
		Shares:             d.Shares.Dec(),
		Locked:             d.Locked.Dec(),
		AccumulatedRewards: d.AccumulatedRewards.Dec(),
		Balance:            d.Balance.Dec(),
	}, nil
}

func (s *Services) GetPoolDelegators(
	ctx context.Context, validator, collateral common.Address,
) ([]string, *types.Error) {
	delegators, err := s.Ledger.PoolDelegators(validator, collateral)
	if err != nil {
		return nil, s.toApiError(ctx, "get_pool_delegators", err)
	}
	out := make([]string, 0, len(delegators))
	for _, d := range delegators {
		out = append(out, d.Hex())
	}
	return out, nil
}

func (s *Services) GetWithdrawal(
	ctx context.Context, validator common.Address, id uint64,
) (*WithdrawalPublic, *types.Error) {
	w, err := s.Ledger.WithdrawalRequest(validator, id)
	if err != nil {
		return nil, s.toApiError(ctx, "get_withdrawal", err)
	}
	return &WithdrawalPublic{
		Validator:      validator.Hex(),
		ID:             id,
		Delegator:      w.Delegator.Hex(),
		Receiver:       w.Receiver.Hex(),
		Collateral:     w.Collateral.Hex(),
		Amount:         w.Amount.Dec(),
		SlashingAmount: w.SlashingAmount.Dec(),
		Timelock:       w.Timelock,
		Executed:       w.Executed,
		Paused:         w.Paused,
	}, nil
}

func (s *Services) GetRewardInfo(ctx context.Context, token common.Address) *RewardPublic {
	info := s.Ledger.RewardInfo(token)
	return &RewardPublic{
		Token:       token.Hex(),
		TotalAmount: info.TotalAmount.Dec(),
		Distributed: info.Distributed.Dec(),
	}
}

func (s *Services) GetBalance(ctx context.Context, account, token common.Address) *BalancePublic {
	return &BalancePublic{
		Account: account.Hex(),
		Token:   token.Hex(),
		Amount:  s.Clients.Bank.BalanceOf(token, account).Dec(),
	}
}

func (s *Services) GetBalances(ctx context.Context, account common.Address) []*BalancePublic {
	balances := s.Clients.Bank.Balances(account)
	out := make([]*BalancePublic, 0, len(balances))
	for _, b := range balances {
		out = append(out, &BalancePublic{Account: b.Account.Hex(), Token: b.Token.Hex(), Amount: b.Amount})
	}
	return out
}

// GetPrice returns the oracle price of a collateral with 8 decimals.
func (s *Services) GetPrice(ctx context.Context, token common.Address) (*uint256.Int, *types.Error) {
	if _, err := s.Ledger.Collateral(token); err != nil {
		return nil, s.toApiError(ctx, "get_price", err)
	}
	price, err := s.Clients.Oracle.PriceOf(ctx, token)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("collateral", token.Hex()).Msg("error while fetching price")
		return nil, types.NewInternalServiceError(err)
	}
	return price, nil
}

func (s *Services) GetLedgerEvents(
	ctx context.Context, filter db.LedgerEventFilter, paginationKey string,
) ([]*LedgerEventPublic, string, *types.Error) {
	resultMap, err := s.DbClient.FindLedgerEvents(ctx, filter, paginationKey)
	if err != nil {
		if db.IsInvalidPaginationTokenError(err) {
			log.Ctx(ctx).Warn().Err(err).Msg("Invalid pagination token when fetching ledger events")
			return nil, "", types.NewError(http.StatusBadRequest, types.BadRequest, err)
		}
		log.Ctx(ctx).Error().Err(err).Msg("Failed to find ledger events")
		return nil, "", types.NewInternalServiceError(err)
	}
	events := make([]*LedgerEventPublic, 0, len(resultMap.Data))
	for _, d := range resultMap.Data {
		events = append(events, ledgerEventPublic(d))
	}
	return events, resultMap.PaginationToken, nil
}

func ledgerEventPublic(d model.LedgerEventDocument) *LedgerEventPublic {
	return &LedgerEventPublic{
		ID:        d.ID,
		Sequence:  d.Sequence,
		Index:     d.Index,
		Type:      d.Type,
		Timestamp: d.Timestamp,
		Event:     json.RawMessage(d.Payload),
	}
}

func collateralPublic(c *ledger.CollateralView) *CollateralPublic {
	return &CollateralPublic{
		ID:             c.ID.Hex(),
		Decimals:       c.Decimals,
		IsEnabled:      c.IsEnabled,
		IsUSDStable:    c.IsUSDStable,
		MaxStakeAmount: c.MaxStakeAmount.Dec(),
		TotalLocked:    c.TotalLocked.Dec(),
		SlashedAmount:  c.SlashedAmount.Dec(),
		Rewards:        c.Rewards.Dec(),
	}
}

func validatorPublic(v *ledger.ValidatorView) *ValidatorPublic {
	collaterals := make([]string, 0, len(v.Collaterals))
	for _, c := range v.Collaterals {
		collaterals = append(collaterals, c.Hex())
	}
	return &ValidatorPublic{
		ID:                      v.ID.Hex(),
		Admin:                   v.Admin.Hex(),
		RewardWeightCoefficient: v.RewardWeightCoefficient,
		ProfitSharingBPS:        v.ProfitSharingBPS,
		DelegatorActionPaused:   v.DelegatorActionPaused,
		IsEnabled:               v.IsEnabled,
		WithdrawalCount:         v.WithdrawalCount,
		Collaterals:             collaterals,
	}
}
