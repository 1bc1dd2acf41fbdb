package handlers

import (
	"net/http"

	"github.com/babylonchain/staking-ledger/internal/services"
	"github.com/babylonchain/staking-ledger/internal/types"
)

type AddCollateralPayload struct {
	ID             string `json:"id"`
	MaxStakeAmount string `json:"max_stake_amount"`
	Decimals       uint8  `json:"decimals"`
	IsUSDStable    bool   `json:"is_usd_stable"`
}

type AddValidatorPayload struct {
	ID               string `json:"id"`
	Admin            string `json:"admin"`
	RewardWeight     uint64 `json:"reward_weight"`
	ProfitSharingBPS uint64 `json:"profit_sharing_bps"`
}

type StatusPayload struct {
	Enabled bool `json:"enabled"`
}

type MaxStakePayload struct {
	MaxStakeAmount string `json:"max_stake_amount"`
}

type WeightPayload struct {
	Weight uint64 `json:"weight"`
}

type PausedPayload struct {
	Paused bool `json:"paused"`
}

type PauseWithdrawalsPayload struct {
	Validator string   `json:"validator"`
	IDs       []uint64 `json:"ids"`
	Paused    bool     `json:"paused"`
}

type DistributeRewardsPayload struct {
	Token string `json:"token"`
}

// ParamsPayload updates the ledger settings, omitted fields are unchanged.
type ParamsPayload struct {
	MinProfitSharingBPS *uint64 `json:"min_profit_sharing_bps,omitempty"`
	WithdrawTimelock    *uint64 `json:"withdraw_timelock,omitempty"`
	SlashingTreasury    *string `json:"slashing_treasury,omitempty"`
}

type PricePayload struct {
	Price string `json:"price"`
}

// AddCollateral godoc
// @Summary Register a collateral
// @Accept json
// @Produce json
// @Param X-Account header string true "Admin address"
// @Param payload body AddCollateralPayload true "Collateral"
// @Success 200 {object} PublicResponse[OperationResult] "Persisted sequence"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Failure 403 {object} types.Error "Error: Forbidden"
// @Failure 409 {object} types.Error "Error: Conflict"
// @Router /v1/admin/collaterals [post]
func (h *Handler) AddCollateral(request *http.Request) (*Result, *types.Error) {
	caller, err := h.caller(request)
	if err != nil {
		return nil, err
	}
	payload, err := parseRequestPayload[AddCollateralPayload](request)
	if err != nil {
		return nil, err
	}
	id, err := parseAddressField("id", payload.ID)
	if err != nil {
		return nil, err
	}
	maxStake, err := parseAmountField("max_stake_amount", payload.MaxStakeAmount)
	if err != nil {
		return nil, err
	}
	if err := h.services.AddCollateral(
		request.Context(), caller, id, maxStake, payload.Decimals, payload.IsUSDStable,
	); err != nil {
		return nil, err
	}
	return h.newOperationResult(), nil
}

// SetCollateralStatus godoc
// @Summary Enable or disable a collateral
// @Accept json
// @Produce json
// @Param X-Account header string true "Admin address"
// @Param id path string true "Collateral token address"
// @Param payload body StatusPayload true "Status"
// @Success 200 {object} PublicResponse[OperationResult] "Persisted sequence"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Failure 403 {object} types.Error "Error: Forbidden"
// @Failure 404 {object} types.Error "Error: Not Found"
// @Router /v1/admin/collaterals/{id}/status [post]
func (h *Handler) SetCollateralStatus(request *http.Request) (*Result, *types.Error) {
	caller, err := h.caller(request)
	if err != nil {
		return nil, err
	}
	id, err := parseURLAddress(request, "id")
	if err != nil {
		return nil, err
	}
	payload, err := parseRequestPayload[StatusPayload](request)
	if err != nil {
		return nil, err
	}
	if err := h.services.SetCollateralEnabled(request.Context(), caller, id, payload.Enabled); err != nil {
		return nil, err
	}
	return h.newOperationResult(), nil
}

// SetCollateralMaxStake godoc
// @Summary Set the stake cap of a collateral
// @Accept json
// @Produce json
// @Param X-Account header string true "Admin address"
// @Param id path string true "Collateral token address"
// @Param payload body MaxStakePayload true "Stake cap"
// @Success 200 {object} PublicResponse[OperationResult] "Persisted sequence"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Failure 403 {object} types.Error "Error: Forbidden"
// @Failure 404 {object} types.Error "Error: Not Found"
// @Router /v1/admin/collaterals/{id}/max-stake [put]
func (h *Handler) SetCollateralMaxStake(request *http.Request) (*Result, *types.Error) {
	caller, err := h.caller(request)
	if err != nil {
		return nil, err
	}
	id, err := parseURLAddress(request, "id")
	if err != nil {
		return nil, err
	}
	payload, err := parseRequestPayload[MaxStakePayload](request)
	if err != nil {
		return nil, err
	}
	maxStake, err := parseAmountField("max_stake_amount", payload.MaxStakeAmount)
	if err != nil {
		return nil, err
	}
	if err := h.services.SetCollateralMaxStake(request.Context(), caller, id, maxStake); err != nil {
		return nil, err
	}
	return h.newOperationResult(), nil
}

// AddValidator godoc
// @Summary Register a validator
// @Accept json
// @Produce json
// @Param X-Account header string true "Admin address"
// @Param payload body AddValidatorPayload true "Validator"
// @Success 200 {object} PublicResponse[OperationResult] "Persisted sequence"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Failure 403 {object} types.Error "Error: Forbidden"
// @Failure 409 {object} types.Error "Error: Conflict"
// @Router /v1/admin/validators [post]
func (h *Handler) AddValidator(request *http.Request) (*Result, *types.Error) {
	caller, err := h.caller(request)
	if err != nil {
		return nil, err
	}
	payload, err := parseRequestPayload[AddValidatorPayload](request)
	if err != nil {
		return nil, err
	}
	id, err := parseAddressField("id", payload.ID)
	if err != nil {
		return nil, err
	}
	admin, err := parseAddressField("admin", payload.Admin)
	if err != nil {
		return nil, err
	}
	if err := h.services.AddValidator(
		request.Context(), caller, id, admin, payload.RewardWeight, payload.ProfitSharingBPS,
	); err != nil {
		return nil, err
	}
	return h.newOperationResult(), nil
}

// SetValidatorStatus godoc
// @Summary Enable or disable a validator
// @Accept json
// @Produce json
// @Param X-Account header string true "Admin address"
// @Param id path string true "Validator address"
// @Param payload body StatusPayload true "Status"
// @Success 200 {object} PublicResponse[OperationResult] "Persisted sequence"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Failure 403 {object} types.Error "Error: Forbidden"
// @Failure 404 {object} types.Error "Error: Not Found"
// @Router /v1/admin/validators/{id}/status [post]
func (h *Handler) SetValidatorStatus(request *http.Request) (*Result, *types.Error) {
	caller, err := h.caller(request)
	if err != nil {
		return nil, err
	}
	id, err := parseURLAddress(request, "id")
	if err != nil {
		return nil, err
	}
	payload, err := parseRequestPayload[StatusPayload](request)
	if err != nil {
		return nil, err
	}
	if err := h.services.SetValidatorEnabled(request.Context(), caller, id, payload.Enabled); err != nil {
		return nil, err
	}
	return h.newOperationResult(), nil
}

// SetRewardWeight godoc
// @Summary Set the reward weight of a validator
// @Accept json
// @Produce json
// @Param X-Account header string true "Admin address"
// @Param id path string true "Validator address"
// @Param payload body WeightPayload true "Reward weight coefficient"
// @Success 200 {object} PublicResponse[OperationResult] "Persisted sequence"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Failure 403 {object} types.Error "Error: Forbidden"
// @Failure 404 {object} types.Error "Error: Not Found"
// @Router /v1/admin/validators/{id}/weight [put]
func (h *Handler) SetRewardWeight(request *http.Request) (*Result, *types.Error) {
	caller, err := h.caller(request)
	if err != nil {
		return nil, err
	}
	id, err := parseURLAddress(request, "id")
	if err != nil {
		return nil, err
	}
	payload, err := parseRequestPayload[WeightPayload](request)
	if err != nil {
		return nil, err
	}
	if err := h.services.SetRewardWeightCoefficient(request.Context(), caller, id, payload.Weight); err != nil {
		return nil, err
	}
	return h.newOperationResult(), nil
}

// SetDelegatorActionPaused godoc
// @Summary Pause delegator actions of a validator
// @Description While paused, delegators cannot stake, request or cancel unstakes on the validator.
// @Accept json
// @Produce json
// @Param X-Account header string true "Admin address"
// @Param id path string true "Validator address"
// @Param payload body PausedPayload true "Paused"
// @Success 200 {object} PublicResponse[OperationResult] "Persisted sequence"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Failure 403 {object} types.Error "Error: Forbidden"
// @Failure 404 {object} types.Error "Error: Not Found"
// @Router /v1/admin/validators/{id}/delegator-actions [post]
func (h *Handler) SetDelegatorActionPaused(request *http.Request) (*Result, *types.Error) {
	caller, err := h.caller(request)
	if err != nil {
		return nil, err
	}
	id, err := parseURLAddress(request, "id")
	if err != nil {
		return nil, err
	}
	payload, err := parseRequestPayload[PausedPayload](request)
	if err != nil {
		return nil, err
	}
	if err := h.services.SetDelegatorActionPaused(request.Context(), caller, id, payload.Paused); err != nil {
		return nil, err
	}
	return h.newOperationResult(), nil
}

// PauseWithdrawals godoc
// @Summary Pause or resume withdrawal requests
// @Accept json
// @Produce json
// @Param X-Account header string true "Admin address"
// @Param payload body PauseWithdrawalsPayload true "Withdrawal requests"
// @Success 200 {object} PublicResponse[OperationResult] "Persisted sequence"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Failure 403 {object} types.Error "Error: Forbidden"
// @Failure 404 {object} types.Error "Error: Not Found"
// @Router /v1/admin/withdrawals/pause [post]
func (h *Handler) PauseWithdrawals(request *http.Request) (*Result, *types.Error) {
	caller, err := h.caller(request)
	if err != nil {
		return nil, err
	}
	payload, err := parseRequestPayload[PauseWithdrawalsPayload](request)
	if err != nil {
		return nil, err
	}
	validator, err := parseAddressField("validator", payload.Validator)
	if err != nil {
		return nil, err
	}
	if err := h.services.PauseUnstakeRequests(
		request.Context(), caller, validator, payload.IDs, payload.Paused,
	); err != nil {
		return nil, err
	}
	return h.newOperationResult(), nil
}

// DistributeRewards godoc
// @Summary Distribute rewards
// @Description Splits the undistributed amount of a reward token across the active validators by weight.
// @Accept json
// @Produce json
// @Param X-Account header string true "Admin address"
// @Param payload body DistributeRewardsPayload true "Reward token"
// @Success 200 {object} PublicResponse[OperationResult] "Persisted sequence"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Failure 403 {object} types.Error "Error: Forbidden"
// @Router /v1/admin/rewards/distribute [post]
func (h *Handler) DistributeRewards(request *http.Request) (*Result, *types.Error) {
	caller, err := h.caller(request)
	if err != nil {
		return nil, err
	}
	payload, err := parseRequestPayload[DistributeRewardsPayload](request)
	if err != nil {
		return nil, err
	}
	token, err := parseAddressField("token", payload.Token)
	if err != nil {
		return nil, err
	}
	if err := h.services.DistributeValidatorRewards(request.Context(), caller, token); err != nil {
		return nil, err
	}
	return h.newOperationResult(), nil
}

// SetPaused godoc
// @Summary Pause the ledger
// @Description While paused, every delegator and validator operation is rejected.
// @Accept json
// @Produce json
// @Param X-Account header string true "Admin address"
// @Param payload body PausedPayload true "Paused"
// @Success 200 {object} PublicResponse[OperationResult] "Persisted sequence"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Failure 403 {object} types.Error "Error: Forbidden"
// @Router /v1/admin/pause [post]
func (h *Handler) SetPaused(request *http.Request) (*Result, *types.Error) {
	caller, err := h.caller(request)
	if err != nil {
		return nil, err
	}
	payload, err := parseRequestPayload[PausedPayload](request)
	if err != nil {
		return nil, err
	}
	if err := h.services.SetPaused(request.Context(), caller, payload.Paused); err != nil {
		return nil, err
	}
	return h.newOperationResult(), nil
}

// UpdateParams godoc
// @Summary Update ledger parameters
// @Accept json
// @Produce json
// @Param X-Account header string true "Admin address"
// @Param payload body ParamsPayload true "Parameters"
// @Success 200 {object} PublicResponse[OperationResult] "Persisted sequence"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Failure 403 {object} types.Error "Error: Forbidden"
// @Router /v1/admin/params [put]
func (h *Handler) UpdateParams(request *http.Request) (*Result, *types.Error) {
	caller, err := h.caller(request)
	if err != nil {
		return nil, err
	}
	payload, err := parseRequestPayload[ParamsPayload](request)
	if err != nil {
		return nil, err
	}
	update := services.ParamsUpdate{
		MinProfitSharingBPS: payload.MinProfitSharingBPS,
		WithdrawTimelock:    payload.WithdrawTimelock,
	}
	if payload.SlashingTreasury != nil {
		treasury, err := parseAddressField("slashing_treasury", *payload.SlashingTreasury)
		if err != nil {
			return nil, err
		}
		update.SlashingTreasury = &treasury
	}
	if err := h.services.UpdateParams(request.Context(), caller, update); err != nil {
		return nil, err
	}
	return h.newOperationResult(), nil
}

// SetPrice godoc
// @Summary Override a collateral price
// @Description Sets the static oracle USD price of a collateral, with 8 decimals. Overrides are not persisted.
// @Accept json
// @Produce json
// @Param X-Account header string true "Admin address"
// @Param token path string true "Collateral token address"
// @Param payload body PricePayload true "Price"
// @Success 200 {object} PublicResponse[PricePublic] "Price"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Failure 403 {object} types.Error "Error: Forbidden"
// @Failure 404 {object} types.Error "Error: Not Found"
// @Router /v1/admin/prices/{token} [put]
func (h *Handler) SetPrice(request *http.Request) (*Result, *types.Error) {
	caller, err := h.caller(request)
	if err != nil {
		return nil, err
	}
	token, err := parseURLAddress(request, "token")
	if err != nil {
		return nil, err
	}
	payload, err := parseRequestPayload[PricePayload](request)
	if err != nil {
		return nil, err
	}
	price, err := parseAmountField("price", payload.Price)
	if err != nil {
		return nil, err
	}
	if err := h.services.SetPrice(request.Context(), caller, token, price); err != nil {
		return nil, err
	}
	return NewResult(PricePublic{Token: token.Hex(), Price: price.Dec()}), nil
}
