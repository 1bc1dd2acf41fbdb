package handlers

import (
	"net/http"

	"github.com/babylonchain/staking-ledger/internal/types"
)

type StakeRequestPayload struct {
	Validator  string `json:"validator"`
	Collateral string `json:"collateral"`
	Amount     string `json:"amount"`
}

type UnstakeRequestPayload struct {
	Validator  string `json:"validator"`
	Collateral string `json:"collateral"`
	// Recipient defaults to the caller when empty.
	Recipient string `json:"recipient,omitempty"`
	Shares    string `json:"shares"`
}

// WithdrawalRangePayload selects the withdrawal requests [from_id, to_id]
// of a validator.
type WithdrawalRangePayload struct {
	Validator string `json:"validator"`
	FromID    uint64 `json:"from_id"`
	ToID      uint64 `json:"to_id"`
}

type RewardsPayload struct {
	Token  string `json:"token"`
	Amount string `json:"amount"`
}

// Stake godoc
// @Summary Stake collateral
// @Description Moves amount of the collateral from the caller's balance into the validator's pool and mints shares at the current share price.
// @Accept json
// @Produce json
// @Param X-Account header string true "Caller address"
// @Param payload body StakeRequestPayload true "Stake request"
// @Success 200 {object} PublicResponse[services.StakeResultPublic] "Minted shares"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Failure 401 {object} types.Error "Error: Unauthorized"
// @Failure 404 {object} types.Error "Error: Not Found"
// @Failure 409 {object} types.Error "Error: Conflict"
// @Router /v1/stake [post]
func (h *Handler) Stake(request *http.Request) (*Result, *types.Error) {
	caller, err := h.caller(request)
	if err != nil {
		return nil, err
	}
	payload, err := parseRequestPayload[StakeRequestPayload](request)
	if err != nil {
		return nil, err
	}
	validator, err := parseAddressField("validator", payload.Validator)
	if err != nil {
		return nil, err
	}
	collateral, err := parseAddressField("collateral", payload.Collateral)
	if err != nil {
		return nil, err
	}
	amount, err := parseAmountField("amount", payload.Amount)
	if err != nil {
		return nil, err
	}

	result, err := h.services.Stake(request.Context(), caller, validator, collateral, amount)
	if err != nil {
		return nil, err
	}
	return NewResult(result), nil
}

// RequestUnstake godoc
// @Summary Request an unstake
// @Description Locks the caller's shares and queues a withdrawal request that can be executed once the timelock passed.
// @Accept json
// @Produce json
// @Param X-Account header string true "Caller address"
// @Param payload body UnstakeRequestPayload true "Unstake request"
// @Success 200 {object} PublicResponse[services.UnstakeRequestResultPublic] "Queued withdrawal"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Failure 401 {object} types.Error "Error: Unauthorized"
// @Failure 404 {object} types.Error "Error: Not Found"
// @Failure 409 {object} types.Error "Error: Conflict"
// @Router /v1/unstake/request [post]
func (h *Handler) RequestUnstake(request *http.Request) (*Result, *types.Error) {
	caller, err := h.caller(request)
	if err != nil {
		return nil, err
	}
	payload, err := parseRequestPayload[UnstakeRequestPayload](request)
	if err != nil {
		return nil, err
	}
	validator, err := parseAddressField("validator", payload.Validator)
	if err != nil {
		return nil, err
	}
	collateral, err := parseAddressField("collateral", payload.Collateral)
	if err != nil {
		return nil, err
	}
	recipient, err := parseOptionalAddressField("recipient", payload.Recipient)
	if err != nil {
		return nil, err
	}
	shares, err := parseAmountField("shares", payload.Shares)
	if err != nil {
		return nil, err
	}

	result, err := h.services.RequestUnstake(request.Context(), caller, validator, collateral, recipient, shares)
	if err != nil {
		return nil, err
	}
	return NewResult(result), nil
}

// ExecuteUnstake godoc
// @Summary Execute withdrawal requests
// @Description Pays out every withdrawal request in the range whose timelock passed. Anyone can execute.
// @Accept json
// @Produce json
// @Param payload body WithdrawalRangePayload true "Withdrawal range"
// @Success 200 {object} PublicResponse[OperationResult] "Persisted sequence"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Failure 404 {object} types.Error "Error: Not Found"
// @Failure 409 {object} types.Error "Error: Conflict"
// @Router /v1/unstake/execute [post]
func (h *Handler) ExecuteUnstake(request *http.Request) (*Result, *types.Error) {
	payload, err := parseRequestPayload[WithdrawalRangePayload](request)
	if err != nil {
		return nil, err
	}
	validator, err := parseAddressField("validator", payload.Validator)
	if err != nil {
		return nil, err
	}
	if err := h.services.ExecuteUnstake(request.Context(), validator, payload.FromID, payload.ToID); err != nil {
		return nil, err
	}
	return h.newOperationResult(), nil
}

// CancelUnstake godoc
// @Summary Cancel withdrawal requests
// @Description Cancels the caller's pending withdrawal requests in the range and unlocks their shares.
// @Accept json
// @Produce json
// @Param X-Account header string true "Caller address"
// @Param payload body WithdrawalRangePayload true "Withdrawal range"
// @Success 200 {object} PublicResponse[OperationResult] "Persisted sequence"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Failure 401 {object} types.Error "Error: Unauthorized"
// @Failure 403 {object} types.Error "Error: Forbidden"
// @Failure 409 {object} types.Error "Error: Conflict"
// @Router /v1/unstake/cancel [post]
func (h *Handler) CancelUnstake(request *http.Request) (*Result, *types.Error) {
	caller, err := h.caller(request)
	if err != nil {
		return nil, err
	}
	payload, err := parseRequestPayload[WithdrawalRangePayload](request)
	if err != nil {
		return nil, err
	}
	validator, err := parseAddressField("validator", payload.Validator)
	if err != nil {
		return nil, err
	}
	if err := h.services.CancelUnstake(
		request.Context(), caller, validator, payload.FromID, payload.ToID,
	); err != nil {
		return nil, err
	}
	return h.newOperationResult(), nil
}

// SendRewards godoc
// @Summary Send rewards
// @Description Transfers reward tokens from the caller into the ledger, to be distributed across validators.
// @Accept json
// @Produce json
// @Param X-Account header string true "Caller address"
// @Param payload body RewardsPayload true "Rewards"
// @Success 200 {object} PublicResponse[OperationResult] "Persisted sequence"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Failure 401 {object} types.Error "Error: Unauthorized"
// @Router /v1/rewards [post]
func (h *Handler) SendRewards(request *http.Request) (*Result, *types.Error) {
	caller, err := h.caller(request)
	if err != nil {
		return nil, err
	}
	payload, err := parseRequestPayload[RewardsPayload](request)
	if err != nil {
		return nil, err
	}
	token, err := parseAddressField("token", payload.Token)
	if err != nil {
		return nil, err
	}
	amount, err := parseAmountField("amount", payload.Amount)
	if err != nil {
		return nil, err
	}
	if err := h.services.SendRewards(request.Context(), caller, token, amount); err != nil {
		return nil, err
	}
	return h.newOperationResult(), nil
}

// GetRewardInfo godoc
// @Summary Get reward totals
// @Description Retrieves how much of a reward token was received and how much was already distributed.
// @Produce json
// @Param token path string true "Reward token address"
// @Success 200 {object} PublicResponse[services.RewardPublic] "Reward totals"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Router /v1/rewards/{token} [get]
func (h *Handler) GetRewardInfo(request *http.Request) (*Result, *types.Error) {
	token, err := parseURLAddress(request, "token")
	if err != nil {
		return nil, err
	}
	return NewResult(h.services.GetRewardInfo(request.Context(), token)), nil
}
