package handlers

import (
	"net/http"

	"github.com/babylonchain/staking-ledger/internal/types"
)

type ExchangeRewardsPayload struct {
	Collateral string `json:"collateral"`
}

type ProfitSharingPayload struct {
	BPS uint64 `json:"bps"`
}

// ExchangeValidatorRewards godoc
// @Summary Restake validator rewards
// @Description Swaps the validator admin's accrued rewards into the collateral and stakes them into the validator's pool. Only the validator admin can call it.
// @Accept json
// @Produce json
// @Param X-Account header string true "Validator admin address"
// @Param id path string true "Validator address"
// @Param payload body ExchangeRewardsPayload true "Target collateral"
// @Success 200 {object} PublicResponse[OperationResult] "Persisted sequence"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Failure 401 {object} types.Error "Error: Unauthorized"
// @Failure 403 {object} types.Error "Error: Forbidden"
// @Failure 404 {object} types.Error "Error: Not Found"
// @Router /v1/validators/{id}/rewards/exchange [post]
func (h *Handler) ExchangeValidatorRewards(request *http.Request) (*Result, *types.Error) {
	caller, err := h.caller(request)
	if err != nil {
		return nil, err
	}
	validator, err := parseURLAddress(request, "id")
	if err != nil {
		return nil, err
	}
	payload, err := parseRequestPayload[ExchangeRewardsPayload](request)
	if err != nil {
		return nil, err
	}
	collateral, err := parseAddressField("collateral", payload.Collateral)
	if err != nil {
		return nil, err
	}
	if err := h.services.ExchangeValidatorRewards(request.Context(), caller, validator, collateral); err != nil {
		return nil, err
	}
	return h.newOperationResult(), nil
}

// SetProfitSharing godoc
// @Summary Set validator profit sharing
// @Description Sets the share of rewards, in basis points, the validator passes on to its delegators.
// @Accept json
// @Produce json
// @Param X-Account header string true "Validator admin address"
// @Param id path string true "Validator address"
// @Param payload body ProfitSharingPayload true "Profit sharing"
// @Success 200 {object} PublicResponse[OperationResult] "Persisted sequence"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Failure 401 {object} types.Error "Error: Unauthorized"
// @Failure 403 {object} types.Error "Error: Forbidden"
// @Router /v1/validators/{id}/profit-sharing [put]
func (h *Handler) SetProfitSharing(request *http.Request) (*Result, *types.Error) {
	caller, err := h.caller(request)
	if err != nil {
		return nil, err
	}
	validator, err := parseURLAddress(request, "id")
	if err != nil {
		return nil, err
	}
	payload, err := parseRequestPayload[ProfitSharingPayload](request)
	if err != nil {
		return nil, err
	}
	if err := h.services.SetProfitSharing(request.Context(), caller, validator, payload.BPS); err != nil {
		return nil, err
	}
	return h.newOperationResult(), nil
}
