package handlers

import (
	"net/http"

	"github.com/babylonchain/staking-ledger/internal/types"
)

// GetPool godoc
// @Summary Get a staking pool
// @Description Retrieves the totals of a validator's pool for one collateral, including the current share price.
// @Produce json
// @Param id path string true "Validator address"
// @Param collateral path string true "Collateral token address"
// @Success 200 {object} PublicResponse[services.PoolPublic] "Pool"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Failure 404 {object} types.Error "Error: Not Found"
// @Router /v1/validators/{id}/pools/{collateral} [get]
func (h *Handler) GetPool(request *http.Request) (*Result, *types.Error) {
	validator, err := parseURLAddress(request, "id")
	if err != nil {
		return nil, err
	}
	collateral, err := parseURLAddress(request, "collateral")
	if err != nil {
		return nil, err
	}
	pool, err := h.services.GetPool(request.Context(), validator, collateral)
	if err != nil {
		return nil, err
	}
	return NewResult(pool), nil
}

// GetPoolDelegators godoc
// @Summary List pool delegators
// @Description Lists every account that ever staked into the pool.
// @Produce json
// @Param id path string true "Validator address"
// @Param collateral path string true "Collateral token address"
// @Success 200 {object} PublicResponse[[]string]{array} "Delegator addresses"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Failure 404 {object} types.Error "Error: Not Found"
// @Router /v1/validators/{id}/pools/{collateral}/delegators [get]
func (h *Handler) GetPoolDelegators(request *http.Request) (*Result, *types.Error) {
	validator, err := parseURLAddress(request, "id")
	if err != nil {
		return nil, err
	}
	collateral, err := parseURLAddress(request, "collateral")
	if err != nil {
		return nil, err
	}
	delegators, err := h.services.GetPoolDelegators(request.Context(), validator, collateral)
	if err != nil {
		return nil, err
	}
	return NewResult(delegators), nil
}

// GetDelegator godoc
// @Summary Get a delegator position
// @Description Retrieves a delegator's shares, locked shares and current balance in a pool.
// @Produce json
// @Param id path string true "Validator address"
// @Param collateral path string true "Collateral token address"
// @Param delegator path string true "Delegator address"
// @Success 200 {object} PublicResponse[services.DelegatorPublic] "Delegator position"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Failure 404 {object} types.Error "Error: Not Found"
// @Router /v1/validators/{id}/pools/{collateral}/delegators/{delegator} [get]
func (h *Handler) GetDelegator(request *http.Request) (*Result, *types.Error) {
	validator, err := parseURLAddress(request, "id")
	if err != nil {
		return nil, err
	}
	collateral, err := parseURLAddress(request, "collateral")
	if err != nil {
		return nil, err
	}
	delegator, err := parseURLAddress(request, "delegator")
	if err != nil {
		return nil, err
	}
	position, err := h.services.GetDelegator(request.Context(), validator, collateral, delegator)
	if err != nil {
		return nil, err
	}
	return NewResult(position), nil
}

// GetWithdrawal godoc
// @Summary Get a withdrawal request
// @Produce json
// @Param id path string true "Validator address"
// @Param withdrawal_id path int true "Withdrawal request id"
// @Success 200 {object} PublicResponse[services.WithdrawalPublic] "Withdrawal request"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Failure 404 {object} types.Error "Error: Not Found"
// @Router /v1/validators/{id}/withdrawals/{withdrawal_id} [get]
func (h *Handler) GetWithdrawal(request *http.Request) (*Result, *types.Error) {
	validator, err := parseURLAddress(request, "id")
	if err != nil {
		return nil, err
	}
	id, err := parseURLUint64(request, "withdrawal_id")
	if err != nil {
		return nil, err
	}
	withdrawal, err := h.services.GetWithdrawal(request.Context(), validator, id)
	if err != nil {
		return nil, err
	}
	return NewResult(withdrawal), nil
}
