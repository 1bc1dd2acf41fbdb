package handlers

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common"

	"github.com/babylonchain/staking-ledger/internal/types"
)

type SlashPoolPayload struct {
	Validator  string `json:"validator"`
	Collateral string `json:"collateral"`
	BPS        uint64 `json:"bps"`
}

type SlashWithdrawalsPayload struct {
	Validator        string `json:"validator"`
	ProblemTimestamp uint64 `json:"problem_timestamp"`
	// SlashPercent is an 18 decimal fraction, 1e18 slashes everything.
	SlashPercent string `json:"slash_percent"`
}

type LiquidatePayload struct {
	Validator   string   `json:"validator"`
	Collaterals []string `json:"collaterals"`
	BPS         uint64   `json:"bps"`
}

type LiquidateDelegatorPayload struct {
	Validator  string `json:"validator"`
	Collateral string `json:"collateral"`
	Delegator  string `json:"delegator"`
	BPS        uint64 `json:"bps"`
}

// SlashCollateral godoc
// @Summary Slash a pool's staked collateral
// @Description Moves bps of the pool's staked amount to the slashing treasury, lowering the share price.
// @Accept json
// @Produce json
// @Param X-Account header string true "Slasher address"
// @Param payload body SlashPoolPayload true "Slash"
// @Success 200 {object} PublicResponse[OperationResult] "Persisted sequence"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Failure 403 {object} types.Error "Error: Forbidden"
// @Failure 404 {object} types.Error "Error: Not Found"
// @Router /v1/admin/slash/collateral [post]
func (h *Handler) SlashCollateral(request *http.Request) (*Result, *types.Error) {
	caller, payload, err := h.parseSlashPool(request)
	if err != nil {
		return nil, err
	}
	validator, collateral, err := parsePool(payload.Validator, payload.Collateral)
	if err != nil {
		return nil, err
	}
	if err := h.services.SlashValidatorCollateral(
		request.Context(), caller, validator, collateral, payload.BPS,
	); err != nil {
		return nil, err
	}
	return h.newOperationResult(), nil
}

// SlashRewards godoc
// @Summary Slash a pool's accumulated rewards
// @Accept json
// @Produce json
// @Param X-Account header string true "Slasher address"
// @Param payload body SlashPoolPayload true "Slash"
// @Success 200 {object} PublicResponse[OperationResult] "Persisted sequence"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Failure 403 {object} types.Error "Error: Forbidden"
// @Failure 404 {object} types.Error "Error: Not Found"
// @Router /v1/admin/slash/rewards [post]
func (h *Handler) SlashRewards(request *http.Request) (*Result, *types.Error) {
	caller, payload, err := h.parseSlashPool(request)
	if err != nil {
		return nil, err
	}
	validator, collateral, err := parsePool(payload.Validator, payload.Collateral)
	if err != nil {
		return nil, err
	}
	if err := h.services.SlashValidatorRewards(
		request.Context(), caller, validator, collateral, payload.BPS,
	); err != nil {
		return nil, err
	}
	return h.newOperationResult(), nil
}

// SlashWithdrawals godoc
// @Summary Slash pending withdrawals
// @Description Slashes every pending withdrawal request of the validator created after the problem timestamp.
// @Accept json
// @Produce json
// @Param X-Account header string true "Slasher address"
// @Param payload body SlashWithdrawalsPayload true "Slash"
// @Success 200 {object} PublicResponse[OperationResult] "Persisted sequence"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Failure 403 {object} types.Error "Error: Forbidden"
// @Failure 404 {object} types.Error "Error: Not Found"
// @Router /v1/admin/slash/withdrawals [post]
func (h *Handler) SlashWithdrawals(request *http.Request) (*Result, *types.Error) {
	caller, err := h.caller(request)
	if err != nil {
		return nil, err
	}
	payload, err := parseRequestPayload[SlashWithdrawalsPayload](request)
	if err != nil {
		return nil, err
	}
	validator, err := parseAddressField("validator", payload.Validator)
	if err != nil {
		return nil, err
	}
	percent, err := parseAmountField("slash_percent", payload.SlashPercent)
	if err != nil {
		return nil, err
	}
	if err := h.services.SlashUnstakeRequests(
		request.Context(), caller, validator, payload.ProblemTimestamp, percent,
	); err != nil {
		return nil, err
	}
	return h.newOperationResult(), nil
}

// Liquidate godoc
// @Summary Liquidate a validator
// @Description Slashes bps of the staked collateral and rewards of every listed pool of the validator.
// @Accept json
// @Produce json
// @Param X-Account header string true "Slasher address"
// @Param payload body LiquidatePayload true "Liquidation"
// @Success 200 {object} PublicResponse[OperationResult] "Persisted sequence"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Failure 403 {object} types.Error "Error: Forbidden"
// @Failure 404 {object} types.Error "Error: Not Found"
// @Router /v1/admin/liquidate [post]
func (h *Handler) Liquidate(request *http.Request) (*Result, *types.Error) {
	caller, err := h.caller(request)
	if err != nil {
		return nil, err
	}
	payload, err := parseRequestPayload[LiquidatePayload](request)
	if err != nil {
		return nil, err
	}
	validator, err := parseAddressField("validator", payload.Validator)
	if err != nil {
		return nil, err
	}
	collaterals, err := parseAddressList("collaterals", payload.Collaterals)
	if err != nil {
		return nil, err
	}
	if err := h.services.Liquidate(request.Context(), caller, validator, collaterals, payload.BPS); err != nil {
		return nil, err
	}
	return h.newOperationResult(), nil
}

// LiquidateDelegator godoc
// @Summary Liquidate a single delegator
// @Accept json
// @Produce json
// @Param X-Account header string true "Slasher address"
// @Param payload body LiquidateDelegatorPayload true "Liquidation"
// @Success 200 {object} PublicResponse[OperationResult] "Persisted sequence"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Failure 403 {object} types.Error "Error: Forbidden"
// @Failure 404 {object} types.Error "Error: Not Found"
// @Router /v1/admin/liquidate/delegator [post]
func (h *Handler) LiquidateDelegator(request *http.Request) (*Result, *types.Error) {
	caller, err := h.caller(request)
	if err != nil {
		return nil, err
	}
	payload, err := parseRequestPayload[LiquidateDelegatorPayload](request)
	if err != nil {
		return nil, err
	}
	validator, collateral, err := parsePool(payload.Validator, payload.Collateral)
	if err != nil {
		return nil, err
	}
	delegator, err := parseAddressField("delegator", payload.Delegator)
	if err != nil {
		return nil, err
	}
	if err := h.services.LiquidateDelegator(
		request.Context(), caller, validator, collateral, delegator, payload.BPS,
	); err != nil {
		return nil, err
	}
	return h.newOperationResult(), nil
}

// WithdrawTreasury godoc
// @Summary Withdraw the slashing treasury
// @Description Pays every slashed amount held by the ledger out to the slashing treasury account.
// @Produce json
// @Param X-Account header string true "Admin address"
// @Success 200 {object} PublicResponse[OperationResult] "Persisted sequence"
// @Failure 403 {object} types.Error "Error: Forbidden"
// @Router /v1/admin/treasury/withdraw [post]
func (h *Handler) WithdrawTreasury(request *http.Request) (*Result, *types.Error) {
	caller, err := h.caller(request)
	if err != nil {
		return nil, err
	}
	if err := h.services.WithdrawSlashingTreasury(request.Context(), caller); err != nil {
		return nil, err
	}
	return h.newOperationResult(), nil
}

func (h *Handler) parseSlashPool(request *http.Request) (common.Address, *SlashPoolPayload, *types.Error) {
	caller, err := h.caller(request)
	if err != nil {
		return common.Address{}, nil, err
	}
	payload, err := parseRequestPayload[SlashPoolPayload](request)
	if err != nil {
		return common.Address{}, nil, err
	}
	return caller, payload, nil
}

func parsePool(validatorValue, collateralValue string) (common.Address, common.Address, *types.Error) {
	validator, err := parseAddressField("validator", validatorValue)
	if err != nil {
		return common.Address{}, common.Address{}, err
	}
	collateral, err := parseAddressField("collateral", collateralValue)
	if err != nil {
		return common.Address{}, common.Address{}, err
	}
	return validator, collateral, nil
}
