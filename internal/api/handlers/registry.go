package handlers

import (
	"net/http"

	"github.com/babylonchain/staking-ledger/internal/types"
)

// GetCollaterals godoc
// @Summary List collaterals
// @Description Lists every registered collateral, enabled or not.
// @Produce json
// @Success 200 {object} PublicResponse[[]services.CollateralPublic]{array} "List of collaterals"
// @Router /v1/collaterals [get]
func (h *Handler) GetCollaterals(request *http.Request) (*Result, *types.Error) {
	return NewResult(h.services.GetCollaterals(request.Context())), nil
}

// GetCollateral godoc
// @Summary Get a collateral
// @Produce json
// @Param id path string true "Collateral token address"
// @Success 200 {object} PublicResponse[services.CollateralPublic] "Collateral"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Failure 404 {object} types.Error "Error: Not Found"
// @Router /v1/collaterals/{id} [get]
func (h *Handler) GetCollateral(request *http.Request) (*Result, *types.Error) {
	id, err := parseURLAddress(request, "id")
	if err != nil {
		return nil, err
	}
	collateral, err := h.services.GetCollateral(request.Context(), id)
	if err != nil {
		return nil, err
	}
	return NewResult(collateral), nil
}

// GetValidators godoc
// @Summary List validators
// @Description Lists every registered validator with the collaterals it has pools for.
// @Produce json
// @Success 200 {object} PublicResponse[[]services.ValidatorPublic]{array} "List of validators"
// @Router /v1/validators [get]
func (h *Handler) GetValidators(request *http.Request) (*Result, *types.Error) {
	return NewResult(h.services.GetValidators(request.Context())), nil
}

// GetValidator godoc
// @Summary Get a validator
// @Produce json
// @Param id path string true "Validator address"
// @Success 200 {object} PublicResponse[services.ValidatorPublic] "Validator"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Failure 404 {object} types.Error "Error: Not Found"
// @Router /v1/validators/{id} [get]
func (h *Handler) GetValidator(request *http.Request) (*Result, *types.Error) {
	id, err := parseURLAddress(request, "id")
	if err != nil {
		return nil, err
	}
	validator, err := h.services.GetValidator(request.Context(), id)
	if err != nil {
		return nil, err
	}
	return NewResult(validator), nil
}
