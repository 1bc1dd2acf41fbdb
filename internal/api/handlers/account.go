package handlers

import (
	"net/http"

	"github.com/babylonchain/staking-ledger/internal/types"
)

// GetBalances godoc
// @Summary List account balances
// @Description Lists the custody book balances of an account for every token it holds.
// @Produce json
// @Param account path string true "Account address"
// @Success 200 {object} PublicResponse[[]services.BalancePublic]{array} "Balances"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Router /v1/accounts/{account}/balances [get]
func (h *Handler) GetBalances(request *http.Request) (*Result, *types.Error) {
	account, err := parseURLAddress(request, "account")
	if err != nil {
		return nil, err
	}
	return NewResult(h.services.GetBalances(request.Context(), account)), nil
}

// GetBalance godoc
// @Summary Get an account balance
// @Produce json
// @Param account path string true "Account address"
// @Param token path string true "Token address"
// @Success 200 {object} PublicResponse[services.BalancePublic] "Balance"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Router /v1/accounts/{account}/balances/{token} [get]
func (h *Handler) GetBalance(request *http.Request) (*Result, *types.Error) {
	account, err := parseURLAddress(request, "account")
	if err != nil {
		return nil, err
	}
	token, err := parseURLAddress(request, "token")
	if err != nil {
		return nil, err
	}
	return NewResult(h.services.GetBalance(request.Context(), account, token)), nil
}

type PricePublic struct {
	Token string `json:"token"`
	Price string `json:"price"`
}

// GetPrice godoc
// @Summary Get a collateral price
// @Description Retrieves the oracle USD price of a collateral, with 8 decimals.
// @Produce json
// @Param token path string true "Collateral token address"
// @Success 200 {object} PublicResponse[PricePublic] "Price"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Failure 404 {object} types.Error "Error: Not Found"
// @Router /v1/prices/{token} [get]
func (h *Handler) GetPrice(request *http.Request) (*Result, *types.Error) {
	token, err := parseURLAddress(request, "token")
	if err != nil {
		return nil, err
	}
	price, err := h.services.GetPrice(request.Context(), token)
	if err != nil {
		return nil, err
	}
	return NewResult(PricePublic{Token: token.Hex(), Price: price.Dec()}), nil
}
