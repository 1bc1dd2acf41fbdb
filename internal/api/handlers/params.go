package handlers

import (
	"net/http"

	"github.com/babylonchain/staking-ledger/internal/types"
)

// GetParams godoc
// @Summary Get ledger parameters
// @Description Retrieves the ledger wide settings, the custody account and the last persisted sequence.
// @Produce json
// @Success 200 {object} PublicResponse[services.ParamsPublic] "Ledger parameters"
// @Router /v1/params [get]
func (h *Handler) GetParams(request *http.Request) (*Result, *types.Error) {
	params := h.services.GetParams(request.Context())
	return NewResult(params), nil
}
