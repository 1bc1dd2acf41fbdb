package handlers

import (
	"net/http"

	"github.com/babylonchain/staking-ledger/internal/db"
	"github.com/babylonchain/staking-ledger/internal/types"
)

// GetLedgerEvents @Summary List ledger events
// @Description Lists the persisted ledger events, newest first.
// @Description Every filter is optional and filters are combined.
// @Produce json
// @Param type query string false "Event type, e.g. Staked"
// @Param validator query string false "Validator address"
// @Param collateral query string false "Collateral token address"
// @Param account query string false "Delegator or recipient address"
// @Param pagination_key query string false "Pagination key to fetch the next page of events"
// @Success 200 {object} PublicResponse[[]services.LedgerEventPublic]{array} "List of events and pagination token"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Router /v1/events [get]
func (h *Handler) GetLedgerEvents(request *http.Request) (*Result, *types.Error) {
	query := request.URL.Query()
	filter := db.LedgerEventFilter{Type: query.Get("type")}

	var err *types.Error
	if filter.Validator, err = parseQueryAddress(request, "validator"); err != nil {
		return nil, err
	}
	if filter.Collateral, err = parseQueryAddress(request, "collateral"); err != nil {
		return nil, err
	}
	if filter.Account, err = parseQueryAddress(request, "account"); err != nil {
		return nil, err
	}

	events, paginationKey, err := h.services.GetLedgerEvents(
		request.Context(), filter, query.Get("pagination_key"),
	)
	if err != nil {
		return nil, err
	}
	return NewResultWithPagination(events, paginationKey), nil
}
