package handlers

import (
	"context"
	"net/http"

	"github.com/babylonchain/staking-ledger/internal/queue/client"
	"github.com/babylonchain/staking-ledger/internal/types"
)

// DepositHandler credits a deposit to the custody book. Deposits carry their
// own id, so duplicates of an already applied message are ignored.
func (h *QueueHandler) DepositHandler(ctx context.Context, messageBody string) *types.Error {
	event, err := decode[client.DepositEvent](ctx, messageBody, "DepositEvent")
	if err != nil {
		return err
	}
	if event.DepositID == "" {
		return types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, "deposit_id is required")
	}
	account, err := parseAddress("account", event.Account)
	if err != nil {
		return err
	}
	token, err := parseAddress("token", event.Token)
	if err != nil {
		return err
	}
	amount, err := parseAmount("amount", event.Amount)
	if err != nil {
		return err
	}

	return h.Services.ProcessDeposit(ctx, event.DepositID, account, token, amount)
}
