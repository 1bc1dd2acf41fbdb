package handlers

import (
	"context"

	"github.com/babylonchain/staking-ledger/internal/queue/client"
	"github.com/babylonchain/staking-ledger/internal/types"
)

func (h *QueueHandler) RewardHandler(ctx context.Context, messageBody string) *types.Error {
	event, err := decode[client.RewardEvent](ctx, messageBody, "RewardEvent")
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

	return h.Services.ProcessReward(ctx, token, amount, event.Distribute)
}
