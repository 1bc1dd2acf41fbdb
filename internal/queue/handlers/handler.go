package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/rs/zerolog/log"

	"github.com/babylonchain/staking-ledger/internal/services"
	"github.com/babylonchain/staking-ledger/internal/types"
)

type QueueHandler struct {
	Services *services.Services
}

type MessageHandler func(ctx context.Context, messageBody string) *types.Error

func NewQueueHandler(services *services.Services) *QueueHandler {
	return &QueueHandler{
		Services: services,
	}
}

func decode[T any](ctx context.Context, messageBody, name string) (*T, *types.Error) {
	var event T
	if err := json.Unmarshal([]byte(messageBody), &event); err != nil {
		log.Ctx(ctx).Error().Err(err).Msgf("Failed to unmarshal the message body into %s", name)
		return nil, types.NewError(http.StatusBadRequest, types.BadRequest, err)
	}
	return &event, nil
}

func parseAddress(field, value string) (common.Address, *types.Error) {
	addr, err := types.ParseAddress(value)
	if err != nil {
		return common.Address{}, types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, field+": "+err.Error())
	}
	return addr, nil
}

func parseAmount(field, value string) (*uint256.Int, *types.Error) {
	amount, err := types.ParseAmount(value)
	if err != nil {
		return nil, types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, field+": "+err.Error())
	}
	return amount, nil
}
