package handlers

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/babylonchain/staking-ledger/internal/queue/client"
	"github.com/babylonchain/staking-ledger/internal/services"
	"github.com/babylonchain/staking-ledger/internal/types"
)

func (h *QueueHandler) SlashingIncidentHandler(ctx context.Context, messageBody string) *types.Error {
	event, err := decode[client.SlashingIncidentEvent](ctx, messageBody, "SlashingIncidentEvent")
	if err != nil {
		return err
	}
	validator, err := parseAddress("validator", event.Validator)
	if err != nil {
		return err
	}
	slashPercent := new(uint256.Int)
	if event.SlashPercent != "" {
		if slashPercent, err = parseAmount("slash_percent", event.SlashPercent); err != nil {
			return err
		}
	}
	collaterals := make([]common.Address, 0, len(event.Collaterals))
	for _, c := range event.Collaterals {
		collateral, err := parseAddress("collaterals", c)
		if err != nil {
			return err
		}
		collaterals = append(collaterals, collateral)
	}

	return h.Services.ProcessSlashingIncident(ctx, services.SlashingIncident{
		Validator:        validator,
		ProblemTimestamp: event.ProblemTimestamp,
		SlashPercent:     slashPercent,
		LiquidateBPS:     event.LiquidateBPS,
		Collaterals:      collaterals,
	})
}
