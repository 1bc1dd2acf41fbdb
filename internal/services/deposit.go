package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/rs/zerolog/log"

	"github.com/babylonchain/staking-ledger/internal/db"
	"github.com/babylonchain/staking-ledger/internal/db/model"
	"github.com/babylonchain/staking-ledger/internal/ledger"
	"github.com/babylonchain/staking-ledger/internal/observability/metrics"
	"github.com/babylonchain/staking-ledger/internal/types"
)

// ProcessDeposit credits an externally observed deposit to the custody book.
// Deposits are keyed by depositID and applied at most once.
func (s *Services) ProcessDeposit(
	ctx context.Context, depositID string, account, token common.Address, amount *uint256.Int,
) *types.Error {
	s.mu.Lock()
	defer s.mu.Unlock()

	done := metrics.StartLedgerOperationTimer("deposit")
	apiErr := s.deposit(ctx, depositID, account, token, amount)
	if apiErr != nil {
		done(metrics.Error)
		return apiErr
	}
	done(metrics.Success)
	return nil
}

func (s *Services) deposit(
	ctx context.Context, depositID string, account, token common.Address, amount *uint256.Int,
) *types.Error {
	processed, err := s.DbClient.IsDepositProcessed(ctx, depositID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("deposit_id", depositID).Msg("error while checking deposit")
		return types.NewInternalServiceError(err)
	}
	if processed {
		log.Ctx(ctx).Info().Str("deposit_id", depositID).Msg("deposit already processed, skipping")
		return nil
	}
	if amount.IsZero() {
		return types.NewErrorWithMsg(http.StatusBadRequest, types.ErrorCode(ledger.CodeZeroAmount), "deposit amount is zero")
	}
	if _, err := s.Ledger.Collateral(token); err != nil {
		return s.toApiError(ctx, "deposit", err)
	}

	book := s.Clients.Bank
	checkpoint := book.Checkpoint()
	if err := book.Credit(token, account, amount); err != nil {
		book.RevertTo(checkpoint)
		return types.NewError(http.StatusBadRequest, types.BadRequest, err)
	}
	s.unsaved = append(s.unsaved, ledger.Event{
		Type:       EventDeposited,
		Collateral: token,
		Account:    account,
		Amount:     amount.Dec(),
		Time:       uint64(s.clock().Unix()),
	})
	doc := &model.DepositDocument{
		ID:        depositID,
		Account:   account.Hex(),
		Token:     token.Hex(),
		Amount:    amount.Dec(),
		Timestamp: s.clock().Unix(),
	}
	if err := s.persist(ctx, doc); err != nil {
		book.RevertTo(checkpoint)
		s.unsaved = s.unsaved[:len(s.unsaved)-1]
		var dup *db.DuplicateKeyError
		if errors.As(err, &dup) && dup.Key == depositID {
			log.Ctx(ctx).Info().Str("deposit_id", depositID).Msg("deposit processed concurrently, skipping")
			return nil
		}
		log.Ctx(ctx).Error().Err(err).Str("deposit_id", depositID).Msg("error while persisting deposit")
		return types.NewInternalServiceError(err)
	}
	book.Commit(checkpoint)
	return nil
}

// ProcessReward pulls amount of token from the configured reward source into
// the ledger and, when distribute is set, splits it among validators right
// away as the system admin. A failed distribution does not fail the message:
// the received rewards stay undistributed and go out with the next one.
func (s *Services) ProcessReward(
	ctx context.Context, token common.Address, amount *uint256.Int, distribute bool,
) *types.Error {
	source := s.cfg.Ledger.RewardSourceAccount()
	if err := s.SendRewards(ctx, source, token, amount); err != nil {
		return err
	}
	if !distribute {
		return nil
	}
	admin, err := s.systemCaller(ledger.AdminRole)
	if err != nil {
		return err
	}
	if err := s.DistributeValidatorRewards(ctx, admin, token); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("collateral", token.Hex()).Msg("rewards received but not distributed")
	}
	return nil
}
