package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/babylonchain/staking-ledger/internal/clients/bank"
	"github.com/babylonchain/staking-ledger/internal/db"
	"github.com/babylonchain/staking-ledger/internal/db/model"
	"github.com/babylonchain/staking-ledger/internal/ledger"
	"github.com/babylonchain/staking-ledger/internal/observability/metrics"
	"github.com/babylonchain/staking-ledger/internal/observability/tracing"
	"github.com/babylonchain/staking-ledger/internal/types"
)

// collectEvents is the ledger's event sink. It runs while the ledger lock is
// held, so it only buffers.
func (s *Services) collectEvents(_ context.Context, events []ledger.Event) {
	s.pending = append(s.pending, events...)
}

func (s *Services) load(ctx context.Context) error {
	doc, err := s.DbClient.FindLedgerState(ctx)
	if err != nil {
		if db.IsNotFoundError(err) {
			return s.bootstrap(ctx)
		}
		return err
	}
	if err := s.restore(doc); err != nil {
		return err
	}
	log.Ctx(ctx).Info().Uint64("sequence", doc.Sequence).Msg("ledger state restored")
	return s.registerSwapTokens()
}

func (s *Services) restore(doc *model.LedgerStateDocument) error {
	var state ledger.State
	if err := json.Unmarshal([]byte(doc.Ledger), &state); err != nil {
		return fmt.Errorf("failed to decode ledger state: %w", err)
	}
	var balances []bank.Balance
	if err := json.Unmarshal([]byte(doc.Balances), &balances); err != nil {
		return fmt.Errorf("failed to decode balances: %w", err)
	}
	roles := make(map[ledger.Role][]common.Address)
	if doc.Roles != "" {
		if err := json.Unmarshal([]byte(doc.Roles), &roles); err != nil {
			return fmt.Errorf("failed to decode roles: %w", err)
		}
	}

	if err := s.Clients.Bank.Restore(balances); err != nil {
		return err
	}
	if err := s.Clients.Access.Restore(roles); err != nil {
		return err
	}
	if err := s.Ledger.Restore(&state); err != nil {
		return err
	}
	s.sequence = doc.Sequence
	metrics.SetLedgerSequence(doc.Sequence)
	return nil
}

// bootstrap seeds an empty ledger from the genesis file and persists it as
// the first state.
func (s *Services) bootstrap(ctx context.Context) error {
	if s.genesis == nil {
		return errors.New("no persisted ledger state and no genesis provided")
	}
	if err := s.genesis.ValidateProfitSharing(s.cfg.Ledger.MinProfitSharingBPS); err != nil {
		return err
	}
	admin, apiErr := s.systemCaller(ledger.AdminRole)
	if apiErr != nil {
		return apiErr
	}

	// A genesis that fails half way must not leave a state behind, or the
	// next start would restore it and skip genesis.
	err := s.apply(ctx, "bootstrap", func(ctx context.Context) error {
		for _, c := range s.genesis.Collaterals {
			id := common.HexToAddress(c.Address)
			maxStake, err := types.ParseAmount(c.MaxStakeAmount)
			if err != nil {
				return err
			}
			if err := s.Ledger.AddCollateral(ctx, admin, id, maxStake, c.Decimals, c.IsUSDStable); err != nil {
				return err
			}
			if c.Disabled {
				if err := s.Ledger.SetCollateralEnabled(ctx, admin, id, false); err != nil {
					return err
				}
			}
		}
		for _, v := range s.genesis.Validators {
			id := common.HexToAddress(v.Address)
			err := s.Ledger.AddValidator(
				ctx, admin, id, common.HexToAddress(v.Admin), v.RewardWeight, v.ProfitSharingBPS,
			)
			if err != nil {
				return err
			}
			if v.Disabled {
				if err := s.Ledger.SetValidatorEnabled(ctx, admin, id, false); err != nil {
					return err
				}
			}
		}
		for _, b := range s.genesis.Balances {
			amount, err := types.ParseAmount(b.Amount)
			if err != nil {
				return err
			}
			if err := s.Clients.Bank.Credit(
				common.HexToAddress(b.Token), common.HexToAddress(b.Account), amount,
			); err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return err
	}
	if len(s.unsaved) > 0 {
		return errors.New("failed to persist the genesis ledger state")
	}
	log.Ctx(ctx).Info().
		Int("collaterals", len(s.genesis.Collaterals)).
		Int("validators", len(s.genesis.Validators)).
		Msg("ledger bootstrapped from genesis")
	return s.registerSwapTokens()
}

func (s *Services) registerSwapTokens() error {
	for _, c := range s.Ledger.Collaterals() {
		if err := s.Clients.Swap.RegisterToken(c.ID, c.Decimals, c.IsUSDStable); err != nil {
			return err
		}
	}
	return nil
}

// execute runs fn with the service lock held and persists whatever it
// committed. Multi step updates may fail half way, so events collected
// before the failure are persisted as well.
func (s *Services) execute(
	ctx context.Context, operation string, fn func(ctx context.Context) error,
) *types.Error {
	return s.apply(ctx, operation, fn, true)
}

// apply runs fn under the service lock. With keepPartial unset a failing fn
// persists nothing and the events it collected are dropped.
func (s *Services) apply(
	ctx context.Context, operation string, fn func(ctx context.Context) error, keepPartial bool,
) *types.Error {
	s.mu.Lock()
	defer s.mu.Unlock()

	done := metrics.StartLedgerOperationTimer(operation)
	opErr := fn(ctx)
	if opErr != nil && !keepPartial {
		s.pending = nil
		done(metrics.Error)
		return s.toApiError(ctx, operation, opErr)
	}
	s.unsaved = append(s.unsaved, s.pending...)
	s.pending = nil

	if opErr == nil || len(s.unsaved) > 0 {
		if err := s.persist(ctx, nil); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("operation", operation).
				Int("unsaved_events", len(s.unsaved)).
				Msg("error while persisting ledger state, will retry with the next operation")
		}
	}

	if opErr != nil {
		done(metrics.Error)
		return s.toApiError(ctx, operation, opErr)
	}
	done(metrics.Success)
	return nil
}

// persist writes the current ledger, book and roles together with the
// unsaved events. On failure the events stay queued for the next attempt.
func (s *Services) persist(ctx context.Context, deposit *model.DepositDocument) error {
	sequence := s.sequence + 1
	now := s.clock().Unix()

	ledgerState, err := json.Marshal(s.Ledger.Snapshot())
	if err != nil {
		return err
	}
	balances, err := json.Marshal(s.Clients.Bank.Snapshot())
	if err != nil {
		return err
	}
	roles, err := json.Marshal(s.Clients.Access.Snapshot())
	if err != nil {
		return err
	}
	state := model.NewLedgerStateDocument(sequence, string(ledgerState), string(balances), string(roles), now)

	docs := make([]*model.LedgerEventDocument, 0, len(s.unsaved))
	for i, event := range s.unsaved {
		doc, err := newLedgerEventDocument(sequence, i, event, now)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
	}
	if deposit != nil {
		deposit.Sequence = sequence
	}

	_, err = tracing.WrapWithSpan(ctx, "SaveLedgerState", func() (struct{}, error) {
		return struct{}{}, s.DbClient.SaveLedgerState(ctx, state, docs, deposit)
	})
	if err != nil {
		return err
	}

	s.sequence = sequence
	metrics.SetLedgerSequence(sequence)
	events := s.unsaved
	s.unsaved = nil
	s.publish(ctx, events)
	return nil
}

func (s *Services) publish(ctx context.Context, events []ledger.Event) {
	if s.publisher == nil || len(events) == 0 {
		return
	}
	if err := s.publisher.PublishLedgerEvents(ctx, events); err != nil {
		log.Ctx(ctx).Warn().Err(err).Int("events", len(events)).Msg("error while publishing ledger events")
		return
	}
	for _, event := range events {
		metrics.RecordLedgerEventPublished(string(event.Type))
	}
}

func newLedgerEventDocument(sequence uint64, index int, event ledger.Event, now int64) (*model.LedgerEventDocument, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}
	timestamp := now
	if event.Time != 0 {
		timestamp = int64(event.Time)
	}
	return &model.LedgerEventDocument{
		ID:         uuid.NewString(),
		Sequence:   sequence,
		Index:      index,
		Type:       string(event.Type),
		Validator:  hexOrEmpty(event.Validator),
		Collateral: hexOrEmpty(event.Collateral),
		Account:    hexOrEmpty(event.Account),
		Payload:    string(payload),
		Timestamp:  timestamp,
	}, nil
}

func hexOrEmpty(addr common.Address) string {
	if addr == (common.Address{}) {
		return ""
	}
	return addr.Hex()
}

func (s *Services) toApiError(ctx context.Context, operation string, err error) *types.Error {
	var apiErr *types.Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	if errors.Is(err, bank.ErrInsufficientBalance) {
		return types.NewError(http.StatusBadRequest, types.InsufficientBalance, err)
	}

	code := ledger.CodeOf(err)
	switch code {
	case ledger.CodeNotFound:
		return types.NewError(http.StatusNotFound, types.NotFound, err)
	case ledger.CodeBadRole:
		return types.NewError(http.StatusForbidden, types.Forbidden, err)
	case ledger.CodeInvalidArgument, ledger.CodeZeroAmount, ledger.CodeInsufficientAmount, ledger.CodeInvalidRange:
		return types.NewError(http.StatusBadRequest, types.ErrorCode(code), err)
	case ledger.CodeCollateralDisabled, ledger.CodeStakeCapExceeded, ledger.CodeAlreadyExecuted,
		ledger.CodeDelegatorActionPaused, ledger.CodeRequestPaused, ledger.CodeTimelock,
		ledger.CodeAlreadyExists, ledger.CodePaused:
		return types.NewError(http.StatusConflict, types.ErrorCode(code), err)
	}

	log.Ctx(ctx).Error().Err(err).Str("operation", operation).Msg("ledger operation failed")
	return types.NewInternalServiceError(err)
}
