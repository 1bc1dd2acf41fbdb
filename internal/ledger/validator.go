package ledger

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// AddValidator registers an enabled validator bound to admin.
func (l *Ledger) AddValidator(
	ctx context.Context, caller, id, admin common.Address, weight, profitSharingBPS uint64,
) error {
	return l.run(ctx, func(ctx context.Context, tx *txn) error {
		if err := l.requireRole(AdminRole, caller); err != nil {
			return err
		}
		if id == (common.Address{}) || admin == (common.Address{}) {
			return newError(CodeInvalidArgument, "zero validator or admin address")
		}
		if _, ok := l.validators[id]; ok {
			return newError(CodeAlreadyExists, "validator already registered").withValidator(id)
		}
		if err := l.checkProfitSharing(id, profitSharingBPS); err != nil {
			return err
		}
		denominator, err := addWeight(l.params.WeightDenominator, weight)
		if err != nil {
			return err
		}
		l.validators[id] = &Validator{
			Admin:                   admin,
			RewardWeightCoefficient: weight,
			ProfitSharingBPS:        profitSharingBPS,
			IsEnabled:               true,
			pools:                   make(map[common.Address]*Pool),
		}
		l.validatorIDs = append(l.validatorIDs, id)
		tx.onRevert(func() {
			delete(l.validators, id)
			l.validatorIDs = l.validatorIDs[:len(l.validatorIDs)-1]
		})
		tx.addToSet(l.activeValidators, id)
		tx.setUint64(&l.params.WeightDenominator, denominator)
		tx.emit(Event{Type: EventValidatorAdded, Validator: id, Account: admin, Value: weight})
		return nil
	})
}

// SetValidatorEnabled toggles membership in the active validator list. Only
// active validators take part in reward distribution.
func (l *Ledger) SetValidatorEnabled(ctx context.Context, caller, id common.Address, enabled bool) error {
	return l.run(ctx, func(ctx context.Context, tx *txn) error {
		if err := l.requireRole(AdminRole, caller); err != nil {
			return err
		}
		v, err := l.getValidator(id)
		if err != nil {
			return err
		}
		if v.IsEnabled == enabled {
			return nil
		}
		denominator := l.params.WeightDenominator
		if enabled {
			if denominator, err = addWeight(denominator, v.RewardWeightCoefficient); err != nil {
				return err
			}
			tx.addToSet(l.activeValidators, id)
		} else {
			denominator -= v.RewardWeightCoefficient
			tx.removeFromSet(l.activeValidators, id)
		}
		tx.setBool(&v.IsEnabled, enabled)
		tx.setUint64(&l.params.WeightDenominator, denominator)
		tx.emit(Event{Type: EventValidatorStatusChanged, Validator: id, Value: boolValue(enabled)})
		return nil
	})
}

// SetRewardWeightCoefficient changes a validator's share of distributed rewards.
func (l *Ledger) SetRewardWeightCoefficient(ctx context.Context, caller, id common.Address, weight uint64) error {
	return l.run(ctx, func(ctx context.Context, tx *txn) error {
		if err := l.requireRole(AdminRole, caller); err != nil {
			return err
		}
		v, err := l.getValidator(id)
		if err != nil {
			return err
		}
		if v.IsEnabled {
			denominator, err := addWeight(l.params.WeightDenominator-v.RewardWeightCoefficient, weight)
			if err != nil {
				return err
			}
			tx.setUint64(&l.params.WeightDenominator, denominator)
		}
		tx.setUint64(&v.RewardWeightCoefficient, weight)
		tx.emit(Event{Type: EventRewardWeightChanged, Validator: id, Value: weight})
		return nil
	})
}

// SetProfitSharing sets the share of rewards passed on to delegators. Only
// the validator admin may change it and never below the global floor.
func (l *Ledger) SetProfitSharing(ctx context.Context, caller, id common.Address, bps uint64) error {
	return l.run(ctx, func(ctx context.Context, tx *txn) error {
		v, err := l.getValidator(id)
		if err != nil {
			return err
		}
		if caller != v.Admin {
			return newError(CodeBadRole, "caller is not the validator admin").withValidator(id)
		}
		if err := l.checkProfitSharing(id, bps); err != nil {
			return err
		}
		tx.setUint64(&v.ProfitSharingBPS, bps)
		tx.emit(Event{Type: EventProfitSharingChanged, Validator: id, Account: caller, Value: bps})
		return nil
	})
}

// SetDelegatorActionPaused blocks or unblocks stake, unstake requests and
// cancellations on one validator.
func (l *Ledger) SetDelegatorActionPaused(ctx context.Context, caller, id common.Address, paused bool) error {
	return l.run(ctx, func(ctx context.Context, tx *txn) error {
		if err := l.requireRole(AdminRole, caller); err != nil {
			return err
		}
		v, err := l.getValidator(id)
		if err != nil {
			return err
		}
		tx.setBool(&v.DelegatorActionPaused, paused)
		tx.emit(Event{Type: EventDelegatorActionPaused, Validator: id, Value: boolValue(paused)})
		return nil
	})
}

func (l *Ledger) checkProfitSharing(id common.Address, bps uint64) error {
	if bps > BPSDenominator {
		return newError(CodeInvalidArgument, "profit sharing %d above %d", bps, BPSDenominator).withValidator(id)
	}
	if bps < l.params.MinProfitSharingBPS {
		return newError(CodeInvalidArgument, "profit sharing %d below minimum %d", bps, l.params.MinProfitSharingBPS).
			withValidator(id)
	}
	return nil
}

func addWeight(denominator, weight uint64) (uint64, error) {
	sum := denominator + weight
	if sum < denominator {
		return 0, newError(CodeArithmetic, "reward weight overflow")
	}
	return sum, nil
}
