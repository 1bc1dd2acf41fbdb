package ledger

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// ExecuteUnstake pays out every unexecuted request in [fromID, toID]. Already
// executed requests are skipped. The first paused or still timelocked request
// aborts the whole range.
func (l *Ledger) ExecuteUnstake(ctx context.Context, validator common.Address, fromID, toID uint64) error {
	return l.run(ctx, func(ctx context.Context, tx *txn) error {
		if err := l.requireNotPaused(); err != nil {
			return err
		}
		v, err := l.getValidator(validator)
		if err != nil {
			return err
		}
		if err := checkRange(validator, v, fromID, toID); err != nil {
			return err
		}
		for id := fromID; id <= toID; id++ {
			w := v.withdrawals[id]
			if w.Executed {
				continue
			}
			if w.Paused {
				return newError(CodeRequestPaused, "withdrawal request is paused").withValidator(validator).withRequest(id)
			}
			if tx.now < w.Timelock {
				return newError(CodeTimelock, "withdrawal request unlocks at %d", w.Timelock).
					withValidator(validator).withRequest(id)
			}
			tx.setBool(&w.Executed, true)
			// Amount already reflects any slashing applied to the request.
			if err := l.transferOut(ctx, w.Collateral, w.Receiver, w.Amount); err != nil {
				return err
			}
			tx.emit(Event{
				Type: EventUnstakeExecuted, Validator: validator, Collateral: w.Collateral, Account: w.Receiver,
				RequestID: id, Amount: dec(w.Amount),
			})
		}
		return nil
	})
}

// CancelUnstake returns the amounts of the caller's requests in [fromID, toID]
// to the pool, minting shares at the current exchange rate, and consumes the
// requests.
func (l *Ledger) CancelUnstake(ctx context.Context, caller, validator common.Address, fromID, toID uint64) error {
	return l.run(ctx, func(ctx context.Context, tx *txn) error {
		if err := l.requireNotPaused(); err != nil {
			return err
		}
		v, err := l.getValidator(validator)
		if err != nil {
			return err
		}
		if err := l.requireDelegatorActions(validator, v); err != nil {
			return err
		}
		if err := checkRange(validator, v, fromID, toID); err != nil {
			return err
		}
		for id := fromID; id <= toID; id++ {
			w := v.withdrawals[id]
			if w.Executed {
				return newError(CodeAlreadyExecuted, "withdrawal request already executed").
					withValidator(validator).withRequest(id)
			}
			if w.Delegator != caller {
				return newError(CodeBadRole, "caller did not request this withdrawal").
					withValidator(validator).withRequest(id)
			}
			c, err := l.getCollateral(w.Collateral)
			if err != nil {
				return err
			}
			tx.setBool(&w.Executed, true)
			p := l.pool(tx, v, w.Collateral)
			shares, err := l.creditShares(tx, p, caller, w.Amount)
			if err != nil {
				return err
			}
			if err := tx.add(&c.TotalLocked, w.Amount); err != nil {
				return err
			}
			tx.emit(Event{
				Type: EventUnstakeCancelled, Validator: validator, Collateral: w.Collateral, Account: caller,
				RequestID: id, Amount: dec(w.Amount), Shares: dec(shares),
			})
		}
		return nil
	})
}

// PauseUnstakeRequests toggles the paused flag of the given requests.
// Executed requests are skipped.
func (l *Ledger) PauseUnstakeRequests(
	ctx context.Context, caller, validator common.Address, ids []uint64, paused bool,
) error {
	return l.run(ctx, func(ctx context.Context, tx *txn) error {
		if err := l.requireRole(AdminRole, caller); err != nil {
			return err
		}
		v, err := l.getValidator(validator)
		if err != nil {
			return err
		}
		for _, id := range ids {
			if id >= uint64(len(v.withdrawals)) {
				return newError(CodeInvalidRange, "withdrawal request does not exist").
					withValidator(validator).withRequest(id)
			}
			w := v.withdrawals[id]
			if w.Executed {
				continue
			}
			tx.setBool(&w.Paused, paused)
			tx.emit(Event{
				Type: EventUnstakePauseChanged, Validator: validator, Collateral: w.Collateral,
				RequestID: id, Value: boolValue(paused),
			})
		}
		return nil
	})
}

func checkRange(validator common.Address, v *Validator, fromID, toID uint64) error {
	count := uint64(len(v.withdrawals))
	if fromID > toID || toID >= count {
		return newError(CodeInvalidRange, "range [%d, %d] outside %d requests", fromID, toID, count).
			withValidator(validator)
	}
	return nil
}

// pendingAmount sums the unexecuted requests of one collateral.
func pendingAmount(v *Validator, collateral common.Address) *uint256.Int {
	total := zero()
	for _, w := range v.withdrawals {
		if !w.Executed && w.Collateral == collateral {
			total = new(uint256.Int).Add(total, w.Amount)
		}
	}
	return total
}
