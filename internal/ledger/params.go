package ledger

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// SetMinProfitSharingBPS sets the floor for validator profit sharing. Existing
// validators keep their configuration until they next change it.
func (l *Ledger) SetMinProfitSharingBPS(ctx context.Context, caller common.Address, bps uint64) error {
	return l.run(ctx, func(ctx context.Context, tx *txn) error {
		if err := l.requireRole(AdminRole, caller); err != nil {
			return err
		}
		if bps > BPSDenominator {
			return newError(CodeInvalidArgument, "min profit sharing %d above %d", bps, BPSDenominator)
		}
		tx.setUint64(&l.params.MinProfitSharingBPS, bps)
		tx.emit(Event{Type: EventParamsChanged, Param: "min_profit_sharing_bps", Value: bps})
		return nil
	})
}

// SetWithdrawTimelock sets the delay in seconds applied to new unstake requests.
func (l *Ledger) SetWithdrawTimelock(ctx context.Context, caller common.Address, seconds uint64) error {
	return l.run(ctx, func(ctx context.Context, tx *txn) error {
		if err := l.requireRole(AdminRole, caller); err != nil {
			return err
		}
		tx.setUint64(&l.params.WithdrawTimelock, seconds)
		tx.emit(Event{Type: EventParamsChanged, Param: "withdraw_timelock", Value: seconds})
		return nil
	})
}

// SetSlashingTreasury sets the destination of slashed funds.
func (l *Ledger) SetSlashingTreasury(ctx context.Context, caller, treasury common.Address) error {
	return l.run(ctx, func(ctx context.Context, tx *txn) error {
		if err := l.requireRole(AdminRole, caller); err != nil {
			return err
		}
		if treasury == (common.Address{}) {
			return newError(CodeInvalidArgument, "zero treasury address")
		}
		tx.setAddress(&l.params.SlashingTreasury, treasury)
		tx.emit(Event{Type: EventParamsChanged, Account: treasury, Param: "slashing_treasury"})
		return nil
	})
}

// SetPaused suspends or resumes every delegator facing operation. Admin
// operations stay available while paused.
func (l *Ledger) SetPaused(ctx context.Context, caller common.Address, paused bool) error {
	return l.run(ctx, func(ctx context.Context, tx *txn) error {
		if err := l.requireRole(AdminRole, caller); err != nil {
			return err
		}
		tx.setBool(&l.params.Paused, paused)
		tx.emit(Event{Type: EventParamsChanged, Param: "paused", Value: boolValue(paused)})
		return nil
	})
}
