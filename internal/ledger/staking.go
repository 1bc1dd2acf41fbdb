package ledger

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Stake deposits amount of collateral behind a validator and credits the
// caller with shares at the pool's current exchange rate.
func (l *Ledger) Stake(
	ctx context.Context, caller, validator, collateral common.Address, amount *uint256.Int,
) (*uint256.Int, error) {
	var minted *uint256.Int
	err := l.run(ctx, func(ctx context.Context, tx *txn) error {
		if err := l.requireNotPaused(); err != nil {
			return err
		}
		if amount.IsZero() {
			return newError(CodeZeroAmount, "stake amount is zero")
		}
		v, err := l.getValidator(validator)
		if err != nil {
			return err
		}
		if err := l.requireDelegatorActions(validator, v); err != nil {
			return err
		}
		c, err := l.getCollateral(collateral)
		if err != nil {
			return err
		}
		if !c.IsEnabled {
			return newError(CodeCollateralDisabled, "collateral is disabled").withCollateral(collateral)
		}
		p := l.pool(tx, v, collateral)
		staked, overflow := new(uint256.Int).AddOverflow(p.StakedAmount, amount)
		if overflow || staked.Gt(c.MaxStakeAmount) {
			return newError(CodeStakeCapExceeded, "pool would hold %s above cap %s", staked.Dec(), c.MaxStakeAmount.Dec()).
				withValidator(validator).withCollateral(collateral)
		}

		shares, err := l.creditShares(tx, p, caller, amount)
		if err != nil {
			return err
		}
		if shares.IsZero() {
			return newError(CodeInsufficientAmount, "stake amount mints no shares").
				withValidator(validator).withCollateral(collateral)
		}
		if err := tx.add(&c.TotalLocked, amount); err != nil {
			return err
		}
		if err := l.transferIn(ctx, collateral, caller, amount); err != nil {
			return err
		}
		minted = shares
		tx.emit(Event{
			Type: EventStaked, Validator: validator, Collateral: collateral, Account: caller,
			Amount: dec(amount), Shares: dec(shares),
		})
		return nil
	})
	return minted, err
}

// RequestUnstake burns up to shares of the caller's unlocked position and
// queues the resulting amount for withdrawal after the timelock. Requests
// above the available balance are capped rather than rejected. The amount
// leaves the pool and the collateral totals immediately.
func (l *Ledger) RequestUnstake(
	ctx context.Context, caller, validator, collateral, recipient common.Address, shares *uint256.Int,
) (uint64, error) {
	var id uint64
	err := l.run(ctx, func(ctx context.Context, tx *txn) error {
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
		c, err := l.getCollateral(collateral)
		if err != nil {
			return err
		}
		p, ok := v.pools[collateral]
		if !ok {
			return newError(CodeInsufficientAmount, "no position in pool").
				withValidator(validator).withCollateral(collateral)
		}
		d, ok := p.delegators[caller]
		if !ok {
			return newError(CodeInsufficientAmount, "no position in pool").
				withValidator(validator).withCollateral(collateral)
		}
		burn := minInt(shares, d.unlocked())
		if burn.IsZero() {
			return newError(CodeInsufficientAmount, "no unlocked shares to unstake").
				withValidator(validator).withCollateral(collateral)
		}
		amount, err := l.burnShares(tx, p, d, burn)
		if err != nil {
			return err
		}
		if err := tx.sub(&c.TotalLocked, amount); err != nil {
			return err
		}
		if recipient == (common.Address{}) {
			recipient = caller
		}

		id = uint64(len(v.withdrawals))
		v.withdrawals = append(v.withdrawals, &WithdrawalInfo{
			Delegator:      caller,
			Amount:         amount,
			SlashingAmount: zero(),
			Timelock:       tx.now + l.params.WithdrawTimelock,
			Receiver:       recipient,
			Collateral:     collateral,
		})
		tx.onRevert(func() { v.withdrawals = v.withdrawals[:len(v.withdrawals)-1] })
		tx.emit(Event{
			Type: EventUnstakeRequested, Validator: validator, Collateral: collateral, Account: caller,
			RequestID: id, Amount: dec(amount), Shares: dec(burn),
		})
		return nil
	})
	return id, err
}
