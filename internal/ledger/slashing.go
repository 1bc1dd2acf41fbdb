package ledger

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

func checkBPS(bps uint64) error {
	if bps == 0 || bps > BPSDenominator {
		return newError(CodeInvalidArgument, "bps %d outside (0, %d]", bps, BPSDenominator)
	}
	return nil
}

// SlashValidatorCollateral removes bps of a pool's staked amount into the
// collateral's slashed bucket. Shares are untouched, so every shareholder's
// claim shrinks proportionally.
func (l *Ledger) SlashValidatorCollateral(
	ctx context.Context, caller, validator, collateral common.Address, bps uint64,
) error {
	return l.run(ctx, func(ctx context.Context, tx *txn) error {
		_, c, p, err := l.slashTarget(caller, validator, collateral, bps)
		if err != nil {
			return err
		}
		slashed, err := ApplyBPS(p.StakedAmount, bps)
		if err != nil {
			return err
		}
		if err := tx.sub(&p.StakedAmount, slashed); err != nil {
			return err
		}
		if err := tx.sub(&c.TotalLocked, slashed); err != nil {
			return err
		}
		if err := tx.add(&c.SlashedAmount, slashed); err != nil {
			return err
		}
		tx.emit(Event{
			Type: EventCollateralSlashed, Validator: validator, Collateral: collateral,
			Amount: dec(slashed), Value: bps,
		})
		return nil
	})
}

// SlashValidatorRewards removes bps of the validator's claimable rewards in a
// collateral into the collateral's slashed bucket.
func (l *Ledger) SlashValidatorRewards(
	ctx context.Context, caller, validator, collateral common.Address, bps uint64,
) error {
	return l.run(ctx, func(ctx context.Context, tx *txn) error {
		_, c, p, err := l.slashTarget(caller, validator, collateral, bps)
		if err != nil {
			return err
		}
		slashed, err := ApplyBPS(p.RewardsForWithdrawal, bps)
		if err != nil {
			return err
		}
		if err := tx.sub(&p.RewardsForWithdrawal, slashed); err != nil {
			return err
		}
		if err := tx.add(&c.SlashedAmount, slashed); err != nil {
			return err
		}
		tx.emit(Event{
			Type: EventRewardsSlashed, Validator: validator, Collateral: collateral,
			Amount: dec(slashed), Value: bps,
		})
		return nil
	})
}

// Liquidate slashes bps of each listed pool. The bps is split between the
// validator admin and the other delegators by profit sharing. The admin takes
// the first loss: when its position is judged insufficient it is slashed
// entirely and the shortfall is added to the delegators' bps. Slashed tokens
// go straight to the slashing treasury.
func (l *Ledger) Liquidate(
	ctx context.Context, caller, validator common.Address, collaterals []common.Address, bps uint64,
) error {
	return l.run(ctx, func(ctx context.Context, tx *txn) error {
		if err := l.requireRole(SlasherRole, caller); err != nil {
			return err
		}
		return l.liquidate(ctx, tx, validator, collaterals, bps)
	})
}

func (l *Ledger) liquidate(
	ctx context.Context, tx *txn, validator common.Address, collaterals []common.Address, bps uint64,
) error {
	if err := checkBPS(bps); err != nil {
		return err
	}
	treasury, err := l.treasury()
	if err != nil {
		return err
	}
	v, err := l.getValidator(validator)
	if err != nil {
		return err
	}
	validatorBPS := bps * (BPSDenominator - v.ProfitSharingBPS) / BPSDenominator
	for _, collateral := range collaterals {
		c, err := l.getCollateral(collateral)
		if err != nil {
			return err
		}
		p, ok := v.pools[collateral]
		if !ok {
			continue
		}
		total, err := l.liquidatePool(tx, v, p, bps, validatorBPS)
		if err != nil {
			return err
		}
		if err := tx.sub(&c.TotalLocked, total); err != nil {
			return err
		}
		if err := l.transferOut(ctx, collateral, treasury, total); err != nil {
			return err
		}
		tx.emit(Event{
			Type: EventLiquidated, Validator: validator, Collateral: collateral, Account: treasury,
			Amount: dec(total), Value: bps,
		})
	}
	return nil
}

func (l *Ledger) liquidatePool(tx *txn, v *Validator, p *Pool, bps, validatorBPS uint64) (*uint256.Int, error) {
	delegatorBPS := bps - validatorBPS
	poolShares := p.Shares.Clone()
	adminShares := zero()
	admin, hasAdmin := p.delegators[v.Admin]
	if hasAdmin {
		adminShares = admin.unlocked()
	}

	// The share ratio is floored to 0 or 1 before being compared with a bps
	// value, so the admin's unlocked shares are taken in full whenever
	// validatorBPS is above 1.
	ratio := zero()
	if !poolShares.IsZero() {
		ratio = new(uint256.Int).Div(adminShares, poolShares)
	}
	var adminSlash *uint256.Int
	if !poolShares.IsZero() && ratio.Lt(uint256.NewInt(validatorBPS)) {
		adminSlash = adminShares
		adminBPS, err := MulDiv(adminShares, bpsDenominator, poolShares)
		if err != nil {
			return nil, err
		}
		if adminBPS.Lt(uint256.NewInt(validatorBPS)) {
			delegatorBPS += validatorBPS - adminBPS.Uint64()
		}
	} else {
		limit, err := ApplyBPS(poolShares, validatorBPS)
		if err != nil {
			return nil, err
		}
		adminSlash = minInt(adminShares, limit)
	}
	if delegatorBPS > BPSDenominator {
		delegatorBPS = BPSDenominator
	}

	total := zero()
	if hasAdmin && !adminSlash.IsZero() {
		amount, err := l.burnShares(tx, p, admin, adminSlash)
		if err != nil {
			return nil, err
		}
		total = new(uint256.Int).Add(total, amount)
	}
	if delegatorBPS == 0 {
		return total, nil
	}
	for _, account := range p.order.Items() {
		if account == v.Admin {
			continue
		}
		amount, err := l.slashDelegator(tx, p, p.delegators[account], delegatorBPS)
		if err != nil {
			return nil, err
		}
		total = new(uint256.Int).Add(total, amount)
	}
	return total, nil
}

// LiquidateDelegator slashes bps of one delegator's unlocked shares and sends
// the proceeds to the slashing treasury.
func (l *Ledger) LiquidateDelegator(
	ctx context.Context, caller, validator, collateral, delegator common.Address, bps uint64,
) error {
	return l.run(ctx, func(ctx context.Context, tx *txn) error {
		_, c, p, err := l.slashTarget(caller, validator, collateral, bps)
		if err != nil {
			return err
		}
		treasury, err := l.treasury()
		if err != nil {
			return err
		}
		d, ok := p.delegators[delegator]
		if !ok {
			return newError(CodeNotFound, "delegator %s has no position", delegator.Hex()).
				withValidator(validator).withCollateral(collateral)
		}
		amount, err := l.slashDelegator(tx, p, d, bps)
		if err != nil {
			return err
		}
		if err := tx.sub(&c.TotalLocked, amount); err != nil {
			return err
		}
		if err := l.transferOut(ctx, collateral, treasury, amount); err != nil {
			return err
		}
		tx.emit(Event{
			Type: EventDelegatorLiquidated, Validator: validator, Collateral: collateral, Account: delegator,
			Amount: dec(amount), Value: bps,
		})
		return nil
	})
}

func (l *Ledger) slashDelegator(tx *txn, p *Pool, d *Delegator, bps uint64) (*uint256.Int, error) {
	shares, err := ApplyBPS(d.unlocked(), bps)
	if err != nil {
		return nil, err
	}
	return l.burnShares(tx, p, d, shares)
}

// SlashUnstakeRequests reduces every unexecuted request of a validator whose
// timelock is later than problemTimestamp plus the withdraw timelock by
// slashPercent, an 18-decimal fraction. Slashed sums are credited to each
// collateral's slashed bucket once.
func (l *Ledger) SlashUnstakeRequests(
	ctx context.Context, caller, validator common.Address, problemTimestamp uint64, slashPercent *uint256.Int,
) error {
	return l.run(ctx, func(ctx context.Context, tx *txn) error {
		if err := l.requireRole(SlasherRole, caller); err != nil {
			return err
		}
		return l.slashUnstakeRequests(tx, validator, problemTimestamp, slashPercent)
	})
}

func (l *Ledger) slashUnstakeRequests(
	tx *txn, validator common.Address, problemTimestamp uint64, slashPercent *uint256.Int,
) error {
	if slashPercent.IsZero() || slashPercent.Gt(precision) {
		return newError(CodeInvalidArgument, "slash percent %s outside (0, 1e18]", slashPercent.Dec())
	}
	v, err := l.getValidator(validator)
	if err != nil {
		return err
	}
	threshold := problemTimestamp + l.params.WithdrawTimelock
	if threshold < problemTimestamp {
		return newError(CodeArithmetic, "timestamp overflow")
	}

	var ids []uint64
	for id, w := range v.withdrawals {
		if !w.Executed && w.Timelock > threshold {
			ids = append(ids, uint64(id))
		}
	}

	var order []common.Address
	sums := make(map[common.Address]*uint256.Int)
	for _, id := range ids {
		w := v.withdrawals[id]
		slashed, err := ApplyFraction(w.Amount, slashPercent)
		if err != nil {
			return err
		}
		if err := tx.sub(&w.Amount, slashed); err != nil {
			return err
		}
		if err := tx.add(&w.SlashingAmount, slashed); err != nil {
			return err
		}
		sum, ok := sums[w.Collateral]
		if !ok {
			order = append(order, w.Collateral)
			sum = zero()
		}
		sums[w.Collateral] = new(uint256.Int).Add(sum, slashed)
	}
	for _, collateral := range order {
		c, err := l.getCollateral(collateral)
		if err != nil {
			return err
		}
		if err := tx.add(&c.SlashedAmount, sums[collateral]); err != nil {
			return err
		}
		tx.emit(Event{
			Type: EventUnstakeRequestsSlashed, Validator: validator, Collateral: collateral,
			Amount: dec(sums[collateral]), Value: problemTimestamp,
		})
	}
	return nil
}

// SlashIncident applies a validator incident as a single operation. Pending
// withdrawals are slashed by slashPercent when it is set, then the pools are
// liquidated by bps when it is non zero. An empty collaterals list means
// every active collateral. Either both steps apply or neither does.
func (l *Ledger) SlashIncident(
	ctx context.Context, caller, validator common.Address, problemTimestamp uint64,
	slashPercent *uint256.Int, collaterals []common.Address, bps uint64,
) error {
	return l.run(ctx, func(ctx context.Context, tx *txn) error {
		if err := l.requireRole(SlasherRole, caller); err != nil {
			return err
		}
		if slashPercent != nil && !slashPercent.IsZero() {
			if err := l.slashUnstakeRequests(tx, validator, problemTimestamp, slashPercent); err != nil {
				return err
			}
		}
		if bps == 0 {
			return nil
		}
		if len(collaterals) == 0 {
			collaterals = l.activeCollaterals.Items()
		}
		return l.liquidate(ctx, tx, validator, collaterals, bps)
	})
}

// WithdrawSlashingTreasury sends every collateral's slashed bucket to the
// slashing treasury and zeroes the buckets.
func (l *Ledger) WithdrawSlashingTreasury(ctx context.Context, caller common.Address) error {
	return l.run(ctx, func(ctx context.Context, tx *txn) error {
		if err := l.requireRole(AdminRole, caller); err != nil {
			return err
		}
		treasury, err := l.treasury()
		if err != nil {
			return err
		}
		for _, id := range l.collateralIDs {
			c := l.collaterals[id]
			if c.SlashedAmount.IsZero() {
				continue
			}
			amount := c.SlashedAmount
			tx.set(&c.SlashedAmount, zero())
			if err := l.transferOut(ctx, id, treasury, amount); err != nil {
				return err
			}
			tx.emit(Event{Type: EventTreasuryWithdrawn, Collateral: id, Account: treasury, Amount: dec(amount)})
		}
		return nil
	})
}

func (l *Ledger) slashTarget(
	caller, validator, collateral common.Address, bps uint64,
) (*Validator, *Collateral, *Pool, error) {
	if err := l.requireRole(SlasherRole, caller); err != nil {
		return nil, nil, nil, err
	}
	if err := checkBPS(bps); err != nil {
		return nil, nil, nil, err
	}
	v, err := l.getValidator(validator)
	if err != nil {
		return nil, nil, nil, err
	}
	c, err := l.getCollateral(collateral)
	if err != nil {
		return nil, nil, nil, err
	}
	p, ok := v.pools[collateral]
	if !ok {
		return nil, nil, nil, newError(CodeNotFound, "validator has no pool for collateral").
			withValidator(validator).withCollateral(collateral)
	}
	return v, c, p, nil
}

func (l *Ledger) treasury() (common.Address, error) {
	if l.params.SlashingTreasury == (common.Address{}) {
		return common.Address{}, newError(CodeInvalidArgument, "slashing treasury not set")
	}
	return l.params.SlashingTreasury, nil
}
