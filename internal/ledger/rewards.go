package ledger

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// SendRewards pulls reward tokens from the caller into custody. They are
// credited to pools by the next DistributeValidatorRewards.
func (l *Ledger) SendRewards(ctx context.Context, caller, token common.Address, amount *uint256.Int) error {
	return l.run(ctx, func(ctx context.Context, tx *txn) error {
		if amount.IsZero() {
			return newError(CodeZeroAmount, "reward amount is zero")
		}
		if _, err := l.getCollateral(token); err != nil {
			return err
		}
		info := l.rewardInfo(tx, token)
		if err := tx.add(&info.TotalAmount, amount); err != nil {
			return err
		}
		if err := l.transferIn(ctx, token, caller, amount); err != nil {
			return err
		}
		tx.emit(Event{Type: EventRewardsReceived, Collateral: token, Account: caller, Amount: dec(amount)})
		return nil
	})
}

// allocation is one validator pool's share of the delegator rewards, still
// denominated in the reward token.
type allocation struct {
	validator  common.Address
	collateral common.Address
	amount     *uint256.Int
}

// DistributeValidatorRewards splits the undistributed reward delta across
// active validators by reward weight. The delegator part of each validator's
// amount is split across its pools by USD value and credited as principal,
// swapping once per target collateral. The admin part accrues in the
// validator's rewardsForWithdrawal of the reward token pool.
func (l *Ledger) DistributeValidatorRewards(ctx context.Context, caller, rewardToken common.Address) error {
	return l.run(ctx, func(ctx context.Context, tx *txn) error {
		if err := l.requireRole(AdminRole, caller); err != nil {
			return err
		}
		rewardCollateral, err := l.getCollateral(rewardToken)
		if err != nil {
			return err
		}
		info, ok := l.rewards[rewardToken]
		if !ok {
			return newError(CodeZeroAmount, "no rewards received").withCollateral(rewardToken)
		}
		delta := new(uint256.Int).Sub(info.TotalAmount, info.Distributed)
		if delta.IsZero() {
			return newError(CodeZeroAmount, "no undistributed rewards").withCollateral(rewardToken)
		}
		if l.params.WeightDenominator == 0 {
			return newError(CodeInvalidArgument, "no active reward weight")
		}
		denominator := uint256.NewInt(l.params.WeightDenominator)
		prices := make(map[common.Address]*uint256.Int)

		// Phase 1: collect per pool allocations.
		var allocations []allocation
		distributed := zero()
		for _, id := range l.activeValidators.Items() {
			v := l.validators[id]
			validatorAmount, err := MulDiv(uint256.NewInt(v.RewardWeightCoefficient), delta, denominator)
			if err != nil {
				return err
			}
			if validatorAmount.IsZero() {
				continue
			}
			distributed = new(uint256.Int).Add(distributed, validatorAmount)
			delegatorsAmount, err := ApplyBPS(validatorAmount, v.ProfitSharingBPS)
			if err != nil {
				return err
			}
			split, err := l.splitByValue(ctx, id, v, delegatorsAmount, prices)
			if err != nil {
				return err
			}
			allocated := zero()
			for _, a := range split {
				allocated = new(uint256.Int).Add(allocated, a.amount)
			}
			allocations = append(allocations, split...)

			// Admin remainder plus any split dust stays with the validator admin.
			remainder := new(uint256.Int).Sub(validatorAmount, allocated)
			if !remainder.IsZero() {
				p := l.pool(tx, v, rewardToken)
				if err := tx.add(&p.RewardsForWithdrawal, remainder); err != nil {
					return err
				}
				if err := tx.add(&rewardCollateral.Rewards, remainder); err != nil {
					return err
				}
			}
		}

		// Phase 2: one swap per target collateral, then pro-rata redistribution.
		for _, group := range groupByCollateral(allocations) {
			credited, err := l.convert(ctx, rewardToken, group)
			if err != nil {
				return err
			}
			for i, a := range group {
				if err := l.creditReward(tx, a, credited[i]); err != nil {
					return err
				}
			}
		}

		if err := tx.add(&info.Distributed, distributed); err != nil {
			return err
		}
		tx.emit(Event{
			Type: EventRewardsDistributed, Collateral: rewardToken, Account: caller,
			Amount: dec(distributed), Value: uint64(len(allocations)),
		})
		return nil
	})
}

// splitByValue splits amount across the validator's pools of active
// collaterals in proportion to their USD value. Floor dust is left unallocated.
func (l *Ledger) splitByValue(
	ctx context.Context, id common.Address, v *Validator, amount *uint256.Int, prices map[common.Address]*uint256.Int,
) ([]allocation, error) {
	if amount.IsZero() {
		return nil, nil
	}
	collaterals := l.activeCollaterals.Items()
	values := make([]*uint256.Int, len(collaterals))
	total := zero()
	for i, cid := range collaterals {
		p, ok := v.pools[cid]
		if !ok || p.StakedAmount.IsZero() {
			values[i] = zero()
			continue
		}
		value, err := l.usdValue(ctx, cid, p.StakedAmount, prices)
		if err != nil {
			return nil, err
		}
		values[i] = value
		sum, overflow := new(uint256.Int).AddOverflow(total, value)
		if overflow {
			return nil, newError(CodeArithmetic, "usd value overflow").withValidator(id)
		}
		total = sum
	}
	if total.IsZero() {
		return nil, nil
	}
	var out []allocation
	for i, cid := range collaterals {
		if values[i].IsZero() {
			continue
		}
		share, err := MulDiv(amount, values[i], total)
		if err != nil {
			return nil, err
		}
		if share.IsZero() {
			continue
		}
		out = append(out, allocation{validator: id, collateral: cid, amount: share})
	}
	return out, nil
}

// usdValue prices amount of a collateral in 18-decimal USD. USD stable assets
// are priced at exactly 1.
func (l *Ledger) usdValue(
	ctx context.Context, id common.Address, amount *uint256.Int, prices map[common.Address]*uint256.Int,
) (*uint256.Int, error) {
	c := l.collaterals[id]
	normalized, err := normalize(amount, c.Decimals)
	if err != nil {
		return nil, err
	}
	if c.IsUSDStable {
		return normalized, nil
	}
	price, ok := prices[id]
	if !ok {
		raw, err := l.oracle.PriceOf(ctx, id)
		if err != nil {
			return nil, wrapCollaborator(err, "price of %s", id.Hex())
		}
		scaled, overflow := new(uint256.Int).MulOverflow(raw, priceScale)
		if overflow {
			return nil, newError(CodeArithmetic, "price overflow").withCollateral(id)
		}
		price = scaled
		prices[id] = price
	}
	return MulDiv(normalized, price, precision)
}

// convert turns a group of same target allocations into amounts of the target
// collateral. Same token allocations pass through, others are swapped in one
// call and the proceeds split pro-rata with the dust going to the last one.
func (l *Ledger) convert(ctx context.Context, rewardToken common.Address, group []allocation) ([]*uint256.Int, error) {
	out := make([]*uint256.Int, len(group))
	target := group[0].collateral
	if target == rewardToken {
		for i, a := range group {
			out[i] = a.amount
		}
		return out, nil
	}
	sumIn := zero()
	for _, a := range group {
		sumIn = new(uint256.Int).Add(sumIn, a.amount)
	}
	amountOut, err := l.swapper.Swap(ctx, rewardToken, target, l.custody, sumIn)
	if err != nil {
		return nil, wrapCollaborator(err, "swap %s %s to %s", sumIn.Dec(), rewardToken.Hex(), target.Hex())
	}
	paid := zero()
	for i, a := range group {
		if i == len(group)-1 {
			out[i] = new(uint256.Int).Sub(amountOut, paid)
			break
		}
		share, err := MulDiv(amountOut, a.amount, sumIn)
		if err != nil {
			return nil, err
		}
		out[i] = share
		paid = new(uint256.Int).Add(paid, share)
	}
	return out, nil
}

// creditReward adds a reward to a pool's principal without minting shares,
// raising the exchange rate for every delegator in the pool.
func (l *Ledger) creditReward(tx *txn, a allocation, amount *uint256.Int) error {
	if amount.IsZero() {
		return nil
	}
	v := l.validators[a.validator]
	c := l.collaterals[a.collateral]
	p := l.pool(tx, v, a.collateral)
	if err := tx.add(&p.StakedAmount, amount); err != nil {
		return err
	}
	if err := tx.add(&p.AccumulatedRewards, amount); err != nil {
		return err
	}
	if err := tx.add(&c.TotalLocked, amount); err != nil {
		return err
	}
	if err := tx.add(&c.Rewards, amount); err != nil {
		return err
	}
	tx.emit(Event{Type: EventValidatorRewarded, Validator: a.validator, Collateral: a.collateral, Amount: dec(amount)})
	return nil
}

// ExchangeValidatorRewards converts a validator's accrued admin rewards in a
// collateral into staked principal owned by the validator admin. Like
// distribution it only compounds into enabled collaterals. The stake cap is
// not applied: the rewards are already held in custody and a full pool would
// otherwise strand them.
func (l *Ledger) ExchangeValidatorRewards(ctx context.Context, caller, validator, collateral common.Address) error {
	return l.run(ctx, func(ctx context.Context, tx *txn) error {
		if err := l.requireNotPaused(); err != nil {
			return err
		}
		v, err := l.getValidator(validator)
		if err != nil {
			return err
		}
		if caller != v.Admin {
			return newError(CodeBadRole, "caller is not the validator admin").withValidator(validator)
		}
		c, err := l.getCollateral(collateral)
		if err != nil {
			return err
		}
		if !c.IsEnabled {
			return newError(CodeCollateralDisabled, "collateral is disabled").withCollateral(collateral)
		}
		p, ok := v.pools[collateral]
		if !ok || p.RewardsForWithdrawal.IsZero() {
			return newError(CodeZeroAmount, "no validator rewards to exchange").
				withValidator(validator).withCollateral(collateral)
		}
		amount := p.RewardsForWithdrawal
		tx.set(&p.RewardsForWithdrawal, zero())
		shares, err := l.creditShares(tx, p, v.Admin, amount)
		if err != nil {
			return err
		}
		if err := tx.add(&l.delegator(tx, p, v.Admin).AccumulatedRewards, amount); err != nil {
			return err
		}
		if err := tx.add(&c.TotalLocked, amount); err != nil {
			return err
		}
		tx.emit(Event{
			Type: EventValidatorRewardsClaimed, Validator: validator, Collateral: collateral, Account: caller,
			Amount: dec(amount), Shares: dec(shares),
		})
		return nil
	})
}

func (l *Ledger) rewardInfo(tx *txn, token common.Address) *RewardInfo {
	info, ok := l.rewards[token]
	if !ok {
		info = &RewardInfo{TotalAmount: zero(), Distributed: zero()}
		l.rewards[token] = info
		l.rewardIDs = append(l.rewardIDs, token)
		tx.onRevert(func() {
			delete(l.rewards, token)
			l.rewardIDs = l.rewardIDs[:len(l.rewardIDs)-1]
		})
	}
	return info
}

// groupByCollateral groups allocations by target collateral keeping the
// order in which targets and allocations first appear.
func groupByCollateral(allocations []allocation) [][]allocation {
	index := make(map[common.Address]int)
	var groups [][]allocation
	for _, a := range allocations {
		i, ok := index[a.collateral]
		if !ok {
			i = len(groups)
			index[a.collateral] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], a)
	}
	return groups
}
