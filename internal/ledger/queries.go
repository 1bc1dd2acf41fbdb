package ledger

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// CollateralView is a read only copy of a collateral.
type CollateralView struct {
	ID common.Address
	Collateral
}

// ValidatorView is a read only copy of a validator's configuration.
type ValidatorView struct {
	ID                      common.Address
	Admin                   common.Address
	RewardWeightCoefficient uint64
	ProfitSharingBPS        uint64
	DelegatorActionPaused   bool
	IsEnabled               bool
	WithdrawalCount         uint64
	Collaterals             []common.Address
}

// PoolView is a read only copy of a pool with derived figures.
type PoolView struct {
	Validator            common.Address
	Collateral           common.Address
	StakedAmount         *uint256.Int
	Shares               *uint256.Int
	Locked               *uint256.Int
	AccumulatedRewards   *uint256.Int
	RewardsForWithdrawal *uint256.Int
	SharePrice           *uint256.Int
	PendingWithdrawals   *uint256.Int
	DelegatorCount       int
}

// DelegatorView is a read only copy of a delegator position.
type DelegatorView struct {
	Account            common.Address
	Shares             *uint256.Int
	Locked             *uint256.Int
	AccumulatedRewards *uint256.Int
	Balance            *uint256.Int
}

func (l *Ledger) Params() Params {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.params
}

func (l *Ledger) Collateral(id common.Address) (*CollateralView, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	c, err := l.getCollateral(id)
	if err != nil {
		return nil, err
	}
	return collateralView(id, c), nil
}

// Collaterals lists every registered collateral in registration order.
func (l *Ledger) Collaterals() []*CollateralView {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]*CollateralView, 0, len(l.collateralIDs))
	for _, id := range l.collateralIDs {
		out = append(out, collateralView(id, l.collaterals[id]))
	}
	return out
}

// ActiveCollaterals lists enabled collaterals in active list order.
func (l *Ledger) ActiveCollaterals() []common.Address {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.activeCollaterals.Items()
}

func (l *Ledger) Validator(id common.Address) (*ValidatorView, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	v, err := l.getValidator(id)
	if err != nil {
		return nil, err
	}
	return l.validatorView(id, v), nil
}

// Validators lists every registered validator in registration order.
func (l *Ledger) Validators() []*ValidatorView {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]*ValidatorView, 0, len(l.validatorIDs))
	for _, id := range l.validatorIDs {
		out = append(out, l.validatorView(id, l.validators[id]))
	}
	return out
}

// ActiveValidators lists enabled validators in active list order.
func (l *Ledger) ActiveValidators() []common.Address {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.activeValidators.Items()
}

// Pool returns a validator's pool for a collateral. A pool nobody staked in
// yet is reported empty.
func (l *Ledger) Pool(validator, collateral common.Address) (*PoolView, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	v, err := l.getValidator(validator)
	if err != nil {
		return nil, err
	}
	if _, err := l.getCollateral(collateral); err != nil {
		return nil, err
	}
	p, ok := v.pools[collateral]
	if !ok {
		p = newPool()
	}
	price, err := SharePrice(p.StakedAmount, p.Shares)
	if err != nil {
		return nil, err
	}
	return &PoolView{
		Validator:            validator,
		Collateral:           collateral,
		StakedAmount:         p.StakedAmount.Clone(),
		Shares:               p.Shares.Clone(),
		Locked:               p.Locked.Clone(),
		AccumulatedRewards:   p.AccumulatedRewards.Clone(),
		RewardsForWithdrawal: p.RewardsForWithdrawal.Clone(),
		SharePrice:           price,
		PendingWithdrawals:   pendingAmount(v, collateral),
		DelegatorCount:       p.order.Len(),
	}, nil
}

// Delegator returns an account's position in a pool with its current token
// balance. Accounts without a position are reported empty.
func (l *Ledger) Delegator(validator, collateral, account common.Address) (*DelegatorView, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	v, err := l.getValidator(validator)
	if err != nil {
		return nil, err
	}
	view := &DelegatorView{Account: account, Shares: zero(), Locked: zero(), AccumulatedRewards: zero(), Balance: zero()}
	p, ok := v.pools[collateral]
	if !ok {
		return view, nil
	}
	d, ok := p.delegators[account]
	if !ok {
		return view, nil
	}
	view.Shares = d.Shares.Clone()
	view.Locked = d.Locked.Clone()
	view.AccumulatedRewards = d.AccumulatedRewards.Clone()
	if !p.Shares.IsZero() {
		if view.Balance, err = AmountFor(d.Shares, p.StakedAmount, p.Shares); err != nil {
			return nil, err
		}
	}
	return view, nil
}

// PoolDelegators lists the accounts of a pool in liquidation order.
func (l *Ledger) PoolDelegators(validator, collateral common.Address) ([]common.Address, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	v, err := l.getValidator(validator)
	if err != nil {
		return nil, err
	}
	p, ok := v.pools[collateral]
	if !ok {
		return nil, nil
	}
	return p.order.Items(), nil
}

func (l *Ledger) WithdrawalRequest(validator common.Address, id uint64) (*WithdrawalInfo, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	v, err := l.getValidator(validator)
	if err != nil {
		return nil, err
	}
	if id >= uint64(len(v.withdrawals)) {
		return nil, newError(CodeNotFound, "withdrawal request does not exist").withValidator(validator).withRequest(id)
	}
	w := *v.withdrawals[id]
	w.Amount = w.Amount.Clone()
	w.SlashingAmount = w.SlashingAmount.Clone()
	return &w, nil
}

func (l *Ledger) WithdrawalCount(validator common.Address) (uint64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	v, err := l.getValidator(validator)
	if err != nil {
		return 0, err
	}
	return uint64(len(v.withdrawals)), nil
}

// RewardInfo returns the received and distributed totals of a reward token.
func (l *Ledger) RewardInfo(token common.Address) RewardInfo {
	l.mu.RLock()
	defer l.mu.RUnlock()
	info, ok := l.rewards[token]
	if !ok {
		return RewardInfo{TotalAmount: zero(), Distributed: zero()}
	}
	return RewardInfo{TotalAmount: info.TotalAmount.Clone(), Distributed: info.Distributed.Clone()}
}

func collateralView(id common.Address, c *Collateral) *CollateralView {
	view := &CollateralView{ID: id, Collateral: *c}
	view.SlashedAmount = c.SlashedAmount.Clone()
	view.TotalLocked = c.TotalLocked.Clone()
	view.Rewards = c.Rewards.Clone()
	view.MaxStakeAmount = c.MaxStakeAmount.Clone()
	return view
}

func (l *Ledger) validatorView(id common.Address, v *Validator) *ValidatorView {
	view := &ValidatorView{
		ID:                      id,
		Admin:                   v.Admin,
		RewardWeightCoefficient: v.RewardWeightCoefficient,
		ProfitSharingBPS:        v.ProfitSharingBPS,
		DelegatorActionPaused:   v.DelegatorActionPaused,
		IsEnabled:               v.IsEnabled,
		WithdrawalCount:         uint64(len(v.withdrawals)),
	}
	for _, cid := range l.collateralIDs {
		if _, ok := v.pools[cid]; ok {
			view.Collaterals = append(view.Collaterals, cid)
		}
	}
	return view
}
