package ledger

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// State is a serializable copy of the whole ledger. Amounts are decimal
// strings and every collection is ordered so that equal ledgers produce equal
// states.
type State struct {
	Params            ParamsState       `json:"params"`
	Collaterals       []CollateralState `json:"collaterals"`
	ActiveCollaterals []common.Address  `json:"active_collaterals"`
	Validators        []ValidatorState  `json:"validators"`
	ActiveValidators  []common.Address  `json:"active_validators"`
	Rewards           []RewardState     `json:"rewards"`
}

type ParamsState struct {
	MinProfitSharingBPS uint64         `json:"min_profit_sharing_bps"`
	WithdrawTimelock    uint64         `json:"withdraw_timelock"`
	SlashingTreasury    common.Address `json:"slashing_treasury"`
	Paused              bool           `json:"paused"`
	WeightDenominator   uint64         `json:"weight_denominator"`
}

type CollateralState struct {
	ID             common.Address `json:"id"`
	SlashedAmount  string         `json:"slashed_amount"`
	TotalLocked    string         `json:"total_locked"`
	Rewards        string         `json:"rewards"`
	MaxStakeAmount string         `json:"max_stake_amount"`
	Decimals       uint8          `json:"decimals"`
	IsEnabled      bool           `json:"is_enabled"`
	IsUSDStable    bool           `json:"is_usd_stable"`
}

type ValidatorState struct {
	ID                      common.Address    `json:"id"`
	Admin                   common.Address    `json:"admin"`
	RewardWeightCoefficient uint64            `json:"reward_weight_coefficient"`
	ProfitSharingBPS        uint64            `json:"profit_sharing_bps"`
	DelegatorActionPaused   bool              `json:"delegator_action_paused"`
	IsEnabled               bool              `json:"is_enabled"`
	Pools                   []PoolState       `json:"pools"`
	Withdrawals             []WithdrawalState `json:"withdrawals"`
}

type PoolState struct {
	Collateral           common.Address   `json:"collateral"`
	StakedAmount         string           `json:"staked_amount"`
	Shares               string           `json:"shares"`
	Locked               string           `json:"locked"`
	AccumulatedRewards   string           `json:"accumulated_rewards"`
	RewardsForWithdrawal string           `json:"rewards_for_withdrawal"`
	Delegators           []DelegatorState `json:"delegators"`
}

type DelegatorState struct {
	Account            common.Address `json:"account"`
	Shares             string         `json:"shares"`
	Locked             string         `json:"locked"`
	AccumulatedRewards string         `json:"accumulated_rewards"`
}

type WithdrawalState struct {
	Delegator      common.Address `json:"delegator"`
	Amount         string         `json:"amount"`
	SlashingAmount string         `json:"slashing_amount"`
	Timelock       uint64         `json:"timelock"`
	Receiver       common.Address `json:"receiver"`
	Collateral     common.Address `json:"collateral"`
	Executed       bool           `json:"executed"`
	Paused         bool           `json:"paused"`
}

type RewardState struct {
	Token       common.Address `json:"token"`
	TotalAmount string         `json:"total_amount"`
	Distributed string         `json:"distributed"`
}

// Snapshot exports the current ledger state.
func (l *Ledger) Snapshot() *State {
	l.mu.RLock()
	defer l.mu.RUnlock()

	s := &State{
		Params: ParamsState{
			MinProfitSharingBPS: l.params.MinProfitSharingBPS,
			WithdrawTimelock:    l.params.WithdrawTimelock,
			SlashingTreasury:    l.params.SlashingTreasury,
			Paused:              l.params.Paused,
			WeightDenominator:   l.params.WeightDenominator,
		},
		ActiveCollaterals: l.activeCollaterals.Items(),
		ActiveValidators:  l.activeValidators.Items(),
	}
	for _, id := range l.collateralIDs {
		c := l.collaterals[id]
		s.Collaterals = append(s.Collaterals, CollateralState{
			ID:             id,
			SlashedAmount:  dec(c.SlashedAmount),
			TotalLocked:    dec(c.TotalLocked),
			Rewards:        dec(c.Rewards),
			MaxStakeAmount: dec(c.MaxStakeAmount),
			Decimals:       c.Decimals,
			IsEnabled:      c.IsEnabled,
			IsUSDStable:    c.IsUSDStable,
		})
	}
	for _, id := range l.validatorIDs {
		v := l.validators[id]
		vs := ValidatorState{
			ID:                      id,
			Admin:                   v.Admin,
			RewardWeightCoefficient: v.RewardWeightCoefficient,
			ProfitSharingBPS:        v.ProfitSharingBPS,
			DelegatorActionPaused:   v.DelegatorActionPaused,
			IsEnabled:               v.IsEnabled,
		}
		for _, cid := range l.collateralIDs {
			p, ok := v.pools[cid]
			if !ok {
				continue
			}
			ps := PoolState{
				Collateral:           cid,
				StakedAmount:         dec(p.StakedAmount),
				Shares:               dec(p.Shares),
				Locked:               dec(p.Locked),
				AccumulatedRewards:   dec(p.AccumulatedRewards),
				RewardsForWithdrawal: dec(p.RewardsForWithdrawal),
			}
			for _, account := range p.order.Items() {
				d := p.delegators[account]
				ps.Delegators = append(ps.Delegators, DelegatorState{
					Account:            account,
					Shares:             dec(d.Shares),
					Locked:             dec(d.Locked),
					AccumulatedRewards: dec(d.AccumulatedRewards),
				})
			}
			vs.Pools = append(vs.Pools, ps)
		}
		for _, w := range v.withdrawals {
			vs.Withdrawals = append(vs.Withdrawals, WithdrawalState{
				Delegator:      w.Delegator,
				Amount:         dec(w.Amount),
				SlashingAmount: dec(w.SlashingAmount),
				Timelock:       w.Timelock,
				Receiver:       w.Receiver,
				Collateral:     w.Collateral,
				Executed:       w.Executed,
				Paused:         w.Paused,
			})
		}
		s.Validators = append(s.Validators, vs)
	}
	for _, token := range l.rewardIDs {
		info := l.rewards[token]
		s.Rewards = append(s.Rewards, RewardState{
			Token:       token,
			TotalAmount: dec(info.TotalAmount),
			Distributed: dec(info.Distributed),
		})
	}
	return s
}

// Restore replaces the ledger state with s. The state is validated first and
// the ledger is left untouched when it is inconsistent.
func (l *Ledger) Restore(s *State) error {
	r := &restorer{
		collaterals:       make(map[common.Address]*Collateral),
		activeCollaterals: newOrderedSet(),
		validators:        make(map[common.Address]*Validator),
		activeValidators:  newOrderedSet(),
		rewards:           make(map[common.Address]*RewardInfo),
	}
	if err := r.load(s); err != nil {
		return errors.Wrap(err, "invalid ledger state")
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.params = Params{
		MinProfitSharingBPS: s.Params.MinProfitSharingBPS,
		WithdrawTimelock:    s.Params.WithdrawTimelock,
		SlashingTreasury:    s.Params.SlashingTreasury,
		Paused:              s.Params.Paused,
		WeightDenominator:   s.Params.WeightDenominator,
	}
	l.collaterals, l.collateralIDs, l.activeCollaterals = r.collaterals, r.collateralIDs, r.activeCollaterals
	l.validators, l.validatorIDs, l.activeValidators = r.validators, r.validatorIDs, r.activeValidators
	l.rewards, l.rewardIDs = r.rewards, r.rewardIDs
	return nil
}

type restorer struct {
	collaterals       map[common.Address]*Collateral
	collateralIDs     []common.Address
	activeCollaterals *orderedSet
	validators        map[common.Address]*Validator
	validatorIDs      []common.Address
	activeValidators  *orderedSet
	rewards           map[common.Address]*RewardInfo
	rewardIDs         []common.Address
	err               error
}

// amount parses a decimal string, remembering the first failure.
func (r *restorer) amount(field, s string) *uint256.Int {
	if r.err != nil {
		return zero()
	}
	if s == "" {
		return zero()
	}
	x, err := uint256.FromDecimal(s)
	if err != nil {
		r.err = errors.Wrapf(err, "%s %q", field, s)
		return zero()
	}
	return x
}

func (r *restorer) load(s *State) error {
	for _, cs := range s.Collaterals {
		if _, ok := r.collaterals[cs.ID]; ok {
			return errors.Errorf("duplicate collateral %s", cs.ID.Hex())
		}
		r.collaterals[cs.ID] = &Collateral{
			SlashedAmount:  r.amount("slashed_amount", cs.SlashedAmount),
			TotalLocked:    r.amount("total_locked", cs.TotalLocked),
			Rewards:        r.amount("rewards", cs.Rewards),
			MaxStakeAmount: r.amount("max_stake_amount", cs.MaxStakeAmount),
			Decimals:       cs.Decimals,
			IsEnabled:      cs.IsEnabled,
			IsUSDStable:    cs.IsUSDStable,
		}
		r.collateralIDs = append(r.collateralIDs, cs.ID)
	}
	for _, id := range s.ActiveCollaterals {
		c, ok := r.collaterals[id]
		if !ok || !c.IsEnabled {
			return errors.Errorf("active collateral %s is not an enabled collateral", id.Hex())
		}
		r.activeCollaterals.Add(id)
	}

	var weights uint64
	for _, vs := range s.Validators {
		if _, ok := r.validators[vs.ID]; ok {
			return errors.Errorf("duplicate validator %s", vs.ID.Hex())
		}
		v := &Validator{
			Admin:                   vs.Admin,
			RewardWeightCoefficient: vs.RewardWeightCoefficient,
			ProfitSharingBPS:        vs.ProfitSharingBPS,
			DelegatorActionPaused:   vs.DelegatorActionPaused,
			IsEnabled:               vs.IsEnabled,
			pools:                   make(map[common.Address]*Pool),
		}
		for _, ps := range vs.Pools {
			if _, ok := r.collaterals[ps.Collateral]; !ok {
				return errors.Errorf("validator %s pool of unknown collateral %s", vs.ID.Hex(), ps.Collateral.Hex())
			}
			p, err := r.pool(ps)
			if err != nil {
				return errors.Wrapf(err, "validator %s pool %s", vs.ID.Hex(), ps.Collateral.Hex())
			}
			v.pools[ps.Collateral] = p
		}
		for _, ws := range vs.Withdrawals {
			v.withdrawals = append(v.withdrawals, &WithdrawalInfo{
				Delegator:      ws.Delegator,
				Amount:         r.amount("amount", ws.Amount),
				SlashingAmount: r.amount("slashing_amount", ws.SlashingAmount),
				Timelock:       ws.Timelock,
				Receiver:       ws.Receiver,
				Collateral:     ws.Collateral,
				Executed:       ws.Executed,
				Paused:         ws.Paused,
			})
		}
		r.validators[vs.ID] = v
		r.validatorIDs = append(r.validatorIDs, vs.ID)
	}
	for _, id := range s.ActiveValidators {
		v, ok := r.validators[id]
		if !ok || !v.IsEnabled {
			return errors.Errorf("active validator %s is not an enabled validator", id.Hex())
		}
		r.activeValidators.Add(id)
		weights += v.RewardWeightCoefficient
	}
	if weights != s.Params.WeightDenominator {
		return errors.Errorf("weight denominator %d does not match active weights %d", s.Params.WeightDenominator, weights)
	}

	for _, rs := range s.Rewards {
		info := &RewardInfo{
			TotalAmount: r.amount("total_amount", rs.TotalAmount),
			Distributed: r.amount("distributed", rs.Distributed),
		}
		if info.Distributed.Gt(info.TotalAmount) {
			return errors.Errorf("reward %s distributed above total", rs.Token.Hex())
		}
		r.rewards[rs.Token] = info
		r.rewardIDs = append(r.rewardIDs, rs.Token)
	}
	return r.err
}

func (r *restorer) pool(ps PoolState) (*Pool, error) {
	p := newPool()
	p.StakedAmount = r.amount("staked_amount", ps.StakedAmount)
	p.Shares = r.amount("shares", ps.Shares)
	p.Locked = r.amount("locked", ps.Locked)
	p.AccumulatedRewards = r.amount("accumulated_rewards", ps.AccumulatedRewards)
	p.RewardsForWithdrawal = r.amount("rewards_for_withdrawal", ps.RewardsForWithdrawal)
	sum := zero()
	for _, ds := range ps.Delegators {
		d := &Delegator{
			Shares:             r.amount("shares", ds.Shares),
			Locked:             r.amount("locked", ds.Locked),
			AccumulatedRewards: r.amount("accumulated_rewards", ds.AccumulatedRewards),
		}
		if !p.order.Add(ds.Account) {
			return nil, errors.Errorf("duplicate delegator %s", ds.Account.Hex())
		}
		p.delegators[ds.Account] = d
		sum = new(uint256.Int).Add(sum, d.Shares)
	}
	if r.err != nil {
		return nil, r.err
	}
	if !sum.Eq(p.Shares) {
		return nil, errors.Errorf("delegator shares %s do not add up to pool shares %s", sum.Dec(), p.Shares.Dec())
	}
	if p.Locked.Gt(p.Shares) {
		return nil, errors.Errorf("locked %s above shares %s", p.Locked.Dec(), p.Shares.Dec())
	}
	return p, nil
}
