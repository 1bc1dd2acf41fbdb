package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Config holds the parameters a new ledger starts with.
type Config struct {
	// Custody is the account holding every token the ledger controls.
	Custody             common.Address
	WithdrawTimelock    uint64
	MinProfitSharingBPS uint64
	SlashingTreasury    common.Address
}

type Option func(*Ledger)

// WithClock replaces the wall clock used for timelocks.
func WithClock(clock func() time.Time) Option {
	return func(l *Ledger) {
		l.clock = clock
	}
}

// WithEventSink registers the receiver of committed events.
func WithEventSink(sink EventSink) Option {
	return func(l *Ledger) {
		l.sink = sink
	}
}

// Ledger is the share based staking accounting engine. Mutating operations
// are serialized and atomic: on failure no state change survives, including
// the effects of collaborators implementing Checkpointer.
type Ledger struct {
	mu sync.RWMutex

	custody common.Address
	params  Params

	collaterals       map[common.Address]*Collateral
	collateralIDs     []common.Address
	activeCollaterals *orderedSet

	validators       map[common.Address]*Validator
	validatorIDs     []common.Address
	activeValidators *orderedSet

	rewards   map[common.Address]*RewardInfo
	rewardIDs []common.Address

	transfer AssetTransfer
	oracle   PriceOracle
	swapper  RewardSwap
	auth     Authorizer

	checkpointers []Checkpointer
	clock         func() time.Time
	sink          EventSink
}

func New(
	cfg Config, transfer AssetTransfer, oracle PriceOracle, swapper RewardSwap, auth Authorizer, opts ...Option,
) (*Ledger, error) {
	if transfer == nil || oracle == nil || swapper == nil || auth == nil {
		return nil, newError(CodeInvalidArgument, "missing collaborator")
	}
	if cfg.MinProfitSharingBPS > BPSDenominator {
		return nil, newError(CodeInvalidArgument, "min profit sharing %d exceeds %d", cfg.MinProfitSharingBPS, BPSDenominator)
	}
	l := &Ledger{
		custody: cfg.Custody,
		params: Params{
			MinProfitSharingBPS: cfg.MinProfitSharingBPS,
			WithdrawTimelock:    cfg.WithdrawTimelock,
			SlashingTreasury:    cfg.SlashingTreasury,
		},
		collaterals:       make(map[common.Address]*Collateral),
		activeCollaterals: newOrderedSet(),
		validators:        make(map[common.Address]*Validator),
		activeValidators:  newOrderedSet(),
		rewards:           make(map[common.Address]*RewardInfo),
		transfer:          transfer,
		oracle:            oracle,
		swapper:           swapper,
		auth:              auth,
		clock:             time.Now,
	}
	for _, c := range []interface{}{transfer, oracle, swapper} {
		l.addCheckpointer(c)
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

func (l *Ledger) addCheckpointer(c interface{}) {
	cp, ok := c.(Checkpointer)
	if !ok {
		return
	}
	for _, existing := range l.checkpointers {
		if existing == cp {
			return
		}
	}
	l.checkpointers = append(l.checkpointers, cp)
}

// Custody returns the account holding the ledger's tokens.
func (l *Ledger) Custody() common.Address {
	return l.custody
}

type inFlightKey struct{}

// run executes fn as one atomic operation. The context handed to fn, and from
// there to collaborators, is marked so that any nested mutating call made
// with it is rejected instead of deadlocking. Re-entry is detected through
// that context only; see the collaborator interfaces.
func (l *Ledger) run(ctx context.Context, fn func(ctx context.Context, tx *txn) error) error {
	if ctx.Value(inFlightKey{}) != nil {
		return newError(CodeReentrantCall, "ledger operation already in flight")
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	ctx = context.WithValue(ctx, inFlightKey{}, struct{}{})
	checkpoints := make([]int, len(l.checkpointers))
	for i, cp := range l.checkpointers {
		checkpoints[i] = cp.Checkpoint()
	}

	tx := &txn{now: uint64(l.clock().Unix())}
	if err := fn(ctx, tx); err != nil {
		tx.revert()
		for i := len(l.checkpointers) - 1; i >= 0; i-- {
			l.checkpointers[i].RevertTo(checkpoints[i])
		}
		return err
	}
	for i := len(l.checkpointers) - 1; i >= 0; i-- {
		l.checkpointers[i].Commit(checkpoints[i])
	}
	if l.sink != nil && len(tx.events) > 0 {
		l.sink(ctx, tx.events)
	}
	return nil
}

func (l *Ledger) requireRole(role Role, caller common.Address) error {
	if !l.auth.HasRole(role, caller) {
		return newError(CodeBadRole, "%s is missing role %s", caller.Hex(), role)
	}
	return nil
}

func (l *Ledger) requireNotPaused() error {
	if l.params.Paused {
		return newError(CodePaused, "ledger is paused")
	}
	return nil
}

func (l *Ledger) getCollateral(id common.Address) (*Collateral, error) {
	c, ok := l.collaterals[id]
	if !ok {
		return nil, newError(CodeNotFound, "collateral not registered").withCollateral(id)
	}
	return c, nil
}

func (l *Ledger) getValidator(id common.Address) (*Validator, error) {
	v, ok := l.validators[id]
	if !ok {
		return nil, newError(CodeNotFound, "validator not registered").withValidator(id)
	}
	return v, nil
}

func (l *Ledger) requireDelegatorActions(id common.Address, v *Validator) error {
	if v.DelegatorActionPaused {
		return newError(CodeDelegatorActionPaused, "delegator actions are paused").withValidator(id)
	}
	return nil
}

// pool returns the validator's pool for a collateral, creating it on first use.
func (l *Ledger) pool(tx *txn, v *Validator, collateral common.Address) *Pool {
	p, ok := v.pools[collateral]
	if !ok {
		p = newPool()
		v.pools[collateral] = p
		tx.onRevert(func() { delete(v.pools, collateral) })
	}
	return p
}

// delegator returns an account's position in a pool, creating it on first use.
func (l *Ledger) delegator(tx *txn, p *Pool, account common.Address) *Delegator {
	d, ok := p.delegators[account]
	if !ok {
		d = newDelegator()
		p.delegators[account] = d
		tx.onRevert(func() { delete(p.delegators, account) })
	}
	tx.addToSet(p.order, account)
	return d
}

func (l *Ledger) transferIn(ctx context.Context, token, from common.Address, amount *uint256.Int) error {
	if amount.IsZero() {
		return nil
	}
	if err := l.transfer.TransferIn(ctx, token, from, amount); err != nil {
		return wrapCollaborator(err, "transfer in %s of %s from %s", amount.Dec(), token.Hex(), from.Hex())
	}
	return nil
}

func (l *Ledger) transferOut(ctx context.Context, token, to common.Address, amount *uint256.Int) error {
	if amount.IsZero() {
		return nil
	}
	if err := l.transfer.TransferOut(ctx, token, to, amount); err != nil {
		return wrapCollaborator(err, "transfer out %s of %s to %s", amount.Dec(), token.Hex(), to.Hex())
	}
	return nil
}

// creditShares mints shares for amount at the pool's current rate and books
// them to the account.
func (l *Ledger) creditShares(tx *txn, p *Pool, account common.Address, amount *uint256.Int) (*uint256.Int, error) {
	shares, err := SharesFor(amount, p.Shares, p.StakedAmount)
	if err != nil {
		return nil, err
	}
	d := l.delegator(tx, p, account)
	if err := tx.add(&p.Shares, shares); err != nil {
		return nil, err
	}
	if err := tx.add(&p.StakedAmount, amount); err != nil {
		return nil, err
	}
	if err := tx.add(&d.Shares, shares); err != nil {
		return nil, err
	}
	return shares, nil
}

// burnShares removes shares from an account and returns the amount they were
// worth at the pool's current rate.
func (l *Ledger) burnShares(tx *txn, p *Pool, d *Delegator, shares *uint256.Int) (*uint256.Int, error) {
	if shares.IsZero() {
		return zero(), nil
	}
	amount, err := AmountFor(shares, p.StakedAmount, p.Shares)
	if err != nil {
		return nil, err
	}
	if err := tx.sub(&d.Shares, shares); err != nil {
		return nil, err
	}
	if err := tx.sub(&p.Shares, shares); err != nil {
		return nil, err
	}
	if err := tx.sub(&p.StakedAmount, amount); err != nil {
		return nil, err
	}
	return amount, nil
}
