package ledger

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// Role gates privileged ledger operations.
type Role string

const (
	// AdminRole manages registries, parameters, reward distribution and
	// the slashing treasury.
	AdminRole Role = "admin"
	// SlasherRole applies punitive slashing and liquidation.
	SlasherRole Role = "slasher"
)

var ErrUnknownRole = errors.New("unknown role")

// ParseRole returns the role named s.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case AdminRole, SlasherRole:
		return r, nil
	}
	return "", errors.Wrapf(ErrUnknownRole, "%q", s)
}

// Collaborators are called while a ledger operation holds the ledger lock.
// A collaborator that calls back into the ledger must pass on the context it
// was given, or one derived from it: that call fails with ErrReentrantCall. A call back made with any
// other context is indistinguishable from a concurrent caller and blocks on
// the lock until the outer operation returns, which never happens.

// AssetTransfer moves tokens between an account and the ledger's custody.
// Both calls fail atomically on insufficient balance.
type AssetTransfer interface {
	TransferIn(ctx context.Context, token, from common.Address, amount *uint256.Int) error
	TransferOut(ctx context.Context, token, to common.Address, amount *uint256.Int) error
}

// PriceOracle returns the USD price of a collateral with 8 decimals.
type PriceOracle interface {
	PriceOf(ctx context.Context, token common.Address) (*uint256.Int, error)
}

// RewardSwap exchanges amountIn of tokenIn held in custody for tokenOut paid
// to recipient.
type RewardSwap interface {
	Swap(ctx context.Context, tokenIn, tokenOut, recipient common.Address, amountIn *uint256.Int) (*uint256.Int, error)
}

// Authorizer answers role membership.
type Authorizer interface {
	HasRole(role Role, account common.Address) bool
}

// Checkpointer is implemented by collaborators that can undo their own
// effects when a ledger operation fails after calling them.
type Checkpointer interface {
	Checkpoint() int
	RevertTo(checkpoint int)
	Commit(checkpoint int)
}

// Collateral is a registered asset type with its global totals.
type Collateral struct {
	SlashedAmount  *uint256.Int
	TotalLocked    *uint256.Int
	Rewards        *uint256.Int
	MaxStakeAmount *uint256.Int
	Decimals       uint8
	IsEnabled      bool
	IsUSDStable    bool
}

// Validator holds validator configuration and owns one pool per collateral
// plus the validator's withdrawal request sequence.
type Validator struct {
	Admin                   common.Address
	RewardWeightCoefficient uint64
	ProfitSharingBPS        uint64
	DelegatorActionPaused   bool
	IsEnabled               bool

	pools       map[common.Address]*Pool
	withdrawals []*WithdrawalInfo
}

// Pool is the per validator and collateral staking state.
type Pool struct {
	StakedAmount         *uint256.Int
	Shares               *uint256.Int
	Locked               *uint256.Int
	AccumulatedRewards   *uint256.Int
	RewardsForWithdrawal *uint256.Int

	delegators map[common.Address]*Delegator
	order      *orderedSet
}

// Delegator is one account's position in a pool.
type Delegator struct {
	Shares             *uint256.Int
	Locked             *uint256.Int
	AccumulatedRewards *uint256.Int
}

// WithdrawalInfo is a queued unstake request. It is immutable once executed.
type WithdrawalInfo struct {
	Delegator      common.Address
	Amount         *uint256.Int
	SlashingAmount *uint256.Int
	Timelock       uint64
	Receiver       common.Address
	Collateral     common.Address
	Executed       bool
	Paused         bool
}

// RewardInfo tracks the reward tokens received and distributed so far.
type RewardInfo struct {
	TotalAmount *uint256.Int
	Distributed *uint256.Int
}

// Params are the ledger wide settings.
type Params struct {
	MinProfitSharingBPS uint64
	WithdrawTimelock    uint64
	SlashingTreasury    common.Address
	Paused              bool
	WeightDenominator   uint64
}

func newPool() *Pool {
	return &Pool{
		StakedAmount:         zero(),
		Shares:               zero(),
		Locked:               zero(),
		AccumulatedRewards:   zero(),
		RewardsForWithdrawal: zero(),
		delegators:           make(map[common.Address]*Delegator),
		order:                newOrderedSet(),
	}
}

func newDelegator() *Delegator {
	return &Delegator{Shares: zero(), Locked: zero(), AccumulatedRewards: zero()}
}

// unlocked returns the shares not reserved by an external lock.
func (d *Delegator) unlocked() *uint256.Int {
	if d.Locked.Gt(d.Shares) {
		return zero()
	}
	return new(uint256.Int).Sub(d.Shares, d.Locked)
}
