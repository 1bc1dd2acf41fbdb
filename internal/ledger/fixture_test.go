package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/babylonchain/staking-ledger/internal/clients/bank"
	"github.com/babylonchain/staking-ledger/internal/ledger"
)

const timelock = 86400

var (
	admin    = common.HexToAddress("0xad")
	slasher  = common.HexToAddress("0x51")
	custody  = common.HexToAddress("0xc0")
	treasury = common.HexToAddress("0x7e")
	reserve  = common.HexToAddress("0x5e")

	validatorA = common.HexToAddress("0x1a")
	validatorB = common.HexToAddress("0x1b")
	adminA     = common.HexToAddress("0x2a")
	adminB     = common.HexToAddress("0x2b")

	usdc = common.HexToAddress("0x0c")
	weth = common.HexToAddress("0x0e")

	alice = common.HexToAddress("0xa1")
	bob   = common.HexToAddress("0xb0")
	carol = common.HexToAddress("0xca")

	start = time.Unix(1_700_000_000, 0)
)

func n(x uint64) *uint256.Int {
	return uint256.NewInt(x)
}

func e18(x uint64) *uint256.Int {
	return new(uint256.Int).Mul(n(x), n(1e18))
}

type roles map[ledger.Role]map[common.Address]bool

func (r roles) HasRole(role ledger.Role, account common.Address) bool {
	return r[role][account]
}

type staticOracle map[common.Address]*uint256.Int

func (o staticOracle) PriceOf(_ context.Context, token common.Address) (*uint256.Int, error) {
	price, ok := o[token]
	if !ok {
		return nil, errors.Errorf("no price for %s", token.Hex())
	}
	return price, nil
}

type rate struct {
	num, den uint64
}

// fakeSwap settles swaps against a reserve account in the bank at fixed rates.
type fakeSwap struct {
	bank  *bank.Bank
	rates map[[2]common.Address]rate
	calls int
	fail  bool
	hook  func(ctx context.Context) error
}

func (s *fakeSwap) Swap(
	ctx context.Context, tokenIn, tokenOut, recipient common.Address, amountIn *uint256.Int,
) (*uint256.Int, error) {
	s.calls++
	if err := s.bank.Move(tokenIn, custody, reserve, amountIn); err != nil {
		return nil, err
	}
	if s.hook != nil {
		if err := s.hook(ctx); err != nil {
			return nil, err
		}
	}
	if s.fail {
		return nil, errors.New("swap venue unavailable")
	}
	r := s.rates[[2]common.Address{tokenIn, tokenOut}]
	out := new(uint256.Int).Mul(amountIn, n(r.num))
	out.Div(out, n(r.den))
	if err := s.bank.Move(tokenOut, reserve, recipient, out); err != nil {
		return nil, err
	}
	return out, nil
}

type fixture struct {
	t      *testing.T
	ctx    context.Context
	ledger *ledger.Ledger
	bank   *bank.Bank
	swap   *fakeSwap
	oracle staticOracle
	now    time.Time
	events []ledger.Event
}

// newFixture builds a ledger with two validators of equal weight sharing half
// of their rewards, a 6 decimal USD stable collateral and an 18 decimal
// volatile one priced at 2000 USD.
func newFixture(t *testing.T) *fixture {
	f := &fixture{t: t, ctx: context.Background(), now: start}
	f.bank = bank.New(custody)
	f.oracle = staticOracle{weth: n(2000e8)}
	f.swap = &fakeSwap{
		bank: f.bank,
		rates: map[[2]common.Address]rate{
			{usdc, weth}: {num: 1e12, den: 2000},
			{weth, usdc}: {num: 2000, den: 1e12},
		},
	}
	auth := roles{
		ledger.AdminRole:   {admin: true},
		ledger.SlasherRole: {slasher: true},
	}
	l, err := ledger.New(
		ledger.Config{
			Custody:             custody,
			WithdrawTimelock:    timelock,
			MinProfitSharingBPS: 1000,
			SlashingTreasury:    treasury,
		},
		f.bank, f.oracle, f.swap, auth,
		ledger.WithClock(func() time.Time { return f.now }),
		ledger.WithEventSink(func(_ context.Context, events []ledger.Event) {
			f.events = append(f.events, events...)
		}),
	)
	require.NoError(t, err)
	f.ledger = l

	maxStake := e18(1_000_000_000)
	require.NoError(t, l.AddCollateral(f.ctx, admin, usdc, maxStake, 6, true))
	require.NoError(t, l.AddCollateral(f.ctx, admin, weth, maxStake, 18, false))
	require.NoError(t, l.AddValidator(f.ctx, admin, validatorA, adminA, 1, 5000))
	require.NoError(t, l.AddValidator(f.ctx, admin, validatorB, adminB, 1, 5000))
	f.events = nil
	return f
}

func (f *fixture) fund(token, account common.Address, amount *uint256.Int) {
	require.NoError(f.t, f.bank.Credit(token, account, amount))
}

func (f *fixture) stake(account, validator, token common.Address, amount *uint256.Int) *uint256.Int {
	f.fund(token, account, amount)
	shares, err := f.ledger.Stake(f.ctx, account, validator, token, amount)
	require.NoError(f.t, err)
	return shares
}

func (f *fixture) pool(validator, token common.Address) *ledger.PoolView {
	p, err := f.ledger.Pool(validator, token)
	require.NoError(f.t, err)
	return p
}

func (f *fixture) delegator(validator, token, account common.Address) *ledger.DelegatorView {
	d, err := f.ledger.Delegator(validator, token, account)
	require.NoError(f.t, err)
	return d
}

func (f *fixture) collateral(token common.Address) *ledger.CollateralView {
	c, err := f.ledger.Collateral(token)
	require.NoError(f.t, err)
	return c
}

func (f *fixture) advance(d time.Duration) {
	f.now = f.now.Add(d)
}

// requireConsistent checks that the delegator shares of every pool add up to
// the pool's shares and that locks never exceed holdings.
func (f *fixture) requireConsistent() {
	for _, v := range f.ledger.Validators() {
		for _, c := range v.Collaterals {
			p := f.pool(v.ID, c)
			accounts, err := f.ledger.PoolDelegators(v.ID, c)
			require.NoError(f.t, err)
			sum := new(uint256.Int)
			for _, account := range accounts {
				d := f.delegator(v.ID, c, account)
				require.False(f.t, d.Locked.Gt(d.Shares))
				sum.Add(sum, d.Shares)
			}
			require.Equal(f.t, p.Shares.Dec(), sum.Dec(), "pool %s/%s", v.ID.Hex(), c.Hex())
			require.False(f.t, p.Locked.Gt(p.Shares))
		}
	}
}

func (f *fixture) eventTypes() []ledger.EventType {
	var out []ledger.EventType
	for _, e := range f.events {
		out = append(out, e.Type)
	}
	return out
}
