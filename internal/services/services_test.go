package services_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/babylonchain/staking-ledger/internal/clients"
	"github.com/babylonchain/staking-ledger/internal/config"
	"github.com/babylonchain/staking-ledger/internal/db"
	"github.com/babylonchain/staking-ledger/internal/db/model"
	"github.com/babylonchain/staking-ledger/internal/ledger"
	"github.com/babylonchain/staking-ledger/internal/mocks"
	"github.com/babylonchain/staking-ledger/internal/services"
	"github.com/babylonchain/staking-ledger/internal/types"
)

var (
	custody  = common.HexToAddress("0xc0de0")
	admin    = common.HexToAddress("0xad")
	slasher  = common.HexToAddress("0x51")
	treasury = common.HexToAddress("0x7e57")
	source   = common.HexToAddress("0xfeed")
	reserve  = common.HexToAddress("0x5e5e5e")

	usdc       = common.HexToAddress("0x0c")
	weth       = common.HexToAddress("0x0e")
	validatorA = common.HexToAddress("0x1a")
	adminA     = common.HexToAddress("0x2a")
	alice      = common.HexToAddress("0xa1")
	bob        = common.HexToAddress("0xb0")

	start = time.Unix(1_700_000_000, 0)
)

func testConfig() *config.Config {
	return &config.Config{
		Db: config.DbConfig{MaxPaginationLimit: 10},
		Ledger: config.LedgerConfig{
			CustodyAccount:      custody.Hex(),
			WithdrawTimelock:    time.Hour,
			MinProfitSharingBPS: 1000,
			SlashingTreasury:    treasury.Hex(),
			Admins:              []string{admin.Hex()},
			Slashers:            []string{slasher.Hex()},
			RewardSource:        source.Hex(),
		},
		Oracle: config.OracleConfig{Mode: config.StaticOracleMode},
		Swap:   config.SwapConfig{ReserveAccount: reserve.Hex()},
	}
}

func testGenesis() *types.Genesis {
	return &types.Genesis{
		Collaterals: []*types.GenesisCollateral{
			{Address: usdc.Hex(), Decimals: 6, MaxStakeAmount: "1000000000", IsUSDStable: true},
			{Address: weth.Hex(), Decimals: 18, MaxStakeAmount: "1000000000", Price: "200000000000"},
		},
		Validators: []*types.GenesisValidator{
			{Address: validatorA.Hex(), Admin: adminA.Hex(), RewardWeight: 1, ProfitSharingBPS: 5000},
		},
		Balances: []*types.GenesisBalance{
			{Account: alice.Hex(), Token: usdc.Hex(), Amount: "1000000"},
			{Account: source.Hex(), Token: usdc.Hex(), Amount: "1000000"},
		},
	}
}

type harness struct {
	t         *testing.T
	ctx       context.Context
	now       time.Time
	db        *mocks.DBClient
	services  *services.Services
	states    []*model.LedgerStateDocument
	events    []*model.LedgerEventDocument
	published []ledger.Event
}

func (h *harness) PublishLedgerEvents(_ context.Context, events []ledger.Event) error {
	h.published = append(h.published, events...)
	return nil
}

// newHarness wires services on an empty database that accepts every save.
func newHarness(t *testing.T) *harness {
	h := &harness{t: t, ctx: context.Background(), now: start, db: mocks.NewDBClient(t)}
	h.db.On("FindLedgerState", mock.Anything).
		Return(nil, &db.NotFoundError{Key: model.LedgerStateID, Message: "not found"}).Maybe()
	h.start()
	return h
}

func (h *harness) onSave() *mock.Call {
	return h.db.On("SaveLedgerState", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			h.states = append(h.states, args.Get(1).(*model.LedgerStateDocument))
			h.events = append(h.events, args.Get(2).([]*model.LedgerEventDocument)...)
		})
}

func (h *harness) start() {
	h.onSave().Return(nil)
	h.services = h.newServices()
}

func (h *harness) newServices() *services.Services {
	cfg := testConfig()
	genesis := testGenesis()
	prices, err := genesis.Prices()
	require.NoError(h.t, err)
	c, err := clients.New(cfg, prices)
	require.NoError(h.t, err)
	s, err := services.New(h.ctx, cfg, genesis, h.db, c, services.WithClock(func() time.Time { return h.now }))
	require.NoError(h.t, err)
	s.SetEventPublisher(h)
	return s
}

func (h *harness) lastState() *model.LedgerStateDocument {
	require.NotEmpty(h.t, h.states)
	return h.states[len(h.states)-1]
}

func (h *harness) eventTypes() []string {
	var out []string
	for _, e := range h.events {
		out = append(out, e.Type)
	}
	return out
}

func n(x uint64) *uint256.Int {
	return uint256.NewInt(x)
}

func TestBootstrapFromGenesis(t *testing.T) {
	h := newHarness(t)

	require.Len(t, h.states, 1)
	assert.Equal(t, uint64(1), h.lastState().Sequence)
	assert.Equal(t, model.LedgerStateID, h.lastState().ID)
	assert.Equal(t, []string{"CollateralAdded", "CollateralAdded", "ValidatorAdded"}, h.eventTypes())
	assert.Equal(t, uint64(1), h.services.Sequence())

	assert.Len(t, h.services.GetCollaterals(h.ctx), 2)
	balance := h.services.GetBalance(h.ctx, alice, usdc)
	assert.Equal(t, "1000000", balance.Amount)
	params := h.services.GetParams(h.ctx)
	assert.Equal(t, uint64(3600), params.WithdrawTimelock)
	assert.Equal(t, custody.Hex(), params.Custody)

	// Bootstrap events are not published before a publisher is registered.
	assert.Empty(t, h.published)
}

func TestBootstrapRejectsGenesisBelowProfitSharingFloor(t *testing.T) {
	dbClient := mocks.NewDBClient(t)
	dbClient.On("FindLedgerState", mock.Anything).
		Return(nil, &db.NotFoundError{Key: model.LedgerStateID, Message: "not found"})

	genesis := testGenesis()
	genesis.Validators = append(genesis.Validators, &types.GenesisValidator{
		Address: bob.Hex(), Admin: bob.Hex(), RewardWeight: 1, ProfitSharingBPS: 10,
	})
	cfg := testConfig()
	c, err := clients.New(cfg, nil)
	require.NoError(t, err)
	_, err = services.New(context.Background(), cfg, genesis, dbClient, c)
	require.Error(t, err)
	dbClient.AssertNotCalled(t, "SaveLedgerState", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBootstrapFailureDoesNotPersist(t *testing.T) {
	dbClient := mocks.NewDBClient(t)
	dbClient.On("FindLedgerState", mock.Anything).
		Return(nil, &db.NotFoundError{Key: model.LedgerStateID, Message: "not found"})

	// Passes the floor check but the ledger rejects the second validator
	// after the collaterals and the first validator were applied.
	genesis := testGenesis()
	genesis.Validators = append(genesis.Validators, &types.GenesisValidator{
		Address: bob.Hex(), Admin: bob.Hex(), RewardWeight: 1, ProfitSharingBPS: 10001,
	})
	cfg := testConfig()
	c, err := clients.New(cfg, nil)
	require.NoError(t, err)
	_, err = services.New(context.Background(), cfg, genesis, dbClient, c)
	require.Error(t, err)
	dbClient.AssertNotCalled(t, "SaveLedgerState", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRestoreFromPersistedState(t *testing.T) {
	h := newHarness(t)
	_, apiErr := h.services.Stake(h.ctx, alice, validatorA, usdc, n(1000))
	require.Nil(t, apiErr)
	require.Nil(t, h.services.GrantRole(h.ctx, admin, ledger.SlasherRole, bob))
	saved := h.lastState()

	restartDb := mocks.NewDBClient(t)
	restartDb.On("FindLedgerState", mock.Anything).Return(saved, nil)
	h.db = restartDb
	restarted := h.newServices()

	assert.Equal(t, saved.Sequence, restarted.Sequence())
	before, apiErr := h.services.GetPool(h.ctx, validatorA, usdc)
	require.Nil(t, apiErr)
	after, apiErr := restarted.GetPool(h.ctx, validatorA, usdc)
	require.Nil(t, apiErr)
	assert.Equal(t, before, after)
	assert.Equal(t, "999000", restarted.GetBalance(h.ctx, alice, usdc).Amount)
	assert.Equal(t, []string{slasher.Hex(), bob.Hex()}, restarted.RoleMembers(ledger.SlasherRole))
}

func TestRestoreRejectsCorruptState(t *testing.T) {
	dbClient := mocks.NewDBClient(t)
	dbClient.On("FindLedgerState", mock.Anything).Return(&model.LedgerStateDocument{
		ID: model.LedgerStateID, Sequence: 3, Ledger: "{", Balances: "[]",
	}, nil)

	cfg := testConfig()
	c, err := clients.New(cfg, nil)
	require.NoError(t, err)
	_, err = services.New(context.Background(), cfg, testGenesis(), dbClient, c)
	assert.Error(t, err)
}

func TestOperationsPersistEvents(t *testing.T) {
	h := newHarness(t)
	h.events = nil

	result, apiErr := h.services.Stake(h.ctx, alice, validatorA, usdc, n(1000))
	require.Nil(t, apiErr)
	assert.Equal(t, "1000", result.Shares)

	unstake, apiErr := h.services.RequestUnstake(h.ctx, alice, validatorA, usdc, common.Address{}, n(400))
	require.Nil(t, apiErr)
	assert.Equal(t, uint64(0), unstake.WithdrawalID)

	assert.Equal(t, []string{"Staked", "UnstakeRequested"}, h.eventTypes())
	assert.Equal(t, uint64(3), h.lastState().Sequence)
	assert.Equal(t, uint64(2), h.events[0].Sequence)
	assert.Equal(t, validatorA.Hex(), h.events[0].Validator)
	assert.Equal(t, start.Unix(), h.events[0].Timestamp)
	assert.NotEmpty(t, h.events[0].ID)
	require.Len(t, h.published, 2)
	assert.Equal(t, ledger.EventStaked, h.published[0].Type)

	apiErr = h.services.ExecuteUnstake(h.ctx, validatorA, 0, 0)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, types.ErrorCode(ledger.CodeTimelock), apiErr.ErrorCode)

	h.now = start.Add(time.Hour)
	require.Nil(t, h.services.ExecuteUnstake(h.ctx, validatorA, 0, 0))
	assert.Equal(t, "999400", h.services.GetBalance(h.ctx, alice, usdc).Amount)

	w, apiErr := h.services.GetWithdrawal(h.ctx, validatorA, 0)
	require.Nil(t, apiErr)
	assert.True(t, w.Executed)
	assert.Equal(t, alice.Hex(), w.Receiver)
}

func TestErrorMapping(t *testing.T) {
	h := newHarness(t)
	unknown := common.HexToAddress("0xdead")

	tests := []struct {
		name   string
		run    func() *types.Error
		status int
		code   types.ErrorCode
	}{
		{
			"unknown validator",
			func() *types.Error { _, err := h.services.Stake(h.ctx, alice, unknown, usdc, n(1)); return err },
			http.StatusNotFound, types.NotFound,
		},
		{
			"zero amount",
			func() *types.Error { _, err := h.services.Stake(h.ctx, alice, validatorA, usdc, n(0)); return err },
			http.StatusBadRequest, types.ErrorCode(ledger.CodeZeroAmount),
		},
		{
			"missing funds",
			func() *types.Error { _, err := h.services.Stake(h.ctx, bob, validatorA, usdc, n(1)); return err },
			http.StatusBadRequest, types.InsufficientBalance,
		},
		{
			"cap",
			func() *types.Error {
				_, err := h.services.Stake(h.ctx, alice, validatorA, usdc, n(1_000_000_001))
				return err
			},
			http.StatusConflict, types.ErrorCode(ledger.CodeStakeCapExceeded),
		},
		{
			"not an admin",
			func() *types.Error { return h.services.SetPaused(h.ctx, alice, true) },
			http.StatusForbidden, types.Forbidden,
		},
		{
			"not a slasher",
			func() *types.Error { return h.services.SlashValidatorCollateral(h.ctx, admin, validatorA, usdc, 100) },
			http.StatusForbidden, types.Forbidden,
		},
		{
			"existing collateral",
			func() *types.Error { return h.services.AddCollateral(h.ctx, admin, usdc, n(1), 6, true) },
			http.StatusConflict, types.ErrorCode(ledger.CodeAlreadyExists),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			saves := len(h.states)
			err := tt.run()
			require.NotNil(t, err)
			assert.Equal(t, tt.status, err.StatusCode)
			assert.Equal(t, tt.code, err.ErrorCode)
			assert.Len(t, h.states, saves, "failed operations without effects are not persisted")
		})
	}
}

func TestFailedPersistIsRetriedWithNextOperation(t *testing.T) {
	h := &harness{t: t, ctx: context.Background(), now: start, db: mocks.NewDBClient(t)}
	h.db.On("FindLedgerState", mock.Anything).Return(nil, &db.NotFoundError{Message: "not found"})
	h.onSave().Return(nil).Once()
	h.onSave().Return(errors.New("connection reset")).Once()
	h.onSave().Return(nil)
	h.services = h.newServices()
	h.events = nil

	_, apiErr := h.services.Stake(h.ctx, alice, validatorA, usdc, n(1000))
	require.Nil(t, apiErr, "the committed operation succeeds even if persisting fails")
	assert.Empty(t, h.published)
	assert.Equal(t, uint64(1), h.services.Sequence())

	require.Nil(t, h.services.SendRewards(h.ctx, source, usdc, n(50)))
	assert.Equal(t, uint64(2), h.services.Sequence())
	require.Len(t, h.published, 2)
	assert.Equal(t, ledger.EventStaked, h.published[0].Type)
	assert.Equal(t, ledger.EventRewardsReceived, h.published[1].Type)

	// The failed attempt and the retry both carried the stake event.
	assert.Equal(t, []string{"Staked", "Staked", "RewardsReceived"}, h.eventTypes())
}

func TestProcessDeposit(t *testing.T) {
	h := newHarness(t)
	h.db.On("IsDepositProcessed", mock.Anything, "d1").Return(false, nil).Once()

	require.Nil(t, h.services.ProcessDeposit(h.ctx, "d1", bob, usdc, n(700)))
	assert.Equal(t, "700", h.services.GetBalance(h.ctx, bob, usdc).Amount)
	assert.Equal(t, services.EventDeposited, h.published[len(h.published)-1].Type)

	h.db.On("IsDepositProcessed", mock.Anything, "d1").Return(true, nil).Once()
	require.Nil(t, h.services.ProcessDeposit(h.ctx, "d1", bob, usdc, n(700)))
	assert.Equal(t, "700", h.services.GetBalance(h.ctx, bob, usdc).Amount)
	assert.Equal(t, uint64(2), h.services.Sequence())
}

func TestProcessDepositRevertsOnPersistFailure(t *testing.T) {
	h := &harness{t: t, ctx: context.Background(), now: start, db: mocks.NewDBClient(t)}
	h.db.On("FindLedgerState", mock.Anything).Return(nil, &db.NotFoundError{Message: "not found"})
	h.onSave().Return(nil).Once()
	h.onSave().Return(&db.DuplicateKeyError{Key: "dup", Message: "Deposit already processed"}).Once()
	h.onSave().Return(errors.New("connection reset")).Once()
	h.db.On("IsDepositProcessed", mock.Anything, mock.Anything).Return(false, nil)
	h.services = h.newServices()

	require.Nil(t, h.services.ProcessDeposit(h.ctx, "dup", bob, usdc, n(10)), "a concurrent duplicate is skipped")
	assert.Equal(t, "0", h.services.GetBalance(h.ctx, bob, usdc).Amount)

	apiErr := h.services.ProcessDeposit(h.ctx, "other", bob, usdc, n(10))
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "0", h.services.GetBalance(h.ctx, bob, usdc).Amount)
	assert.Equal(t, uint64(1), h.services.Sequence())
}

func TestProcessDepositRejectsUnknownToken(t *testing.T) {
	h := newHarness(t)
	h.db.On("IsDepositProcessed", mock.Anything, "d2").Return(false, nil)

	apiErr := h.services.ProcessDeposit(h.ctx, "d2", bob, common.HexToAddress("0xdead"), n(1))
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)

	apiErr = h.services.ProcessDeposit(h.ctx, "d2", bob, usdc, n(0))
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

func TestProcessReward(t *testing.T) {
	h := newHarness(t)
	_, apiErr := h.services.Stake(h.ctx, alice, validatorA, usdc, n(1000))
	require.Nil(t, apiErr)

	require.Nil(t, h.services.ProcessReward(h.ctx, usdc, n(100), true))
	info := h.services.GetRewardInfo(h.ctx, usdc)
	assert.Equal(t, "100", info.TotalAmount)
	assert.Equal(t, "100", info.Distributed)
	assert.Equal(t, "999900", h.services.GetBalance(h.ctx, source, usdc).Amount)

	require.Nil(t, h.services.ProcessReward(h.ctx, usdc, n(10), false))
	info = h.services.GetRewardInfo(h.ctx, usdc)
	assert.Equal(t, "110", info.TotalAmount)
	assert.Equal(t, "100", info.Distributed)
}

func TestProcessSlashingIncident(t *testing.T) {
	h := newHarness(t)
	_, apiErr := h.services.Stake(h.ctx, alice, validatorA, usdc, n(1000))
	require.Nil(t, apiErr)
	_, apiErr = h.services.RequestUnstake(h.ctx, alice, validatorA, usdc, alice, n(500))
	require.Nil(t, apiErr)
	h.events = nil

	halfPercent := new(uint256.Int).Mul(n(5), uint256.NewInt(1e17))
	require.Nil(t, h.services.ProcessSlashingIncident(h.ctx, services.SlashingIncident{
		Validator:        validatorA,
		ProblemTimestamp: uint64(start.Unix()) - 1,
		SlashPercent:     halfPercent,
		LiquidateBPS:     1000,
	}))

	assert.Contains(t, h.eventTypes(), "UnstakeRequestsSlashed")
	assert.Contains(t, h.eventTypes(), "Liquidated")
	w, apiErr := h.services.GetWithdrawal(h.ctx, validatorA, 0)
	require.Nil(t, apiErr)
	assert.Equal(t, "250", w.Amount)
}

func TestProcessSlashingIncidentRedeliveryAfterFailure(t *testing.T) {
	h := newHarness(t)
	_, apiErr := h.services.Stake(h.ctx, alice, validatorA, usdc, n(1000))
	require.Nil(t, apiErr)
	_, apiErr = h.services.RequestUnstake(h.ctx, alice, validatorA, usdc, alice, n(500))
	require.Nil(t, apiErr)
	saved := len(h.states)

	incident := services.SlashingIncident{
		Validator:        validatorA,
		ProblemTimestamp: uint64(start.Unix()) - 1,
		SlashPercent:     uint256.NewInt(1e17),
		LiquidateBPS:     20000,
	}
	for i := 0; i < 3; i++ {
		apiErr := h.services.ProcessSlashingIncident(h.ctx, incident)
		require.NotNil(t, apiErr)
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	}

	w, apiErr := h.services.GetWithdrawal(h.ctx, validatorA, 0)
	require.Nil(t, apiErr)
	assert.Equal(t, "500", w.Amount)
	assert.Equal(t, "0", w.SlashingAmount)
	assert.Len(t, h.states, saved)

	incident.LiquidateBPS = 1000
	require.Nil(t, h.services.ProcessSlashingIncident(h.ctx, incident))
	w, apiErr = h.services.GetWithdrawal(h.ctx, validatorA, 0)
	require.Nil(t, apiErr)
	assert.Equal(t, "450", w.Amount)
	assert.Equal(t, "50", w.SlashingAmount)
}

func TestRoles(t *testing.T) {
	h := newHarness(t)

	apiErr := h.services.GrantRole(h.ctx, alice, ledger.AdminRole, alice)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)

	require.Nil(t, h.services.GrantRole(h.ctx, admin, ledger.AdminRole, alice))
	assert.Contains(t, h.lastState().Roles, alice.Hex())
	assert.Equal(t, services.EventRoleGranted, h.published[len(h.published)-1].Type)
	require.Nil(t, h.services.SetPaused(h.ctx, alice, true))
	assert.True(t, h.services.GetParams(h.ctx).Paused)

	require.Nil(t, h.services.RevokeRole(h.ctx, admin, ledger.AdminRole, alice))
	apiErr = h.services.RevokeRole(h.ctx, admin, ledger.AdminRole, admin)
	require.NotNil(t, apiErr, "the last admin cannot be revoked")
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

func TestUpdateParams(t *testing.T) {
	h := newHarness(t)
	timelock := uint64(60)
	bps := uint64(20000)

	apiErr := h.services.UpdateParams(h.ctx, admin, services.ParamsUpdate{WithdrawTimelock: &timelock, MinProfitSharingBPS: &bps})
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)

	require.Nil(t, h.services.UpdateParams(h.ctx, admin, services.ParamsUpdate{WithdrawTimelock: &timelock}))
	assert.Equal(t, uint64(60), h.services.GetParams(h.ctx).WithdrawTimelock)
}

func TestSetPrice(t *testing.T) {
	h := newHarness(t)

	require.NotNil(t, h.services.SetPrice(h.ctx, alice, weth, n(1)))
	require.Nil(t, h.services.SetPrice(h.ctx, admin, weth, n(300000000000)))
	price, apiErr := h.services.GetPrice(h.ctx, weth)
	require.Nil(t, apiErr)
	assert.Equal(t, uint64(300000000000), price.Uint64())

	apiErr = h.services.SetPrice(h.ctx, admin, common.HexToAddress("0xdead"), n(1))
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestGetLedgerEvents(t *testing.T) {
	h := newHarness(t)
	filter := db.LedgerEventFilter{Validator: validatorA.Hex()}
	h.db.On("FindLedgerEvents", mock.Anything, filter, "").Return(&db.DbResultMap[model.LedgerEventDocument]{
		Data: []model.LedgerEventDocument{{
			ID: "id", Sequence: 4, Index: 1, Type: "Staked", Payload: `{"type":"Staked"}`, Timestamp: 10,
		}},
		PaginationToken: "next",
	}, nil)
	h.db.On("FindLedgerEvents", mock.Anything, filter, "bad").
		Return(nil, &db.InvalidPaginationTokenError{Message: "invalid"})

	events, token, apiErr := h.services.GetLedgerEvents(h.ctx, filter, "")
	require.Nil(t, apiErr)
	assert.Equal(t, "next", token)
	require.Len(t, events, 1)
	assert.JSONEq(t, `{"type":"Staked"}`, string(events[0].Event))

	_, _, apiErr = h.services.GetLedgerEvents(h.ctx, filter, "bad")
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}
