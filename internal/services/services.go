package services

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog/log"

	"github.com/babylonchain/staking-ledger/internal/clients"
	"github.com/babylonchain/staking-ledger/internal/config"
	"github.com/babylonchain/staking-ledger/internal/db"
	"github.com/babylonchain/staking-ledger/internal/ledger"
	"github.com/babylonchain/staking-ledger/internal/types"
)

// EventPublisher forwards committed ledger events to downstream consumers.
type EventPublisher interface {
	PublishLedgerEvents(ctx context.Context, events []ledger.Event) error
}

type Option func(*Services)

// WithClock replaces the wall clock used by the ledger and for persisted
// timestamps.
func WithClock(clock func() time.Time) Option {
	return func(s *Services) {
		s.clock = clock
	}
}

// Service layer contains the business logic and is used to interact with
// the ledger, the database and other external clients (if any).
type Services struct {
	DbClient db.DBClient
	Clients  *clients.Clients
	Ledger   *ledger.Ledger
	cfg      *config.Config
	genesis  *types.Genesis
	clock    func() time.Time

	// mu serializes every state change: ledger operations, deposits and
	// role updates share the custody book.
	mu        sync.Mutex
	sequence  uint64
	pending   []ledger.Event
	unsaved   []ledger.Event
	publisher EventPublisher
}

// New builds the ledger on top of the clients and loads the last persisted
// state, bootstrapping from genesis on first start.
func New(
	ctx context.Context, cfg *config.Config, genesis *types.Genesis,
	dbClient db.DBClient, c *clients.Clients, opts ...Option,
) (*Services, error) {
	s := &Services{
		DbClient: dbClient,
		Clients:  c,
		cfg:      cfg,
		genesis:  genesis,
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	l, err := ledger.New(
		ledger.Config{
			Custody:             cfg.Ledger.Custody(),
			WithdrawTimelock:    cfg.Ledger.TimelockSeconds(),
			MinProfitSharingBPS: cfg.Ledger.MinProfitSharingBPS,
			SlashingTreasury:    cfg.Ledger.Treasury(),
		},
		c.Bank, c.Oracle, c.Swap, c.Access,
		ledger.WithClock(s.clock),
		ledger.WithEventSink(s.collectEvents),
	)
	if err != nil {
		return nil, err
	}
	s.Ledger = l

	if err := s.load(ctx); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("error while loading the ledger state")
		return nil, err
	}
	return s, nil
}

// SetEventPublisher registers where committed events are sent after they
// are persisted.
func (s *Services) SetEventPublisher(publisher EventPublisher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.publisher = publisher
}

// DoHealthCheck checks the health of the services by ping the database.
func (s *Services) DoHealthCheck(ctx context.Context) error {
	return s.DbClient.Ping(ctx)
}

// Sequence returns the sequence of the last persisted state.
func (s *Services) Sequence() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sequence
}

func (s *Services) SaveUnprocessableMessages(ctx context.Context, messageBody, receipt, queueName string) error {
	err := s.DbClient.SaveUnprocessableMessage(ctx, messageBody, receipt, queueName)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("error while saving unprocessable message")
		return types.NewErrorWithMsg(http.StatusInternalServerError, types.InternalServiceError, "error while saving unprocessable message")
	}
	return nil
}

// systemCaller returns the account queue driven operations and the genesis
// bootstrap act as: the lowest address holding role.
func (s *Services) systemCaller(role ledger.Role) (common.Address, *types.Error) {
	members := s.Clients.Access.Members(role)
	if len(members) == 0 {
		return common.Address{}, types.NewErrorWithMsg(
			http.StatusInternalServerError, types.InternalServiceError, "no account holds role "+string(role),
		)
	}
	return members[0], nil
}
