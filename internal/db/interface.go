package db

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/babylonchain/staking-ledger/internal/db/model"
)

type DBClient interface {
	Ping(ctx context.Context) error
	// SaveLedgerState replaces the stored snapshot and appends its events in
	// one transaction. deposit is recorded in the same transaction when set.
	SaveLedgerState(
		ctx context.Context, state *model.LedgerStateDocument,
		events []*model.LedgerEventDocument, deposit *model.DepositDocument,
	) error
	// FindLedgerState returns a NotFoundError when nothing was saved yet.
	FindLedgerState(ctx context.Context) (*model.LedgerStateDocument, error)
	FindLedgerEvents(
		ctx context.Context, filter LedgerEventFilter, paginationToken string,
	) (*DbResultMap[model.LedgerEventDocument], error)
	IsDepositProcessed(ctx context.Context, depositID string) (bool, error)
	SaveUnprocessableMessage(ctx context.Context, messageBody, receipt, queueName string) error
	FindUnprocessableMessages(ctx context.Context) ([]model.UnprocessableMessageDocument, error)
	DeleteUnprocessableMessage(ctx context.Context, Receipt interface{}) error
}

type DBTransactionClient interface {
	StartSession(opts ...*options.SessionOptions) (DBSession, error)
}

type DBSession interface {
	EndSession(ctx context.Context)
	WithTransaction(
		ctx context.Context, fn func(sessCtx mongo.SessionContext) (interface{}, error),
		opts ...*options.TransactionOptions,
	) (interface{}, error)
}

// LedgerEventFilter narrows FindLedgerEvents, empty fields match everything.
type LedgerEventFilter struct {
	Type       string
	Validator  string
	Collateral string
	Account    string
}
