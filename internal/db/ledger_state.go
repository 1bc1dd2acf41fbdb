package db

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/babylonchain/staking-ledger/internal/db/model"
)

func (db *Database) SaveLedgerState(
	ctx context.Context, state *model.LedgerStateDocument,
	events []*model.LedgerEventDocument, deposit *model.DepositDocument,
) error {
	database := db.Client.Database(db.DbName)
	stateClient := database.Collection(model.LedgerStateCollection)
	eventClient := database.Collection(model.LedgerEventCollection)
	depositClient := database.Collection(model.DepositCollection)

	txnFunc := func(sessCtx mongo.SessionContext) (interface{}, error) {
		if deposit != nil {
			if _, err := depositClient.InsertOne(sessCtx, deposit); err != nil {
				if isMongoDuplicateKey(err) {
					return nil, &DuplicateKeyError{
						Key:     deposit.ID,
						Message: "Deposit already processed",
					}
				}
				return nil, err
			}
		}

		// The stored sequence only moves forward. A stale writer falls into
		// the upsert and collides on _id.
		filter := bson.M{"_id": state.ID, "sequence": bson.M{"$lt": state.Sequence}}
		_, err := stateClient.ReplaceOne(sessCtx, filter, state, options.Replace().SetUpsert(true))
		if err != nil {
			if isMongoDuplicateKey(err) {
				return nil, &DuplicateKeyError{
					Key:     state.ID,
					Message: "Ledger state was saved by a newer sequence",
				}
			}
			return nil, err
		}

		if len(events) > 0 {
			docs := make([]interface{}, len(events))
			for i, e := range events {
				docs[i] = e
			}
			if _, err := eventClient.InsertMany(sessCtx, docs); err != nil {
				return nil, err
			}
		}
		return nil, nil
	}

	_, err := TxWithRetries(ctx, db.txClient, db.cfg.MaxTxRetries, txnFunc)
	return err
}

func (db *Database) FindLedgerState(ctx context.Context) (*model.LedgerStateDocument, error) {
	client := db.Client.Database(db.DbName).Collection(model.LedgerStateCollection)
	filter := bson.M{"_id": model.LedgerStateID}
	var state model.LedgerStateDocument
	err := client.FindOne(ctx, filter).Decode(&state)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     model.LedgerStateID,
				Message: "Ledger state not found",
			}
		}
		return nil, err
	}
	return &state, nil
}

func (db *Database) IsDepositProcessed(ctx context.Context, depositID string) (bool, error) {
	client := db.Client.Database(db.DbName).Collection(model.DepositCollection)
	count, err := client.CountDocuments(ctx, bson.M{"_id": depositID}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
