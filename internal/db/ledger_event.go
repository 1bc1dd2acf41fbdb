package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/babylonchain/staking-ledger/internal/db/model"
)

// FindLedgerEvents lists events newest first.
func (db *Database) FindLedgerEvents(
	ctx context.Context, filter LedgerEventFilter, paginationToken string,
) (*DbResultMap[model.LedgerEventDocument], error) {
	client := db.Client.Database(db.DbName).Collection(model.LedgerEventCollection)

	query := buildLedgerEventQuery(filter)
	if paginationToken != "" {
		decodedToken, err := model.DecodePaginationToken[model.LedgerEventPagination](paginationToken)
		if err != nil {
			return nil, &InvalidPaginationTokenError{
				Message: "Invalid pagination token",
			}
		}
		query["$or"] = []bson.M{
			{"sequence": bson.M{"$lt": decodedToken.Sequence}},
			{"sequence": decodedToken.Sequence, "index": bson.M{"$lt": decodedToken.Index}},
		}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "sequence", Value: -1}, {Key: "index", Value: -1}}).
		SetLimit(db.cfg.MaxPaginationLimit)

	cursor, err := client.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []model.LedgerEventDocument
	if err = cursor.All(ctx, &events); err != nil {
		return nil, err
	}

	return toResultMapWithPaginationToken(db.cfg, events, model.BuildLedgerEventPaginationToken)
}

func buildLedgerEventQuery(filter LedgerEventFilter) bson.M {
	query := bson.M{}
	if filter.Type != "" {
		query["type"] = filter.Type
	}
	if filter.Validator != "" {
		query["validator"] = filter.Validator
	}
	if filter.Collateral != "" {
		query["collateral"] = filter.Collateral
	}
	if filter.Account != "" {
		query["account"] = filter.Account
	}
	return query
}
