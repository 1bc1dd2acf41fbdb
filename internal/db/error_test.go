package db_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/babylonchain/staking-ledger/internal/db"
	"github.com/babylonchain/staking-ledger/internal/db/model"
)

func TestTypedErrors(t *testing.T) {
	notFound := fmt.Errorf("load: %w", &db.NotFoundError{Key: "ledger", Message: "Ledger state not found"})
	assert.True(t, db.IsNotFoundError(notFound))
	assert.False(t, db.IsDuplicateKeyError(notFound))
	assert.True(t, db.IsInvalidPaginationTokenError(&db.InvalidPaginationTokenError{Message: "bad"}))

	assert.True(t, db.IsTransactionAbortedError(mongo.CommandError{Code: 251}))
	assert.True(t, db.IsWriteConflictError(&mongo.CommandError{Code: 112}))
	assert.False(t, db.IsWriteConflictError(nil))
	assert.False(t, db.IsWriteConflictError(mongo.CommandError{Code: 11000}))
}

func TestLedgerEventPaginationToken(t *testing.T) {
	token, err := model.BuildLedgerEventPaginationToken(model.LedgerEventDocument{Sequence: 42, Index: 3})
	assert.NoError(t, err)

	decoded, err := model.DecodePaginationToken[model.LedgerEventPagination](token)
	assert.NoError(t, err)
	assert.Equal(t, uint64(42), decoded.Sequence)
	assert.Equal(t, 3, decoded.Index)

	_, err = model.DecodePaginationToken[model.LedgerEventPagination]("%%%")
	assert.Error(t, err)
}
