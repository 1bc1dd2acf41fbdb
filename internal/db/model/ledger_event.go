package model

const LedgerEventCollection = "ledger_events"

type LedgerEventDocument struct {
	ID string `bson:"_id"`
	// Sequence is the ledger state sequence the event was committed with,
	// Index its position within that operation.
	Sequence   uint64 `bson:"sequence"`
	Index      int    `bson:"index"`
	Type       string `bson:"type"`
	Validator  string `bson:"validator,omitempty"`
	Collateral string `bson:"collateral,omitempty"`
	Account    string `bson:"account,omitempty"`
	Payload    string `bson:"payload"`
	Timestamp  int64  `bson:"timestamp"`
}

type LedgerEventPagination struct {
	Sequence uint64 `json:"sequence"`
	Index    int    `json:"index"`
}

func BuildLedgerEventPaginationToken(d LedgerEventDocument) (string, error) {
	return EncodePaginationToken(LedgerEventPagination{
		Sequence: d.Sequence,
		Index:    d.Index,
	})
}
