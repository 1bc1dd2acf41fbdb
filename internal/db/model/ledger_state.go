package model

const (
	LedgerStateCollection = "ledger_state"
	// LedgerStateID is the _id of the single ledger state document.
	LedgerStateID = "ledger"
)

// LedgerStateDocument is the latest committed ledger, custody book and role
// snapshot. The snapshots are stored as JSON so amounts keep their full
// 256 bit precision.
type LedgerStateDocument struct {
	ID        string `bson:"_id"`
	Sequence  uint64 `bson:"sequence"`
	Ledger    string `bson:"ledger"`
	Balances  string `bson:"balances"`
	Roles     string `bson:"roles"`
	UpdatedAt int64  `bson:"updated_at"`
}

func NewLedgerStateDocument(sequence uint64, ledger, balances, roles string, updatedAt int64) *LedgerStateDocument {
	return &LedgerStateDocument{
		ID:        LedgerStateID,
		Sequence:  sequence,
		Ledger:    ledger,
		Balances:  balances,
		Roles:     roles,
		UpdatedAt: updatedAt,
	}
}
