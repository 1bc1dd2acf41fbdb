package model

const DepositCollection = "deposits"

// DepositDocument records a processed deposit so replays are ignored.
type DepositDocument struct {
	ID        string `bson:"_id"`
	Account   string `bson:"account"`
	Token     string `bson:"token"`
	Amount    string `bson:"amount"`
	Sequence  uint64 `bson:"sequence"`
	Timestamp int64  `bson:"timestamp"`
}
